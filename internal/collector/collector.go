// Package collector orchestrates one ingestion run: fetch new chat messages,
// enrich every shared link, and persist recipes with a resumable checkpoint.
package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mkoda/recipe-collector/internal/types"
)

// CheckpointKey is the fixed name the collector's checkpoint is stored under.
const CheckpointKey = "collector"

// MessageSource retrieves chat messages newer than the cursor, oldest first.
type MessageSource interface {
	Fetch(ctx context.Context, afterMessageID string) ([]types.ChatMessage, error)
}

// Scraper extracts page metadata for a URL; nil means the scrape failed.
type Scraper interface {
	Scrape(ctx context.Context, url string) *types.ScrapedMetadata
}

// Classifier derives a classification from page metadata. It is total:
// there is no error return.
type Classifier interface {
	Classify(ctx context.Context, title string, description *string, url string) types.Classification
}

// RecipeStore is the persistence boundary for recipes.
type RecipeStore interface {
	ExistsByURL(ctx context.Context, url string) (bool, error)
	CreateRecipe(ctx context.Context, recipe types.NewRecipe) (uuid.UUID, error)
}

// CheckpointStore persists the run checkpoint under a fixed key.
type CheckpointStore interface {
	GetCheckpoint(ctx context.Context, name string) (*types.RunCheckpoint, error)
	PutCheckpoint(ctx context.Context, name string, checkpoint types.RunCheckpoint) error
}

// Collector drives ingestion runs. Every trigger path (manual endpoint,
// periodic timer, CLI) goes through the same Run method.
type Collector struct {
	source      MessageSource
	scraper     Scraper
	classifier  Classifier
	recipes     RecipeStore
	checkpoints CheckpointStore
}

// New wires a Collector from its collaborators.
func New(source MessageSource, scraper Scraper, classifier Classifier, recipes RecipeStore, checkpoints CheckpointStore) *Collector {
	return &Collector{
		source:      source,
		scraper:     scraper,
		classifier:  classifier,
		recipes:     recipes,
		checkpoints: checkpoints,
	}
}

// Run executes one sequential ingestion run and returns its statistics.
// A message-fetch failure aborts the run with the checkpoint untouched, so
// the next run retries the same window. Per-URL failures are contained and
// only reflected in the statistics. The checkpoint is written exactly once,
// after the whole batch, pointing at the last message regardless of how its
// URLs fared.
func (c *Collector) Run(ctx context.Context) (types.RunStats, error) {
	stats := types.RunStats{}

	checkpoint, err := c.checkpoints.GetCheckpoint(ctx, CheckpointKey)
	if err != nil {
		return stats, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	cursor := ""
	if checkpoint != nil && checkpoint.LastMessageID != nil {
		cursor = *checkpoint.LastMessageID
	}
	log.Printf("Collector started, cursor: %s", cursorForLog(cursor))

	messages, err := c.source.Fetch(ctx, cursor)
	if err != nil {
		return stats, fmt.Errorf("failed to fetch messages: %w", err)
	}
	log.Printf("Fetched %d messages with URLs", len(messages))

	if len(messages) == 0 {
		return stats, nil
	}

	for _, message := range messages {
		for _, url := range message.URLs {
			stats.Processed++
			c.processURL(ctx, message, url, &stats)
		}
	}

	lastMessageID := messages[len(messages)-1].ID
	newCheckpoint := types.RunCheckpoint{
		LastMessageID:  &lastMessageID,
		LastRunAt:      time.Now().UTC(),
		ProcessedCount: stats.Processed,
		SuccessCount:   stats.Success,
		FailedCount:    stats.Failed,
	}
	if err := c.checkpoints.PutCheckpoint(ctx, CheckpointKey, newCheckpoint); err != nil {
		return stats, fmt.Errorf("failed to save checkpoint: %w", err)
	}

	log.Printf("Collector completed: processed=%d, success=%d, failed=%d, skipped=%d",
		stats.Processed, stats.Success, stats.Failed, stats.Skipped)
	return stats, nil
}

// processURL runs the per-URL state machine: duplicate check, scrape,
// classify, persist. Each terminal state increments exactly one counter.
func (c *Collector) processURL(ctx context.Context, message types.ChatMessage, url string, stats *types.RunStats) {
	exists, err := c.recipes.ExistsByURL(ctx, url)
	if err != nil {
		log.Printf("Error processing %s: %v", url, err)
		stats.Failed++
		return
	}
	if exists {
		log.Printf("Skipped (duplicate): %s", url)
		stats.Skipped++
		return
	}

	scraped := c.scraper.Scrape(ctx, url)
	if scraped == nil {
		log.Printf("Failed to scrape: %s", url)
		stats.Failed++
		return
	}

	// Classification cannot fail; any upstream defect surfaces as the
	// default classification instead.
	classification := c.classifier.Classify(ctx, scraped.Title, scraped.Description, url)

	postedAt := message.Timestamp
	author := message.Author
	recipe := types.NewRecipe{
		URL:         url,
		Title:       scraped.Title,
		ImageURL:    scraped.ImageURL,
		Description: scraped.Description,
		Ingredients: classification.Ingredients,
		CuisineType: classification.CuisineType,
		Category:    classification.Category,
		PostedBy:    &author,
		PostedAt:    &postedAt,
	}

	if _, err := c.recipes.CreateRecipe(ctx, recipe); err != nil {
		log.Printf("Error processing %s: %v", url, err)
		stats.Failed++
		return
	}

	log.Printf("Saved: %s", scraped.Title)
	stats.Success++
}

func cursorForLog(cursor string) string {
	if cursor == "" {
		return "none"
	}
	return cursor
}
