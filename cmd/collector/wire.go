package main

import (
	"context"
	"fmt"

	"github.com/mkoda/recipe-collector/internal/classify"
	"github.com/mkoda/recipe-collector/internal/collector"
	"github.com/mkoda/recipe-collector/internal/config"
	"github.com/mkoda/recipe-collector/internal/db"
	"github.com/mkoda/recipe-collector/internal/discord"
	"github.com/mkoda/recipe-collector/internal/llm"
	"github.com/mkoda/recipe-collector/internal/scrape"
)

// buildCollector wires the collection pipeline together. The returned LLM
// client must be closed by the caller when the collector is no longer needed.
func buildCollector(ctx context.Context, cfg *config.Config, database *db.DB) (*collector.Collector, *llm.GeminiClient, error) {
	client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, llm.Options{
		Model:           cfg.Model,
		Temperature:     cfg.Temperature,
		MaxOutputTokens: cfg.MaxOutputTokens,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	source := discord.NewSource(cfg.DiscordToken, cfg.DiscordChannelID, cfg.FetchLimit)
	c := collector.New(source, scrape.New(), classify.New(client), database, database)
	return c, client, nil
}
