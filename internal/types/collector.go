package types

import "time"

// MaxIngredients caps the ingredient list on every classification.
const MaxIngredients = 5

// ChatMessage is one chat message carrying extracted URLs.
// Produced once per fetch by the message source, oldest first.
type ChatMessage struct {
	ID        string
	Author    string
	Timestamp time.Time
	URLs      []string
}

// ScrapedMetadata holds the page metadata extracted for a URL.
// Image and description are optional; title is not.
type ScrapedMetadata struct {
	Title       string
	ImageURL    *string
	Description *string
}

// Classification is the structured result of classifying a recipe page.
type Classification struct {
	Ingredients []string    `json:"ingredients"`
	CuisineType CuisineType `json:"cuisine_type"`
	Category    Category    `json:"category"`
}

// DefaultClassification is the safe fallback used whenever classification
// fails for any reason.
func DefaultClassification() Classification {
	return Classification{
		Ingredients: []string{},
		CuisineType: CuisineOther,
		Category:    CategoryOther,
	}
}

// RunStats aggregates the per-URL outcomes of one collector run.
type RunStats struct {
	Processed int `json:"processed"`
	Success   int `json:"success"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// RunCheckpoint records where the last collector run left off. It is stored
// under a fixed key and overwritten wholesale at the end of each run.
type RunCheckpoint struct {
	LastMessageID  *string   `json:"last_message_id"`
	LastRunAt      time.Time `json:"last_run_at"`
	ProcessedCount int       `json:"processed_count"`
	SuccessCount   int       `json:"success_count"`
	FailedCount    int       `json:"failed_count"`
}
