// Package classify derives a structured recipe classification from scraped
// page metadata using an LLM, degrading to safe defaults on any failure.
package classify

import (
	"context"
	"encoding/json"
	"log"

	"github.com/mkoda/recipe-collector/internal/llm"
	"github.com/mkoda/recipe-collector/internal/prompts"
	"github.com/mkoda/recipe-collector/internal/schemas"
	"github.com/mkoda/recipe-collector/internal/types"
)

// noDescription fills the prompt slot when a page had no description.
const noDescription = "No description"

// payload is the wire shape the classification service is asked to return.
type payload struct {
	Ingredients []string `json:"ingredients"`
	CuisineType string   `json:"cuisine_type"`
	Category    string   `json:"category"`
}

// Classifier turns page metadata into a Classification via an LLM.
type Classifier struct {
	client llm.Client
}

// New returns a Classifier backed by the given LLM client.
func New(client llm.Client) *Classifier {
	return &Classifier{client: client}
}

// Classify always returns a usable Classification. Service errors, empty or
// malformed responses, and shape defects all collapse to the default value;
// callers never branch on an error from this component.
func (c *Classifier) Classify(ctx context.Context, title string, description *string, url string) types.Classification {
	desc := noDescription
	if description != nil && *description != "" {
		desc = *description
	}

	prompt := prompts.Format(prompts.MustGet("classify.json", "classify-recipe"), map[string]string{
		"Title":       title,
		"Description": desc,
		"URL":         url,
	})

	responseText, err := c.client.GenerateJSON(ctx, prompt)
	if err != nil {
		log.Printf("Classification failed for %s: %v", url, err)
		return types.DefaultClassification()
	}
	if responseText == "" {
		log.Printf("Empty classification response for %s", url)
		return types.DefaultClassification()
	}

	return parseClassification(responseText, url)
}

// parseClassification decodes and validates the service response. The
// response may arrive fenced in a code block; only the content between the
// first fence pair is decoded.
func parseClassification(responseText, url string) types.Classification {
	jsonText := llm.CleanJSONBlock(responseText)

	if err := schemas.ValidateClassification([]byte(jsonText)); err != nil {
		log.Printf("Classification payload rejected for %s: %v", url, err)
		return types.DefaultClassification()
	}

	var p payload
	if err := json.Unmarshal([]byte(jsonText), &p); err != nil {
		log.Printf("Failed to decode classification for %s: %v", url, err)
		return types.DefaultClassification()
	}

	ingredients := p.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	if len(ingredients) > types.MaxIngredients {
		ingredients = ingredients[:types.MaxIngredients]
	}

	return types.Classification{
		Ingredients: ingredients,
		CuisineType: types.ParseCuisineType(p.CuisineType),
		Category:    types.ParseCategory(p.Category),
	}
}
