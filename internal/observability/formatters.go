// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mkoda/recipe-collector/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the collect and serve commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRunStats outputs a summary of a completed collection run.
func (p *Printer) PrintRunStats(stats types.RunStats) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Processed:  %d\n", stats.Processed))
	sb.WriteString(fmt.Sprintf("Success:    %d\n", stats.Success))
	sb.WriteString(fmt.Sprintf("Failed:     %d\n", stats.Failed))
	sb.WriteString(fmt.Sprintf("Skipped:    %d", stats.Skipped))

	p.printBox("COLLECTION RUN", sb.String())
}

// PrintCheckpoint outputs the stored run checkpoint, if any.
func (p *Printer) PrintCheckpoint(cp *types.RunCheckpoint) {
	if cp == nil {
		return
	}

	var sb strings.Builder

	cursor := "(none)"
	if cp.LastMessageID != nil {
		cursor = *cp.LastMessageID
	}
	sb.WriteString(fmt.Sprintf("Last message:  %s\n", cursor))
	sb.WriteString(fmt.Sprintf("Last run:      %s\n", cp.LastRunAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Processed:     %d\n", cp.ProcessedCount))
	sb.WriteString(fmt.Sprintf("Success:       %d\n", cp.SuccessCount))
	sb.WriteString(fmt.Sprintf("Failed:        %d", cp.FailedCount))

	p.printBox("LAST CHECKPOINT", sb.String())
}

// PrintRecipes outputs a short listing of recipes.
func (p *Printer) PrintRecipes(recipes []types.Recipe) {
	if len(recipes) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total recipes: %d\n\n", len(recipes)))

	count := min(len(recipes), maxItemsToShow)
	for i := 0; i < count; i++ {
		recipe := recipes[i]
		title := recipe.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s\n", title))
		sb.WriteString(fmt.Sprintf("  %s / %s\n", recipe.CuisineType, recipe.Category))
		if len(recipe.Ingredients) > 0 {
			ingredients := strings.Join(recipe.Ingredients, ", ")
			if len(ingredients) > 45 {
				ingredients = ingredients[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("  [%s]\n", ingredients))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(recipes) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more recipes", len(recipes)-maxItemsToShow))
	}

	p.printBox("RECIPES", strings.TrimSuffix(sb.String(), "\n"))
}
