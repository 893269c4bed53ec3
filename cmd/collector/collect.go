package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkoda/recipe-collector/internal/collector"
	"github.com/mkoda/recipe-collector/internal/config"
	"github.com/mkoda/recipe-collector/internal/db"
	"github.com/mkoda/recipe-collector/internal/observability"
)

var collectVerbose bool

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run a single collection pass",
	Long:  `Fetch new messages from the configured Discord channel, scrape and classify every shared link, and persist the results. Resumes from the last stored checkpoint.`,
	RunE:  runCollect,
}

func init() {
	collectCmd.Flags().BoolVarP(&collectVerbose, "verbose", "v", false, "Print the stored checkpoint after the run")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	c, client, err := buildCollector(ctx, cfg, database)
	if err != nil {
		return err
	}
	defer client.Close()

	stats, err := c.Run(ctx)
	if err != nil {
		return fmt.Errorf("collection run failed: %w", err)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintRunStats(stats)

	if collectVerbose {
		cp, err := database.GetCheckpoint(ctx, collector.CheckpointKey)
		if err != nil {
			return fmt.Errorf("failed to load checkpoint: %w", err)
		}
		printer.PrintCheckpoint(cp)
	}

	return nil
}
