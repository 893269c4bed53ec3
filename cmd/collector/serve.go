package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mkoda/recipe-collector/internal/collector"
	"github.com/mkoda/recipe-collector/internal/config"
	"github.com/mkoda/recipe-collector/internal/db"
	"github.com/mkoda/recipe-collector/internal/server"
)

var (
	servePort     int
	serveInterval time.Duration
	serveNoTimer  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server and the periodic collector",
	Long:  `Start an HTTP server that exposes the recipe REST API and a manual collection trigger, and run the collection pipeline on a fixed interval until interrupted.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	serveCmd.Flags().DurationVar(&serveInterval, "interval", 0, "Collection interval (overrides COLLECT_INTERVAL)")
	serveCmd.Flags().BoolVar(&serveNoTimer, "no-timer", false, "Disable the periodic collection timer")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("interval") {
		cfg.CollectInterval = serveInterval
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	srv := server.New(server.Config{
		Port:   cfg.Port,
		Store:  database,
		Runner: c,
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Start(ctx)
	})

	if !serveNoTimer {
		g.Go(func() error {
			return runTimer(ctx, c, cfg.CollectInterval)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// runTimer triggers a collection run every interval until the context is
// canceled. A failed run is logged and the timer keeps going.
func runTimer(ctx context.Context, c *collector.Collector, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("periodic collection enabled: every %s", interval)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			stats, err := c.Run(ctx)
			if err != nil {
				log.Printf("periodic collection failed: %v", err)
				continue
			}
			log.Printf("periodic collection done: processed=%d success=%d failed=%d skipped=%d",
				stats.Processed, stats.Success, stats.Failed, stats.Skipped)
		}
	}
}
