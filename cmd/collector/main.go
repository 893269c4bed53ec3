// Package main provides the entry point for the recipe collector service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "collector",
	Short: "Recipe collector service",
	Long:  "Collects recipe links shared in a Discord channel, scrapes their metadata, classifies them with an LLM, and serves the collected recipes over a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
