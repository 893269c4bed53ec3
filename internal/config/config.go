// Package config provides configuration loading and validation for the collector.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults for optional settings.
const (
	DefaultFetchLimit      = 100
	DefaultModel           = "gemini-2.5-flash"
	DefaultTemperature     = 0.3
	DefaultMaxOutputTokens = 256
	DefaultPort            = 8080
	DefaultCollectInterval = time.Hour
)

// Config holds every setting the collector needs, resolved once at process
// start. Credentials come from the environment; a .env file is loaded by the
// CLI entry point before this runs.
type Config struct {
	// Discord
	DiscordToken     string // bot token for the message API
	DiscordChannelID string // channel to collect links from
	FetchLimit       int    // page-size cap per fetch, at most 100

	// Classification
	GeminiAPIKey    string  // Gemini API key
	Model           string  // model identifier
	Temperature     float32 // sampling temperature
	MaxOutputTokens int32   // response token cap

	// Storage
	DatabaseURL string // PostgreSQL connection URL

	// Server
	Port            int           // HTTP listen port
	CollectInterval time.Duration // period between scheduled runs
}

// Load reads configuration from the environment and applies defaults.
// Returns an error naming the first missing required setting.
func Load() (*Config, error) {
	cfg := &Config{
		DiscordToken:     os.Getenv("DISCORD_TOKEN"),
		DiscordChannelID: os.Getenv("DISCORD_CHANNEL_ID"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		FetchLimit:       DefaultFetchLimit,
		Model:            DefaultModel,
		Temperature:      DefaultTemperature,
		MaxOutputTokens:  DefaultMaxOutputTokens,
		Port:             DefaultPort,
		CollectInterval:  DefaultCollectInterval,
	}

	if v := os.Getenv("FETCH_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FETCH_LIMIT %q: %w", v, err)
		}
		cfg.FetchLimit = limit
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("GEMINI_TEMPERATURE"); v != "" {
		temp, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid GEMINI_TEMPERATURE %q: %w", v, err)
		}
		cfg.Temperature = float32(temp)
	}
	if v := os.Getenv("GEMINI_MAX_OUTPUT_TOKENS"); v != "" {
		tokens, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid GEMINI_MAX_OUTPUT_TOKENS %q: %w", v, err)
		}
		cfg.MaxOutputTokens = int32(tokens)
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("COLLECT_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid COLLECT_INTERVAL %q: %w", v, err)
		}
		cfg.CollectInterval = interval
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings and value ranges.
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN environment variable is required")
	}
	if c.DiscordChannelID == "" {
		return fmt.Errorf("DISCORD_CHANNEL_ID environment variable is required")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if c.FetchLimit < 1 || c.FetchLimit > 100 {
		return fmt.Errorf("FETCH_LIMIT must be between 1 and 100, got %d", c.FetchLimit)
	}
	if c.CollectInterval < time.Minute {
		return fmt.Errorf("COLLECT_INTERVAL must be at least 1m, got %s", c.CollectInterval)
	}
	return nil
}
