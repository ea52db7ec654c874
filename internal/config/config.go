package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the bot
type Config struct {
	// Discord
	DiscordToken string

	// Accounts with bot-owner privileges, independent of any guild role
	OwnerIDs []string

	// Database
	DatabasePath string

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken: os.Getenv("DISCORD_BOT_TOKEN"),
		DatabasePath: getEnvOrDefault("DATABASE_PATH", "./data/honeypot.db"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
	}

	if owners := os.Getenv("BOT_OWNER_IDS"); owners != "" {
		for _, id := range strings.Split(owners, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.OwnerIDs = append(cfg.OwnerIDs, id)
			}
		}
	}

	// Validate required fields
	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
