package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/tatianab/mansion/internal/models"
)

// Config holds the application configuration.
type Config struct {
	// GeminiAPIKey enables the narrator. Empty means no narration.
	GeminiAPIKey string
	RecordsDir   string
	// Seed drives combat rolls. Zero picks a seed from the clock.
	Seed      int64
	LogLevel  string
	LogFormat string
	LogFile   string
	Addr      string
}

// LoadConfig loads the configuration from environment variables, reading a
// .env file first if one exists.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		RecordsDir:   getenv("RECORDS_DIR", models.DefaultRecordsDir),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogFormat:    getenv("LOG_FORMAT", "text"),
		LogFile:      os.Getenv("LOG_FILE"),
		Addr:         getenv("SERVER_ADDR", ":8080"),
	}

	if s := os.Getenv("GAME_SEED"); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("GAME_SEED must be an integer: %w", err)
		}
		cfg.Seed = seed
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
