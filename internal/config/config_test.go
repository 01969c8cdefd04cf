package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir moves the test into an empty directory so no stray .env is read.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func clearEnv(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "RECORDS_DIR", "GAME_SEED", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "SERVER_ADDR"} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	clearEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.GeminiAPIKey != "" {
		t.Errorf("Expected no API key, got %q", cfg.GeminiAPIKey)
	}
	if cfg.RecordsDir != ".saves" {
		t.Errorf("Expected records dir .saves, got %q", cfg.RecordsDir)
	}
	if cfg.Seed != 0 {
		t.Errorf("Expected seed 0, got %d", cfg.Seed)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Expected addr :8080, got %q", cfg.Addr)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected log level info, got %q", cfg.LogLevel)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	clearEnv(t)
	t.Setenv("GAME_SEED", "1234")
	t.Setenv("SERVER_ADDR", "127.0.0.1:9000")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Seed != 1234 {
		t.Errorf("Expected seed 1234, got %d", cfg.Seed)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Errorf("Expected addr 127.0.0.1:9000, got %q", cfg.Addr)
	}
}

func TestLoadConfigDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "warn")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\nRECORDS_DIR=/tmp/mansion\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Expected environment to win, got %q", cfg.LogLevel)
	}
}

func TestLoadConfigBadSeed(t *testing.T) {
	chdir(t, t.TempDir())
	clearEnv(t)
	t.Setenv("GAME_SEED", "lucky")

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected an error for a non-numeric seed")
	}
}
