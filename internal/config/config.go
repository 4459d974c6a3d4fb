package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config is the process-level configuration. Notification settings (bot
// token, chat id, toggles) are deliberately not here: they are user data,
// stored in the ledger database and editable at runtime.
type Config struct {
	DBPath        string        // path to the bbolt database file
	GeminiModel   string        // Gemini model for the analysis report
	NotifyTimeout time.Duration // per-delivery Telegram timeout
}

// Load reads configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:        strings.TrimSpace(os.Getenv("TISA_DB_PATH")),
		GeminiModel:   strings.TrimSpace(os.Getenv("GEMINI_MODEL")),
		NotifyTimeout: 10 * time.Second,
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}

	if timeoutStr := strings.TrimSpace(os.Getenv("NOTIFY_TIMEOUT_SECONDS")); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid NOTIFY_TIMEOUT_SECONDS: %s", timeoutStr)
		}
		cfg.NotifyTimeout = time.Duration(seconds) * time.Second
	}

	return cfg, nil
}

// defaultDBPath picks ~/.tisa/tisa.db, falling back to the working directory
// when the home directory is unknown.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tisa.db"
	}
	return filepath.Join(home, ".tisa", "tisa.db")
}
