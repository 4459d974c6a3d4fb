package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TISA_DB_PATH", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("NOTIFY_TIMEOUT_SECONDS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBPath == "" {
		t.Fatal("expected a default db path")
	}
	if cfg.NotifyTimeout != 10*time.Second {
		t.Fatalf("NotifyTimeout = %v, want 10s", cfg.NotifyTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TISA_DB_PATH", "/tmp/x.db")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("NOTIFY_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBPath != "/tmp/x.db" || cfg.GeminiModel != "gemini-2.5-pro" || cfg.NotifyTimeout != 3*time.Second {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	for _, v := range []string{"abc", "0", "-1"} {
		t.Setenv("NOTIFY_TIMEOUT_SECONDS", v)
		if _, err := Load(); err == nil {
			t.Errorf("expected error for NOTIFY_TIMEOUT_SECONDS=%q", v)
		}
	}
}
