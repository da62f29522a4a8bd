package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), ConfigFile))
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if cfg.MessageIntervalSeconds != 20 || cfg.RefetchDelayMs != 1500 {
		t.Errorf("default intervals = %d/%d", cfg.MessageIntervalSeconds, cfg.RefetchDelayMs)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)

	want := Config{
		APIURL:                 "https://example.com/api",
		UserName:               "alice",
		MessageIntervalSeconds: 30,
		RefetchDelayMs:         2000,
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadOrDefaultPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	content := "api_url = \"https://example.com/api\"\nuser_name = \"bob\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if cfg.APIURL != "https://example.com/api" || cfg.UserName != "bob" {
		t.Errorf("explicit fields lost: %+v", cfg)
	}
	// Unset intervals keep their defaults.
	if cfg.MessageIntervalSeconds != 20 || cfg.RefetchDelayMs != 1500 {
		t.Errorf("intervals = %d/%d, want defaults", cfg.MessageIntervalSeconds, cfg.RefetchDelayMs)
	}
}

func TestLoadOrDefaultClampsNonPositiveIntervals(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	content := "message_interval_seconds = 0\nrefetch_delay_ms = -5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if cfg.MessageIntervalSeconds != 20 || cfg.RefetchDelayMs != 1500 {
		t.Errorf("intervals = %d/%d, want defaults", cfg.MessageIntervalSeconds, cfg.RefetchDelayMs)
	}
}

func TestLoadOrDefaultBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	if err := os.WriteFile(path, []byte("api_url = [not closed"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadOrDefault(path); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestDurationAccessors(t *testing.T) {
	cfg := Config{MessageIntervalSeconds: 45, RefetchDelayMs: 250}
	if cfg.MessageInterval() != 45*time.Second {
		t.Errorf("MessageInterval = %v", cfg.MessageInterval())
	}
	if cfg.RefetchDelay() != 250*time.Millisecond {
		t.Errorf("RefetchDelay = %v", cfg.RefetchDelay())
	}
}
