package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ServerURL != "http://localhost:8000" {
		t.Errorf("expected default server URL, got %q", cfg.ServerURL)
	}
	if cfg.Theme != "solarized-dark" {
		t.Errorf("expected default theme 'solarized-dark', got %q", cfg.Theme)
	}
	if cfg.RefreshInterval != 30*time.Second {
		t.Errorf("expected refresh interval 30s, got %v", cfg.RefreshInterval)
	}
}

func TestConfigSaveLoad(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")

	cfg := DefaultConfig()
	cfg.ServerURL = "https://mon.example.net"
	cfg.Theme = "dracula"
	cfg.RefreshInterval = time.Minute

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.ServerURL != "https://mon.example.net" {
		t.Errorf("expected server URL 'https://mon.example.net', got %q", loaded.ServerURL)
	}
	if loaded.Theme != "dracula" {
		t.Errorf("expected theme 'dracula', got %q", loaded.Theme)
	}
	if loaded.RefreshInterval != time.Minute {
		t.Errorf("expected refresh interval 1m, got %v", loaded.RefreshInterval)
	}
}

func TestConfigLoadMissing(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("LoadConfig() should return defaults for missing file, got error: %v", err)
	}
	if cfg.ServerURL != "http://localhost:8000" {
		t.Errorf("expected default server URL, got %q", cfg.ServerURL)
	}
}
