package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSec != 30 {
		t.Errorf("timeout = %d", cfg.API.TimeoutSec)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache should default to enabled")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("api:\n  base_url: http://backend:9000\ncache:\n  enabled: false\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "http://backend:9000" {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.Cache.Enabled {
		t.Error("cache.enabled false in file should stick")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	// Unset keys keep their defaults.
	if cfg.API.TimeoutSec != 30 {
		t.Errorf("timeout = %d", cfg.API.TimeoutSec)
	}
}

func TestLoad_MalformedFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err == nil {
		t.Fatal("want an error for malformed yaml")
	}
	if cfg == nil {
		t.Fatal("defaults should come back alongside the error")
	}
	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
}

func TestLoad_EnvOverridesBaseURL(t *testing.T) {
	t.Setenv("DRIFTMIRROR_API_URL", "http://override:8080")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api:\n  base_url: http://file:9000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "http://override:8080" {
		t.Errorf("env override lost, base url = %q", cfg.API.BaseURL)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := defaultConfig()
	want.API.BaseURL = "http://saved:1234"
	want.Display.Theme = "dark"

	if err := Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.API.BaseURL != "http://saved:1234" {
		t.Errorf("base url = %q", got.API.BaseURL)
	}
	if got.Display.Theme != "dark" {
		t.Errorf("theme = %q", got.Display.Theme)
	}
}
