package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DOCSITE_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ContentPath != "content.md" {
		t.Errorf("expected content path %q, got %q", "content.md", cfg.ContentPath)
	}
	if cfg.OutDir != "dist" {
		t.Errorf("expected out dir %q, got %q", "dist", cfg.OutDir)
	}
	if cfg.Port != "3000" {
		t.Errorf("expected port %q, got %q", "3000", cfg.Port)
	}
	if cfg.SearchDebounce != 150*time.Millisecond {
		t.Errorf("expected debounce 150ms, got %s", cfg.SearchDebounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	yml := "title: My Lib\nport: \"8080\"\nwatch_interval: 1s\nbase_url: https://docs.example.com\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOCSITE_CONFIG", path)
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Title != "My Lib" {
		t.Errorf("expected title from file, got %q", cfg.Title)
	}
	if cfg.WatchInterval != time.Second {
		t.Errorf("expected watch interval 1s, got %s", cfg.WatchInterval)
	}
	if cfg.BaseURL != "https://docs.example.com" {
		t.Errorf("expected base url from file, got %q", cfg.BaseURL)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected env to override file port, got %q", cfg.Port)
	}
	if cfg.OutDir != "dist" {
		t.Errorf("expected unset keys to keep defaults, got %q", cfg.OutDir)
	}
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DOCSITE_CONFIG", "")
	if err := os.WriteFile(filepath.Join(dir, DefaultFile), []byte("out_dir: public\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutDir != "public" {
		t.Errorf("expected out dir %q, got %q", "public", cfg.OutDir)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("DOCSITE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("title: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOCSITE_CONFIG", path)
	if _, err := Load(); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFrom_ExplicitPath(t *testing.T) {
	t.Setenv("DOCSITE_TITLE", "")
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte("title: From Flag\nport: \"9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Title != "From Flag" {
		t.Errorf("expected title %q, got %q", "From Flag", cfg.Title)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected port %q, got %q", "9000", cfg.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no content", func(c *Config) { c.ContentPath = "" }},
		{"no out dir", func(c *Config) { c.OutDir = "" }},
		{"bad port", func(c *Config) { c.Port = "http" }},
		{"zero port", func(c *Config) { c.Port = "0" }},
		{"zero debounce", func(c *Config) { c.SearchDebounce = 0 }},
		{"zero watch interval", func(c *Config) { c.WatchInterval = 0 }},
		{"negative watch debounce", func(c *Config) { c.WatchDebounce = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}
