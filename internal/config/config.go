package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read when DOCSITE_CONFIG is unset and the file exists.
const DefaultFile = "docsite.yaml"

type Config struct {
	// Source and output
	ContentPath string `yaml:"content_path"`
	OutDir      string `yaml:"out_dir"`

	// Page chrome
	Title     string `yaml:"title"`
	Logo      string `yaml:"logo"` // raw HTML placed in the sidebar header
	GitHubURL string `yaml:"github_url"`
	EditURL   string `yaml:"edit_url"`
	BaseURL   string `yaml:"base_url"` // enables sitemap.xml when set

	// Highlighting
	HighlightStyle     string `yaml:"highlight_style"`
	HighlightDarkStyle string `yaml:"highlight_dark_style"`

	// Server
	Port string `yaml:"port"`

	// Client search
	SearchDebounce time.Duration `yaml:"search_debounce"`

	// Dev mode
	WatchInterval time.Duration `yaml:"watch_interval"`
	WatchDebounce time.Duration `yaml:"watch_debounce"`

	// Build jobs
	MaxQueueSize int           `yaml:"max_queue_size"`
	JobTTL       time.Duration `yaml:"job_ttl"`

	// Source limits
	MaxSourceBytes int64 `yaml:"max_source_bytes"`

	// PDF
	PDFFallbackPdftotext bool `yaml:"pdf_fallback_pdftotext"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		ContentPath:          "content.md",
		OutDir:               "dist",
		Title:                "Docs",
		HighlightStyle:       "github",
		HighlightDarkStyle:   "monokai",
		Port:                 "3000",
		SearchDebounce:       150 * time.Millisecond,
		WatchInterval:        300 * time.Millisecond,
		WatchDebounce:        100 * time.Millisecond,
		MaxQueueSize:         16,
		JobTTL:               1 * time.Hour,
		MaxSourceBytes:       52428800, // 50MB
		PDFFallbackPdftotext: false,
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// DOCSITE_CONFIG (or docsite.yaml if present), then environment variables.
// Command-line flags are applied by the caller on top.
func Load() (Config, error) {
	return LoadFrom(os.Getenv("DOCSITE_CONFIG"))
}

// LoadFrom is Load with an explicit config file path. An empty path falls
// back to docsite.yaml when it exists.
func LoadFrom(path string) (Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := loadFile(&cfg, path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	cfg.ContentPath = envOr("DOCSITE_CONTENT", cfg.ContentPath)
	cfg.OutDir = envOr("DOCSITE_OUT_DIR", cfg.OutDir)
	cfg.Title = envOr("DOCSITE_TITLE", cfg.Title)
	cfg.Logo = envOr("DOCSITE_LOGO", cfg.Logo)
	cfg.GitHubURL = envOr("DOCSITE_GITHUB_URL", cfg.GitHubURL)
	cfg.EditURL = envOr("DOCSITE_EDIT_URL", cfg.EditURL)
	cfg.BaseURL = envOr("DOCSITE_BASE_URL", cfg.BaseURL)
	cfg.HighlightStyle = envOr("DOCSITE_HIGHLIGHT_STYLE", cfg.HighlightStyle)
	cfg.HighlightDarkStyle = envOr("DOCSITE_HIGHLIGHT_DARK_STYLE", cfg.HighlightDarkStyle)
	cfg.Port = envOr("PORT", cfg.Port)
	cfg.SearchDebounce = envDuration("DOCSITE_SEARCH_DEBOUNCE", cfg.SearchDebounce)
	cfg.WatchInterval = envDuration("DOCSITE_WATCH_INTERVAL", cfg.WatchInterval)
	cfg.WatchDebounce = envDuration("DOCSITE_WATCH_DEBOUNCE", cfg.WatchDebounce)
	cfg.MaxQueueSize = envInt("DOCSITE_MAX_QUEUE_SIZE", cfg.MaxQueueSize)
	cfg.JobTTL = envDuration("DOCSITE_JOB_TTL", cfg.JobTTL)
	cfg.MaxSourceBytes = envInt64("DOCSITE_MAX_SOURCE_BYTES", cfg.MaxSourceBytes)
	cfg.PDFFallbackPdftotext = envBool("PDF_FALLBACK_PDFTOTEXT", cfg.PDFFallbackPdftotext)

	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 16
	}
	if cfg.MaxSourceBytes <= 0 {
		cfg.MaxSourceBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.ContentPath == "" {
		return fmt.Errorf("content_path is required")
	}
	if c.OutDir == "" {
		return fmt.Errorf("out_dir is required")
	}
	if n, err := strconv.Atoi(c.Port); err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.SearchDebounce <= 0 {
		return fmt.Errorf("search_debounce must be positive")
	}
	if c.WatchInterval <= 0 {
		return fmt.Errorf("watch_interval must be positive")
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must not be negative")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
