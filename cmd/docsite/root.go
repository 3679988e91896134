package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/docsite/internal/config"
	"github.com/dgallion1/docsite/internal/parser"
	"github.com/dgallion1/docsite/internal/version"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagContent string
	flagOut     string
	flagTitle   string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docsite",
	Short: "Turn one Markdown document into a searchable documentation site",
	Long: `docsite renders a single Markdown file (or an HTML, text, CSV, DOCX or PDF
source converted to Markdown) into a static page with a table of contents,
highlighted code, dark/light theming and client-side search.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("docsite %s\n", version.String()))

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagConfig, "config", "c", "", "YAML config file (default docsite.yaml if present)")
	pf.StringVar(&flagContent, "content", "", "source document (overrides content_path)")
	pf.StringVarP(&flagOut, "out", "o", "", "output directory (overrides out_dir)")
	pf.StringVar(&flagTitle, "title", "", "site title (overrides title)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads file and environment configuration, then applies the
// flags the user actually set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path := flagConfig
	if path == "" {
		path = os.Getenv("DOCSITE_CONFIG")
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("content") {
		cfg.ContentPath = flagContent
	}
	if flags.Changed("out") {
		cfg.OutDir = flagOut
	}
	if flags.Changed("title") {
		cfg.Title = flagTitle
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.Port, _ = flags.GetString("port")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	if !parser.IsSupportedExtension(cfg.ContentPath) {
		return cfg, fmt.Errorf("%w: %s", parser.ErrUnsupported, filepath.Ext(cfg.ContentPath))
	}
	return cfg, nil
}

// newLogger returns a JSON logger for long-running servers and a text
// logger on stderr for interactive commands.
func newLogger(json bool) *slog.Logger {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func quietLogger() *slog.Logger {
	if flagVerbose {
		return newLogger(false)
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
