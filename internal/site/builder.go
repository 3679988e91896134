// Package site assembles the static documentation site: the page, its
// assets and the search index.
package site

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/dgallion1/docsite/internal/config"
	"github.com/dgallion1/docsite/internal/doctree"
	"github.com/dgallion1/docsite/internal/index"
	"github.com/dgallion1/docsite/internal/parser"
	"github.com/dgallion1/docsite/internal/render"
)

// Output file names.
const (
	IndexFile       = "index.html"
	CSSFile         = "main.css"
	JSFile          = "main.js"
	SearchJSFile    = "search.js"
	ChromaFile      = "chroma.css"
	SearchIndexName = "search-index.json"
	SitemapFile     = "sitemap.xml"
)

// Site is a compiled site held in memory.
type Site struct {
	Title    string
	Headings []doctree.Heading
	Sections []doctree.Section
	Files    map[string][]byte
}

// FileNames returns the output file names in sorted order.
func (s *Site) FileNames() []string {
	names := make([]string, 0, len(s.Files))
	for name := range s.Files {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// BuildResult summarizes a build written to disk.
type BuildResult struct {
	Title    string            `json:"title"`
	Headings []doctree.Heading `json:"headings"`
	Sections []doctree.Section `json:"sections"`
	Files    []string          `json:"files"`
	OutDir   string            `json:"out_dir"`
	Duration time.Duration     `json:"duration"`
}

// Builder turns the configured source into a site.
type Builder struct {
	cfg      config.Config
	renderer *render.Renderer
	log      *slog.Logger
	now      func() time.Time
}

func NewBuilder(cfg config.Config, log *slog.Logger) *Builder {
	return &Builder{
		cfg:      cfg,
		renderer: render.New(render.Options{HighlightStyle: cfg.HighlightStyle}),
		log:      log,
		now:      time.Now,
	}
}

// Load reads the configured source and converts it to Markdown.
func (b *Builder) Load() (*parser.Source, error) {
	return parser.Load(b.cfg.ContentPath, b.cfg.MaxSourceBytes, parser.Options{
		PDFFallbackPdftotext: b.cfg.PDFFallbackPdftotext,
	})
}

// Write replaces the configured output directory with s.
func (b *Builder) Write(s *Site) error {
	return Write(s, b.cfg.OutDir)
}

// OutDir returns the configured output directory.
func (b *Builder) OutDir() string {
	return b.cfg.OutDir
}

// Compile loads and renders the source without touching the output
// directory.
func (b *Builder) Compile(ctx context.Context) (*Site, error) {
	src, err := b.Load()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.CompileSource(src)
}

// CompileSource renders an already loaded source.
func (b *Builder) CompileSource(src *parser.Source) (*Site, error) {
	doc, err := b.renderer.Render(src.Markdown)
	if err != nil {
		return nil, err
	}

	page, err := RenderPage(doc, Chrome{
		SiteTitle:      b.cfg.Title,
		Logo:           b.cfg.Logo,
		GitHubURL:      b.cfg.GitHubURL,
		EditURL:        b.cfg.EditURL,
		SearchDebounce: b.cfg.SearchDebounce,
	})
	if err != nil {
		return nil, err
	}

	// Sections come from the finished page, exactly as the browser sees it.
	sections, err := index.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}
	if err := checkAnchors(doc.Headings, sections); err != nil {
		return nil, err
	}

	searchIndex, err := marshalSearchIndex(sections)
	if err != nil {
		return nil, err
	}
	chromaCSS, err := ChromaCSS(b.cfg.HighlightStyle, b.cfg.HighlightDarkStyle)
	if err != nil {
		return nil, err
	}

	title := doc.Title
	if title == "" {
		title = b.cfg.Title
	}

	s := &Site{
		Title:    title,
		Headings: doc.Headings,
		Sections: sections,
		Files: map[string][]byte{
			IndexFile:       page,
			CSSFile:         mainCSS,
			JSFile:          mainJS,
			SearchJSFile:    searchJS,
			ChromaFile:      chromaCSS,
			SearchIndexName: searchIndex,
		},
	}
	if b.cfg.BaseURL != "" {
		s.Files[SitemapFile] = Sitemap(b.cfg.BaseURL, doc.Headings, b.now())
	}
	return s, nil
}

// Build compiles the site and replaces the output directory with it.
func (b *Builder) Build(ctx context.Context) (*BuildResult, error) {
	start := time.Now()

	s, err := b.Compile(ctx)
	if err != nil {
		return nil, err
	}
	if err := b.Write(s); err != nil {
		return nil, err
	}

	res := &BuildResult{
		Title:    s.Title,
		Headings: s.Headings,
		Sections: s.Sections,
		Files:    s.FileNames(),
		OutDir:   b.cfg.OutDir,
		Duration: time.Since(start),
	}
	b.log.Info("site built",
		"out_dir", res.OutDir,
		"headings", len(res.Headings),
		"sections", len(res.Sections),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

// Write stages s in a sibling temp directory, then swaps it in for outDir,
// so a server reading outDir never sees a half-written site.
func Write(s *Site, outDir string) error {
	parent := filepath.Dir(filepath.Clean(outDir))
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("create output parent: %w", err)
	}
	tmp, err := os.MkdirTemp(parent, ".docsite-build-*")
	if err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}

	for name, data := range s.Files {
		if err := os.WriteFile(filepath.Join(tmp, name), data, 0o644); err != nil {
			os.RemoveAll(tmp)
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	if err := os.Chmod(tmp, 0o755); err != nil {
		os.RemoveAll(tmp)
		return fmt.Errorf("chmod staging dir: %w", err)
	}

	if err := os.RemoveAll(outDir); err != nil {
		os.RemoveAll(tmp)
		return fmt.Errorf("remove old output: %w", err)
	}
	if err := os.Rename(tmp, outDir); err != nil {
		os.RemoveAll(tmp)
		return fmt.Errorf("move output into place: %w", err)
	}
	return nil
}

// checkAnchors verifies that every extracted heading is reachable as an
// indexed section of the page and that no two sections share an anchor.
// Raw HTML headings may add further sections, but not a second copy of an id.
func checkAnchors(headings []doctree.Heading, sections []doctree.Section) error {
	ids := make(map[string]bool, len(sections))
	for _, s := range sections {
		if ids[s.ID] {
			return fmt.Errorf("duplicate anchor %q in the rendered page", s.ID)
		}
		ids[s.ID] = true
	}
	for _, h := range headings {
		if !ids[h.ID] {
			return fmt.Errorf("heading %q has no anchor in the rendered page", h.ID)
		}
	}
	return nil
}
