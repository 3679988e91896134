// Package render converts a Markdown document into the sanitized HTML body of
// the site, with heading anchors, highlighted code and copy buttons.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/dgallion1/docsite/internal/doctree"
	"github.com/dgallion1/docsite/internal/heading"
)

// Document is the rendered form of one Markdown source.
type Document struct {
	HTML        string
	Headings    []doctree.Heading
	Title       string // front matter "title"
	Description string // front matter "description"
}

// Options configures a Renderer.
type Options struct {
	// HighlightStyle names the chroma style. Code is emitted with CSS
	// classes, so the style only matters for the generated stylesheet.
	HighlightStyle string
}

// Renderer holds a configured goldmark instance and sanitizer policy.
// It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	style := opts.HighlightStyle
	if style == "" {
		style = "github"
	}

	exts := append(heading.ParserExtensions(),
		highlighting.NewHighlighting(
			highlighting.WithStyle(style),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		),
	)

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(heading.Transformer{}, 100)),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)

	return &Renderer{md: md, policy: newPolicy()}
}

var (
	anchorPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
	classPattern  = regexp.MustCompile(`^[a-zA-Z0-9_ -]+$`)
)

// newPolicy extends the UGC policy so heading anchors and highlighter
// classes survive sanitization.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").Matching(anchorPattern).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").Matching(classPattern).OnElements("pre", "code", "span", "div")
	p.AllowAttrs("align").OnElements("th", "td")
	p.AllowAttrs("type", "checked", "disabled").OnElements("input")
	p.AllowElements("input")
	return p
}

// Render converts src to a Document. Empty input yields an empty Document.
func (r *Renderer) Render(src []byte) (*Document, error) {
	pc := parser.NewContext()
	root := r.md.Parser().Parse(text.NewReader(src), parser.WithContext(pc))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, root); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	body, err := wrapCodeBlocks(r.policy.SanitizeBytes(buf.Bytes()))
	if err != nil {
		return nil, err
	}

	doc := &Document{
		HTML:     body,
		Headings: heading.FromContext(pc),
	}

	fm := meta.Get(pc)
	doc.Title = metaString(fm, "title")
	doc.Description = metaString(fm, "description")
	return doc, nil
}

func metaString(fm map[string]any, key string) string {
	if fm == nil {
		return ""
	}
	if s, ok := fm[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
