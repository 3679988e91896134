// Package heading extracts the ordered heading list of a Markdown document and
// assigns each heading the anchor id used by the table of contents, the
// rendered page and the search index.
package heading

import (
	"bytes"
	"strings"

	"github.com/dgallion1/docsite/internal/doctree"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ParserExtensions are the goldmark extensions that change how a document is
// parsed. The renderer must use the same set, otherwise a heading such as
// "~~old~~ API" would flatten to different text in the two passes.
func ParserExtensions() []goldmark.Extender {
	return []goldmark.Extender{
		extension.GFM,
		meta.Meta,
	}
}

// Extract parses src and returns its headings in document order.
// Headings whose text is blank are skipped. Empty input yields nil.
func Extract(src []byte) []doctree.Heading {
	md := goldmark.New(goldmark.WithExtensions(ParserExtensions()...))
	doc := md.Parser().Parse(text.NewReader(src))
	return Walk(doc, src, nil)
}

// Walk visits every heading under root in document order, assigns ids with a
// fresh Slugger and returns the kept headings. If fn is non-nil it is called
// for each kept heading together with its AST node.
func Walk(root ast.Node, src []byte, fn func(n *ast.Heading, h doctree.Heading)) []doctree.Heading {
	slugger := NewSlugger()
	var headings []doctree.Heading

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		node, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		t := strings.TrimSpace(Text(node, src))
		if t == "" {
			return ast.WalkSkipChildren, nil
		}
		h := doctree.Heading{
			Depth: node.Level,
			Text:  t,
			ID:    slugger.Slug(t),
		}
		headings = append(headings, h)
		if fn != nil {
			fn(node, h)
		}
		return ast.WalkSkipChildren, nil
	})

	return headings
}

// Text flattens the inline children of n to plain text. Emphasis, links,
// strikethrough and code spans contribute the text they wrap; images and raw
// HTML contribute nothing.
func Text(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	writeText(&buf, n, src)
	return buf.String()
}

func writeText(buf *bytes.Buffer, n ast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			v := node.Segment.Value(src)
			if !node.IsRaw() {
				v = plainText(v)
			}
			buf.Write(v)
			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(node.Value)
		case *ast.AutoLink:
			buf.Write(node.Label(src))
		case *ast.Image, *ast.RawHTML:
			// No visible text.
		default:
			writeText(buf, c, src)
		}
	}
}

// plainText resolves backslash escapes and character references the way
// goldmark's HTML writer does, so "A &amp; B" and "A \& B" both read "A & B".
func plainText(v []byte) []byte {
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	return util.ResolveEntityNames(v)
}

var headingsKey = parser.NewContextKey()

// Transformer is a goldmark AST transformer that sets the id attribute of
// every non-blank heading, using the same walk as Extract. The headings it
// assigned are stored in the parser context; see FromContext.
type Transformer struct{}

func (Transformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	src := reader.Source()
	headings := Walk(doc, src, func(n *ast.Heading, h doctree.Heading) {
		n.SetAttributeString("id", []byte(h.ID))
	})
	pc.Set(headingsKey, headings)
}

// FromContext returns the headings recorded by Transformer during a parse
// that used pc.
func FromContext(pc parser.Context) []doctree.Heading {
	v, _ := pc.Get(headingsKey).([]doctree.Heading)
	return v
}
