// Package index partitions a rendered page into heading-scoped sections for
// search.
package index

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/docsite/internal/doctree"
)

// navClasses mark page regions whose text is never indexed.
var navClasses = []string{"nav", "sidebar"}

// Parse reads a full HTML page and builds its sections.
func Parse(r io.Reader) ([]doctree.Section, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return Build(root), nil
}

// Build returns one Section per h1-h6 element that carries an id, in
// document order. A section's content is the text of the siblings that
// follow its heading, up to the next indexed heading or the end of the
// parent. Siblings inside a nav or sidebar region are skipped.
func Build(root *html.Node) []doctree.Section {
	headings := collectHeadings(root)
	sections := make([]doctree.Section, 0, len(headings))

	for i, h := range headings {
		var next *html.Node
		if i+1 < len(headings) {
			next = headings[i+1]
		}

		var parts []string
		for sib := h.NextSibling; sib != nil && sib != next; sib = sib.NextSibling {
			switch sib.Type {
			case html.ElementNode:
				if inNavigation(sib) {
					continue
				}
				parts = append(parts, textContent(sib))
			case html.TextNode:
				if s := strings.TrimSpace(sib.Data); s != "" {
					parts = append(parts, s)
				}
			}
		}

		sections = append(sections, doctree.Section{
			ID:      attr(h, "id"),
			Title:   strings.TrimSpace(textContent(h)),
			Level:   headingLevel(h),
			Content: strings.ToLower(strings.TrimSpace(strings.Join(parts, " "))),
		})
	}
	return sections
}

func collectHeadings(root *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && headingLevel(n) > 0 && attr(n, "id") != "" {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func headingLevel(n *html.Node) int {
	switch n.DataAtom {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

// inNavigation reports whether n or one of its ancestors is a <nav> element
// or has a navigation class.
func inNavigation(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if n.DataAtom == atom.Nav {
			return true
		}
		for _, class := range strings.Fields(attr(n, "class")) {
			if slices.Contains(navClasses, class) {
				return true
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textContent concatenates the text under n. Buttons, scripts and styles
// contribute nothing.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
		case n.Type == html.ElementNode && (n.DataAtom == atom.Button || n.DataAtom == atom.Script || n.DataAtom == atom.Style):
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
