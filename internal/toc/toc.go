// Package toc renders the sidebar table of contents from a heading list.
package toc

import (
	"fmt"
	"html"
	"strings"

	"github.com/dgallion1/docsite/internal/doctree"
)

// DepthClass returns the link class for a heading depth. Depths 1 and 2
// render flush and have none.
func DepthClass(depth int) string {
	if depth <= 2 {
		return ""
	}
	return fmt.Sprintf("depth%d", depth)
}

// IndentOffset is the horizontal position, in pixels, of the indent marker
// drawn for headings deeper than 2.
func IndentOffset(depth int) int {
	return (depth-2)*14 - 5
}

// Render returns the <li> items of the table of contents, one per heading,
// each linking to the heading's anchor.
func Render(headings []doctree.Heading) string {
	var sb strings.Builder
	for _, h := range headings {
		class := "navLink"
		if dc := DepthClass(h.Depth); dc != "" {
			class += " " + dc
		}
		fmt.Fprintf(&sb, `<li class="navItem"><a href="#%s" class="%s">`, html.EscapeString(h.ID), class)
		if h.Depth > 2 {
			fmt.Fprintf(&sb, `<div class="navIndent" style="left: %dpx"></div>`, IndentOffset(h.Depth))
		}
		sb.WriteString(html.EscapeString(h.Text))
		sb.WriteString("</a></li>\n")
	}
	return sb.String()
}
