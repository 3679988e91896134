package parser

import (
	"io"
)

// MarkdownParser passes Markdown sources through unchanged.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Source, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Source{
		Title:    trimExt(filename, ".md", ".markdown"),
		Markdown: src,
	}, nil
}
