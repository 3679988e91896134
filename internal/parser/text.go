package parser

import (
	"bufio"
	"io"
	"strings"
)

// TextParser handles plain text files. Each blank-line separated block
// becomes a Markdown paragraph with its line breaks preserved.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*Source, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				// Two trailing spaces keep the hard line break in Markdown.
				current.WriteString("  \n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &Source{
		Title:    trimExt(filename, ".txt"),
		Markdown: []byte(strings.Join(paragraphs, "\n\n")),
	}, nil
}
