package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser renders CSV files as GFM tables, one section per batch of rows.
type CSVParser struct{}

const csvBatchSize = 20

func (p *CSVParser) Parse(r io.Reader, filename string) (*Source, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	src := &Source{Title: trimExt(filename, ".csv")}
	if len(records) == 0 {
		return src, nil
	}

	headers := records[0]
	dataRows := records[1:]

	var md strings.Builder
	md.WriteString(atxHeading(1, src.Title))
	md.WriteString("\n")

	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := min(i+csvBatchSize, len(dataRows))

		// 1-indexed, header is row 1.
		fmt.Fprintf(&md, "\n%s\n\n", atxHeading(2, fmt.Sprintf("Rows %d-%d", i+2, end+1)))
		writeTableRow(&md, headers, len(headers))
		md.WriteString("|")
		for range headers {
			md.WriteString(" --- |")
		}
		md.WriteString("\n")
		for _, row := range dataRows[i:end] {
			writeTableRow(&md, row, len(headers))
		}
	}

	src.Markdown = []byte(md.String())
	return src, nil
}

func writeTableRow(sb *strings.Builder, cells []string, width int) {
	sb.WriteString("|")
	for j := 0; j < width; j++ {
		cell := ""
		if j < len(cells) {
			cell = escapeCell(cells[j])
		}
		sb.WriteString(" " + cell + " |")
	}
	sb.WriteString("\n")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
