package search

import (
	"html"
	"regexp"
	"strings"
)

// Highlight HTML-escapes text and wraps every case-insensitive occurrence of
// the trimmed query in <mark>. The query is matched literally.
func Highlight(text, query string) string {
	q := strings.TrimSpace(query)
	if q == "" {
		return html.EscapeString(text)
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(q))

	var sb strings.Builder
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		sb.WriteString(html.EscapeString(text[last:loc[0]]))
		sb.WriteString("<mark>")
		sb.WriteString(html.EscapeString(text[loc[0]:loc[1]]))
		sb.WriteString("</mark>")
		last = loc[1]
	}
	sb.WriteString(html.EscapeString(text[last:]))
	return sb.String()
}

// HighlightResults returns copies of results with title and snippet passed
// through Highlight.
func HighlightResults(results []Result, query string) []Result {
	out := make([]Result, len(results))
	for i, r := range results {
		r.Title = Highlight(r.Title, query)
		r.Snippet = Highlight(r.Snippet, query)
		out[i] = r
	}
	return out
}
