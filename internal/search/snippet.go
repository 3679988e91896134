package search

import "strings"

const ellipsis = "..."

// Snippet returns the text around the first occurrence of query in content:
// SnippetRadius characters either side, clamped to the content, with "..."
// marking each side that was cut. It returns "" when query does not occur.
// Offsets count characters, not bytes.
func Snippet(content, query string) string {
	if query == "" {
		return ""
	}
	byteIdx := strings.Index(content, query)
	if byteIdx < 0 {
		return ""
	}

	runes := []rune(content)
	match := len([]rune(content[:byteIdx]))
	qlen := len([]rune(query))

	start := max(0, match-SnippetRadius)
	end := min(len(runes), match+qlen+SnippetRadius)

	var sb strings.Builder
	if start > 0 {
		sb.WriteString(ellipsis)
	}
	sb.WriteString(string(runes[start:end]))
	if end < len(runes) {
		sb.WriteString(ellipsis)
	}
	return sb.String()
}
