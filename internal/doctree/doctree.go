package doctree

// Heading is a single heading extracted from the source document.
type Heading struct {
	Depth int    `json:"depth"` // 1..6
	Text  string `json:"text"`  // Trimmed plain text, inline markup flattened
	ID    string `json:"id"`    // URL-safe slug, unique within the document
}

// Section is the searchable unit: one heading plus the content that follows
// it up to the next heading.
type Section struct {
	ID      string `json:"id"`      // Owning heading's id
	Title   string `json:"title"`   // Original casing, trimmed
	Level   int    `json:"level"`   // Heading level 1..6
	Content string `json:"content"` // Lower-cased text between this heading and the next
}

// Result is a ranked search hit derived from a Section and a query.
type Result struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Level   int    `json:"level"`
	Snippet string `json:"snippet"`
	Score   int    `json:"score"`
}
