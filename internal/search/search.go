// Package search answers free-text queries over the sections of one page.
//
// Scoring is plain substring matching: a title hit is worth 10, a content
// hit 1, and a section containing every query term somewhere gets a further 5.
// The browser runs the same rules from site/templates/search.js.
package search

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docsite/internal/doctree"
)

const (
	// MinQueryLen is the shortest trimmed query, in characters, that is
	// evaluated.
	MinQueryLen = 2
	// MaxResults bounds the length of a result list.
	MaxResults = 10
	// SnippetRadius is the number of characters kept on each side of a match.
	SnippetRadius = 60

	titleScore    = 10
	contentScore  = 1
	allTermsScore = 5
)

// Result is a ranked section match.
type Result = doctree.Result

// Index is an immutable set of sections. Build a new one to change it.
type Index struct {
	sections []entry
}

type entry struct {
	doctree.Section
	titleLower string
}

// NewIndex builds an Index over sections. Content is expected to be lower
// case already, as the indexer produces it; it is lowered again so that
// hand-built sections behave the same.
func NewIndex(sections []doctree.Section) *Index {
	idx := &Index{sections: make([]entry, len(sections))}
	for i, s := range sections {
		s.Content = strings.ToLower(s.Content)
		idx.sections[i] = entry{Section: s, titleLower: strings.ToLower(s.Title)}
	}
	return idx
}

// Sections returns a copy of the indexed sections in document order.
func (idx *Index) Sections() []doctree.Section {
	if idx == nil {
		return nil
	}
	out := make([]doctree.Section, len(idx.sections))
	for i, e := range idx.sections {
		out[i] = e.Section
	}
	return out
}

// Len returns the number of indexed sections.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.sections)
}

// Normalize trims and lower-cases a query.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// IsIdle reports whether query is too short to be evaluated.
func IsIdle(query string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(query)) < MinQueryLen
}

// Search scores every section against query and returns the best matches,
// highest score first. Sections with equal scores keep document order.
// Short queries yield nil. Search never fails.
func (idx *Index) Search(query string) []Result {
	if idx == nil || IsIdle(query) {
		return nil
	}
	q := Normalize(query)
	terms := strings.Fields(q)

	var results []Result
	for _, e := range idx.sections {
		titleHit := strings.Contains(e.titleLower, q)
		contentHit := strings.Contains(e.Content, q)

		score := 0
		if titleHit {
			score += titleScore
		}
		if contentHit {
			score += contentScore
		}
		if allTermsPresent(terms, e.titleLower, e.Content) {
			score += allTermsScore
		}
		if score == 0 {
			continue
		}

		r := Result{
			ID:    e.ID,
			Title: e.Title,
			Level: e.Level,
			Score: score,
		}
		if contentHit {
			r.Snippet = Snippet(e.Content, q)
		}
		results = append(results, r)
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return b.Score - a.Score
	})
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}

func allTermsPresent(terms []string, title, content string) bool {
	if len(terms) == 0 {
		return false
	}
	for _, t := range terms {
		if !strings.Contains(title, t) && !strings.Contains(content, t) {
			return false
		}
	}
	return true
}
