package api

import (
	"net/http"

	"github.com/dgallion1/docsite/internal/doctree"
	"github.com/dgallion1/docsite/internal/search"
)

type searchResponse struct {
	Query   string          `json:"query"`
	State   search.State    `json:"state"`
	Results []search.Result `json:"results"`
}

// handleSearch answers a query against the currently published index.
// Titles and snippets come back with matches wrapped in <mark>.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results := s.engine.Search(q)
	writeJSON(w, http.StatusOK, searchResponse{
		Query:   q,
		State:   search.StatusOf(q, results),
		Results: search.HighlightResults(results, q),
	})
}

// handleHeadings lists the headings of the last published build.
func (s *Server) handleHeadings(w http.ResponseWriter, r *http.Request) {
	headings := []doctree.Heading{}
	if h := s.headings.Load(); h != nil {
		headings = *h
	}
	writeJSON(w, http.StatusOK, map[string]any{"headings": headings})
}
