package site

import (
	"encoding/json"
	"fmt"

	"github.com/dgallion1/docsite/internal/doctree"
)

// SearchIndexFile is the document the client-side search loads.
type SearchIndexFile struct {
	Sections []doctree.Section `json:"sections"`
}

func marshalSearchIndex(sections []doctree.Section) ([]byte, error) {
	if sections == nil {
		sections = []doctree.Section{}
	}
	data, err := json.Marshal(SearchIndexFile{Sections: sections})
	if err != nil {
		return nil, fmt.Errorf("marshal search index: %w", err)
	}
	return data, nil
}
