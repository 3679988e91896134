package search

import (
	"sync/atomic"

	"github.com/dgallion1/docsite/internal/doctree"
)

// Engine holds the current Index. Publish swaps in a fully built index;
// concurrent searches see either the old or the new one.
type Engine struct {
	idx atomic.Pointer[Index]
}

// NewEngine returns an Engine serving an empty index.
func NewEngine() *Engine {
	e := &Engine{}
	e.idx.Store(NewIndex(nil))
	return e
}

// Publish replaces the served index.
func (e *Engine) Publish(idx *Index) {
	if idx == nil {
		idx = NewIndex(nil)
	}
	e.idx.Store(idx)
}

// Rebuild indexes sections and publishes the result.
func (e *Engine) Rebuild(sections []doctree.Section) {
	e.Publish(NewIndex(sections))
}

// Index returns the currently served index.
func (e *Engine) Index() *Index {
	return e.idx.Load()
}

// Search runs query against the current index.
func (e *Engine) Search(query string) []Result {
	return e.idx.Load().Search(query)
}
