package search

// State names what a result list should display.
type State string

const (
	StateIdle      State = "idle"       // query too short; show the typing hint
	StateNoResults State = "no_results" // query evaluated, nothing matched
	StateResults   State = "results"
)

// StatusOf distinguishes an idle query from one that matched nothing.
func StatusOf(query string, results []Result) State {
	switch {
	case IsIdle(query):
		return StateIdle
	case len(results) == 0:
		return StateNoResults
	default:
		return StateResults
	}
}

// Selection is the search surface's query text and keyboard cursor.
// Selected is -1 when nothing is selected. Methods return the new value.
type Selection struct {
	Query    string
	Selected int
}

// Open returns the state of a freshly opened search surface.
func Open() Selection {
	return Selection{Query: "", Selected: -1}
}

// WithQuery records new query text. The cursor resets since the result list
// is replaced.
func (s Selection) WithQuery(q string) Selection {
	return Selection{Query: q, Selected: -1}
}

// Next moves the cursor down, stopping at the last of n results.
func (s Selection) Next(n int) Selection {
	s.Selected = max(min(s.Selected+1, n-1), -1)
	return s
}

// Prev moves the cursor up, stopping at -1.
func (s Selection) Prev() Selection {
	s.Selected = max(s.Selected-1, -1)
	return s
}

// Confirm returns the anchor id of the selected result. ok is false when no
// valid result is selected.
func (s Selection) Confirm(results []Result) (id string, ok bool) {
	if s.Selected < 0 || s.Selected >= len(results) {
		return "", false
	}
	return results[s.Selected].ID, true
}
