package heading

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// FallbackSlug is used when a heading has visible text but nothing in it
// survives slugging (e.g. "!!!" or a heading written entirely in CJK).
const FallbackSlug = "section"

var (
	slugStrip = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSep   = regexp.MustCompile(`[\s-]+`)
)

// Slugify converts heading text into a URL fragment. Letters are lower-cased
// and decomposed so accented Latin letters keep their base form, anything
// outside [a-z0-9-] and whitespace is dropped, and runs of whitespace or
// hyphens collapse to a single hyphen.
func Slugify(s string) string {
	s = norm.NFD.String(strings.ToLower(s))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSep.ReplaceAllString(strings.TrimSpace(s), "-")
	return strings.Trim(s, "-")
}

// Slugger hands out unique slugs for one extraction pass. The first heading
// that produces a slug keeps it bare; later ones get -2, -3, ... appended.
// A Slugger must not be shared between documents.
type Slugger struct {
	used map[string]bool
	next map[string]int
}

func NewSlugger() *Slugger {
	return &Slugger{
		used: make(map[string]bool),
		next: make(map[string]int),
	}
}

// Slug returns a slug for text that has not been returned before by this Slugger.
func (s *Slugger) Slug(text string) string {
	base := Slugify(text)
	if base == "" {
		base = FallbackSlug
	}
	if !s.used[base] {
		s.used[base] = true
		return base
	}

	n := s.next[base]
	if n < 2 {
		n = 2
	}
	for {
		cand := base + "-" + strconv.Itoa(n)
		n++
		if !s.used[cand] {
			s.used[cand] = true
			s.next[base] = n
			return cand
		}
	}
}
