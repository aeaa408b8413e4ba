package annotate

import (
	"strings"

	"github.com/jvgags/Poe-Write/internal/markup"
)

// searchState holds the in-document search: a literal case-sensitive
// query, all match offsets and the index of the active match.
type searchState struct {
	query   string
	matches [][2]int
	current int // index into matches, -1 when there are none
}

// scan rescans text for the query. The scan is over the raw text, never a
// case-folded copy: folding can change byte lengths and skew every offset
// after the folded rune. Matches may overlap: the scan advances one byte
// past each match start, so "aaa" contains two "aa" matches. The active
// match is clamped, not reset, so a rescan after an edit keeps the user
// roughly where they were.
func (s *searchState) scan(text string) {
	s.matches = s.matches[:0]
	if s.query == "" {
		s.current = -1
		return
	}
	for i := 0; ; {
		idx := strings.Index(text[i:], s.query)
		if idx < 0 {
			break
		}
		start := i + idx
		s.matches = append(s.matches, [2]int{start, start + len(s.query)})
		i = start + 1
	}
	if len(s.matches) == 0 {
		s.current = -1
	} else if s.current < 0 {
		s.current = 0
	} else if s.current >= len(s.matches) {
		s.current = len(s.matches) - 1
	}
}

func (s *searchState) next() {
	if len(s.matches) == 0 {
		return
	}
	s.current = (s.current + 1) % len(s.matches)
}

func (s *searchState) prev() {
	if len(s.matches) == 0 {
		return
	}
	s.current = (s.current - 1 + len(s.matches)) % len(s.matches)
}

func (s *searchState) decorations() []markup.Decoration {
	var decs []markup.Decoration
	for i, m := range s.matches {
		kind := markup.DecorationMatch
		if i == s.current {
			kind = markup.DecorationCurrentMatch
		}
		decs = append(decs, markup.Decoration{Start: m[0], End: m[1], Kind: kind})
	}
	return decs
}
