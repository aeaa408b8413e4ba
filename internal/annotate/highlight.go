package annotate

import (
	"regexp"

	"github.com/jvgags/Poe-Write/internal/markup"
)

// highlightRe matches ==text== spans in the canonical string.
var highlightRe = regexp.MustCompile(`==([^=]+)==`)

// ComputeHighlights produces three decorations per highlight span: the
// opening and closing markers are hidden and the inner text is tinted.
// The markers stay in the stored text; only their rendering disappears.
func ComputeHighlights(text, color string) []markup.Decoration {
	var decs []markup.Decoration
	for _, m := range highlightRe.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[1]
		innerStart, innerEnd := m[2], m[3]
		decs = append(decs,
			markup.Decoration{Start: start, End: innerStart, Kind: markup.DecorationHidden},
			markup.Decoration{Start: innerStart, End: innerEnd, Kind: markup.DecorationHighlight, Color: color},
			markup.Decoration{Start: innerEnd, End: end, Kind: markup.DecorationHidden},
		)
	}
	return decs
}
