package annotate

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jvgags/Poe-Write/internal/markup"
)

var (
	boldOnlyLineRe   = regexp.MustCompile(`^\*\*.*\*\*$`)
	trailingParenRe  = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
	leadingDashRe    = regexp.MustCompile(`^-\s*`)
)

// ParseLexicon turns a user-maintained newline-delimited phrase list into
// flat literal phrases. The format tolerates the way people actually keep
// these lists: '#' comment lines, bold section headers, '- ' list
// prefixes, comma-separated synonym groups and quoted phrases. A trailing
// parenthetical annotation is stripped only on non-comma lines, where it
// is a note rather than a synonym.
func ParseLexicon(lexicon string) []string {
	var phrases []string
	for _, line := range strings.Split(lexicon, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if boldOnlyLineRe.MatchString(line) {
			continue
		}
		line = leadingDashRe.ReplaceAllString(line, "")
		if strings.Contains(line, ",") {
			for _, part := range strings.Split(line, ",") {
				phrase := stripQuotes(strings.TrimSpace(part))
				if phrase != "" {
					phrases = append(phrases, phrase)
				}
			}
			continue
		}
		line = trailingParenRe.ReplaceAllString(line, "")
		phrase := stripQuotes(strings.TrimSpace(line))
		if phrase != "" {
			phrases = append(phrases, phrase)
		}
	}
	return phrases
}

func stripQuotes(s string) string {
	return strings.Trim(s, `"'`)
}

// PhraseMatcher finds lexicon phrases in text via one case-insensitive,
// word-boundary alternation. Phrases are ordered longest first so a short
// phrase never shadows a longer one it is a prefix of.
type PhraseMatcher struct {
	re *regexp.Regexp
}

// NewPhraseMatcher compiles a matcher for the lexicon. Returns nil when
// the lexicon contains no phrases.
func NewPhraseMatcher(lexicon string) *PhraseMatcher {
	phrases := ParseLexicon(lexicon)
	if len(phrases) == 0 {
		return nil
	}
	sort.SliceStable(phrases, func(i, j int) bool {
		return len(phrases[i]) > len(phrases[j])
	})
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}
	re := regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
	return &PhraseMatcher{re: re}
}

// Find returns an underline decoration with a tooltip for every match.
func (m *PhraseMatcher) Find(text string) []markup.Decoration {
	if m == nil {
		return nil
	}
	var decs []markup.Decoration
	for _, loc := range m.re.FindAllStringIndex(text, -1) {
		decs = append(decs, markup.Decoration{
			Start:   loc[0],
			End:     loc[1],
			Kind:    markup.DecorationUnderline,
			Tooltip: "AI-ism: " + text[loc[0]:loc[1]],
		})
	}
	return decs
}

// matches returns raw match offsets, used by the preview walker.
func (m *PhraseMatcher) matches(text string) [][]int {
	if m == nil {
		return nil
	}
	return m.re.FindAllStringIndex(text, -1)
}
