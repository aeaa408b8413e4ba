package annotate

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jvgags/Poe-Write/internal/domain/models"
	"github.com/jvgags/Poe-Write/internal/markup"
)

// Layer names under which decorations are applied to the surface. The
// three layers are independent: each one is cleared and recomputed on its
// own, never merged.
const (
	LayerHighlight = "highlight"
	LayerPhrases   = "aiism"
	LayerSearch    = "search"
)

// DefaultDebounce is the delay between a content change and the full
// overlay recompute.
const DefaultDebounce = 150 * time.Millisecond

// Engine maintains the three decoration layers over an editing surface.
// Every update is a full clear-rescan-reapply of the affected layer;
// recompute is idempotent so overlapping triggers are harmless.
type Engine struct {
	mu      sync.Mutex
	surface markup.Surface
	logger  *slog.Logger

	highlightColor string
	docType        models.DocumentType
	matcher        *PhraseMatcher
	search         searchState

	debounce time.Duration
	timer    *time.Timer
}

// NewEngine creates an overlay engine bound to the surface and schedules a
// recompute on every surface change.
func NewEngine(surface markup.Surface, highlightColor, lexicon string, logger *slog.Logger) *Engine {
	e := &Engine{
		surface:        surface,
		logger:         logger,
		highlightColor: highlightColor,
		matcher:        NewPhraseMatcher(lexicon),
		search:         searchState{current: -1},
		debounce:       DefaultDebounce,
	}
	surface.OnChange(e.Schedule)
	return e
}

// SetDebounce overrides the recompute delay. Zero recomputes synchronously
// on every change (tests).
func (e *Engine) SetDebounce(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.debounce = d
}

// SetDocumentType records the active document's type. Phrase detection
// only runs for Chapter documents.
func (e *Engine) SetDocumentType(t models.DocumentType) {
	e.mu.Lock()
	e.docType = t
	e.mu.Unlock()
	e.Recompute()
}

// SetHighlightColor changes the tint and recomputes the highlight layer.
func (e *Engine) SetHighlightColor(color string) {
	e.mu.Lock()
	e.highlightColor = color
	e.mu.Unlock()
	e.Recompute()
}

// SetLexicon rebuilds the phrase matcher from a new lexicon.
func (e *Engine) SetLexicon(lexicon string) {
	matcher := NewPhraseMatcher(lexicon)
	e.mu.Lock()
	e.matcher = matcher
	e.mu.Unlock()
	e.Recompute()
}

// Schedule queues a debounced recompute. Each call restarts the timer, so
// a typing burst costs one recompute.
func (e *Engine) Schedule() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.debounce <= 0 {
		go e.Recompute()
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.debounce, e.Recompute)
}

// Recompute rebuilds all three layers from the current surface text.
func (e *Engine) Recompute() {
	text := e.surface.Text()

	e.mu.Lock()
	color := e.highlightColor
	var matcher *PhraseMatcher
	if e.docType == models.TypeChapter {
		matcher = e.matcher
	}
	e.search.scan(text)
	searchDecs := e.search.decorations()
	e.mu.Unlock()

	e.surface.SetDecorations(LayerHighlight, ComputeHighlights(text, color))
	e.surface.SetDecorations(LayerPhrases, matcher.Find(text))
	e.surface.SetDecorations(LayerSearch, searchDecs)
}

// AnnotatePreview splices phrase-detection spans into rendered preview
// HTML, honoring the Chapter-only rule.
func (e *Engine) AnnotatePreview(html string) (string, error) {
	e.mu.Lock()
	matcher := e.matcher
	if e.docType != models.TypeChapter {
		matcher = nil
	}
	e.mu.Unlock()
	return AnnotatePreviewHTML(html, matcher)
}

// SetQuery starts or updates a search and returns the 1-based active
// match and total count (0, 0 when nothing matches).
func (e *Engine) SetQuery(query string) (current, total int) {
	e.mu.Lock()
	e.search.query = query
	e.search.current = -1
	e.mu.Unlock()
	e.Recompute()
	return e.position()
}

// FindNext advances to the next match, wrapping past the last one.
func (e *Engine) FindNext() (current, total int) {
	e.mu.Lock()
	e.search.next()
	e.mu.Unlock()
	e.Recompute()
	return e.position()
}

// FindPrev steps back to the previous match, wrapping past the first one.
func (e *Engine) FindPrev() (current, total int) {
	e.mu.Lock()
	e.search.prev()
	e.mu.Unlock()
	e.Recompute()
	return e.position()
}

func (e *Engine) position() (current, total int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.search.current < 0 {
		return 0, len(e.search.matches)
	}
	return e.search.current + 1, len(e.search.matches)
}

// ClearSearch drops the query and the search layer.
func (e *Engine) ClearSearch() {
	e.mu.Lock()
	e.search = searchState{current: -1}
	e.mu.Unlock()
	e.surface.ClearDecorations(LayerSearch)
}

// ReplaceCurrent substitutes the active match and rescans. Reports whether
// a match was replaced.
func (e *Engine) ReplaceCurrent(replacement string) bool {
	e.mu.Lock()
	if e.search.current < 0 || e.search.current >= len(e.search.matches) {
		e.mu.Unlock()
		return false
	}
	m := e.search.matches[e.search.current]
	e.mu.Unlock()

	e.surface.ReplaceRange(m[0], m[1], replacement)
	e.Recompute()
	return true
}

// ReplaceAll substitutes every non-overlapping match in one pass and
// returns the replacement count.
func (e *Engine) ReplaceAll(replacement string) int {
	text := e.surface.Text()

	e.mu.Lock()
	e.search.scan(text)
	matches := append([][2]int(nil), e.search.matches...)
	e.mu.Unlock()
	if len(matches) == 0 {
		return 0
	}

	var b strings.Builder
	last, count := 0, 0
	for _, m := range matches {
		if m[0] < last {
			continue
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(replacement)
		last = m[1]
		count++
	}
	b.WriteString(text[last:])

	e.surface.SetText(b.String())
	e.Recompute()
	return count
}
