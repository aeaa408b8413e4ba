package markup

import "sync"

// DecorationKind selects the visual treatment of a decorated range.
type DecorationKind string

const (
	// DecorationHidden renders the range as zero-width (marker hiding).
	DecorationHidden DecorationKind = "hidden"
	// DecorationHighlight tints the range background with Color.
	DecorationHighlight DecorationKind = "highlight"
	// DecorationUnderline draws a non-destructive underline with Tooltip.
	DecorationUnderline DecorationKind = "underline"
	// DecorationMatch marks a search match.
	DecorationMatch DecorationKind = "match"
	// DecorationCurrentMatch marks the active search match.
	DecorationCurrentMatch DecorationKind = "current-match"
)

// Decoration is one styled range over the surface text. Offsets are byte
// offsets into the surface content, end exclusive.
type Decoration struct {
	Start   int            `json:"start"`
	End     int            `json:"end"`
	Kind    DecorationKind `json:"kind"`
	Color   string         `json:"color,omitempty"`
	Tooltip string         `json:"tooltip,omitempty"`
}

// Surface is the editing widget boundary: offset-addressed text, range
// replacement, per-layer decorations and change notification. The widget
// itself lives outside this system; Buffer is the in-process stand-in.
type Surface interface {
	Text() string
	SetText(text string)
	ReplaceRange(start, end int, text string)
	SetDecorations(layer string, decs []Decoration)
	ClearDecorations(layer string)
	OnChange(fn func())
}

// Buffer is the in-memory Surface implementation backing editor sessions
// and tests. Change callbacks fire synchronously on every text mutation.
type Buffer struct {
	mu        sync.Mutex
	text      string
	layers    map[string][]Decoration
	listeners []func()
}

func NewBuffer(text string) *Buffer {
	return &Buffer{text: text, layers: make(map[string][]Decoration)}
}

func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	b.text = text
	listeners := append([]func(){}, b.listeners...)
	b.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

func (b *Buffer) ReplaceRange(start, end int, text string) {
	b.mu.Lock()
	if start < 0 {
		start = 0
	}
	if end > len(b.text) {
		end = len(b.text)
	}
	if start > end {
		start = end
	}
	b.text = b.text[:start] + text + b.text[end:]
	listeners := append([]func(){}, b.listeners...)
	b.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

func (b *Buffer) SetDecorations(layer string, decs []Decoration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.layers[layer] = append([]Decoration(nil), decs...)
}

func (b *Buffer) ClearDecorations(layer string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.layers, layer)
}

// Decorations returns the current decorations of one layer.
func (b *Buffer) Decorations(layer string) []Decoration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Decoration(nil), b.layers[layer]...)
}

func (b *Buffer) OnChange(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}
