package markup

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Mode is the editing mode of the duality engine.
type Mode string

const (
	// ModeMarkdown shows the canonical string directly.
	ModeMarkdown Mode = "markdown"
	// ModePreview shows rendered HTML and syncs edits back.
	ModePreview Mode = "preview"
)

// DefaultSyncDelay is the debounce applied to preview-surface input before
// the HTML is converted back into the canonical string.
const DefaultSyncDelay = 400 * time.Millisecond

// Engine keeps one canonical markdown string consistent with two editing
// surfaces. The markdown surface always mirrors the canonical string; the
// preview surface holds rendered HTML whose user edits are debounced and
// converted back. Programmatic surface writes go through guardedWrite so
// the engine's own writes never re-enter the input handlers; without the
// guard every mode switch would loop forever.
type Engine struct {
	mu       sync.Mutex
	logger   *slog.Logger
	conv     *Converter
	renderer *Renderer

	markdown Surface
	preview  Surface

	mode           Mode
	canonical      string
	highlightColor string

	programmatic atomic.Bool
	syncDelay    time.Duration
	syncTimer    *time.Timer
	syncPending  bool

	// onCanonical fires after every canonical-string change, outside the
	// engine lock. Wired to content persistence and annotation recompute.
	onCanonical func(content string)
}

// NewEngine creates an engine in ModeMarkdown over the two surfaces.
// onCanonical may be nil.
func NewEngine(conv *Converter, renderer *Renderer, markdown, preview Surface, highlightColor string, logger *slog.Logger, onCanonical func(string)) *Engine {
	e := &Engine{
		logger:         logger,
		conv:           conv,
		renderer:       renderer,
		markdown:       markdown,
		preview:        preview,
		mode:           ModeMarkdown,
		highlightColor: highlightColor,
		syncDelay:      DefaultSyncDelay,
		onCanonical:    onCanonical,
	}
	markdown.OnChange(e.handleMarkdownInput)
	preview.OnChange(e.handlePreviewInput)
	return e
}

// SetSyncDelay overrides the preview sync debounce. Zero disables the
// delay entirely (tests).
func (e *Engine) SetSyncDelay(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.syncDelay = d
}

// guardedWrite performs a programmatic surface write with the re-entrancy
// flag held so the synchronous change callbacks see it and bail out.
func (e *Engine) guardedWrite(fn func()) {
	e.programmatic.Store(true)
	defer e.programmatic.Store(false)
	fn()
}

// Load installs document content, migrating legacy HTML to markdown first.
// The engine always starts a document in ModeMarkdown. Returns the
// canonical content and whether a migration happened, so the caller can
// persist the upgraded form back.
func (e *Engine) Load(content string) (string, bool) {
	canonical, migrated := e.conv.MigrateLegacyContent(content)
	if migrated {
		e.logger.Info("migrated legacy html document", "chars", len(content))
	}

	e.mu.Lock()
	e.stopSyncLocked()
	e.canonical = canonical
	e.mode = ModeMarkdown
	e.mu.Unlock()

	e.guardedWrite(func() { e.markdown.SetText(canonical) })
	return canonical, migrated
}

// Mode returns the current editing mode.
func (e *Engine) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Canonical returns the canonical markdown string.
func (e *Engine) Canonical() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canonical
}

// SetHighlightColor changes the highlight tint and re-renders the preview
// if it is showing.
func (e *Engine) SetHighlightColor(color string) error {
	e.mu.Lock()
	e.highlightColor = color
	inPreview := e.mode == ModePreview
	e.mu.Unlock()
	if inPreview {
		return e.renderPreview()
	}
	return nil
}

// EnterPreview renders the canonical string into the preview surface and
// switches modes. A ConversionError leaves the engine in ModeMarkdown.
func (e *Engine) EnterPreview() error {
	e.Flush()
	if err := e.renderPreview(); err != nil {
		return err
	}
	e.mu.Lock()
	e.mode = ModePreview
	e.mu.Unlock()
	return nil
}

// EnterMarkdown flushes any pending preview sync and shows the canonical
// string. No conversion is needed: the canonical string was always the
// source of truth.
func (e *Engine) EnterMarkdown() {
	e.Flush()
	e.mu.Lock()
	e.mode = ModeMarkdown
	canonical := e.canonical
	e.mu.Unlock()
	e.guardedWrite(func() { e.markdown.SetText(canonical) })
}

func (e *Engine) renderPreview() error {
	e.mu.Lock()
	canonical := e.canonical
	color := e.highlightColor
	e.mu.Unlock()

	html, err := e.renderer.Render(canonical, color)
	if err != nil {
		return err
	}
	e.guardedWrite(func() { e.preview.SetText(html) })
	return nil
}

// handleMarkdownInput adopts the markdown surface text as the new
// canonical string.
func (e *Engine) handleMarkdownInput() {
	if e.programmatic.Load() {
		return
	}
	text := e.markdown.Text()

	e.mu.Lock()
	if e.mode != ModeMarkdown || text == e.canonical {
		e.mu.Unlock()
		return
	}
	e.canonical = text
	notify := e.onCanonical
	e.mu.Unlock()

	if notify != nil {
		notify(text)
	}
}

// handlePreviewInput schedules the debounced HTML-to-markdown reverse
// sync. Each keystroke restarts the timer.
func (e *Engine) handlePreviewInput() {
	if e.programmatic.Load() {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode != ModePreview {
		return
	}
	e.syncPending = true
	if e.syncDelay <= 0 {
		go e.syncPreview()
		return
	}
	if e.syncTimer != nil {
		e.syncTimer.Stop()
	}
	e.syncTimer = time.AfterFunc(e.syncDelay, e.syncPreview)
}

// Flush runs any pending preview sync immediately.
func (e *Engine) Flush() {
	e.mu.Lock()
	pending := e.syncPending
	e.stopSyncLocked()
	e.mu.Unlock()
	if pending {
		e.syncPreview()
	}
}

func (e *Engine) stopSyncLocked() {
	if e.syncTimer != nil {
		e.syncTimer.Stop()
		e.syncTimer = nil
	}
	e.syncPending = false
}

// syncPreview converts the current preview HTML back to markdown and
// overwrites the canonical string. Conversion failures fall back to plain
// text extraction inside the converter, so a malformed edit never wedges
// the document.
func (e *Engine) syncPreview() {
	html := e.preview.Text()
	text := e.conv.MarkdownOrPlainText(html)

	e.mu.Lock()
	e.syncPending = false
	if e.mode != ModePreview || text == e.canonical {
		e.mu.Unlock()
		return
	}
	e.canonical = text
	notify := e.onCanonical
	e.mu.Unlock()

	if notify != nil {
		notify(text)
	}
}
