package handler

import (
	"log/slog"
	"net/http"

	"github.com/jvgags/Poe-Write/internal/annotate"
	"github.com/jvgags/Poe-Write/internal/domain"
	"github.com/jvgags/Poe-Write/internal/httputil"
	"github.com/jvgags/Poe-Write/internal/markup"
	"github.com/jvgags/Poe-Write/internal/session"
)

// EditorHandler drives the active editing session: text input, mode
// switches, search and decoration queries.
type EditorHandler struct {
	sessions *session.Manager
	logger   *slog.Logger
}

func NewEditorHandler(sessions *session.Manager, logger *slog.Logger) *EditorHandler {
	return &EditorHandler{sessions: sessions, logger: logger}
}

func (h *EditorHandler) current(w http.ResponseWriter) (*session.Session, bool) {
	s, ok := h.sessions.Current()
	if !ok {
		respondError(w, h.logger, &domain.NotFoundError{Message: "no document is open"})
		return nil, false
	}
	return s, true
}

// Open loads a document into a fresh session.
// POST /api/editor/open
func (h *EditorHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID  string `json:"project_id"`
		DocumentID string `json:"document_id"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s, err := h.sessions.Open(req.ProjectID, req.DocumentID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	content := s.Engine.Canonical()
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"content":    content,
		"mode":       s.Engine.Mode(),
		"word_count": markup.CountWords(content),
	})
}

// Input replaces the markdown surface text, as the editor widget does on
// every keystroke batch.
// POST /api/editor/input
func (h *EditorHandler) Input(w http.ResponseWriter, r *http.Request) {
	s, ok := h.current(w)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.Markdown.SetText(req.Text)
	httputil.RespondJSON(w, http.StatusOK, map[string]int{
		"word_count": markup.CountWords(s.Engine.Canonical()),
	})
}

// PreviewInput replaces the preview surface HTML after a rich-view edit;
// the reverse sync runs on the engine's debounce.
// POST /api/editor/preview-input
func (h *EditorHandler) PreviewInput(w http.ResponseWriter, r *http.Request) {
	s, ok := h.current(w)
	if !ok {
		return
	}
	var req struct {
		HTML string `json:"html"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.Preview.SetText(req.HTML)
	w.WriteHeader(http.StatusAccepted)
}

// SetMode switches between the markdown and preview views. Entering
// preview returns the rendered, phrase-annotated HTML.
// POST /api/editor/mode
func (h *EditorHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	s, ok := h.current(w)
	if !ok {
		return
	}
	var req struct {
		Mode markup.Mode `json:"mode"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Mode {
	case markup.ModePreview:
		if err := s.Engine.EnterPreview(); err != nil {
			respondError(w, h.logger, err)
			return
		}
		annotated, err := s.Overlay.AnnotatePreview(s.Preview.Text())
		if err != nil {
			respondError(w, h.logger, err)
			return
		}
		httputil.RespondJSON(w, http.StatusOK, map[string]string{
			"mode": string(markup.ModePreview),
			"html": annotated,
		})
	case markup.ModeMarkdown:
		s.Engine.EnterMarkdown()
		httputil.RespondJSON(w, http.StatusOK, map[string]string{
			"mode":    string(markup.ModeMarkdown),
			"content": s.Engine.Canonical(),
		})
	default:
		httputil.RespondError(w, http.StatusBadRequest, "unknown mode")
	}
}

// Save flushes the session content to the store.
// POST /api/editor/save
func (h *EditorHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Save(); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Close saves and drops the session.
// POST /api/editor/close
func (h *EditorHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Close(); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Decorations returns the three overlay layers, recomputed now.
// GET /api/editor/decorations
func (h *EditorHandler) Decorations(w http.ResponseWriter, r *http.Request) {
	s, ok := h.current(w)
	if !ok {
		return
	}
	s.Overlay.Recompute()
	httputil.RespondJSON(w, http.StatusOK, map[string][]markup.Decoration{
		annotate.LayerHighlight: s.Markdown.Decorations(annotate.LayerHighlight),
		annotate.LayerPhrases:   s.Markdown.Decorations(annotate.LayerPhrases),
		annotate.LayerSearch:    s.Markdown.Decorations(annotate.LayerSearch),
	})
}

// Search starts or updates the in-document search.
// POST /api/editor/search
func (h *EditorHandler) Search(w http.ResponseWriter, r *http.Request) {
	s, ok := h.current(w)
	if !ok {
		return
	}
	var req struct {
		Query string `json:"query"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	current, total := s.Overlay.SetQuery(req.Query)
	httputil.RespondJSON(w, http.StatusOK, map[string]int{"current": current, "total": total})
}

// SearchNext advances to the next match with wraparound.
// POST /api/editor/search/next
func (h *EditorHandler) SearchNext(w http.ResponseWriter, r *http.Request) {
	s, ok := h.current(w)
	if !ok {
		return
	}
	current, total := s.Overlay.FindNext()
	httputil.RespondJSON(w, http.StatusOK, map[string]int{"current": current, "total": total})
}

// SearchPrev steps back to the previous match with wraparound.
// POST /api/editor/search/prev
func (h *EditorHandler) SearchPrev(w http.ResponseWriter, r *http.Request) {
	s, ok := h.current(w)
	if !ok {
		return
	}
	current, total := s.Overlay.FindPrev()
	httputil.RespondJSON(w, http.StatusOK, map[string]int{"current": current, "total": total})
}

// Replace substitutes the current match, or every match with all=true.
// POST /api/editor/search/replace
func (h *EditorHandler) Replace(w http.ResponseWriter, r *http.Request) {
	s, ok := h.current(w)
	if !ok {
		return
	}
	var req struct {
		Replacement string `json:"replacement"`
		All         bool   `json:"all"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	replaced := 0
	if req.All {
		replaced = s.Overlay.ReplaceAll(req.Replacement)
	} else if s.Overlay.ReplaceCurrent(req.Replacement) {
		replaced = 1
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]int{"replaced": replaced})
}
