package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jvgags/Poe-Write/internal/assist"
	"github.com/jvgags/Poe-Write/internal/domain"
	"github.com/jvgags/Poe-Write/internal/httputil"
	"github.com/jvgags/Poe-Write/internal/session"
	"github.com/jvgags/Poe-Write/internal/store"
)

// AssistHandler runs the AI flows against the active session. Generated
// text is streamed into the editor only after the full response arrives,
// so a failed request never inserts anything.
type AssistHandler struct {
	orch     *assist.Orchestrator
	sessions *session.Manager
	store    *store.Store
	logger   *slog.Logger
}

func NewAssistHandler(orch *assist.Orchestrator, sessions *session.Manager, st *store.Store, logger *slog.Logger) *AssistHandler {
	return &AssistHandler{orch: orch, sessions: sessions, store: st, logger: logger}
}

type generateRequest struct {
	Model        string   `json:"model"`
	Temperature  *float64 `json:"temperature"`
	MaxTokens    *int     `json:"max_tokens"`
	ContextNotes string   `json:"context_notes"`
}

// params builds GenerateParams from the request and the active session,
// defaulting model, temperature and token count from settings.
func (h *AssistHandler) params(s *session.Session, req generateRequest) assist.GenerateParams {
	settings := h.store.Settings()
	p := assist.GenerateParams{
		ProjectID:    s.ProjectID,
		DocumentID:   s.DocumentID,
		CurrentText:  s.Engine.Canonical(),
		Model:        req.Model,
		Temperature:  settings.LastTemperature,
		MaxTokens:    settings.LastTokenCount,
		ContextNotes: req.ContextNotes,
	}
	if p.Model == "" {
		p.Model = settings.LastUsedModel
	}
	if req.Temperature != nil {
		p.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		p.MaxTokens = *req.MaxTokens
	}
	return p
}

func (h *AssistHandler) session(w http.ResponseWriter) (*session.Session, bool) {
	s, ok := h.sessions.Current()
	if !ok {
		respondError(w, h.logger, &domain.NotFoundError{Message: "no document is open"})
		return nil, false
	}
	return s, true
}

// Continue generates a continuation and streams it into the editor at
// the end of the text (or at the top for an empty document).
// POST /api/assist/continue
func (h *AssistHandler) Continue(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w)
	if !ok {
		return
	}
	var req generateRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.Engine.Flush()
	p := h.params(s, req)

	text, err := h.orch.Continue(r.Context(), p)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	start := len(p.CurrentText)
	if strings.TrimSpace(p.CurrentText) == "" {
		start = 0
	}
	if err := s.Inserter.Stream(text, start); err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusAccepted, map[string]int{"chars": len(text), "start": start})
}

// Improve rewrites the selected range per the instructions and replaces
// it in place.
// POST /api/assist/improve
func (h *AssistHandler) Improve(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w)
	if !ok {
		return
	}
	var req struct {
		generateRequest
		Start        int    `json:"start"`
		End          int    `json:"end"`
		Instructions string `json:"instructions"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.Engine.Flush()
	p := h.params(s, req.generateRequest)
	if req.Start < 0 || req.End > len(p.CurrentText) || req.Start >= req.End {
		httputil.RespondError(w, http.StatusBadRequest, "invalid selection range")
		return
	}
	selected := p.CurrentText[req.Start:req.End]

	improved, err := h.orch.Improve(r.Context(), selected, req.Instructions, p.Model, p.Temperature)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	s.Markdown.ReplaceRange(req.Start, req.End, improved)
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"text": improved})
}

// Brainstorm returns five ideas without touching the editor.
// POST /api/assist/brainstorm
func (h *AssistHandler) Brainstorm(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w)
	if !ok {
		return
	}
	var req generateRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.Engine.Flush()

	ideas, err := h.orch.Brainstorm(r.Context(), h.params(s, req))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"ideas": ideas})
}

// GoGenerate runs the non-fiction flow and streams the article into the
// editor at the end of the current text.
// POST /api/assist/go
func (h *AssistHandler) GoGenerate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w)
	if !ok {
		return
	}
	var req generateRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.Engine.Flush()
	p := h.params(s, req)

	text, err := h.orch.GoGenerate(r.Context(), p)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	start := len(p.CurrentText)
	if err := s.Inserter.Stream(text, start); err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusAccepted, map[string]int{"chars": len(text), "start": start})
}

// Stop cancels the in-flight stream; inserted text stays pending.
// POST /api/assist/stop
func (h *AssistHandler) Stop(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w)
	if !ok {
		return
	}
	s.Inserter.Cancel()
	w.WriteHeader(http.StatusNoContent)
}

// Accept keeps the pending generated text.
// POST /api/assist/accept
func (h *AssistHandler) Accept(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w)
	if !ok {
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"accepted": s.Inserter.Accept()})
}

// Reject deletes the pending generated text from the editor.
// POST /api/assist/reject
func (h *AssistHandler) Reject(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w)
	if !ok {
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"rejected": s.Inserter.Reject()})
}

// Chat sends a conversational message with project context.
// POST /api/assist/chat
func (h *AssistHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		generateRequest
		Message string `json:"message"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		httputil.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	var p assist.GenerateParams
	if s, ok := h.sessions.Current(); ok {
		s.Engine.Flush()
		p = h.params(s, req.generateRequest)
	} else {
		settings := h.store.Settings()
		p = assist.GenerateParams{
			Model:       req.Model,
			Temperature: settings.LastTemperature,
		}
		if p.Model == "" {
			p.Model = settings.LastUsedModel
		}
	}

	reply, err := h.orch.Chat(r.Context(), req.Message, p)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// ChatHistory returns the persisted conversation.
// GET /api/assist/chat
func (h *AssistHandler) ChatHistory(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.store.ChatHistory())
}

// ClearChat drops the conversation.
// DELETE /api/assist/chat
func (h *AssistHandler) ClearChat(w http.ResponseWriter, r *http.Request) {
	h.store.ClearChatHistory()
	w.WriteHeader(http.StatusNoContent)
}
