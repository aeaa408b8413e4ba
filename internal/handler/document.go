package handler

import (
	"log/slog"
	"net/http"

	"github.com/jvgags/Poe-Write/internal/domain/models"
	"github.com/jvgags/Poe-Write/internal/httputil"
	"github.com/jvgags/Poe-Write/internal/store"
)

// DocumentHandler handles document HTTP requests.
type DocumentHandler struct {
	store  *store.Store
	logger *slog.Logger
}

func NewDocumentHandler(st *store.Store, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{store: st, logger: logger}
}

// CreateDocument creates a document.
// POST /api/documents
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	doc, err := h.store.CreateDocument(&req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// ListDocuments returns a project's documents sorted by order.
// GET /api/projects/{id}/documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.store.ListDocuments(r.PathValue("id")))
}

// GetDocument returns one document with content.
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.GetDocument(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, doc)
}

// UpdateDocument applies a partial update; a content update recomputes
// the word count.
// PATCH /api/documents/{id}
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	doc, err := h.store.UpdateDocument(r.PathValue("id"), &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteDocument removes a document.
// DELETE /api/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteDocument(r.PathValue("id")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DuplicateDocument clones a document right after its source.
// POST /api/documents/{id}/duplicate
func (h *DocumentHandler) DuplicateDocument(w http.ResponseWriter, r *http.Request) {
	clone, err := h.store.DuplicateDocument(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, clone)
}

// ToggleEnabled flips the document's context-provider flag.
// POST /api/documents/{id}/toggle
func (h *DocumentHandler) ToggleEnabled(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.ToggleEnabled(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, doc)
}

// ToggleAll sets the enabled flag on every document of a project.
// POST /api/projects/{id}/documents/toggle-all
func (h *DocumentHandler) ToggleAll(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	changed := h.store.SetAllEnabled(r.PathValue("id"), req.Enabled)
	httputil.RespondJSON(w, http.StatusOK, map[string]int{"changed": changed})
}

// MoveDocument reparents the document into a folder, appending at the
// end.
// POST /api/documents/{id}/move
func (h *DocumentHandler) MoveDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FolderID *string `json:"folder_id"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.store.MoveDocumentToFolder(r.PathValue("id"), req.FolderID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderDocument moves the document to a target index inside a sibling
// group.
// POST /api/documents/{id}/reorder
func (h *DocumentHandler) ReorderDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FolderID    *string `json:"folder_id"`
		TargetIndex int     `json:"target_index"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.store.ReorderDocument(r.PathValue("id"), req.FolderID, req.TargetIndex); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
