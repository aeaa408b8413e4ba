package handler

import (
	"log/slog"
	"net/http"

	"github.com/jvgags/Poe-Write/internal/domain/models"
	"github.com/jvgags/Poe-Write/internal/httputil"
	"github.com/jvgags/Poe-Write/internal/store"
)

// FolderHandler handles folder HTTP requests.
type FolderHandler struct {
	store  *store.Store
	logger *slog.Logger
}

func NewFolderHandler(st *store.Store, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{store: st, logger: logger}
}

// CreateFolder creates a folder.
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	folder, err := h.store.CreateFolder(&req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// GetFolder returns one folder.
// GET /api/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	folder, err := h.store.GetFolder(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, folder)
}

// RenameFolder changes the folder name.
// PATCH /api/folders/{id}
func (h *FolderHandler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	folder, err := h.store.RenameFolder(r.PathValue("id"), req.Name)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, folder)
}

// ToggleCollapse flips the folder's collapsed display state.
// POST /api/folders/{id}/toggle
func (h *FolderHandler) ToggleCollapse(w http.ResponseWriter, r *http.Request) {
	folder, err := h.store.ToggleFolderCollapse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, folder)
}

// ReparentFolder moves the folder under a new parent, appending at the
// end of the target group. A cycle is refused with 409.
// POST /api/folders/{id}/reparent
func (h *FolderHandler) ReparentFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ParentID *string `json:"parent_id"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.store.ReparentFolder(r.PathValue("id"), req.ParentID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderFolder moves the folder to a target index inside a sibling group.
// POST /api/folders/{id}/reorder
func (h *FolderHandler) ReorderFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ParentID    *string `json:"parent_id"`
		TargetIndex int     `json:"target_index"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.store.ReorderFolder(r.PathValue("id"), req.ParentID, req.TargetIndex); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteFolder removes the folder; its children move one level up.
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteFolder(r.PathValue("id")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
