package handler

import (
	"log/slog"
	"net/http"

	"github.com/jvgags/Poe-Write/internal/httputil"
	"github.com/jvgags/Poe-Write/internal/store"
)

// TreeHandler serves the sidebar tree of a project.
type TreeHandler struct {
	store  *store.Store
	logger *slog.Logger
}

func NewTreeHandler(st *store.Store, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{store: st, logger: logger}
}

// GetTree returns the nested folder/document view, metadata only.
// GET /api/projects/{id}/tree
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.store.BuildTree(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, tree)
}
