package handler

import (
	"log/slog"
	"net/http"

	"github.com/jvgags/Poe-Write/internal/domain/models"
	"github.com/jvgags/Poe-Write/internal/httputil"
	"github.com/jvgags/Poe-Write/internal/store"
)

// ProjectHandler handles project HTTP requests.
type ProjectHandler struct {
	store  *store.Store
	logger *slog.Logger
}

func NewProjectHandler(st *store.Store, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{store: st, logger: logger}
}

// ListProjects returns all projects sorted by order.
// GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.store.ListProjects())
}

// CreateProject creates a new project.
// POST /api/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	project, err := h.store.CreateProject(&req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, project)
}

// GetProject returns one project with its recomputed word count.
// GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.store.GetProject(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, project)
}

// UpdateProject applies a partial update.
// PATCH /api/projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	project, err := h.store.UpdateProject(r.PathValue("id"), &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, project)
}

// DeleteProject removes a project and everything under it.
// DELETE /api/projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteProject(r.PathValue("id")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderProject moves a project within the project list.
// POST /api/projects/{id}/reorder
func (h *ProjectHandler) ReorderProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TargetIndex int `json:"target_index"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.store.ReorderProject(r.PathValue("id"), req.TargetIndex); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CopyProject deep-clones a project.
// POST /api/projects/{id}/copy
func (h *ProjectHandler) CopyProject(w http.ResponseWriter, r *http.Request) {
	clone, err := h.store.CopyProject(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, clone)
}
