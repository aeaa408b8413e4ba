package handler

import (
	"log/slog"
	"net/http"

	"github.com/jvgags/Poe-Write/internal/dragdrop"
	"github.com/jvgags/Poe-Write/internal/httputil"
)

// DragHandler exposes the drag gesture over HTTP: the client reports
// gesture geometry, the controller decides and commits.
type DragHandler struct {
	ctrl   *dragdrop.Controller
	logger *slog.Logger
}

func NewDragHandler(ctrl *dragdrop.Controller, logger *slog.Logger) *DragHandler {
	return &DragHandler{ctrl: ctrl, logger: logger}
}

// Start begins a gesture.
// POST /api/drag/start
func (h *DragHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind dragdrop.Kind `json:"kind"`
		ID   string        `json:"id"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.ctrl.Start(req.Kind, req.ID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Hover reports the row under the pointer and returns the indicator.
// POST /api/drag/hover
func (h *DragHandler) Hover(w http.ResponseWriter, r *http.Request) {
	var target dragdrop.Target
	if err := httputil.ParseJSON(w, r, &target); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	indicator := h.ctrl.Hover(target)
	httputil.RespondJSON(w, http.StatusOK, map[string]dragdrop.Indicator{"indicator": indicator})
}

// Drop commits the gesture onto a row.
// POST /api/drag/drop
func (h *DragHandler) Drop(w http.ResponseWriter, r *http.Request) {
	var target dragdrop.Target
	if err := httputil.ParseJSON(w, r, &target); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.ctrl.Drop(target); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DropAtEnd commits the gesture onto a trailing drop zone.
// POST /api/drag/drop-end
func (h *DragHandler) DropAtEnd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ParentID *string `json:"parent_id"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.ctrl.DropAtEnd(req.ParentID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Cancel aborts the gesture.
// POST /api/drag/cancel
func (h *DragHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Cancel()
	w.WriteHeader(http.StatusNoContent)
}
