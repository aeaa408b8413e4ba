package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jvgags/Poe-Write/internal/export"
	"github.com/jvgags/Poe-Write/internal/httputil"
	"github.com/jvgags/Poe-Write/internal/persist"
	"github.com/jvgags/Poe-Write/internal/session"
	"github.com/jvgags/Poe-Write/internal/store"
)

// StateHandler serves whole-state operations: backup download and
// restore, full-draft export and cloud sync.
type StateHandler struct {
	store    *store.Store
	sessions *session.Manager
	gateway  *persist.Gateway
	sync     *persist.CloudSync
	exporter *export.Writer
	logger   *slog.Logger
}

func NewStateHandler(st *store.Store, sessions *session.Manager, gateway *persist.Gateway, cloud *persist.CloudSync, exporter *export.Writer, logger *slog.Logger) *StateHandler {
	return &StateHandler{store: st, sessions: sessions, gateway: gateway, sync: cloud, exporter: exporter, logger: logger}
}

// Health reports server liveness.
// GET /health
func (h *StateHandler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ExportBackup downloads the whole state as dated plaintext JSON.
// GET /api/backup
func (h *StateHandler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Save(); err != nil {
		respondError(w, h.logger, err)
		return
	}
	data, err := persist.ExportBackup(h.store.Snapshot())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", persist.BackupFilename(time.Now())))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ImportBackup replaces the whole state from an uploaded backup file and
// persists it immediately.
// POST /api/backup/import
func (h *StateHandler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 50<<20))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to read backup upload")
		return
	}
	state, err := persist.ImportBackup(body)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := h.sessions.Close(); err != nil {
		h.logger.Warn("failed to close session before restore", "error", err)
	}
	h.store.LoadState(state)
	if err := h.gateway.Write(h.store.Snapshot()); err != nil {
		respondError(w, h.logger, err)
		return
	}
	h.logger.Info("backup restored", "projects", len(state.Projects))
	httputil.RespondJSON(w, http.StatusOK, map[string]int{"projects": len(state.Projects)})
}

// ExportDraft downloads a project's enabled documents as one markdown
// file.
// GET /api/projects/{id}/export
func (h *StateHandler) ExportDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Save(); err != nil {
		respondError(w, h.logger, err)
		return
	}
	project, err := h.store.GetProject(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	draft := h.exporter.FullDraft(project, h.store.ListDocuments(project.ID))
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.DraftFilename(project.Title)))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, draft)
}

// SyncPush uploads the encrypted state to the configured endpoint.
// POST /api/sync/push
func (h *StateHandler) SyncPush(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Save(); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := h.sync.Push(r.Context(), h.store.Snapshot()); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SyncPull replaces local state with the remote blob and persists it.
// POST /api/sync/pull
func (h *StateHandler) SyncPull(w http.ResponseWriter, r *http.Request) {
	state, err := h.sync.Pull(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := h.sessions.Close(); err != nil {
		h.logger.Warn("failed to close session before sync pull", "error", err)
	}
	h.store.LoadState(state)
	if err := h.gateway.Write(h.store.Snapshot()); err != nil {
		respondError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]int{"projects": len(state.Projects)})
}
