package handler

import (
	"log/slog"
	"net/http"

	"github.com/jvgags/Poe-Write/internal/domain/models"
	"github.com/jvgags/Poe-Write/internal/httputil"
	"github.com/jvgags/Poe-Write/internal/session"
	"github.com/jvgags/Poe-Write/internal/store"
)

// SettingsHandler reads and writes user preferences. Writes propagate
// into the live editing session so a lexicon or color change takes
// effect without reopening the document.
type SettingsHandler struct {
	store    *store.Store
	sessions *session.Manager
	logger   *slog.Logger
}

func NewSettingsHandler(st *store.Store, sessions *session.Manager, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{store: st, sessions: sessions, logger: logger}
}

// GetSettings returns the current preferences.
// GET /api/settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.store.Settings())
}

// UpdateSettings replaces the preferences wholesale.
// PUT /api/settings
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := httputil.ParseJSON(w, r, &settings); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.store.UpdateSettings(settings)
	h.sessions.ApplySettings(settings)
	httputil.RespondJSON(w, http.StatusOK, h.store.Settings())
}
