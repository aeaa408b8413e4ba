package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jvgags/Poe-Write/internal/domain"
	"github.com/jvgags/Poe-Write/internal/httputil"
)

// respondError maps domain errors to their HTTP status via the HTTPError
// interface; anything else is an unexpected 500.
func respondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}
	logger.Error("unexpected error", "error", err)
	httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
}
