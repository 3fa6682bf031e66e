package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/folio/internal/api/apierr"
	"github.com/mcoot/folio/internal/middleware"
)

// Recovery creates panic recovery middleware for the API
// Returns JSON error responses on panic, quoting the request id for support
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	if id := middleware.GetRequestID(r.Context()); id != "" {
		apierr.WriteError(w, apierr.NewInternalErrorForRequest(id))
		return
	}
	apierr.WriteError(w, apierr.NewInternalError())
}
