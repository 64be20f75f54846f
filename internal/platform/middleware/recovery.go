package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	dErrors "filmorate/pkg/domain-errors"
	"filmorate/pkg/platform/httputil"
	"filmorate/pkg/requestcontext"
)

// Recovery converts panics into 500 responses instead of dropping the
// connection, logging the stack for the operator.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.ErrorContext(r.Context(), "panic recovered",
						"request_id", requestcontext.RequestID(r.Context()),
						"path", r.URL.Path,
						"panic", rec,
						"stack", string(debug.Stack()),
					)
					httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "internal server error"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
