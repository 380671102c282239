package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/heartmarshall/rhymebook-backend/pkg/ctxutil"
)

// Recovery returns middleware that recovers from panics, logs the panic
// value with a stack trace and the request ID, and responds with
// 500 Internal Server Error.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					attrs := []any{
						slog.Any("error", rec),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())),
					}
					if reqID := ctxutil.RequestIDFromCtx(r.Context()); reqID != "" {
						attrs = append(attrs, slog.String("request_id", reqID))
					}
					logger.ErrorContext(r.Context(), "panic recovered", attrs...)
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
