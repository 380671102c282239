package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/heartmarshall/rhymebook-backend/pkg/ctxutil"
)

// RequestIDHeader carries the request ID on requests and responses.
const RequestIDHeader = "X-Request-Id"

// RequestID returns middleware that tags every request with an ID for log
// correlation. An inbound header value is trusted; otherwise a new UUID is
// issued. The ID is stored in the context and echoed in the response header.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}
			ctx := ctxutil.WithRequestID(r.Context(), id)
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
