package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/rhymebook-backend/pkg/ctxutil"
)

const sessionCookie = "rhymebook_session"

// Session returns middleware that identifies the page session. The ID is
// taken from the X-Session-Id header, then the session cookie; if neither
// carries a valid UUID a new session ID is issued. The ID is echoed back in
// both the header and the cookie so the page keeps it for the session.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := sessionIDFromRequest(r)
		if id == uuid.Nil {
			id = uuid.New()
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id.String(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		w.Header().Set("X-Session-Id", id.String())

		ctx := ctxutil.WithSessionID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionIDFromRequest(r *http.Request) uuid.UUID {
	if h := r.Header.Get("X-Session-Id"); h != "" {
		if id, err := uuid.Parse(h); err == nil {
			return id
		}
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id
		}
	}
	return uuid.Nil
}
