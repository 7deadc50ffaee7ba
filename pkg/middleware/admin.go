package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	apperrors "github.com/horizonte/storefront/pkg/errors"
	"github.com/horizonte/storefront/pkg/httputil"
)

// AdminTokenHeader carries the shared admin secret.
const AdminTokenHeader = "X-Admin-Token"

// AdminToken guards catalog management routes with a shared secret. An
// empty token leaves the routes open; the caller is expected to warn about
// that at startup.
func AdminToken(token string, l *slog.Logger) func(http.Handler) http.Handler {
	expected := []byte(token)

	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminTokenHeader)
			if got == "" {
				httputil.WriteError(w, r, apperrors.Unauthorized("missing admin token"), l)
				return
			}
			if subtle.ConstantTimeCompare([]byte(got), expected) != 1 {
				l.WarnContext(r.Context(), "admin token rejected",
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", r.RemoteAddr),
				)
				httputil.WriteError(w, r, apperrors.Forbidden("invalid admin token"), l)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
