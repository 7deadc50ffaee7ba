package middleware

import (
	"context"
	"net/http"
	"regexp"

	"github.com/horizonte/storefront/pkg/logger"
)

// CartIDHeader names the cart a request operates on.
const CartIDHeader = "X-Cart-ID"

var cartIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// CartScope resolves the cart for the request from the X-Cart-ID header and
// stores it in the context. Missing or malformed ids fall back to defaultID,
// so clients that never send the header share one cart.
func CartScope(defaultID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(CartIDHeader)
			if !cartIDPattern.MatchString(id) {
				id = defaultID
			}
			next.ServeHTTP(w, r.WithContext(logger.WithCartID(r.Context(), id)))
		})
	}
}

// CartID returns the cart resolved by CartScope.
func CartID(ctx context.Context) string {
	return logger.CartIDFromContext(ctx)
}
