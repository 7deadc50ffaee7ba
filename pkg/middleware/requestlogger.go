package middleware

import (
	"log/slog"
	"net/http"

	"github.com/horizonte/storefront/pkg/logger"
)

// RequestLogger stores a logger enriched with correlation_id, cart_id,
// trace_id and span_id in the request context; handlers and services pick
// it up with logger.FromContext.
//
// Mount it after RequestLogging, CartScope and Tracing so every field is
// already in the context.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
