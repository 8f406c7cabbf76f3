package middleware

import (
	"log/slog"
	"net/http"

	"github.com/manula2004/bagisto/pkg/logger"
)

// RequestLogger returns middleware that builds a request-scoped logger enriched
// with correlation_id, channel, locale, trace_id, and span_id, then stores it
// in context via logger.NewContext. Downstream handlers retrieve it with
// logger.FromContext(ctx).
//
// This middleware should be mounted AFTER RequestLogging (which sets
// correlation_id) so the enriched logger picks that field up.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// Pick up the storefront scope headers so every log line for the
			// request carries the channel and locale it was served for.
			channel := r.Header.Get("X-Channel")
			loc := r.Header.Get("X-Locale")
			if channel != "" || loc != "" {
				ctx = logger.WithStoreScope(ctx, channel, loc)
			}

			// Build enriched logger with all available context fields
			// (correlation_id, channel, locale, trace_id, span_id).
			enriched := logger.WithContext(ctx, base)

			// Store the enriched logger in context for downstream handlers.
			ctx = logger.NewContext(ctx, enriched)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
