package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/pkordes/catering-api/internal/metrics"
)

// NewRateLimiter allows requests per window for each client IP. Requests over
// the limit get 429 with a JSON error body and are counted in
// metrics.APIRateLimitHits.
func NewRateLimiter(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			metrics.APIRateLimitHits.Inc()
			writeError(w, http.StatusTooManyRequests, "Too many requests")
		}),
	)
}
