// Package middleware provides reusable HTTP middleware for the catering API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// corsMaxAge lets browsers cache a preflight answer for ten minutes.
const corsMaxAge = 600

// NewCORSHandler returns a middleware that applies CORS headers for the given
// origins (scheme + host, no trailing slash). Authorization must be allowed
// because every /api route takes a bearer token; X-Request-Id and
// Content-Disposition are exposed so a browser client can correlate logs and
// name CSV exports.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"X-Request-Id", "Content-Disposition"},
		MaxAge:         corsMaxAge,
	})
	return c.Handler
}
