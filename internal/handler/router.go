package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/catering-api/internal/middleware"
	"github.com/pkordes/catering-api/openapi"
)

// RouterConfig carries the middleware settings for NewRouter.
type RouterConfig struct {
	Logger            *slog.Logger
	CORSOrigins       []string
	MaxBodyBytes      int64
	APISecret         string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// NewRouter registers every route on a chi router.
//
// Global middleware runs in order: RequestID, RealIP, SlogLogger, Recoverer,
// metrics, CORS, body size limit. /healthz, /metrics and /openapi.yaml are
// public; everything under /api is rate limited per client IP and requires
// the bearer secret.
func NewRouter(s *Server, cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewPrometheusMetrics())
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Get("/healthz", s.GetHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimitRequests > 0 && cfg.RateLimitWindow > 0 {
			r.Use(middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow))
		}
		r.Use(middleware.NewBearerAuth(cfg.APISecret))

		r.Route("/facilities", func(r chi.Router) {
			r.Get("/", s.ListFacilities)
			r.Post("/", s.CreateFacility)
			r.Get("/search", s.SearchFacilities)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetFacility)
				r.Put("/", s.UpdateFacility)
				r.Patch("/", s.UpdateFacility)
				r.Delete("/", s.DeleteFacility)
				r.Post("/tags", s.AddFacilityTags)
				r.Delete("/tags", s.RemoveFacilityTags)
				r.Get("/employees", s.ListEmployees)
				r.Post("/employees", s.CreateEmployee)
			})
		})

		r.Route("/employees/{id}", func(r chi.Router) {
			r.Get("/", s.GetEmployee)
			r.Put("/", s.UpdateEmployee)
			r.Patch("/", s.UpdateEmployee)
			r.Delete("/", s.DeleteEmployee)
		})

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", s.ListLocations)
			r.Post("/", s.CreateLocation)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetLocation)
				r.Put("/", s.UpdateLocation)
				r.Patch("/", s.UpdateLocation)
				r.Delete("/", s.DeleteLocation)
			})
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", s.ListTags)
			r.Post("/", s.CreateTag)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetTag)
				r.Put("/", s.UpdateTag)
				r.Patch("/", s.UpdateTag)
				r.Delete("/", s.DeleteTag)
			})
		})

		r.Get("/export", s.GetExport)
	})

	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openapi.Document)
}
