package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// routes builds the full HTTP handler stack.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	rl := newRateLimitMiddleware(rate.NewLimiter(rate.Limit(200), 500))
	r.Use(requireGET, rl, noCacheMiddleware, securityHeadersMiddleware)

	r.Get("/", s.handleDashboard)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/metrics", s.handleMetrics)

	r.Route("/api", func(api chi.Router) {
		api.Use(cors.AllowAll().Handler)
		api.Get("/results", s.handleResults)
		api.Get("/latest", s.handleLatest)
		api.Get("/summary", s.handleSummary)
		api.Get("/resolvers", s.handleResolvers)
	})

	return r
}
