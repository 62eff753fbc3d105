package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/raja-kanniappa/agentlens/internal/api/middleware"
)

// setupRouter creates and configures the chi router with all routes.
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	ipLimiter := middleware.NewRateLimiter(s.config.RateLimitPerIP)

	origins := s.config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// Global middleware
	r.Use(middleware.RequestLogger(s.config.Verbose))
	r.Use(middleware.PrometheusMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(ipLimiter))

		r.Route("/departments", func(r chi.Router) {
			r.Get("/summary", s.handleDepartmentSummary)
			r.Get("/", s.handleDepartmentComparison)
			r.Get("/{id}/users", s.handleUsersByDepartment)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/{id}", s.handleUserDetails)
			r.Get("/{id}/agents", s.handleAgentUsageByUser)
		})

		r.Get("/agents/leaderboard", s.handleAgentLeaderboard)

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.handleRecentSessions)
			r.Get("/{id}", s.handleSessionDetails)
		})

		r.Get("/trends", s.handleUsageTrends)
		r.Post("/export", s.handleExport)
		r.Post("/query", s.handleQuery)
		r.Get("/filters/options", s.handleFilterOptions)

		r.Route("/dataset", func(r chi.Router) {
			r.Post("/regenerate", s.handleRegenerate)
			r.Post("/simulation", s.handleSimulation)
		})
	})

	// Health check (public, no rate limit)
	r.Get("/health", s.handleHealth)

	return r
}
