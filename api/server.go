/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/camps/*      Camps, rosters, stock, shortages
  /api/leaders/*    Leaders, assignments, pay
  /api/alerts/*     Cross-camp shortage alerts
  /api/settings/*   Operational settings

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Camp routes
		r.Route("/camps", func(r chi.Router) {
			r.Get("/", h.ListCamps)
			r.Post("/", h.CreateCamp)
			r.Get("/summary", h.ListCampSummaries)
			r.Get("/{id}", h.GetCamp)
			r.Get("/{id}/campers", h.ListCampers)
			r.Post("/{id}/campers/import", h.ImportRoster)
			r.Post("/{id}/topups", h.AppendTopUp)
			r.Get("/{id}/topups", h.ListTopUps)
			r.Get("/{id}/stock", h.GetStock)
			r.Get("/{id}/shortages", h.GetShortages)
		})

		// Leader routes
		r.Route("/leaders", func(r chi.Router) {
			r.Post("/", h.CreateLeader)
			r.Get("/{id}", h.GetLeader)
			r.Get("/{id}/assignments", h.ListAssignments)
			r.Post("/{id}/assignments", h.Claim)
			r.Delete("/{id}/assignments/{campID}", h.Unassign)
			r.Get("/{id}/camps/available", h.ListAvailableCamps)
			r.Get("/{id}/pay", h.GetPay)
		})

		// Alert routes
		r.Route("/alerts", func(r chi.Router) {
			r.Get("/shortages", h.ListShortageAlerts)
		})

		// Settings routes
		r.Route("/settings", func(r chi.Router) {
			r.Get("/pay-rate", h.GetPayRate)
			r.Put("/pay-rate", h.SetPayRate)
		})
	})

	return r
}
