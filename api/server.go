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
  1. RequestLogger: Structured slog request logging (httplog)
  2. Recoverer:     Panic recovery (500 instead of crash)
  3. RequestID:     Unique ID per request for tracing
  4. CORS:          Cross-origin requests for frontend

ROUTE GROUPS:
  /api/policies/*       Employee policy management
  /api/shifts           Shift upserts
  /api/attendance       Punch upserts
  /api/holidays         Organization holidays
  /api/leaves           Approved leave days
  /api/employees/{id}/* Per-employee month queries and summaries
  /api/schedules/*      Frozen schedule snapshots
  /api/scenarios/*      Demo scenarios

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(true)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock-engine"),
	)

	// Middleware
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Heartbeat("/healthz"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Policy routes
		r.Route("/policies", func(r chi.Router) {
			r.Get("/", h.ListPolicies)
			r.Post("/", h.UpsertPolicy)
			r.Get("/{id}", h.GetPolicy)
		})

		// Record upserts (one record per employee+date)
		r.Post("/shifts", h.UpsertShift)
		r.Post("/attendance", h.UpsertAttendance)
		r.Post("/leaves", h.UpsertLeave)

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.UpsertHoliday)
		})

		// Per-employee month queries
		r.Route("/employees/{id}", func(r chi.Router) {
			r.Get("/shifts", h.ListShifts)
			r.Get("/attendance", h.ListAttendance)
			r.Get("/leaves", h.ListLeaves)
			r.Get("/summary", h.GetSummary)
			r.Get("/schedule", h.LoadSchedule)
		})

		// Schedule snapshot routes
		r.Route("/schedules", func(r chi.Router) {
			r.Post("/save", h.SaveSchedule)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})
	})

	return r
}
