// Package router wires the HTTP surface of the scheduling service.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/clinicflow/scheduler/internal/http/handlers"
	httpmiddleware "github.com/clinicflow/scheduler/internal/http/middleware"
	"github.com/clinicflow/scheduler/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	Scheduling         *handlers.SchedulingHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// RateLimitPerSecond caps per-IP request rates on the API routes.
	// Zero disables rate limiting.
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.Scheduling.HealthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.RateLimitPerSecond > 0 {
			api.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
		}

		api.Route("/appointments", func(r chi.Router) {
			r.Post("/", cfg.Scheduling.BookAppointment)
			r.Route("/{appointmentID}", func(r chi.Router) {
				r.Post("/reschedule", cfg.Scheduling.RescheduleAppointment)
				r.Post("/priority", cfg.Scheduling.OverridePriority)
				r.Patch("/status", cfg.Scheduling.UpdateStatus)
			})
		})

		api.Route("/doctors/{doctorID}", func(r chi.Router) {
			r.Get("/slots", cfg.Scheduling.GetAvailableSlots)
			r.Get("/queue", cfg.Scheduling.GetQueue)
		})
	})

	return r
}
