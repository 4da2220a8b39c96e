// Package router wires the HTTP surface: public booking endpoints, CRM
// pass-through routes, health, and metrics.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/smilecare/booking-api/internal/booking"
	httpmiddleware "github.com/smilecare/booking-api/internal/http/middleware"
	"github.com/smilecare/booking-api/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	BookingHandler     *booking.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
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

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", cfg.BookingHandler.Health)
		api.Get("/available-times/{date}", cfg.BookingHandler.GetAvailableTimes)
		api.Post("/book-appointment", cfg.BookingHandler.BookAppointment)

		// CRM pass-through, mostly for debugging.
		api.Get("/cabinets", cfg.BookingHandler.Cabinets)
		api.Get("/staff", cfg.BookingHandler.Staff)
		api.Get("/schedule-spaces", cfg.BookingHandler.ScheduleSpaces)
		api.Get("/visits", cfg.BookingHandler.Visits)
		api.Get("/patients/{id}", cfg.BookingHandler.Patient)
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
