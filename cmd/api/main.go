package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smilecare/booking-api/internal/api/router"
	"github.com/smilecare/booking-api/internal/booking"
	"github.com/smilecare/booking-api/internal/cliniccards"
	appconfig "github.com/smilecare/booking-api/internal/config"
	"github.com/smilecare/booking-api/internal/observability/metrics"
	"github.com/smilecare/booking-api/internal/schedule"
	"github.com/smilecare/booking-api/pkg/logging"
)

func main() {
	// .env is optional, real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)
	if cfg.CRMToken == "" {
		logger.Warn("CRM_API_TOKEN is not set, CRM requests will be rejected upstream")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(registry)

	crm := cliniccards.NewClient(cfg.CRMToken, logger,
		cliniccards.WithBaseURL(cfg.CRMBaseURL),
		cliniccards.WithMetrics(bookingMetrics),
	)

	params := schedule.Params{
		Room1ID:       cfg.Room1ID,
		Room2ID:       cfg.Room2ID,
		ProviderIDs:   cfg.Providers(),
		WorkStartHour: cfg.WorkStartHour,
		WorkEndHour:   cfg.WorkEndHour,
		SlotMinutes:   cfg.AppointmentDuration,
	}

	service := booking.NewService(crm, params, logger, bookingMetrics)
	handler := booking.NewHandler(service, crm, logger)

	routerCfg := &router.Config{
		Logger:             logger,
		BookingHandler:     handler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
