package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cafestock/cafestock-backend/internal/inventory/events"
	"github.com/cafestock/cafestock-backend/internal/inventory/export"
	"github.com/cafestock/cafestock-backend/internal/inventory/handler"
	"github.com/cafestock/cafestock-backend/internal/inventory/service"
	"github.com/cafestock/cafestock-backend/pkg/config"
	"github.com/cafestock/cafestock-backend/pkg/httputil"
	"github.com/cafestock/cafestock-backend/pkg/i18n"
	"github.com/cafestock/cafestock-backend/pkg/logger"
	"github.com/cafestock/cafestock-backend/pkg/messaging"
)

func main() {
	// Load configuration with validation (fails fast on bad export settings)
	cfg, err := config.LoadWithValidation("inventory-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("inventory-service", cfg.Server.Environment)
	log.Info().Msg("starting Inventory Service")

	loc, err := cfg.Export.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid export timezone")
	}

	// Events are optional; without a broker the publisher stays nil and drops them
	var (
		rmq       *messaging.RabbitMQ
		publisher *events.InventoryEventPublisher
	)
	if cfg.RabbitMQ.Enabled() {
		rmq, err = messaging.New(&cfg.RabbitMQ, "inventory-service", log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer rmq.Close()

		publisher, err = events.NewInventoryEventPublisher(rmq, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create event publisher")
		}
	} else {
		log.Warn().Msg("RabbitMQ not configured, inventory events disabled")
	}

	inventoryService := service.NewInventoryService(cfg.Alerts.ExpiryWindow, publisher, log, nil)
	exportService := service.NewExportService(service.ExportSettings{
		Location:     loc,
		Locale:       cfg.Export.Locale,
		ExpiryWindow: cfg.Alerts.ExpiryWindow,
	}, publisher, log, nil)

	defaults := export.Options{
		IncludeHeaders: cfg.Export.IncludeHeaders,
		DateFormat:     export.DateFormat(cfg.Export.DefaultDateFormat),
	}

	handlers := &handler.Handlers{
		Items:     handler.NewItemHandler(inventoryService, log),
		Alerts:    handler.NewAlertHandler(inventoryService, log),
		Dashboard: handler.NewDashboardHandler(inventoryService, log),
		Exports:   handler.NewExportHandler(exportService, defaults, log),
	}

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", "Accept-Language"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(i18n.Middleware)
	r.Use(httputil.Identity)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status := map[string]interface{}{
			"status":  "healthy",
			"service": "inventory-service",
		}
		if rmq != nil {
			status["rabbitmq"] = rmq.Health()
		}
		httputil.JSON(w, http.StatusOK, status)
	})

	handlers.Mount(r)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
