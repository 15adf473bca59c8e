// cmd/dashboard/main.go

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fixmate/internal/adapter/bus"
	"fixmate/internal/adapter/remote"
	"fixmate/internal/config"
	"fixmate/internal/domain/ticket"
	"fixmate/internal/i18n"
	"fixmate/internal/server"
	"fixmate/internal/service/engine"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Locale dictionaries
	bundle, err := i18n.Load(cfg.I18n.Dir, cfg.I18n.DefaultLocale)
	if err != nil {
		log.Fatalf("Failed to load locale dictionaries: %v", err)
	}

	// Remote ticket store client
	remoteClient := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.RequestTimeout)

	// Dashboard engine
	eng := engine.New(remoteClient, engine.Config{
		DefaultCenter:   ticket.Location{Lat: cfg.Map.DefaultLat, Lng: cfg.Map.DefaultLng},
		DefaultZoom:     cfg.Map.DefaultZoom,
		FocusZoom:       cfg.Map.FocusZoom,
		FlyToZoom:       cfg.Map.FlyToZoom,
		BoundsPad:       cfg.Map.BoundsPad,
		DensityWeight:   cfg.Map.DensityWeight,
		NotificationTTL: cfg.Engine.NotificationTTL,
	})
	defer eng.Close()

	// Optional NATS mirror of the event stream
	var publisher *bus.Publisher
	if cfg.NATS.URL != "" {
		natsConn, err := bus.Connect(cfg.NATS)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer natsConn.Close()

		publisher = bus.NewPublisher(natsConn, eng, cfg.NATS)
		publisher.Start()
	}

	// Initial load; a failure surfaces as a notification and the operator
	// can reload from the dashboard.
	if cfg.Engine.LoadOnStart {
		if err := eng.Load(ctx); err != nil {
			log.Printf("Initial ticket load failed: %v", err)
		}
	}

	// Initialize HTTP server
	httpServer := server.NewServer(cfg.Server, eng, bundle)

	// Start HTTP server
	go func() {
		log.Printf("Starting HTTP server on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	log.Println("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown
	log.Println("Shutting down services...")

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	if publisher != nil {
		publisher.Stop()
	}

	log.Println("Shutdown complete")
}
