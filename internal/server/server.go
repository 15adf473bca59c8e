// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"fixmate/internal/config"
	"fixmate/internal/i18n"
	"fixmate/internal/server/handlers"
	"fixmate/internal/service/engine"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server around the dashboard engine
func NewServer(
	cfg config.ServerConfig,
	eng *engine.Engine,
	bundle *i18n.Bundle,
) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	dashboardHandler := handlers.NewDashboardHandler(eng)
	filterHandler := handlers.NewFilterHandler(eng)
	statusHandler := handlers.NewStatusHandler(eng)
	mapHandler := handlers.NewMapHandler(eng)
	notificationHandler := handlers.NewNotificationHandler(eng)
	i18nHandler := handlers.NewI18nHandler(bundle)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			r.Get("/view", dashboardHandler.GetView)

			r.Route("/tickets", func(r chi.Router) {
				r.Post("/reload", dashboardHandler.Reload)
				r.Get("/{id}", dashboardHandler.GetTicket)
				r.Patch("/{id}/status", statusHandler.SetStatus)
				r.Post("/{id}/cycle", statusHandler.CycleStatus)
			})

			r.Route("/filters", func(r chi.Router) {
				r.Put("/pending", filterHandler.SetPending)
				r.Post("/apply", filterHandler.Apply)
				r.Post("/reset", filterHandler.Reset)
			})

			r.Route("/selection", func(r chi.Router) {
				r.Post("/", mapHandler.Select)
				r.Delete("/", mapHandler.ClearSelection)
			})

			r.Route("/map", func(r chi.Router) {
				r.Post("/density", mapHandler.SetDensity)
				r.Post("/flyto", mapHandler.FlyTo)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Post("/{id}/action", notificationHandler.InvokeAction)
				r.Delete("/{id}", notificationHandler.Dismiss)
			})

			r.Get("/i18n/{locale}", i18nHandler.GetDictionary)
		})
	})

	// WebSocket endpoint for the live view stream
	router.Get("/ws/dashboard", handlers.DashboardWebSocketHandler(eng))

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
