// cmd/storemock/main.go

// storemock is a development stand-in for the remote ticket store. It
// serves the same HTTP contract the dashboard consumes, backed by Postgres,
// speaking the backend's own vocabulary ("New"/"In Progress"/"Fixed").
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"

	"fixmate/internal/adapter/storage"
	"fixmate/internal/config"
)

func main() {
	seed := flag.Bool("seed", false, "insert sample tickets on startup")
	addr := flag.String("addr", ":8000", "listen address")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := initDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	store := storage.NewTicketStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	if *seed {
		if err := seedTickets(ctx, store); err != nil {
			log.Fatalf("Failed to seed tickets: %v", err)
		}
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Route("/api", func(r chi.Router) {
		r.Get("/tickets", func(w http.ResponseWriter, r *http.Request) {
			tickets, err := store.ListTickets(r.Context())
			if err != nil {
				httpError(w, http.StatusInternalServerError, err)
				return
			}
			if tickets == nil {
				tickets = []storage.BackendTicket{}
			}
			writeJSON(w, http.StatusOK, tickets)
		})

		r.Get("/tickets/{id}", func(w http.ResponseWriter, r *http.Request) {
			t, err := store.GetTicket(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				if errors.Is(err, storage.ErrTicketNotFound) {
					httpError(w, http.StatusNotFound, err)
					return
				}
				httpError(w, http.StatusInternalServerError, err)
				return
			}
			writeJSON(w, http.StatusOK, t)
		})

		r.Patch("/tickets/{id}/status", func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				Status string `json:"status"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
				httpError(w, http.StatusBadRequest, fmt.Errorf("missing status"))
				return
			}
			t, err := store.UpdateStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
			if err != nil {
				if errors.Is(err, storage.ErrTicketNotFound) {
					httpError(w, http.StatusNotFound, err)
					return
				}
				httpError(w, http.StatusInternalServerError, err)
				return
			}
			writeJSON(w, http.StatusOK, t)
		})

		r.Get("/ticket-stats", func(w http.ResponseWriter, r *http.Request) {
			total, byCategory, bySeverity, byStatus, err := store.Stats(r.Context())
			if err != nil {
				httpError(w, http.StatusInternalServerError, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"total":       total,
				"by_category": byCategory,
				"by_severity": bySeverity,
				"by_status":   byStatus,
			})
		})

		r.Get("/ticket-locations", func(w http.ResponseWriter, r *http.Request) {
			severity := r.URL.Query().Get("severity")
			locations, err := store.LocationsBySeverity(r.Context(), severity)
			if err != nil {
				httpError(w, http.StatusInternalServerError, err)
				return
			}
			writeJSON(w, http.StatusOK, locations)
		})
	})

	httpServer := &http.Server{Addr: *addr, Handler: router}

	go func() {
		log.Printf("storemock listening on %s", *addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	<-shutdown

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

func seedTickets(ctx context.Context, store *storage.TicketStore) error {
	lat := func(v float64) *float64 { return &v }
	now := time.Now()
	samples := []storage.BackendTicket{
		{
			ID: uuid.New().String(), Category: "pothole", Severity: "High", Status: "New",
			Notes: "Deep pothole near the junction", Latitude: lat(3.1412), Longitude: lat(101.6865),
			Address: "Jalan Ampang", CreatedAt: now.AddDate(0, 0, -2),
		},
		{
			ID: uuid.New().String(), Category: "broken_streetlight", Severity: "Medium", Status: "In Progress",
			Notes: "Streetlight flickering all night", Latitude: lat(3.1501), Longitude: lat(101.6937),
			CreatedAt: now.AddDate(0, 0, -5),
		},
		{
			ID: uuid.New().String(), Category: "garbage", Severity: "Low", Status: "New",
			Notes: "Overflowing bins", Latitude: lat(3.1333), Longitude: lat(101.6800),
			CreatedAt: now.AddDate(0, 0, -1),
		},
	}
	for _, t := range samples {
		if err := store.SaveTicket(ctx, t); err != nil {
			return err
		}
	}
	log.Printf("seeded %d sample tickets", len(samples))
	return nil
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func httpError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
