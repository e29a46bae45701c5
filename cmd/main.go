// job-works API service
//
// REST backend for the job board client:
//   - job postings      — create/edit/browse with search, filters, sort, pages
//   - applications      — one per (job, applicant), free-form status updates
//   - saved jobs        — per-identity bookmark sets (Redis)
//   - stale postings    — cron sweeper closes postings past their TTL
//
// Publishes EVENT_APPLICATION_SUBMITTED / EVENT_APPLICATION_STATUS to Redis
// for downstream consumers (notifications, SSE forward).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/radzdev1120/job-works/internal/board"
	"github.com/radzdev1120/job-works/internal/config"
	"github.com/radzdev1120/job-works/internal/db"
	"github.com/radzdev1120/job-works/internal/saved"
	"github.com/radzdev1120/job-works/internal/store"
	"github.com/radzdev1120/job-works/internal/sweeper"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[api] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ──────────────────────────────────────────────────────────
	log.Println("[api] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[api] PostgreSQL: %v", err)
	}
	defer pool.Close()

	jobStore := store.NewPostgres(pool)
	if err := jobStore.Migrate(ctx); err != nil {
		log.Fatalf("[api] Migration: %v", err)
	}
	log.Println("[api] PostgreSQL connected ✓")

	// ── Redis ───────────────────────────────────────────────────────────────
	log.Println("[api] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[api] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[api] Redis connected ✓")

	// ── Service wiring ──────────────────────────────────────────────────────
	svc := board.NewService(jobStore, saved.NewRedisSet(rdb), board.NewRedisPublisher(rdb))

	sw := sweeper.New(jobStore, cfg.SweepIntervalHours, cfg.PostingTTLDays)
	if err := sw.Start(ctx); err != nil {
		log.Fatalf("[api] Sweeper: %v", err)
	}
	defer sw.Stop()

	// ── HTTP server ─────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler)

	h := board.NewHandler(svc)
	h.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[api] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[api] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ───────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[api] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[api] Shutdown error: %v", err)
	}
	log.Println("[api] Stopped.")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "job-works-api",
		"version": version,
	})
}
