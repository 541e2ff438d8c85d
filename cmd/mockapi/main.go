package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vitalsalud/citas-core/internal/config"
	"github.com/vitalsalud/citas-core/internal/database"
	"github.com/vitalsalud/citas-core/internal/mockapi"
	"github.com/vitalsalud/citas-core/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting appointment mock API")

	// Pick the store: Postgres when a DSN is configured, memory otherwise
	var store mockapi.Store
	if cfg.MockAPI.DBDSN != "" {
		dbConfig := database.Config{
			DSN:      cfg.MockAPI.DBDSN,
			LogLevel: cfg.MockAPI.DBLog,
		}
		if err := database.Connect(dbConfig); err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer database.Close()
		store = mockapi.NewGormStore()
		log.Info().Msg("Postgres store initialized")
	} else {
		store = mockapi.NewMemoryStore()
		log.Info().Msg("Memory store initialized")
	}

	if err := mockapi.Seed(context.Background(), store); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed data")
	}

	tokens := mockapi.NewTokenManager(cfg.MockAPI.JWTSecret, 24*time.Hour)
	server := mockapi.NewServer(store, tokens)

	addr := fmt.Sprintf("%s:%d", cfg.MockAPI.Host, cfg.MockAPI.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
