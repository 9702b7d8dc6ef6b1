// Package main runs the trivia API server.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fullstacklab/appsuite/internal/config"
	"github.com/fullstacklab/appsuite/internal/database"
	"github.com/fullstacklab/appsuite/internal/logging"
	"github.com/fullstacklab/appsuite/internal/metrics"
	"github.com/fullstacklab/appsuite/internal/middleware"
	"github.com/fullstacklab/appsuite/internal/trivia/httpapi"
	"github.com/fullstacklab/appsuite/internal/trivia/services/questions"
	triviastorage "github.com/fullstacklab/appsuite/internal/trivia/storage"
	"github.com/fullstacklab/appsuite/internal/trivia/storage/memory"
	"github.com/fullstacklab/appsuite/internal/trivia/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config/trivia.yaml", "Path to config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.LoadOrDefault(*configPath, "trivia")
	logger := logging.New(cfg.Service, cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store triviastorage.Store
	if cfg.Database.URL != "" {
		db, err := database.Open(ctx, cfg.Database.URL)
		if err != nil {
			logger.WithError(err).Fatal("open database")
		}
		defer db.Close()
		if err := database.Migrate(db, postgres.Migrations, postgres.MigrationsDir); err != nil {
			logger.WithError(err).Fatal("run migrations")
		}
		store = postgres.New(db)
		logger.Info("using postgres store")
	} else {
		store = memory.New()
		logger.Warn("DATABASE_URL not set, using in-memory store")
	}

	router := httpapi.NewHandler(questions.New(store), logger)

	m := metrics.New(cfg.Service)
	cors := middleware.NewCORSMiddleware(cfg.HTTP.AllowedOrigins)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, logger)
	router.Use(
		middleware.LoggingMiddleware(logger),
		cors.Handler(),
		limiter.Handler(),
		middleware.MetricsMiddleware(m),
	)
	router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.WithFields(map[string]interface{}{"addr": cfg.HTTP.Addr}).Info("server listening")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.HTTP.ShutdownTimeout)*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown")
	}
}
