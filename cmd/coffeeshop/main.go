// Package main runs the coffee shop API server.
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

	"github.com/fullstacklab/appsuite/internal/auth"
	"github.com/fullstacklab/appsuite/internal/coffeeshop/httpapi"
	"github.com/fullstacklab/appsuite/internal/coffeeshop/services/drinks"
	coffeestorage "github.com/fullstacklab/appsuite/internal/coffeeshop/storage"
	"github.com/fullstacklab/appsuite/internal/coffeeshop/storage/memory"
	"github.com/fullstacklab/appsuite/internal/coffeeshop/storage/postgres"
	"github.com/fullstacklab/appsuite/internal/config"
	"github.com/fullstacklab/appsuite/internal/database"
	"github.com/fullstacklab/appsuite/internal/logging"
	"github.com/fullstacklab/appsuite/internal/metrics"
	"github.com/fullstacklab/appsuite/internal/middleware"
)

func main() {
	configPath := flag.String("config", "config/coffeeshop.yaml", "Path to config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.LoadOrDefault(*configPath, "coffeeshop")
	logger := logging.New(cfg.Service, cfg.LogLevel, cfg.LogFormat)

	if cfg.Auth.JWKSURL == "" || cfg.Auth.Issuer == "" || cfg.Auth.Audience == "" {
		logger.Fatal("AUTH_JWKS_URL, AUTH_ISSUER and AUTH_AUDIENCE are required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store coffeestorage.DrinkStore
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

	jwks := auth.NewJWKSProvider(cfg.Auth.JWKSURL)
	jwks.Start(ctx, cfg.Auth.RefreshInterval())
	if err := jwks.LastError(); err != nil {
		logger.WithError(err).Warn("initial JWKS fetch failed, will keep retrying")
	}
	verifier := auth.NewRS256Verifier(jwks, auth.Options{
		Issuer:   cfg.Auth.Issuer,
		Audience: cfg.Auth.Audience,
		Leeway:   cfg.Auth.Leeway(),
	})
	authn := middleware.NewAuthenticator(verifier, logger)

	router := httpapi.NewHandler(drinks.New(store), authn, logger)

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
