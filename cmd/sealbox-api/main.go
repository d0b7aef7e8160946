package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sealboxhq/sealbox/internal/api/handlers"
	"github.com/sealboxhq/sealbox/internal/api/middleware"
	"github.com/sealboxhq/sealbox/internal/api/router"
	"github.com/sealboxhq/sealbox/internal/config"
	"github.com/sealboxhq/sealbox/internal/core/services"
	"github.com/sealboxhq/sealbox/internal/db/postgres"
	"github.com/sealboxhq/sealbox/internal/infrastructure/crypto"
)

func main() {
	// --- 1. Core Telemetry & Configuration ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	logger.Info("booting sealbox API")
	cfg := config.Load()

	// --- 2. Outbound Infrastructure ---
	dbPool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("FATAL: DB failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// The master key is resolved and validated exactly once, at boot. A
	// malformed or wrong-length key never reaches request handling.
	cipher, err := crypto.New(crypto.Options{
		KeyBase64:   cfg.MasterKeyBase64,
		KeyProvider: crypto.EnvKeyProvider(crypto.DefaultKeyEnv),
	})
	if err != nil {
		logger.Error("FATAL: master key rejected", "error", err)
		os.Exit(1)
	}

	// --- 3. Dependency Injection ---
	secretRepo := postgres.NewSecretRepo(dbPool)
	userRepo := postgres.NewUserRepo(dbPool)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, logger)
	secretService := services.NewSecretService(secretRepo, cipher, logger)

	authHandler := handlers.NewAuthHandler(authService)
	cryptoHandler := handlers.NewCryptoHandler(cipher)
	secretHandler := handlers.NewSecretHandler(secretService)
	healthHandler := handlers.NewHealthHandler(dbPool)

	authMiddleware := middleware.NewAuthMiddleware(authService, userRepo, logger)

	// --- 4. HTTP Gateway ---
	mux := router.NewRouter(router.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		AuthHandler:    authHandler,
		CryptoHandler:  cryptoHandler,
		SecretHandler:  secretHandler,
		HealthHandler:  healthHandler,
		AuthMiddleware: authMiddleware,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// --- 5. Graceful Exit ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("sealbox API active", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("CRITICAL: server crashed", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("ERROR: forced shutdown", "error", err)
	}
	logger.Info("sealbox API shutdown complete")
}
