package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sealboxhq/sealbox/internal/api/handlers"
	auth_middleware "github.com/sealboxhq/sealbox/internal/api/middleware"
)

// RouterConfig defines the strict dependencies required to build the API routing tree.
type RouterConfig struct {
	AllowedOrigins []string
	AuthHandler    *handlers.AuthHandler
	CryptoHandler  *handlers.CryptoHandler
	SecretHandler  *handlers.SecretHandler
	HealthHandler  *handlers.HealthHandler
	AuthMiddleware *auth_middleware.AuthMiddleware
	Logger         *slog.Logger
}

// NewRouter constructs the Chi multiplexer, attaches global middleware, and wires all endpoints.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// =========================================================================
	// 1. Global Gateway Middleware Pipeline
	// =========================================================================

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(auth_middleware.StructuredLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Limit all incoming JSON requests to 2 Megabytes max (OOM protection;
	// envelopes of 1 MB plaintexts grow ~4/3 through Base64)
	r.Use(auth_middleware.MaxBytes(2_097_152))

	// In-memory token bucket rate limiting
	r.Use(cfg.AuthMiddleware.RateLimit)

	// Strict CORS Configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// =========================================================================
	// 2. API v1 Routing Tree
	// =========================================================================

	r.Route("/api/v1", func(r chi.Router) {

		// ---------------------------------------------------------------------
		// Public Routes (No Auth Required)
		// ---------------------------------------------------------------------
		r.Group(func(r chi.Router) {
			r.Post("/auth/login", cfg.AuthHandler.Login)
			r.Post("/auth/refresh", cfg.AuthHandler.Refresh)
		})

		// ---------------------------------------------------------------------
		// Protected Routes (Requires a Valid JWT)
		// ---------------------------------------------------------------------
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthMiddleware.RequireAuthentication)

			// --- Stateless envelope operations ---
			r.Route("/crypto", func(r chi.Router) {
				r.Post("/encrypt", cfg.CryptoHandler.Encrypt)
				r.Post("/decrypt", cfg.CryptoHandler.Decrypt)
			})

			// --- Stored secrets ---
			r.Route("/secrets", func(r chi.Router) {
				r.Get("/", cfg.SecretHandler.List)
				r.Put("/{name}", cfg.SecretHandler.Put)
				r.Get("/{name}", cfg.SecretHandler.Reveal)
				r.Delete("/{name}", cfg.SecretHandler.Delete)
			})
		})
	})

	r.Get("/health", cfg.HealthHandler.Check)
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	return r
}
