package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/sealboxhq/sealbox/internal/core/domain"
	"github.com/sealboxhq/sealbox/internal/core/services"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type AuthMiddleware struct {
	AuthService *services.AuthService
	UserRepo    domain.UserRepository // real-time account checks, not just JWT trust
	Logger      *slog.Logger
	visitors    sync.Map // thread-safe map for high-concurrency scaling
}

func NewAuthMiddleware(authService *services.AuthService, userRepo domain.UserRepository, logger *slog.Logger) *AuthMiddleware {
	m := &AuthMiddleware{
		AuthService: authService,
		UserRepo:    userRepo,
		Logger:      logger,
	}
	// Start cleanup worker as a managed method, not a global init
	go m.cleanupVisitors()
	return m
}

// ==============================================================================
// 1. Identity
// ==============================================================================

func (m *AuthMiddleware) RequireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := m.extractToken(r)
		if tokenString == "" {
			http.Error(w, `{"message": "Unauthorized"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.AuthService.ValidateAccessToken(tokenString)
		if err != nil {
			http.Error(w, `{"message": "Invalid token"}`, http.StatusUnauthorized)
			return
		}

		// Verify the user is still active so a suspended account cannot coast
		// on a token minted before the suspension.
		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			http.Error(w, `{"message": "Invalid token"}`, http.StatusUnauthorized)
			return
		}
		user, err := m.UserRepo.GetByID(r.Context(), userID)
		if err != nil || !user.IsActive {
			m.Logger.Warn("attempted access with ghost token", slog.String("user_id", claims.Subject))
			http.Error(w, `{"message": "Account suspended"}`, http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), domain.UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ==============================================================================
// 2. DoS Protection
// ==============================================================================

func (m *AuthMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Use X-Real-IP for proxy compatibility
		ip := r.Header.Get("X-Real-IP")
		if ip == "" {
			ip = r.RemoteAddr
		}

		v, _ := m.visitors.LoadOrStore(ip, &visitor{
			limiter:  rate.NewLimiter(rate.Limit(10), 30),
			lastSeen: time.Now(),
		})

		vis := v.(*visitor)
		vis.lastSeen = time.Now()

		if !vis.limiter.Allow() {
			http.Error(w, `{"message": "Rate limit exceeded"}`, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) cleanupVisitors() {
	ticker := time.NewTicker(time.Minute)
	for range ticker.C {
		m.visitors.Range(func(key, value interface{}) bool {
			if time.Since(value.(*visitor).lastSeen) > 3*time.Minute {
				m.visitors.Delete(key)
			}
			return true
		})
	}
}

func (m *AuthMiddleware) extractToken(r *http.Request) string {
	if cookie, err := r.Cookie("sealbox_access_token"); err == nil {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
