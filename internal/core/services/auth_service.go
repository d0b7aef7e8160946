package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sealboxhq/sealbox/internal/core/domain"
)

const (
	tokenIssuer     = "sealbox-api"
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// Claims holds the stateless authorization data carried by every token.
type Claims struct {
	Email     string `json:"email,omitempty"`
	TokenType string `json:"token_type"` // distinguish 'access' from 'refresh'
	jwt.RegisteredClaims
}

// TokenPair is one short-lived access token plus one long-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService struct {
	repo   domain.UserRepository
	secret []byte
	logger *slog.Logger
}

func NewAuthService(repo domain.UserRepository, secret string, logger *slog.Logger) *AuthService {
	return &AuthService{repo: repo, secret: []byte(secret), logger: logger}
}

// Login verifies credentials and mints a token pair. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// Constant-time check
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrAccountSuspended
	}

	return s.generateTokenPair(ctx, user)
}

// Refresh rotates the token pair. The presented refresh token must be the one
// most recently persisted for the user, so a stolen old token dies on first
// legitimate rotation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	if claims.TokenType != "refresh" {
		return nil, domain.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	if subtle.ConstantTimeCompare([]byte(user.RefreshToken), []byte(refreshToken)) != 1 {
		s.logger.Warn("stale refresh token presented", slog.String("user_id", userID.String()))
		return nil, domain.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, domain.ErrAccountSuspended
	}

	return s.generateTokenPair(ctx, user)
}

// ValidateAccessToken validates signature, expiry, and token type.
func (s *AuthService) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	// Explicitly prevent a refresh token from being used as an access token
	if claims.TokenType != "access" {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) generateTokenPair(ctx context.Context, user *domain.User) (*TokenPair, error) {
	now := time.Now()

	accessClaims := Claims{
		Email:     user.Email,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshClaims := Claims{
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(refreshTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			ID:        uuid.New().String(), // JTI for revocation tracking
		},
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	if err := s.repo.UpdateRefreshToken(ctx, user.ID, refresh); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) parseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Force the signing method check
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
