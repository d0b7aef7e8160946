package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is an API principal. PasswordHash is a bcrypt digest and never leaves
// the persistence boundary.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error
}

// contextKey keeps request-scoped values collision-free.
type contextKey string

// UserContextKey carries the authenticated *Claims through the request chain.
const UserContextKey contextKey = "sealbox.user"
