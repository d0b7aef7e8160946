package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Secret is a named, encrypted value owned by one user. Envelope holds the
// text-mode wire form produced by the crypto layer; the plaintext never
// touches this struct.
type Secret struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Name      string    `json:"name"`
	Envelope  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SecretRepository persists envelopes. Implementations return domain errors,
// never driver errors.
type SecretRepository interface {
	Create(ctx context.Context, secret *Secret) error
	GetByName(ctx context.Context, userID uuid.UUID, name string) (*Secret, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Secret, error)
	UpdateEnvelope(ctx context.Context, id uuid.UUID, envelope string) error
	Delete(ctx context.Context, userID uuid.UUID, name string) error
}

// SecretService is the application-facing contract for stored secrets.
type SecretService interface {
	Put(ctx context.Context, userID uuid.UUID, name, value string) (*Secret, error)
	Reveal(ctx context.Context, userID uuid.UUID, name string) (string, error)
	List(ctx context.Context, userID uuid.UUID) ([]*Secret, error)
	Delete(ctx context.Context, userID uuid.UUID, name string) error
}
