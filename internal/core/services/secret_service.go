package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sealboxhq/sealbox/internal/core/domain"
)

type SecretService struct {
	repo   domain.SecretRepository
	cipher domain.SecretCipher
	logger *slog.Logger
}

func NewSecretService(
	repo domain.SecretRepository,
	cipher domain.SecretCipher,
	logger *slog.Logger,
) *SecretService {
	return &SecretService{
		repo:   repo,
		cipher: cipher,
		logger: logger,
	}
}

// Put encrypts and persists a named secret, creating it or rotating the
// stored envelope in place. The secret's own ID is bound as associated data,
// so a leaked database row cannot be replayed under a different secret.
func (s *SecretService) Put(ctx context.Context, userID uuid.UUID, name, value string) (*domain.Secret, error) {
	existing, err := s.repo.GetByName(ctx, userID, name)
	switch {
	case err == nil:
		envelope, err := s.encrypt(existing.ID, value)
		if err != nil {
			return nil, err
		}
		if err := s.repo.UpdateEnvelope(ctx, existing.ID, envelope); err != nil {
			return nil, err
		}
		existing.Envelope = envelope
		return existing, nil

	case errors.Is(err, domain.ErrNotFound):
		secret := &domain.Secret{
			ID:     uuid.New(),
			UserID: userID,
			Name:   name,
		}
		envelope, err := s.encrypt(secret.ID, value)
		if err != nil {
			return nil, err
		}
		secret.Envelope = envelope
		if err := s.repo.Create(ctx, secret); err != nil {
			return nil, err
		}
		return secret, nil

	default:
		return nil, err
	}
}

// Reveal retrieves and decrypts a stored secret for the calling user.
func (s *SecretService) Reveal(ctx context.Context, userID uuid.UUID, name string) (string, error) {
	secret, err := s.repo.GetByName(ctx, userID, name)
	if err != nil {
		return "", err
	}

	// Decrypt with the same ID binding used at Put time.
	plaintext, err := s.cipher.Decrypt([]byte(secret.Envelope), secret.ID[:])
	if err != nil {
		s.logger.Warn("secret failed authentication",
			slog.String("secret_id", secret.ID.String()))
		return "", fmt.Errorf("integrity violation: failed to decrypt secret")
	}
	return plaintext, nil
}

func (s *SecretService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Secret, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *SecretService) Delete(ctx context.Context, userID uuid.UUID, name string) error {
	return s.repo.Delete(ctx, userID, name)
}

func (s *SecretService) encrypt(id uuid.UUID, value string) (string, error) {
	envelope, err := s.cipher.Encrypt(value, id[:])
	if err != nil {
		s.logger.Error("encryption failure", slog.String("secret_id", id.String()))
		return "", fmt.Errorf("cryptographic failure")
	}
	return string(envelope), nil
}
