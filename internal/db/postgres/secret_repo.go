package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sealboxhq/sealbox/internal/core/domain"
)

// SecretRepo implements domain.SecretRepository for PostgreSQL.
type SecretRepo struct {
	pool *pgxpool.Pool
}

func NewSecretRepo(pool *pgxpool.Pool) *SecretRepo {
	return &SecretRepo{pool: pool}
}

// Create inserts a new secret row. The (user_id, name) unique constraint maps
// to domain.ErrDuplicateName instead of leaking a driver error.
func (r *SecretRepo) Create(ctx context.Context, secret *domain.Secret) error {
	query := `
		INSERT INTO secrets (id, user_id, name, envelope)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		secret.ID, secret.UserID, secret.Name, secret.Envelope,
	).Scan(&secret.CreatedAt, &secret.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrDuplicateName
	}
	return err
}

// GetByName fetches a secret, scoping the lookup to the owning user so one
// tenant can never address another tenant's rows.
func (r *SecretRepo) GetByName(ctx context.Context, userID uuid.UUID, name string) (*domain.Secret, error) {
	query := `
		SELECT id, user_id, name, envelope, created_at, updated_at
		FROM secrets
		WHERE user_id = $1 AND name = $2
	`
	var secret domain.Secret
	err := r.pool.QueryRow(ctx, query, userID, name).Scan(
		&secret.ID, &secret.UserID, &secret.Name, &secret.Envelope,
		&secret.CreatedAt, &secret.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &secret, nil
}

// ListByUser returns secret metadata for the user. Envelopes stay in the
// database; listing is not revealing.
func (r *SecretRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Secret, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM secrets
		WHERE user_id = $1
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var secrets []*domain.Secret
	for rows.Next() {
		var secret domain.Secret
		if err := rows.Scan(
			&secret.ID, &secret.UserID, &secret.Name,
			&secret.CreatedAt, &secret.UpdatedAt,
		); err != nil {
			return nil, err
		}
		secrets = append(secrets, &secret)
	}
	return secrets, rows.Err()
}

func (r *SecretRepo) UpdateEnvelope(ctx context.Context, id uuid.UUID, envelope string) error {
	query := `
		UPDATE secrets
		SET envelope = $2, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, envelope)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SecretRepo) Delete(ctx context.Context, userID uuid.UUID, name string) error {
	query := `DELETE FROM secrets WHERE user_id = $1 AND name = $2`
	tag, err := r.pool.Exec(ctx, query, userID, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
