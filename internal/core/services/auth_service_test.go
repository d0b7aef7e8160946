package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sealboxhq/sealbox/internal/core/domain"
	"github.com/sealboxhq/sealbox/internal/core/services"
)

const testSecret = "super-secret-key-for-testing-purposes-1234567890"

// fakeUserRepo holds a single user, which is all the auth flows need.
type fakeUserRepo struct {
	user *domain.User
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.user != nil && r.user.Email == email {
		clone := *r.user
		return &clone, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if r.user != nil && r.user.ID == id {
		clone := *r.user
		return &clone, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) UpdateRefreshToken(_ context.Context, id uuid.UUID, token string) error {
	if r.user == nil || r.user.ID != id {
		return domain.ErrNotFound
	}
	r.user.RefreshToken = token
	return nil
}

func newAuthFixture(t *testing.T, password string, active bool) (*services.AuthService, *fakeUserRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{user: &domain.User{
		ID:           uuid.New(),
		Email:        "ops@sealbox.dev",
		PasswordHash: string(hash),
		IsActive:     active,
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return services.NewAuthService(repo, testSecret, logger), repo
}

func TestAuthService_Login_Issues_Valid_Pair(t *testing.T) {
	svc, repo := newAuthFixture(t, "correct-password", true)

	pair, err := svc.Login(context.Background(), "ops@sealbox.dev", "correct-password")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, pair.RefreshToken, repo.user.RefreshToken, "refresh token must be persisted")

	token, err := jwt.ParseWithClaims(pair.AccessToken, &services.Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(*services.Claims)
	require.True(t, ok)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, repo.user.ID.String(), claims.Subject)
	assert.Equal(t, "sealbox-api", claims.Issuer)
	assert.Equal(t, "ops@sealbox.dev", claims.Email)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestAuthService_Login_Failures(t *testing.T) {
	svc, _ := newAuthFixture(t, "correct-password", true)

	_, err := svc.Login(context.Background(), "ops@sealbox.dev", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "ghost@sealbox.dev", "correct-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	suspended, _ := newAuthFixture(t, "correct-password", false)
	_, err = suspended.Login(context.Background(), "ops@sealbox.dev", "correct-password")
	assert.ErrorIs(t, err, domain.ErrAccountSuspended)
}

func TestAuthService_ValidateAccessToken_Rejects_Refresh_Token(t *testing.T) {
	svc, _ := newAuthFixture(t, "correct-password", true)

	pair, err := svc.Login(context.Background(), "ops@sealbox.dev", "correct-password")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.TokenType)

	// A refresh token must never pass as an access token.
	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = svc.ValidateAccessToken("garbage.token.here")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthService_Refresh_Rotates_And_Invalidates(t *testing.T) {
	svc, _ := newAuthFixture(t, "correct-password", true)
	ctx := context.Background()

	first, err := svc.Login(ctx, "ops@sealbox.dev", "correct-password")
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The rotated-out token is dead.
	_, err = svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	// An access token cannot drive the refresh flow.
	_, err = svc.Refresh(ctx, second.AccessToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
