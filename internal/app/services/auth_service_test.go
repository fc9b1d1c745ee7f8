package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferhatb/enrollio/internal/app/models/dto"
	"github.com/ferhatb/enrollio/internal/pkg/apperrors"
	"github.com/ferhatb/enrollio/internal/pkg/auth"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeStudentRepo, *fakeTokenRepo) {
	t.Helper()

	studentRepo := newFakeStudentRepo()
	tokenRepo := newFakeTokenRepo()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "enrollio.test",
	})

	principals := NewUserDataService(studentRepo, zerolog.Nop())
	svc := NewAuthService(principals, studentRepo, tokenRepo, jwtService, zerolog.Nop())
	return svc, studentRepo, tokenRepo
}

func registerTestStudent(t *testing.T, studentRepo *fakeStudentRepo, name, email, password string) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	studentRepo.addStudent(name, email, hash)
}

func TestLogin(t *testing.T) {
	svc, studentRepo, tokenRepo := newAuthFixture(t)
	registerTestStudent(t, studentRepo, "Ada Lovelace", "ada@example.com", "correct-horse")

	tokens, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "Ada Lovelace",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.Equal(t, int64(3600), tokens.ExpiresIn)

	// The issued refresh token is persisted
	_, _, _, err = tokenRepo.GetTokenByValue(context.Background(), tokens.RefreshToken)
	assert.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, studentRepo, _ := newAuthFixture(t)
	registerTestStudent(t, studentRepo, "Ada Lovelace", "ada@example.com", "correct-horse")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "Ada Lovelace",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownUsername(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	// Unknown usernames fail the same way as wrong passwords
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "Nobody",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, apperrors.ErrPrincipalNotFound)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, studentRepo, tokenRepo := newAuthFixture(t)
	registerTestStudent(t, studentRepo, "Ada Lovelace", "ada@example.com", "correct-horse")

	ctx := context.Background()
	first, err := svc.Login(ctx, &dto.LoginRequest{Username: "Ada Lovelace", Password: "correct-horse"})
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The old token is revoked and cannot be replayed
	_, _, _, err = tokenRepo.GetTokenByValue(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	_, err = svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefreshUnknownToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Refresh(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestRefreshExpiredToken(t *testing.T) {
	svc, studentRepo, tokenRepo := newAuthFixture(t)
	registerTestStudent(t, studentRepo, "Ada Lovelace", "ada@example.com", "correct-horse")

	ctx := context.Background()
	student, err := studentRepo.GetStudentByEmail(ctx, "ada@example.com")
	require.NoError(t, err)

	require.NoError(t, tokenRepo.CreateToken(ctx, "stale-token", student.ID, time.Now().Add(-time.Minute)))

	_, err = svc.Refresh(ctx, "stale-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}
