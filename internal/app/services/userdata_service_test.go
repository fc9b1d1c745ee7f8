package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferhatb/enrollio/internal/app/models"
	"github.com/ferhatb/enrollio/internal/pkg/apperrors"
)

func TestLoadPrincipal(t *testing.T) {
	studentRepo := newFakeStudentRepo()
	studentRepo.addStudent("Ada Lovelace", "ada@example.com", "bcrypt-hash")

	svc := NewUserDataService(studentRepo, zerolog.Nop())

	principal, err := svc.LoadPrincipal(context.Background(), "Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", principal.Username)
	assert.Equal(t, "bcrypt-hash", principal.PasswordHash)
	assert.Equal(t, []string{models.RoleUser}, principal.Roles)
}

func TestLoadPrincipalNotFound(t *testing.T) {
	svc := NewUserDataService(newFakeStudentRepo(), zerolog.Nop())

	_, err := svc.LoadPrincipal(context.Background(), "Nobody")
	assert.ErrorIs(t, err, apperrors.ErrPrincipalNotFound)
	assert.NotErrorIs(t, err, apperrors.ErrStudentNotFound)
}
