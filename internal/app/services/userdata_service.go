package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/ferhatb/enrollio/internal/app/models"
	"github.com/ferhatb/enrollio/internal/app/repositories"
	"github.com/ferhatb/enrollio/internal/pkg/apperrors"
)

// PrincipalLoader is the "load principal by identifier" contract consumed
// by the authentication layer.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, name string) (*models.Principal, error)
}

// UserDataService bridges the student store to the authentication layer's
// principal contract. It only supplies the stored hash; hashing and
// verification stay with the credential verifier.
type UserDataService struct {
	studentRepo repositories.IStudentRepository
	logger      zerolog.Logger
}

// NewUserDataService creates a new UserDataService
func NewUserDataService(studentRepo repositories.IStudentRepository, logger zerolog.Logger) *UserDataService {
	return &UserDataService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// LoadPrincipal looks up a student by exact name match and builds the
// principal record: username, stored password hash and the fixed USER role.
// A missing student is ErrPrincipalNotFound, kept distinct from the
// enrollment layer's not-found.
func (s *UserDataService) LoadPrincipal(ctx context.Context, name string) (*models.Principal, error) {
	student, err := s.studentRepo.GetStudentByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			s.logger.Debug().Str("username", name).Msg("Principal not found")
			return nil, apperrors.ErrPrincipalNotFound
		}
		return nil, err
	}

	return &models.Principal{
		Username:     student.Name,
		PasswordHash: student.Password,
		Roles:        []string{models.RoleUser},
	}, nil
}
