package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/ferhatb/enrollio/internal/app/models"
	appRepos "github.com/ferhatb/enrollio/internal/app/repositories"
	"github.com/ferhatb/enrollio/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

// defaultCourses is the catalog seeded on first startup. Course lifecycle
// is managed outside the enrollment flow; this just guarantees there is
// something to enroll in.
var defaultCourses = []*appModels.Course{
	{Code: "CS101", Name: "Introduction to Programming", Description: strPtr("Fundamentals of programming and problem solving"), Credits: 6},
	{Code: "CS205", Name: "Data Structures", Description: strPtr("Lists, trees, graphs and their algorithms"), Credits: 6},
	{Code: "MATH110", Name: "Calculus I", Description: strPtr("Limits, derivatives and integrals"), Credits: 5},
	{Code: "DB301", Name: "Database Systems", Description: strPtr("Relational modeling, SQL and transactions"), Credits: 4},
	{Code: "NET210", Name: "Computer Networks", Description: strPtr("Protocol stacks and socket programming"), Credits: 4},
}

// CreateDefaultData seeds the default course catalog if it is missing.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	courseRepo := appRepos.NewCourseRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (Courses)...")
	var finalErr error

	existing, err := courseRepo.GetAllCourses(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error reading course catalog for seeding")
		return err
	}

	existingCodes := make(map[string]bool, len(existing))
	for _, course := range existing {
		existingCodes[course.Code] = true
	}

	for _, course := range defaultCourses {
		if existingCodes[course.Code] {
			continue
		}
		if _, err := courseRepo.CreateCourse(ctx, course); err != nil && !errors.Is(err, apperrors.ErrConflict) {
			lgr.Error().Err(err).Str("code", course.Code).Msg("Error creating default course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check complete")
	}
	return finalErr
}
