package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ferhatb/enrollio/internal/app/models"
	"github.com/ferhatb/enrollio/internal/db"
	"github.com/ferhatb/enrollio/internal/pkg/apperrors"
	"github.com/ferhatb/enrollio/internal/pkg/dberrors"
	"github.com/ferhatb/enrollio/internal/pkg/logger"
)

// CourseRepository handles course database operations. Course lifecycle is
// managed outside the enrollment flow; this repository is read-mostly, with
// creation used by seeding.
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetCourseByID retrieves a course by id
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select("id", "code", "name", "description", "credits").
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get course SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	var course models.Course
	err = db.QuerierFromContext(ctx, r.db).QueryRow(ctx, sql, args...).Scan(
		&course.ID, &course.Code, &course.Name, &course.Description, &course.Credits)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// GetAllCourses retrieves the full course catalog
func (r *CourseRepository) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select("id", "code", "name", "description", "credits").
		From("courses").
		OrderBy("id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get all courses SQL")
		return nil, fmt.Errorf("failed to build get all courses query: %w", err)
	}

	rows, err := db.QuerierFromContext(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying courses")
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Code, &course.Name, &course.Description, &course.Credits); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, &course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading course rows: %w", err)
	}

	return courses, nil
}

// CreateCourse creates a new course and returns its id
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("code", "name", "description", "credits").
		Values(course.Code, course.Name, course.Description, course.Credits).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return 0, fmt.Errorf("failed to build create course query: %w", err)
	}

	var id int64
	err = db.QuerierFromContext(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_code_key") {
			return 0, apperrors.ErrConflict
		}
		logger.Error().Err(err).Str("code", course.Code).Msg("Error executing create course query")
		return 0, fmt.Errorf("error creating course: %w", err)
	}

	return id, nil
}
