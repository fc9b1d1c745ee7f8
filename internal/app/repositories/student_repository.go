package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ferhatb/enrollio/internal/app/models"
	"github.com/ferhatb/enrollio/internal/db"
	"github.com/ferhatb/enrollio/internal/pkg/apperrors"
	"github.com/ferhatb/enrollio/internal/pkg/dberrors"
	"github.com/ferhatb/enrollio/internal/pkg/logger"
)

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// studentColumns are the columns scanned into a models.Student
var studentColumns = []string{"id", "name", "email", "password", "created_at", "updated_at"}

// CreateStudent creates a new student and returns its id
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("students").
		Columns("name", "email", "password", "created_at", "updated_at").
		Values(student.Name, student.Email, student.Password, now, now).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	err = db.QuerierFromContext(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
			logger.Warn().Str("email", student.Email).Msg("Attempted to register student with duplicate email")
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", student.Email).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	logger.Info().Int64("studentID", id).Str("email", student.Email).Msg("Student created successfully")
	return id, nil
}

// GetStudentByID retrieves a student by id
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getStudent(ctx, squirrel.Eq{"id": id}, false)
}

// GetStudentByEmail retrieves a student by email
func (r *StudentRepository) GetStudentByEmail(ctx context.Context, email string) (*models.Student, error) {
	return r.getStudent(ctx, squirrel.Eq{"email": email}, false)
}

// GetStudentByEmailForUpdate retrieves a student by email and locks the row
// for the duration of the ambient transaction. Intended for roster
// read-modify-write units; outside a transaction the lock is released
// immediately and the call degrades to a plain read.
func (r *StudentRepository) GetStudentByEmailForUpdate(ctx context.Context, email string) (*models.Student, error) {
	return r.getStudent(ctx, squirrel.Eq{"email": email}, true)
}

// GetStudentByName retrieves a student by exact name match
func (r *StudentRepository) GetStudentByName(ctx context.Context, name string) (*models.Student, error) {
	return r.getStudent(ctx, squirrel.Eq{"name": name}, false)
}

func (r *StudentRepository) getStudent(ctx context.Context, pred squirrel.Eq, forUpdate bool) (*models.Student, error) {
	builder := r.sb.Select(studentColumns...).
		From("students").
		Where(pred).
		Limit(1)
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	var student models.Student
	err = db.QuerierFromContext(ctx, r.db).QueryRow(ctx, sql, args...).Scan(
		&student.ID, &student.Name, &student.Email, &student.Password,
		&student.CreatedAt, &student.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// EmailExists checks if a student with the given email already exists
func (r *StudentRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("students").
		Where(squirrel.Eq{"email": email}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building email exists SQL")
		return false, fmt.Errorf("failed to build email exists query: %w", err)
	}

	var exists bool
	err = db.QuerierFromContext(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error checking email existence")
		return false, fmt.Errorf("error checking email existence: %w", err)
	}

	return exists, nil
}

// GetStudentCourses retrieves all courses a student is enrolled in. The
// roster is fully scanned before returning: callers always get materialized
// data, never a handle that depends on an open connection.
func (r *StudentRepository) GetStudentCourses(ctx context.Context, studentID int64) ([]*models.Course, error) {
	sql, args, err := r.sb.Select("c.id", "c.code", "c.name", "c.description", "c.credits").
		From("enrollments e").
		Join("courses c ON c.id = e.course_id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("c.id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building student courses SQL")
		return nil, fmt.Errorf("failed to build student courses query: %w", err)
	}

	rows, err := db.QuerierFromContext(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error querying student courses")
		return nil, fmt.Errorf("error retrieving student courses: %w", err)
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

// AddCourse adds a course to the student's roster. Re-adding an already
// enrolled course is a no-op: the roster has set semantics.
func (r *StudentRepository) AddCourse(ctx context.Context, studentID, courseID int64) error {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("student_id", "course_id", "enrolled_at").
		Values(studentID, courseID, time.Now()).
		Suffix("ON CONFLICT (student_id, course_id) DO NOTHING").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building add course SQL")
		return fmt.Errorf("failed to build add course query: %w", err)
	}

	_, err = db.QuerierFromContext(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Error adding course to roster")
		return fmt.Errorf("error adding course to roster: %w", err)
	}

	return nil
}

// RemoveCourse removes a course from the student's roster. Removing an
// absent course is a no-op, not an error.
func (r *StudentRepository) RemoveCourse(ctx context.Context, studentID, courseID int64) error {
	sql, args, err := r.sb.Delete("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building remove course SQL")
		return fmt.Errorf("failed to build remove course query: %w", err)
	}

	_, err = db.QuerierFromContext(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Error removing course from roster")
		return fmt.Errorf("error removing course from roster: %w", err)
	}

	return nil
}
