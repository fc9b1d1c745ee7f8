package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ferhatb/enrollio/internal/app/models"
	"github.com/ferhatb/enrollio/internal/app/models/dto"
	"github.com/ferhatb/enrollio/internal/app/repositories"
	"github.com/ferhatb/enrollio/internal/pkg/apperrors"
	"github.com/ferhatb/enrollio/internal/pkg/auth"
)

// EnrollmentService implements student registration and roster management.
// Every current-student operation takes the caller's email as an explicit
// parameter; the service never reaches into request or global state for
// identity.
type EnrollmentService struct {
	studentRepo repositories.IStudentRepository
	courseRepo  repositories.ICourseRepository
	tx          repositories.TxManager
	logger      zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	studentRepo repositories.IStudentRepository,
	courseRepo repositories.ICourseRepository,
	tx repositories.TxManager,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		tx:          tx,
		logger:      logger,
	}
}

// RegisterStudent registers a new student. Fails with
// apperrors.ErrEmailAlreadyExists when the email is taken. The plaintext
// password is hashed immediately and never stored or logged.
func (s *EnrollmentService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.SuccessResponse, error) {
	exists, err := s.studentRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	student := &models.Student{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
	}

	// The unique constraint still backs the precondition check; a racing
	// duplicate registration surfaces as ErrEmailAlreadyExists here.
	studentID, err := s.studentRepo.CreateStudent(ctx, student)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", studentID).Str("email", req.Email).Msg("Student registered")

	return &dto.SuccessResponse{Message: "student registered successfully"}, nil
}

// GetStudentByID returns the outward view of a student. The view never
// carries the password hash.
func (s *EnrollmentService) GetStudentByID(ctx context.Context, id int64) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return dto.NewStudentResponse(student), nil
}

// EnrollInCourse adds the course to the roster of the student identified by
// studentEmail. The whole read-modify-write runs in one transaction with the
// student row locked, so concurrent roster writes for the same student
// serialize. Enrolling in an already-enrolled course is a no-op.
func (s *EnrollmentService) EnrollInCourse(ctx context.Context, studentEmail string, courseID int64) (*dto.SuccessResponse, error) {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		student, err := s.studentRepo.GetStudentByEmailForUpdate(ctx, studentEmail)
		if err != nil {
			return err
		}

		course, err := s.courseRepo.GetCourseByID(ctx, courseID)
		if err != nil {
			return err
		}

		return s.studentRepo.AddCourse(ctx, student.ID, course.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", studentEmail).Int64("courseID", courseID).Msg("Student enrolled in course")

	return &dto.SuccessResponse{Message: "enrolled in course successfully"}, nil
}

// CancelEnrollment removes the course from the student's roster. Removing a
// course the student is not enrolled in succeeds without changing anything.
// The course must still exist; a missing course is ErrCourseNotFound.
func (s *EnrollmentService) CancelEnrollment(ctx context.Context, studentEmail string, courseID int64) (*dto.SuccessResponse, error) {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		student, err := s.studentRepo.GetStudentByEmailForUpdate(ctx, studentEmail)
		if err != nil {
			return err
		}

		course, err := s.courseRepo.GetCourseByID(ctx, courseID)
		if err != nil {
			return err
		}

		return s.studentRepo.RemoveCourse(ctx, student.ID, course.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", studentEmail).Int64("courseID", courseID).Msg("Enrollment cancelled")

	return &dto.SuccessResponse{Message: "enrollment cancelled successfully"}, nil
}

// ListCourses returns the student's enrolled courses as outward views. The
// roster comes back fully materialized from the store.
func (s *EnrollmentService) ListCourses(ctx context.Context, studentEmail string) ([]*dto.CourseResponse, error) {
	student, err := s.studentRepo.GetStudentByEmail(ctx, studentEmail)
	if err != nil {
		return nil, err
	}

	courses, err := s.studentRepo.GetStudentCourses(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing student courses: %w", err)
	}

	return dto.NewCourseResponseList(courses), nil
}
