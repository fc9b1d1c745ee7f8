package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferhatb/enrollio/internal/app/models/dto"
	"github.com/ferhatb/enrollio/internal/pkg/apperrors"
	"github.com/ferhatb/enrollio/internal/pkg/auth"
)

func newEnrollmentFixture() (*EnrollmentService, *fakeStudentRepo, *fakeCourseRepo, *fakeTxManager) {
	studentRepo := newFakeStudentRepo()
	courseRepo := newFakeCourseRepo()
	tx := &fakeTxManager{}
	svc := NewEnrollmentService(studentRepo, courseRepo, tx, zerolog.Nop())
	return svc, studentRepo, courseRepo, tx
}

func TestRegisterStudent(t *testing.T) {
	svc, studentRepo, _, _ := newEnrollmentFixture()
	ctx := context.Background()

	resp, err := svc.RegisterStudent(ctx, &dto.RegisterStudentRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "student registered successfully", resp.Message)

	stored, err := studentRepo.GetStudentByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", stored.Name)

	// Stored credential is a hash of the submitted password, never the plaintext
	assert.NotEqual(t, "correct-horse", stored.Password)
	assert.True(t, auth.CheckPassword(stored.Password, "correct-horse"))
}

func TestRegisterStudentDuplicateEmail(t *testing.T) {
	svc, studentRepo, _, _ := newEnrollmentFixture()
	ctx := context.Background()

	studentRepo.addStudent("Ada Lovelace", "ada@example.com", "hash")

	_, err := svc.RegisterStudent(ctx, &dto.RegisterStudentRequest{
		Name:     "Someone Else",
		Email:    "ada@example.com",
		Password: "password1",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestGetStudentByID(t *testing.T) {
	svc, studentRepo, _, _ := newEnrollmentFixture()
	ctx := context.Background()

	s := studentRepo.addStudent("Ada Lovelace", "ada@example.com", "secret-hash")

	view, err := svc.GetStudentByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, view.ID)
	assert.Equal(t, "Ada Lovelace", view.Name)
	assert.Equal(t, "ada@example.com", view.Email)
}

func TestGetStudentByIDNotFound(t *testing.T) {
	svc, _, _, _ := newEnrollmentFixture()

	_, err := svc.GetStudentByID(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestEnrollListCancel(t *testing.T) {
	svc, studentRepo, courseRepo, tx := newEnrollmentFixture()
	ctx := context.Background()

	studentRepo.addStudent("Ada Lovelace", "ada@example.com", "hash")
	courseRepo.addCourse(7, "CS101", "Introduction to Computer Science")

	resp, err := svc.EnrollInCourse(ctx, "ada@example.com", 7)
	require.NoError(t, err)
	assert.Equal(t, "enrolled in course successfully", resp.Message)
	assert.Equal(t, 1, tx.calls)

	courses, err := svc.ListCourses(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, int64(7), courses[0].ID)

	resp, err = svc.CancelEnrollment(ctx, "ada@example.com", 7)
	require.NoError(t, err)
	assert.Equal(t, "enrollment cancelled successfully", resp.Message)

	courses, err = svc.ListCourses(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestEnrollTwiceIsNoOp(t *testing.T) {
	svc, studentRepo, courseRepo, _ := newEnrollmentFixture()
	ctx := context.Background()

	studentRepo.addStudent("Ada Lovelace", "ada@example.com", "hash")
	courseRepo.addCourse(7, "CS101", "Introduction to Computer Science")

	_, err := svc.EnrollInCourse(ctx, "ada@example.com", 7)
	require.NoError(t, err)
	_, err = svc.EnrollInCourse(ctx, "ada@example.com", 7)
	require.NoError(t, err)

	courses, err := svc.ListCourses(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Len(t, courses, 1)
}

func TestEnrollUnknownCourse(t *testing.T) {
	svc, studentRepo, _, _ := newEnrollmentFixture()
	ctx := context.Background()

	studentRepo.addStudent("Ada Lovelace", "ada@example.com", "hash")

	_, err := svc.EnrollInCourse(ctx, "ada@example.com", 404)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	// Failed enrollment leaves the roster untouched
	courses, err := svc.ListCourses(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestEnrollUnknownStudent(t *testing.T) {
	svc, _, courseRepo, _ := newEnrollmentFixture()

	courseRepo.addCourse(7, "CS101", "Introduction to Computer Science")

	_, err := svc.EnrollInCourse(context.Background(), "ghost@example.com", 7)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestCancelNotEnrolledIsNoOp(t *testing.T) {
	svc, studentRepo, courseRepo, _ := newEnrollmentFixture()
	ctx := context.Background()

	studentRepo.addStudent("Ada Lovelace", "ada@example.com", "hash")
	courseRepo.addCourse(7, "CS101", "Introduction to Computer Science")

	resp, err := svc.CancelEnrollment(ctx, "ada@example.com", 7)
	require.NoError(t, err)
	assert.Equal(t, "enrollment cancelled successfully", resp.Message)
}

func TestCancelUnknownCourse(t *testing.T) {
	svc, studentRepo, _, _ := newEnrollmentFixture()

	studentRepo.addStudent("Ada Lovelace", "ada@example.com", "hash")

	_, err := svc.CancelEnrollment(context.Background(), "ada@example.com", 404)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestListCoursesEmptyRoster(t *testing.T) {
	svc, studentRepo, _, _ := newEnrollmentFixture()

	studentRepo.addStudent("Ada Lovelace", "ada@example.com", "hash")

	courses, err := svc.ListCourses(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}
