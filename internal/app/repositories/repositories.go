package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ferhatb/enrollio/internal/app/models"
)

// IStudentRepository defines the student store contract consumed by services
type IStudentRepository interface {
	CreateStudent(ctx context.Context, student *models.Student) (int64, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetStudentByEmail(ctx context.Context, email string) (*models.Student, error)
	GetStudentByEmailForUpdate(ctx context.Context, email string) (*models.Student, error)
	GetStudentByName(ctx context.Context, name string) (*models.Student, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetStudentCourses(ctx context.Context, studentID int64) ([]*models.Course, error)
	AddCourse(ctx context.Context, studentID, courseID int64) error
	RemoveCourse(ctx context.Context, studentID, courseID int64) error
}

// ICourseRepository defines the course store contract consumed by services
type ICourseRepository interface {
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) (int64, error)
}

// ITokenRepository defines the refresh token store contract
type ITokenRepository interface {
	CreateToken(ctx context.Context, token string, studentID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, bool, error)
	RevokeToken(ctx context.Context, token string) error
}

// TxManager runs a function inside a single store transaction; the
// transaction travels in the context so repository calls made within fn
// join it. Implemented by db.PostgresDB.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository *StudentRepository
	CourseRepository  *CourseRepository
	TokenRepository   *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository: NewStudentRepository(db),
		CourseRepository:  NewCourseRepository(db),
		TokenRepository:   NewTokenRepository(db),
	}
}
