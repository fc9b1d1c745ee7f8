package services

import (
	"context"
	"sync"
	"time"

	"github.com/ferhatb/enrollio/internal/app/models"
	"github.com/ferhatb/enrollio/internal/pkg/apperrors"
)

// fakeStudentRepo is an in-memory IStudentRepository used by service tests.
type fakeStudentRepo struct {
	mu       sync.Mutex
	nextID   int64
	students map[int64]*models.Student
	rosters  map[int64]map[int64]bool

	// forced errors, returned once set
	createErr error
	existsErr error
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{
		nextID:   1,
		students: make(map[int64]*models.Student),
		rosters:  make(map[int64]map[int64]bool),
	}
}

func (r *fakeStudentRepo) CreateStudent(_ context.Context, student *models.Student) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return 0, r.createErr
	}
	for _, s := range r.students {
		if s.Email == student.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	id := r.nextID
	r.nextID++
	cp := *student
	cp.ID = id
	r.students[id] = &cp
	r.rosters[id] = make(map[int64]bool)
	return id, nil
}

func (r *fakeStudentRepo) GetStudentByID(_ context.Context, id int64) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStudentRepo) getByEmail(email string) (*models.Student, error) {
	for _, s := range r.students {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *fakeStudentRepo) GetStudentByEmail(_ context.Context, email string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getByEmail(email)
}

func (r *fakeStudentRepo) GetStudentByEmailForUpdate(_ context.Context, email string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getByEmail(email)
}

func (r *fakeStudentRepo) GetStudentByName(_ context.Context, name string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *fakeStudentRepo) EmailExists(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsErr != nil {
		return false, r.existsErr
	}
	for _, s := range r.students {
		if s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeStudentRepo) GetStudentCourses(_ context.Context, studentID int64) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	roster, ok := r.rosters[studentID]
	if !ok {
		return []*models.Course{}, nil
	}
	courses := make([]*models.Course, 0, len(roster))
	for courseID := range roster {
		courses = append(courses, &models.Course{ID: courseID})
	}
	return courses, nil
}

func (r *fakeStudentRepo) AddCourse(_ context.Context, studentID, courseID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rosters[studentID] == nil {
		r.rosters[studentID] = make(map[int64]bool)
	}
	r.rosters[studentID][courseID] = true
	return nil
}

func (r *fakeStudentRepo) RemoveCourse(_ context.Context, studentID, courseID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rosters[studentID], courseID)
	return nil
}

// addStudent seeds a student directly, bypassing registration.
func (r *fakeStudentRepo) addStudent(name, email, passwordHash string) *models.Student {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	s := &models.Student{ID: id, Name: name, Email: email, Password: passwordHash}
	r.students[id] = s
	r.rosters[id] = make(map[int64]bool)
	return s
}

// fakeCourseRepo is an in-memory ICourseRepository.
type fakeCourseRepo struct {
	mu      sync.Mutex
	nextID  int64
	courses map[int64]*models.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{nextID: 1, courses: make(map[int64]*models.Course)}
}

func (r *fakeCourseRepo) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCourseRepo) GetAllCourses(_ context.Context) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	courses := make([]*models.Course, 0, len(r.courses))
	for _, c := range r.courses {
		cp := *c
		courses = append(courses, &cp)
	}
	return courses, nil
}

func (r *fakeCourseRepo) CreateCourse(_ context.Context, course *models.Course) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	cp := *course
	cp.ID = id
	r.courses[id] = &cp
	return id, nil
}

// addCourse seeds a course with a fixed id.
func (r *fakeCourseRepo) addCourse(id int64, code, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses[id] = &models.Course{ID: id, Code: code, Name: name, Credits: 3}
	if id >= r.nextID {
		r.nextID = id + 1
	}
}

// storedToken is a refresh token record in the fake store.
type storedToken struct {
	studentID int64
	expiry    time.Time
	revoked   bool
}

// fakeTokenRepo is an in-memory ITokenRepository.
type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*storedToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*storedToken)}
}

func (r *fakeTokenRepo) CreateToken(_ context.Context, token string, studentID int64, expiryDate time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = &storedToken{studentID: studentID, expiry: expiryDate}
	return nil
}

func (r *fakeTokenRepo) GetTokenByValue(_ context.Context, token string) (int64, time.Time, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	if t.revoked {
		return 0, time.Time{}, true, apperrors.ErrTokenRevoked
	}
	if time.Now().After(t.expiry) {
		return 0, time.Time{}, false, apperrors.ErrTokenExpired
	}
	return t.studentID, t.expiry, false, nil
}

func (r *fakeTokenRepo) RevokeToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	t.revoked = true
	return nil
}

// fakeTxManager runs the unit of work directly; the fakes have no
// transaction concept.
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}
