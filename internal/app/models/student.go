package models

import (
	"time"
)

// Student defines the student model based on the 'students' table
type Student struct {
	ID        int64     `json:"id" db:"id" example:"1"`                       // Unique identifier for the student
	Name      string    `json:"name" db:"name" example:"Ana Silva"`           // Student's name, also used as login username
	Email     string    `json:"email" db:"email" example:"ana@example.com"`   // Student's email address (unique)
	Password  string    `json:"-" db:"password"`                              // Hashed password (excluded from JSON)
	CreatedAt time.Time `json:"createdAt" db:"created_at"`                    // Timestamp when the student was created
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`                    // Timestamp when the student was last updated

	// Relations (populated when needed)
	Courses []*Course `json:"courses,omitempty"` // Courses the student is enrolled in
}
