package models

// Course represents a course students can enroll in.
type Course struct {
	ID          int64   `json:"id" db:"id"`
	Code        string  `json:"code" db:"code"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"` // Nullable
	Credits     int     `json:"credits" db:"credits"`
}
