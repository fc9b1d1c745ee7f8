package dto

import "github.com/ferhatb/enrollio/internal/app/models"

// StudentResponse is the outward view of a student. The password hash is
// never part of it.
type StudentResponse struct {
	ID    int64  `json:"id" example:"1"`
	Name  string `json:"name" example:"Ana Silva"`
	Email string `json:"email" example:"ana@example.com"`
}

// NewStudentResponse maps a student entity to its outward view
func NewStudentResponse(student *models.Student) *StudentResponse {
	return &StudentResponse{
		ID:    student.ID,
		Name:  student.Name,
		Email: student.Email,
	}
}
