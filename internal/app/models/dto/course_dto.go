package dto

import "github.com/ferhatb/enrollio/internal/app/models"

// CourseResponse is the outward view of a course
type CourseResponse struct {
	ID          int64   `json:"id" example:"7"`
	Code        string  `json:"code" example:"CS101"`
	Name        string  `json:"name" example:"Introduction to Programming"`
	Description *string `json:"description,omitempty"`
	Credits     int     `json:"credits" example:"6"`
}

// NewCourseResponse maps a course entity to its outward view
func NewCourseResponse(course *models.Course) *CourseResponse {
	return &CourseResponse{
		ID:          course.ID,
		Code:        course.Code,
		Name:        course.Name,
		Description: course.Description,
		Credits:     course.Credits,
	}
}

// NewCourseResponseList maps a course list to outward views
func NewCourseResponseList(courses []*models.Course) []*CourseResponse {
	responses := make([]*CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, NewCourseResponse(course))
	}
	return responses
}
