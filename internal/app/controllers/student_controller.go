package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ferhatb/enrollio/internal/app/models/dto"
	"github.com/ferhatb/enrollio/internal/app/services"
	"github.com/ferhatb/enrollio/internal/middleware"
)

// StudentController handles student read endpoints
type StudentController struct {
	enrollmentService *services.EnrollmentService
	logger            zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(enrollmentService *services.EnrollmentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// GetStudentByID returns a student's outward view
// @Summary Get student by ID
// @Description Returns the student's id, name and email. The password hash is never exposed.
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student found"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Security BearerAuth
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "invalid student id").WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.enrollmentService.GetStudentByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: student})
}
