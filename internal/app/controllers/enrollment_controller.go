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

// EnrollmentController handles current-student roster endpoints. Every
// handler resolves the caller's email from the authenticated context and
// passes it to the service explicitly.
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
	logger            zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// currentEmail resolves the caller identity, aborting with 401 when absent.
// Absence here means a wiring bug (route mounted without JWTAuth), not a
// normal error path.
func (c *EnrollmentController) currentEmail(ctx *gin.Context) (string, bool) {
	email, ok := middleware.CurrentStudentEmail(ctx)
	if !ok {
		c.logger.Error().Str("path", ctx.FullPath()).Msg("No authenticated identity in context")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return "", false
	}
	return email, true
}

// courseIDParam parses the course id path parameter
func (c *EnrollmentController) courseIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("courseId"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "invalid course id").WithField("courseId")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// Enroll enrolls the current student in a course
// @Summary Enroll in a course
// @Description Adds the course to the authenticated student's roster. Re-enrolling is a no-op.
// @Tags enrollments
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Enrolled"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Security BearerAuth
// @Router /enrollments/{courseId} [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	email, ok := c.currentEmail(ctx)
	if !ok {
		return
	}

	courseID, ok := c.courseIDParam(ctx)
	if !ok {
		return
	}

	confirmation, err := c.enrollmentService.EnrollInCourse(ctx.Request.Context(), email, courseID)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", email).Int64("courseID", courseID).Msg("Enrollment failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: confirmation})
}

// Cancel removes the current student's enrollment in a course
// @Summary Cancel an enrollment
// @Description Removes the course from the authenticated student's roster. Removing an absent course is a no-op.
// @Tags enrollments
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Enrollment cancelled"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Security BearerAuth
// @Router /enrollments/{courseId} [delete]
func (c *EnrollmentController) Cancel(ctx *gin.Context) {
	email, ok := c.currentEmail(ctx)
	if !ok {
		return
	}

	courseID, ok := c.courseIDParam(ctx)
	if !ok {
		return
	}

	confirmation, err := c.enrollmentService.CancelEnrollment(ctx.Request.Context(), email, courseID)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", email).Int64("courseID", courseID).Msg("Enrollment cancellation failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: confirmation})
}

// ListCourses returns the current student's enrolled courses
// @Summary List my courses
// @Description Returns every course the authenticated student is enrolled in
// @Tags enrollments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Enrolled courses"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Security BearerAuth
// @Router /enrollments [get]
func (c *EnrollmentController) ListCourses(ctx *gin.Context) {
	email, ok := c.currentEmail(ctx)
	if !ok {
		return
	}

	courses, err := c.enrollmentService.ListCourses(ctx.Request.Context(), email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: courses})
}
