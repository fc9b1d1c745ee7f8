package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ferhatb/enrollio/internal/app/models/dto"
	"github.com/ferhatb/enrollio/internal/app/repositories"
	"github.com/ferhatb/enrollio/internal/middleware"
)

// CourseController exposes the read-only course catalog
type CourseController struct {
	courseRepo repositories.ICourseRepository
}

// NewCourseController creates a new CourseController
func NewCourseController(courseRepo repositories.ICourseRepository) *CourseController {
	return &CourseController{courseRepo: courseRepo}
}

// GetAllCourses lists the course catalog
// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Course catalog"
// @Security BearerAuth
// @Router /courses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.courseRepo.GetAllCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewCourseResponseList(courses)})
}

// GetCourseByID returns a single course
// @Summary Get course by ID
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course found"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "invalid course id").WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.courseRepo.GetCourseByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewCourseResponse(course)})
}
