package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ferhatb/enrollio/internal/app/controllers"
	"github.com/ferhatb/enrollio/internal/app/models/dto"
	"github.com/ferhatb/enrollio/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		students := authenticated.Group("/students")
		{
			students.GET("/:id", studentController.GetStudentByID)
		}

		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.GetAllCourses)
			courses.GET("/:id", courseController.GetCourseByID)
		}

		// Current-student roster; identity comes from the JWT claims
		enrollments := authenticated.Group("/enrollments")
		{
			enrollments.GET("", enrollmentController.ListCourses)
			enrollments.POST("/:courseId", enrollmentController.Enroll)
			enrollments.DELETE("/:courseId", enrollmentController.Cancel)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
