package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/veles/academia/internal/app/controllers"
	"github.com/veles/academia/internal/app/models"
	"github.com/veles/academia/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	homeController *controllers.HomeController,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	teacherController *controllers.TeacherController,
	courseController *controllers.CourseController,
	gradebookController *controllers.GradebookController,
	studentPortalController *controllers.StudentPortalController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Public landing and health routes
	router.GET("/", homeController.Index)
	router.GET("/health", homeController.Health)

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// Everything below requires a valid token
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.GET("/auth/me", authController.Me)

	// Admin area: full CRUD over students, teachers, courses and rosters,
	// plus account creation
	admin := authenticated.Group("")
	admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.POST("/auth/register", authController.Register)

		students := admin.Group("/students")
		{
			students.GET("", studentController.List)
			students.GET("/:id", studentController.Get)
			students.POST("", studentController.Create)
			students.PUT("/:id", studentController.Update)
			students.DELETE("/:id", studentController.Delete)
			students.POST("/:id/image", studentController.UploadImage)
		}

		teachers := admin.Group("/teachers")
		{
			teachers.GET("", teacherController.List)
			teachers.GET("/:id", teacherController.Get)
			teachers.POST("", teacherController.Create)
			teachers.PUT("/:id", teacherController.Update)
			teachers.DELETE("/:id", teacherController.Delete)
			teachers.POST("/:id/image", teacherController.UploadImage)
		}

		courses := admin.Group("/courses")
		{
			courses.GET("", courseController.List)
			courses.GET("/:id", courseController.Get)
			courses.POST("", courseController.Create)
			courses.PUT("/:id", courseController.Update)
			courses.DELETE("/:id", courseController.Delete)

			courses.GET("/:id/enrollments", courseController.ManageEnrollments)
			courses.POST("/:id/enrollments", courseController.EnrollSelected)
			courses.POST("/:id/enrollments/deactivate", courseController.DeactivateSelected)
		}
	}

	// Teacher area: own courses, rosters and grading
	teacherArea := authenticated.Group("/gradebook")
	teacherArea.Use(authMiddleware.RoleRequired(models.RoleTeacher, models.RoleAdmin))
	{
		teacherArea.GET("/courses", gradebookController.MyCourses)
		teacherArea.GET("/courses/:id/roster", gradebookController.Roster)
		teacherArea.GET("/enrollments/:id", gradebookController.GetEnrollment)
		teacherArea.PUT("/enrollments/:id", gradebookController.UpdateGrading)
	}

	// Student area: own enrollments and attachments
	studentArea := authenticated.Group("/me")
	studentArea.Use(authMiddleware.RoleRequired(models.RoleStudent))
	{
		studentArea.GET("/enrollments", studentPortalController.MyEnrollments)
		studentArea.GET("/enrollments/:id", studentPortalController.GetEnrollment)
		studentArea.POST("/enrollments/:id/seminar", studentPortalController.UploadSeminar)
		studentArea.DELETE("/enrollments/:id/seminar", studentPortalController.DeleteSeminar)
		studentArea.PUT("/enrollments/:id/project-url", studentPortalController.SetProjectURL)
		studentArea.DELETE("/enrollments/:id/project-url", studentPortalController.DeleteProjectURL)
	}
}
