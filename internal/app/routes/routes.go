package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomwyatt/hillcrest/internal/app/controllers"
	"github.com/tomwyatt/hillcrest/internal/app/models"
	"github.com/tomwyatt/hillcrest/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	catalogueController *controllers.CatalogueController,
	enrolmentController *controllers.EnrolmentController,
	directoryController *controllers.DirectoryController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/admin/login", authController.AdminLogin)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/verify", authController.VerifyToken)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// Catalogue reads are public, browsable before registering
	v1.GET("/subjects", catalogueController.ListSubjects)
	v1.GET("/subjects/:code", catalogueController.GetSubject)
	v1.GET("/courses", catalogueController.ListCourses)
	v1.GET("/courses/:code", catalogueController.GetCourse)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Guardian-owned potential students
		students := authenticated.Group("/students")
		{
			students.POST("", studentController.CreateStudent)
			students.GET("", studentController.ListStudents)
			students.DELETE("/:id", studentController.DeleteStudent)
			students.GET("/:id/enrolments", enrolmentController.ListByStudent)
		}

		authenticated.GET("/courses/:code/enrolments", enrolmentController.ListByCourse)

		// Enrolment actions by guardians on their own students
		enrolments := authenticated.Group("/enrolments")
		{
			enrolments.POST("", enrolmentController.Enrol)
			enrolments.DELETE("", enrolmentController.Unenrol)
		}

		// Administrative surface, role rank 3 (HOD) or better
		admin := authenticated.Group("")
		admin.Use(authMiddleware.RoleAtMost(models.RoleHOD))
		{
			admin.POST("/auth/admin/register", authController.AdminRegister)

			admin.POST("/subjects", catalogueController.CreateSubject)
			admin.DELETE("/subjects/:code", catalogueController.DeleteSubject)
			admin.POST("/courses", catalogueController.CreateCourse)
			admin.DELETE("/courses/:code", catalogueController.DeleteCourse)

			admin.GET("/admin/users", directoryController.ListUsers)
			admin.DELETE("/admin/users/:id", directoryController.DeleteUser)

			admin.GET("/admin/enrolments", enrolmentController.AdminList)
			admin.DELETE("/admin/enrolments/:id", enrolmentController.AdminDelete)
		}

		// Role edits need rank 2 (Admin) or better
		roleAdmin := authenticated.Group("")
		roleAdmin.Use(authMiddleware.RoleAtMost(models.RoleAdmin))
		{
			roleAdmin.PUT("/admin/users/:id/role", directoryController.EditRole)
		}
	}
}
