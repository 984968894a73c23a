package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jromero/examcal/internal/app/controllers"
	"github.com/jromero/examcal/internal/app/models"
	"github.com/jromero/examcal/internal/app/models/dto"
	"github.com/jromero/examcal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	catalogController *controllers.CatalogController,
	examController *controllers.ExamController,
	calendarController *controllers.CalendarController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Any authenticated account can read its own profile.
		authenticated.GET("/auth/me", authController.GetCurrentUser)

		// Account registration and administration (school services only)
		authenticated.POST("/auth/register",
			authMiddleware.RoleRequired(string(models.RoleSchoolServices)),
			authController.Register)

		users := authenticated.Group("/users")
		users.Use(authMiddleware.RoleRequired(string(models.RoleSchoolServices)))
		{
			users.GET("", authController.GetUsers)
			users.GET("/:id", authController.GetUserByID)
			users.DELETE("/:id", authController.DeactivateUser)
		}

		// Resource registry (read access for every authenticated role)
		authenticated.GET("/programs", catalogController.GetPrograms)
		authenticated.GET("/programs/:id", catalogController.GetProgramByID)
		authenticated.GET("/programs/:id/cohorts", catalogController.GetProgramCohorts)
		authenticated.GET("/courses", catalogController.GetCourses)
		authenticated.GET("/professors", catalogController.GetProfessors)
		authenticated.GET("/rooms", catalogController.GetRooms)
		authenticated.GET("/exam-kinds", catalogController.GetExamKinds)
		authenticated.GET("/subject-groupings", catalogController.GetSubjectGroupings)

		// Exam routes
		exams := authenticated.Group("/exams")
		{
			exams.GET("", examController.GetExams)
			exams.GET("/:id", examController.GetExamByID)

			// Generation and examiner assignment belong to program heads;
			// school services can intervene on any program.
			examsWriteProtected := exams.Group("")
			examsWriteProtected.Use(authMiddleware.RoleRequired(
				string(models.RoleProgramHead), string(models.RoleSchoolServices)))
			{
				examsWriteProtected.POST("", examController.CreateExam)
				examsWriteProtected.POST("/generate", examController.GenerateExams)
				examsWriteProtected.POST("/generate-from-timetable", examController.GenerateFromTimetable)
				examsWriteProtected.PUT("/:id/sinodal", examController.AssignSinodal)
				examsWriteProtected.DELETE("/:id/sinodal", examController.UnassignSinodal)
			}
		}

		// Calendar submission workflow
		calendars := authenticated.Group("/calendars")
		{
			calendars.GET("", calendarController.GetSubmissions)
			calendars.GET("/:id", calendarController.GetSubmissionByID)

			calendars.POST("",
				authMiddleware.RoleRequired(string(models.RoleProgramHead)),
				calendarController.SubmitCalendar)

			// Decisions are the prerogative of school services.
			calendarsDecisionProtected := calendars.Group("")
			calendarsDecisionProtected.Use(authMiddleware.RoleRequired(string(models.RoleSchoolServices)))
			{
				calendarsDecisionProtected.POST("/:id/validate", calendarController.ValidateSubmission)
				calendarsDecisionProtected.POST("/:id/reject",
					middleware.ValidateRequest(dto.RejectCalendarRequest{}),
					calendarController.RejectSubmission)
			}
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
