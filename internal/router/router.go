package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/faisalgulab4589-hash/GIMS/internal/config"
	"github.com/faisalgulab4589-hash/GIMS/internal/handler"
	"github.com/faisalgulab4589-hash/GIMS/internal/middleware"
	"github.com/faisalgulab4589-hash/GIMS/internal/model"
	"github.com/faisalgulab4589-hash/GIMS/internal/response"
	"github.com/faisalgulab4589-hash/GIMS/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth          *handler.AuthHandler
	StudentPortal *handler.StudentPortalHandler
	ExamAdmin     *handler.ExamAdminHandler
	Result        *handler.ResultHandler
	Roster        *handler.RosterHandler
	Monitor       *handler.MonitorHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID middleware runs globally so every response carries metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Auth Group (Public) ────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/student/login", handlers.Auth.StudentLogin)
		auth.POST("/staff/login", handlers.Auth.StaffLogin)

		auth.POST("/student/logout", middleware.RequireStudentJWT(authService), handlers.Auth.StudentLogout)
	}

	// ─── 2. Student Group (JWT) ────────────────────────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(middleware.RequireStudentJWT(authService))
	{
		studentAPI.GET("/exams", handlers.StudentPortal.ListExams)
		studentAPI.POST("/exams/:exam_id/attempts", handlers.StudentPortal.StartAttempt)
		studentAPI.GET("/exams/:exam_id/result", handlers.StudentPortal.GetResult)

		studentAPI.GET("/attempts/:attempt_id/questions", handlers.StudentPortal.GetQuestions)
		studentAPI.PUT("/attempts/:attempt_id/responses", handlers.StudentPortal.RecordResponse)
		studentAPI.POST("/attempts/:attempt_id/events", handlers.StudentPortal.RecordEvent)
		studentAPI.POST("/attempts/:attempt_id/submit", handlers.StudentPortal.SubmitAttempt)
	}

	// ─── 3. Staff Group (JWT + module grants) ──────────────────────────
	staffAPI := router.Group("/api/v1/staff")
	staffAPI.Use(middleware.RequireStaffJWT(authService))
	{
		// Exam console
		exams := staffAPI.Group("/exams")
		exams.Use(middleware.RequireModule(model.ModuleExams))
		{
			exams.GET("", handlers.ExamAdmin.ListExams)
			exams.POST("", handlers.ExamAdmin.CreateExam)
			exams.GET("/:exam_id", handlers.ExamAdmin.GetExam)
			exams.PUT("/:exam_id", handlers.ExamAdmin.UpdateExam)
			// Deleting an exam discards its bank and every attempt; only
			// admins may do it.
			exams.DELETE("/:exam_id", middleware.RequireAdmin(), handlers.ExamAdmin.DeleteExam)
			exams.POST("/:exam_id/publish", handlers.ExamAdmin.PublishExam)

			exams.GET("/:exam_id/questions", handlers.ExamAdmin.ListQuestions)
			exams.POST("/:exam_id/questions", handlers.ExamAdmin.AddQuestion)
			exams.PUT("/:exam_id/questions", handlers.ExamAdmin.ReplaceQuestions)
			exams.POST("/:exam_id/questions/select", handlers.ExamAdmin.SelectQuestions)
			exams.DELETE("/:exam_id/questions/:question_id", handlers.ExamAdmin.DeleteQuestion)

			exams.GET("/:exam_id/attendance", handlers.Result.ListAttendance)
		}

		// Result sheets
		results := staffAPI.Group("/exams/:exam_id/results")
		results.Use(middleware.RequireModule(model.ModuleResults))
		{
			results.GET("", handlers.Result.ListResults)
			results.POST("/publish", handlers.Result.PublishResults)
		}

		// Roster
		students := staffAPI.Group("/students")
		students.Use(middleware.RequireModule(model.ModuleRoster))
		{
			students.POST("/import", handlers.Roster.ImportRoster)
			students.POST("/:student_id/reset-session", handlers.Auth.ResetStudentSession)
		}
	}

	// ─── 4. WebSocket Group (Staff WS Auth) ────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireStaffWSAuth(authService))
	{
		ws.GET("/staff/exams/:exam_id/monitor", handlers.Monitor.MonitorExam)
	}

	return router
}
