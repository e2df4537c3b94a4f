package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/faisalgulab4589-hash/GIMS/internal/config"
	"github.com/faisalgulab4589-hash/GIMS/internal/database"
	"github.com/faisalgulab4589-hash/GIMS/internal/handler"
	"github.com/faisalgulab4589-hash/GIMS/internal/logger"
	"github.com/faisalgulab4589-hash/GIMS/internal/repository"
	"github.com/faisalgulab4589-hash/GIMS/internal/router"
	"github.com/faisalgulab4589-hash/GIMS/internal/service"
	"github.com/faisalgulab4589-hash/GIMS/internal/validator"
	"github.com/faisalgulab4589-hash/GIMS/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("time_zone", cfg.TimeZone).
		Msg("Starting GIMS exam engine")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Apply Migrations ──────────────────────────────────────────────
	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg, log); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	examRepo := repository.NewExamRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	attemptRepo := repository.NewAttemptRepository(pool)
	responseRepo := repository.NewResponseRepository(pool)
	stateRepo := repository.NewAnswerStateRepository(pool)
	proctorRepo := repository.NewProctorRepository(pool)
	resultRepo := repository.NewResultRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb, studentRepo, staffRepo)
	catalogService := service.NewCatalogService(cfg, examRepo, attemptRepo, studentRepo, log)
	attemptService := service.NewAttemptService(cfg, examRepo, questionRepo, attemptRepo,
		responseRepo, stateRepo, studentRepo, attendanceRepo, log)
	responseService := service.NewResponseService(examRepo, attemptRepo, responseRepo, stateRepo, log)
	submissionService := service.NewSubmissionService(cfg, examRepo, attemptRepo,
		responseRepo, stateRepo, resultRepo, log)
	integrityService := service.NewIntegrityService(cfg, rdb, examRepo, attemptRepo,
		proctorRepo, submissionService, log)
	examAdminService := service.NewExamAdminService(cfg, examRepo, questionRepo,
		resultRepo, attendanceRepo, log)
	rosterService := service.NewRosterService(authService, studentRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		StudentPortal: handler.NewStudentPortalHandler(catalogService, attemptService, responseService, submissionService, integrityService),
		ExamAdmin:     handler.NewExamAdminHandler(examAdminService),
		Result:        handler.NewResultHandler(examAdminService),
		Roster:        handler.NewRosterHandler(rosterService),
		Monitor:       handler.NewMonitorHandler(rdb, integrityService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	proctorWorker := worker.NewProctorWorker(proctorRepo, rdb, log)
	go proctorWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the worker and let the queue drain.
	workerCancel()
	time.Sleep(2 * time.Second)

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
