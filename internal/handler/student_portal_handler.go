package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/faisalgulab4589-hash/GIMS/internal/middleware"
	"github.com/faisalgulab4589-hash/GIMS/internal/model"
	"github.com/faisalgulab4589-hash/GIMS/internal/response"
	"github.com/faisalgulab4589-hash/GIMS/internal/service"
	"github.com/faisalgulab4589-hash/GIMS/internal/validator"
)

// StudentPortalHandler handles student-facing endpoints: the exam lobby,
// attempt taking, proctor events, and published results.
type StudentPortalHandler struct {
	catalog     *service.CatalogService
	attempts    *service.AttemptService
	responses   *service.ResponseService
	submissions *service.SubmissionService
	integrity   *service.IntegrityService
}

// NewStudentPortalHandler creates a new StudentPortalHandler.
func NewStudentPortalHandler(
	catalog *service.CatalogService,
	attempts *service.AttemptService,
	responses *service.ResponseService,
	submissions *service.SubmissionService,
	integrity *service.IntegrityService,
) *StudentPortalHandler {
	return &StudentPortalHandler{
		catalog:     catalog,
		attempts:    attempts,
		responses:   responses,
		submissions: submissions,
		integrity:   integrity,
	}
}

// ListExams godoc
// GET /api/v1/student/exams
// Returns published exams the student is eligible for, with window state.
func (h *StudentPortalHandler) ListExams(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	lobby, err := h.catalog.ListEligibleExams(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromService(c, err)
		return
	}
	if lobby == nil {
		lobby = []model.EligibleExam{}
	}

	response.Success(c, http.StatusOK, gin.H{"exams": lobby})
}

// StartAttempt godoc
// POST /api/v1/student/exams/:exam_id/attempts
// Starts the student's attempt for an exam, or resumes the existing one.
func (h *StudentPortalHandler) StartAttempt(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	result, err := h.attempts.Start(c.Request.Context(), examID, claims.UserID, c.ClientIP())
	if err != nil {
		failFromService(c, err)
		return
	}

	status := http.StatusCreated
	if result.Resumed {
		status = http.StatusOK
	}
	response.Success(c, status, gin.H{"attempt": result})
}

// GetQuestions godoc
// GET /api/v1/student/attempts/:attempt_id/questions
// Returns the attempt's paper in frozen order with prior answers overlaid.
func (h *StudentPortalHandler) GetQuestions(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	attemptID, err := uuid.Parse(c.Param("attempt_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	questions, err := h.attempts.GetQuestions(c.Request.Context(), attemptID, claims.UserID)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// RecordResponse godoc
// PUT /api/v1/student/attempts/:attempt_id/responses
// Answers or skips one question of an in-progress attempt.
func (h *StudentPortalHandler) RecordResponse(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	attemptID, err := uuid.Parse(c.Param("attempt_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.RecordResponseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.responses.Record(c.Request.Context(), attemptID, claims.UserID, &req); err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question_id": req.QuestionID, "status": req.Status})
}

// RecordEvent godoc
// POST /api/v1/student/attempts/:attempt_id/events
// Ingests one proctor event (heartbeat, focus loss, violation).
func (h *StudentPortalHandler) RecordEvent(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	attemptID, err := uuid.Parse(c.Param("attempt_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.HeartbeatRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ack, err := h.integrity.RecordEvent(c.Request.Context(), attemptID, claims.UserID, &req)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, ack)
}

// SubmitAttempt godoc
// POST /api/v1/student/attempts/:attempt_id/submit
// Finalizes the attempt; rejected while questions remain skipped/unanswered.
func (h *StudentPortalHandler) SubmitAttempt(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	attemptID, err := uuid.Parse(c.Param("attempt_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	summary, err := h.submissions.Submit(c.Request.Context(), attemptID, claims.UserID)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": summary})
}

// GetResult godoc
// GET /api/v1/student/exams/:exam_id/result
// Returns the student's result once staff have published the sheet.
func (h *StudentPortalHandler) GetResult(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	result, err := h.submissions.GetPublishedResult(c.Request.Context(), examID, claims.UserID)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}
