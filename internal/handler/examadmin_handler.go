package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/faisalgulab4589-hash/GIMS/internal/middleware"
	"github.com/faisalgulab4589-hash/GIMS/internal/model"
	"github.com/faisalgulab4589-hash/GIMS/internal/response"
	"github.com/faisalgulab4589-hash/GIMS/internal/service"
	"github.com/faisalgulab4589-hash/GIMS/internal/validator"
)

// ExamAdminHandler handles the staff exam console: definitions, question
// banks, and publication.
type ExamAdminHandler struct {
	admin *service.ExamAdminService
}

// NewExamAdminHandler creates a new ExamAdminHandler.
func NewExamAdminHandler(admin *service.ExamAdminService) *ExamAdminHandler {
	return &ExamAdminHandler{admin: admin}
}

func staffRole(c *gin.Context) model.StaffRole {
	if claims := middleware.GetClaims(c); claims != nil {
		return model.StaffRole(claims.Role)
	}
	return ""
}

// CreateExam godoc
// POST /api/v1/staff/exams
func (h *ExamAdminHandler) CreateExam(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.admin.Create(c.Request.Context(), &req, claims.UserID)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"exam": exam})
}

// ListExams godoc
// GET /api/v1/staff/exams?page=&per_page=
func (h *ExamAdminHandler) ListExams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	exams, total, err := h.admin.List(c.Request.Context(), page, perPage)
	if err != nil {
		failFromService(c, err)
		return
	}
	if exams == nil {
		exams = []model.Exam{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"exams": exams},
		response.NewPagination(page, perPage, total))
}

// GetExam godoc
// GET /api/v1/staff/exams/:exam_id
func (h *ExamAdminHandler) GetExam(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	exam, err := h.admin.Get(c.Request.Context(), examID)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// UpdateExam godoc
// PUT /api/v1/staff/exams/:exam_id
func (h *ExamAdminHandler) UpdateExam(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.admin.Update(c.Request.Context(), examID, &req, staffRole(c))
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// DeleteExam godoc
// DELETE /api/v1/staff/exams/:exam_id
func (h *ExamAdminHandler) DeleteExam(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.admin.Delete(c.Request.Context(), examID); err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// PublishExam godoc
// POST /api/v1/staff/exams/:exam_id/publish
func (h *ExamAdminHandler) PublishExam(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	exam, err := h.admin.Publish(c.Request.Context(), examID)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// ListQuestions godoc
// GET /api/v1/staff/exams/:exam_id/questions
func (h *ExamAdminHandler) ListQuestions(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	questions, err := h.admin.ListQuestions(c.Request.Context(), examID)
	if err != nil {
		failFromService(c, err)
		return
	}
	if questions == nil {
		questions = []model.Question{}
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// AddQuestion godoc
// POST /api/v1/staff/exams/:exam_id/questions
func (h *ExamAdminHandler) AddQuestion(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.AddQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	q, err := h.admin.AddQuestion(c.Request.Context(), examID, &req, staffRole(c))
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"question": q})
}

// ReplaceQuestions godoc
// PUT /api/v1/staff/exams/:exam_id/questions
func (h *ExamAdminHandler) ReplaceQuestions(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ReplaceQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.admin.ReplaceQuestions(c.Request.Context(), examID, &req, staffRole(c)); err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"count": len(req.Questions)})
}

// SelectQuestions godoc
// POST /api/v1/staff/exams/:exam_id/questions/select
func (h *ExamAdminHandler) SelectQuestions(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SelectQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.admin.SelectQuestions(c.Request.Context(), examID, &req, staffRole(c)); err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"selected": len(req.QuestionIDs)})
}

// DeleteQuestion godoc
// DELETE /api/v1/staff/exams/:exam_id/questions/:question_id
func (h *ExamAdminHandler) DeleteQuestion(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	questionID, err := uuid.Parse(c.Param("question_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.admin.DeleteQuestion(c.Request.Context(), examID, questionID); err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
