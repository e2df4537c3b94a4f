package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/faisalgulab4589-hash/GIMS/internal/middleware"
	"github.com/faisalgulab4589-hash/GIMS/internal/repository"
	"github.com/faisalgulab4589-hash/GIMS/internal/response"
	"github.com/faisalgulab4589-hash/GIMS/internal/service"
)

// ResultHandler handles staff result sheets and attendance.
type ResultHandler struct {
	admin *service.ExamAdminService
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(admin *service.ExamAdminService) *ResultHandler {
	return &ResultHandler{admin: admin}
}

// ListResults godoc
// GET /api/v1/staff/exams/:exam_id/results
// Returns the ranked result sheet of an exam with roster identity.
func (h *ResultHandler) ListResults(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	results, err := h.admin.ListResults(c.Request.Context(), examID)
	if err != nil {
		failFromService(c, err)
		return
	}
	if results == nil {
		results = []repository.ResultRow{}
	}

	response.Success(c, http.StatusOK, gin.H{"results": results})
}

// PublishResults godoc
// POST /api/v1/staff/exams/:exam_id/results/publish
// Releases the exam's results to students.
func (h *ResultHandler) PublishResults(c *gin.Context) {
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

	published, err := h.admin.PublishResults(c.Request.Context(), examID, claims.UserID)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"published": published})
}

// ListAttendance godoc
// GET /api/v1/staff/exams/:exam_id/attendance
// Returns the attendance sheet of an exam.
func (h *ResultHandler) ListAttendance(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	records, err := h.admin.ListAttendance(c.Request.Context(), examID)
	if err != nil {
		failFromService(c, err)
		return
	}
	if records == nil {
		records = []repository.AttendanceRecord{}
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": records})
}
