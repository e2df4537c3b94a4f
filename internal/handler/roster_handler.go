package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/faisalgulab4589-hash/GIMS/internal/response"
	"github.com/faisalgulab4589-hash/GIMS/internal/service"
)

// maxRosterUpload bounds roster spreadsheet uploads to 10 MiB.
const maxRosterUpload = 10 << 20

// RosterHandler handles bulk roster imports.
type RosterHandler struct {
	roster *service.RosterService
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(roster *service.RosterService) *RosterHandler {
	return &RosterHandler{roster: roster}
}

// ImportRoster godoc
// POST /api/v1/staff/students/import
// Accepts an xlsx upload (form field "file") and upserts every roster row.
// The response lists a per-row outcome; nothing is interactive.
func (h *RosterHandler) ImportRoster(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRosterUpload)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".xlsx" {
		response.Fail(c, http.StatusUnsupportedMediaType, response.ErrUnsupportedFile)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	defer file.Close()

	outcomes, err := h.roster.ImportWorkbook(c.Request.Context(), file)
	if err != nil {
		response.FailWithMessage(c, http.StatusUnprocessableEntity, response.ErrInvalidPayload, err.Error(), nil)
		return
	}

	imported, updated, skipped := 0, 0, 0
	for _, o := range outcomes {
		switch o.Outcome {
		case "imported":
			imported++
		case "updated":
			updated++
		default:
			skipped++
		}
	}

	response.Success(c, http.StatusOK, gin.H{
		"rows":     outcomes,
		"imported": imported,
		"updated":  updated,
		"skipped":  skipped,
	})
}
