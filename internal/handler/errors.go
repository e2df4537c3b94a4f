package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/faisalgulab4589-hash/GIMS/internal/response"
	"github.com/faisalgulab4589-hash/GIMS/internal/service"
)

// failFromService translates domain errors into a response code. Anything
// unrecognized is an internal error.
func failFromService(c *gin.Context, err error) {
	var windowErr *service.WindowError
	if errors.As(err, &windowErr) {
		code := response.ErrWindowNotOpen
		if windowErr.State == "CLOSED" {
			code = response.ErrWindowClosed
		}
		response.FailWithMessage(c, http.StatusConflict, code, windowErr.Label, nil)
		return
	}

	var incomplete *service.IncompleteSubmissionError
	if errors.As(err, &incomplete) {
		response.FailWithMessage(c, http.StatusConflict, response.ErrIncompleteSubmit,
			response.GetMessage(response.ErrIncompleteSubmit),
			map[string]string{
				"remaining_skipped":    strconv.FormatInt(incomplete.Skipped, 10),
				"remaining_unanswered": strconv.FormatInt(incomplete.Unanswered, 10),
			})
		return
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrExamNotPublished):
		response.Fail(c, http.StatusConflict, response.ErrExamNotPublished)
	case errors.Is(err, service.ErrExamNotDraft):
		response.Fail(c, http.StatusConflict, response.ErrExamNotDraft)
	case errors.Is(err, service.ErrNoQuestions):
		response.Fail(c, http.StatusConflict, response.ErrNoQuestions)
	case errors.Is(err, service.ErrQuotaExceedsBank):
		response.Fail(c, http.StatusConflict, response.ErrQuestionBankInvalid)
	case errors.Is(err, service.ErrAttemptCompleted):
		response.Fail(c, http.StatusConflict, response.ErrAttemptCompleted)
	case errors.Is(err, service.ErrAttemptNotInProgress):
		response.Fail(c, http.StatusConflict, response.ErrAttemptNotActive)
	case errors.Is(err, service.ErrQuestionNotInAttempt):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrQuestionNotInScope)
	case errors.Is(err, service.ErrDisplayedIndexNeeded):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"displayed_index": "required when status is answered"})
	case errors.Is(err, service.ErrResultNotPublished):
		response.Fail(c, http.StatusForbidden, response.ErrResultNotPublished)
	case errors.Is(err, service.ErrEditWindowClosed):
		response.Fail(c, http.StatusForbidden, response.ErrEditWindowClosed)
	case errors.Is(err, service.ErrNotEligible):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrSessionAlreadyActive):
		response.FailWithMessage(c, http.StatusConflict, response.ErrConflict, err.Error(), nil)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
