package response

// ErrCode is a typed error code enum for consistent API error identification.
// Every rejection carries one of these plus a human-readable reason; nothing
// is silently swallowed.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrPermissionDenied  ErrCode = "PERMISSION_DENIED"
	ErrStudentAccessOnly ErrCode = "STUDENT_ACCESS_ONLY"
	ErrStaffAccessOnly   ErrCode = "STAFF_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Exam window ───────────────────────────────────────────────────
	ErrWindowNotOpen ErrCode = "WINDOW_NOT_OPEN"
	ErrWindowClosed  ErrCode = "WINDOW_CLOSED"

	// ─── Attempt lifecycle ─────────────────────────────────────────────
	ErrExamNotPublished    ErrCode = "EXAM_NOT_PUBLISHED"
	ErrExamNotDraft        ErrCode = "EXAM_NOT_DRAFT"
	ErrNoQuestions         ErrCode = "NO_QUESTIONS"
	ErrAttemptCompleted    ErrCode = "ATTEMPT_COMPLETED"
	ErrAttemptNotActive    ErrCode = "ATTEMPT_NOT_IN_PROGRESS"
	ErrQuestionNotInScope  ErrCode = "QUESTION_NOT_IN_ATTEMPT"
	ErrIncompleteSubmit    ErrCode = "INCOMPLETE_SUBMISSION"
	ErrResultNotPublished  ErrCode = "RESULT_NOT_PUBLISHED"
	ErrEditWindowClosed    ErrCode = "EDIT_WINDOW_CLOSED"
	ErrQuestionBankInvalid ErrCode = "QUESTION_BANK_INVALID"

	// ─── Import ────────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Invalid username or password."
	case ErrTokenRequired:
		return "Authentication token required."
	case ErrTokenInvalid:
		return "Authentication token is invalid."
	case ErrTokenExpired:
		return "Authentication token has expired."

	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrPermissionDenied:
		return "Permission denied."
	case ErrStudentAccessOnly:
		return "This resource is restricted to students."
	case ErrStaffAccessOnly:
		return "This resource is restricted to staff."

	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."

	case ErrWindowNotOpen:
		return "This exam has not opened yet."
	case ErrWindowClosed:
		return "This exam window has closed."

	case ErrExamNotPublished:
		return "This exam is not published."
	case ErrExamNotDraft:
		return "This exam is not in DRAFT status."
	case ErrNoQuestions:
		return "This exam has no bank questions."
	case ErrAttemptCompleted:
		return "This attempt has already been submitted."
	case ErrAttemptNotActive:
		return "This attempt is not in progress."
	case ErrQuestionNotInScope:
		return "The question does not belong to this attempt."
	case ErrIncompleteSubmit:
		return "Some questions are still skipped or unanswered."
	case ErrResultNotPublished:
		return "The result for this exam has not been published yet."
	case ErrEditWindowClosed:
		return "The edit window for this record has closed."
	case ErrQuestionBankInvalid:
		return "The question bank configuration is invalid."

	case ErrFileRequired:
		return "A file upload is required."
	case ErrUnsupportedFile:
		return "Unsupported file type."

	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
