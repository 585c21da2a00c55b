package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Store failures only ever
// produce a generic message.
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, attendance.ErrInvalidDate):
		BadRequest(w, "Invalid date", nil)
	case errors.Is(err, attendance.ErrIllegalTransition):
		Conflict(w, "Status transition not allowed")
	case errors.Is(err, attendance.ErrStoreUnavailable):
		ServiceUnavailable(w, "Attendance records are temporarily unavailable")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
