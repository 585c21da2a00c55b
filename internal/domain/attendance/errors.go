package attendance

import (
	"errors"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
)

// Attendance domain errors
var (
	// ErrInvalidDate is returned when a date input does not resolve to a
	// calendar day. Nothing is written when it is returned.
	ErrInvalidDate = calendar.ErrInvalidDate

	// ErrStoreUnavailable wraps every failure of the bucket store.
	ErrStoreUnavailable = errors.New("attendance store unavailable")

	// ErrIllegalTransition is only returned under the strict approval policy.
	ErrIllegalTransition = errors.New("illegal status transition")
)
