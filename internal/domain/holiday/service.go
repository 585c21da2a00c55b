package holiday

import "context"

// Service looks up public holidays. It is read-only and never fails: when the
// calendar source is unreachable it returns an empty list, and clients fall
// back to shading weekends only.
type Service interface {
	// ListHolidays returns the holidays of one month as sorted "YYYY-MM-DD" dates
	ListHolidays(ctx context.Context, year int, month int) []string
}
