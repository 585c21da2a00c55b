package attendance

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// LEDGER DTOs
// ========================================

type ClockRequest struct {
	UID  string `json:"uid"`
	Time string `json:"time"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors
	errs.Required("uid", r.UID)
	errs.Required("time", r.Time)
	return errs.Err()
}

type SubmitReportRequest struct {
	UID    string  `json:"uid"`
	Date   string  `json:"date"`
	Start  *string `json:"start,omitempty"`
	End    *string `json:"end,omitempty"`
	Task   string  `json:"task"`
	Status string  `json:"status"`
}

func (r *SubmitReportRequest) Validate() error {
	var errs validator.ValidationErrors
	errs.Required("uid", r.UID)
	errs.Required("date", r.Date)
	errs.Required("task", r.Task)
	errs.Required("status", r.Status)

	if !validator.IsEmpty(r.Status) {
		if _, err := ParseStatus(r.Status); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: " + LabelPending + ", " + LabelApproved + ", " + LabelRejected,
			})
		}
	}

	return errs.Err()
}

// HasStart reports whether an optional start timestamp was supplied.
func (r *SubmitReportRequest) HasStart() bool {
	return r.Start != nil && !validator.IsEmpty(*r.Start)
}

// HasEnd reports whether an optional end timestamp was supplied.
func (r *SubmitReportRequest) HasEnd() bool {
	return r.End != nil && !validator.IsEmpty(*r.End)
}

// ReportPatch builds the day patch for a validated report.
func (r *SubmitReportRequest) ReportPatch(status Status) DayRecord {
	patch := DayRecord{
		Task:   ptr(r.Task),
		Status: ptr(status.Label()),
	}
	if r.HasStart() {
		patch.Start = ptr(*r.Start)
	}
	if r.HasEnd() {
		patch.End = ptr(*r.End)
	}
	return patch
}

type MonthRequest struct {
	UID   string `json:"uid"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
}

// NewMonthRequest builds a MonthRequest from raw query values.
func NewMonthRequest(uid, year, month string) (MonthRequest, error) {
	req := MonthRequest{UID: uid}

	var errs validator.ValidationErrors
	errs.Required("uid", uid)
	if n, ok := validator.Atoi(year); ok {
		req.Year = n
	} else {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a number"})
	}
	if n, ok := validator.Atoi(month); ok {
		req.Month = n
	} else {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be a number"})
	}
	return req, errs.Err()
}

func (r *MonthRequest) Validate() error {
	var errs validator.ValidationErrors
	errs.Required("uid", r.UID)
	if r.Year == 0 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is required"})
	}
	if r.Month == 0 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month is required"})
	}
	return errs.Err()
}

type StatusActionRequest struct {
	UID  string `json:"uid"`
	Date string `json:"date"`
}

func (r *StatusActionRequest) Validate() error {
	var errs validator.ValidationErrors
	errs.Required("uid", r.UID)
	errs.Required("date", r.Date)
	return errs.Err()
}

// DayResponse is one day of a month as returned to clients.
type DayResponse struct {
	Start  *string `json:"start"`
	End    *string `json:"end"`
	Task   string  `json:"task"`
	Status string  `json:"status"`
}

// MonthResponse maps "YYYY-MM-DD" to the day's record.
type MonthResponse map[string]DayResponse

func NewDayResponse(d Day) DayResponse {
	return DayResponse{
		Start:  d.Start,
		End:    d.End,
		Task:   d.Task,
		Status: d.Status.Label(),
	}
}

// ========================================
// MIGRATION DTOs
// ========================================

type MigrationOptions struct {
	// DryRun reports what would change without writing.
	DryRun bool
	// DropForeign discards day keys that decode outside their bucket's month.
	DropForeign bool
}

type MigrationReport struct {
	BucketsScanned   int      `json:"buckets_scanned"`
	BucketsRewritten int      `json:"buckets_rewritten"`
	KeysMigrated     int      `json:"keys_migrated"`
	KeysMerged       int      `json:"keys_merged"`
	ForeignKeys      []string `json:"foreign_keys,omitempty"`
	InvalidKeys      []string `json:"invalid_keys,omitempty"`
}
