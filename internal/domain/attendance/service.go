package attendance

import (
	"context"
)

// AttendanceService defines the attendance ledger and its approval workflow.
// Callers supply the user id; no identity is derived here.
type AttendanceService interface {
	// ClockIn records the start timestamp of the day the timestamp falls on
	ClockIn(ctx context.Context, req ClockRequest) error

	// ClockOut records the end timestamp of the day the timestamp falls on
	ClockOut(ctx context.Context, req ClockRequest) error

	// SubmitReport stores the day's task and status, plus start/end when given
	SubmitReport(ctx context.Context, req SubmitReportRequest) error

	// GetMonth returns every written day of one user's month with defaults filled
	GetMonth(ctx context.Context, req MonthRequest) (MonthResponse, error)

	// Approve sets the day's status to approved
	Approve(ctx context.Context, req StatusActionRequest) error

	// Reject sets the day's status to rejected
	Reject(ctx context.Context, req StatusActionRequest) error

	// Revoke returns the day's status to pending
	Revoke(ctx context.Context, req StatusActionRequest) error
}

// KeyMigrator rewrites legacy "MM-DD" day keys into full-date keys.
type KeyMigrator interface {
	MigrateKeys(ctx context.Context, opts MigrationOptions) (MigrationReport, error)
}
