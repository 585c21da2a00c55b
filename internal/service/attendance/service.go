package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
)

type AttendanceServiceImpl struct {
	attendance.BucketRepository
	location *time.Location
	policy   TransitionPolicy
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockRequest) error {
	return a.recordClock(ctx, "clock_in", req, func(ts *string) attendance.DayRecord {
		return attendance.DayRecord{Start: ts}
	})
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockRequest) error {
	return a.recordClock(ctx, "clock_out", req, func(ts *string) attendance.DayRecord {
		return attendance.DayRecord{End: ts}
	})
}

func (a *AttendanceServiceImpl) recordClock(ctx context.Context, op string, req attendance.ClockRequest, patch func(ts *string) attendance.DayRecord) error {
	if err := req.Validate(); err != nil {
		slog.Warn("Attendance request rejected", "operation", op, "uid", req.UID, "input", req.Time, "error", err)
		return err
	}

	key, err := a.normalize(op, req.UID, req.Time)
	if err != nil {
		return err
	}

	ts := strings.TrimSpace(req.Time)
	return a.merge(ctx, op, req.UID, req.Time, key, patch(&ts))
}

// SubmitReport implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) SubmitReport(ctx context.Context, req attendance.SubmitReportRequest) error {
	const op = "submit_report"

	if err := req.Validate(); err != nil {
		slog.Warn("Attendance request rejected", "operation", op, "uid", req.UID, "input", req.Date, "error", err)
		return err
	}

	status, err := attendance.ParseStatus(req.Status)
	if err != nil {
		// Validate already rejected unknown statuses.
		return fmt.Errorf("failed to parse status: %w", err)
	}

	key, err := a.normalize(op, req.UID, req.Date)
	if err != nil {
		return err
	}

	if req.HasStart() {
		if _, err := a.normalize(op, req.UID, *req.Start); err != nil {
			return err
		}
	}
	if req.HasEnd() {
		if _, err := a.normalize(op, req.UID, *req.End); err != nil {
			return err
		}
	}

	return a.merge(ctx, op, req.UID, req.Date, key, req.ReportPatch(status))
}

// GetMonth implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMonth(ctx context.Context, req attendance.MonthRequest) (attendance.MonthResponse, error) {
	const op = "get_month"

	if err := req.Validate(); err != nil {
		return nil, err
	}

	month, err := calendar.NewMonth(req.Year, req.Month)
	if err != nil {
		slog.Warn("Attendance month rejected", "operation", op, "uid", req.UID, "year", req.Year, "month", req.Month, "error", err)
		return nil, err
	}

	bucket, err := a.BucketRepository.Get(ctx, req.UID, month.YearMonth())
	if err != nil {
		slog.Error("Attendance store read failed", "operation", op, "uid", req.UID, "input", month.YearMonth(), "error", err)
		return nil, fmt.Errorf("%w: %w", attendance.ErrStoreUnavailable, err)
	}

	records := make(map[string]attendance.DayRecord, len(bucket))
	for _, dayKey := range legacyKeysFirst(bucket) {
		k, err := calendar.DecodeDayKey(month, dayKey)
		if err != nil {
			slog.Warn("Skipping undecodable day key", "operation", op, "uid", req.UID, "bucket", month.YearMonth(), "day_key", dayKey, "error", err)
			continue
		}
		// Full-date keys come last, so their fields win over legacy ones.
		records[k.FullDate()] = records[k.FullDate()].Merge(bucket[dayKey])
	}

	result := make(attendance.MonthResponse, len(records))
	for date, record := range records {
		day := fillDefaults(record)
		if day.IsDefault() {
			continue
		}
		result[date] = attendance.NewDayResponse(day)
	}

	return result, nil
}

func (a *AttendanceServiceImpl) normalize(op, uid, raw string) (calendar.Key, error) {
	key, err := calendar.Parse(raw, a.location)
	if err != nil {
		slog.Warn("Attendance date rejected", "operation", op, "uid", uid, "input", raw, "error", err)
		return calendar.Key{}, err
	}
	return key, nil
}

func (a *AttendanceServiceImpl) merge(ctx context.Context, op, uid, input string, key calendar.Key, day attendance.DayRecord) error {
	patch := attendance.Bucket{key.DayKey(): day}
	if err := a.BucketRepository.Merge(ctx, uid, key.YearMonth(), patch); err != nil {
		slog.Error("Attendance store write failed", "operation", op, "uid", uid, "input", input, "day_key", key.DayKey(), "error", err)
		return fmt.Errorf("%w: %w", attendance.ErrStoreUnavailable, err)
	}
	return nil
}

// fillDefaults substitutes defaults for every field a stored record lacks.
// A status label this service does not know is passed through untouched.
func fillDefaults(record attendance.DayRecord) attendance.Day {
	day := attendance.Day{
		Start:  record.Start,
		End:    record.End,
		Status: attendance.StatusPending,
	}
	if record.Task != nil {
		day.Task = *record.Task
	}
	if record.Status != nil {
		status, err := attendance.ParseStatus(*record.Status)
		if err != nil {
			status = attendance.Status(*record.Status)
		}
		day.Status = status
	}
	return day
}

// legacyKeysFirst orders day keys so "MM-DD" keys precede full-date keys.
func legacyKeysFirst(bucket attendance.Bucket) []string {
	keys := make([]string, 0, len(bucket))
	for k := range bucket {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := calendar.IsLegacyDayKey(keys[i]), calendar.IsLegacyDayKey(keys[j])
		if li != lj {
			return li
		}
		return keys[i] < keys[j]
	})
	return keys
}

// NewAttendanceService builds the ledger. A nil location means time.Local.
func NewAttendanceService(
	bucketRepo attendance.BucketRepository,
	location *time.Location,
	policy TransitionPolicy,
) attendance.AttendanceService {
	if location == nil {
		location = time.Local
	}
	return &AttendanceServiceImpl{
		BucketRepository: bucketRepo,
		location:         location,
		policy:           policy,
	}
}
