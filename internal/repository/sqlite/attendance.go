/*
Package sqlite provides a SQLite-backed attendance bucket store.

MERGE SEMANTICS:
  Merge is a single upsert whose conflict branch runs json_patch (RFC 7396)
  over the stored document. json_patch recurses into objects, so a patch of
  {"2024-07-15": {"end": "..."}} leaves the day's other fields and every
  other day untouched. Patches never carry nulls, which json_patch would
  read as deletions.

CONCURRENCY:
  One statement per merge; SQLite serializes writers, so a merge is atomic
  for its bucket.
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

const schema = `
CREATE TABLE IF NOT EXISTS attendance_records (
	user_id    TEXT NOT NULL,
	year_month TEXT NOT NULL,
	days       TEXT NOT NULL DEFAULT '{}',
	updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (user_id, year_month)
);
`

// AttendanceRepository implements attendance.BucketRepository on SQLite.
type AttendanceRepository struct {
	db *sql.DB
}

// NewAttendanceRepository creates the schema if needed.
func NewAttendanceRepository(db *sql.DB) (*AttendanceRepository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &AttendanceRepository{db: db}, nil
}

// Get implements attendance.BucketRepository.
func (r *AttendanceRepository) Get(ctx context.Context, userID string, yearMonth string) (attendance.Bucket, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT days FROM attendance_records WHERE user_id = ? AND year_month = ?`,
		userID, yearMonth,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return attendance.Bucket{}, nil
		}
		return nil, fmt.Errorf("failed to get attendance bucket: %w", err)
	}

	bucket := attendance.Bucket{}
	if err := json.Unmarshal([]byte(raw), &bucket); err != nil {
		return nil, fmt.Errorf("failed to decode attendance bucket: %w", err)
	}
	return bucket, nil
}

// Merge implements attendance.BucketRepository.
func (r *AttendanceRepository) Merge(ctx context.Context, userID string, yearMonth string, patch attendance.Bucket) error {
	cleaned := attendance.Bucket{}
	for dayKey, day := range patch {
		if !day.IsEmpty() {
			cleaned[dayKey] = day
		}
	}
	if len(cleaned) == 0 {
		return nil
	}

	raw, err := json.Marshal(cleaned)
	if err != nil {
		return fmt.Errorf("failed to encode attendance patch: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO attendance_records (user_id, year_month, days)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, year_month) DO UPDATE
		SET days = json_patch(attendance_records.days, excluded.days),
			updated_at = CURRENT_TIMESTAMP
	`, userID, yearMonth, string(raw))
	if err != nil {
		return fmt.Errorf("failed to merge attendance bucket: %w", err)
	}
	return nil
}

// Replace implements attendance.BucketRepository.
func (r *AttendanceRepository) Replace(ctx context.Context, userID string, yearMonth string, bucket attendance.Bucket) error {
	if bucket == nil {
		bucket = attendance.Bucket{}
	}
	raw, err := json.Marshal(bucket)
	if err != nil {
		return fmt.Errorf("failed to encode attendance bucket: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO attendance_records (user_id, year_month, days)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, year_month) DO UPDATE
		SET days = excluded.days,
			updated_at = CURRENT_TIMESTAMP
	`, userID, yearMonth, string(raw))
	if err != nil {
		return fmt.Errorf("failed to replace attendance bucket: %w", err)
	}
	return nil
}

// Delete implements attendance.BucketRepository.
func (r *AttendanceRepository) Delete(ctx context.Context, userID string, yearMonth string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM attendance_records WHERE user_id = ? AND year_month = ?`,
		userID, yearMonth,
	)
	if err != nil {
		return fmt.Errorf("failed to delete attendance bucket: %w", err)
	}
	return nil
}

// List implements attendance.BucketRepository.
func (r *AttendanceRepository) List(ctx context.Context) ([]attendance.BucketRef, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, year_month FROM attendance_records ORDER BY user_id, year_month`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance buckets: %w", err)
	}
	defer rows.Close()

	var refs []attendance.BucketRef
	for rows.Next() {
		var ref attendance.BucketRef
		if err := rows.Scan(&ref.UserID, &ref.YearMonth); err != nil {
			return nil, fmt.Errorf("failed to scan attendance bucket: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
