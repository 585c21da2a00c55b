package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// Schema creates the bucket table. One row per (user, month); the days of
// the month live in a JSONB object keyed by day key.
const Schema = `
CREATE TABLE IF NOT EXISTS attendance_records (
	user_id    TEXT        NOT NULL,
	year_month CHAR(7)     NOT NULL,
	days       JSONB       NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (user_id, year_month)
);
`

type AttendanceRepository struct {
	db *database.DB
}

// Migrate creates the schema if it does not exist.
func (a *AttendanceRepository) Migrate(ctx context.Context) error {
	if _, err := a.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create attendance_records: %w", err)
	}
	return nil
}

// Get implements attendance.BucketRepository.
func (a *AttendanceRepository) Get(ctx context.Context, userID string, yearMonth string) (attendance.Bucket, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT days
		FROM attendance_records
		WHERE user_id = $1 AND year_month = $2
	`

	var raw []byte
	err := q.QueryRow(ctx, query, userID, yearMonth).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Bucket{}, nil
		}
		return nil, fmt.Errorf("failed to get attendance bucket: %w", err)
	}

	bucket := attendance.Bucket{}
	if err := json.Unmarshal(raw, &bucket); err != nil {
		return nil, fmt.Errorf("failed to decode attendance bucket: %w", err)
	}

	return bucket, nil
}

// Merge implements attendance.BucketRepository.
//
// Each day is merged with jsonb_set over the day's existing object, so only
// the fields present in the patch change. The row lock taken by ON CONFLICT
// serializes concurrent writers to the same bucket.
func (a *AttendanceRepository) Merge(ctx context.Context, userID string, yearMonth string, patch attendance.Bucket) error {
	if len(patch) == 0 {
		return nil
	}

	if len(patch) == 1 {
		return a.mergeDays(ctx, userID, yearMonth, patch)
	}

	return WithTransaction(ctx, a.db, func(ctx context.Context) error {
		return a.mergeDays(ctx, userID, yearMonth, patch)
	})
}

func (a *AttendanceRepository) mergeDays(ctx context.Context, userID string, yearMonth string, patch attendance.Bucket) error {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (user_id, year_month, days)
		VALUES ($1, $2, jsonb_build_object($3::text, $4::jsonb))
		ON CONFLICT (user_id, year_month) DO UPDATE
		SET days = jsonb_set(
				attendance_records.days,
				ARRAY[$3::text],
				COALESCE(attendance_records.days -> $3::text, '{}'::jsonb) || $4::jsonb
			),
			updated_at = NOW()
	`

	for dayKey, day := range patch {
		if day.IsEmpty() {
			continue
		}

		dayJSON, err := json.Marshal(day)
		if err != nil {
			return fmt.Errorf("failed to encode day %s: %w", dayKey, err)
		}

		if _, err := q.Exec(ctx, query, userID, yearMonth, dayKey, string(dayJSON)); err != nil {
			return fmt.Errorf("failed to merge attendance day %s: %w", dayKey, err)
		}
	}

	return nil
}

// Replace implements attendance.BucketRepository.
func (a *AttendanceRepository) Replace(ctx context.Context, userID string, yearMonth string, bucket attendance.Bucket) error {
	q := GetQuerier(ctx, a.db)

	if bucket == nil {
		bucket = attendance.Bucket{}
	}
	raw, err := json.Marshal(bucket)
	if err != nil {
		return fmt.Errorf("failed to encode attendance bucket: %w", err)
	}

	query := `
		INSERT INTO attendance_records (user_id, year_month, days)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (user_id, year_month) DO UPDATE
		SET days = EXCLUDED.days,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, userID, yearMonth, string(raw)); err != nil {
		return fmt.Errorf("failed to replace attendance bucket: %w", err)
	}

	return nil
}

// Delete implements attendance.BucketRepository.
func (a *AttendanceRepository) Delete(ctx context.Context, userID string, yearMonth string) error {
	q := GetQuerier(ctx, a.db)

	query := `DELETE FROM attendance_records WHERE user_id = $1 AND year_month = $2`

	if _, err := q.Exec(ctx, query, userID, yearMonth); err != nil {
		return fmt.Errorf("failed to delete attendance bucket: %w", err)
	}

	return nil
}

// List implements attendance.BucketRepository.
func (a *AttendanceRepository) List(ctx context.Context) ([]attendance.BucketRef, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT user_id, year_month
		FROM attendance_records
		ORDER BY user_id, year_month
	`

	rows, err := q.Query(ctx, query)
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

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance buckets: %w", err)
	}

	return refs, nil
}

// NewAttendanceRepository returns the Postgres bucket store.
func NewAttendanceRepository(db *database.DB) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
	}
}
