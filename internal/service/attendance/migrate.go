package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
)

// KeyMigratorImpl rewrites "MM-DD" day keys into "YYYY-MM-DD" keys. Each
// bucket is read, rebuilt and replaced whole, so writes to a bucket must be
// stopped while it runs.
type KeyMigratorImpl struct {
	attendance.BucketRepository
}

// MigrateKeys implements attendance.KeyMigrator.
func (m *KeyMigratorImpl) MigrateKeys(ctx context.Context, opts attendance.MigrationOptions) (attendance.MigrationReport, error) {
	var report attendance.MigrationReport

	refs, err := m.BucketRepository.List(ctx)
	if err != nil {
		return report, fmt.Errorf("%w: %w", attendance.ErrStoreUnavailable, err)
	}

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		month, err := calendar.ParseMonth(ref.YearMonth)
		if err != nil {
			slog.Warn("Skipping bucket with invalid month", "uid", ref.UserID, "bucket", ref.YearMonth)
			report.InvalidKeys = append(report.InvalidKeys, ref.UserID+"/"+ref.YearMonth)
			continue
		}

		bucket, err := m.BucketRepository.Get(ctx, ref.UserID, ref.YearMonth)
		if err != nil {
			return report, fmt.Errorf("%w: %w", attendance.ErrStoreUnavailable, err)
		}
		report.BucketsScanned++

		rewritten, changed := rewriteBucket(ref, month, bucket, opts, &report)
		if !changed {
			continue
		}

		report.BucketsRewritten++
		if opts.DryRun {
			continue
		}
		if err := m.BucketRepository.Replace(ctx, ref.UserID, ref.YearMonth, rewritten); err != nil {
			return report, fmt.Errorf("%w: %w", attendance.ErrStoreUnavailable, err)
		}
		slog.Info("Bucket day keys migrated", "uid", ref.UserID, "bucket", ref.YearMonth)
	}

	sort.Strings(report.ForeignKeys)
	sort.Strings(report.InvalidKeys)
	return report, nil
}

func rewriteBucket(ref attendance.BucketRef, month calendar.Month, bucket attendance.Bucket, opts attendance.MigrationOptions, report *attendance.MigrationReport) (attendance.Bucket, bool) {
	rewritten := make(attendance.Bucket, len(bucket))
	legacy := make(map[string]attendance.DayRecord)
	changed := false

	for dayKey, record := range bucket {
		k, err := calendar.DecodeDayKey(month, dayKey)
		switch {
		case errors.Is(err, calendar.ErrForeignDayKey):
			report.ForeignKeys = append(report.ForeignKeys, ref.UserID+"/"+ref.YearMonth+"/"+dayKey)
			if opts.DropForeign {
				changed = true
				continue
			}
			rewritten[dayKey] = record
		case err != nil:
			report.InvalidKeys = append(report.InvalidKeys, ref.UserID+"/"+ref.YearMonth+"/"+dayKey)
			rewritten[dayKey] = record
		case calendar.IsLegacyDayKey(dayKey):
			legacy[k.DayKey()] = record
			report.KeysMigrated++
			changed = true
		default:
			rewritten[dayKey] = record
		}
	}

	// Fields already stored under the full-date key win.
	for dayKey, record := range legacy {
		if existing, ok := rewritten[dayKey]; ok {
			report.KeysMerged++
			rewritten[dayKey] = record.Merge(existing)
			continue
		}
		rewritten[dayKey] = record
	}

	return rewritten, changed
}

func NewKeyMigrator(bucketRepo attendance.BucketRepository) attendance.KeyMigrator {
	return &KeyMigratorImpl{
		BucketRepository: bucketRepo,
	}
}
