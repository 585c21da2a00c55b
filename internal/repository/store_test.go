package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBucketRepository_Memory(t *testing.T) {
	repo, closeFn, err := OpenBucketRepository(context.Background(), &config.Config{
		Store: config.StoreConfig{Driver: config.DriverMemory},
	})
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &memory.AttendanceRepository{}, repo)
}

func TestOpenBucketRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverSQLite, SQLitePath: path}}

	repo, closeFn, err := OpenBucketRepository(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &sqlite.AttendanceRepository{}, repo)

	start := "2024-07-15T09:00:00+09:00"
	require.NoError(t, repo.Merge(ctx, "u1", "2024-07", attendance.Bucket{"2024-07-15": {Start: &start}}))
	closeFn()

	// Records survive reopening the file.
	repo, closeFn, err = OpenBucketRepository(ctx, cfg)
	require.NoError(t, err)
	defer closeFn()

	bucket, err := repo.Get(ctx, "u1", "2024-07")
	require.NoError(t, err)
	require.Contains(t, bucket, "2024-07-15")
	assert.Equal(t, start, *bucket["2024-07-15"].Start)
}

func TestOpenBucketRepository_UnknownDriver(t *testing.T) {
	_, _, err := OpenBucketRepository(context.Background(), &config.Config{
		Store: config.StoreConfig{Driver: "mongo"},
	})
	assert.Error(t, err)
}
