// Package repository selects the bucket store backend named in the
// configuration.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/sqlite"
)

// OpenBucketRepository connects to the configured store and prepares its
// schema. The returned func releases the connection.
func OpenBucketRepository(ctx context.Context, cfg *config.Config) (attendance.BucketRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.PoolOptions())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		repo := postgresql.NewAttendanceRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to migrate postgres schema: %w", err)
		}
		slog.Info("Bucket store ready", "driver", cfg.Store.Driver, "host", cfg.Database.Host, "database", cfg.Database.Name)
		return repo, db.Close, nil

	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		repo, err := sqlite.NewAttendanceRepository(db)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to prepare sqlite schema: %w", err)
		}
		slog.Info("Bucket store ready", "driver", cfg.Store.Driver, "path", cfg.Store.SQLitePath)
		return repo, func() {
			if err := db.Close(); err != nil {
				slog.Error("Failed to close sqlite", "error", err)
			}
		}, nil

	case config.DriverMemory:
		slog.Warn("Bucket store is in memory; records are lost on restart")
		return memory.NewAttendanceRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
