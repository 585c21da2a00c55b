// Package cli implements ledgerctl, the operator tool for the attendance
// ledger's bucket store.
package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "ledgerctl",
	Short:         "Maintenance commands for the attendance ledger",
	SilenceUsage:  true,
}

// openStore is replaced in tests.
var openStore = func(ctx context.Context) (attendance.BucketRepository, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return repository.OpenBucketRepository(ctx, cfg)
}

func init() {
	rootCmd.AddCommand(migrateKeysCmd)
	rootCmd.AddCommand(monthCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
