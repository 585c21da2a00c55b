package cli

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	"github.com/spf13/cobra"
)

var migrateKeysCmd = &cobra.Command{
	Use:   "migrate-keys",
	Short: "Rewrite MM-DD day keys as YYYY-MM-DD in every bucket",
	Long: `Rewrite MM-DD day keys as YYYY-MM-DD in every bucket.

Stop writers before running without --dry-run: each bucket is read and written
back whole, so a concurrent clock-in can be lost.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		dropForeign, _ := cmd.Flags().GetBool("drop-foreign")

		repo, closeStore, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		return runMigrateKeys(cmd, attendanceService.NewKeyMigrator(repo), attendance.MigrationOptions{
			DryRun:      dryRun,
			DropForeign: dropForeign,
		})
	},
}

func init() {
	migrateKeysCmd.Flags().Bool("dry-run", false, "report what would change without writing")
	migrateKeysCmd.Flags().Bool("drop-foreign", false, "delete keys that name a day outside their bucket's month")
}

func runMigrateKeys(cmd *cobra.Command, migrator attendance.KeyMigrator, opts attendance.MigrationOptions) error {
	report, err := migrator.MigrateKeys(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return writeJSON(cmd.OutOrStdout(), report)
}
