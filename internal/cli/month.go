package cli

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	"github.com/spf13/cobra"
)

var monthCmd = &cobra.Command{
	Use:   "month UID YEAR MONTH",
	Short: "Print one user's month as the API returns it",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeStore, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		svc := attendanceService.NewAttendanceService(repo, time.Local, attendanceService.PermissivePolicy)
		return runMonth(cmd, svc, args)
	},
}

func runMonth(cmd *cobra.Command, svc attendance.AttendanceService, args []string) error {
	req, err := attendance.NewMonthRequest(args[0], args[1], args[2])
	if err != nil {
		return err
	}

	records, err := svc.GetMonth(cmd.Context(), req)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), records)
}
