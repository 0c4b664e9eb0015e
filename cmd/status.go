package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-meal-tracker/internal/calendar"
	"github.com/Tiliavir/trivial-meal-tracker/internal/report"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's intake against the daily goals",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())
	defer s.close()

	weekday := calendar.Weekday(time.Now())
	s.print(report.Status(s.ledger.Status(), s.ledger.Meals(), weekday, s.ledger.PlannedByDay(weekday)))
	return nil
}
