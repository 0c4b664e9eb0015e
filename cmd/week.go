package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-meal-tracker/internal/calendar"
	"github.com/Tiliavir/trivial-meal-tracker/internal/report"
)

var weekDate string

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the weekly overview, Monday to Sunday",
	Long: `Show one row per day of the week with the archived meals of that day,
today's live log when today has not been archived yet, and the number of
meals planned for that weekday.`,
	Args: cobra.NoArgs,
	RunE: runWeek,
}

func init() {
	weekCmd.Flags().StringVar(&weekDate, "date", "", "Show the week containing this date (YYYY-MM-DD)")
}

func runWeek(cmd *cobra.Command, args []string) error {
	at := time.Now()
	if weekDate != "" {
		d, err := calendar.ParseDateKey(weekDate, time.Local)
		if err != nil {
			fmt.Fprintf(os.Stderr, "--date: %v\n", err)
			os.Exit(1)
		}
		at = d
	}

	s := openSession(cmd.Context())
	defer s.close()

	s.print(report.Week(s.ledger.WeekOf(at)))
	return nil
}
