package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-meal-tracker/internal/nutrition"
)

var endDayKeep bool

var endDayCmd = &cobra.Command{
	Use:   "end-day",
	Short: "Archive today's meals into the journal and start a fresh log",
	Long: `Archive today's meals into the journal under today's date and clear the
meal log. Running it again on the same day replaces that day's journal entry.
With --keep the meals are archived but stay in the log.`,
	Args: cobra.NoArgs,
	RunE: runEndDay,
}

func init() {
	endDayCmd.Flags().BoolVar(&endDayKeep, "keep", false, "Archive without clearing the meal log")
}

func runEndDay(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())

	archive := s.ledger.EndDay
	if endDayKeep {
		archive = s.ledger.ArchiveToday
	}
	day, ok := archive()
	s.close()

	if !ok {
		fmt.Println("No meals logged today. Nothing to archive.")
		return nil
	}
	fmt.Printf("Archived %s: %d meal(s), %s kcal.\n", day.Date, len(day.Meals), nutrition.Format(day.Totals.Calories))
	return nil
}
