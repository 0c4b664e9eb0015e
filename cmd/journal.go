package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-meal-tracker/internal/calendar"
	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
	"github.com/Tiliavir/trivial-meal-tracker/internal/nutrition"
	"github.com/Tiliavir/trivial-meal-tracker/internal/report"
)

var (
	journalEditDraft draftFlags
	journalEditName  string
	journalAddDraft  draftFlags
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Browse and correct archived days",
	Long: `Browse and correct the journal of archived days. Days are addressed by
their date (YYYY-MM-DD) and meals by their id, which may be shortened to any
unique prefix.`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived days, newest first",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <date>",
	Short: "Show the meals of an archived day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalRmCmd = &cobra.Command{
	Use:   "rm <date>",
	Short: "Delete an archived day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalRm,
}

var journalRmMealCmd = &cobra.Command{
	Use:   "rm-meal <date> <id>",
	Short: "Delete a meal from an archived day; the day goes away with its last meal",
	Args:  cobra.ExactArgs(2),
	RunE:  runJournalRmMeal,
}

var journalEditMealCmd = &cobra.Command{
	Use:     "edit-meal <date> <id>",
	Short:   "Correct a meal of an archived day",
	Long:    "Correct a meal of an archived day. Only the given flags change; the time stays unless --time is set.",
	Example: `  tmt journal edit-meal 2026-02-27 0f3c --calories 260 --name "Eggs and toast"`,
	Args:    cobra.ExactArgs(2),
	RunE:    runJournalEditMeal,
}

var journalAddMealCmd = &cobra.Command{
	Use:   "add-meal <date> <name>",
	Short: "Add a forgotten meal to an archived day",
	Args:  cobra.ExactArgs(2),
	RunE:  runJournalAddMeal,
}

func init() {
	journalEditDraft.register(journalEditMealCmd, "New time (HH:MM)")
	journalEditMealCmd.Flags().StringVar(&journalEditName, "name", "", "New name")
	journalAddDraft.register(journalAddMealCmd, "Time eaten (HH:MM), default now")

	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalRmCmd)
	journalCmd.AddCommand(journalRmMealCmd)
	journalCmd.AddCommand(journalEditMealCmd)
	journalCmd.AddCommand(journalAddMealCmd)
}

// dateArg validates a journal date argument, exiting with 1 when it is not
// a YYYY-MM-DD key.
func dateArg(s string) string {
	t, err := calendar.ParseDateKey(s, time.Local)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return calendar.DateKey(t)
}

func runJournalList(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())
	defer s.close()

	s.print(report.Journal(s.ledger.Journal()))
	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	date := dateArg(args[0])
	s := openSession(cmd.Context())
	defer s.close()

	day, ok := s.ledger.JournalDay(date)
	if !ok {
		s.fail("No archived day %s.", date)
	}
	s.print(report.Day(day))
	return nil
}

func runJournalRm(cmd *cobra.Command, args []string) error {
	date := dateArg(args[0])
	s := openSession(cmd.Context())

	if !s.ledger.DeleteDay(date) {
		s.fail("No archived day %s.", date)
	}
	s.close()

	fmt.Printf("Deleted %s from the journal.\n", date)
	return nil
}

func runJournalRmMeal(cmd *cobra.Command, args []string) error {
	date := dateArg(args[0])
	s := openSession(cmd.Context())

	day, _ := s.ledger.JournalDay(date)
	if !s.ledger.DeleteMealFromDay(date, resolveID(args[1], mealIDs(day.Meals))) {
		s.fail("No meal with id %q on %s.", args[1], date)
	}
	s.close()

	if len(day.Meals) == 1 {
		fmt.Printf("Meal deleted. %s had no meals left and was removed.\n", date)
		return nil
	}
	fmt.Println("Meal deleted.")
	return nil
}

func runJournalEditMeal(cmd *cobra.Command, args []string) error {
	date := dateArg(args[0])
	s := openSession(cmd.Context())

	day, ok := s.ledger.JournalDay(date)
	if !ok {
		s.fail("No archived day %s.", date)
	}
	id := resolveID(args[1], mealIDs(day.Meals))
	var d model.Draft
	found := false
	for _, m := range day.Meals {
		if m.ID == id {
			d, found = mealDraft(m), true
			break
		}
	}
	if !found {
		s.fail("No meal with id %q on %s.", args[1], date)
	}

	d = journalEditDraft.over(cmd, d)
	if cmd.Flags().Changed("name") {
		d.Name = journalEditName
	}
	if !s.ledger.EditMealInDay(date, id, d) {
		s.fail("A meal needs a name and a numeric calories value.")
	}
	s.close()

	fmt.Println("Meal updated.")
	return nil
}

func runJournalAddMeal(cmd *cobra.Command, args []string) error {
	date := dateArg(args[0])
	s := openSession(cmd.Context())

	if _, ok := s.ledger.JournalDay(date); !ok {
		s.fail("No archived day %s. Meals can only be added to days in the journal.", date)
	}
	meal, ok := s.ledger.AddMealToDay(date, journalAddDraft.draft(args[1]))
	if !ok {
		s.fail("A meal needs a name and a numeric --calories value.")
	}
	s.close()

	fmt.Printf("Added %q to %s: %s kcal\n", meal.Name, date, nutrition.Format(meal.Calories))
	return nil
}
