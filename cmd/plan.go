package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-meal-tracker/internal/calendar"
	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
	"github.com/Tiliavir/trivial-meal-tracker/internal/report"
)

var (
	planDraft   draftFlags
	planAddDay  string
	planListDay string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage the recurring weekly meal plan",
}

var planAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Plan a meal on a weekday",
	Example: `  tmt plan add Oatmeal --day mon --time 07:30 --calories 300 --protein 10
  tmt plan add "Chicken bowl" --calories 520`,
	Args: cobra.ExactArgs(1),
	RunE: runPlanAdd,
}

var planRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a planned meal",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanRm,
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the meal plan of the whole week or one weekday",
	Args:  cobra.NoArgs,
	RunE:  runPlanList,
}

var planLogCmd = &cobra.Command{
	Use:   "log <id>",
	Short: "Log a planned meal for today; the plan stays unchanged",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanLog,
}

func init() {
	planDraft.register(planAddCmd, "Optional time slot (HH:MM)")
	planAddCmd.Flags().StringVar(&planAddDay, "day", "", "Weekday (default today)")
	planListCmd.Flags().StringVar(&planListDay, "day", "", "Only show this weekday")

	planCmd.AddCommand(planAddCmd)
	planCmd.AddCommand(planRmCmd)
	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planLogCmd)
}

// dayFlag parses a --day value, exiting with 1 when it is invalid.
func dayFlag(s string) model.Weekday {
	d, err := parseDay(s, calendar.Weekday(time.Now()))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return d
}

func runPlanAdd(cmd *cobra.Command, args []string) error {
	day := dayFlag(planAddDay)
	s := openSession(cmd.Context())

	entry, ok := s.ledger.PlanMeal(planDraft.draft(args[0]), day)
	if !ok {
		s.fail("A planned meal needs a name and a numeric --calories value.")
	}
	s.close()

	slot := ""
	if entry.Time != "" {
		slot = " at " + entry.Time
	}
	fmt.Printf("Planned %q on %s%s.\n", entry.Name, entry.Day, slot)
	return nil
}

func runPlanRm(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())

	id := resolveID(args[0], plannedIDs(s.ledger.Planned()))
	if !s.ledger.RemovePlanned(id) {
		s.fail("No planned meal with id %q.", args[0])
	}
	s.close()

	fmt.Println("Planned meal removed.")
	return nil
}

func runPlanList(cmd *cobra.Command, args []string) error {
	days := model.Weekdays
	if planListDay != "" {
		days = []model.Weekday{dayFlag(planListDay)}
	}

	s := openSession(cmd.Context())
	defer s.close()

	plan := make([]report.PlanDay, 0, len(days))
	for _, d := range days {
		plan = append(plan, report.PlanDay{Weekday: d, Entries: s.ledger.PlannedByDay(d)})
	}
	s.print(report.Plan(plan))
	return nil
}

func runPlanLog(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())

	id := resolveID(args[0], plannedIDs(s.ledger.Planned()))
	meal, ok := s.ledger.LogPlanned(id)
	if !ok {
		s.fail("No planned meal with id %q.", args[0])
	}
	s.close()

	fmt.Printf("Logged %q at %s.\n", meal.Name, meal.Time)
	return nil
}
