package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-meal-tracker/internal/nutrition"
)

var addDraft draftFlags

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Log a meal for today",
	Example: `  tmt add "Scrambled eggs" --calories 240 --protein 18 --carbs 2 --fats 18
  tmt add Apple --calories 95`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addDraft.register(addCmd, "Time eaten (HH:MM), default now")
}

func runAdd(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())

	meal, ok := s.ledger.AddMeal(addDraft.draft(args[0]))
	if !ok {
		s.fail("A meal needs a name and a numeric --calories value.")
	}
	s.close()

	fmt.Printf("Logged %q at %s: %s kcal, %s g protein, %s g carbs, %s g fats\n",
		meal.Name, meal.Time,
		nutrition.Format(meal.Calories), nutrition.Format(meal.Protein),
		nutrition.Format(meal.Carbs), nutrition.Format(meal.Fats))
	return nil
}
