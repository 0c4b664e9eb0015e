package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-meal-tracker/internal/nutrition"
)

var goalsCalories, goalsProtein, goalsCarbs, goalsFats float64

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Show the daily goals",
	Args:  cobra.NoArgs,
	RunE:  runGoals,
}

var goalsSetCmd = &cobra.Command{
	Use:     "set",
	Short:   "Change the daily goals",
	Long:    "Change the daily goals. Goals that are not given keep their value; negative values are stored as 0.",
	Example: `  tmt goals set --calories 1800 --protein 140`,
	Args:    cobra.NoArgs,
	RunE:    runGoalsSet,
}

func init() {
	goalsSetCmd.Flags().Float64Var(&goalsCalories, "calories", 0, "Daily calories (kcal)")
	goalsSetCmd.Flags().Float64Var(&goalsProtein, "protein", 0, "Daily protein (g)")
	goalsSetCmd.Flags().Float64Var(&goalsCarbs, "carbs", 0, "Daily carbohydrates (g)")
	goalsSetCmd.Flags().Float64Var(&goalsFats, "fats", 0, "Daily fats (g)")
	goalsCmd.AddCommand(goalsSetCmd)
}

func runGoals(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())
	defer s.close()

	printGoals(s)
	return nil
}

func runGoalsSet(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())
	defer s.close()

	g := s.ledger.Goals()
	flags := cmd.Flags()
	if flags.Changed("calories") {
		g.Calories = goalsCalories
	}
	if flags.Changed("protein") {
		g.Protein = goalsProtein
	}
	if flags.Changed("carbs") {
		g.Carbs = goalsCarbs
	}
	if flags.Changed("fats") {
		g.Fats = goalsFats
	}
	s.ledger.SetGoals(g)

	fmt.Println("Daily goals updated.")
	printGoals(s)
	return nil
}

func printGoals(s *session) {
	g := s.ledger.Goals()
	fmt.Printf("Calories: %s kcal\nProtein:  %s g\nCarbs:    %s g\nFats:     %s g\n",
		nutrition.Format(g.Calories), nutrition.Format(g.Protein),
		nutrition.Format(g.Carbs), nutrition.Format(g.Fats))
}
