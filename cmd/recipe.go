package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-meal-tracker/internal/ledger"
	"github.com/Tiliavir/trivial-meal-tracker/internal/nutrition"
	"github.com/Tiliavir/trivial-meal-tracker/internal/report"
)

var (
	recipeDraft        draftFlags
	recipeInstructions string
	recipePlanDay      string
	recipePlanTime     string
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Manage the recipe book",
	Long: `Manage the recipe book. Recipes are reusable meal templates: logging or
planning a recipe copies its values, so later changes to the log or the plan
never touch the book.`,
}

var recipeSaveCmd = &cobra.Command{
	Use:     "save <name>",
	Short:   "Save a recipe",
	Example: `  tmt recipe save "Greek yogurt bowl" --calories 320 --protein 28 --carbs 35 --fats 8 --instructions "Top yogurt with berries."`,
	Args:    cobra.ExactArgs(1),
	RunE:    runRecipeSave,
}

var recipeRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a recipe",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipeRm,
}

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the recipe book",
	Args:  cobra.NoArgs,
	RunE:  runRecipeList,
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a recipe with its instructions",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipeShow,
}

var recipeUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Print the tmt add command prefilled with a recipe",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipeUse,
}

var recipeLogCmd = &cobra.Command{
	Use:   "log <id>",
	Short: "Log a recipe as a meal for today",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipeLog,
}

var recipePlanCmd = &cobra.Command{
	Use:   "plan <id>",
	Short: "Add a recipe to the weekly meal plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipePlan,
}

var recipeScanCmd = &cobra.Command{
	Use:   "scan <image>",
	Short: "Estimate a recipe from a photo and save it",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipeScan,
}

var recipeSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add the starter recipes that are not in the book yet",
	Args:  cobra.NoArgs,
	RunE:  runRecipeSeed,
}

func init() {
	recipeDraft.register(recipeSaveCmd, "")
	recipeSaveCmd.Flags().StringVar(&recipeInstructions, "instructions", "", "Ingredients and preparation steps")
	recipePlanCmd.Flags().StringVar(&recipePlanDay, "day", "", "Weekday (default today)")
	recipePlanCmd.Flags().StringVar(&recipePlanTime, "time", "", "Optional time slot (HH:MM)")

	recipeCmd.AddCommand(recipeSaveCmd)
	recipeCmd.AddCommand(recipeRmCmd)
	recipeCmd.AddCommand(recipeListCmd)
	recipeCmd.AddCommand(recipeShowCmd)
	recipeCmd.AddCommand(recipeUseCmd)
	recipeCmd.AddCommand(recipeLogCmd)
	recipeCmd.AddCommand(recipePlanCmd)
	recipeCmd.AddCommand(recipeScanCmd)
	recipeCmd.AddCommand(recipeSeedCmd)
}

// recipeID expands a short recipe id.
func (s *session) recipeID(prefix string) string {
	return resolveID(prefix, recipeIDs(s.ledger.Recipes()))
}

func runRecipeSave(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())

	r, ok := s.ledger.SaveRecipe(recipeDraft.draft(args[0]), recipeInstructions)
	if !ok {
		s.fail("A recipe needs a name and a numeric --calories value.")
	}
	s.close()

	fmt.Printf("Saved recipe %q (%s kcal).\n", r.Name, nutrition.Format(r.Calories))
	return nil
}

func runRecipeRm(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())

	if !s.ledger.RemoveRecipe(s.recipeID(args[0])) {
		s.fail("No recipe with id %q.", args[0])
	}
	s.close()

	fmt.Println("Recipe deleted.")
	return nil
}

func runRecipeList(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())
	defer s.close()

	s.print(report.Recipes(s.ledger.Recipes()))
	return nil
}

func runRecipeShow(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())
	defer s.close()

	r, ok := s.ledger.Recipe(s.recipeID(args[0]))
	if !ok {
		s.fail("No recipe with id %q.", args[0])
	}
	s.print(report.Recipe(r))
	return nil
}

func runRecipeUse(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())
	defer s.close()

	d, ok := s.ledger.UseRecipe(s.recipeID(args[0]))
	if !ok {
		s.fail("No recipe with id %q.", args[0])
	}
	fmt.Println(addCommand(d))
	return nil
}

func runRecipeLog(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())

	meal, ok := s.ledger.QuickLogRecipe(s.recipeID(args[0]))
	if !ok {
		s.fail("No recipe with id %q.", args[0])
	}
	s.close()

	fmt.Printf("Logged %q at %s: %s kcal\n", meal.Name, meal.Time, nutrition.Format(meal.Calories))
	return nil
}

func runRecipePlan(cmd *cobra.Command, args []string) error {
	day := dayFlag(recipePlanDay)
	s := openSession(cmd.Context())

	entry, ok := s.ledger.ScheduleRecipe(s.recipeID(args[0]), day, recipePlanTime)
	if !ok {
		s.fail("No recipe with id %q.", args[0])
	}
	s.close()

	fmt.Printf("Planned %q on %s.\n", entry.Name, entry.Day)
	return nil
}

func runRecipeScan(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	est := estimate(cmd.Context(), cfg, args[0], true)

	s := openSessionWith(cmd.Context(), cfg)
	r, ok := s.ledger.AddEstimatedRecipe(est)
	if !ok {
		s.fail("The estimate has no name and could not be saved.")
	}
	s.close()

	fmt.Printf("Saved recipe %q (%s kcal).\n", r.Name, nutrition.Format(r.Calories))
	printMarkdown(s.cfg, report.Recipe(r))
	return nil
}

func runRecipeSeed(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())
	n := s.ledger.SeedRecipes(ledger.SampleRecipes())
	s.close()

	if n == 0 {
		fmt.Println("All starter recipes are already in the book.")
		return nil
	}
	fmt.Printf("Added %d starter recipe(s).\n", n)
	return nil
}
