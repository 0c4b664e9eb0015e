package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-meal-tracker/internal/config"
	"github.com/Tiliavir/trivial-meal-tracker/internal/estimator"
	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
	"github.com/Tiliavir/trivial-meal-tracker/internal/nutrition"
)

var scanLog bool

var scanCmd = &cobra.Command{
	Use:   "scan <image>",
	Short: "Estimate the nutrition of a meal photo",
	Long: `Send a meal photo to the configured estimator (Anthropic or Gemini) and
print the estimate. Nothing is logged unless --log is given; otherwise the
matching tmt add command is printed so the values can be adjusted first.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanLog, "log", false, "Log the estimate as a meal right away")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	est := estimate(cmd.Context(), cfg, args[0], false)
	d := estimateDraft(est)

	if !scanLog {
		fmt.Printf("Estimate: %s, %s kcal, %s g protein, %s g carbs, %s g fats\n",
			est.Name, d.Calories, d.Protein, d.Carbs, d.Fats)
		fmt.Println(addCommand(d))
		return nil
	}

	s := openSessionWith(cmd.Context(), cfg)
	meal, ok := s.ledger.AddMeal(d)
	if !ok {
		s.fail("The estimate could not be logged.")
	}
	s.close()
	fmt.Printf("Logged %q at %s: %s kcal\n", meal.Name, meal.Time, nutrition.Format(meal.Calories))
	return nil
}

// estimate runs the configured estimator on the image at path. Failures
// leave all state untouched and exit with 1.
func estimate(ctx context.Context, cfg config.Config, path string, recipe bool) model.Estimate {
	img, err := estimator.LoadImage(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	e, err := estimator.New(ctx, cfg.Estimator.Provider, cfg.Estimator.Model)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Fprintln(os.Stderr, "Analyzing photo...")
	var est model.Estimate
	if recipe {
		est, err = e.EstimateRecipe(ctx, img)
	} else {
		est, err = e.EstimateMeal(ctx, img)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not analyze the photo: %v\n", err)
		os.Exit(1)
	}
	return est
}

func estimateDraft(e model.Estimate) model.Draft {
	return model.Draft{
		Name:     e.Name,
		Calories: nutrition.Format(e.Calories),
		Protein:  nutrition.Format(e.Protein),
		Carbs:    nutrition.Format(e.Carbs),
		Fats:     nutrition.Format(e.Fats),
	}
}
