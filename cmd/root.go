package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var plainOutput bool

var rootCmd = &cobra.Command{
	Use:   "tmt",
	Short: "Trivial Meal Tracker – a minimal CLI meal and macro tracker",
	Long: `tmt is a single-binary command-line meal tracker.
It keeps a meal log for today, a recurring weekly meal plan, a recipe book
and a journal of past days. Data is stored as human-readable JSON files in
~/.tmt/ unless a shared store is configured in ~/.tmt/config.json.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&plainOutput, "plain", false, "Print raw markdown instead of styled output")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(endDayCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(goalsCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(recipeCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(loginCmd)
}
