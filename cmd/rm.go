package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmAll bool

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a meal from today's log",
	Long: `Remove a meal from today's log. The id may be shortened to any unique prefix.
With --all the whole log is cleared without archiving it.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if rmAll {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runRm,
}

func init() {
	rmCmd.Flags().BoolVar(&rmAll, "all", false, "Clear today's whole meal log")
}

func runRm(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())

	if rmAll {
		n := len(s.ledger.Meals())
		s.ledger.ClearMealLog()
		s.close()
		fmt.Printf("Cleared %d meal(s) from today's log.\n", n)
		return nil
	}

	id := resolveID(args[0], mealIDs(s.ledger.Meals()))
	if !s.ledger.RemoveMeal(id) {
		s.fail("No meal with id %q in today's log.", args[0])
	}
	s.close()

	fmt.Println("Meal removed.")
	return nil
}
