package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-meal-tracker/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the meals logged today",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())
	defer s.close()

	s.print(report.Meals(s.ledger.Meals()))
	return nil
}
