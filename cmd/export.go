package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-meal-tracker/internal/calendar"
	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
	"github.com/Tiliavir/trivial-meal-tracker/internal/nutrition"
	"github.com/Tiliavir/trivial-meal-tracker/internal/report"
)

var (
	exportFormat string
	exportFrom   string
	exportTo     string
	exportWeek   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the journal to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "First date to export (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Last date to export (YYYY-MM-DD)")
	exportCmd.Flags().BoolVar(&exportWeek, "week", false, "Export this week only")
}

func runExport(cmd *cobra.Command, args []string) error {
	from, to := exportFrom, exportTo
	if exportWeek {
		start, end := calendar.WeekRange(time.Now())
		from, to = calendar.DateKey(start), calendar.DateKey(end)
	}
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := calendar.ParseDateKey(d, time.Local); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	s := openSession(cmd.Context())
	days := filterDays(s.ledger.Journal(), from, to)
	s.close()

	switch exportFormat {
	case "json":
		data, err := json.MarshalIndent(days, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	case "md":
		fmt.Print(report.Journal(days))
		for _, d := range days {
			fmt.Println()
			fmt.Print(report.Day(d))
		}
	default: // csv
		writeCSV(os.Stdout, days)
	}
	return nil
}

// filterDays keeps the days whose key lies within [from, to]. Empty bounds
// are open. Date keys sort lexically.
func filterDays(days []model.JournalDay, from, to string) []model.JournalDay {
	out := []model.JournalDay{}
	for _, d := range days {
		if (from == "" || d.Date >= from) && (to == "" || d.Date <= to) {
			out = append(out, d)
		}
	}
	return out
}

// writeCSV prints one row per archived meal.
func writeCSV(w io.Writer, days []model.JournalDay) {
	fmt.Fprintln(w, "date,time,name,calories,protein,carbs,fats")
	for _, d := range days {
		for _, m := range d.Meals {
			fmt.Fprintf(w, "%s,%s,%s,%s,%s,%s,%s\n",
				csvEscape(d.Date),
				csvEscape(m.Time),
				csvEscape(m.Name),
				nutrition.Format(m.Calories),
				nutrition.Format(m.Protein),
				nutrition.Format(m.Carbs),
				nutrition.Format(m.Fats),
			)
		}
	}
}

// csvEscape quotes a field containing a comma, quote or line break and
// doubles the quotes inside it.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
