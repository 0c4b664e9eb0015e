// Package report renders ledger views as markdown and styles them for the
// terminal.
package report

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"

	"github.com/Tiliavir/trivial-meal-tracker/internal/ledger"
	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
	"github.com/Tiliavir/trivial-meal-tracker/internal/nutrition"
)

//go:embed templates/*.md
var templates embed.FS

// ShortIDLen is the number of id characters shown in tables.
const ShortIDLen = 8

var funcs = template.FuncMap{
	"num": nutrition.Format,
	"pct": func(v float64) string { return fmt.Sprintf("%.0f%%", v) },
	"cell": func(s string) string {
		return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
	},
	"short": func(id string) string {
		if len(id) > ShortIDLen {
			return id[:ShortIDLen]
		}
		return id
	},
}

var tmpl = template.Must(template.New("report").Funcs(funcs).ParseFS(templates, "templates/*.md"))

// renderTemplate executes one named template. Failures are rendered in
// place of the report.
func renderTemplate(name string, data any) string {
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", name, err)
	}
	return b.String()
}

// Status renders today's intake against the goals, the meal log and the
// plan of the day.
func Status(s ledger.DayStatus, meals []model.MealEntry, weekday model.Weekday, planned []model.PlannedEntry) string {
	return renderTemplate("status.md", struct {
		Status  ledger.DayStatus
		Meals   []model.MealEntry
		Weekday model.Weekday
		Planned []model.PlannedEntry
	}{s, meals, weekday, planned})
}

// Meals renders the live meal log with its totals.
func Meals(meals []model.MealEntry) string {
	return renderTemplate("meals", struct {
		Meals  []model.MealEntry
		Totals model.NutritionTotals
	}{meals, nutrition.Sum(meals...)})
}

// Week renders the weekly overview.
func Week(w ledger.WeekView) string {
	return renderTemplate("week.md", w)
}

// Journal renders the list of archived days.
func Journal(days []model.JournalDay) string {
	return renderTemplate("journal", days)
}

// Day renders one archived day.
func Day(d model.JournalDay) string {
	return renderTemplate("day", d)
}

// PlanDay groups the planned entries of one weekday.
type PlanDay struct {
	Weekday model.Weekday
	Entries []model.PlannedEntry
}

// Plan renders the recurring meal plan, one section per weekday.
func Plan(days []PlanDay) string {
	return renderTemplate("plan", days)
}

// Recipes renders the recipe book.
func Recipes(recipes []model.RecipeTemplate) string {
	return renderTemplate("recipes", recipes)
}

// Recipe renders one recipe with its instructions.
func Recipe(r model.RecipeTemplate) string {
	return renderTemplate("recipe", r)
}

// Options control terminal output.
type Options struct {
	Plain    bool
	WordWrap int
}

// Print writes md to w, styled with glamour unless opts.Plain is set.
func Print(w io.Writer, md string, opts Options) error {
	if opts.Plain {
		_, err := io.WriteString(w, md)
		return err
	}
	wrap := opts.WordWrap
	if wrap <= 0 {
		wrap = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
