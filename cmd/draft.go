package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
)

// draftFlags holds the macro flags shared by every command that takes a
// meal. Values stay text, the ledger validates them.
type draftFlags struct {
	calories string
	protein  string
	carbs    string
	fats     string
	time     string
}

func (f *draftFlags) register(cmd *cobra.Command, timeUsage string) {
	cmd.Flags().StringVar(&f.calories, "calories", "", "Calories (kcal), required")
	cmd.Flags().StringVar(&f.protein, "protein", "", "Protein in grams (default 0)")
	cmd.Flags().StringVar(&f.carbs, "carbs", "", "Carbohydrates in grams (default 0)")
	cmd.Flags().StringVar(&f.fats, "fats", "", "Fats in grams (default 0)")
	if timeUsage != "" {
		cmd.Flags().StringVar(&f.time, "time", "", timeUsage)
	}
}

func (f *draftFlags) draft(name string) model.Draft {
	return model.Draft{
		Name:     name,
		Calories: f.calories,
		Protein:  f.protein,
		Carbs:    f.carbs,
		Fats:     f.fats,
		Time:     f.time,
	}
}

// over returns base with every flag the user set on cmd applied.
func (f *draftFlags) over(cmd *cobra.Command, base model.Draft) model.Draft {
	set := func(flag string, dst *string, v string) {
		if cmd.Flags().Changed(flag) {
			*dst = v
		}
	}
	set("calories", &base.Calories, f.calories)
	set("protein", &base.Protein, f.protein)
	set("carbs", &base.Carbs, f.carbs)
	set("fats", &base.Fats, f.fats)
	set("time", &base.Time, f.time)
	return base
}

// mealDraft turns a stored meal back into editable text. Amounts keep
// every digit so unchanged fields parse back to the same values.
func mealDraft(m model.MealEntry) model.Draft {
	return model.Draft{
		Name:     m.Name,
		Calories: exactAmount(m.Calories),
		Protein:  exactAmount(m.Protein),
		Carbs:    exactAmount(m.Carbs),
		Fats:     exactAmount(m.Fats),
	}
}

func exactAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// addCommand formats d as the tmt add invocation that would log it.
func addCommand(d model.Draft) string {
	var b strings.Builder
	fmt.Fprintf(&b, "tmt add %s --calories %s", strconv.Quote(d.Name), d.Calories)
	for _, f := range []struct{ name, v string }{{"protein", d.Protein}, {"carbs", d.Carbs}, {"fats", d.Fats}} {
		if f.v != "" && f.v != "0" {
			fmt.Fprintf(&b, " --%s %s", f.name, f.v)
		}
	}
	return b.String()
}

// resolveID expands a unique id prefix, as shown in the reports, to the full
// id. Exact matches win; anything else is returned unchanged.
func resolveID(prefix string, ids []string) string {
	match := ""
	for _, id := range ids {
		if id == prefix {
			return id
		}
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return prefix
			}
			match = id
		}
	}
	if match == "" {
		return prefix
	}
	return match
}

func mealIDs(meals []model.MealEntry) []string {
	ids := make([]string, len(meals))
	for i, m := range meals {
		ids[i] = m.ID
	}
	return ids
}

func plannedIDs(entries []model.PlannedEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

func recipeIDs(recipes []model.RecipeTemplate) []string {
	ids := make([]string, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}
	return ids
}

// parseDay reads a --day value; empty means def.
func parseDay(s string, def model.Weekday) (model.Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	d, ok := model.ParseWeekday(s)
	if !ok {
		return "", fmt.Errorf("invalid day %q: use a weekday such as Monday or mon", s)
	}
	return d, nil
}
