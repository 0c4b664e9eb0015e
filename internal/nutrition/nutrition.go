// Package nutrition is the totals engine: pure aggregation of macro values
// and the numeric coercion applied to user input.
package nutrition

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
)

// Sum returns the field-wise sum of the macros of items. The addition is
// carried out in decimal arithmetic, so any permutation of the same items
// yields the identical result.
func Sum[T model.Macros](items ...T) model.NutritionTotals {
	var cal, pro, carb, fat decimal.Decimal
	for _, it := range items {
		n := it.Nutrition()
		cal = cal.Add(decimal.NewFromFloat(n.Calories))
		pro = pro.Add(decimal.NewFromFloat(n.Protein))
		carb = carb.Add(decimal.NewFromFloat(n.Carbs))
		fat = fat.Add(decimal.NewFromFloat(n.Fats))
	}
	return model.NutritionTotals{
		Calories: cal.InexactFloat64(),
		Protein:  pro.InexactFloat64(),
		Carbs:    carb.InexactFloat64(),
		Fats:     fat.InexactFloat64(),
	}
}

// Average divides every field of t by n. A non-positive n yields zero totals.
func Average(t model.NutritionTotals, n int) model.NutritionTotals {
	if n <= 0 {
		return model.NutritionTotals{}
	}
	d := decimal.NewFromInt(int64(n))
	div := func(v float64) float64 {
		return decimal.NewFromFloat(v).DivRound(d, 4).InexactFloat64()
	}
	return model.NutritionTotals{
		Calories: div(t.Calories),
		Protein:  div(t.Protein),
		Carbs:    div(t.Carbs),
		Fats:     div(t.Fats),
	}
}

// Remaining returns goals minus intake. Values go negative once a goal is
// exceeded.
func Remaining(g model.DailyGoals, t model.NutritionTotals) model.NutritionTotals {
	sub := func(a, b float64) float64 {
		return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).InexactFloat64()
	}
	return model.NutritionTotals{
		Calories: sub(g.Calories, t.Calories),
		Protein:  sub(g.Protein, t.Protein),
		Carbs:    sub(g.Carbs, t.Carbs),
		Fats:     sub(g.Fats, t.Fats),
	}
}

// Progress returns current as a percentage of goal, capped at 100.
// Without a positive goal any intake counts as complete.
func Progress(current, goal float64) float64 {
	if goal <= 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return math.Min(current/goal*100, 100)
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount reads the leading decimal number of s, ignoring trailing text
// such as units ("12g" is 12). ok is false when s has no leading number.
// Negative and non-finite values are clamped to 0.
func ParseAmount(s string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v < 0 {
		return 0, true
	}
	return v, true
}

// Coerce is ParseAmount with unparsable input defaulting to 0.
func Coerce(s string) float64 {
	v, _ := ParseAmount(s)
	return v
}

// Clamp maps negative and non-finite values to 0.
func Clamp(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Format renders a macro value without a trailing ".0" for whole numbers.
func Format(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
