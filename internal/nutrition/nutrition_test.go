package nutrition_test

import (
	"math/rand"
	"testing"

	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
	"github.com/Tiliavir/trivial-meal-tracker/internal/nutrition"
)

func TestSumEggs(t *testing.T) {
	meals := []model.MealEntry{{Name: "Eggs", Calories: 240, Protein: 18, Carbs: 2, Fats: 18}}
	got := nutrition.Sum(meals...)
	want := model.NutritionTotals{Calories: 240, Protein: 18, Carbs: 2, Fats: 18}
	if got != want {
		t.Errorf("Sum = %+v, want %+v", got, want)
	}
}

func TestSumEmpty(t *testing.T) {
	if got := nutrition.Sum([]model.MealEntry{}...); got != (model.NutritionTotals{}) {
		t.Errorf("Sum of nothing = %+v, want zero", got)
	}
}

func TestSumIsOrderIndependent(t *testing.T) {
	meals := []model.MealEntry{
		{Calories: 0.1, Protein: 0.2, Carbs: 0.3, Fats: 1e-3},
		{Calories: 1e6, Protein: 33.3, Carbs: 0.7, Fats: 12.25},
		{Calories: 0.2, Protein: 0.1, Carbs: 1.1, Fats: 0.3},
		{Calories: 412.5, Protein: 0, Carbs: 57.9, Fats: 9.99},
		{Calories: 0.3, Protein: 7.77, Carbs: 0, Fats: 0.01},
	}
	want := nutrition.Sum(meals...)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := append([]model.MealEntry(nil), meals...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := nutrition.Sum(shuffled...); got != want {
			t.Fatalf("permutation %d: Sum = %+v, want %+v", i, got, want)
		}
	}
	if want.Calories != 1000413.1 {
		t.Errorf("calories = %v, want 1000413.1", want.Calories)
	}
}

func TestSumAcceptsPlannedAndTotals(t *testing.T) {
	planned := []model.PlannedEntry{{Calories: 100, Protein: 1}, {Calories: 50, Fats: 2}}
	if got := nutrition.Sum(planned...); got.Calories != 150 || got.Protein != 1 || got.Fats != 2 {
		t.Errorf("Sum(planned) = %+v", got)
	}
	days := []model.NutritionTotals{{Calories: 1800}, {Calories: 2200}}
	if got := nutrition.Sum(days...); got.Calories != 4000 {
		t.Errorf("Sum(totals) = %+v", got)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"240", 240, true},
		{" 12.5 ", 12.5, true},
		{"12g", 12, true},
		{".5", 0.5, true},
		{"-3", 0, true},
		{"", 0, false},
		{"abc", 0, false},
		{"g12", 0, false},
	}
	for _, tt := range tests {
		got, ok := nutrition.ParseAmount(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseAmount(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	if got := nutrition.Coerce("n/a"); got != 0 {
		t.Errorf("Coerce(n/a) = %v, want 0", got)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		current, goal, want float64
	}{
		{0, 2000, 0},
		{1000, 2000, 50},
		{2500, 2000, 100},
		{10, 0, 100},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := nutrition.Progress(tt.current, tt.goal); got != tt.want {
			t.Errorf("Progress(%v, %v) = %v, want %v", tt.current, tt.goal, got, tt.want)
		}
	}
}

func TestRemainingAndAverage(t *testing.T) {
	rem := nutrition.Remaining(model.DefaultGoals(), model.NutritionTotals{Calories: 2100, Protein: 100.5})
	if rem.Calories != -100 || rem.Protein != 49.5 || rem.Carbs != 250 || rem.Fats != 65 {
		t.Errorf("Remaining = %+v", rem)
	}

	avg := nutrition.Average(model.NutritionTotals{Calories: 4000, Protein: 301}, 2)
	if avg.Calories != 2000 || avg.Protein != 150.5 {
		t.Errorf("Average = %+v", avg)
	}
	if got := nutrition.Average(model.NutritionTotals{Calories: 10}, 0); got != (model.NutritionTotals{}) {
		t.Errorf("Average by 0 = %+v, want zero", got)
	}
}

func TestFormat(t *testing.T) {
	for in, want := range map[float64]string{240: "240", 12.5: "12.5", 0.04: "0", 33.333: "33.3"} {
		if got := nutrition.Format(in); got != want {
			t.Errorf("Format(%v) = %q, want %q", in, got, want)
		}
	}
}
