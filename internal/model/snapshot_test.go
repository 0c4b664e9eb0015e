package model_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
)

func TestApplyReplacesWholeCollection(t *testing.T) {
	s := model.NewSnapshot()
	s.Meals = []model.MealEntry{{ID: "a", Name: "Toast"}, {ID: "b", Name: "Tea"}}
	s.SavedRecipes = []model.RecipeTemplate{{ID: "r1", Name: "Oats"}}

	meals := []model.MealEntry{{ID: "c", Name: "Soup"}}
	got := s.Apply(model.Patch{Meals: &meals})

	if len(got.Meals) != 1 || got.Meals[0].ID != "c" {
		t.Fatalf("meals = %+v, want only c", got.Meals)
	}
	if len(got.SavedRecipes) != 1 {
		t.Errorf("savedRecipes touched by a meals patch: %+v", got.SavedRecipes)
	}
	if got.DailyGoals != model.DefaultGoals() {
		t.Errorf("goals = %+v, want defaults", got.DailyGoals)
	}
}

func TestPatchFields(t *testing.T) {
	goals := model.DefaultGoals()
	var journal []model.JournalDay
	p := model.Patch{Journal: &journal, DailyGoals: &goals}

	if got := strings.Join(p.Fields(), ","); got != "journal,dailyGoals" {
		t.Errorf("Fields() = %q, want %q", got, "journal,dailyGoals")
	}
	if p.Empty() {
		t.Error("Empty() = true for a patch with fields")
	}
	if !(model.Patch{}).Empty() {
		t.Error("Empty() = false for a zero patch")
	}
}

func TestSnapshotJSONShape(t *testing.T) {
	data, err := json.Marshal(model.NewSnapshot())
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"meals", "journal", "plannedMeals", "savedRecipes", "dailyGoals"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("snapshot JSON lacks %q: %s", key, data)
		}
	}
	if string(raw["meals"]) != "[]" {
		t.Errorf("meals encoded as %s, want []", raw["meals"])
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want model.Weekday
		ok   bool
	}{
		{"Monday", model.Monday, true},
		{"sunday", model.Sunday, true},
		{" Wed ", model.Wednesday, true},
		{"thu", model.Thursday, true},
		{"th", "", false},
		{"Someday", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := model.ParseWeekday(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseWeekday(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
