package model

import "strings"

// Weekday is a recurring day-of-week label used by the planned calendar.
// It is deliberately not a calendar date: planned meals repeat every week.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists the labels in week order, Monday first.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday matches a label case-insensitively. Three-letter prefixes
// ("mon", "Tue") are accepted.
func ParseWeekday(s string) (Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	for _, d := range Weekdays {
		name := strings.ToLower(string(d))
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return d, true
		}
	}
	return "", false
}

// Valid reports whether d is one of the seven labels.
func (d Weekday) Valid() bool {
	for _, w := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// MealEntry is a meal in the live meal log or in an archived journal day.
type MealEntry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Time     string  `json:"time"`
}

// PlannedEntry is a meal scheduled on a weekday of the recurring plan.
type PlannedEntry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Day      Weekday `json:"day"`
	Time     string  `json:"time"`
}

// RecipeTemplate is a reusable macro preset. Using it copies the values;
// no reference to the template is kept.
type RecipeTemplate struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbs        float64 `json:"carbs"`
	Fats         float64 `json:"fats"`
	Instructions string  `json:"recipe,omitempty"`
}

// Draft carries form input as typed by the user. Numbers are kept as text
// and coerced by the ledger.
type Draft struct {
	Name     string `json:"name"`
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fats     string `json:"fats"`
	// Time is the optional slot of a planned meal, or the replacement time
	// label when editing a journal meal.
	Time string `json:"time,omitempty"`
}

// Estimate is the best-effort answer of an image-to-nutrition estimator.
type Estimate struct {
	Name         string  `json:"name"`
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbs        float64 `json:"carbs"`
	Fats         float64 `json:"fats"`
	Instructions string  `json:"recipe,omitempty"`
}

// Macros exposes the four aggregated nutrition values of a record.
type Macros interface {
	Nutrition() NutritionTotals
}

func (m MealEntry) Nutrition() NutritionTotals {
	return NutritionTotals{Calories: m.Calories, Protein: m.Protein, Carbs: m.Carbs, Fats: m.Fats}
}

func (p PlannedEntry) Nutrition() NutritionTotals {
	return NutritionTotals{Calories: p.Calories, Protein: p.Protein, Carbs: p.Carbs, Fats: p.Fats}
}

func (r RecipeTemplate) Nutrition() NutritionTotals {
	return NutritionTotals{Calories: r.Calories, Protein: r.Protein, Carbs: r.Carbs, Fats: r.Fats}
}

func (t NutritionTotals) Nutrition() NutritionTotals { return t }
