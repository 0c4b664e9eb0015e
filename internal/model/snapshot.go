package model

// NutritionTotals is a field-wise sum of macros. It is only ever stored as
// the cached totals of a JournalDay.
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// DailyGoals are the user's daily targets.
type DailyGoals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// DefaultGoals returns the goals assigned to a new user.
func DefaultGoals() DailyGoals {
	return DailyGoals{Calories: 2000, Protein: 150, Carbs: 250, Fats: 65}
}

// JournalDay is an archived day, keyed by its calendar date (YYYY-MM-DD).
type JournalDay struct {
	Date   string          `json:"date"`
	Meals  []MealEntry     `json:"meals"`
	Totals NutritionTotals `json:"totals"`
}

// Snapshot is the whole persisted user state.
type Snapshot struct {
	Meals        []MealEntry      `json:"meals"`
	Journal      []JournalDay     `json:"journal"`
	PlannedMeals []PlannedEntry   `json:"plannedMeals"`
	SavedRecipes []RecipeTemplate `json:"savedRecipes"`
	DailyGoals   DailyGoals       `json:"dailyGoals"`
}

// NewSnapshot returns the state of a user that has never saved anything.
func NewSnapshot() Snapshot {
	return Snapshot{
		Meals:        []MealEntry{},
		Journal:      []JournalDay{},
		PlannedMeals: []PlannedEntry{},
		SavedRecipes: []RecipeTemplate{},
		DailyGoals:   DefaultGoals(),
	}
}

// Normalize replaces nil collections with empty ones so the snapshot always
// encodes as arrays rather than null.
func (s *Snapshot) Normalize() {
	if s.Meals == nil {
		s.Meals = []MealEntry{}
	}
	if s.Journal == nil {
		s.Journal = []JournalDay{}
	}
	for i := range s.Journal {
		if s.Journal[i].Meals == nil {
			s.Journal[i].Meals = []MealEntry{}
		}
	}
	if s.PlannedMeals == nil {
		s.PlannedMeals = []PlannedEntry{}
	}
	if s.SavedRecipes == nil {
		s.SavedRecipes = []RecipeTemplate{}
	}
}

// Patch is a partial snapshot. Every non-nil field replaces the whole
// collection it names; absent fields leave the stored value untouched.
type Patch struct {
	Meals        *[]MealEntry      `json:"meals,omitempty"`
	Journal      *[]JournalDay     `json:"journal,omitempty"`
	PlannedMeals *[]PlannedEntry   `json:"plannedMeals,omitempty"`
	SavedRecipes *[]RecipeTemplate `json:"savedRecipes,omitempty"`
	DailyGoals   *DailyGoals       `json:"dailyGoals,omitempty"`
}

// FullPatch returns a patch carrying every field of s.
func FullPatch(s Snapshot) Patch {
	s.Normalize()
	goals := s.DailyGoals
	return Patch{
		Meals:        &s.Meals,
		Journal:      &s.Journal,
		PlannedMeals: &s.PlannedMeals,
		SavedRecipes: &s.SavedRecipes,
		DailyGoals:   &goals,
	}
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Meals == nil && p.Journal == nil && p.PlannedMeals == nil &&
		p.SavedRecipes == nil && p.DailyGoals == nil
}

// Fields returns the snapshot keys present in the patch, in snapshot order.
func (p Patch) Fields() []string {
	var fields []string
	if p.Meals != nil {
		fields = append(fields, "meals")
	}
	if p.Journal != nil {
		fields = append(fields, "journal")
	}
	if p.PlannedMeals != nil {
		fields = append(fields, "plannedMeals")
	}
	if p.SavedRecipes != nil {
		fields = append(fields, "savedRecipes")
	}
	if p.DailyGoals != nil {
		fields = append(fields, "dailyGoals")
	}
	return fields
}

// Apply merges p into s at collection level.
func (s Snapshot) Apply(p Patch) Snapshot {
	if p.Meals != nil {
		s.Meals = *p.Meals
	}
	if p.Journal != nil {
		s.Journal = *p.Journal
	}
	if p.PlannedMeals != nil {
		s.PlannedMeals = *p.PlannedMeals
	}
	if p.SavedRecipes != nil {
		s.SavedRecipes = *p.SavedRecipes
	}
	if p.DailyGoals != nil {
		s.DailyGoals = *p.DailyGoals
	}
	s.Normalize()
	return s
}
