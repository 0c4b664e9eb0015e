package ledger

import (
	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
	"github.com/Tiliavir/trivial-meal-tracker/internal/nutrition"
)

// AddMeal logs d in today's meal log. It reports false, creating nothing,
// when the name is blank or the calories do not parse.
func (l *Ledger) AddMeal(d model.Draft) (model.MealEntry, bool) {
	var meal model.MealEntry
	var ok bool
	l.update(func() field {
		meal, ok = l.newMeal(d)
		if !ok {
			return 0
		}
		l.state.Meals = append(l.state.Meals, meal)
		return fieldMeals
	})
	return meal, ok
}

// RemoveMeal deletes a meal log entry. Unknown ids are ignored.
func (l *Ledger) RemoveMeal(id string) bool {
	var removed bool
	l.update(func() field {
		l.state.Meals, removed = removeByID(l.state.Meals, id, func(m model.MealEntry) string { return m.ID })
		if !removed {
			return 0
		}
		return fieldMeals
	})
	return removed
}

// Meals returns today's meal log in insertion order.
func (l *Ledger) Meals() []model.MealEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneMeals(l.state.Meals)
}

// MealTotals sums the live meal log.
func (l *Ledger) MealTotals() model.NutritionTotals {
	l.mu.Lock()
	defer l.mu.Unlock()
	return nutrition.Sum(l.state.Meals...)
}

// ClearMealLog empties the live meal log. EndDay combines it with
// ArchiveToday atomically.
func (l *Ledger) ClearMealLog() {
	l.update(func() field {
		if len(l.state.Meals) == 0 {
			return 0
		}
		l.state.Meals = []model.MealEntry{}
		return fieldMeals
	})
}

func removeByID[T any](items []T, id string, key func(T) string) ([]T, bool) {
	for i, it := range items {
		if key(it) == id {
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...), true
		}
	}
	return items, false
}

func indexByID[T any](items []T, id string, key func(T) string) int {
	for i, it := range items {
		if key(it) == id {
			return i
		}
	}
	return -1
}
