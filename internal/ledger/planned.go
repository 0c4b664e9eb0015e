package ledger

import (
	"sort"
	"strings"

	"github.com/Tiliavir/trivial-meal-tracker/internal/calendar"
	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
)

// PlanMeal schedules d on a weekday of the recurring plan. d.Time is the
// optional slot. Invalid drafts and unknown weekdays are rejected.
func (l *Ledger) PlanMeal(d model.Draft, day model.Weekday) (model.PlannedEntry, bool) {
	var entry model.PlannedEntry
	var ok bool
	l.update(func() field {
		if !day.Valid() {
			return 0
		}
		var n model.NutritionTotals
		if n, ok = parseDraft(d); !ok {
			return 0
		}
		entry = model.PlannedEntry{
			ID:       l.newID(),
			Name:     strings.TrimSpace(d.Name),
			Calories: n.Calories,
			Protein:  n.Protein,
			Carbs:    n.Carbs,
			Fats:     n.Fats,
			Day:      day,
			Time:     calendar.NormalizeTimeLabel(d.Time),
		}
		l.state.PlannedMeals = append(l.state.PlannedMeals, entry)
		return fieldPlanned
	})
	return entry, ok
}

// RemovePlanned deletes a planned entry. Unknown ids are ignored.
func (l *Ledger) RemovePlanned(id string) bool {
	var removed bool
	l.update(func() field {
		l.state.PlannedMeals, removed = removeByID(l.state.PlannedMeals, id, func(p model.PlannedEntry) string { return p.ID })
		if !removed {
			return 0
		}
		return fieldPlanned
	})
	return removed
}

// Planned returns the whole calendar in insertion order.
func (l *Ledger) Planned() []model.PlannedEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.PlannedEntry{}, l.state.PlannedMeals...)
}

// PlannedByDay returns the entries of day ordered by time slot. Entries
// without a slot come last, keeping their insertion order.
func (l *Ledger) PlannedByDay(day model.Weekday) []model.PlannedEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return plannedByDay(l.state.PlannedMeals, day)
}

func plannedByDay(all []model.PlannedEntry, day model.Weekday) []model.PlannedEntry {
	out := []model.PlannedEntry{}
	for _, p := range all {
		if p.Day == day {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Time, out[j].Time
		if a == "" {
			return false
		}
		return b == "" || a < b
	})
	return out
}

// LogPlanned copies a planned entry into today's meal log. The planned
// entry stays in the calendar and can be logged again.
func (l *Ledger) LogPlanned(id string) (model.MealEntry, bool) {
	var meal model.MealEntry
	var ok bool
	l.update(func() field {
		i := indexByID(l.state.PlannedMeals, id, func(p model.PlannedEntry) string { return p.ID })
		if i < 0 {
			return 0
		}
		p := l.state.PlannedMeals[i]
		meal, ok = l.copyMeal(p.Name, p), true
		l.state.Meals = append(l.state.Meals, meal)
		return fieldMeals
	})
	return meal, ok
}
