package ledger

import (
	"strings"

	"github.com/Tiliavir/trivial-meal-tracker/internal/calendar"
	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
	"github.com/Tiliavir/trivial-meal-tracker/internal/nutrition"
)

// ArchiveToday snapshots the meal log into the journal under today's date.
// An existing day with that date is replaced in place; otherwise the day is
// prepended so the journal stays newest first. The meal log is left as is:
// callers wanting the archive-and-clear step use EndDay.
func (l *Ledger) ArchiveToday() (model.JournalDay, bool) {
	var day model.JournalDay
	var ok bool
	l.update(func() field {
		day, ok = l.archiveLocked()
		if !ok {
			return 0
		}
		return fieldJournal
	})
	return cloneDay(day), ok
}

// EndDay archives the meal log and clears it in a single mutation, so no
// observer ever sees the meals in both places or in neither.
func (l *Ledger) EndDay() (model.JournalDay, bool) {
	var day model.JournalDay
	var ok bool
	l.update(func() field {
		day, ok = l.archiveLocked()
		if !ok {
			return 0
		}
		l.state.Meals = []model.MealEntry{}
		return fieldJournal | fieldMeals
	})
	return cloneDay(day), ok
}

func (l *Ledger) archiveLocked() (model.JournalDay, bool) {
	if len(l.state.Meals) == 0 {
		return model.JournalDay{}, false
	}
	day := model.JournalDay{
		Date:   calendar.DateKey(l.now()),
		Meals:  cloneMeals(l.state.Meals),
		Totals: nutrition.Sum(l.state.Meals...),
	}
	if i := l.dayIndexLocked(day.Date); i >= 0 {
		l.state.Journal[i] = day
	} else {
		l.state.Journal = append([]model.JournalDay{day}, l.state.Journal...)
	}
	return day, true
}

// DeleteDay removes an archived day with all its meals.
func (l *Ledger) DeleteDay(date string) bool {
	var removed bool
	l.update(func() field {
		i := l.dayIndexLocked(date)
		if i < 0 {
			return 0
		}
		l.state.Journal = append(l.state.Journal[:i:i], l.state.Journal[i+1:]...)
		removed = true
		return fieldJournal
	})
	return removed
}

// DeleteMealFromDay removes one meal from an archived day and refreshes the
// day's totals. A day left without meals is removed from the journal.
func (l *Ledger) DeleteMealFromDay(date, mealID string) bool {
	var removed bool
	l.update(func() field {
		i := l.dayIndexLocked(date)
		if i < 0 {
			return 0
		}
		day := &l.state.Journal[i]
		day.Meals, removed = removeByID(day.Meals, mealID, mealKey)
		if !removed {
			return 0
		}
		if len(day.Meals) == 0 {
			l.state.Journal = append(l.state.Journal[:i:i], l.state.Journal[i+1:]...)
			return fieldJournal
		}
		day.Totals = nutrition.Sum(day.Meals...)
		return fieldJournal
	})
	return removed
}

// EditMealInDay replaces the fields of an archived meal, keeping its id and
// position. The time label changes only when d carries one.
func (l *Ledger) EditMealInDay(date, mealID string, d model.Draft) bool {
	var edited bool
	l.update(func() field {
		i := l.dayIndexLocked(date)
		if i < 0 {
			return 0
		}
		n, ok := parseDraft(d)
		if !ok {
			return 0
		}
		day := &l.state.Journal[i]
		j := indexByID(day.Meals, mealID, mealKey)
		if j < 0 {
			return 0
		}
		meals := cloneMeals(day.Meals)
		m := &meals[j]
		m.Name = strings.TrimSpace(d.Name)
		m.Calories, m.Protein, m.Carbs, m.Fats = n.Calories, n.Protein, n.Carbs, n.Fats
		if t := calendar.NormalizeTimeLabel(d.Time); t != "" {
			m.Time = t
		}
		day.Meals = meals
		day.Totals = nutrition.Sum(day.Meals...)
		edited = true
		return fieldJournal
	})
	return edited
}

// AddMealToDay appends a meal to an existing archived day. It never creates
// a day: unknown dates are ignored.
func (l *Ledger) AddMealToDay(date string, d model.Draft) (model.MealEntry, bool) {
	var meal model.MealEntry
	var ok bool
	l.update(func() field {
		i := l.dayIndexLocked(date)
		if i < 0 {
			return 0
		}
		if meal, ok = l.newMeal(d); !ok {
			return 0
		}
		day := &l.state.Journal[i]
		day.Meals = append(cloneMeals(day.Meals), meal)
		day.Totals = nutrition.Sum(day.Meals...)
		return fieldJournal
	})
	return meal, ok
}

// Journal returns the archived days, newest first.
func (l *Ledger) Journal() []model.JournalDay {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneJournal(l.state.Journal)
}

// JournalDay looks an archived day up by date key.
func (l *Ledger) JournalDay(date string) (model.JournalDay, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.dayIndexLocked(date)
	if i < 0 {
		return model.JournalDay{}, false
	}
	return cloneDay(l.state.Journal[i]), true
}

func (l *Ledger) dayIndexLocked(date string) int {
	date = strings.TrimSpace(date)
	for i, d := range l.state.Journal {
		if d.Date == date {
			return i
		}
	}
	return -1
}

func cloneDay(d model.JournalDay) model.JournalDay {
	d.Meals = cloneMeals(d.Meals)
	return d
}

func mealKey(m model.MealEntry) string { return m.ID }

// repairJournal drops empty days and refreshes stale totals of stored
// journal data.
func repairJournal(days []model.JournalDay) []model.JournalDay {
	out := days[:0]
	for _, d := range days {
		if len(d.Meals) == 0 {
			continue
		}
		d.Totals = nutrition.Sum(d.Meals...)
		out = append(out, d)
	}
	return out
}
