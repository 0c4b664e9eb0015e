package ledger

import (
	"github.com/Tiliavir/trivial-meal-tracker/internal/calendar"
	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
	"github.com/Tiliavir/trivial-meal-tracker/internal/nutrition"
)

// DayStatus compares the live meal log against the daily goals.
type DayStatus struct {
	Date      string
	Meals     int
	Totals    model.NutritionTotals
	Goals     model.DailyGoals
	Remaining model.NutritionTotals
	// Progress holds percentages capped at 100.
	Progress model.NutritionTotals
}

// Goals returns the current daily goals.
func (l *Ledger) Goals() model.DailyGoals {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.DailyGoals
}

// SetGoals replaces the daily goals. Negative targets are stored as 0.
func (l *Ledger) SetGoals(g model.DailyGoals) {
	l.update(func() field {
		l.state.DailyGoals = model.DailyGoals{
			Calories: nutrition.Clamp(g.Calories),
			Protein:  nutrition.Clamp(g.Protein),
			Carbs:    nutrition.Clamp(g.Carbs),
			Fats:     nutrition.Clamp(g.Fats),
		}
		return fieldGoals
	})
}

// Status summarizes today's intake.
func (l *Ledger) Status() DayStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	totals := nutrition.Sum(l.state.Meals...)
	g := l.state.DailyGoals
	return DayStatus{
		Date:      calendar.DateKey(l.now()),
		Meals:     len(l.state.Meals),
		Totals:    totals,
		Goals:     g,
		Remaining: nutrition.Remaining(g, totals),
		Progress: model.NutritionTotals{
			Calories: nutrition.Progress(totals.Calories, g.Calories),
			Protein:  nutrition.Progress(totals.Protein, g.Protein),
			Carbs:    nutrition.Progress(totals.Carbs, g.Carbs),
			Fats:     nutrition.Progress(totals.Fats, g.Fats),
		},
	}
}
