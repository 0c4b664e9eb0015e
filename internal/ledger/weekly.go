package ledger

import (
	"time"

	"github.com/Tiliavir/trivial-meal-tracker/internal/calendar"
	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
	"github.com/Tiliavir/trivial-meal-tracker/internal/nutrition"
)

// Source tells where the meals of a DayView come from.
type Source string

const (
	SourceJournal Source = "journal"
	SourceLive    Source = "live"
	SourceNone    Source = "none"
)

// DayView is one column of the weekly view.
type DayView struct {
	Weekday model.Weekday
	Date    string
	Today   bool
	Source  Source
	Meals   []model.MealEntry
	Totals  model.NutritionTotals
	Planned []model.PlannedEntry
}

// HasData reports whether the day contributes to the weekly aggregate.
func (d DayView) HasData() bool { return d.Source != SourceNone }

// WeekView is the Monday-to-Sunday summary of a week.
type WeekView struct {
	Start       time.Time
	Label       string
	Days        []DayView
	Total       model.NutritionTotals
	Average     model.NutritionTotals
	CountedDays int
}

// Week builds the view of the week containing the ledger's current time.
func (l *Ledger) Week() WeekView {
	return l.WeekOf(l.now())
}

// WeekOf builds the view of the week containing t. A day uses its journal
// entry when one exists; otherwise today falls back to the live meal log.
// The average divides by the days whose calorie total is non-zero.
func (l *Ledger) WeekOf(t time.Time) WeekView {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	start, _ := calendar.WeekRange(t)
	w := WeekView{Start: start, Label: calendar.ISOWeekLabel(t)}

	var withData []model.NutritionTotals
	for _, day := range calendar.WeekDays(t) {
		v := DayView{
			Weekday: calendar.Weekday(day),
			Date:    calendar.DateKey(day),
			Today:   calendar.SameDay(day, now),
			Source:  SourceNone,
			Meals:   []model.MealEntry{},
		}
		v.Planned = plannedByDay(l.state.PlannedMeals, v.Weekday)
		if i := l.dayIndexLocked(v.Date); i >= 0 {
			j := l.state.Journal[i]
			v.Source = SourceJournal
			v.Meals = cloneMeals(j.Meals)
			v.Totals = j.Totals
		} else if v.Today && len(l.state.Meals) > 0 {
			v.Source = SourceLive
			v.Meals = cloneMeals(l.state.Meals)
			v.Totals = nutrition.Sum(l.state.Meals...)
		}
		if v.HasData() {
			withData = append(withData, v.Totals)
		}
		w.Days = append(w.Days, v)
	}

	w.Total = nutrition.Sum(withData...)
	for _, d := range withData {
		if d.Calories != 0 {
			w.CountedDays++
		}
	}
	w.Average = nutrition.Average(w.Total, w.CountedDays)
	return w
}
