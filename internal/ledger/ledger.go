// Package ledger owns the meal tracker state: the live meal log, the
// recurring planned calendar, the recipe book, the dated journal and the
// daily goals. Every mutation runs to completion under one lock and then
// notifies the attached observers with the collections it changed.
package ledger

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Tiliavir/trivial-meal-tracker/internal/calendar"
	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
	"github.com/Tiliavir/trivial-meal-tracker/internal/nutrition"
)

// Observer receives the collections changed by a committed mutation. The
// patch holds copies and may be retained.
type Observer func(model.Patch)

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock replaces time.Now, which stamps meal times and date keys.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDs replaces the UUID generator used for new records.
func WithIDs(gen func() string) Option {
	return func(l *Ledger) { l.newID = gen }
}

// WithObserver attaches o at construction time.
func WithObserver(o Observer) Option {
	return func(l *Ledger) { l.observers = append(l.observers, o) }
}

// Ledger is the explicit state container of one user. It is safe for
// concurrent use; observers see patches in commit order and must not
// mutate the ledger themselves.
type Ledger struct {
	mu        sync.Mutex
	notify    sync.Mutex
	state     model.Snapshot
	now       func() time.Time
	newID     func() string
	observers []Observer
}

// New returns a ledger holding a copy of s. Journal days without meals
// are dropped and cached day totals are recomputed from the meals.
func New(s model.Snapshot, opts ...Option) *Ledger {
	state := cloneSnapshot(s)
	state.Journal = repairJournal(state.Journal)
	l := &Ledger{
		state: state,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Observe attaches o; it is called after every committed mutation.
func (l *Ledger) Observe(o Observer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, o)
}

// Snapshot returns a copy of the whole state.
func (l *Ledger) Snapshot() model.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneSnapshot(l.state)
}

// Today returns the journal date key of the ledger's current day.
func (l *Ledger) Today() string {
	return calendar.DateKey(l.now())
}

type field uint8

const (
	fieldMeals field = 1 << iota
	fieldJournal
	fieldPlanned
	fieldRecipes
	fieldGoals
)

// update runs fn under the lock and notifies observers of the fields it
// reports as changed. A zero result commits nothing.
func (l *Ledger) update(fn func() field) {
	l.mu.Lock()
	changed := fn()
	if changed == 0 {
		l.mu.Unlock()
		return
	}
	p := l.patchLocked(changed)
	observers := append([]Observer(nil), l.observers...)
	// Taken before releasing mu so notifications keep commit order.
	l.notify.Lock()
	l.mu.Unlock()
	defer l.notify.Unlock()

	for _, o := range observers {
		o(p)
	}
}

func (l *Ledger) patchLocked(changed field) model.Patch {
	var p model.Patch
	if changed&fieldMeals != 0 {
		meals := cloneMeals(l.state.Meals)
		p.Meals = &meals
	}
	if changed&fieldJournal != 0 {
		journal := cloneJournal(l.state.Journal)
		p.Journal = &journal
	}
	if changed&fieldPlanned != 0 {
		planned := append([]model.PlannedEntry{}, l.state.PlannedMeals...)
		p.PlannedMeals = &planned
	}
	if changed&fieldRecipes != 0 {
		recipes := append([]model.RecipeTemplate{}, l.state.SavedRecipes...)
		p.SavedRecipes = &recipes
	}
	if changed&fieldGoals != 0 {
		goals := l.state.DailyGoals
		p.DailyGoals = &goals
	}
	return p
}

// newMeal validates d and builds an entry stamped with d.Time, or with the
// current time when d has none. A blank name or unparsable calories rejects
// the draft.
func (l *Ledger) newMeal(d model.Draft) (model.MealEntry, bool) {
	n, ok := parseDraft(d)
	if !ok {
		return model.MealEntry{}, false
	}
	stamp := calendar.NormalizeTimeLabel(d.Time)
	if stamp == "" {
		stamp = calendar.TimeLabel(l.now())
	}
	return model.MealEntry{
		ID:       l.newID(),
		Name:     strings.TrimSpace(d.Name),
		Calories: n.Calories,
		Protein:  n.Protein,
		Carbs:    n.Carbs,
		Fats:     n.Fats,
		Time:     stamp,
	}, true
}

// copyMeal turns any macro record into a fresh meal log entry.
func (l *Ledger) copyMeal(name string, m model.Macros) model.MealEntry {
	n := m.Nutrition()
	return model.MealEntry{
		ID:       l.newID(),
		Name:     name,
		Calories: n.Calories,
		Protein:  n.Protein,
		Carbs:    n.Carbs,
		Fats:     n.Fats,
		Time:     calendar.TimeLabel(l.now()),
	}
}

func parseDraft(d model.Draft) (model.NutritionTotals, bool) {
	if strings.TrimSpace(d.Name) == "" {
		return model.NutritionTotals{}, false
	}
	cal, ok := nutrition.ParseAmount(d.Calories)
	if !ok {
		return model.NutritionTotals{}, false
	}
	return model.NutritionTotals{
		Calories: cal,
		Protein:  nutrition.Coerce(d.Protein),
		Carbs:    nutrition.Coerce(d.Carbs),
		Fats:     nutrition.Coerce(d.Fats),
	}, true
}

func amountText(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func cloneMeals(meals []model.MealEntry) []model.MealEntry {
	return append([]model.MealEntry{}, meals...)
}

func cloneJournal(days []model.JournalDay) []model.JournalDay {
	out := make([]model.JournalDay, len(days))
	for i, d := range days {
		out[i] = d
		out[i].Meals = cloneMeals(d.Meals)
	}
	return out
}

func cloneSnapshot(s model.Snapshot) model.Snapshot {
	out := model.Snapshot{
		Meals:        cloneMeals(s.Meals),
		Journal:      cloneJournal(s.Journal),
		PlannedMeals: append([]model.PlannedEntry{}, s.PlannedMeals...),
		SavedRecipes: append([]model.RecipeTemplate{}, s.SavedRecipes...),
		DailyGoals:   s.DailyGoals,
	}
	return out
}
