package ledger

import (
	"strings"

	"github.com/Tiliavir/trivial-meal-tracker/internal/calendar"
	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
	"github.com/Tiliavir/trivial-meal-tracker/internal/nutrition"
)

// SaveRecipe stores d as a reusable template.
func (l *Ledger) SaveRecipe(d model.Draft, instructions string) (model.RecipeTemplate, bool) {
	var recipe model.RecipeTemplate
	var ok bool
	l.update(func() field {
		var n model.NutritionTotals
		if n, ok = parseDraft(d); !ok {
			return 0
		}
		recipe = model.RecipeTemplate{
			ID:           l.newID(),
			Name:         strings.TrimSpace(d.Name),
			Calories:     n.Calories,
			Protein:      n.Protein,
			Carbs:        n.Carbs,
			Fats:         n.Fats,
			Instructions: strings.TrimSpace(instructions),
		}
		l.state.SavedRecipes = append(l.state.SavedRecipes, recipe)
		return fieldRecipes
	})
	return recipe, ok
}

// AddEstimatedRecipe stores an estimator's full-recipe answer as a template.
func (l *Ledger) AddEstimatedRecipe(e model.Estimate) (model.RecipeTemplate, bool) {
	var recipe model.RecipeTemplate
	var ok bool
	l.update(func() field {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return 0
		}
		recipe, ok = model.RecipeTemplate{
			ID:           l.newID(),
			Name:         name,
			Calories:     nutrition.Clamp(e.Calories),
			Protein:      nutrition.Clamp(e.Protein),
			Carbs:        nutrition.Clamp(e.Carbs),
			Fats:         nutrition.Clamp(e.Fats),
			Instructions: strings.TrimSpace(e.Instructions),
		}, true
		l.state.SavedRecipes = append(l.state.SavedRecipes, recipe)
		return fieldRecipes
	})
	return recipe, ok
}

// SeedRecipes adds templates whose names are not in the book yet and
// returns how many were added.
func (l *Ledger) SeedRecipes(templates []model.RecipeTemplate) int {
	var added int
	l.update(func() field {
		seen := map[string]bool{}
		for _, r := range l.state.SavedRecipes {
			seen[strings.ToLower(strings.TrimSpace(r.Name))] = true
		}
		for _, r := range templates {
			key := strings.ToLower(strings.TrimSpace(r.Name))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			r.ID = l.newID()
			l.state.SavedRecipes = append(l.state.SavedRecipes, r)
			added++
		}
		if added == 0 {
			return 0
		}
		return fieldRecipes
	})
	return added
}

// RemoveRecipe deletes a template. Entries created from it are unaffected.
func (l *Ledger) RemoveRecipe(id string) bool {
	var removed bool
	l.update(func() field {
		l.state.SavedRecipes, removed = removeByID(l.state.SavedRecipes, id, recipeID)
		if !removed {
			return 0
		}
		return fieldRecipes
	})
	return removed
}

// Recipes returns the recipe book in insertion order.
func (l *Ledger) Recipes() []model.RecipeTemplate {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.RecipeTemplate{}, l.state.SavedRecipes...)
}

// Recipe looks a template up by id.
func (l *Ledger) Recipe(id string) (model.RecipeTemplate, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := indexByID(l.state.SavedRecipes, id, recipeID)
	if i < 0 {
		return model.RecipeTemplate{}, false
	}
	return l.state.SavedRecipes[i], true
}

// UseRecipe returns the template's values as a pre-filled draft for the
// meal log or planned calendar forms. Nothing is mutated.
func (l *Ledger) UseRecipe(id string) (model.Draft, bool) {
	r, ok := l.Recipe(id)
	if !ok {
		return model.Draft{}, false
	}
	return model.Draft{
		Name:     r.Name,
		Calories: amountText(r.Calories),
		Protein:  amountText(r.Protein),
		Carbs:    amountText(r.Carbs),
		Fats:     amountText(r.Fats),
	}, true
}

// QuickLogRecipe copies a template straight into today's meal log.
func (l *Ledger) QuickLogRecipe(id string) (model.MealEntry, bool) {
	var meal model.MealEntry
	var ok bool
	l.update(func() field {
		i := indexByID(l.state.SavedRecipes, id, recipeID)
		if i < 0 {
			return 0
		}
		r := l.state.SavedRecipes[i]
		meal, ok = l.copyMeal(r.Name, r), true
		l.state.Meals = append(l.state.Meals, meal)
		return fieldMeals
	})
	return meal, ok
}

// ScheduleRecipe copies a template into the planned calendar.
func (l *Ledger) ScheduleRecipe(id string, day model.Weekday, slot string) (model.PlannedEntry, bool) {
	var entry model.PlannedEntry
	var ok bool
	l.update(func() field {
		i := indexByID(l.state.SavedRecipes, id, recipeID)
		if i < 0 || !day.Valid() {
			return 0
		}
		r := l.state.SavedRecipes[i]
		entry, ok = model.PlannedEntry{
			ID:       l.newID(),
			Name:     r.Name,
			Calories: r.Calories,
			Protein:  r.Protein,
			Carbs:    r.Carbs,
			Fats:     r.Fats,
			Day:      day,
			Time:     calendar.NormalizeTimeLabel(slot),
		}, true
		l.state.PlannedMeals = append(l.state.PlannedMeals, entry)
		return fieldPlanned
	})
	return entry, ok
}

func recipeID(r model.RecipeTemplate) string { return r.ID }
