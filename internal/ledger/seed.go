package ledger

import (
	"fmt"
	"strings"

	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
)

func sample(name string, cal, pro, carb, fat float64, ingredients, steps []string) model.RecipeTemplate {
	var b strings.Builder
	b.WriteString(strings.Join(ingredients, "\n"))
	b.WriteString("\n\nInstructions:")
	for i, s := range steps {
		fmt.Fprintf(&b, "\n%d. %s", i+1, s)
	}
	return model.RecipeTemplate{
		Name:         name,
		Calories:     cal,
		Protein:      pro,
		Carbs:        carb,
		Fats:         fat,
		Instructions: b.String(),
	}
}

// SampleRecipes returns the starter recipe book. IDs are left empty;
// SeedRecipes assigns them.
func SampleRecipes() []model.RecipeTemplate {
	return []model.RecipeTemplate{
		sample("Greek Yogurt Bowl", 320, 28, 35, 8,
			[]string{"1 cup Greek yogurt", "1/2 cup granola", "1/2 cup mixed berries", "1 tbsp honey"},
			[]string{"Place Greek yogurt in a bowl", "Top with granola and berries", "Drizzle with honey"}),
		sample("Grilled Chicken Breast", 285, 53, 0, 6,
			[]string{"6 oz chicken breast", "Salt and pepper", "1 tsp olive oil"},
			[]string{"Season chicken with salt and pepper", "Heat grill or pan to medium-high", "Brush with olive oil", "Cook 6-7 minutes per side until internal temp reaches 165°F"}),
		sample("Scrambled Eggs (3 eggs)", 240, 18, 2, 18,
			[]string{"3 large eggs", "1 tbsp butter", "Salt and pepper"},
			[]string{"Beat eggs in a bowl", "Melt butter in pan over medium heat", "Pour in eggs and gently stir", "Cook until just set, about 2-3 minutes"}),
		sample("Protein Smoothie", 350, 40, 38, 6,
			[]string{"1 scoop protein powder", "1 banana", "1 cup almond milk", "1 tbsp peanut butter", "1 cup ice"},
			[]string{"Add all ingredients to blender", "Blend until smooth", "Add more milk if too thick"}),
		sample("Tuna Salad", 300, 35, 12, 12,
			[]string{"1 can tuna, drained", "2 tbsp light mayo", "1/4 cup diced celery", "1/4 cup diced onion", "Lettuce leaves"},
			[]string{"Mix tuna, mayo, celery, and onion", "Season with salt and pepper", "Serve over lettuce leaves"}),
		sample("Cottage Cheese & Fruit", 220, 24, 28, 3,
			[]string{"1 cup low-fat cottage cheese", "1/2 cup pineapple chunks", "1/2 cup sliced strawberries"},
			[]string{"Place cottage cheese in bowl", "Top with fruit", "Optional: add cinnamon"}),
		sample("Turkey & Avocado Wrap", 420, 32, 38, 16,
			[]string{"1 whole wheat tortilla", "4 oz sliced turkey breast", "1/4 avocado, sliced", "Lettuce and tomato", "1 tbsp mustard"},
			[]string{"Lay tortilla flat", "Layer turkey, avocado, lettuce, tomato", "Spread with mustard", "Roll tightly and slice in half"}),
		sample("Salmon Fillet", 360, 40, 0, 22,
			[]string{"6 oz salmon fillet", "1 tsp olive oil", "Lemon juice", "Salt, pepper, garlic powder"},
			[]string{"Preheat oven to 400°F", "Season salmon with spices", "Drizzle with oil and lemon", "Bake 12-15 minutes until flaky"}),
		sample("Protein Oatmeal", 380, 30, 48, 8,
			[]string{"1/2 cup oats", "1 cup water", "1 scoop protein powder", "1 tbsp almond butter", "1/2 banana, sliced"},
			[]string{"Cook oats in water per package directions", "Stir in protein powder", "Top with almond butter and banana"}),
		sample("Beef Stir Fry", 450, 38, 32, 18,
			[]string{"6 oz beef strips", "2 cups mixed vegetables", "2 tbsp soy sauce", "1 tbsp sesame oil", "1 clove garlic, minced"},
			[]string{"Heat oil in wok or large pan", "Cook beef until browned, remove", "Stir fry vegetables 3-4 minutes", "Add beef back, add soy sauce and garlic", "Cook 2 more minutes"}),
	}
}
