package firestore

import (
	"context"
	"fmt"

	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
)

// DefaultCollection holds one document per user key.
const DefaultCollection = "users"

// Provider stores the snapshot of a user key as the fields of the document
// {collection}/{key}.
type Provider struct {
	client     *Client
	collection string
}

// NewProvider returns a Provider over c. An empty collection means
// DefaultCollection.
func NewProvider(c *Client, collection string) *Provider {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Provider{client: c, collection: collection}
}

// Load reads the user document. Fields the document lacks keep their
// defaults.
func (p *Provider) Load(ctx context.Context, userKey string) (model.Snapshot, error) {
	doc, err := p.client.GetDocument(ctx, p.collection+"/"+userKey)
	if err != nil {
		return model.Snapshot{}, err
	}

	s := model.NewSnapshot()
	targets := map[string]any{
		"meals":        &s.Meals,
		"journal":      &s.Journal,
		"plannedMeals": &s.PlannedMeals,
		"savedRecipes": &s.SavedRecipes,
		"dailyGoals":   &s.DailyGoals,
	}
	for name, v := range doc.Fields {
		target, ok := targets[name]
		if !ok {
			continue
		}
		if err := Decode(v, target); err != nil {
			return model.Snapshot{}, fmt.Errorf("field %s: %w", name, err)
		}
	}
	s.Normalize()
	return s, nil
}

// Save patches the fields present in patch; the update mask keeps the
// others untouched.
func (p *Provider) Save(ctx context.Context, userKey string, patch model.Patch) error {
	values := map[string]any{}
	if patch.Meals != nil {
		values["meals"] = *patch.Meals
	}
	if patch.Journal != nil {
		values["journal"] = *patch.Journal
	}
	if patch.PlannedMeals != nil {
		values["plannedMeals"] = *patch.PlannedMeals
	}
	if patch.SavedRecipes != nil {
		values["savedRecipes"] = *patch.SavedRecipes
	}
	if patch.DailyGoals != nil {
		values["dailyGoals"] = *patch.DailyGoals
	}

	mask := patch.Fields()
	if len(mask) == 0 {
		return nil
	}
	fields := make(map[string]Value, len(mask))
	for _, name := range mask {
		v, err := Encode(values[name])
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		fields[name] = v
	}
	return p.client.PatchDocument(ctx, p.collection+"/"+userKey, fields, mask)
}
