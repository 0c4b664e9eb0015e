// Package estimator turns a food photo into a best-effort nutrition
// estimate using a hosted vision model.
package estimator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
)

var (
	// ErrMissingCredential means no API key is configured for the provider.
	ErrMissingCredential = errors.New("missing API credential")
	// ErrUnavailable covers transport failures and non-2xx responses.
	ErrUnavailable = errors.New("estimator unavailable")
	// ErrMalformedResponse means the model answered without a usable estimate.
	ErrMalformedResponse = errors.New("malformed estimator response")
)

// Estimator analyzes a photo. On error the returned Estimate is zero.
type Estimator interface {
	// EstimateMeal identifies a single serving of food.
	EstimateMeal(ctx context.Context, img Image) (model.Estimate, error)
	// EstimateRecipe extracts or guesses a full recipe, instructions included.
	EstimateRecipe(ctx context.Context, img Image) (model.Estimate, error)
}

// Image is an encoded photo.
type Image struct {
	Data      []byte
	MediaType string
}

// LoadImage reads an image file and sniffs its media type.
func LoadImage(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, fmt.Errorf("reading image %s: %w", filepath.Base(path), err)
	}
	mt := http.DetectContentType(data)
	if !strings.HasPrefix(mt, "image/") {
		return Image{}, fmt.Errorf("%s is not an image (%s)", filepath.Base(path), mt)
	}
	return Image{Data: data, MediaType: mt}, nil
}

const mealPrompt = `Analyze this food image and provide nutritional estimates. ` +
	`Respond ONLY with a JSON object (no markdown, no backticks, no preamble) in this exact format: ` +
	`{"name": "food name", "calories": number, "protein": number, "carbs": number, "fats": number}. ` +
	`Estimate for a typical serving size.`

const recipePrompt = `Analyze this food/recipe image. If it's a recipe card or document, extract the recipe details. ` +
	`If it's a photo of food, identify it and estimate the recipe. ` +
	`Respond ONLY with a JSON object (no markdown, no backticks, no preamble) in this exact format: ` +
	`{"name": "recipe name", "calories": number, "protein": number, "carbs": number, "fats": number, ` +
	`"recipe": "ingredients and instructions as a string with newlines"}. ` +
	`Estimate nutritional values for a typical serving.`

// Prompt returns the instruction sent with the image.
func Prompt(recipe bool) string {
	if recipe {
		return recipePrompt
	}
	return mealPrompt
}

// Parse extracts an estimate from model output. Markdown code fences and
// text around the JSON object are ignored. The name and all four macros
// must be present; macros must be non-negative.
func Parse(text string, recipe bool) (model.Estimate, error) {
	cleaned := strings.NewReplacer("```json", "", "```", "").Replace(text)
	start, end := strings.Index(cleaned, "{"), strings.LastIndex(cleaned, "}")
	if start < 0 || end < start {
		return model.Estimate{}, fmt.Errorf("%w: no JSON object in %q", ErrMalformedResponse, abbreviate(text))
	}

	var raw struct {
		Name     *string  `json:"name"`
		Calories *float64 `json:"calories"`
		Protein  *float64 `json:"protein"`
		Carbs    *float64 `json:"carbs"`
		Fats     *float64 `json:"fats"`
		Recipe   *string  `json:"recipe"`
	}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &raw); err != nil {
		return model.Estimate{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if raw.Name == nil || strings.TrimSpace(*raw.Name) == "" {
		return model.Estimate{}, fmt.Errorf("%w: missing name", ErrMalformedResponse)
	}
	macros := []struct {
		field string
		v     *float64
	}{
		{"calories", raw.Calories},
		{"protein", raw.Protein},
		{"carbs", raw.Carbs},
		{"fats", raw.Fats},
	}
	for _, m := range macros {
		if m.v == nil {
			return model.Estimate{}, fmt.Errorf("%w: missing %s", ErrMalformedResponse, m.field)
		}
		if *m.v < 0 {
			return model.Estimate{}, fmt.Errorf("%w: negative %s", ErrMalformedResponse, m.field)
		}
	}

	e := model.Estimate{
		Name:     strings.TrimSpace(*raw.Name),
		Calories: *raw.Calories,
		Protein:  *raw.Protein,
		Carbs:    *raw.Carbs,
		Fats:     *raw.Fats,
	}
	if recipe && raw.Recipe != nil {
		e.Instructions = strings.TrimSpace(*raw.Recipe)
	}
	return e, nil
}

func abbreviate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 80 {
		return s[:77] + "..."
	}
	return s
}

// Provider names accepted by New.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Environment variables holding the API keys.
const (
	AnthropicKeyEnv = "ANTHROPIC_API_KEY"
	GeminiKeyEnv    = "GEMINI_API_KEY"
)

// New builds the estimator of provider with the API key found in the
// environment. An empty modelName selects the provider default.
func New(ctx context.Context, provider, modelName string) (Estimator, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderAnthropic:
		key := os.Getenv(AnthropicKeyEnv)
		if key == "" {
			return nil, fmt.Errorf("%w: set %s", ErrMissingCredential, AnthropicKeyEnv)
		}
		a := NewAnthropic(key)
		if modelName != "" {
			a.Model = modelName
		}
		return a, nil
	case ProviderGemini:
		key := os.Getenv(GeminiKeyEnv)
		if key == "" {
			return nil, fmt.Errorf("%w: set %s", ErrMissingCredential, GeminiKeyEnv)
		}
		return NewGemini(ctx, key, modelName)
	}
	return nil, fmt.Errorf("unknown estimator provider %q", provider)
}
