package estimator

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
)

// GeminiModel is the default Gemini model.
const GeminiModel = "gemini-2.5-flash"

// contentGenerator is the part of genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini estimates with Google's Gemini API.
type Gemini struct {
	models contentGenerator
	Model  string
}

// NewGemini creates a Gemini API client. An empty modelName selects
// GeminiModel.
func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini API key", ErrMissingCredential)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if modelName == "" {
		modelName = GeminiModel
	}
	return &Gemini{models: client.Models, Model: modelName}, nil
}

func (g *Gemini) EstimateMeal(ctx context.Context, img Image) (model.Estimate, error) {
	text, err := g.ask(ctx, img, Prompt(false))
	if err != nil {
		return model.Estimate{}, err
	}
	return Parse(text, false)
}

func (g *Gemini) EstimateRecipe(ctx context.Context, img Image) (model.Estimate, error) {
	text, err := g.ask(ctx, img, Prompt(true))
	if err != nil {
		return model.Estimate{}, err
	}
	return Parse(text, true)
}

func (g *Gemini) ask(ctx context.Context, img Image, prompt string) (string, error) {
	mediaType := img.MediaType
	if mediaType == "" {
		mediaType = "image/jpeg"
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(img.Data, mediaType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}
	resp, err := g.models.GenerateContent(ctx, g.Model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return responseText(resp)
}

// responseText joins the text parts of the first candidate, skipping
// thought summaries.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", ErrMalformedResponse)
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		b.WriteString(p.Text)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: no text in response", ErrMalformedResponse)
	}
	return b.String(), nil
}
