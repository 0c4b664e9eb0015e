package estimator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
)

// Defaults of the Anthropic Messages API client.
const (
	AnthropicBaseURL = "https://api.anthropic.com"
	AnthropicModel   = "claude-sonnet-4-20250514"
	anthropicVersion = "2023-06-01"
)

// Anthropic estimates with Claude through the Messages API.
type Anthropic struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// NewAnthropic returns a client with the default model and endpoint.
func NewAnthropic(apiKey string) *Anthropic {
	return &Anthropic{
		APIKey:     apiKey,
		Model:      AnthropicModel,
		BaseURL:    AnthropicBaseURL,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (a *Anthropic) EstimateMeal(ctx context.Context, img Image) (model.Estimate, error) {
	text, err := a.ask(ctx, img, Prompt(false), 1000)
	if err != nil {
		return model.Estimate{}, err
	}
	return Parse(text, false)
}

func (a *Anthropic) EstimateRecipe(ctx context.Context, img Image) (model.Estimate, error) {
	text, err := a.ask(ctx, img, Prompt(true), 2000)
	if err != nil {
		return model.Estimate{}, err
	}
	return Parse(text, true)
}

type anthropicSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicBlock struct {
	Type   string           `json:"type"`
	Source *anthropicSource `json:"source,omitempty"`
	Text   string           `json:"text,omitempty"`
}

type anthropicMessage struct {
	Role    string           `json:"role"`
	Content []anthropicBlock `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

// ask sends the image and prompt and returns the concatenated text blocks
// of the answer.
func (a *Anthropic) ask(ctx context.Context, img Image, prompt string, maxTokens int) (string, error) {
	if a.APIKey == "" {
		return "", fmt.Errorf("%w: anthropic API key", ErrMissingCredential)
	}
	mediaType := img.MediaType
	if mediaType == "" {
		mediaType = "image/jpeg"
	}
	body, err := json.Marshal(anthropicRequest{
		Model:     a.Model,
		MaxTokens: maxTokens,
		Messages: []anthropicMessage{{
			Role: "user",
			Content: []anthropicBlock{
				{Type: "image", Source: &anthropicSource{
					Type:      "base64",
					MediaType: mediaType,
					Data:      base64.StdEncoding.EncodeToString(img.Data),
				}},
				{Type: "text", Text: prompt},
			},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	endpoint := strings.TrimRight(a.BaseURL, "/") + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	hc := a.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	var doc any
	jsonErr := json.Unmarshal(data, &doc)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(data))
		if jsonErr == nil {
			if m, err := jsonpath.Get("$.error.message", doc); err == nil {
				msg = fmt.Sprint(m)
			}
		}
		return "", fmt.Errorf("%w: anthropic API error %d: %s", ErrUnavailable, resp.StatusCode, msg)
	}
	if jsonErr != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, jsonErr)
	}

	texts, err := jsonpath.Get(`$.content[?(@.type == "text")].text`, doc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	var b strings.Builder
	if list, ok := texts.([]any); ok {
		for _, t := range list {
			if s, ok := t.(string); ok {
				b.WriteString(s)
			}
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: no text in response", ErrMalformedResponse)
	}
	return b.String(), nil
}
