package llm

import (
	"context"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// Gemini answers prompts with Google Gemini.
type Gemini struct {
	client *genai.Client
	Options
}

var _ Streamer = (*Gemini)(nil)

func NewGemini(client *genai.Client, opts ...Option) *Gemini {
	return &Gemini{
		client:  client,
		Options: newOptions(DefaultGeminiModel, opts),
	}
}

// NewGeminiClient connects to the Gemini API with an api key. An empty
// baseURL keeps the Google endpoint.
func NewGeminiClient(ctx context.Context, apiKey string, baseURL string) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
}

func (g *Gemini) Answer(ctx context.Context, prompt string) (string, error) {
	temperature := g.temperature
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: &temperature,
	})
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", ErrEmptyAnswer
	}
	txt := result.Text()
	if txt == "" {
		return "", ErrEmptyAnswer
	}
	return txt, nil
}

func (g *Gemini) Stream(ctx context.Context, prompt string, fn func(delta string) error) error {
	temperature := g.temperature
	var parts int
	for result, err := range g.client.Models.GenerateContentStream(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: &temperature,
	}) {
		if err != nil {
			return err
		}
		if result == nil {
			continue
		}
		if txt := result.Text(); txt != "" {
			parts++
			if err := fn(txt); err != nil {
				return err
			}
		}
	}
	if parts == 0 {
		return ErrEmptyAnswer
	}
	return nil
}
