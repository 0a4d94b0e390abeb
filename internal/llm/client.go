// Package llm is the boundary to the external language model. Everything
// above it talks to the Completer interface; the Gemini implementation is
// constructed once in main and injected, so tests substitute a scripted
// completer instead of a live model.
package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the model used when no override is configured.
const DefaultModel = "gemini-2.5-flash"

// Completer is a text-completion style request: system instructions plus a
// user message in, raw response text out.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Gemini implements Completer against the GenAI API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed completer. The API key is read from the
// environment by the underlying client (GEMINI_API_KEY / GOOGLE_API_KEY).
func NewGemini(ctx context.Context, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("llm.NewGemini: create genai client: %w", err)
	}

	if model == "" {
		model = DefaultModel
	}

	return &Gemini{client: client, model: model}, nil
}

// Complete sends one request to the model and returns its raw text output.
func (g *Gemini) Complete(ctx context.Context, system, user string) (string, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: user},
			},
		},
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: system},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("llm: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("llm: empty response from model")
	}

	return text, nil
}
