// Package gemini implements report generation using Google Gemini.
package gemini

import (
	"context"

	"github.com/startuppulse/harvest"
	"google.golang.org/genai"
)

// Models for the two generation passes. Cleaning compresses the raw
// article dump and tolerates a cheaper model; composition writes the
// final report.
const (
	CleaningModel    = "gemini-2.0-flash"
	CompositionModel = "gemini-2.5-pro"
)

// Ensure Summarizer implements harvest.Summarizer at compile time.
var _ harvest.Summarizer = (*Summarizer)(nil)

// Summarizer implements harvest.Summarizer using Google Gemini.
type Summarizer struct {
	client *genai.Client
	model  string
}

// NewSummarizer creates a Summarizer bound to the given model.
func NewSummarizer(client *genai.Client, model string) *Summarizer {
	return &Summarizer{client: client, model: model}
}

// Generate runs the prompt through the model and returns the raw text.
func (s *Summarizer) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", harvest.Errorf(harvest.EINVALID, "prompt required")
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		buildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", harvest.Errorf(harvest.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// buildConfig returns the GenerateContentConfig for Gemini API calls.
func buildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		Temperature: &temp,
	}
}
