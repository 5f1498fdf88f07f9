package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model name is configured
const DefaultGeminiModel = "gemini-2.0-flash"

// Gemini is a TextModel backed by the Gemini API. The key stays on the
// server; clients only see drafts.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a Gemini client. With an empty API key it returns a nil
// *Gemini and no error, so callers fall back to template drafts.
func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, nil
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetTopK(40)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(2048)
	model.ResponseMIMEType = "application/json"

	return &Gemini{client: client, model: model}, nil
}

// Close releases the underlying client
func (g *Gemini) Close() {
	if g == nil || g.client == nil {
		return
	}
	if err := g.client.Close(); err != nil {
		zap.S().Warnw("failed to close gemini client", "error", err)
	}
}

// Generate implements TextModel
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.model == nil {
		return "", fmt.Errorf("gemini model is not initialized")
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates in gemini response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("gemini response has no text")
	}
	return b.String(), nil
}
