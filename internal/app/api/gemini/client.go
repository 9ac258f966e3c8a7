package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// NewClient creates a Gemini Developer API client.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}
	return client, nil
}

func ptr[T any](v T) *T {
	return &v
}
