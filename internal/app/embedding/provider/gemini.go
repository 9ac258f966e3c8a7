package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	DefaultGeminiModel     = "text-embedding-004"
	DefaultGeminiDimension = 768
)

// GeminiProvider implements EmbeddingProvider using the Gemini embedding API
type GeminiProvider struct {
	client    *genai.Client
	model     string
	dimension int
}

// NewGeminiProvider creates a new Gemini embedding provider. Empty model and
// zero dimension fall back to the defaults.
func NewGeminiProvider(client *genai.Client, model string, dimension int) *GeminiProvider {
	if model == "" {
		model = DefaultGeminiModel
	}
	if dimension <= 0 {
		dimension = DefaultGeminiDimension
	}
	return &GeminiProvider{
		client:    client,
		model:     model,
		dimension: dimension,
	}
}

// GenerateEmbedding generates an embedding using the Gemini API
func (g *GeminiProvider) GenerateEmbedding(ctx context.Context, text string, task TaskType) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("empty text provided")
	}

	dim := int32(g.dimension)
	resp, err := g.client.Models.EmbedContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: text}}}},
		&genai.EmbedContentConfig{
			TaskType:             string(task),
			OutputDimensionality: &dim,
		})
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, errors.New("gemini embed: no embedding returned")
	}

	return resp.Embeddings[0].Values, nil
}

// GetProviderInfo returns information about the Gemini provider
func (g *GeminiProvider) GetProviderInfo() ProviderInfo {
	return ProviderInfo{
		Name:      "gemini",
		Model:     g.model,
		Dimension: g.dimension,
	}
}
