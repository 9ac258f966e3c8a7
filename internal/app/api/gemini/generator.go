package gemini

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"pop-search/internal/app/model"
)

// GenerationSettings are the sampling parameters used for extraction.
type GenerationSettings struct {
	Temperature     float32
	TopP            float32
	TopK            float32
	MaxOutputTokens int32
}

// DefaultGenerationSettings keep the output close to deterministic while
// leaving room for long transcripts.
func DefaultGenerationSettings() GenerationSettings {
	return GenerationSettings{
		Temperature:     0.2,
		TopP:            0.95,
		TopK:            64,
		MaxOutputTokens: 65536,
	}
}

// Generator asks a Gemini model to describe an uploaded video as JSON.
type Generator struct {
	client   *genai.Client
	model    string
	settings GenerationSettings
}

// NewGenerator creates a Generator for modelName.
func NewGenerator(client *genai.Client, modelName string, settings GenerationSettings) *Generator {
	return &Generator{client: client, model: modelName, settings: settings}
}

// GenerateJSON sends instruction and the video reference in one user turn.
func (g *Generator) GenerateJSON(ctx context.Context, instruction string, asset model.ActiveAsset) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, buildContents(instruction, asset), g.config())
	if err != nil {
		return "", err
	}
	// An empty reply is returned as-is; callers treat it as undecodable.
	return responseText(resp), nil
}

func (g *Generator) config() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:      ptr(g.settings.Temperature),
		TopP:             ptr(g.settings.TopP),
		TopK:             ptr(g.settings.TopK),
		MaxOutputTokens:  g.settings.MaxOutputTokens,
		ResponseMIMEType: "application/json",
	}
}

func buildContents(instruction string, asset model.ActiveAsset) []*genai.Content {
	return []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{Text: instruction},
			{FileData: &genai.FileData{FileURI: asset.URI, MIMEType: asset.MIMEType}},
		},
	}}
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}
