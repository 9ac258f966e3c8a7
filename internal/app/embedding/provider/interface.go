package provider

import "context"

// TaskType tells the embedding model which side of a retrieval pair the
// text is on. Documents and queries are embedded differently.
type TaskType string

const (
	TaskRetrievalDocument TaskType = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    TaskType = "RETRIEVAL_QUERY"
)

// EmbeddingProvider defines the interface for all embedding providers
type EmbeddingProvider interface {
	// GenerateEmbedding generates an embedding vector for the given text
	GenerateEmbedding(ctx context.Context, text string, task TaskType) ([]float32, error)

	// GetProviderInfo returns metadata about the provider
	GetProviderInfo() ProviderInfo
}

// ProviderInfo contains metadata about an embedding provider
type ProviderInfo struct {
	Name      string // Provider name (e.g., "gemini", "mock")
	Model     string // Model identifier (e.g., "text-embedding-004")
	Dimension int    // Embedding dimension (768 for text-embedding-004)
}
