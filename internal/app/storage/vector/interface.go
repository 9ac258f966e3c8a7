package vector

import (
	"context"

	"pop-search/internal/app/model"
)

// VideoStore persists analyzed videos with their embeddings and answers
// similarity queries over them.
type VideoStore interface {
	// Migrate creates the schema if it does not exist yet
	Migrate(ctx context.Context) error

	// Save stores a record and returns its id
	Save(ctx context.Context, rec *model.VideoRecord) (string, error)

	// SearchSimilar returns at most limit rows with similarity >= threshold,
	// ordered by similarity descending. text is the raw query, used only to
	// break ties between equally similar rows.
	SearchSimilar(ctx context.Context, vec []float32, threshold float64, limit int, text string) ([]model.SearchResult, error)

	// List returns the most recently stored videos
	List(ctx context.Context, limit int) ([]model.VideoSummary, error)

	// Lifecycle
	Close() error
}

const DefaultListLimit = 50

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
