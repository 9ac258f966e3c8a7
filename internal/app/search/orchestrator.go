package search

import (
	"context"
	"strings"

	"go.uber.org/zap"

	apperrors "pop-search/internal/app/errors"
	"pop-search/internal/app/model"
)

// QueryEmbedder turns search text into a vector.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// SimilaritySearcher ranks stored vectors against a query vector.
type SimilaritySearcher interface {
	SearchSimilar(ctx context.Context, vec []float32, threshold float64, limit int, text string) ([]model.SearchResult, error)
}

// Orchestrator runs a semantic search: embed the query, then rank.
type Orchestrator struct {
	embedder QueryEmbedder
	searcher SimilaritySearcher
	logger   *zap.Logger
}

// NewOrchestrator creates a search orchestrator
func NewOrchestrator(embedder QueryEmbedder, searcher SimilaritySearcher, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{embedder: embedder, searcher: searcher, logger: logger.Named("search")}
}

// Search returns the searcher's rows unchanged. A non-positive limit takes
// the default; the threshold is used as given. An empty result is an empty
// slice, never nil.
func (o *Orchestrator) Search(ctx context.Context, q model.SearchQuery) ([]model.SearchResult, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return nil, &apperrors.SearchError{Query: q.Text, Err: apperrors.ErrEmptyQuery}
	}
	if q.Limit <= 0 {
		q.Limit = model.DefaultSearchLimit
	}

	vec, err := o.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, &apperrors.SearchError{Query: text, Err: err}
	}

	results, err := o.searcher.SearchSimilar(ctx, vec, q.Threshold, q.Limit, text)
	if err != nil {
		return nil, &apperrors.SearchError{Query: text, Err: apperrors.Collaborator("searcher", "search_similar", err)}
	}
	if results == nil {
		results = []model.SearchResult{}
	}

	o.logger.Debug("search completed",
		zap.String("query", text),
		zap.Int("limit", q.Limit),
		zap.Float64("threshold", q.Threshold),
		zap.Int("results", len(results)))

	return results, nil
}
