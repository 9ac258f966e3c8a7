package services

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"pop-search/internal/api/dto"
	"pop-search/internal/api/errors"
	apperrors "pop-search/internal/app/errors"
	"pop-search/internal/app/model"
)

// Searcher runs a semantic search
type Searcher interface {
	Search(ctx context.Context, q model.SearchQuery) ([]model.SearchResult, error)
}

// SearchRecorder is told about every search
type SearchRecorder interface {
	RecordSearch(err error, results int)
}

// SearchServiceImpl implements SearchService
type SearchServiceImpl struct {
	searcher Searcher
	recorder SearchRecorder
	logger   *zap.Logger
}

// NewSearchService creates a new search service
func NewSearchService(searcher Searcher, recorder SearchRecorder, logger *zap.Logger) SearchService {
	return &SearchServiceImpl{searcher: searcher, recorder: recorder, logger: logger}
}

// Search applies request defaults and runs the query
func (s *SearchServiceImpl) Search(ctx context.Context, req *dto.SearchRequest) ([]model.SearchResult, error) {
	results, err := s.searcher.Search(ctx, req.ToQuery())
	if s.recorder != nil {
		s.recorder.RecordSearch(err, len(results))
	}
	if err != nil {
		if stderrors.Is(err, apperrors.ErrEmptyQuery) {
			return nil, errors.NewValidationError("Validation failed", map[string]string{"query": "is required"})
		}
		s.logger.Error("Search failed", zap.String("query", req.Query), zap.Error(err))
		return nil, errors.NewInternalError("Search failed")
	}
	return results, nil
}
