package services

import (
	"context"
	"io"

	"pop-search/internal/api/dto"
	"pop-search/internal/app/model"
)

// VideoService defines the interface for video analysis and indexing
type VideoService interface {
	Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*model.VideoMetadata, error)
	Index(ctx context.Context, req *dto.IndexVideoRequest) (*dto.IndexVideoResponse, error)
	List(ctx context.Context, query dto.ListVideosQuery) ([]model.VideoSummary, error)
	Export(ctx context.Context, w io.Writer) error
}

// SearchService defines the interface for semantic search
type SearchService interface {
	Search(ctx context.Context, req *dto.SearchRequest) ([]model.SearchResult, error)
}
