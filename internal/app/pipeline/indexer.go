package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	apperrors "pop-search/internal/app/errors"
	"pop-search/internal/app/model"
)

// DocumentEmbedder builds the canonical text and vector for metadata.
type DocumentEmbedder interface {
	EmbedDocument(ctx context.Context, md *model.VideoMetadata) (string, []float32, error)
}

// VideoRepository persists indexed videos.
type VideoRepository interface {
	Save(ctx context.Context, rec *model.VideoRecord) (string, error)
}

// Indexer embeds metadata and stores it for search.
type Indexer struct {
	embedder DocumentEmbedder
	repo     VideoRepository
	logger   *zap.Logger
}

// NewIndexer creates an indexer
func NewIndexer(embedder DocumentEmbedder, repo VideoRepository, logger *zap.Logger) *Indexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Indexer{embedder: embedder, repo: repo, logger: logger.Named("indexer")}
}

// Index stores md and returns the new record id. md must carry its source URL.
func (i *Indexer) Index(ctx context.Context, md *model.VideoMetadata) (string, error) {
	if md == nil || strings.TrimSpace(md.SourceURL) == "" {
		return "", apperrors.ErrMissingSourceURL
	}
	md.Normalize()
	md.SourceURL = strings.TrimSpace(md.SourceURL)

	text, vec, err := i.embedder.EmbedDocument(ctx, md)
	if err != nil {
		return "", err
	}

	rec := &model.VideoRecord{Metadata: *md, SearchableText: text, Embedding: vec}
	id, err := i.repo.Save(ctx, rec)
	if err != nil {
		return "", apperrors.Collaborator("repository", "save", err)
	}

	i.logger.Info("Video indexed",
		zap.String("id", id),
		zap.String("url", md.SourceURL),
		zap.String("title", md.Title))
	return id, nil
}
