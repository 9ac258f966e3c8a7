package embedding

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"pop-search/internal/app/embedding/provider"
	apperrors "pop-search/internal/app/errors"
	"pop-search/internal/app/model"
)

// Service turns video metadata and search queries into vectors of a fixed
// dimension.
type Service struct {
	provider  provider.EmbeddingProvider
	dimension int
	timeout   time.Duration
	logger    *zap.Logger
}

// NewService creates a Service. A non-positive dimension falls back to the
// provider's own.
func NewService(p provider.EmbeddingProvider, dimension int, logger *zap.Logger) *Service {
	if dimension <= 0 {
		dimension = p.GetProviderInfo().Dimension
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: p, dimension: dimension, logger: logger.Named("embedding")}
}

// WithTimeout bounds every embedding call by d. Zero means no bound.
func (s *Service) WithTimeout(d time.Duration) *Service {
	s.timeout = d
	return s
}

// Dimension is the length of every vector this service returns.
func (s *Service) Dimension() int {
	return s.dimension
}

// SearchableText renders the canonical text that gets embedded for a video.
// Sections are emitted in a fixed order and empty ones are left out.
func SearchableText(md *model.VideoMetadata) string {
	if md == nil {
		return ""
	}
	d := md.Details
	sections := []struct {
		label string
		value string
	}{
		{"Title", md.Title},
		{"Description", md.Description},
		{"People", strings.Join(md.PeopleDescriptions(), ", ")},
		{"Elements", strings.Join(d.SceneElements, ", ")},
		{"Audio", d.Audio.Transcript},
		{"Keywords", strings.Join(d.SearchTags, ", ")},
	}

	lines := make([]string, 0, len(sections))
	for _, s := range sections {
		v := strings.TrimSpace(s.value)
		if v == "" {
			continue
		}
		lines = append(lines, s.label+": "+v)
	}
	return strings.Join(lines, "\n")
}

// EmbedDocument embeds the canonical text of md for storage.
func (s *Service) EmbedDocument(ctx context.Context, md *model.VideoMetadata) (string, []float32, error) {
	text := SearchableText(md)
	vec, err := s.embed(ctx, text, provider.TaskRetrievalDocument)
	if err != nil {
		return "", nil, err
	}
	return text, vec, nil
}

// EmbedQuery embeds free search text.
func (s *Service) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.ErrEmptyQuery
	}
	return s.embed(ctx, text, provider.TaskRetrievalQuery)
}

func (s *Service) embed(ctx context.Context, text string, task provider.TaskType) ([]float32, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	vec, err := s.provider.GenerateEmbedding(ctx, text, task)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Wrap(apperrors.ErrTimeout, "embedding")
		}
		info := s.provider.GetProviderInfo()
		s.logger.Warn("embedding failed",
			zap.String("provider", info.Name),
			zap.String("task", string(task)),
			zap.Error(err))
		return nil, apperrors.Collaborator("embedder", info.Name, err)
	}
	if len(vec) != s.dimension {
		return nil, apperrors.Wrapf(apperrors.ErrDimensionMismatch,
			"got %d values, want %d", len(vec), s.dimension)
	}
	return vec, nil
}
