package vector

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"pop-search/internal/app/embedding/similarity"
	"pop-search/internal/app/model"
)

// MemoryStore keeps records in process. It backs tests and offline demos.
type MemoryStore struct {
	mu         sync.RWMutex
	records    []model.VideoRecord
	calculator similarity.SimilarityCalculator
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{calculator: similarity.NewCosineSimilarityCalculator()}
}

func (s *MemoryStore) Migrate(context.Context) error { return nil }

func (s *MemoryStore) Save(ctx context.Context, rec *model.VideoRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *rec)
	return rec.ID, nil
}

func (s *MemoryStore) SearchSimilar(ctx context.Context, vec []float32, threshold float64, limit int, _ string) ([]model.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := lo.KeyBy(s.records, func(r model.VideoRecord) string { return r.ID })
	candidates := lo.Map(s.records, func(r model.VideoRecord, _ int) similarity.Candidate {
		return similarity.Candidate{ID: r.ID, Vector: r.Embedding}
	})

	ranked := similarity.Rank(s.calculator, vec, candidates, threshold, limit)
	return lo.Map(ranked, func(sc similarity.Scored, _ int) model.SearchResult {
		r := byID[sc.ID]
		return model.SearchResult{
			ID:          r.ID,
			Title:       r.Metadata.Title,
			Description: r.Metadata.Description,
			SourceURL:   r.Metadata.SourceURL,
			Similarity:  sc.Similarity,
		}
	}), nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]model.VideoSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	records := append([]model.VideoRecord(nil), s.records...)
	s.mu.RUnlock()

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	records = lo.Slice(records, 0, listLimit(limit))

	return lo.Map(records, func(r model.VideoRecord, _ int) model.VideoSummary {
		return summaryOf(r)
	}), nil
}

func (s *MemoryStore) Close() error { return nil }

// Len reports how many records are stored
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func summaryOf(r model.VideoRecord) model.VideoSummary {
	tags := r.Metadata.Details.SearchTags
	if tags == nil {
		tags = []string{}
	}
	return model.VideoSummary{
		ID:          r.ID,
		Title:       r.Metadata.Title,
		Description: r.Metadata.Description,
		SourceURL:   r.Metadata.SourceURL,
		Tags:        tags,
		CreatedAt:   r.CreatedAt,
	}
}
