package similarity

import (
	"errors"
	"math"
	"sort"
)

// SimilarityCalculator defines the interface for similarity calculations
type SimilarityCalculator interface {
	Calculate(a, b []float32) (float64, error)
}

// CosineSimilarityCalculator implements cosine similarity calculation
type CosineSimilarityCalculator struct{}

// NewCosineSimilarityCalculator creates a new cosine similarity calculator
func NewCosineSimilarityCalculator() *CosineSimilarityCalculator {
	return &CosineSimilarityCalculator{}
}

// Calculate computes cosine similarity between two vectors. Accumulation
// happens in float64 so scores match what pgvector reports for 1 - (a <=> b).
func (c *CosineSimilarityCalculator) Calculate(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.New("vectors must have same dimension")
	}

	if len(a) == 0 {
		return 0, nil
	}

	var dotProduct, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dotProduct += x * y
		normA += x * x
		normB += y * y
	}

	// Handle zero vectors
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Candidate is a stored vector waiting to be scored.
type Candidate struct {
	ID     string
	Vector []float32
}

// Scored is a candidate that passed the threshold.
type Scored struct {
	ID         string
	Similarity float64
}

// Rank scores candidates against query, keeps those at or above threshold,
// and returns at most limit of them ordered by similarity descending. Ties
// keep candidate order. Candidates of the wrong dimension are skipped.
func Rank(calc SimilarityCalculator, query []float32, candidates []Candidate, threshold float64, limit int) []Scored {
	scored := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		sim, err := calc.Calculate(query, c.Vector)
		if err != nil || sim < threshold {
			continue
		}
		scored = append(scored, Scored{ID: c.ID, Similarity: sim})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
