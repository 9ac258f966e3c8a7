package vector

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"pop-search/internal/app/model"
)

// PgVectorStore implements VideoStore using PostgreSQL with the pgvector extension
type PgVectorStore struct {
	db        *sql.DB
	dimension int
}

// NewPgVectorStore creates a new PostgreSQL vector store. dimension sizes the
// embedding column created by Migrate.
func NewPgVectorStore(db *sql.DB, dimension int) *PgVectorStore {
	return &PgVectorStore{db: db, dimension: dimension}
}

// Migrate creates the videos table and its cosine index
func (s *PgVectorStore) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS videos (
			id UUID PRIMARY KEY,
			titulo_video TEXT NOT NULL,
			descricao_completa TEXT,
			resumo TEXT,
			url_original TEXT NOT NULL,
			tags_busca TEXT[] NOT NULL DEFAULT '{}',
			metadata JSONB NOT NULL,
			searchable_text TEXT NOT NULL,
			embedding vector(%d) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, s.dimension),
		`CREATE INDEX IF NOT EXISTS videos_embedding_idx ON videos USING hnsw (embedding vector_cosine_ops)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate videos schema: %w", err)
		}
	}
	return nil
}

// Save inserts a record. A record without an id gets a new UUID.
func (s *PgVectorStore) Save(ctx context.Context, rec *model.VideoRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	metadata, err := json.Marshal(rec.Metadata)
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}

	query := `
		INSERT INTO videos (id, titulo_video, descricao_completa, url_original, tags_busca, metadata, searchable_text, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err = s.db.QueryRowContext(ctx, query,
		rec.ID,
		rec.Metadata.Title,
		rec.Metadata.Description,
		rec.Metadata.SourceURL,
		pq.Array(rec.Metadata.Details.SearchTags),
		metadata,
		rec.SearchableText,
		pgvector.NewVector(rec.Embedding),
	).Scan(&rec.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to save video: %w", err)
	}

	return rec.ID, nil
}

// SearchSimilar ranks stored videos by cosine similarity to vec
func (s *PgVectorStore) SearchSimilar(ctx context.Context, vec []float32, threshold float64, limit int, text string) ([]model.SearchResult, error) {
	query := `
		SELECT id, titulo_video, COALESCE(descricao_completa, ''), COALESCE(resumo, ''), url_original, similarity
		FROM (
			SELECT id, titulo_video, descricao_completa, resumo, url_original,
				1 - (embedding <=> $1) AS similarity,
				ts_rank(to_tsvector('simple', searchable_text), plainto_tsquery('simple', $4)) AS lexical
			FROM videos
		) ranked
		WHERE similarity >= $2
		ORDER BY similarity DESC, lexical DESC
		LIMIT $3
	`

	rows, err := s.db.QueryContext(ctx, query, pgvector.NewVector(vec), threshold, limit, text)
	if err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}
	defer rows.Close()

	results := make([]model.SearchResult, 0, limit)
	for rows.Next() {
		var r model.SearchResult
		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &r.Summary, &r.SourceURL, &r.Similarity); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read search results: %w", err)
	}

	return results, nil
}

// List returns the most recent videos without their embeddings
func (s *PgVectorStore) List(ctx context.Context, limit int) ([]model.VideoSummary, error) {
	query := `
		SELECT id, titulo_video, COALESCE(descricao_completa, ''), url_original, tags_busca, created_at
		FROM videos
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, listLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	videos := make([]model.VideoSummary, 0)
	for rows.Next() {
		var v model.VideoSummary
		var tags []string
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.SourceURL, pq.Array(&tags), &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		if tags == nil {
			tags = []string{}
		}
		v.Tags = tags
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read videos: %w", err)
	}

	return videos, nil
}

// Close closes the database connection
func (s *PgVectorStore) Close() error {
	return s.db.Close()
}
