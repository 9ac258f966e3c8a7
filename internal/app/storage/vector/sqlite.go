package vector

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"pop-search/internal/app/embedding/similarity"
	"pop-search/internal/app/model"
)

// timeLayout has fixed width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements VideoStore on an embedded SQLite file. Vectors are
// stored as JSON and ranked in process.
type SQLiteStore struct {
	db         *sql.DB
	calculator similarity.SimilarityCalculator
	now        func() time.Time
}

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return NewSQLiteStore(db), nil
}

// NewSQLiteStore wraps an open SQLite handle
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{
		db:         db,
		calculator: similarity.NewCosineSimilarityCalculator(),
		now:        time.Now,
	}
}

// Migrate creates the videos table
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS videos (
			id TEXT PRIMARY KEY,
			titulo_video TEXT NOT NULL,
			descricao_completa TEXT,
			resumo TEXT,
			url_original TEXT NOT NULL,
			tags_busca TEXT NOT NULL DEFAULT '[]',
			metadata TEXT NOT NULL,
			searchable_text TEXT NOT NULL,
			embedding TEXT NOT NULL,
			created_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate videos schema: %w", err)
	}
	return nil
}

// Save inserts a record. A record without an id gets a new UUID.
func (s *SQLiteStore) Save(ctx context.Context, rec *model.VideoRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.CreatedAt = s.now().UTC()

	metadata, err := json.Marshal(rec.Metadata)
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	tags, err := json.Marshal(rec.Metadata.Details.SearchTags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	embedding, err := json.Marshal(rec.Embedding)
	if err != nil {
		return "", fmt.Errorf("failed to encode embedding: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO videos (id, titulo_video, descricao_completa, url_original, tags_busca, metadata, searchable_text, embedding, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.Metadata.Title,
		rec.Metadata.Description,
		rec.Metadata.SourceURL,
		string(tags),
		string(metadata),
		rec.SearchableText,
		string(embedding),
		rec.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save video: %w", err)
	}

	return rec.ID, nil
}

// SearchSimilar scores every stored vector against vec
func (s *SQLiteStore) SearchSimilar(ctx context.Context, vec []float32, threshold float64, limit int, _ string) ([]model.SearchResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, titulo_video, COALESCE(descricao_completa, ''), COALESCE(resumo, ''), url_original, embedding
		FROM videos
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]model.SearchResult)
	var candidates []similarity.Candidate
	for rows.Next() {
		var r model.SearchResult
		var raw string
		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &r.Summary, &r.SourceURL, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		var stored []float32
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			return nil, fmt.Errorf("failed to decode embedding of %s: %w", r.ID, err)
		}
		byID[r.ID] = r
		candidates = append(candidates, similarity.Candidate{ID: r.ID, Vector: stored})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read videos: %w", err)
	}

	ranked := similarity.Rank(s.calculator, vec, candidates, threshold, limit)
	results := make([]model.SearchResult, 0, len(ranked))
	for _, sc := range ranked {
		r := byID[sc.ID]
		r.Similarity = sc.Similarity
		results = append(results, r)
	}
	return results, nil
}

// List returns the most recent videos without their embeddings
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]model.VideoSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, titulo_video, COALESCE(descricao_completa, ''), url_original, tags_busca, created_at
		FROM videos
		ORDER BY created_at DESC
		LIMIT ?
	`, listLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	videos := make([]model.VideoSummary, 0)
	for rows.Next() {
		var v model.VideoSummary
		var tags, createdAt string
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.SourceURL, &tags, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &v.Tags); err != nil || v.Tags == nil {
			v.Tags = []string{}
		}
		if v.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at of %s: %w", v.ID, err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read videos: %w", err)
	}

	return videos, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
