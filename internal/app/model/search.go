package model

import "time"

const (
	DefaultSearchLimit     = 5
	DefaultSearchThreshold = 0.5
)

// SearchQuery is a semantic search request against stored videos.
type SearchQuery struct {
	Text      string
	Limit     int
	Threshold float64
}

// NewSearchQuery returns a query for text with the default limit and threshold.
func NewSearchQuery(text string) SearchQuery {
	return SearchQuery{Text: text, Limit: DefaultSearchLimit, Threshold: DefaultSearchThreshold}
}

// SearchResult is one ranked match. Summary is only set on rows stored
// before the full description existed.
type SearchResult struct {
	ID          string  `json:"id"`
	Title       string  `json:"titulo_video"`
	Description string  `json:"descricao_completa,omitempty"`
	Summary     string  `json:"resumo,omitempty"`
	SourceURL   string  `json:"url_original"`
	Similarity  float64 `json:"similarity"`
}

// VideoRecord is the unit handed to persistence: metadata plus the text and
// vector derived from it.
type VideoRecord struct {
	ID             string
	Metadata       VideoMetadata
	SearchableText string
	Embedding      []float32
	CreatedAt      time.Time
}

// VideoSummary is a stored video without its vector.
type VideoSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"titulo_video"`
	Description string    `json:"descricao_completa"`
	SourceURL   string    `json:"url_original"`
	Tags        []string  `json:"tags_busca"`
	CreatedAt   time.Time `json:"created_at"`
}
