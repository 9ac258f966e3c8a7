package dto

import "pop-search/internal/app/model"

const MaxSearchLimit = 50

// SearchRequest is a semantic search. Omitted limit and threshold take the
// defaults; values outside their bounds are rejected.
type SearchRequest struct {
	Query     string   `json:"query" binding:"required"`
	Limit     *int     `json:"limit" binding:"omitempty,min=1,max=50"`
	Threshold *float64 `json:"threshold" binding:"omitempty,min=0,max=1"`
}

// ToQuery applies the defaults.
func (r *SearchRequest) ToQuery() model.SearchQuery {
	q := model.NewSearchQuery(r.Query)
	if r.Limit != nil {
		q.Limit = *r.Limit
	}
	if r.Threshold != nil {
		q.Threshold = *r.Threshold
	}
	return q
}
