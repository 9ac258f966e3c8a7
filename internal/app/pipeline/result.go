package pipeline

import "pop-search/internal/app/model"

// Outcome classifies how an analysis ended.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeInvalid Outcome = "invalid"
	OutcomeTimeout Outcome = "timeout"
	OutcomeFailed  Outcome = "failed"
)

// Result is the tagged outcome of one analysis. Metadata is set only for
// OutcomeOK; Err is set for every other outcome.
type Result struct {
	Outcome  Outcome
	Metadata *model.VideoMetadata
	Err      error
}

func (r Result) OK() bool {
	return r.Outcome == OutcomeOK
}
