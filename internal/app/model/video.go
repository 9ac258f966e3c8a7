package model

import "time"

// ProcessingState is the lifecycle state of an uploaded media asset on the
// processing service side.
type ProcessingState string

const (
	StateUploading  ProcessingState = "UPLOADING"
	StateProcessing ProcessingState = "PROCESSING"
	StateActive     ProcessingState = "ACTIVE"
	StateFailed     ProcessingState = "FAILED"
)

// IsTerminal reports whether no further polling can change the state.
func (s ProcessingState) IsTerminal() bool {
	return s == StateActive || s == StateFailed
}

// VideoAsset is a locally stored video awaiting analysis.
type VideoAsset struct {
	Path       string
	State      ProcessingState
	UploadedAt time.Time
}

// ActiveAsset is the opaque reference to a processed remote file. Downstream
// calls use it instead of uploading the video again.
type ActiveAsset struct {
	Name     string
	URI      string
	MIMEType string
}
