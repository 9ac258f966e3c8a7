package errors

import (
	stderrors "errors"
	"fmt"
)

// Pipeline error classes
var (
	// ErrTimeout is the class of every "upstream too slow" failure.
	ErrTimeout = New("upstream timeout")

	// ErrPollingTimeout means the remote asset never left PROCESSING within
	// the polling budget. It belongs to the ErrTimeout class.
	ErrPollingTimeout = &Error{message: "asset polling timed out", cause: ErrTimeout}

	ErrProcessingFailed  = New("asset processing failed")
	ErrInvalidMetadata   = New("extracted metadata is invalid")
	ErrDimensionMismatch = New("embedding dimension mismatch")
	ErrMissingSourceURL  = New("url_original is required")
	ErrEmptyQuery        = New("query text is empty")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// CollaboratorError reports a failure of an external dependency (downloader,
// generative model, embedding model, storage). The original error is kept.
type CollaboratorError struct {
	Collaborator string
	Op           string
	Err          error
}

func (e *CollaboratorError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s %s: %v", e.Collaborator, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// Collaborator wraps err as a CollaboratorError. nil stays nil.
func Collaborator(name, op string, err error) error {
	if err == nil {
		return nil
	}
	return &CollaboratorError{Collaborator: name, Op: op, Err: err}
}

// SearchError reports a failed similarity search.
type SearchError struct {
	Query string
	Err   error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search %q failed: %v", e.Query, e.Err)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err belongs to the timeout class.
func IsTimeout(err error) bool {
	return stderrors.Is(err, ErrTimeout)
}

// IsCollaboratorError reports whether err came from an external dependency.
func IsCollaboratorError(err error) bool {
	var ce *CollaboratorError
	return stderrors.As(err, &ce)
}
