package errors

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPollingTimeoutIsTimeoutClass(t *testing.T) {
	err := Wrapf(ErrPollingTimeout, "file %s still processing", "files/abc")

	assert.True(t, stderrors.Is(err, ErrPollingTimeout))
	assert.True(t, IsTimeout(err))
	assert.False(t, stderrors.Is(err, ErrProcessingFailed))
	assert.Contains(t, err.Error(), "files/abc")
}

func TestGenerationTimeoutIsNotPollingTimeout(t *testing.T) {
	err := Wrap(ErrTimeout, "metadata generation")

	assert.True(t, IsTimeout(err))
	assert.False(t, stderrors.Is(err, ErrPollingTimeout))
}

func TestCollaboratorError(t *testing.T) {
	cause := stderrors.New("quota exceeded")
	err := Collaborator("embedder", "embed", cause)

	assert.True(t, IsCollaboratorError(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "embedder embed: quota exceeded", err.Error())
	assert.Nil(t, Collaborator("embedder", "embed", nil))
	assert.False(t, IsTimeout(err))
}

func TestCollaboratorErrorKeepsContextErrors(t *testing.T) {
	err := Collaborator("downloader", "", context.Canceled)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "downloader: context canceled", err.Error())
}

func TestSearchError(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := &SearchError{Query: "cat eating", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `"cat eating"`)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, Wrapf(nil, "ignored %d", 1))
}
