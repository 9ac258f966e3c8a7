package embedding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pop-search/internal/app/embedding/provider"
	apperrors "pop-search/internal/app/errors"
	"pop-search/internal/app/model"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) GenerateEmbedding(ctx context.Context, text string, task provider.TaskType) ([]float32, error) {
	args := m.Called(ctx, text, task)
	if v := args.Get(0); v != nil {
		return v.([]float32), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProvider) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{Name: "fake", Model: "fake-model", Dimension: 3}
}

func strPtr(s string) *string { return &s }

func fullMetadata() *model.VideoMetadata {
	md := &model.VideoMetadata{
		Title:       "Show ao vivo",
		Description: "Cantor se apresenta em palco iluminado.",
		Details: model.StructuredDetails{
			People: []model.Person{
				{Description: "Homem de barba", Role: strPtr("cantor")},
				{Description: "Mulher loira"},
			},
			SceneElements: []string{"palco", "luzes"},
			Audio:         model.AudioInfo{Transcript: "boa noite"},
			SearchTags:    []string{"show", "música"},
		},
	}
	md.Normalize()
	return md
}

func TestSearchableText_AllSections(t *testing.T) {
	want := "Title: Show ao vivo\n" +
		"Description: Cantor se apresenta em palco iluminado.\n" +
		"People: Homem de barba, Mulher loira\n" +
		"Elements: palco, luzes\n" +
		"Audio: boa noite\n" +
		"Keywords: show, música"

	assert.Equal(t, want, SearchableText(fullMetadata()))
}

func TestSearchableText_OmitsEmptySections(t *testing.T) {
	md := &model.VideoMetadata{
		Title:       "Gato",
		Description: "Gato dormindo.",
		Details:     model.StructuredDetails{SearchTags: []string{"gato"}},
	}
	md.Normalize()

	assert.Equal(t, "Title: Gato\nDescription: Gato dormindo.\nKeywords: gato", SearchableText(md))

	md.Details.SearchTags = nil
	assert.Equal(t, "Title: Gato\nDescription: Gato dormindo.", SearchableText(md))
}

func TestSearchableText_Deterministic(t *testing.T) {
	assert.Equal(t, SearchableText(fullMetadata()), SearchableText(fullMetadata()))
	assert.Equal(t, "", SearchableText(nil))
}

func TestEmbedDocument_FixedDimension(t *testing.T) {
	svc := NewService(provider.NewMockProvider(768), 768, nil)
	ctx := context.Background()

	text, a, err := svc.EmbedDocument(ctx, fullMetadata())
	require.NoError(t, err)
	_, b, err := svc.EmbedDocument(ctx, fullMetadata())
	require.NoError(t, err)

	assert.Len(t, a, 768)
	assert.Equal(t, a, b)
	assert.Equal(t, SearchableText(fullMetadata()), text)
}

func TestEmbedQuery_UsesQueryTask(t *testing.T) {
	p := &mockProvider{}
	p.Test(t)
	p.On("GenerateEmbedding", mock.Anything, "gato comendo", provider.TaskRetrievalQuery).
		Return([]float32{0.1, 0.2, 0.3}, nil).Once()

	svc := NewService(p, 0, nil)
	vec, err := svc.EmbedQuery(context.Background(), "gato comendo")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, 3, svc.Dimension())
	p.AssertExpectations(t)
}

func TestEmbedDocument_UsesDocumentTask(t *testing.T) {
	p := &mockProvider{}
	p.Test(t)
	p.On("GenerateEmbedding", mock.Anything, mock.AnythingOfType("string"), provider.TaskRetrievalDocument).
		Return([]float32{1, 0, 0}, nil).Once()

	_, vec, err := NewService(p, 3, nil).EmbedDocument(context.Background(), fullMetadata())

	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 0}, vec)
	p.AssertExpectations(t)
}

func TestEmbed_DimensionMismatch(t *testing.T) {
	p := &mockProvider{}
	p.Test(t)
	p.On("GenerateEmbedding", mock.Anything, "texto", provider.TaskRetrievalQuery).
		Return([]float32{1, 2}, nil)

	_, err := NewService(p, 3, nil).EmbedQuery(context.Background(), "texto")

	assert.ErrorIs(t, err, apperrors.ErrDimensionMismatch)
}

func TestEmbed_ProviderFailure(t *testing.T) {
	cause := errors.New("quota exceeded")
	p := &mockProvider{}
	p.Test(t)
	p.On("GenerateEmbedding", mock.Anything, "texto", provider.TaskRetrievalQuery).Return(nil, cause)

	_, err := NewService(p, 3, nil).EmbedQuery(context.Background(), "texto")

	assert.ErrorIs(t, err, cause)
	assert.True(t, apperrors.IsCollaboratorError(err))
}

func TestEmbedQuery_Empty(t *testing.T) {
	p := &mockProvider{}
	p.Test(t)

	_, err := NewService(p, 3, nil).EmbedQuery(context.Background(), "  ")

	assert.ErrorIs(t, err, apperrors.ErrEmptyQuery)
	p.AssertNotCalled(t, "GenerateEmbedding", mock.Anything, mock.Anything, mock.Anything)
}

func TestEmbed_Timeout(t *testing.T) {
	p := &mockProvider{}
	p.Test(t)
	p.On("GenerateEmbedding", mock.Anything, "texto", provider.TaskRetrievalQuery).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded)

	svc := NewService(p, 3, nil).WithTimeout(10 * time.Millisecond)
	_, err := svc.EmbedQuery(context.Background(), "texto")

	assert.True(t, apperrors.IsTimeout(err))
	assert.False(t, apperrors.IsCollaboratorError(err))
}
