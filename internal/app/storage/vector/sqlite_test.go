package vector

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pop-search/internal/app/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "videos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func recordWith(title string, vec []float32) *model.VideoRecord {
	md := model.VideoMetadata{
		Title:       title,
		Description: title + " descrição.",
		SourceURL:   "https://example.com/" + title,
	}
	md.Normalize()
	return &model.VideoRecord{Metadata: md, SearchableText: "Title: " + title, Embedding: vec}
}

func TestSQLiteStore_SaveAndSearch(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	for _, rec := range []*model.VideoRecord{
		recordWith("exato", []float32{1, 0, 0}),
		recordWith("perto", []float32{1, 0.3, 0}),
		recordWith("longe", []float32{0, 1, 0}),
	} {
		id, err := store.Save(ctx, rec)
		require.NoError(t, err)
		require.NotEmpty(t, id)
	}

	results, err := store.SearchSimilar(ctx, []float32{1, 0, 0}, 0.5, 5, "")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "exato", results[0].Title)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-6)
	assert.Equal(t, "perto", results[1].Title)
	assert.Equal(t, "https://example.com/perto", results[1].SourceURL)
	assert.GreaterOrEqual(t, results[0].Similarity, results[1].Similarity)

	capped, err := store.SearchSimilar(ctx, []float32{1, 0, 0}, 0, 1, "")
	require.NoError(t, err)
	assert.Len(t, capped, 1)

	none, err := store.SearchSimilar(ctx, []float32{0, 0, 1}, 0.5, 5, "")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSQLiteStore_List(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first := recordWith("primeiro", []float32{1, 0})
	first.Metadata.Details.SearchTags = []string{"a", "b"}
	_, err := store.Save(ctx, first)
	require.NoError(t, err)
	_, err = store.Save(ctx, recordWith("segundo", []float32{0, 1}))
	require.NoError(t, err)

	videos, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "segundo", videos[0].Title)
	assert.Equal(t, []string{}, videos[0].Tags)
	assert.Equal(t, "primeiro", videos[1].Title)
	assert.Equal(t, []string{"a", "b"}, videos[1].Tags)
	assert.Equal(t, base.Add(time.Minute), videos[1].CreatedAt)

	one, err := store.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}
