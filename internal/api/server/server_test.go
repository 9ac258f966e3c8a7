package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pop-search/internal/api/services"
	"pop-search/internal/app/embedding"
	"pop-search/internal/app/embedding/provider"
	"pop-search/internal/app/metrics"
	"pop-search/internal/app/pipeline"
	"pop-search/internal/app/ratelimit"
	"pop-search/internal/app/search"
	"pop-search/internal/app/storage/vector"
	"pop-search/internal/app/testutil"
)

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(_ context.Context, url string) pipeline.Result {
	return pipeline.Result{Outcome: pipeline.OutcomeOK, Metadata: testutil.SampleMetadata(url)}
}

func newTestServer(t *testing.T, rules map[string]ratelimit.Rule) (*Server, *vector.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	m := metrics.New()
	store := vector.NewMemoryStore()
	embedder := embedding.NewService(provider.NewMockProvider(32), 0, logger)

	deps := Dependencies{
		VideoService: services.NewVideoService(
			stubAnalyzer{},
			pipeline.NewIndexer(embedder, store, logger),
			store,
			m,
			logger,
		),
		SearchService: services.NewSearchService(search.NewOrchestrator(embedder, store, logger), m, logger),
		Limiter:       ratelimit.NewLimiter(ratelimit.NewMemoryStore(time.Now), rules),
		Metrics:       m,
	}

	return NewServer(Config{Host: "127.0.0.1", Port: "0", Environment: "test"}, deps, logger), store
}

func request(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestServer_RootAndHealth(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := request(s, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pop Search API is running and welcoming the world!")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = request(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_AnalyzeIndexListSearch(t *testing.T) {
	s, store := newTestServer(t, nil)
	const videoURL = "https://www.tiktok.com/@pets/video/1"

	rec := request(s, http.MethodPost, "/analyze", `{"url":"`+videoURL+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = request(s, http.MethodPost, "/videos", rec.Body.String())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "success", created["status"])
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, 1, store.Len())

	rec = request(s, http.MethodGet, "/videos", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), created["id"])

	rec = request(s, http.MethodPost, "/search", `{"query":"gato comendo ração","threshold":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	assert.NotNil(t, results)
}

func TestServer_SearchRateLimit(t *testing.T) {
	s, _ := newTestServer(t, map[string]ratelimit.Rule{
		"search": {Limit: 20, Window: time.Minute},
	})

	for i := 0; i < 20; i++ {
		rec := request(s, http.MethodPost, "/search", `{"query":"cat eating","limit":5,"threshold":0.5}`)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
		assert.Equal(t, "20", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := request(s, http.MethodPost, "/search", `{"query":"cat eating","limit":5,"threshold":0.5}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "Rate limit exceeded")

	// other routes keep their own budget
	rec = request(s, http.MethodGet, "/videos", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = request(s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `popsearch_rate_limited_total{route="search"} 1`)
	assert.Contains(t, rec.Body.String(), `popsearch_searches_total`)
}

func TestServer_UnknownRoute(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := request(s, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = request(s, http.MethodGet, "/metrics", "")
	assert.Contains(t, rec.Body.String(), `route="unmatched"`)
}

func TestServer_StartAndShutdown(t *testing.T) {
	s, _ := newTestServer(t, nil)

	errCh := s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	for err := range errCh {
		assert.NoError(t, err)
	}
}
