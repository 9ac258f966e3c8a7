package middleware

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pop-search/internal/api/errors"
	"pop-search/internal/app/ratelimit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedAdmitter struct {
	decision ratelimit.Decision
	err      error
}

func (f fixedAdmitter) Admit(context.Context, string, string) (ratelimit.Decision, error) {
	return f.decision, f.err
}

type countingRecorder struct {
	mu     sync.Mutex
	routes []string
}

func (r *countingRecorder) RecordRateLimited(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.Use(ErrorHandler(zap.NewNop()))
	router.Use(handlers...)
	router.GET("/ok", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	return router
}

func do(router http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimit_Rejects(t *testing.T) {
	rec := &countingRecorder{}
	admitter := fixedAdmitter{decision: ratelimit.Decision{Allowed: false, Limit: 20, RetryAfter: 1500 * time.Millisecond}}
	router := newRouter(RateLimit(admitter, "search", rec, zap.NewNop()))

	w := do(router, http.MethodGet, "/ok", "")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
	assert.Equal(t, "20", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
	assert.Equal(t, []string{"search"}, rec.routes)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "too_many_requests", body["kind"])
	assert.NotEmpty(t, body["request_id"])
}

func TestRateLimit_Admits(t *testing.T) {
	admitter := fixedAdmitter{decision: ratelimit.Decision{Allowed: true, Limit: 5, Remaining: 4}}
	router := newRouter(RateLimit(admitter, "analyze", nil, zap.NewNop()))

	w := do(router, http.MethodGet, "/ok", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	assert.Empty(t, w.Header().Get("Retry-After"))
}

func TestRateLimit_StoreFailureAdmits(t *testing.T) {
	router := newRouter(RateLimit(fixedAdmitter{err: stderrors.New("redis down")}, "search", nil, zap.NewNop()))

	w := do(router, http.MethodGet, "/ok", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_WithMemoryLimiter(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(nil), map[string]ratelimit.Rule{
		"analyze": {Limit: 2, Window: time.Minute},
	})
	router := newRouter(RateLimit(limiter, "analyze", nil, zap.NewNop()))

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/ok", "").Code)
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/ok", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(router, http.MethodGet, "/ok", "").Code)
}

func TestErrorHandler_RecoversPlainErrors(t *testing.T) {
	router := newRouter()
	router.GET("/boom", func(c *gin.Context) {
		HandleError(c, stderrors.New("database exploded"))
	})
	router.GET("/api-error", func(c *gin.Context) {
		HandleError(c, errors.NewGatewayTimeoutError("Video analysis timed out"))
	})

	w := do(router, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.NotContains(t, w.Body.String(), "database exploded")

	w = do(router, http.MethodGet, "/api-error", "")
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), "gateway_timeout")
}

func TestRequestID(t *testing.T) {
	router := newRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = do(router, http.MethodGet, "/ok", "")
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestCORS_Preflight(t *testing.T) {
	router := newRouter(CORS(DefaultCORSConfig()))

	w := do(router, http.MethodOptions, "/ok", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
}

type searchBody struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit" binding:"omitempty,min=1,max=50"`
}

func TestValidateRequest(t *testing.T) {
	router := newRouter()
	router.POST("/validate", func(c *gin.Context) {
		var req searchBody
		if err := ValidateRequest(c, &req); err != nil {
			HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, req)
	})

	tests := []struct {
		name   string
		body   string
		status int
		field  string
		detail string
	}{
		{"valid", `{"query":"gato","limit":5}`, http.StatusOK, "", ""},
		{"missing query", `{"limit":5}`, http.StatusUnprocessableEntity, "query", "is required"},
		{"limit too large", `{"query":"gato","limit":500}`, http.StatusUnprocessableEntity, "limit", "must be at most 50"},
		{"malformed json", `{"query":`, http.StatusUnprocessableEntity, "request", "invalid JSON format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/validate", tt.body)

			assert.Equal(t, tt.status, w.Code)
			if tt.field != "" {
				var body struct {
					Details map[string]string `json:"details"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.detail, body.Details[tt.field])
			}
		})
	}
}

type routeObserver struct {
	routes []string
	codes  []int
}

func (o *routeObserver) ObserveHTTP(_ string, route string, code int, _ time.Duration) {
	o.routes = append(o.routes, route)
	o.codes = append(o.codes, code)
}

func TestMetricsMiddleware(t *testing.T) {
	obs := &routeObserver{}
	router := newRouter(Metrics(obs))

	do(router, http.MethodGet, "/ok", "")
	do(router, http.MethodGet, "/nope", "")

	assert.Equal(t, []string{"/ok", "unmatched"}, obs.routes)
	assert.Equal(t, []int{http.StatusOK, http.StatusNotFound}, obs.codes)
}
