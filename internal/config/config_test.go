package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	for _, key := range []string{
		"GEMINI_API_KEY", "HOST", "PORT", "ENVIRONMENT", "LOG_LEVEL",
		"GEMINI_MODEL", "EMBEDDING_MODEL", "EMBEDDING_PROVIDER", "EMBEDDING_DIMENSION",
		"POLL_INTERVAL", "POLL_TIMEOUT", "GENERATE_TIMEOUT", "EMBED_TIMEOUT", "PIPELINE_TIMEOUT",
		"DOWNLOADER", "DOWNLOAD_DIR", "YTDLP_PATH", "STORE_BACKEND", "DATABASE_URL", "SQLITE_PATH",
		"RATE_LIMIT_BACKEND", "REDIS_ADDR", "RATE_LIMIT_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPPort, cfg.Server.Port)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "gemini-2.5-flash", cfg.Models.GenerativeModel)
	assert.Equal(t, "text-embedding-004", cfg.Models.EmbeddingModel)
	assert.Equal(t, 768, cfg.Models.EmbeddingDimension)
	assert.Equal(t, 2*time.Second, cfg.Pipeline.PollInterval)
	assert.Equal(t, 60*time.Second, cfg.Pipeline.PollTimeout)
	assert.Equal(t, "memory", cfg.RateLimit.Backend)
	assert.Equal(t, RouteLimit{Limit: 5, Window: time.Minute}, cfg.RateLimit.Rules["analyze"])
	assert.Equal(t, RouteLimit{Limit: 20, Window: time.Minute}, cfg.RateLimit.Rules["search"])
}

func TestLoad_Overrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("POLL_TIMEOUT", "90")
	t.Setenv("POLL_INTERVAL", "500ms")
	t.Setenv("EMBEDDING_DIMENSION", "256")
	t.Setenv("STORE_BACKEND", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 90*time.Second, cfg.Pipeline.PollTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Pipeline.PollInterval)
	assert.Equal(t, 256, cfg.Models.EmbeddingDimension)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name          string
		key           string
		value         string
		errorContains string
	}{
		{"bad duration", "POLL_TIMEOUT", "soon", "POLL_TIMEOUT"},
		{"bad dimension", "EMBEDDING_DIMENSION", "wide", "EMBEDDING_DIMENSION"},
		{"zero dimension", "EMBEDDING_DIMENSION", "0", "dimension"},
		{"unknown store", "STORE_BACKEND", "mongo", "STORE_BACKEND"},
		{"unknown limiter", "RATE_LIMIT_BACKEND", "memcached", "RATE_LIMIT_BACKEND"},
		{"interval longer than timeout", "POLL_INTERVAL", "2m", "poll interval"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errorContains)
		})
	}
}

func TestLoadRateLimitRules_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratelimits.yaml")
	content := `
routes:
  search:
    limit: 30
    window: 30s
  videos:
    limit: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	rules, err := LoadRateLimitRules(path)
	require.NoError(t, err)

	assert.Equal(t, RouteLimit{Limit: 5, Window: time.Minute}, rules["analyze"])
	assert.Equal(t, RouteLimit{Limit: 30, Window: 30 * time.Second}, rules["search"])
	assert.Equal(t, RouteLimit{Limit: 10, Window: time.Minute}, rules["videos"])
}

func TestLoadRateLimitRules_Errors(t *testing.T) {
	_, err := LoadRateLimitRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = mergeRateLimitRules(DefaultRateLimitRules(), []byte("routes:\n  search:\n    limit: 3\n    window: forever\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search")
}

func TestPostgresConnectionString(t *testing.T) {
	dc := &DatabaseConfig{DatabaseURL: "postgres://u:p@db:5432/pop"}
	assert.Equal(t, "postgres://u:p@db:5432/pop", dc.GetPostgresConnectionString())

	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "pop")
	dc = &DatabaseConfig{}
	conn := dc.GetPostgresConnectionString()
	assert.Contains(t, conn, "host=db")
	assert.Contains(t, conn, "dbname=pop")
}
