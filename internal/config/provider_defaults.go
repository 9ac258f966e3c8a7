package config

import "time"

const (
	DefaultHost        = "0.0.0.0"
	DefaultHTTPPort    = "8000"
	DefaultEnvironment = "development"
	DefaultLogLevel    = "debug"

	DefaultGenerativeModel    = "gemini-2.5-flash"
	DefaultEmbeddingModel     = "text-embedding-004"
	DefaultEmbeddingProvider  = "gemini"
	DefaultEmbeddingDimension = 768

	DefaultPollInterval    = 2 * time.Second
	DefaultPollTimeout     = 60 * time.Second
	DefaultGenerateTimeout = 120 * time.Second
	DefaultEmbedTimeout    = 30 * time.Second
	DefaultPipelineTimeout = 5 * time.Minute

	DefaultDownloadDir = "temp_downloads"
	DefaultDownloader  = "ytdlp"
	DefaultYtDlpPath   = "yt-dlp"

	DefaultStoreBackend = "postgres"
	DefaultSQLitePath   = "data/popsearch.db"

	DefaultRateLimitBackend = "memory"
	DefaultRedisAddr        = "localhost:6379"

	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 6 * time.Minute
	DefaultIdleTimeout  = 60 * time.Second
)
