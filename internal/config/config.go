package config

import (
	"fmt"
	"time"
)

// Version is reported by the root endpoint and the version command.
const Version = "0.1.0"

// ModelConfig selects the generative and embedding models
type ModelConfig struct {
	GeminiAPIKey       string
	GenerativeModel    string
	EmbeddingModel     string
	EmbeddingProvider  string
	EmbeddingDimension int
}

// PipelineConfig bounds every stage of the analysis pipeline
type PipelineConfig struct {
	PollInterval    time.Duration
	PollTimeout     time.Duration
	GenerateTimeout time.Duration
	EmbedTimeout    time.Duration
	PipelineTimeout time.Duration
}

// DownloadConfig selects how source videos are fetched
type DownloadConfig struct {
	Backend   string
	Dir       string
	YtDlpPath string
}

// RateLimitConfig selects the counter backend and per-route rules
type RateLimitConfig struct {
	Backend   string
	RedisAddr string
	RulesFile string
	Rules     map[string]RouteLimit
}

// Config is the complete process configuration
type Config struct {
	Server    ServerConfig
	Models    ModelConfig
	Pipeline  PipelineConfig
	Download  DownloadConfig
	Store     DatabaseConfig
	RateLimit RateLimitConfig
	LogLevel  string
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load builds the configuration from the environment, applying defaults,
// merging the rate-limit rules file and validating the result. It does not
// read .env files; call LoadEnv first.
func Load() (*Config, error) {
	keys, err := GetAPIKeys()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnvOrDefault("HOST", DefaultHost),
			Port:        getEnvOrDefault("PORT", DefaultHTTPPort),
			Environment: getEnvOrDefault("ENVIRONMENT", DefaultEnvironment),
		},
		Models: ModelConfig{
			GeminiAPIKey:      keys.Gemini,
			GenerativeModel:   getEnvOrDefault("GEMINI_MODEL", DefaultGenerativeModel),
			EmbeddingModel:    getEnvOrDefault("EMBEDDING_MODEL", DefaultEmbeddingModel),
			EmbeddingProvider: getEnvOrDefault("EMBEDDING_PROVIDER", DefaultEmbeddingProvider),
		},
		Download: DownloadConfig{
			Backend:   getEnvOrDefault("DOWNLOADER", DefaultDownloader),
			Dir:       getEnvOrDefault("DOWNLOAD_DIR", DefaultDownloadDir),
			YtDlpPath: getEnvOrDefault("YTDLP_PATH", DefaultYtDlpPath),
		},
		Store: DatabaseConfig{
			Backend:     getEnvOrDefault("STORE_BACKEND", DefaultStoreBackend),
			DatabaseURL: getEnvOrDefault("DATABASE_URL", ""),
			SQLitePath:  getEnvOrDefault("SQLITE_PATH", DefaultSQLitePath),
		},
		RateLimit: RateLimitConfig{
			Backend:   getEnvOrDefault("RATE_LIMIT_BACKEND", DefaultRateLimitBackend),
			RedisAddr: getEnvOrDefault("REDIS_ADDR", DefaultRedisAddr),
			RulesFile: getEnvOrDefault("RATE_LIMIT_FILE", ""),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", DefaultLogLevel),
	}

	if cfg.Models.EmbeddingDimension, err = getIntEnv("EMBEDDING_DIMENSION", DefaultEmbeddingDimension); err != nil {
		return nil, err
	}

	durations := []struct {
		key    string
		def    time.Duration
		target *time.Duration
	}{
		{"POLL_INTERVAL", DefaultPollInterval, &cfg.Pipeline.PollInterval},
		{"POLL_TIMEOUT", DefaultPollTimeout, &cfg.Pipeline.PollTimeout},
		{"GENERATE_TIMEOUT", DefaultGenerateTimeout, &cfg.Pipeline.GenerateTimeout},
		{"EMBED_TIMEOUT", DefaultEmbedTimeout, &cfg.Pipeline.EmbedTimeout},
		{"PIPELINE_TIMEOUT", DefaultPipelineTimeout, &cfg.Pipeline.PipelineTimeout},
		{"HTTP_READ_TIMEOUT", DefaultReadTimeout, &cfg.Server.ReadTimeout},
		{"HTTP_WRITE_TIMEOUT", DefaultWriteTimeout, &cfg.Server.WriteTimeout},
		{"HTTP_IDLE_TIMEOUT", DefaultIdleTimeout, &cfg.Server.IdleTimeout},
	}
	for _, d := range durations {
		if *d.target, err = getDurationEnv(d.key, d.def); err != nil {
			return nil, err
		}
	}

	rules, err := LoadRateLimitRules(cfg.RateLimit.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate limit rules: %w", err)
	}
	cfg.RateLimit.Rules = rules

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// InitializeConfig loads .env files and then the configuration.
// This is the main entry point for configuration loading
func InitializeConfig() (*Config, string, error) {
	envFile, err := LoadEnv()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load environment: %w", err)
	}
	cfg, err := Load()
	if err != nil {
		return nil, envFile, err
	}
	return cfg, envFile, nil
}
