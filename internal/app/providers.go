package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/wire"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"pop-search/internal/app/api/gemini"
	"pop-search/internal/app/asset"
	"pop-search/internal/app/embedding"
	"pop-search/internal/app/embedding/provider"
	"pop-search/internal/app/extract"
	"pop-search/internal/app/metrics"
	"pop-search/internal/app/pipeline"
	"pop-search/internal/app/ratelimit"
	"pop-search/internal/app/search"
	"pop-search/internal/app/storage/vector"
	"pop-search/internal/config"
	"pop-search/internal/downloader"
)

// Container holds every long-lived service of the process.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Store    vector.VideoStore
	Embedder *embedding.Service
	Poller   *asset.Poller
	Analyzer *pipeline.Analyzer
	Indexer  *pipeline.Indexer
	Search   *search.Orchestrator
	Limiter  *ratelimit.Limiter
}

// ProviderSet builds a Container from a loaded configuration and a logger.
var ProviderSet = wire.NewSet(
	metrics.New,
	provideGenAIClient,
	gemini.NewFileService,
	provideGenerator,
	asset.RealClock,
	providePoller,
	provideExtractor,
	provideDownloader,
	provideAnalyzer,
	provideEmbeddingProvider,
	provideEmbedder,
	provideStore,
	provideIndexer,
	provideOrchestrator,
	provideRateStore,
	provideLimiter,
	wire.Struct(new(Container), "*"),
)

func provideGenAIClient(ctx context.Context, cfg *config.Config) (*genai.Client, error) {
	if err := config.RequireAPIKeys(&config.APIKeys{Gemini: cfg.Models.GeminiAPIKey}); err != nil {
		return nil, err
	}
	return gemini.NewClient(ctx, cfg.Models.GeminiAPIKey)
}

func provideGenerator(client *genai.Client, cfg *config.Config) *gemini.Generator {
	return gemini.NewGenerator(client, cfg.Models.GenerativeModel, gemini.DefaultGenerationSettings())
}

func providePoller(files *gemini.FileService, clock asset.Clock, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) *asset.Poller {
	poller := asset.NewPoller(files, clock, asset.Config{
		Interval: cfg.Pipeline.PollInterval,
		Timeout:  cfg.Pipeline.PollTimeout,
	}, logger)
	return poller.WithObserver(m)
}

func provideExtractor(generator *gemini.Generator, cfg *config.Config, logger *zap.Logger) *extract.Extractor {
	return extract.NewExtractor(generator, cfg.Pipeline.GenerateTimeout, logger)
}

func provideDownloader(cfg *config.Config, logger *zap.Logger) (pipeline.VideoDownloader, error) {
	if err := os.MkdirAll(cfg.Download.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}

	switch cfg.Download.Backend {
	case "http":
		client := &http.Client{Timeout: cfg.Pipeline.PipelineTimeout}
		return downloader.NewHTTPDownloader(client, cfg.Download.Dir, downloader.DefaultMaxBytes, logger), nil
	case "ytdlp":
		return downloader.NewYtDlpDownloader(cfg.Download.YtDlpPath, cfg.Download.Dir, logger), nil
	default:
		return nil, fmt.Errorf("unknown downloader: %s", cfg.Download.Backend)
	}
}

func provideAnalyzer(d pipeline.VideoDownloader, poller *asset.Poller, extractor *extract.Extractor, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) *pipeline.Analyzer {
	return pipeline.NewAnalyzer(d, poller, extractor, cfg.Pipeline.PipelineTimeout, logger).WithRecorder(m)
}

func provideEmbeddingProvider(client *genai.Client, cfg *config.Config) (provider.EmbeddingProvider, error) {
	switch cfg.Models.EmbeddingProvider {
	case "gemini":
		return provider.NewGeminiProvider(client, cfg.Models.EmbeddingModel, cfg.Models.EmbeddingDimension), nil
	case "mock":
		return provider.NewMockProvider(cfg.Models.EmbeddingDimension), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Models.EmbeddingProvider)
	}
}

func provideEmbedder(p provider.EmbeddingProvider, cfg *config.Config, logger *zap.Logger) *embedding.Service {
	return embedding.NewService(p, cfg.Models.EmbeddingDimension, logger).WithTimeout(cfg.Pipeline.EmbedTimeout)
}

// provideStore opens and migrates the configured vector store.
func provideStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (vector.VideoStore, func(), error) {
	var store vector.VideoStore

	switch cfg.Store.Backend {
	case "postgres":
		db, err := sql.Open("postgres", cfg.Store.GetPostgresConnectionString())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		store = vector.NewPgVectorStore(db, cfg.Models.EmbeddingDimension)
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Store.SQLitePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
		s, err := vector.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store = s
	default:
		return nil, nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to migrate %s store: %w", cfg.Store.Backend, err)
	}
	logger.Info("Vector store ready", zap.String("backend", cfg.Store.Backend))

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close vector store", zap.Error(err))
		}
	}
	return store, cleanup, nil
}

func provideIndexer(embedder *embedding.Service, store vector.VideoStore, logger *zap.Logger) *pipeline.Indexer {
	return pipeline.NewIndexer(embedder, store, logger)
}

func provideOrchestrator(embedder *embedding.Service, store vector.VideoStore, logger *zap.Logger) *search.Orchestrator {
	return search.NewOrchestrator(embedder, store, logger)
}

// provideRateStore returns the counter store for the limiter. The memory
// store is swept in the background until cleanup runs.
func provideRateStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ratelimit.Store, func(), error) {
	switch cfg.RateLimit.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RateLimit.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RateLimit.RedisAddr, err)
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logger.Warn("Failed to close redis client", zap.Error(err))
			}
		}
		return ratelimit.NewRedisStore(client), cleanup, nil
	case "memory":
		store := ratelimit.NewMemoryStore(time.Now)
		gcCtx, cancel := context.WithCancel(context.Background())
		go store.Run(gcCtx, time.Minute)
		return store, cancel, nil
	default:
		return nil, nil, fmt.Errorf("unknown rate limit backend: %s", cfg.RateLimit.Backend)
	}
}

func provideLimiter(store ratelimit.Store, cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.NewLimiter(store, RateLimitRules(cfg.RateLimit.Rules))
}

// RateLimitRules converts configured route limits into limiter rules.
func RateLimitRules(limits map[string]config.RouteLimit) map[string]ratelimit.Rule {
	rules := make(map[string]ratelimit.Rule, len(limits))
	for route, l := range limits {
		rules[route] = ratelimit.Rule{Limit: l.Limit, Window: l.Window}
	}
	return rules
}
