package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pop-search/internal/api/middleware"
	"pop-search/internal/api/routes"
	"pop-search/internal/api/services"
	"pop-search/internal/app/metrics"
)

// Config represents API server configuration
type Config struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Environment  string
}

// Dependencies are the application services the server exposes
type Dependencies struct {
	VideoService  services.VideoService
	SearchService services.SearchService
	Limiter       middleware.Admitter
	Metrics       *metrics.Metrics
}

// Server represents the API server
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer creates a new API server
func NewServer(config Config, deps Dependencies, logger *zap.Logger) *Server {
	// Set Gin mode based on environment
	if config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	container := &routes.ServiceContainer{
		VideoService:  deps.VideoService,
		SearchService: deps.SearchService,
		Limiter:       deps.Limiter,
		Logger:        logger,
	}
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
		container.RateLimitEvents = deps.Metrics
		container.MetricsHandler = deps.Metrics.Handler()
	}

	routes.RegisterRoutes(router, container)

	addr := fmt.Sprintf("%s:%s", config.Host, config.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		config:     config,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
	}
}

// Start starts the API server. Listen errors are sent on the returned
// channel, which is closed once the server stops.
func (s *Server) Start() <-chan error {
	s.logger.Info("Starting API server",
		zap.String("host", s.config.Host),
		zap.String("port", s.config.Port),
		zap.String("environment", s.config.Environment),
	)

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Failed to start server", zap.Error(err))
			errCh <- err
		}
	}()

	s.logger.Info("API server started successfully",
		zap.String("address", s.httpServer.Addr),
	)

	return errCh
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("API server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
