package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pop-search/internal/api/handlers"
	"pop-search/internal/api/middleware"
	"pop-search/internal/api/services"
)

// Route names used as rate-limit rule keys
const (
	RouteAnalyze = "analyze"
	RouteSearch  = "search"
	RouteVideos  = "videos"
)

// ServiceContainer holds everything the routes need
type ServiceContainer struct {
	VideoService    services.VideoService
	SearchService   services.SearchService
	Limiter         middleware.Admitter
	RateLimitEvents middleware.RejectionRecorder
	MetricsHandler  http.Handler
	Logger          *zap.Logger
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router gin.IRouter, container *ServiceContainer) {
	logger := container.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := func(route string) gin.HandlerFunc {
		if container.Limiter == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimit(container.Limiter, route, container.RateLimitEvents, logger)
	}

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	if container.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(container.MetricsHandler))
	}

	videoHandler := handlers.NewVideoHandler(container.VideoService)
	router.POST("/analyze", limit(RouteAnalyze), videoHandler.Analyze)

	videos := router.Group("/videos", limit(RouteVideos))
	{
		videos.POST("", videoHandler.Index)
		videos.GET("", videoHandler.List)
		videos.GET("/export", videoHandler.Export)
	}

	searchHandler := handlers.NewSearchHandler(container.SearchService)
	router.POST("/search", limit(RouteSearch), searchHandler.Search)
}
