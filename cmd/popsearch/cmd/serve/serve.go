package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pop-search/cmd/popsearch/cmd/bootstrap"
	"pop-search/internal/api/server"
	"pop-search/internal/api/services"
)

const shutdownTimeout = 30 * time.Second

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API.

Routes: GET /, GET /health, GET /metrics, POST /analyze, POST /videos,
GET /videos, GET /videos/export and POST /search. /analyze and /search are
rate limited per client IP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c, cleanup, err := bootstrap.Container(ctx, cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		cfg := c.Config
		srv := server.NewServer(server.Config{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
			Environment:  cfg.Server.Environment,
		}, server.Dependencies{
			VideoService:  services.NewVideoService(c.Analyzer, c.Indexer, c.Store, c.Metrics, c.Logger),
			SearchService: services.NewSearchService(c.Search, c.Metrics, c.Logger),
			Limiter:       c.Limiter,
			Metrics:       c.Metrics,
		}, c.Logger)

		errCh := srv.Start()
		select {
		case err, ok := <-errCh:
			if ok && err != nil {
				return err
			}
			return nil
		case <-ctx.Done():
			c.Logger.Info("Received shutdown signal", zap.Error(context.Cause(ctx)))
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
