// Package bootstrap loads configuration and builds services for the CLI
// commands.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pop-search/internal/app"
	"pop-search/internal/app/logging"
	"pop-search/internal/app/storage/vector"
	"pop-search/internal/config"
)

// Load reads .env and the environment and builds the logger. The root
// --verbose flag forces debug logging.
func Load(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, envFile, err := config.InitializeConfig()
	if err != nil {
		return nil, nil, err
	}

	level := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	logger, err := logging.NewLogger(!cfg.IsProduction(), level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	if envFile != "" {
		logger.Debug("Loaded environment file", zap.String("path", envFile))
	}
	return cfg, logger, nil
}

// Container builds every service. The cleanup must be called on exit.
func Container(ctx context.Context, cmd *cobra.Command) (*app.Container, func(), error) {
	cfg, logger, err := Load(cmd)
	if err != nil {
		return nil, nil, err
	}
	c, cleanup, err := app.InitializeContainer(ctx, cfg, logger)
	if err != nil {
		logger.Sync()
		return nil, nil, err
	}
	return c, func() {
		cleanup()
		logger.Sync()
	}, nil
}

// Store opens only the vector store.
func Store(ctx context.Context, cmd *cobra.Command) (vector.VideoStore, func(), error) {
	cfg, logger, err := Load(cmd)
	if err != nil {
		return nil, nil, err
	}
	store, cleanup, err := app.InitializeStore(ctx, cfg, logger)
	if err != nil {
		logger.Sync()
		return nil, nil, err
	}
	return store, func() {
		cleanup()
		logger.Sync()
	}, nil
}
