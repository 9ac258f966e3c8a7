//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"pop-search/internal/app/storage/vector"
	"pop-search/internal/config"
)

// InitializeContainer wires every service from cfg. The returned cleanup
// closes the store and the rate-limit backend.
func InitializeContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, func(), error) {
	wire.Build(ProviderSet)
	return nil, nil, nil
}

// InitializeStore opens only the vector store, for commands that read the
// catalog without analysing or embedding.
func InitializeStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (vector.VideoStore, func(), error) {
	wire.Build(provideStore)
	return nil, nil, nil
}
