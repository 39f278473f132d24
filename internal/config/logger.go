package config

import (
	"context"
	"log"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewLogger provides the application-wide zap logger. Sync is deferred to
// shutdown through the fx lifecycle.
func NewLogger(lc fx.Lifecycle) *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = logger.Sync()
			return nil
		},
	})
	return logger
}
