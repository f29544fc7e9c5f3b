// Package revocation keeps the deny-list of access tokens withdrawn before their expiry.
package revocation

import (
	"context"
	"log/slog"

	"academy/config"
	"academy/internal/domain/lifecycle"
	"academy/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params holds dependencies for the TokenRevoker, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewTokenRevoker returns a Redis-backed revoker when redis.addr is set and a
// process-local one otherwise.
func NewTokenRevoker(params Params) (service.TokenRevoker, error) {
	cfg := params.Config.Redis
	if cfg == nil || cfg.Addr == "" {
		params.Logger.Info("Redis not configured, using in-memory token revocation list")

		return NewMemoryRevoker(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	params.Lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				// Not fatal: revocation checks fail open until Redis answers.
				params.Logger.Warn("Redis ping failed", slog.String("addr", cfg.Addr), slog.Any("error", err))
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return errors.WithStack(client.Close())
		},
	})

	params.Logger.Info("Using Redis token revocation list", slog.String("addr", cfg.Addr))

	return NewRedisRevoker(client), nil
}
