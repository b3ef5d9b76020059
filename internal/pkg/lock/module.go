package lock

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/ordermart/internal/config"
)

// Module provides the order Locker: Redis-backed when configured, in-memory otherwise.
var Module = fx.Provide(newLocker)

type lockerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newLocker(p lockerParams) (Locker, error) {
	if p.Config.RedisAddress == "" {
		return NewMemoryLocker(), nil
	}

	opts, err := redis.ParseURL(p.Config.RedisAddress)
	if err != nil {
		opts = &redis.Options{Addr: p.Config.RedisAddress}
	}
	client := redis.NewClient(opts)
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("ping redis: %w", err)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return NewRedisLocker(client, p.Config.LockTTL, p.Logger), nil
}
