package config

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module exposes configuration loading to fx and logs the effective settings.
var Module = fx.Options(
	fx.Provide(Load),
	fx.Invoke(logSettings),
)

// logSettings reports which optional integrations are enabled. Secrets are never logged.
func logSettings(cfg *Config, logger *slog.Logger) {
	logger.Info("configuration loaded",
		slog.String("addr", cfg.RunAddress),
		slog.Bool("stripe", cfg.StripeAPIKey != ""),
		slog.Bool("redis_lock", cfg.RedisAddress != ""),
		slog.Int("kafka_brokers", len(cfg.KafkaBrokers)),
		slog.String("kafka_topic", cfg.KafkaTopic),
		slog.Duration("outbox_poll", cfg.OutboxPollInterval),
		slog.Int("workers", cfg.WorkerPoolSize),
		slog.Bool("admin_bootstrap", cfg.AdminLogin != ""),
	)
}
