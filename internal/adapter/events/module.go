package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/ordermart/internal/config"
)

// Module provides the event Publisher: Kafka when brokers are configured, log otherwise.
var Module = fx.Provide(newPublisher)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newPublisher(p publisherParams) Publisher {
	var pub Publisher
	if len(p.Config.KafkaBrokers) == 0 {
		pub = NewLogPublisher(p.Logger)
	} else {
		pub = NewKafkaPublisher(p.Config.KafkaBrokers, p.Config.KafkaTopic)
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	})
	return pub
}
