package di

import (
	"github.com/polkiloo/ordermart/internal/adapter/events"
	"github.com/polkiloo/ordermart/internal/adapter/payment"
	"github.com/polkiloo/ordermart/internal/app"
	"github.com/polkiloo/ordermart/internal/config"
	"github.com/polkiloo/ordermart/internal/logger"
	"github.com/polkiloo/ordermart/internal/metrics"
	"github.com/polkiloo/ordermart/internal/pkg/auth"
	"github.com/polkiloo/ordermart/internal/pkg/lock"
	"github.com/polkiloo/ordermart/internal/server/http/handlers"
	"github.com/polkiloo/ordermart/internal/server/http/router"
	"github.com/polkiloo/ordermart/internal/storage/postgres"
	"github.com/polkiloo/ordermart/internal/usecase"
	"go.uber.org/fx"
)

// Module assembles the full ordermart graph. opts are appended last so tests
// can fx.Replace any dependency.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		postgres.Module,
		lock.Module,
		payment.Module,
		events.Module,
		usecase.Module,
		fx.Provide(
			func(f *app.OrderMartFacade) handlers.Facade { return f },
			func(s *postgres.Storage) handlers.HealthChecker { return s },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
