package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/ordermart/internal/adapter/events"
	"github.com/polkiloo/ordermart/internal/config"
	"github.com/polkiloo/ordermart/internal/domain/repository"
	"github.com/polkiloo/ordermart/internal/metrics"
	"github.com/polkiloo/ordermart/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewOrderMartFacade,
		newHTTPServer,
		newOutboxRelay,
		func(f *OrderMartFacade) adminBootstrapper { return f },
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type relayParams struct {
	fx.In

	Events    repository.EventRepository
	Publisher events.Publisher
	Config    *config.Config
	Logger    *slog.Logger
	Metrics   *metrics.Metrics `optional:"true"`
}

func newOutboxRelay(p relayParams) *worker.OutboxRelay {
	return worker.NewOutboxRelay(
		p.Events,
		p.Publisher,
		p.Config.OutboxPollInterval,
		p.Config.OutboxBatch,
		p.Config.WorkerPoolSize,
		p.Logger,
		p.Metrics,
	)
}

// adminBootstrapper seeds the first administrator.
type adminBootstrapper interface {
	EnsureAdmin(ctx context.Context, login, password string) (bool, error)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Relay      *worker.OutboxRelay
	Admin      adminBootstrapper
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if p.Config.AdminLogin != "" {
				created, err := p.Admin.EnsureAdmin(ctx, p.Config.AdminLogin, p.Config.AdminPassword)
				if err != nil {
					return err
				}
				if created {
					p.Logger.Info("admin account created", slog.String("login", p.Config.AdminLogin))
				}
			}

			p.Logger.Info("starting ordermart", slog.String("addr", p.Server.Addr))
			p.Relay.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Relay.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("ordermart stopped")
			return nil
		},
	})
}
