package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/storeadmin/internal/config"
	"github.com/polkiloo/storeadmin/internal/domain/repository"
	"github.com/polkiloo/storeadmin/internal/server/http/handlers"
	"github.com/polkiloo/storeadmin/internal/usecase"
	"github.com/polkiloo/storeadmin/internal/worker"
)

const readHeaderTimeout = 5 * time.Second

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		fx.Annotate(
			newConsoleFacade,
			fx.As(fx.Self()),
			fx.As(new(handlers.ConsoleFacade)),
		),
		newHTTPServer,
		newCountsRefresher,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Auth      *usecase.AuthUseCase
	Status    *usecase.StatusEngine
	Query     *usecase.OrderQueryUseCase
	Locations *usecase.LocationUseCase
	Catalog   *usecase.CatalogUseCase
	Storage   repository.Factory
	Refresher *worker.CountsRefresher
}

func newConsoleFacade(p facadeParams) *ConsoleFacade {
	return NewConsoleFacade(p.Auth, p.Status, p.Query, p.Locations, p.Catalog, p.Storage, p.Refresher)
}

type serverParams struct {
	fx.In

	Config  *config.Config
	Handler http.Handler
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:              p.Config.RunAddress,
		Handler:           p.Handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

type workerParams struct {
	fx.In

	Counter worker.StatusCounter
	Config  *config.Config
	Logger  *zap.Logger
}

func newCountsRefresher(p workerParams) *worker.CountsRefresher {
	return worker.NewCountsRefresher(
		p.Counter,
		p.Config.CountsRefreshInterval,
		p.Config.CountsWorkers,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *zap.Logger
	Server     *http.Server
	Worker     *worker.CountsRefresher
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting storeadmin", zap.String("addr", p.Server.Addr))
			p.Worker.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", zap.Error(err))
					_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("storeadmin stopped")
			return nil
		},
	})
}
