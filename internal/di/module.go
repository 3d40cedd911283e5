package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storeadmin/internal/adapter/sms"
	"github.com/polkiloo/storeadmin/internal/app"
	"github.com/polkiloo/storeadmin/internal/config"
	"github.com/polkiloo/storeadmin/internal/logger"
	"github.com/polkiloo/storeadmin/internal/pkg/auth"
	"github.com/polkiloo/storeadmin/internal/server/http/router"
	"github.com/polkiloo/storeadmin/internal/storage"
	"github.com/polkiloo/storeadmin/internal/usecase"
	"github.com/polkiloo/storeadmin/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		sms.Module,
		usecase.Module,
		fx.Provide(func(s sms.Sender) usecase.Notifier { return s }),
		fx.Provide(func(q *usecase.OrderQueryUseCase) worker.StatusCounter { return q }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
