package storage

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/storeadmin/internal/config"
	"github.com/polkiloo/storeadmin/internal/domain/repository"
	"github.com/polkiloo/storeadmin/internal/storage/mongodb"
	"github.com/polkiloo/storeadmin/internal/storage/postgres"
)

// Module wires the configured document store and its repository adapters.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(
		func(f repository.Factory) repository.OrderRepository { return f.Orders() },
		func(f repository.Factory) repository.LocationRepository { return f.Locations() },
		func(f repository.Factory) repository.CustomerRepository { return f.Customers() },
		func(f repository.Factory) repository.ArchiveRepository { return f.Archive() },
		func(f repository.Factory) repository.CategoryRepository { return f.Categories() },
		func(f repository.Factory) repository.ProductRepository { return f.Products() },
		func(f repository.Factory) repository.OfferMessageRepository { return f.OfferMessages() },
	),
	fx.Invoke(registerLifecycle),
)

var openPostgres = func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Factory, error) {
	s, err := postgres.New(ctx, cfg.DatabaseURI, logger)
	if err != nil {
		return nil, err
	}
	return s, nil
}

var openMongo = func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Factory, error) {
	s, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
	if err != nil {
		return nil, err
	}
	return s, nil
}

type factoryParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *zap.Logger
}

func newFactory(p factoryParams) (repository.Factory, error) {
	var (
		factory repository.Factory
		err     error
	)
	switch p.Config.StorageDriver {
	case config.StorageDriverPostgres:
		factory, err = openPostgres(p.Ctx, p.Config, p.Logger)
	case config.StorageDriverMongo:
		factory, err = openMongo(p.Ctx, p.Config, p.Logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", p.Config.StorageDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", p.Config.StorageDriver, err)
	}
	p.Logger.Info("storage ready", zap.String("driver", p.Config.StorageDriver))
	return factory, nil
}

func registerLifecycle(lc fx.Lifecycle, factory repository.Factory) {
	lc.Append(fx.Hook{
		OnStop: factory.Close,
	})
}
