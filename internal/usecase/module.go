package usecase

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/storeadmin/internal/config"
	"github.com/polkiloo/storeadmin/internal/domain/model"
	"github.com/polkiloo/storeadmin/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	newLocationUseCase,
	NewStatusEngine,
	newOrderQueryUseCase,
	NewCatalogUseCase,
)

func newLocationBounds(cfg *config.Config) model.LocationBounds {
	return model.LocationBounds{
		Racks:   cfg.MaxRacks,
		Shelves: cfg.MaxShelves,
		Bins:    cfg.MaxBins,
	}.WithDefaults()
}

func newLocationUseCase(locations repository.LocationRepository, cfg *config.Config, logger *zap.Logger) *LocationUseCase {
	return NewLocationUseCase(locations, newLocationBounds(cfg), logger)
}

func newOrderQueryUseCase(orders repository.OrderRepository, cfg *config.Config, logger *zap.Logger) *OrderQueryUseCase {
	return NewOrderQueryUseCase(orders, cfg.OrdersPageSize, logger)
}
