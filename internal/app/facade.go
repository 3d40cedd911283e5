package app

import (
	"context"
	"time"

	"github.com/polkiloo/storeadmin/internal/domain/model"
	"github.com/polkiloo/storeadmin/internal/usecase"
)

// HealthChecker reports whether the storage backend is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// CountsSource serves the last computed dashboard counts.
type CountsSource interface {
	Snapshot() (model.StatusCounts, time.Time, bool)
}

// ConsoleFacade exposes the admin console operations to the HTTP layer.
type ConsoleFacade struct {
	auth      *usecase.AuthUseCase
	status    *usecase.StatusEngine
	query     *usecase.OrderQueryUseCase
	locations *usecase.LocationUseCase
	catalog   *usecase.CatalogUseCase
	health    HealthChecker
	counts    CountsSource
}

func NewConsoleFacade(
	auth *usecase.AuthUseCase,
	status *usecase.StatusEngine,
	query *usecase.OrderQueryUseCase,
	locations *usecase.LocationUseCase,
	catalog *usecase.CatalogUseCase,
	health HealthChecker,
	counts CountsSource,
) *ConsoleFacade {
	return &ConsoleFacade{
		auth:      auth,
		status:    status,
		query:     query,
		locations: locations,
		catalog:   catalog,
		health:    health,
		counts:    counts,
	}
}

func (f *ConsoleFacade) ParseToken(token string) (string, error) {
	return f.auth.ParseToken(token)
}

// Orders lists by status when one is given, otherwise pages through all orders.
func (f *ConsoleFacade) Orders(ctx context.Context, status, cursor string, limit int) (model.OrderPage, error) {
	if status != "" {
		return f.query.ListByStatus(ctx, status, limit)
	}
	return f.query.List(ctx, cursor, limit)
}

func (f *ConsoleFacade) Order(ctx context.Context, id string) (*model.Order, error) {
	return f.query.Get(ctx, id)
}

func (f *ConsoleFacade) UpdateOrderStatus(ctx context.Context, id, status string, fields model.Document) (model.StatusUpdate, error) {
	return f.status.UpdateStatus(ctx, id, status, fields)
}

func (f *ConsoleFacade) UpdateReturn(ctx context.Context, id, returnStatus, notes string) (model.Document, error) {
	return f.status.UpdateReturn(ctx, id, returnStatus, notes)
}

// OrderCounts prefers the refresher snapshot and falls back to live counting
// before the first refresh completes. A zero time marks live counts.
func (f *ConsoleFacade) OrderCounts(ctx context.Context) (model.StatusCounts, time.Time, error) {
	if f.counts != nil {
		if counts, refreshed, ok := f.counts.Snapshot(); ok {
			return counts, refreshed, nil
		}
	}
	counts, err := f.query.Counts(ctx)
	return counts, time.Time{}, err
}

func (f *ConsoleFacade) SuggestLocation(ctx context.Context, bounds model.LocationBounds) (model.Suggestion, error) {
	return f.locations.Suggest(ctx, bounds)
}

func (f *ConsoleFacade) ReserveLocation(ctx context.Context, code string, extra model.Document) error {
	return f.locations.Reserve(ctx, code, extra)
}

func (f *ConsoleFacade) Location(ctx context.Context, code string) (*model.Location, error) {
	return f.locations.Get(ctx, code)
}

func (f *ConsoleFacade) CreateCategory(ctx context.Context, name, description, imageURL string) (*model.Category, error) {
	return f.catalog.CreateCategory(ctx, name, description, imageURL)
}

func (f *ConsoleFacade) Categories(ctx context.Context) ([]model.Category, error) {
	return f.catalog.Categories(ctx)
}

func (f *ConsoleFacade) DeleteCategory(ctx context.Context, id string) error {
	return f.catalog.DeleteCategory(ctx, id)
}

func (f *ConsoleFacade) CreateProduct(ctx context.Context, in model.ProductInput) (*model.Product, []model.Warning, error) {
	return f.catalog.CreateProduct(ctx, in)
}

func (f *ConsoleFacade) Products(ctx context.Context, category string) ([]model.Product, error) {
	return f.catalog.Products(ctx, category)
}

func (f *ConsoleFacade) Product(ctx context.Context, category, id string) (*model.Product, error) {
	return f.catalog.Product(ctx, category, id)
}

func (f *ConsoleFacade) DeleteProduct(ctx context.Context, category, id string) error {
	return f.catalog.DeleteProduct(ctx, category, id)
}

func (f *ConsoleFacade) RelocateProduct(ctx context.Context, category, id string, slot model.Slot) (*model.Product, []model.Warning, error) {
	return f.catalog.RelocateProduct(ctx, category, id, slot)
}

func (f *ConsoleFacade) SetOfferBand(ctx context.Context, category, id string, show bool) (*model.Product, error) {
	return f.catalog.SetOfferBand(ctx, category, id, show)
}

func (f *ConsoleFacade) OfferMessages(ctx context.Context) ([]model.OfferMessage, error) {
	return f.catalog.OfferMessages(ctx)
}

func (f *ConsoleFacade) CreateOfferMessage(ctx context.Context, text string) (*model.OfferMessage, error) {
	return f.catalog.CreateOfferMessage(ctx, text)
}

func (f *ConsoleFacade) UpdateOfferMessage(ctx context.Context, id, text string, position int) (*model.OfferMessage, error) {
	return f.catalog.UpdateOfferMessage(ctx, id, text, position)
}

func (f *ConsoleFacade) DeleteOfferMessage(ctx context.Context, id string) error {
	return f.catalog.DeleteOfferMessage(ctx, id)
}

func (f *ConsoleFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
