package handlers

import (
	"context"
	"time"

	"github.com/polkiloo/storeadmin/internal/domain/model"
)

// OrderFacade exposes order browsing and fulfillment.
type OrderFacade interface {
	Orders(ctx context.Context, status, cursor string, limit int) (model.OrderPage, error)
	Order(ctx context.Context, id string) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string, fields model.Document) (model.StatusUpdate, error)
	UpdateReturn(ctx context.Context, id, returnStatus, notes string) (model.Document, error)
	// OrderCounts returns cached counts when a snapshot exists. The time is
	// zero for live counts.
	OrderCounts(ctx context.Context) (model.StatusCounts, time.Time, error)
}

// LocationFacade exposes storage slot allocation.
type LocationFacade interface {
	SuggestLocation(ctx context.Context, bounds model.LocationBounds) (model.Suggestion, error)
	ReserveLocation(ctx context.Context, code string, extra model.Document) error
	Location(ctx context.Context, code string) (*model.Location, error)
}

// CatalogFacade exposes category, product and offer message management.
type CatalogFacade interface {
	CreateCategory(ctx context.Context, name, description, imageURL string) (*model.Category, error)
	Categories(ctx context.Context) ([]model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	CreateProduct(ctx context.Context, in model.ProductInput) (*model.Product, []model.Warning, error)
	Products(ctx context.Context, category string) ([]model.Product, error)
	Product(ctx context.Context, category, id string) (*model.Product, error)
	DeleteProduct(ctx context.Context, category, id string) error
	RelocateProduct(ctx context.Context, category, id string, slot model.Slot) (*model.Product, []model.Warning, error)
	SetOfferBand(ctx context.Context, category, id string, show bool) (*model.Product, error)
	OfferMessages(ctx context.Context) ([]model.OfferMessage, error)
	CreateOfferMessage(ctx context.Context, text string) (*model.OfferMessage, error)
	UpdateOfferMessage(ctx context.Context, id, text string, position int) (*model.OfferMessage, error)
	DeleteOfferMessage(ctx context.Context, id string) error
}

// HealthFacade reports backing store availability.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// ConsoleFacade aggregates the full set of operations used across handlers.
type ConsoleFacade interface {
	OrderFacade
	LocationFacade
	CatalogFacade
	HealthFacade
	ParseToken(token string) (string, error)
}
