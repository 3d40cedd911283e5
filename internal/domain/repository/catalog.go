package repository

import (
	"context"

	"github.com/polkiloo/storeadmin/internal/domain/model"
)

// CategoryRepository manages product categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Get(ctx context.Context, id string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Delete(ctx context.Context, id string) error
}

// ProductRepository manages products stored under their category.
type ProductRepository interface {
	// Create assigns the next per-category product number and stores the product.
	Create(ctx context.Context, product *model.Product) error
	Get(ctx context.Context, category, id string) (*model.Product, error)
	ListByCategory(ctx context.Context, category string) ([]model.Product, error)
	UpdateLocation(ctx context.Context, category, id string, location *model.ProductLocation) error
	SetOfferBand(ctx context.Context, category, id string, show bool) error
	Delete(ctx context.Context, category, id string) error
}

// OfferMessageRepository manages the storefront offer messages.
type OfferMessageRepository interface {
	Create(ctx context.Context, message *model.OfferMessage) error
	// List returns messages by ascending position.
	List(ctx context.Context) ([]model.OfferMessage, error)
	Update(ctx context.Context, message *model.OfferMessage) error
	Delete(ctx context.Context, id string) error
}
