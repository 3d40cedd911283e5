package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/storeadmin/internal/domain/errors"
	"github.com/polkiloo/storeadmin/internal/domain/model"
)

// StatusCall records a status update request.
type StatusCall struct {
	ID     string
	Status string
	Fields model.Document
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	OrdersFn func(ctx context.Context, status, cursor string, limit int) (model.OrderPage, error)
	OrderFn  func(ctx context.Context, id string) (*model.Order, error)
	StatusFn func(ctx context.Context, id, status string, fields model.Document) (model.StatusUpdate, error)
	ReturnFn func(ctx context.Context, id, returnStatus, notes string) (model.Document, error)
	CountsFn func(ctx context.Context) (model.StatusCounts, time.Time, error)

	mu          sync.Mutex
	StatusCalls []StatusCall
}

// Orders delegates to OrdersFn or returns an empty page.
func (s *OrderFacadeStub) Orders(ctx context.Context, status, cursor string, limit int) (model.OrderPage, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, status, cursor, limit)
	}
	return model.OrderPage{}, nil
}

// Order delegates to OrderFn or reports not found.
func (s *OrderFacadeStub) Order(ctx context.Context, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateOrderStatus records the call and delegates to StatusFn.
func (s *OrderFacadeStub) UpdateOrderStatus(ctx context.Context, id, status string, fields model.Document) (model.StatusUpdate, error) {
	s.mu.Lock()
	s.StatusCalls = append(s.StatusCalls, StatusCall{ID: id, Status: status, Fields: fields})
	s.mu.Unlock()
	if s.StatusFn != nil {
		return s.StatusFn(ctx, id, status, fields)
	}
	normalized := model.NormalizeStatus(status)
	return model.StatusUpdate{OrderID: id, Status: normalized, Fields: model.Document{"status": string(normalized)}}, nil
}

// UpdateReturn delegates to ReturnFn or echoes the request.
func (s *OrderFacadeStub) UpdateReturn(ctx context.Context, id, returnStatus, notes string) (model.Document, error) {
	if s.ReturnFn != nil {
		return s.ReturnFn(ctx, id, returnStatus, notes)
	}
	return model.Document{"returnStatus": returnStatus, "returnNotes": notes}, nil
}

// OrderCounts delegates to CountsFn or returns empty live counts.
func (s *OrderFacadeStub) OrderCounts(ctx context.Context) (model.StatusCounts, time.Time, error) {
	if s.CountsFn != nil {
		return s.CountsFn(ctx)
	}
	return model.StatusCounts{ByStatus: map[model.OrderStatus]int64{}}, time.Time{}, nil
}

// LocationFacadeStub provides controllable behaviour for location endpoints.
type LocationFacadeStub struct {
	SuggestFn  func(ctx context.Context, bounds model.LocationBounds) (model.Suggestion, error)
	ReserveFn  func(ctx context.Context, code string, extra model.Document) error
	LocationFn func(ctx context.Context, code string) (*model.Location, error)
}

// SuggestLocation delegates to SuggestFn or suggests the first slot.
func (s LocationFacadeStub) SuggestLocation(ctx context.Context, bounds model.LocationBounds) (model.Suggestion, error) {
	if s.SuggestFn != nil {
		return s.SuggestFn(ctx, bounds)
	}
	return model.Suggestion{Slot: model.Slot{Rack: 1, Shelf: 1, Bin: 1}}, nil
}

// ReserveLocation delegates to ReserveFn or succeeds.
func (s LocationFacadeStub) ReserveLocation(ctx context.Context, code string, extra model.Document) error {
	if s.ReserveFn != nil {
		return s.ReserveFn(ctx, code, extra)
	}
	return nil
}

// Location delegates to LocationFn or reports not found.
func (s LocationFacadeStub) Location(ctx context.Context, code string) (*model.Location, error) {
	if s.LocationFn != nil {
		return s.LocationFn(ctx, code)
	}
	return nil, domainErrors.ErrNotFound
}

// CatalogFacadeStub provides controllable behaviour for catalog endpoints.
type CatalogFacadeStub struct {
	CreateCategoryFn  func(ctx context.Context, name, description, imageURL string) (*model.Category, error)
	CategoriesFn      func(ctx context.Context) ([]model.Category, error)
	DeleteCategoryFn  func(ctx context.Context, id string) error
	CreateProductFn   func(ctx context.Context, in model.ProductInput) (*model.Product, []model.Warning, error)
	ProductsFn        func(ctx context.Context, category string) ([]model.Product, error)
	ProductFn         func(ctx context.Context, category, id string) (*model.Product, error)
	DeleteProductFn   func(ctx context.Context, category, id string) error
	RelocateProductFn func(ctx context.Context, category, id string, slot model.Slot) (*model.Product, []model.Warning, error)
	SetOfferBandFn    func(ctx context.Context, category, id string, show bool) (*model.Product, error)
	OfferMessagesFn   func(ctx context.Context) ([]model.OfferMessage, error)
	CreateOfferFn     func(ctx context.Context, text string) (*model.OfferMessage, error)
	UpdateOfferFn     func(ctx context.Context, id, text string, position int) (*model.OfferMessage, error)
	DeleteOfferFn     func(ctx context.Context, id string) error
}

// CreateCategory delegates to CreateCategoryFn or returns a category named after input.
func (s CatalogFacadeStub) CreateCategory(ctx context.Context, name, description, imageURL string) (*model.Category, error) {
	if s.CreateCategoryFn != nil {
		return s.CreateCategoryFn(ctx, name, description, imageURL)
	}
	return &model.Category{ID: "cat-1", Name: name, Description: description, ImageURL: imageURL}, nil
}

// Categories delegates to CategoriesFn.
func (s CatalogFacadeStub) Categories(ctx context.Context) ([]model.Category, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return nil, nil
}

// DeleteCategory delegates to DeleteCategoryFn.
func (s CatalogFacadeStub) DeleteCategory(ctx context.Context, id string) error {
	if s.DeleteCategoryFn != nil {
		return s.DeleteCategoryFn(ctx, id)
	}
	return nil
}

// CreateProduct delegates to CreateProductFn or echoes the input.
func (s CatalogFacadeStub) CreateProduct(ctx context.Context, in model.ProductInput) (*model.Product, []model.Warning, error) {
	if s.CreateProductFn != nil {
		return s.CreateProductFn(ctx, in)
	}
	return &model.Product{ID: "prod-1", Category: in.Category, Name: in.Name, ProductNumber: 1}, nil, nil
}

// Products delegates to ProductsFn.
func (s CatalogFacadeStub) Products(ctx context.Context, category string) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, category)
	}
	return nil, nil
}

// Product delegates to ProductFn or reports not found.
func (s CatalogFacadeStub) Product(ctx context.Context, category, id string) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, category, id)
	}
	return nil, domainErrors.ErrNotFound
}

// DeleteProduct delegates to DeleteProductFn.
func (s CatalogFacadeStub) DeleteProduct(ctx context.Context, category, id string) error {
	if s.DeleteProductFn != nil {
		return s.DeleteProductFn(ctx, category, id)
	}
	return nil
}

// RelocateProduct delegates to RelocateProductFn or returns the product at slot.
func (s CatalogFacadeStub) RelocateProduct(ctx context.Context, category, id string, slot model.Slot) (*model.Product, []model.Warning, error) {
	if s.RelocateProductFn != nil {
		return s.RelocateProductFn(ctx, category, id, slot)
	}
	return &model.Product{ID: id, Category: category, Location: model.NewProductLocation(slot)}, nil, nil
}

// SetOfferBand delegates to SetOfferBandFn or returns the product with the band set.
func (s CatalogFacadeStub) SetOfferBand(ctx context.Context, category, id string, show bool) (*model.Product, error) {
	if s.SetOfferBandFn != nil {
		return s.SetOfferBandFn(ctx, category, id, show)
	}
	return &model.Product{ID: id, Category: category, ShowOfferBand: show}, nil
}

// OfferMessages delegates to OfferMessagesFn.
func (s CatalogFacadeStub) OfferMessages(ctx context.Context) ([]model.OfferMessage, error) {
	if s.OfferMessagesFn != nil {
		return s.OfferMessagesFn(ctx)
	}
	return nil, nil
}

// CreateOfferMessage delegates to CreateOfferFn or returns the first message.
func (s CatalogFacadeStub) CreateOfferMessage(ctx context.Context, text string) (*model.OfferMessage, error) {
	if s.CreateOfferFn != nil {
		return s.CreateOfferFn(ctx, text)
	}
	return &model.OfferMessage{ID: "msg-1", Text: text, Position: 1}, nil
}

// UpdateOfferMessage delegates to UpdateOfferFn or echoes the input.
func (s CatalogFacadeStub) UpdateOfferMessage(ctx context.Context, id, text string, position int) (*model.OfferMessage, error) {
	if s.UpdateOfferFn != nil {
		return s.UpdateOfferFn(ctx, id, text, position)
	}
	return &model.OfferMessage{ID: id, Text: text, Position: position}, nil
}

// DeleteOfferMessage delegates to DeleteOfferFn.
func (s CatalogFacadeStub) DeleteOfferMessage(ctx context.Context, id string) error {
	if s.DeleteOfferFn != nil {
		return s.DeleteOfferFn(ctx, id)
	}
	return nil
}

// ConsoleFacadeStub aggregates every facade stub used by the router.
type ConsoleFacadeStub struct {
	*OrderFacadeStub
	LocationFacadeStub
	CatalogFacadeStub
	TokenParserStub
	HealthErr error
}

// NewConsoleFacadeStub builds a facade stub that accepts any token as admin.
func NewConsoleFacadeStub() *ConsoleFacadeStub {
	return &ConsoleFacadeStub{
		OrderFacadeStub: &OrderFacadeStub{},
		TokenParserStub: TokenParserStub{Subject: "admin"},
	}
}

// HealthCheck returns HealthErr.
func (s *ConsoleFacadeStub) HealthCheck(context.Context) error {
	return s.HealthErr
}
