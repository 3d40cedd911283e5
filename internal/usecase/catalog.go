package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/polkiloo/storeadmin/internal/domain/errors"
	"github.com/polkiloo/storeadmin/internal/domain/model"
	"github.com/polkiloo/storeadmin/internal/domain/repository"
)

// CatalogUseCase manages categories, products and the storefront offer
// messages, reserving a storage slot for every new product.
type CatalogUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	offers     repository.OfferMessageRepository
	locations  *LocationUseCase
	validate   *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	offers repository.OfferMessageRepository,
	locations *LocationUseCase,
	logger *zap.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		categories: categories,
		products:   products,
		offers:     offers,
		locations:  locations,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		logger:     logger.Named("catalog"),
		now:        time.Now,
	}
}

// CreateCategory stores a new category.
func (u *CatalogUseCase) CreateCategory(ctx context.Context, name, description, imageURL string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", domainErrors.ErrInvalidInput)
	}
	category := &model.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		ImageURL:    strings.TrimSpace(imageURL),
		CreatedAt:   u.now().UTC(),
	}
	if err := u.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// Categories lists all categories.
func (u *CatalogUseCase) Categories(ctx context.Context) ([]model.Category, error) {
	return u.categories.List(ctx)
}

// DeleteCategory removes a category.
func (u *CatalogUseCase) DeleteCategory(ctx context.Context, id string) error {
	return u.categories.Delete(ctx, id)
}

// CreateProduct validates in, reserves its storage slot and stores the
// product. A taken slot aborts creation with ErrLocationConflict. Failing to
// link the slot back to the product is reported as a warning.
func (u *CatalogUseCase) CreateProduct(ctx context.Context, in model.ProductInput) (*model.Product, []model.Warning, error) {
	if err := u.validateProduct(in); err != nil {
		return nil, nil, err
	}
	if _, err := u.categories.Get(ctx, in.Category); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: unknown category %q", domainErrors.ErrInvalidInput, in.Category)
		}
		return nil, nil, fmt.Errorf("load category: %w", err)
	}

	slot, err := u.pickSlot(ctx, in)
	if err != nil {
		return nil, nil, err
	}

	now := u.now().UTC()
	product := &model.Product{
		ID:            uuid.NewString(),
		Category:      in.Category,
		Name:          strings.TrimSpace(in.Name),
		NameTamil:     strings.TrimSpace(in.NameTamil),
		Description:   in.Description,
		Keywords:      in.Keywords,
		Options:       in.Options,
		ImageURLs:     in.ImageURLs,
		ShowOfferBand: in.ShowOfferBand,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var code string
	if slot != nil {
		code = slot.Code()
		if err := u.locations.Reserve(ctx, code, model.Document{
			"category":    in.Category,
			"productName": product.Name,
		}); err != nil {
			return nil, nil, err
		}
		product.Location = model.NewProductLocation(*slot)
	}

	if err := u.products.Create(ctx, product); err != nil {
		if code != "" {
			_ = u.locations.Release(ctx, code)
		}
		return nil, nil, fmt.Errorf("create product: %w", err)
	}

	var warnings []model.Warning
	if code != "" {
		if err := u.linkLocation(ctx, code, product); err != nil {
			u.logger.Warn("failed to link location to product",
				zap.String("code", code),
				zap.String("product", product.ID),
				zap.Error(err),
			)
			warnings = append(warnings, model.Warning{Effect: model.EffectAnnotate, Err: err})
		}
	}

	u.logger.Info("product created",
		zap.String("product", product.ID),
		zap.String("category", product.Category),
		zap.Int("number", product.ProductNumber),
		zap.String("location", code),
	)
	return product, warnings, nil
}

func (u *CatalogUseCase) validateProduct(in model.ProductInput) error {
	if err := u.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", domainErrors.ErrInvalidInput, err)
	}
	for i, opt := range in.Options {
		if opt.MRP.IsNegative() || opt.SellingPrice.IsNegative() || opt.SpecialPrice.IsNegative() {
			return fmt.Errorf("%w: option %d has a negative price", domainErrors.ErrInvalidInput, i)
		}
	}
	return nil
}

func (u *CatalogUseCase) pickSlot(ctx context.Context, in model.ProductInput) (*model.Slot, error) {
	if in.Slot != nil {
		slot := *in.Slot
		return &slot, nil
	}
	if !in.AutoLocation {
		return nil, nil
	}
	suggestion, err := u.locations.Suggest(ctx, model.LocationBounds{})
	if err != nil {
		return nil, err
	}
	if suggestion.Exhausted {
		return nil, domainErrors.ErrLocationsExhausted
	}
	return &suggestion.Slot, nil
}

func (u *CatalogUseCase) linkLocation(ctx context.Context, code string, product *model.Product) error {
	return u.locations.Annotate(ctx, code, model.Document{
		"productId":     product.ID,
		"productPath":   product.Path(),
		"category":      product.Category,
		"productNumber": product.ProductNumber,
		"productName":   product.Name,
	})
}

// RelocateProduct moves a product to slot. The previous slot stays reserved.
func (u *CatalogUseCase) RelocateProduct(ctx context.Context, category, id string, slot model.Slot) (*model.Product, []model.Warning, error) {
	product, err := u.products.Get(ctx, category, id)
	if err != nil {
		return nil, nil, err
	}

	code := slot.Code()
	if product.Location != nil && product.Location.Code == code {
		return product, nil, nil
	}

	if err := u.locations.Reserve(ctx, code, model.Document{
		"category":    product.Category,
		"productName": product.Name,
	}); err != nil {
		return nil, nil, err
	}

	location := model.NewProductLocation(slot)
	if err := u.products.UpdateLocation(ctx, category, id, location); err != nil {
		_ = u.locations.Release(ctx, code)
		return nil, nil, fmt.Errorf("update product location: %w", err)
	}

	previous := product.Location
	product.Location = location
	product.UpdatedAt = u.now().UTC()

	var warnings []model.Warning
	if err := u.linkLocation(ctx, code, product); err != nil {
		u.logger.Warn("failed to link location to product", zap.String("code", code), zap.Error(err))
		warnings = append(warnings, model.Warning{Effect: model.EffectAnnotate, Err: err})
	}
	if previous != nil {
		_ = u.locations.Release(ctx, previous.Code)
	}
	return product, warnings, nil
}

// Products lists the products of a category.
func (u *CatalogUseCase) Products(ctx context.Context, category string) ([]model.Product, error) {
	return u.products.ListByCategory(ctx, category)
}

// Product returns a single product.
func (u *CatalogUseCase) Product(ctx context.Context, category, id string) (*model.Product, error) {
	return u.products.Get(ctx, category, id)
}

// DeleteProduct removes a product. Its slot stays reserved.
func (u *CatalogUseCase) DeleteProduct(ctx context.Context, category, id string) error {
	return u.products.Delete(ctx, category, id)
}

// SetOfferBand shows or hides the offer band of a product.
func (u *CatalogUseCase) SetOfferBand(ctx context.Context, category, id string, show bool) (*model.Product, error) {
	if err := u.products.SetOfferBand(ctx, category, id, show); err != nil {
		return nil, fmt.Errorf("set offer band: %w", err)
	}
	u.logger.Info("offer band changed",
		zap.String("category", category),
		zap.String("product", id),
		zap.Bool("show", show),
	)
	return u.products.Get(ctx, category, id)
}

// OfferMessages lists the offer messages in display order.
func (u *CatalogUseCase) OfferMessages(ctx context.Context) ([]model.OfferMessage, error) {
	return u.offers.List(ctx)
}

// CreateOfferMessage appends a message after the current last one.
func (u *CatalogUseCase) CreateOfferMessage(ctx context.Context, text string) (*model.OfferMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is required", domainErrors.ErrInvalidInput)
	}

	existing, err := u.offers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list offer messages: %w", err)
	}
	position := 1
	for _, m := range existing {
		if m.Position >= position {
			position = m.Position + 1
		}
	}

	message := &model.OfferMessage{
		ID:        uuid.NewString(),
		Text:      text,
		Position:  position,
		CreatedAt: u.now().UTC(),
	}
	if err := u.offers.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("create offer message: %w", err)
	}
	return message, nil
}

// UpdateOfferMessage replaces the text and position of a message.
func (u *CatalogUseCase) UpdateOfferMessage(ctx context.Context, id, text string, position int) (*model.OfferMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is required", domainErrors.ErrInvalidInput)
	}
	if position < 1 {
		return nil, fmt.Errorf("%w: order must be positive", domainErrors.ErrInvalidInput)
	}
	message := &model.OfferMessage{ID: id, Text: text, Position: position}
	if err := u.offers.Update(ctx, message); err != nil {
		return nil, fmt.Errorf("update offer message: %w", err)
	}
	return message, nil
}

// DeleteOfferMessage removes a message. Positions of the others are kept.
func (u *CatalogUseCase) DeleteOfferMessage(ctx context.Context, id string) error {
	return u.offers.Delete(ctx, id)
}
