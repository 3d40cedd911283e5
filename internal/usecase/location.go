package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/polkiloo/storeadmin/internal/domain/errors"
	"github.com/polkiloo/storeadmin/internal/domain/model"
	"github.com/polkiloo/storeadmin/internal/domain/repository"
)

// LocationUseCase allocates and reserves rack/shelf/bin storage slots.
type LocationUseCase struct {
	locations repository.LocationRepository
	bounds    model.LocationBounds
	logger    *zap.Logger
	now       func() time.Time
}

// NewLocationUseCase constructs LocationUseCase with the default scan bounds.
func NewLocationUseCase(locations repository.LocationRepository, bounds model.LocationBounds, logger *zap.Logger) *LocationUseCase {
	return &LocationUseCase{
		locations: locations,
		bounds:    bounds.WithDefaults(),
		logger:    logger.Named("locations"),
		now:       time.Now,
	}
}

// Bounds returns the configured scan bounds.
func (u *LocationUseCase) Bounds() model.LocationBounds {
	return u.bounds
}

// Suggest scans rack, shelf and bin ascending from 1 and returns the first slot
// whose code is not reserved. It does not reserve the slot. When every slot is
// taken the result is (1,1,1) with Exhausted set.
func (u *LocationUseCase) Suggest(ctx context.Context, bounds model.LocationBounds) (model.Suggestion, error) {
	if bounds == (model.LocationBounds{}) {
		bounds = u.bounds
	}
	bounds = bounds.WithDefaults()

	codes, err := u.locations.ListCodes(ctx)
	if err != nil {
		return model.Suggestion{}, fmt.Errorf("list location codes: %w", err)
	}
	used := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		used[code] = struct{}{}
	}

	for rack := 1; rack <= bounds.Racks; rack++ {
		for shelf := 1; shelf <= bounds.Shelves; shelf++ {
			for bin := 1; bin <= bounds.Bins; bin++ {
				if _, taken := used[model.MakeCode(rack, shelf, bin)]; !taken {
					return model.Suggestion{Slot: model.Slot{Rack: rack, Shelf: shelf, Bin: bin}}, nil
				}
			}
		}
	}

	u.logger.Warn("storage space exhausted",
		zap.Int("racks", bounds.Racks),
		zap.Int("shelves", bounds.Shelves),
		zap.Int("bins", bounds.Bins),
	)
	return model.Suggestion{Slot: model.Slot{Rack: 1, Shelf: 1, Bin: 1}, Exhausted: true}, nil
}

// Reserve claims code for the caller, storing extra metadata and a reservation
// timestamp. A taken code yields ErrLocationConflict.
func (u *LocationUseCase) Reserve(ctx context.Context, code string, extra model.Document) error {
	if _, err := model.ParseCode(code); err != nil {
		return fmt.Errorf("%w: %v", domainErrors.ErrInvalidLocationCode, err)
	}
	fields := model.Document{}.Merge(extra)
	fields[model.FieldCode] = code
	fields[model.FieldReservedAt] = u.now().UTC()

	if err := u.locations.Reserve(ctx, code, fields); err != nil {
		if errors.Is(err, domainErrors.ErrLocationConflict) {
			return fmt.Errorf("reserve %s: %w", code, domainErrors.ErrLocationConflict)
		}
		return fmt.Errorf("reserve %s: %w", code, err)
	}
	return nil
}

// Annotate merges data into the slot document, creating it when missing.
func (u *LocationUseCase) Annotate(ctx context.Context, code string, data model.Document) error {
	onCreate := model.Document{
		model.FieldCode:      code,
		model.FieldCreatedAt: u.now().UTC(),
	}
	if err := u.locations.Annotate(ctx, code, data, onCreate); err != nil {
		return fmt.Errorf("annotate %s: %w", code, err)
	}
	return nil
}

// Release keeps the slot reserved. Slots are never freed automatically.
func (u *LocationUseCase) Release(_ context.Context, code string) error {
	u.logger.Debug("release is a no-op", zap.String("code", code))
	return nil
}

// Get returns a reserved slot.
func (u *LocationUseCase) Get(ctx context.Context, code string) (*model.Location, error) {
	return u.locations.Get(ctx, code)
}
