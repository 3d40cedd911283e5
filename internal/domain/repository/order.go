package repository

import (
	"context"

	"github.com/polkiloo/storeadmin/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Get(ctx context.Context, id string) (*model.Order, error)
	// Update merges fields into the stored order. Missing orders yield ErrNotFound.
	Update(ctx context.Context, id string, fields model.Document) error
	// FindByStatusIn returns orders whose status is one of statuses, unsorted.
	FindByStatusIn(ctx context.Context, statuses []string, limit int) ([]model.Order, error)
	FindByStatus(ctx context.Context, status string, limit int) ([]model.Order, error)
	// Recent returns the newest orders by creation time.
	Recent(ctx context.Context, limit int) ([]model.Order, error)
	// Page returns orders by creation time descending, starting after cursor when set.
	Page(ctx context.Context, after *model.PageCursor, limit int) ([]model.Order, error)
	CountByStatusIn(ctx context.Context, statuses []string) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}
