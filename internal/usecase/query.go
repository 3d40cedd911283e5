package usecase

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	domainErrors "github.com/polkiloo/storeadmin/internal/domain/errors"
	"github.com/polkiloo/storeadmin/internal/domain/model"
	"github.com/polkiloo/storeadmin/internal/domain/repository"
)

const (
	// equalityFallbackVariants bounds the per-variant queries issued when a
	// membership query is rejected.
	equalityFallbackVariants = 3
	diagnosticSampleSize     = 20
	defaultPageSize          = 20
	maxPageSize              = 100
)

// OrderQueryUseCase reads orders by fulfillment status, tolerating historical
// spellings of the status field.
type OrderQueryUseCase struct {
	orders   repository.OrderRepository
	pageSize int
	logger   *zap.Logger
}

// NewOrderQueryUseCase constructs OrderQueryUseCase.
func NewOrderQueryUseCase(orders repository.OrderRepository, pageSize int, logger *zap.Logger) *OrderQueryUseCase {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &OrderQueryUseCase{orders: orders, pageSize: pageSize, logger: logger.Named("orders")}
}

func (u *OrderQueryUseCase) limit(n int) int {
	switch {
	case n <= 0:
		return u.pageSize
	case n > maxPageSize:
		return maxPageSize
	}
	return n
}

// Get returns a single order.
func (u *OrderQueryUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.Get(ctx, id)
}

// ListByStatus returns a single page of orders matching status in any known
// spelling, newest first. An empty status lists all orders.
func (u *OrderQueryUseCase) ListByStatus(ctx context.Context, status string, limit int) (model.OrderPage, error) {
	variants := model.StatusVariants(status)
	if len(variants) == 0 {
		return u.List(ctx, "", limit)
	}
	limit = u.limit(limit)
	log := u.logger.With(zap.String("status", status), zap.Strings("variants", variants))

	orders, err := u.orders.FindByStatusIn(ctx, variants, limit)
	if err != nil {
		log.Warn("membership query failed, falling back to equality queries", zap.Error(err))
		orders, err = u.findByEquality(ctx, variants, limit)
		if err != nil {
			return model.OrderPage{}, fmt.Errorf("find orders by status: %w", err)
		}
	}

	if len(orders) == 0 {
		log.Info("no orders from status queries, filtering recent orders")
		orders, err = u.recentMatching(ctx, log, variants, limit)
		if err != nil {
			return model.OrderPage{}, fmt.Errorf("find recent orders: %w", err)
		}
	}

	sortNewestFirst(orders)
	if len(orders) > limit {
		orders = orders[:limit]
	}
	return model.OrderPage{Orders: orders}, nil
}

func (u *OrderQueryUseCase) findByEquality(ctx context.Context, variants []string, limit int) ([]model.Order, error) {
	if len(variants) > equalityFallbackVariants {
		variants = variants[:equalityFallbackVariants]
	}
	seen := make(map[string]struct{})
	var merged []model.Order
	for _, v := range variants {
		batch, err := u.orders.FindByStatus(ctx, v, limit)
		if err != nil {
			return nil, err
		}
		for _, o := range batch {
			if _, ok := seen[o.ID]; ok {
				continue
			}
			seen[o.ID] = struct{}{}
			merged = append(merged, o)
		}
	}
	return merged, nil
}

func (u *OrderQueryUseCase) recentMatching(ctx context.Context, log *zap.Logger, variants []string, limit int) ([]model.Order, error) {
	recent, err := u.orders.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Order, 0, len(recent))
	for _, o := range recent {
		if model.MatchesVariants(o.Status(), variants) {
			matched = append(matched, o)
		}
	}

	if log.Core().Enabled(zap.DebugLevel) {
		u.logDiagnostics(ctx, log)
	}
	return matched, nil
}

func (u *OrderQueryUseCase) logDiagnostics(ctx context.Context, log *zap.Logger) {
	sample, err := u.orders.Recent(ctx, diagnosticSampleSize)
	if err != nil {
		log.Warn("diagnostic fetch failed", zap.Error(err))
		return
	}
	statuses := make([]string, 0, len(sample))
	for _, o := range sample {
		statuses = append(statuses, o.ID+"="+o.Status())
	}
	log.Debug("recent order statuses", zap.Strings("orders", statuses))
}

// List pages through all orders newest first using an opaque cursor.
func (u *OrderQueryUseCase) List(ctx context.Context, cursor string, limit int) (model.OrderPage, error) {
	limit = u.limit(limit)

	var after *model.PageCursor
	if cursor != "" {
		decoded, err := model.DecodeCursor(cursor)
		if err != nil {
			return model.OrderPage{}, fmt.Errorf("%w: %v", domainErrors.ErrInvalidInput, err)
		}
		after = decoded
	}

	orders, err := u.orders.Page(ctx, after, limit+1)
	if err != nil {
		return model.OrderPage{}, fmt.Errorf("page orders: %w", err)
	}

	page := model.OrderPage{Orders: orders}
	if len(orders) > limit {
		page.Orders = orders[:limit]
		page.HasMore = true
	}
	if page.HasMore {
		last := page.Orders[len(page.Orders)-1]
		page.NextCursor = model.PageCursor{CreatedAt: last.PageTime(), ID: last.ID}.Encode()
	}
	return page, nil
}

// CountStatus counts orders in status across its spellings. A rejected
// membership count falls back to summing equality counts.
func (u *OrderQueryUseCase) CountStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	variants := model.StatusVariants(string(status))
	n, err := u.orders.CountByStatusIn(ctx, variants)
	if err == nil {
		return n, nil
	}
	u.logger.Warn("membership count failed, summing equality counts", zap.String("status", string(status)), zap.Error(err))

	if len(variants) > equalityFallbackVariants {
		variants = variants[:equalityFallbackVariants]
	}
	var sum int64
	for _, v := range variants {
		c, err := u.orders.CountByStatus(ctx, v)
		if err != nil {
			return 0, fmt.Errorf("count orders with status %q: %w", v, err)
		}
		sum += c
	}
	return sum, nil
}

// Counts returns per-status counts for the dashboard statuses and their total.
func (u *OrderQueryUseCase) Counts(ctx context.Context) (model.StatusCounts, error) {
	counts := model.StatusCounts{ByStatus: make(map[model.OrderStatus]int64, len(model.DashboardStatuses))}
	for _, status := range model.DashboardStatuses {
		n, err := u.CountStatus(ctx, status)
		if err != nil {
			return model.StatusCounts{}, err
		}
		counts.ByStatus[status] = n
		counts.All += n
	}
	return counts, nil
}

func sortNewestFirst(orders []model.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt().After(orders[j].CreatedAt())
	})
}
