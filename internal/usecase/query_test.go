package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	domainErrors "github.com/polkiloo/storeadmin/internal/domain/errors"
	"github.com/polkiloo/storeadmin/internal/domain/model"
	testhelpers "github.com/polkiloo/storeadmin/internal/test"
)

func orderAt(id, status string, minutesAgo int) model.Order {
	return model.NewOrder(id, model.Document{
		"status":    status,
		"createdAt": fixedNow.Add(-time.Duration(minutesAgo) * time.Minute),
	})
}

func ids(orders []model.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestListByStatusMatchesSpellings(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub(
		orderAt("a", "Pending", 30),
		orderAt("b", "pending", 10),
		orderAt("c", "shipped", 5),
		orderAt("d", "in_transit", 20),
		orderAt("e", "In Transit", 1),
	)
	uc := NewOrderQueryUseCase(repo, 20, zap.NewNop())
	ctx := context.Background()

	page, err := uc.ListByStatus(ctx, "pending", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(page.Orders))
	assert.False(t, page.HasMore)

	page, err = uc.ListByStatus(ctx, "in-transit", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "d"}, ids(page.Orders))
	require.Len(t, repo.InCalls, 2)
	assert.LessOrEqual(t, len(repo.InCalls[1]), model.MaxStatusVariants)
}

func TestListByStatusRecentFallback(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub(
		orderAt("a", "CANCELLED", 3),
		orderAt("b", "pending", 2),
		orderAt("c", "CANCELLED", 1),
	)
	core, logs := observer.New(zapcore.DebugLevel)
	uc := NewOrderQueryUseCase(repo, 20, zap.New(core))

	page, err := uc.ListByStatus(context.Background(), "cancelled", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, ids(page.Orders))
	assert.Equal(t, 1, logs.FilterMessage("recent order statuses").Len())
}

func TestListByStatusEqualityFallback(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub(
		orderAt("a", "in-transit", 3),
		orderAt("b", "in_transit", 2),
		orderAt("c", "in transit", 1),
	)
	repo.InErr = errors.New("membership queries unsupported")
	uc := NewOrderQueryUseCase(repo, 20, zap.NewNop())

	page, err := uc.ListByStatus(context.Background(), "in-transit", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"in-transit", "in_transit", "in transit"}, repo.EqualCalls)
	assert.Equal(t, []string{"c", "b"}, ids(page.Orders))
}

func TestListByStatusEqualityFallbackFailure(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	repo.InErr = errors.New("in failed")
	repo.EqualErr = errors.New("eq failed")
	uc := NewOrderQueryUseCase(repo, 20, zap.NewNop())

	_, err := uc.ListByStatus(context.Background(), "pending", 5)
	assert.ErrorIs(t, err, repo.EqualErr)
}

func TestListByStatusEmptyStatusListsAll(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub(orderAt("a", "pending", 2), orderAt("b", "shipped", 1))
	uc := NewOrderQueryUseCase(repo, 20, zap.NewNop())

	page, err := uc.ListByStatus(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(page.Orders))
	assert.Empty(t, repo.InCalls)
}

func TestListPagesWithCursor(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub(
		orderAt("a", "pending", 5),
		orderAt("b", "pending", 4),
		orderAt("c", "pending", 3),
		orderAt("d", "pending", 2),
		orderAt("e", "pending", 1),
	)
	uc := NewOrderQueryUseCase(repo, 2, zap.NewNop())
	ctx := context.Background()

	var seen []string
	cursor := ""
	for i := 0; i < 5; i++ {
		page, err := uc.List(ctx, cursor, 0)
		require.NoError(t, err)
		seen = append(seen, ids(page.Orders)...)
		if !page.HasMore {
			assert.Empty(t, page.NextCursor)
			break
		}
		require.NotEmpty(t, page.NextCursor)
		cursor = page.NextCursor
	}
	assert.Equal(t, []string{"e", "d", "c", "b", "a"}, seen)

	_, err := uc.List(ctx, "!!not-a-cursor", 0)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidInput)
}

type sortedPageRepo struct {
	*testhelpers.OrderRepositoryStub
	page  []model.Order
	after []*model.PageCursor
}

func (r *sortedPageRepo) Page(ctx context.Context, after *model.PageCursor, limit int) ([]model.Order, error) {
	r.after = append(r.after, after)
	return r.page, nil
}

func TestListCursorUsesStoreSortTime(t *testing.T) {
	first := orderAt("a", "pending", 60*24*30)
	first.SortedAt = fixedNow
	second := orderAt("b", "pending", 1)
	repo := &sortedPageRepo{
		OrderRepositoryStub: testhelpers.NewOrderRepositoryStub(),
		page:                []model.Order{first, second},
	}
	uc := NewOrderQueryUseCase(repo, 1, zap.NewNop())

	page, err := uc.List(context.Background(), "", 0)
	require.NoError(t, err)
	require.True(t, page.HasMore)

	cursor, err := model.DecodeCursor(page.NextCursor)
	require.NoError(t, err)
	assert.True(t, fixedNow.Equal(cursor.CreatedAt), "cursor at %v", cursor.CreatedAt)
	assert.Equal(t, "a", cursor.ID)
}

func TestCounts(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub(
		orderAt("a", "Pending", 1),
		orderAt("b", "pending", 1),
		orderAt("c", "Delivered", 1),
		orderAt("d", "in_transit", 1),
		orderAt("e", "processing", 1),
	)
	uc := NewOrderQueryUseCase(repo, 20, zap.NewNop())

	counts, err := uc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.ByStatus[model.OrderStatusPending])
	assert.Equal(t, int64(1), counts.ByStatus[model.OrderStatusDelivered])
	assert.Equal(t, int64(1), counts.ByStatus[model.OrderStatusInTransit])
	assert.Equal(t, int64(0), counts.ByStatus[model.OrderStatusShipped])
	assert.NotContains(t, counts.ByStatus, model.OrderStatusProcessing)
	assert.Equal(t, int64(4), counts.All)
}

func TestCountStatusEqualityFallback(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub(
		orderAt("a", "pending", 1),
		orderAt("b", "Pending", 1),
	)
	repo.CountInErr = errors.New("unsupported")
	uc := NewOrderQueryUseCase(repo, 20, zap.NewNop())

	n, err := uc.CountStatus(context.Background(), model.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestQueryGet(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub(orderAt("a", "pending", 1))
	uc := NewOrderQueryUseCase(repo, 20, zap.NewNop())

	o, err := uc.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "pending", o.Status())

	_, err = uc.Get(context.Background(), "zzz")
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}
