package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/storeadmin/internal/domain/errors"
	"github.com/polkiloo/storeadmin/internal/domain/model"
)

const orderColumns = `SELECT id, data, created_at FROM orders`

func (r *orderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, orderColumns+` WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Update(ctx context.Context, id string, fields model.Document) error {
	const query = `UPDATE orders SET data = data || $2::jsonb WHERE id=$1`
	doc, err := encodeDocument(fields)
	if err != nil {
		return err
	}
	tag, err := r.storage.pool.Exec(ctx, query, id, doc)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) FindByStatusIn(ctx context.Context, statuses []string, limit int) ([]model.Order, error) {
	const query = orderColumns + ` WHERE data->>'status' = ANY($1) LIMIT $2`
	return r.list(ctx, query, statuses, limit)
}

func (r *orderRepository) FindByStatus(ctx context.Context, status string, limit int) ([]model.Order, error) {
	const query = orderColumns + ` WHERE data->>'status' = $1 LIMIT $2`
	return r.list(ctx, query, status, limit)
}

func (r *orderRepository) Recent(ctx context.Context, limit int) ([]model.Order, error) {
	const query = orderColumns + ` ORDER BY created_at DESC, id DESC LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *orderRepository) Page(ctx context.Context, after *model.PageCursor, limit int) ([]model.Order, error) {
	if after == nil {
		return r.Recent(ctx, limit)
	}
	const query = orderColumns + `
                   WHERE (created_at, id) < ($1, $2)
                   ORDER BY created_at DESC, id DESC
                   LIMIT $3`
	return r.list(ctx, query, after.CreatedAt, after.ID, limit)
}

func (r *orderRepository) CountByStatusIn(ctx context.Context, statuses []string) (int64, error) {
	const query = `SELECT COUNT(*) FROM orders WHERE data->>'status' = ANY($1)`
	var n int64
	err := r.storage.pool.QueryRow(ctx, query, statuses).Scan(&n)
	return n, err
}

func (r *orderRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	const query = `SELECT COUNT(*) FROM orders WHERE data->>'status' = $1`
	var n int64
	err := r.storage.pool.QueryRow(ctx, query, status).Scan(&n)
	return n, err
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// scanOrder reads an order row. The created_at column keys pagination and
// backfills a missing createdAt field.
func scanOrder(row pgx.Row) (model.Order, error) {
	var (
		id        string
		raw       []byte
		createdAt time.Time
	)
	if err := row.Scan(&id, &raw, &createdAt); err != nil {
		return model.Order{}, err
	}
	doc, err := decodeDocument(raw)
	if err != nil {
		return model.Order{}, err
	}
	if !doc.Has(model.FieldCreatedAt) && !createdAt.IsZero() {
		doc[model.FieldCreatedAt] = createdAt.UTC()
	}
	order := model.NewOrder(id, doc)
	order.SortedAt = createdAt.UTC()
	return order, nil
}
