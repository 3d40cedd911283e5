package postgres

import (
	"context"
	"time"

	"github.com/polkiloo/storeadmin/internal/domain/model"
)

func (r *customerRepository) MirrorOrder(ctx context.Context, customerID, orderID string, fields model.Document) error {
	const query = `INSERT INTO customer_orders (customer_id, order_id, data) VALUES ($1, $2, $3::jsonb)
                   ON CONFLICT (customer_id, order_id) DO UPDATE SET data = customer_orders.data || EXCLUDED.data`
	doc, err := encodeDocument(fields)
	if err != nil {
		return err
	}
	_, err = r.storage.pool.Exec(ctx, query, customerID, orderID, doc)
	return err
}

// RecordCancellation increments the counter in a single upsert.
func (r *customerRepository) RecordCancellation(ctx context.Context, customerID string, at time.Time) error {
	const query = `INSERT INTO customers (id, data)
                   VALUES ($1, jsonb_build_object('cancellationsCount', 1, 'lastCancelledAt', $2::timestamptz))
                   ON CONFLICT (id) DO UPDATE SET data = customers.data || jsonb_build_object(
                       'cancellationsCount', COALESCE((customers.data->>'cancellationsCount')::bigint, 0) + 1,
                       'lastCancelledAt', $2::timestamptz)`
	_, err := r.storage.pool.Exec(ctx, query, customerID, at)
	return err
}

func (r *archiveRepository) Archive(ctx context.Context, id string, fields model.Document) error {
	const query = `INSERT INTO delivered_orders (id, data, archived_at) VALUES ($1, $2::jsonb, NOW())
                   ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, archived_at = EXCLUDED.archived_at`
	doc, err := encodeDocument(fields)
	if err != nil {
		return err
	}
	_, err = r.storage.pool.Exec(ctx, query, id, doc)
	return err
}
