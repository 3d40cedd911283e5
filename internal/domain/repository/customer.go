package repository

import (
	"context"
	"time"

	"github.com/polkiloo/storeadmin/internal/domain/model"
)

// CustomerRepository keeps per-customer projections of orders.
type CustomerRepository interface {
	// MirrorOrder merges fields into the customer's copy of the order.
	MirrorOrder(ctx context.Context, customerID, orderID string, fields model.Document) error
	// RecordCancellation atomically increments the lifetime cancellation counter.
	RecordCancellation(ctx context.Context, customerID string, at time.Time) error
}

// ArchiveRepository receives full copies of delivered orders.
type ArchiveRepository interface {
	Archive(ctx context.Context, id string, fields model.Document) error
}
