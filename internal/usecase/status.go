package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/polkiloo/storeadmin/internal/domain/errors"
	"github.com/polkiloo/storeadmin/internal/domain/model"
	"github.com/polkiloo/storeadmin/internal/domain/repository"
)

const (
	shippedMessage   = "Your order %s has been shipped. Thank you for shopping with us!"
	deliveredMessage = "Your order %s has been delivered. Thank you for choosing us!"
)

// StatusEngine applies fulfillment status changes and their side effects.
type StatusEngine struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	archive   repository.ArchiveRepository
	notifier  Notifier
	logger    *zap.Logger
	now       func() time.Time
}

// NewStatusEngine constructs StatusEngine.
func NewStatusEngine(
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	archive repository.ArchiveRepository,
	notifier Notifier,
	logger *zap.Logger,
) *StatusEngine {
	return &StatusEngine{
		orders:    orders,
		customers: customers,
		archive:   archive,
		notifier:  notifier,
		logger:    logger.Named("status"),
		now:       time.Now,
	}
}

// UpdateStatus normalizes rawStatus and persists it together with additional
// fields and the status-specific timestamp and payment fields. The normalized
// status and updatedAt win over same-named keys in additional. A status that
// is blank after trimming is rejected with ErrInvalidInput. Only a failure
// to load or write the order is returned as an error; mirroring, notification,
// archival and cancellation bookkeeping failures are reported as warnings.
func (e *StatusEngine) UpdateStatus(ctx context.Context, orderID, rawStatus string, additional model.Document) (model.StatusUpdate, error) {
	order, err := e.orders.Get(ctx, orderID)
	if err != nil {
		return model.StatusUpdate{}, fmt.Errorf("load order %s: %w", orderID, err)
	}

	status := model.NormalizeStatus(rawStatus)
	if status == "" {
		return model.StatusUpdate{}, fmt.Errorf("%w: empty status", domainErrors.ErrInvalidInput)
	}
	now := e.now().UTC()

	update := model.Document{}.Merge(additional)
	update[model.FieldStatus] = string(status)
	update[model.FieldUpdatedAt] = now
	augment(order, status, now, update)

	if err := e.orders.Update(ctx, orderID, update); err != nil {
		return model.StatusUpdate{}, fmt.Errorf("update order %s: %w", orderID, err)
	}

	result := model.StatusUpdate{OrderID: orderID, Status: status, Fields: update}
	log := e.logger.With(zap.String("order", orderID), zap.String("status", string(status)))
	log.Info("order status updated")

	e.mirror(ctx, log, order, update, &result)

	switch status {
	case model.OrderStatusShipped:
		e.notify(ctx, log, order, shippedMessage, &result)
	case model.OrderStatusDelivered:
		e.notify(ctx, log, order, deliveredMessage, &result)
		e.archiveDelivered(ctx, log, order, update, now, &result)
	case model.OrderStatusCancelled:
		e.recordCancellation(ctx, log, order, now, &result)
	}

	return result, nil
}

// augment stamps the first-entry timestamp and forces the payment status.
func augment(order *model.Order, status model.OrderStatus, now time.Time, update model.Document) {
	if field, ok := model.StatusTimestampField(status); ok && !order.Fields.Has(field) {
		update[field] = now
	}
	switch status {
	case model.OrderStatusDelivered:
		update[model.FieldPaymentStatus] = model.PaymentStatusPaid
	case model.OrderStatusCancelled, model.OrderStatusReturned:
		update[model.FieldPaymentStatus] = model.PaymentStatusRefunded
	}
}

func (e *StatusEngine) mirror(ctx context.Context, log *zap.Logger, order *model.Order, update model.Document, result *model.StatusUpdate) {
	customerID, ok := order.CustomerID()
	if !ok {
		log.Info("order has no customer linkage, skipping mirror")
		return
	}

	fields := model.Document{
		model.FieldStatus:    update[model.FieldStatus],
		model.FieldUpdatedAt: update[model.FieldUpdatedAt],
	}
	for _, key := range []string{
		model.FieldPaymentStatus,
		model.FieldShippedAt,
		model.FieldInTransitAt,
		model.FieldDeliveredAt,
		model.FieldCancelledAt,
		model.FieldReturnedAt,
	} {
		if v, ok := update[key]; ok {
			fields[key] = v
		}
	}

	if err := e.customers.MirrorOrder(ctx, customerID, order.ID, fields); err != nil {
		e.warn(log, result, model.EffectMirror, err)
	}
}

func (e *StatusEngine) notify(ctx context.Context, log *zap.Logger, order *model.Order, template string, result *model.StatusUpdate) {
	phone, ok := order.Phone()
	if !ok {
		log.Info("order has no phone number, skipping notification")
		return
	}
	if err := e.notifier.SendSMS(ctx, phone, fmt.Sprintf(template, order.DisplayNumber())); err != nil {
		e.warn(log, result, model.EffectNotification, err)
	}
}

func (e *StatusEngine) archiveDelivered(ctx context.Context, log *zap.Logger, order *model.Order, update model.Document, now time.Time, result *model.StatusUpdate) {
	fields := order.Fields.Merge(update)
	fields[model.FieldOriginalOrderID] = order.ID
	fields[model.FieldArchivedAt] = now
	fields[model.FieldStatus] = string(model.OrderStatusDelivered)
	if !fields.Has(model.FieldDeliveredAt) {
		fields[model.FieldDeliveredAt] = now
	}

	if err := e.archive.Archive(ctx, order.ID, fields); err != nil {
		e.warn(log, result, model.EffectArchive, err)
	}
}

func (e *StatusEngine) recordCancellation(ctx context.Context, log *zap.Logger, order *model.Order, now time.Time, result *model.StatusUpdate) {
	customerID, ok := order.CustomerID()
	if !ok {
		return
	}
	if err := e.customers.RecordCancellation(ctx, customerID, now); err != nil {
		e.warn(log, result, model.EffectCancellation, err)
	}
}

func (e *StatusEngine) warn(log *zap.Logger, result *model.StatusUpdate, effect string, err error) {
	log.Warn("side effect failed", zap.String("effect", effect), zap.Error(err))
	result.Warnings = append(result.Warnings, model.Warning{Effect: effect, Err: err})
}

// UpdateReturn records the return workflow state of an order. Completing a
// return marks the refund as issued.
func (e *StatusEngine) UpdateReturn(ctx context.Context, orderID, returnStatus, notes string) (model.Document, error) {
	switch returnStatus {
	case model.ReturnStatusProcessing, model.ReturnStatusApproved, model.ReturnStatusRejected, model.ReturnStatusCompleted:
	default:
		return nil, fmt.Errorf("%w: return status %q", domainErrors.ErrInvalidInput, returnStatus)
	}

	if _, err := e.orders.Get(ctx, orderID); err != nil {
		return nil, fmt.Errorf("load order %s: %w", orderID, err)
	}

	now := e.now().UTC()
	fields := model.Document{
		"returnStatus":    returnStatus,
		"returnNotes":     notes,
		"returnUpdatedAt": now,
	}
	if returnStatus == model.ReturnStatusCompleted {
		fields["refundStatus"] = "refunded"
		fields["refundedAt"] = now
	}

	if err := e.orders.Update(ctx, orderID, fields); err != nil {
		return nil, fmt.Errorf("update return %s: %w", orderID, err)
	}
	return fields, nil
}
