package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order field names as written by the storefront and this console.
const (
	FieldStatus          = "status"
	FieldUpdatedAt       = "updatedAt"
	FieldCreatedAt       = "createdAt"
	FieldPaymentStatus   = "paymentStatus"
	FieldOrderID         = "orderId"
	FieldCartItems       = "cartItems"
	FieldShippedAt       = "shippedAt"
	FieldInTransitAt     = "inTransitAt"
	FieldDeliveredAt     = "deliveredAt"
	FieldCancelledAt     = "cancelledAt"
	FieldReturnedAt      = "returnedAt"
	FieldOriginalOrderID = "originalOrderId"
	FieldArchivedAt      = "archivedAt"
)

const (
	PaymentStatusPaid     = "Paid"
	PaymentStatusRefunded = "Refunded"
)

// customerIDPaths are legacy locations of the customer linkage, first match wins.
var customerIDPaths = []string{"userId", "userUID", "userUid", "user.id", "userProfile.uid", "userProfile.id"}

// phonePaths are legacy locations of the customer phone number, first match wins.
var phonePaths = []string{"verifiedPhoneNumber", "userProfile.number", "userProfile.phone"}

// Order is one customer purchase as stored, with typed accessors over its fields.
type Order struct {
	ID     string
	Fields Document
	// SortedAt is the time the store orders pages by, when it differs from
	// the createdAt field.
	SortedAt time.Time
}

// NewOrder wraps a stored document.
func NewOrder(id string, fields Document) Order {
	if fields == nil {
		fields = Document{}
	}
	return Order{ID: id, Fields: fields}
}

// Status returns the raw stored status.
func (o Order) Status() string {
	return o.Fields.String(FieldStatus)
}

func (o Order) PaymentStatus() string {
	return o.Fields.String(FieldPaymentStatus)
}

// CreatedAt returns the creation time, zero when absent.
func (o Order) CreatedAt() time.Time {
	t, _ := o.Fields.Time(FieldCreatedAt)
	return t
}

// PageTime returns the time newest-first pages are keyed on.
func (o Order) PageTime() time.Time {
	if !o.SortedAt.IsZero() {
		return o.SortedAt
	}
	return o.CreatedAt()
}

func (o Order) UpdatedAt() time.Time {
	t, _ := o.Fields.Time(FieldUpdatedAt)
	return t
}

// OrderNumber returns the human-facing number when present.
func (o Order) OrderNumber() string {
	return o.Fields.String(FieldOrderID)
}

// DisplayNumber returns the order number or "#" followed by the first 8 characters of the id.
func (o Order) DisplayNumber() string {
	if n := o.OrderNumber(); n != "" {
		return n
	}
	id := o.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return "#" + id
}

// CustomerID extracts the customer linkage from legacy field names.
func (o Order) CustomerID() (string, bool) {
	return firstString(o.Fields, customerIDPaths)
}

// Phone extracts the notification phone number from legacy field names.
func (o Order) Phone() (string, bool) {
	return firstString(o.Fields, phonePaths)
}

// CartItems decodes the read-only line items.
func (o Order) CartItems() []CartItem {
	raw, ok := o.Fields.Lookup(FieldCartItems)
	if !ok {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	items := make([]CartItem, 0, len(list))
	for _, entry := range list {
		var fields Document
		switch v := entry.(type) {
		case Document:
			fields = v
		case map[string]any:
			fields = v
		default:
			continue
		}
		items = append(items, CartItem{
			Name:         fields.String("name"),
			Quantity:     intValue(fields, "quantity"),
			Unit:         fields.String("unit"),
			UnitSize:     fields.String("unitSize"),
			SellingPrice: DecimalValue(fields, "sellingPrice"),
			MRP:          DecimalValue(fields, "mrp"),
		})
	}
	return items
}

// Total sums line totals.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.CartItems() {
		total = total.Add(item.LineTotal())
	}
	return total
}

// CartItem is a single line of an order.
type CartItem struct {
	Name         string
	Quantity     int
	Unit         string
	UnitSize     string
	SellingPrice decimal.Decimal
	MRP          decimal.Decimal
}

// LineTotal is selling price times quantity.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.SellingPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// StatusTimestampField names the field stamped when an order first enters status.
func StatusTimestampField(status OrderStatus) (string, bool) {
	switch status {
	case OrderStatusShipped:
		return FieldShippedAt, true
	case OrderStatusInTransit:
		return FieldInTransitAt, true
	case OrderStatusDelivered:
		return FieldDeliveredAt, true
	case OrderStatusCancelled:
		return FieldCancelledAt, true
	case OrderStatusReturned:
		return FieldReturnedAt, true
	}
	return "", false
}

// DecimalValue reads a price that may be stored as a number or a string.
func DecimalValue(d Document, path string) decimal.Decimal {
	value, ok := d.Lookup(path)
	if !ok {
		return decimal.Zero
	}
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero
		}
		return parsed
	case decimal.Decimal:
		return v
	}
	return decimal.Zero
}

func intValue(d Document, path string) int {
	value, ok := d.Lookup(path)
	if !ok {
		return 0
	}
	switch v := value.(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

func firstString(d Document, paths []string) (string, bool) {
	for _, path := range paths {
		if v := d.String(path); v != "" {
			return v, true
		}
	}
	return "", false
}
