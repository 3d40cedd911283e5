package model

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Side effects triggered by a status change.
const (
	EffectMirror       = "mirror"
	EffectNotification = "notification"
	EffectArchive      = "archive"
	EffectCancellation = "cancellation-count"
	EffectAnnotate     = "annotate-location"
)

// Warning records a failed best-effort side effect.
type Warning struct {
	Effect string
	Err    error
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s: %v", w.Effect, w.Err)
}

// StatusUpdate is the outcome of a successful status change. The primary write
// succeeded; Warnings lists side effects that did not.
type StatusUpdate struct {
	OrderID  string
	Status   OrderStatus
	Fields   Document
	Warnings []Warning
}

// Return workflow states.
const (
	ReturnStatusProcessing = "processing"
	ReturnStatusApproved   = "approved"
	ReturnStatusRejected   = "rejected"
	ReturnStatusCompleted  = "completed"
)

// StatusCounts maps dashboard statuses to order counts.
type StatusCounts struct {
	ByStatus map[OrderStatus]int64
	All      int64
}

// OrderPage is one page of orders.
type OrderPage struct {
	Orders     []Order
	NextCursor string
	HasMore    bool
}

// PageCursor positions unfiltered pagination after an order.
type PageCursor struct {
	CreatedAt time.Time
	ID        string
}

// Encode renders the cursor as an opaque token.
func (c PageCursor) Encode() string {
	raw := strconv.FormatInt(c.CreatedAt.UnixNano(), 10) + "|" + c.ID
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses a token produced by Encode.
func DecodeCursor(token string) (*PageCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	nanos, id, ok := strings.Cut(string(raw), "|")
	if !ok || id == "" {
		return nil, fmt.Errorf("decode cursor: malformed")
	}
	n, err := strconv.ParseInt(nanos, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	return &PageCursor{CreatedAt: time.Unix(0, n).UTC(), ID: id}, nil
}
