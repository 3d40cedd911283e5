package dto

import "time"

// OrderResponse is the admin view of an order.
type OrderResponse struct {
	ID            string         `json:"id"`
	DisplayNumber string         `json:"displayNumber"`
	Status        string         `json:"status"`
	PaymentStatus string         `json:"paymentStatus,omitempty"`
	CustomerID    string         `json:"customerId,omitempty"`
	Total         string         `json:"total"`
	CreatedAt     *time.Time     `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time     `json:"updatedAt,omitempty"`
	Items         []CartItem     `json:"items,omitempty"`
	Fields        map[string]any `json:"fields"`
}

// CartItem is a read-only order line.
type CartItem struct {
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	Unit         string `json:"unit,omitempty"`
	UnitSize     string `json:"unitSize,omitempty"`
	SellingPrice string `json:"sellingPrice"`
	MRP          string `json:"mrp"`
	LineTotal    string `json:"lineTotal"`
}

// OrderPageResponse is one page of orders.
type OrderPageResponse struct {
	Orders     []OrderResponse `json:"orders"`
	NextCursor string          `json:"nextCursor,omitempty"`
	HasMore    bool            `json:"hasMore"`
}

// StatusUpdateRequest changes the fulfillment status of an order.
type StatusUpdateRequest struct {
	Status string         `json:"status" binding:"required"`
	Fields map[string]any `json:"fields"`
}

// Warning describes a side effect that failed after the status was saved.
type Warning struct {
	Effect  string `json:"effect"`
	Message string `json:"message"`
}

// StatusUpdateResponse reports the saved status and any side-effect warnings.
type StatusUpdateResponse struct {
	OrderID  string    `json:"orderId"`
	Status   string    `json:"status"`
	Warnings []Warning `json:"warnings"`
}

// ReturnRequest updates the return workflow of an order.
type ReturnRequest struct {
	ReturnStatus string `json:"returnStatus" binding:"required"`
	Notes        string `json:"notes"`
}

// CountsResponse holds dashboard counts per status.
type CountsResponse struct {
	Counts      map[string]int64 `json:"counts"`
	All         int64            `json:"all"`
	RefreshedAt *time.Time       `json:"refreshedAt,omitempty"`
	Cached      bool             `json:"cached"`
}
