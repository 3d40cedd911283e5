package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storeadmin/internal/domain/model"
	"github.com/polkiloo/storeadmin/internal/server/http/dto"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/admin/orders.
func (h *OrderHandler) List(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		badRequest(c, "limit must be a non-negative integer")
		return
	}

	page, err := h.facade.Orders(c.Request.Context(), c.Query("status"), c.Query("cursor"), limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	response := dto.OrderPageResponse{
		Orders:     make([]dto.OrderResponse, 0, len(page.Orders)),
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}
	for _, o := range page.Orders {
		response.Orders = append(response.Orders, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/admin/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// UpdateStatus handles POST /api/admin/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status is required")
		return
	}

	result, err := h.facade.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status, model.Document(req.Fields))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusUpdateResponse{
		OrderID:  result.OrderID,
		Status:   string(result.Status),
		Warnings: toWarnings(result.Warnings),
	})
}

// UpdateReturn handles POST /api/admin/orders/:id/return.
func (h *OrderHandler) UpdateReturn(c *gin.Context) {
	var req dto.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "returnStatus is required")
		return
	}

	fields, err := h.facade.UpdateReturn(c.Request.Context(), c.Param("id"), req.ReturnStatus, req.Notes)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, fields)
}

// Counts handles GET /api/admin/orders/counts.
func (h *OrderHandler) Counts(c *gin.Context) {
	counts, refreshedAt, err := h.facade.OrderCounts(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	response := dto.CountsResponse{
		Counts: make(map[string]int64, len(counts.ByStatus)),
		All:    counts.All,
	}
	for status, n := range counts.ByStatus {
		response.Counts[string(status)] = n
	}
	if !refreshedAt.IsZero() {
		response.RefreshedAt = &refreshedAt
		response.Cached = true
	}
	c.JSON(http.StatusOK, response)
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:            order.ID,
		DisplayNumber: order.DisplayNumber(),
		Status:        order.Status(),
		PaymentStatus: order.PaymentStatus(),
		Total:         order.Total().StringFixed(2),
		CreatedAt:     timePtr(order.CreatedAt()),
		UpdatedAt:     timePtr(order.UpdatedAt()),
		Fields:        order.Fields,
	}
	if resp.Fields == nil {
		resp.Fields = map[string]any{}
	}
	if id, ok := order.CustomerID(); ok {
		resp.CustomerID = id
	}
	for _, item := range order.CartItems() {
		resp.Items = append(resp.Items, dto.CartItem{
			Name:         item.Name,
			Quantity:     item.Quantity,
			Unit:         item.Unit,
			UnitSize:     item.UnitSize,
			SellingPrice: item.SellingPrice.StringFixed(2),
			MRP:          item.MRP.StringFixed(2),
			LineTotal:    item.LineTotal().StringFixed(2),
		})
	}
	return resp
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
