package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storeadmin/internal/domain/errors"
	"github.com/polkiloo/storeadmin/internal/domain/model"
	"github.com/polkiloo/storeadmin/internal/server/http/dto"
	"github.com/polkiloo/storeadmin/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/storeadmin/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, route, target string, handler gin.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		c.Set(middleware.AdminContextKey, "admin")
		handler(c)
	})

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(resp.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", resp.Body.String(), err)
	}
	return v
}

func TestCurrentAdmin(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentAdmin(c); got != "" {
		t.Fatalf("expected empty subject when not set, got %q", got)
	}

	c.Set(middleware.AdminContextKey, "admin-1")
	if got := CurrentAdmin(c); got != "admin-1" {
		t.Fatalf("expected admin-1, got %q", got)
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("load: %w", domainErrors.ErrNotFound), http.StatusNotFound},
		{domainErrors.ErrAlreadyExists, http.StatusConflict},
		{fmt.Errorf("reserve: %w", domainErrors.ErrLocationConflict), http.StatusConflict},
		{domainErrors.ErrLocationsExhausted, http.StatusConflict},
		{domainErrors.ErrInvalidInput, http.StatusBadRequest},
		{domainErrors.ErrInvalidLocationCode, http.StatusBadRequest},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Errorf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestOrderHandlerList(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	facade := &testhelpers.OrderFacadeStub{
		OrdersFn: func(_ context.Context, status, cursor string, limit int) (model.OrderPage, error) {
			if status != "shipped" || cursor != "abc" || limit != 5 {
				t.Fatalf("unexpected arguments %q %q %d", status, cursor, limit)
			}
			order := model.NewOrder("order-1", model.Document{
				"status":    "Shipped",
				"createdAt": created,
				"userId":    "cust-1",
				"cartItems": []any{map[string]any{"name": "Rice", "quantity": 2, "sellingPrice": "49.5", "mrp": "55"}},
			})
			return model.OrderPage{Orders: []model.Order{order}, NextCursor: "next", HasMore: true}, nil
		},
	}
	handler := NewOrderHandler(facade)

	resp := performRequest(t, http.MethodGet, "/orders", "/orders?status=shipped&cursor=abc&limit=5", handler.List, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	page := decode[dto.OrderPageResponse](t, resp)
	if len(page.Orders) != 1 || !page.HasMore || page.NextCursor != "next" {
		t.Fatalf("unexpected page %+v", page)
	}
	got := page.Orders[0]
	if got.DisplayNumber != "#order-1" || got.CustomerID != "cust-1" || got.Total != "99.00" {
		t.Fatalf("unexpected order %+v", got)
	}
	if got.CreatedAt == nil || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected createdAt %v", got.CreatedAt)
	}
	if len(got.Items) != 1 || got.Items[0].LineTotal != "99.00" {
		t.Fatalf("unexpected items %+v", got.Items)
	}

	resp = performRequest(t, http.MethodGet, "/orders", "/orders?limit=abc", handler.List, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", resp.Code)
	}

	failing := NewOrderHandler(&testhelpers.OrderFacadeStub{
		OrdersFn: func(context.Context, string, string, int) (model.OrderPage, error) {
			return model.OrderPage{}, errors.New("db down")
		},
	})
	resp = performRequest(t, http.MethodGet, "/orders", "/orders", failing.List, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "db down") {
		t.Fatalf("internal error leaked to client: %s", resp.Body.String())
	}
}

func TestOrderHandlerGet(t *testing.T) {
	orderID := testhelpers.RandomDocumentID()
	handler := NewOrderHandler(&testhelpers.OrderFacadeStub{
		OrderFn: func(_ context.Context, id string) (*model.Order, error) {
			if id != orderID {
				return nil, domainErrors.ErrNotFound
			}
			order := model.NewOrder(id, model.Document{"status": "pending", "orderId": "ORD-1"})
			return &order, nil
		},
	})

	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/"+orderID, handler.Get, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	order := decode[dto.OrderResponse](t, resp)
	if order.ID != orderID || order.DisplayNumber != "ORD-1" || order.Fields["status"] != "pending" {
		t.Fatalf("unexpected order %+v", order)
	}

	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/missing", handler.Get, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestOrderHandlerUpdateStatus(t *testing.T) {
	facade := &testhelpers.OrderFacadeStub{
		StatusFn: func(_ context.Context, id, status string, fields model.Document) (model.StatusUpdate, error) {
			if id == "missing" {
				return model.StatusUpdate{}, fmt.Errorf("load order: %w", domainErrors.ErrNotFound)
			}
			return model.StatusUpdate{
				OrderID:  id,
				Status:   model.NormalizeStatus(status),
				Warnings: []model.Warning{{Effect: model.EffectNotification, Err: errors.New("sms down")}},
			}, nil
		},
	}
	handler := NewOrderHandler(facade)

	body := dto.StatusUpdateRequest{Status: "IN_TRANSIT", Fields: map[string]any{"trackingNumber": "TRK1"}}
	resp := performRequest(t, http.MethodPost, "/orders/:id/status", "/orders/o1/status", handler.UpdateStatus, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	result := decode[dto.StatusUpdateResponse](t, resp)
	if result.Status != "in-transit" || result.OrderID != "o1" {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Effect != model.EffectNotification || result.Warnings[0].Message != "sms down" {
		t.Fatalf("unexpected warnings %+v", result.Warnings)
	}
	if len(facade.StatusCalls) != 1 || facade.StatusCalls[0].Fields["trackingNumber"] != "TRK1" {
		t.Fatalf("unexpected calls %+v", facade.StatusCalls)
	}

	resp = performRequest(t, http.MethodPost, "/orders/:id/status", "/orders/o1/status", handler.UpdateStatus, `{"fields":{}}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without status, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/orders/:id/status", "/orders/missing/status", handler.UpdateStatus, dto.StatusUpdateRequest{Status: "shipped"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestOrderHandlerUpdateReturn(t *testing.T) {
	handler := NewOrderHandler(&testhelpers.OrderFacadeStub{
		ReturnFn: func(_ context.Context, id, returnStatus, notes string) (model.Document, error) {
			if returnStatus == "lost" {
				return nil, fmt.Errorf("%w: return status", domainErrors.ErrInvalidInput)
			}
			return model.Document{"returnStatus": returnStatus, "returnNotes": notes}, nil
		},
	})

	resp := performRequest(t, http.MethodPost, "/orders/:id/return", "/orders/o1/return", handler.UpdateReturn, dto.ReturnRequest{ReturnStatus: "approved", Notes: "damaged"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	fields := decode[map[string]any](t, resp)
	if fields["returnNotes"] != "damaged" {
		t.Fatalf("unexpected fields %+v", fields)
	}

	resp = performRequest(t, http.MethodPost, "/orders/:id/return", "/orders/o1/return", handler.UpdateReturn, dto.ReturnRequest{ReturnStatus: "lost"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestOrderHandlerCounts(t *testing.T) {
	refreshed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	counts := model.StatusCounts{
		ByStatus: map[model.OrderStatus]int64{model.OrderStatusPending: 3, model.OrderStatusShipped: 2},
		All:      5,
	}

	cached := NewOrderHandler(&testhelpers.OrderFacadeStub{
		CountsFn: func(context.Context) (model.StatusCounts, time.Time, error) { return counts, refreshed, nil },
	})
	resp := performRequest(t, http.MethodGet, "/orders/counts", "/orders/counts", cached.Counts, nil)
	got := decode[dto.CountsResponse](t, resp)
	if !got.Cached || got.All != 5 || got.Counts["pending"] != 3 || got.RefreshedAt == nil {
		t.Fatalf("unexpected counts %+v", got)
	}

	live := NewOrderHandler(&testhelpers.OrderFacadeStub{
		CountsFn: func(context.Context) (model.StatusCounts, time.Time, error) { return counts, time.Time{}, nil },
	})
	resp = performRequest(t, http.MethodGet, "/orders/counts", "/orders/counts", live.Counts, nil)
	got = decode[dto.CountsResponse](t, resp)
	if got.Cached || got.RefreshedAt != nil {
		t.Fatalf("expected live counts, got %+v", got)
	}
}

func TestLocationHandlerSuggest(t *testing.T) {
	var gotBounds model.LocationBounds
	handler := NewLocationHandler(testhelpers.LocationFacadeStub{
		SuggestFn: func(_ context.Context, bounds model.LocationBounds) (model.Suggestion, error) {
			gotBounds = bounds
			return model.Suggestion{Slot: model.Slot{Rack: 1, Shelf: 1, Bin: 1}, Exhausted: true}, nil
		},
	})

	resp := performRequest(t, http.MethodGet, "/locations/suggest", "/locations/suggest?racks=2&shelves=3&bins=4", handler.Suggest, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotBounds != (model.LocationBounds{Racks: 2, Shelves: 3, Bins: 4}) {
		t.Fatalf("unexpected bounds %+v", gotBounds)
	}
	suggestion := decode[dto.SuggestionResponse](t, resp)
	if suggestion.Code != "R1-S1-B1" || !suggestion.Exhausted {
		t.Fatalf("unexpected suggestion %+v", suggestion)
	}

	resp = performRequest(t, http.MethodGet, "/locations/suggest", "/locations/suggest?bins=-1", handler.Suggest, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestLocationHandlerReserve(t *testing.T) {
	var extra model.Document
	handler := NewLocationHandler(testhelpers.LocationFacadeStub{
		ReserveFn: func(_ context.Context, code string, fields model.Document) error {
			switch code {
			case "R1-S1-B1":
				return fmt.Errorf("reserve %s: %w", code, domainErrors.ErrLocationConflict)
			case "bogus":
				return domainErrors.ErrInvalidLocationCode
			}
			extra = fields
			return nil
		},
	})

	resp := performRequest(t, http.MethodPost, "/locations/:code/reserve", "/locations/R2-S1-B1/reserve", handler.Reserve,
		dto.ReserveRequest{Category: "grains", ProductName: "Rice"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if extra["category"] != "grains" || extra["productName"] != "Rice" || extra["reservedBy"] != "admin" {
		t.Fatalf("unexpected extra %+v", extra)
	}

	resp = performRequest(t, http.MethodPost, "/locations/:code/reserve", "/locations/R1-S1-B1/reserve", handler.Reserve, nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/locations/:code/reserve", "/locations/bogus/reserve", handler.Reserve, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestLocationHandlerGet(t *testing.T) {
	handler := NewLocationHandler(testhelpers.LocationFacadeStub{
		LocationFn: func(_ context.Context, code string) (*model.Location, error) {
			return &model.Location{Code: code, Fields: model.Document{"productId": "p1"}}, nil
		},
	})

	resp := performRequest(t, http.MethodGet, "/locations/:code", "/locations/R1-S2-B3", handler.Get, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	location := decode[dto.LocationResponse](t, resp)
	if location.Code != "R1-S2-B3" || location.Fields["productId"] != "p1" {
		t.Fatalf("unexpected location %+v", location)
	}

	resp = performRequest(t, http.MethodGet, "/locations/:code", "/locations/shelf-3", handler.Get, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCatalogHandlerCategories(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{
		CategoriesFn: func(context.Context) ([]model.Category, error) {
			return []model.Category{{ID: "grains", Name: "Grains", CreatedAt: now}}, nil
		},
		DeleteCategoryFn: func(_ context.Context, id string) error {
			if id != "grains" {
				return domainErrors.ErrNotFound
			}
			return nil
		},
	})

	resp := performRequest(t, http.MethodPost, "/categories", "/categories", handler.CreateCategory, dto.CategoryRequest{Name: "Oils"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if created := decode[dto.CategoryResponse](t, resp); created.Name != "Oils" {
		t.Fatalf("unexpected category %+v", created)
	}

	resp = performRequest(t, http.MethodPost, "/categories", "/categories", handler.CreateCategory, `{"description":"x"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without name, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/categories", "/categories", handler.Categories, nil)
	if list := decode[[]dto.CategoryResponse](t, resp); len(list) != 1 || list[0].ID != "grains" {
		t.Fatalf("unexpected categories %+v", list)
	}

	resp = performRequest(t, http.MethodDelete, "/categories/:id", "/categories/grains", handler.DeleteCategory, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodDelete, "/categories/:id", "/categories/other", handler.DeleteCategory, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestCatalogHandlerCreateProduct(t *testing.T) {
	var got model.ProductInput
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{
		CreateProductFn: func(_ context.Context, in model.ProductInput) (*model.Product, []model.Warning, error) {
			got = in
			if in.AutoLocation {
				return nil, nil, domainErrors.ErrLocationsExhausted
			}
			product := &model.Product{
				ID:            "p1",
				Category:      in.Category,
				Name:          in.Name,
				ProductNumber: 3,
				Options:       in.Options,
				Location:      model.NewProductLocation(*in.Slot),
			}
			return product, []model.Warning{{Effect: model.EffectAnnotate, Err: errors.New("annotate failed")}}, nil
		},
	})

	body := `{"category":"grains","name":"Rice","options":[{"unit":"kg","quantity":5,"mrp":"55","sellingPrice":49.5,"specialPrice":"0"}],"location":{"rack":1,"shelf":2,"bin":3}}`
	resp := performRequest(t, http.MethodPost, "/products", "/products", handler.CreateProduct, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if got.Slot == nil || *got.Slot != (model.Slot{Rack: 1, Shelf: 2, Bin: 3}) {
		t.Fatalf("unexpected slot %+v", got.Slot)
	}
	if len(got.Options) != 1 || !got.Options[0].SellingPrice.Equal(decimal.RequireFromString("49.5")) {
		t.Fatalf("unexpected options %+v", got.Options)
	}
	written := decode[dto.ProductWriteResponse](t, resp)
	if written.Product.Path != "products/grains/items/p1" || written.Product.Location == nil || written.Product.Location.Code != "R1-S2-B3" {
		t.Fatalf("unexpected product %+v", written.Product)
	}
	if len(written.Warnings) != 1 || written.Warnings[0].Effect != model.EffectAnnotate {
		t.Fatalf("unexpected warnings %+v", written.Warnings)
	}

	resp = performRequest(t, http.MethodPost, "/products", "/products", handler.CreateProduct, `{"category":"grains","name":"Rice","autoLocation":true}`)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 when exhausted, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/products", "/products", handler.CreateProduct, `{"name":"Rice"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without category, got %d", resp.Code)
	}
}

func TestCatalogHandlerProducts(t *testing.T) {
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{
		ProductsFn: func(_ context.Context, category string) ([]model.Product, error) {
			return []model.Product{{ID: "p1", Category: category, ProductNumber: 1}}, nil
		},
		ProductFn: func(_ context.Context, category, id string) (*model.Product, error) {
			if id != "p1" {
				return nil, domainErrors.ErrNotFound
			}
			return &model.Product{ID: id, Category: category}, nil
		},
	})

	resp := performRequest(t, http.MethodGet, "/products", "/products?category=grains", handler.Products, nil)
	if list := decode[[]dto.ProductResponse](t, resp); len(list) != 1 || list[0].Category != "grains" {
		t.Fatalf("unexpected products %+v", list)
	}

	resp = performRequest(t, http.MethodGet, "/products", "/products", handler.Products, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without category, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/products/:category/:id", "/products/grains/p1", handler.Product, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodGet, "/products/:category/:id", "/products/grains/p2", handler.Product, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodDelete, "/products/:category/:id", "/products/grains/p1", handler.DeleteProduct, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestCatalogHandlerRelocate(t *testing.T) {
	slot := testhelpers.RandomSlot(model.DefaultLocationBounds())
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{})

	resp := performRequest(t, http.MethodPut, "/products/:category/:id/location", "/products/grains/p1/location", handler.Relocate,
		dto.Slot{Rack: slot.Rack, Shelf: slot.Shelf, Bin: slot.Bin})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	written := decode[dto.ProductWriteResponse](t, resp)
	if written.Product.Location == nil || written.Product.Location.Code != slot.Code() {
		t.Fatalf("unexpected location %+v", written.Product.Location)
	}

	resp = performRequest(t, http.MethodPut, "/products/:category/:id/location", "/products/grains/p1/location", handler.Relocate,
		dto.Slot{Rack: 0, Shelf: 1, Bin: 1})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for rack 0, got %d", resp.Code)
	}
}

func TestCatalogHandlerOfferBand(t *testing.T) {
	var got bool
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{
		SetOfferBandFn: func(_ context.Context, category, id string, show bool) (*model.Product, error) {
			got = show
			if id == "missing" {
				return nil, domainErrors.ErrNotFound
			}
			return &model.Product{ID: id, Category: category, ShowOfferBand: show}, nil
		},
	})
	route := "/products/:category/:id/offer-band"

	resp := performRequest(t, http.MethodPut, route, "/products/grains/p1/offer-band", handler.SetOfferBand, map[string]any{"show": true})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if product := decode[dto.ProductResponse](t, resp); !product.ShowOfferBand || !got {
		t.Fatalf("expected offer band on, got %+v", product)
	}

	resp = performRequest(t, http.MethodPut, route, "/products/grains/p1/offer-band", handler.SetOfferBand, map[string]any{"show": false})
	if resp.Code != http.StatusOK || got {
		t.Fatalf("expected explicit false to be accepted, got %d show=%v", resp.Code, got)
	}

	resp = performRequest(t, http.MethodPut, route, "/products/grains/p1/offer-band", handler.SetOfferBand, map[string]any{})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without show, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPut, route, "/products/grains/missing/offer-band", handler.SetOfferBand, map[string]any{"show": true})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestCatalogHandlerOfferMessages(t *testing.T) {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{
		OfferMessagesFn: func(context.Context) ([]model.OfferMessage, error) {
			return []model.OfferMessage{
				{ID: "m1", Text: "Sale", Position: 1, CreatedAt: created},
				{ID: "m2", Text: "Free delivery", Position: 2},
			}, nil
		},
		UpdateOfferFn: func(_ context.Context, id, text string, position int) (*model.OfferMessage, error) {
			if id == "missing" {
				return nil, domainErrors.ErrNotFound
			}
			return &model.OfferMessage{ID: id, Text: text, Position: position}, nil
		},
	})

	resp := performRequest(t, http.MethodGet, "/offer-messages", "/offer-messages", handler.OfferMessages, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	list := decode[[]dto.OfferMessageResponse](t, resp)
	if len(list) != 2 || list[0].Order != 1 || list[0].CreatedAt == nil || list[1].CreatedAt != nil {
		t.Fatalf("unexpected list %+v", list)
	}

	resp = performRequest(t, http.MethodPost, "/offer-messages", "/offer-messages", handler.CreateOfferMessage, map[string]any{"text": "New"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if msg := decode[dto.OfferMessageResponse](t, resp); msg.Text != "New" || msg.Order != 1 {
		t.Fatalf("unexpected message %+v", msg)
	}

	resp = performRequest(t, http.MethodPost, "/offer-messages", "/offer-messages", handler.CreateOfferMessage, map[string]any{})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without text, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPut, "/offer-messages/:id", "/offer-messages/m2", handler.UpdateOfferMessage,
		map[string]any{"text": "Free delivery", "order": 3})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if msg := decode[dto.OfferMessageResponse](t, resp); msg.ID != "m2" || msg.Order != 3 {
		t.Fatalf("unexpected message %+v", msg)
	}

	resp = performRequest(t, http.MethodPut, "/offer-messages/:id", "/offer-messages/m2", handler.UpdateOfferMessage,
		map[string]any{"text": "Free delivery"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without order, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPut, "/offer-messages/:id", "/offer-messages/missing", handler.UpdateOfferMessage,
		map[string]any{"text": "x", "order": 1})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodDelete, "/offer-messages/:id", "/offer-messages/m1", handler.DeleteOfferMessage, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	facade := testhelpers.NewConsoleFacadeStub()
	handler := NewHealthHandler(facade)

	resp := performRequest(t, http.MethodGet, "/healthz", "/healthz", handler.Check, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	facade.HealthErr = errors.New("ping failed")
	resp = performRequest(t, http.MethodGet, "/healthz", "/healthz", handler.Check, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

var _ ConsoleFacade = (*testhelpers.ConsoleFacadeStub)(nil)
