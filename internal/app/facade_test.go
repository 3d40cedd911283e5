package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/polkiloo/storeadmin/internal/domain/errors"
	"github.com/polkiloo/storeadmin/internal/domain/model"
	testhelpers "github.com/polkiloo/storeadmin/internal/test"
	"github.com/polkiloo/storeadmin/internal/usecase"
)

type countsSourceStub struct {
	counts    model.StatusCounts
	refreshed time.Time
	ok        bool
}

func (s countsSourceStub) Snapshot() (model.StatusCounts, time.Time, bool) {
	return s.counts, s.refreshed, s.ok
}

func newFacade(counts CountsSource) (*ConsoleFacade, *testhelpers.RepositoryFactoryStub, *testhelpers.NotifierStub) {
	repos := testhelpers.NewRepositoryFactoryStub()
	notifier := &testhelpers.NotifierStub{}
	logger := zap.NewNop()

	authUC := usecase.NewAuthUseCase(testhelpers.StrategyStub{})
	status := usecase.NewStatusEngine(repos.OrderRepo, repos.CustomerRepo, repos.ArchiveRepo, notifier, logger)
	query := usecase.NewOrderQueryUseCase(repos.OrderRepo, 20, logger)
	locations := usecase.NewLocationUseCase(repos.LocationRepo, model.LocationBounds{Racks: 1, Shelves: 1, Bins: 2}, logger)
	catalog := usecase.NewCatalogUseCase(repos.CategoryRepo, repos.ProductRepo, repos.OfferRepo, locations, logger)

	return NewConsoleFacade(authUC, status, query, locations, catalog, repos, counts), repos, notifier
}

func TestConsoleFacadeParseToken(t *testing.T) {
	facade, _, _ := newFacade(nil)
	subject, err := facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if subject != "admin" {
		t.Fatalf("expected admin subject, got %q", subject)
	}
	if _, err := facade.ParseToken(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestConsoleFacadeOrders(t *testing.T) {
	facade, repos, notifier := newFacade(nil)
	created := time.Now().Add(-time.Hour)
	repos.OrderRepo.Orders["o1"] = model.Document{
		"status":              "Pending",
		"createdAt":           created,
		"userId":              "cust-1",
		"verifiedPhoneNumber": "+15550100",
	}
	repos.OrderRepo.Orders["o2"] = model.Document{"status": "shipped", "createdAt": created.Add(time.Minute)}
	ctx := context.Background()

	page, err := facade.Orders(ctx, "pending", "", 0)
	if err != nil || len(page.Orders) != 1 || page.Orders[0].ID != "o1" {
		t.Fatalf("unexpected status page %+v err=%v", page, err)
	}

	page, err = facade.Orders(ctx, "", "", 0)
	if err != nil || len(page.Orders) != 2 {
		t.Fatalf("unexpected unfiltered page %+v err=%v", page, err)
	}

	if _, err := facade.Order(ctx, "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	result, err := facade.UpdateOrderStatus(ctx, "o1", "SHIPPED", nil)
	if err != nil {
		t.Fatalf("update status returned error: %v", err)
	}
	if result.Status != model.OrderStatusShipped || len(result.Warnings) != 0 {
		t.Fatalf("unexpected update result %+v", result)
	}
	if len(notifier.Sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.Sent))
	}

	fields, err := facade.UpdateReturn(ctx, "o1", model.ReturnStatusApproved, "ok")
	if err != nil || fields["returnStatus"] != model.ReturnStatusApproved {
		t.Fatalf("unexpected return fields %+v err=%v", fields, err)
	}
}

func TestConsoleFacadeOrderCounts(t *testing.T) {
	refreshed := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	cached := model.StatusCounts{ByStatus: map[model.OrderStatus]int64{model.OrderStatusPending: 7}, All: 7}

	facade, _, _ := newFacade(countsSourceStub{counts: cached, refreshed: refreshed, ok: true})
	counts, at, err := facade.OrderCounts(context.Background())
	if err != nil || !at.Equal(refreshed) || counts.All != 7 {
		t.Fatalf("expected cached counts, got %+v at %v err=%v", counts, at, err)
	}

	facade, repos, _ := newFacade(countsSourceStub{})
	repos.OrderRepo.Orders["o1"] = model.Document{"status": "pending"}
	counts, at, err = facade.OrderCounts(context.Background())
	if err != nil {
		t.Fatalf("live counts returned error: %v", err)
	}
	if !at.IsZero() || counts.ByStatus[model.OrderStatusPending] != 1 {
		t.Fatalf("expected live counts, got %+v at %v", counts, at)
	}
}

func TestConsoleFacadeLocations(t *testing.T) {
	facade, _, _ := newFacade(nil)
	ctx := context.Background()

	suggestion, err := facade.SuggestLocation(ctx, model.LocationBounds{})
	if err != nil || suggestion.Slot.Code() != "R1-S1-B1" {
		t.Fatalf("unexpected suggestion %+v err=%v", suggestion, err)
	}

	if err := facade.ReserveLocation(ctx, "R1-S1-B1", model.Document{"category": "grains"}); err != nil {
		t.Fatalf("reserve returned error: %v", err)
	}
	if err := facade.ReserveLocation(ctx, "R1-S1-B1", nil); !errors.Is(err, domainErrors.ErrLocationConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	location, err := facade.Location(ctx, "R1-S1-B1")
	if err != nil || location.Code != "R1-S1-B1" {
		t.Fatalf("unexpected location %+v err=%v", location, err)
	}

	suggestion, err = facade.SuggestLocation(ctx, model.LocationBounds{})
	if err != nil || suggestion.Slot.Code() != "R1-S1-B2" {
		t.Fatalf("expected next free slot, got %+v err=%v", suggestion, err)
	}
}

func TestConsoleFacadeCatalog(t *testing.T) {
	facade, repos, _ := newFacade(nil)
	ctx := context.Background()

	category, err := facade.CreateCategory(ctx, "Grains", "", "")
	if err != nil {
		t.Fatalf("create category returned error: %v", err)
	}
	categories, err := facade.Categories(ctx)
	if err != nil || len(categories) != 1 {
		t.Fatalf("unexpected categories %+v err=%v", categories, err)
	}

	product, warnings, err := facade.CreateProduct(ctx, model.ProductInput{Category: category.ID, Name: "Rice", AutoLocation: true})
	if err != nil || len(warnings) != 0 {
		t.Fatalf("create product failed: warnings=%v err=%v", warnings, err)
	}
	if product.ProductNumber != 1 || product.Location == nil || product.Location.Code != "R1-S1-B1" {
		t.Fatalf("unexpected product %+v", product)
	}

	products, err := facade.Products(ctx, category.ID)
	if err != nil || len(products) != 1 {
		t.Fatalf("unexpected products %+v err=%v", products, err)
	}
	if _, err := facade.Product(ctx, category.ID, product.ID); err != nil {
		t.Fatalf("get product returned error: %v", err)
	}

	moved, _, err := facade.RelocateProduct(ctx, category.ID, product.ID, model.Slot{Rack: 1, Shelf: 1, Bin: 2})
	if err != nil || moved.Location.Code != "R1-S1-B2" {
		t.Fatalf("unexpected relocation %+v err=%v", moved, err)
	}
	if _, ok := repos.LocationRepo.Docs["R1-S1-B2"]; !ok {
		t.Fatal("expected new slot to be reserved")
	}

	banded, err := facade.SetOfferBand(ctx, category.ID, product.ID, true)
	if err != nil || !banded.ShowOfferBand {
		t.Fatalf("unexpected offer band %+v err=%v", banded, err)
	}

	if err := facade.DeleteProduct(ctx, category.ID, product.ID); err != nil {
		t.Fatalf("delete product returned error: %v", err)
	}
	if err := facade.DeleteCategory(ctx, category.ID); err != nil {
		t.Fatalf("delete category returned error: %v", err)
	}
}

func TestConsoleFacadeOfferMessages(t *testing.T) {
	facade, repos, _ := newFacade(nil)
	ctx := context.Background()

	first, err := facade.CreateOfferMessage(ctx, "Free delivery")
	if err != nil || first.Position != 1 {
		t.Fatalf("unexpected message %+v err=%v", first, err)
	}
	second, err := facade.CreateOfferMessage(ctx, "Weekend sale")
	if err != nil || second.Position != 2 {
		t.Fatalf("unexpected message %+v err=%v", second, err)
	}
	if _, err := facade.UpdateOfferMessage(ctx, second.ID, "Weekend sale", 1); err != nil {
		t.Fatalf("update returned error: %v", err)
	}

	messages, err := facade.OfferMessages(ctx)
	if err != nil || len(messages) != 2 {
		t.Fatalf("unexpected messages %+v err=%v", messages, err)
	}
	if err := facade.DeleteOfferMessage(ctx, first.ID); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	if len(repos.OfferRepo.Messages) != 1 {
		t.Fatalf("expected one message left, got %d", len(repos.OfferRepo.Messages))
	}
}

func TestConsoleFacadeHealthCheck(t *testing.T) {
	facade, repos, _ := newFacade(nil)
	if err := facade.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected health error: %v", err)
	}
	repos.HealthErr = errors.New("down")
	if err := facade.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected health error")
	}
}
