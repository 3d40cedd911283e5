package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/storeadmin/internal/domain/errors"
	"github.com/polkiloo/storeadmin/internal/domain/model"
	"github.com/polkiloo/storeadmin/internal/domain/repository"
)

// OrderRepositoryStub stores orders in-memory and records status queries.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	Orders map[string]model.Document

	GetErr     error
	UpdateErr  error
	InErr      error
	EqualErr   error
	RecentErr  error
	CountInErr error

	InCalls    [][]string
	EqualCalls []string
	Updates    []OrderUpdateCall
}

// OrderUpdateCall stores information about Update invocations.
type OrderUpdateCall struct {
	ID     string
	Fields model.Document
}

// NewOrderRepositoryStub constructs stub repository seeded with orders.
func NewOrderRepositoryStub(orders ...model.Order) *OrderRepositoryStub {
	s := &OrderRepositoryStub{Orders: make(map[string]model.Document)}
	for _, o := range orders {
		s.Orders[o.ID] = o.Fields.Clone()
	}
	return s
}

// Get returns a copy of the stored order.
func (s *OrderRepositoryStub) Get(ctx context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	doc, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	order := model.NewOrder(id, doc.Clone())
	return &order, nil
}

// Update merges fields into the stored order.
func (s *OrderRepositoryStub) Update(ctx context.Context, id string, fields model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Updates = append(s.Updates, OrderUpdateCall{ID: id, Fields: fields.Clone()})
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	doc, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	s.Orders[id] = doc.Merge(fields)
	return nil
}

// FindByStatusIn returns orders whose raw status is one of statuses.
func (s *OrderRepositoryStub) FindByStatusIn(ctx context.Context, statuses []string, limit int) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InCalls = append(s.InCalls, statuses)
	if s.InErr != nil {
		return nil, s.InErr
	}
	return s.filter(func(o model.Order) bool { return contains(statuses, o.Status()) }, limit), nil
}

// FindByStatus returns orders whose raw status equals status.
func (s *OrderRepositoryStub) FindByStatus(ctx context.Context, status string, limit int) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.EqualCalls = append(s.EqualCalls, status)
	if s.EqualErr != nil {
		return nil, s.EqualErr
	}
	return s.filter(func(o model.Order) bool { return o.Status() == status }, limit), nil
}

// Recent returns the newest orders.
func (s *OrderRepositoryStub) Recent(ctx context.Context, limit int) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.RecentErr != nil {
		return nil, s.RecentErr
	}
	return s.filter(func(model.Order) bool { return true }, limit), nil
}

// Page returns orders after cursor, newest first.
func (s *OrderRepositoryStub) Page(ctx context.Context, after *model.PageCursor, limit int) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(o model.Order) bool {
		if after == nil {
			return true
		}
		created := o.PageTime()
		return created.Before(after.CreatedAt) || (created.Equal(after.CreatedAt) && o.ID < after.ID)
	}, limit), nil
}

// CountByStatusIn counts orders whose raw status is one of statuses.
func (s *OrderRepositoryStub) CountByStatusIn(ctx context.Context, statuses []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CountInErr != nil {
		return 0, s.CountInErr
	}
	return int64(len(s.filter(func(o model.Order) bool { return contains(statuses, o.Status()) }, 0))), nil
}

// CountByStatus counts orders whose raw status equals status.
func (s *OrderRepositoryStub) CountByStatus(ctx context.Context, status string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.filter(func(o model.Order) bool { return o.Status() == status }, 0))), nil
}

func (s *OrderRepositoryStub) filter(keep func(model.Order) bool, limit int) []model.Order {
	var out []model.Order
	for id, doc := range s.Orders {
		o := model.NewOrder(id, doc.Clone())
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := out[i].PageTime(), out[j].PageTime()
		if ci.Equal(cj) {
			return out[i].ID > out[j].ID
		}
		return ci.After(cj)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// LocationRepositoryStub keeps reserved slots in-memory. Reserve is atomic.
type LocationRepositoryStub struct {
	mu   sync.Mutex
	Docs map[string]model.Document

	ListErr     error
	ReserveErr  error
	AnnotateErr error
}

// NewLocationRepositoryStub constructs stub with the given codes reserved.
func NewLocationRepositoryStub(codes ...string) *LocationRepositoryStub {
	s := &LocationRepositoryStub{Docs: make(map[string]model.Document)}
	for _, code := range codes {
		s.Docs[code] = model.Document{model.FieldCode: code}
	}
	return s
}

// ListCodes returns reserved codes.
func (s *LocationRepositoryStub) ListCodes(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	codes := make([]string, 0, len(s.Docs))
	for code := range s.Docs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

// Get returns a reserved slot.
func (s *LocationRepositoryStub) Get(ctx context.Context, code string) (*model.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.Docs[code]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &model.Location{Code: code, Fields: doc.Clone()}, nil
}

// Reserve creates the slot unless it exists.
func (s *LocationRepositoryStub) Reserve(ctx context.Context, code string, fields model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReserveErr != nil {
		return s.ReserveErr
	}
	if _, ok := s.Docs[code]; ok {
		return domainErrors.ErrLocationConflict
	}
	s.Docs[code] = fields.Clone()
	return nil
}

// Annotate merges fields, creating the slot from onCreate when missing.
func (s *LocationRepositoryStub) Annotate(ctx context.Context, code string, fields, onCreate model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.AnnotateErr != nil {
		return s.AnnotateErr
	}
	doc, ok := s.Docs[code]
	if !ok {
		doc = onCreate.Clone()
	}
	s.Docs[code] = doc.Merge(fields)
	return nil
}

// CustomerRepositoryStub records mirrored orders and cancellation counters.
type CustomerRepositoryStub struct {
	mu            sync.Mutex
	Mirrors       map[string]model.Document
	Cancellations map[string]int
	LastCancelAt  map[string]time.Time

	MirrorErr error
	CancelErr error
}

// NewCustomerRepositoryStub constructs stub with initialized maps.
func NewCustomerRepositoryStub() *CustomerRepositoryStub {
	return &CustomerRepositoryStub{
		Mirrors:       make(map[string]model.Document),
		Cancellations: make(map[string]int),
		LastCancelAt:  make(map[string]time.Time),
	}
}

// MirrorKey addresses a mirrored order.
func MirrorKey(customerID, orderID string) string {
	return customerID + "/" + orderID
}

// MirrorOrder merges fields into the customer's order copy.
func (s *CustomerRepositoryStub) MirrorOrder(ctx context.Context, customerID, orderID string, fields model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.MirrorErr != nil {
		return s.MirrorErr
	}
	key := MirrorKey(customerID, orderID)
	s.Mirrors[key] = model.Document(s.Mirrors[key]).Merge(fields)
	return nil
}

// RecordCancellation increments the customer's counter.
func (s *CustomerRepositoryStub) RecordCancellation(ctx context.Context, customerID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CancelErr != nil {
		return s.CancelErr
	}
	s.Cancellations[customerID]++
	s.LastCancelAt[customerID] = at
	return nil
}

// ArchiveRepositoryStub stores archived orders by id.
type ArchiveRepositoryStub struct {
	mu   sync.Mutex
	Docs map[string]model.Document
	Err  error
}

// NewArchiveRepositoryStub constructs stub with initialized map.
func NewArchiveRepositoryStub() *ArchiveRepositoryStub {
	return &ArchiveRepositoryStub{Docs: make(map[string]model.Document)}
}

// Archive stores a copy of fields under id.
func (s *ArchiveRepositoryStub) Archive(ctx context.Context, id string, fields model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Docs[id] = fields.Clone()
	return nil
}

// CategoryRepositoryStub stores categories in-memory.
type CategoryRepositoryStub struct {
	mu    sync.Mutex
	Items map[string]model.Category
	Err   error
}

// NewCategoryRepositoryStub constructs stub seeded with categories.
func NewCategoryRepositoryStub(categories ...model.Category) *CategoryRepositoryStub {
	s := &CategoryRepositoryStub{Items: make(map[string]model.Category)}
	for _, c := range categories {
		s.Items[c.ID] = c
	}
	return s
}

// Create stores category unless it exists.
func (s *CategoryRepositoryStub) Create(ctx context.Context, category *model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Items[category.ID]; ok {
		return domainErrors.ErrAlreadyExists
	}
	s.Items[category.ID] = *category
	return nil
}

// Get returns a category.
func (s *CategoryRepositoryStub) Get(ctx context.Context, id string) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &c, nil
}

// List returns categories ordered by name.
func (s *CategoryRepositoryStub) List(ctx context.Context) ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Category, 0, len(s.Items))
	for _, c := range s.Items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes a category.
func (s *CategoryRepositoryStub) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Items[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Items, id)
	return nil
}

// ProductRepositoryStub stores products in-memory and numbers them per category.
type ProductRepositoryStub struct {
	mu        sync.Mutex
	Items     map[string]model.Product
	CreateErr error
	UpdateErr error
}

// NewProductRepositoryStub constructs stub with initialized map.
func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{Items: make(map[string]model.Product)}
}

func productKey(category, id string) string {
	return category + "/" + id
}

// Create assigns the next product number of the category.
func (s *ProductRepositoryStub) Create(ctx context.Context, product *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return s.CreateErr
	}
	next := 1
	for _, p := range s.Items {
		if p.Category == product.Category && p.ProductNumber >= next {
			next = p.ProductNumber + 1
		}
	}
	product.ProductNumber = next
	s.Items[productKey(product.Category, product.ID)] = *product
	return nil
}

// Get returns a product.
func (s *ProductRepositoryStub) Get(ctx context.Context, category, id string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Items[productKey(category, id)]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &p, nil
}

// ListByCategory returns products of category ordered by number.
func (s *ProductRepositoryStub) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Product
	for _, p := range s.Items {
		if p.Category == category {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductNumber < out[j].ProductNumber })
	return out, nil
}

// UpdateLocation replaces the product location.
func (s *ProductRepositoryStub) UpdateLocation(ctx context.Context, category, id string, location *model.ProductLocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	key := productKey(category, id)
	p, ok := s.Items[key]
	if !ok {
		return domainErrors.ErrNotFound
	}
	p.Location = location
	s.Items[key] = p
	return nil
}

// SetOfferBand switches the offer band of a product.
func (s *ProductRepositoryStub) SetOfferBand(ctx context.Context, category, id string, show bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	key := productKey(category, id)
	p, ok := s.Items[key]
	if !ok {
		return domainErrors.ErrNotFound
	}
	p.ShowOfferBand = show
	s.Items[key] = p
	return nil
}

// Delete removes a product.
func (s *ProductRepositoryStub) Delete(ctx context.Context, category, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := productKey(category, id)
	if _, ok := s.Items[key]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Items, key)
	return nil
}

// OfferMessageRepositoryStub keeps offer messages in memory.
type OfferMessageRepositoryStub struct {
	mu       sync.Mutex
	Messages map[string]model.OfferMessage
	ListErr  error
}

// NewOfferMessageRepositoryStub constructs stub with the given messages.
func NewOfferMessageRepositoryStub(messages ...model.OfferMessage) *OfferMessageRepositoryStub {
	s := &OfferMessageRepositoryStub{Messages: make(map[string]model.OfferMessage)}
	for _, m := range messages {
		s.Messages[m.ID] = m
	}
	return s
}

func (s *OfferMessageRepositoryStub) Create(ctx context.Context, message *model.OfferMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Messages[message.ID]; ok {
		return domainErrors.ErrAlreadyExists
	}
	s.Messages[message.ID] = *message
	return nil
}

// List returns messages by position.
func (s *OfferMessageRepositoryStub) List(ctx context.Context) ([]model.OfferMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	out := make([]model.OfferMessage, 0, len(s.Messages))
	for _, m := range s.Messages {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position == out[j].Position {
			return out[i].ID < out[j].ID
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (s *OfferMessageRepositoryStub) Update(ctx context.Context, message *model.OfferMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.Messages[message.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	current.Text = message.Text
	current.Position = message.Position
	s.Messages[message.ID] = current
	return nil
}

func (s *OfferMessageRepositoryStub) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Messages[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Messages, id)
	return nil
}

// RepositoryFactoryStub bundles repository stubs.
type RepositoryFactoryStub struct {
	OrderRepo    *OrderRepositoryStub
	LocationRepo *LocationRepositoryStub
	CustomerRepo *CustomerRepositoryStub
	ArchiveRepo  *ArchiveRepositoryStub
	CategoryRepo *CategoryRepositoryStub
	ProductRepo  *ProductRepositoryStub
	OfferRepo    *OfferMessageRepositoryStub
	HealthErr    error
	Closed       bool
}

// NewRepositoryFactoryStub constructs factory with empty stubs.
func NewRepositoryFactoryStub() *RepositoryFactoryStub {
	return &RepositoryFactoryStub{
		OrderRepo:    NewOrderRepositoryStub(),
		LocationRepo: NewLocationRepositoryStub(),
		CustomerRepo: NewCustomerRepositoryStub(),
		ArchiveRepo:  NewArchiveRepositoryStub(),
		CategoryRepo: NewCategoryRepositoryStub(),
		ProductRepo:  NewProductRepositoryStub(),
		OfferRepo:    NewOfferMessageRepositoryStub(),
	}
}

func (f *RepositoryFactoryStub) Orders() repository.OrderRepository       { return f.OrderRepo }
func (f *RepositoryFactoryStub) Locations() repository.LocationRepository { return f.LocationRepo }
func (f *RepositoryFactoryStub) Customers() repository.CustomerRepository { return f.CustomerRepo }
func (f *RepositoryFactoryStub) Archive() repository.ArchiveRepository    { return f.ArchiveRepo }
func (f *RepositoryFactoryStub) Categories() repository.CategoryRepository {
	return f.CategoryRepo
}
func (f *RepositoryFactoryStub) Products() repository.ProductRepository { return f.ProductRepo }
func (f *RepositoryFactoryStub) OfferMessages() repository.OfferMessageRepository {
	return f.OfferRepo
}

// HealthCheck returns the configured error.
func (f *RepositoryFactoryStub) HealthCheck(ctx context.Context) error { return f.HealthErr }

// Close marks the factory closed.
func (f *RepositoryFactoryStub) Close(ctx context.Context) error {
	f.Closed = true
	return nil
}

var (
	_ repository.OrderRepository        = (*OrderRepositoryStub)(nil)
	_ repository.LocationRepository     = (*LocationRepositoryStub)(nil)
	_ repository.CustomerRepository     = (*CustomerRepositoryStub)(nil)
	_ repository.ArchiveRepository      = (*ArchiveRepositoryStub)(nil)
	_ repository.CategoryRepository     = (*CategoryRepositoryStub)(nil)
	_ repository.ProductRepository      = (*ProductRepositoryStub)(nil)
	_ repository.OfferMessageRepository = (*OfferMessageRepositoryStub)(nil)
	_ repository.Factory                = (*RepositoryFactoryStub)(nil)
)
