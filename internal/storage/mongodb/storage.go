package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/polkiloo/storeadmin/internal/domain/model"
	"github.com/polkiloo/storeadmin/internal/domain/repository"
)

// Collection names.
const (
	ordersCollection         = "orders"
	locationsCollection      = "locations"
	customersCollection      = "customers"
	customerOrdersCollection = "customer_orders"
	deliveredCollection      = "delivered_orders"
	categoriesCollection     = "categories"
	productsCollection       = "products"
	countersCollection       = "counters"
	offerMessagesCollection  = "offer_messages"
)

const (
	connectTimeout = 5 * time.Second
	pingTimeout    = 2 * time.Second
)

var connect = func(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetSocketTimeout(10 * time.Second)
	return mongo.Connect(ctx, opts)
}

// Storage acts as repository facade backed by a MongoDB database.
type Storage struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

type orderRepository struct {
	storage *Storage
}

type locationRepository struct {
	storage *Storage
}

type customerRepository struct {
	storage *Storage
}

type archiveRepository struct {
	storage *Storage
}

type categoryRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type offerMessageRepository struct {
	storage *Storage
}

// New connects to MongoDB, verifies connectivity and ensures indexes.
func New(ctx context.Context, uri, database string, logger *zap.Logger) (*Storage, error) {
	client, err := connect(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	s := newStorage(client, client.Database(database), logger)
	if err := s.HealthCheck(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	s.logger.Info("connected", zap.String("database", database))
	return s, nil
}

func newStorage(client *mongo.Client, db *mongo.Database, logger *zap.Logger) *Storage {
	return &Storage{client: client, db: db, logger: logger.Named("mongo")}
}

func (s *Storage) ensureIndexes(ctx context.Context) error {
	orders := []mongo.IndexModel{
		{Keys: bson.D{{Key: model.FieldStatus, Value: 1}}},
		{Keys: bson.D{{Key: model.FieldCreatedAt, Value: -1}, {Key: "_id", Value: -1}}},
	}
	if _, err := s.collection(ordersCollection).Indexes().CreateMany(ctx, orders); err != nil {
		return fmt.Errorf("orders: %w", err)
	}

	products := mongo.IndexModel{
		Keys:    bson.D{{Key: "category", Value: 1}, {Key: "productNumber", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := s.collection(productsCollection).Indexes().CreateOne(ctx, products); err != nil {
		return fmt.Errorf("products: %w", err)
	}
	return nil
}

func (s *Storage) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// Close disconnects the client.
func (s *Storage) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		s.logger.Error("disconnect failed", zap.Error(err))
		return err
	}
	return nil
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Locations() repository.LocationRepository {
	return &locationRepository{storage: s}
}

func (s *Storage) Customers() repository.CustomerRepository {
	return &customerRepository{storage: s}
}

func (s *Storage) Archive() repository.ArchiveRepository {
	return &archiveRepository{storage: s}
}

func (s *Storage) Categories() repository.CategoryRepository {
	return &categoryRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) OfferMessages() repository.OfferMessageRepository {
	return &offerMessageRepository{storage: s}
}

// HealthCheck pings the primary.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary())
}

// toDocument converts a decoded BSON value tree into plain Go values.
func toDocument(raw bson.M) model.Document {
	doc := make(model.Document, len(raw))
	for k, v := range raw {
		doc[k] = normalize(v)
	}
	return doc
}

func normalize(v any) any {
	switch value := v.(type) {
	case bson.M:
		return toDocument(value)
	case map[string]any:
		return toDocument(value)
	case bson.D:
		return toDocument(value.Map())
	case bson.A:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = normalize(item)
		}
		return out
	case primitive.DateTime:
		return value.Time().UTC()
	case primitive.ObjectID:
		return value.Hex()
	case primitive.Decimal128:
		return value.String()
	default:
		return v
	}
}

// documentID renders the _id of a decoded document.
func documentID(raw bson.M) string {
	switch id := raw["_id"].(type) {
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}

var _ repository.Factory = (*Storage)(nil)
