package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainErrors "github.com/polkiloo/storeadmin/internal/domain/errors"
	"github.com/polkiloo/storeadmin/internal/domain/model"
)

var newestFirst = bson.D{{Key: model.FieldCreatedAt, Value: -1}, {Key: "_id", Value: -1}}

func (r *orderRepository) orders() *mongo.Collection {
	return r.storage.collection(ordersCollection)
}

// idFilter matches an order listed under id whether it is stored with a
// string or an ObjectID key.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{oid, id}}}
	}
	return bson.M{"_id": id}
}

// idValue is the key used to compare against _id in range filters.
func idValue(id string) any {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

func (r *orderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	var raw bson.M
	if err := r.orders().FindOne(ctx, idFilter(id)).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	order := toOrder(raw)
	return &order, nil
}

func (r *orderRepository) Update(ctx context.Context, id string, fields model.Document) error {
	res, err := r.orders().UpdateOne(ctx, idFilter(id), bson.M{"$set": bson.M(fields)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) FindByStatusIn(ctx context.Context, statuses []string, limit int) ([]model.Order, error) {
	filter := bson.M{model.FieldStatus: bson.M{"$in": statuses}}
	return r.find(ctx, filter, options.Find().SetLimit(int64(limit)))
}

func (r *orderRepository) FindByStatus(ctx context.Context, status string, limit int) ([]model.Order, error) {
	return r.find(ctx, bson.M{model.FieldStatus: status}, options.Find().SetLimit(int64(limit)))
}

func (r *orderRepository) Recent(ctx context.Context, limit int) ([]model.Order, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(newestFirst).SetLimit(int64(limit)))
}

func (r *orderRepository) Page(ctx context.Context, after *model.PageCursor, limit int) ([]model.Order, error) {
	if after == nil {
		return r.Recent(ctx, limit)
	}
	filter := bson.M{"$or": bson.A{
		bson.M{model.FieldCreatedAt: bson.M{"$lt": after.CreatedAt}},
		bson.M{model.FieldCreatedAt: after.CreatedAt, "_id": bson.M{"$lt": idValue(after.ID)}},
	}}
	return r.find(ctx, filter, options.Find().SetSort(newestFirst).SetLimit(int64(limit)))
}

func (r *orderRepository) CountByStatusIn(ctx context.Context, statuses []string) (int64, error) {
	return r.orders().CountDocuments(ctx, bson.M{model.FieldStatus: bson.M{"$in": statuses}})
}

func (r *orderRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return r.orders().CountDocuments(ctx, bson.M{model.FieldStatus: status})
}

func (r *orderRepository) find(ctx context.Context, filter any, opts *options.FindOptions) ([]model.Order, error) {
	cursor, err := r.orders().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, err
	}
	result := make([]model.Order, 0, len(raws))
	for _, raw := range raws {
		result = append(result, toOrder(raw))
	}
	return result, nil
}

func toOrder(raw bson.M) model.Order {
	id := documentID(raw)
	doc := toDocument(raw)
	delete(doc, "_id")
	return model.NewOrder(id, doc)
}
