package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainErrors "github.com/polkiloo/storeadmin/internal/domain/errors"
	"github.com/polkiloo/storeadmin/internal/domain/model"
)

func (r *locationRepository) locations() *mongo.Collection {
	return r.storage.collection(locationsCollection)
}

func (r *locationRepository) ListCodes(ctx context.Context) ([]string, error) {
	cursor, err := r.locations().Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	var ids []struct {
		Code string `bson:"_id"`
	}
	if err := cursor.All(ctx, &ids); err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(ids))
	for _, id := range ids {
		codes = append(codes, id.Code)
	}
	return codes, nil
}

func (r *locationRepository) Get(ctx context.Context, code string) (*model.Location, error) {
	var raw bson.M
	if err := r.locations().FindOne(ctx, bson.M{"_id": code}).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	doc := toDocument(raw)
	delete(doc, "_id")
	return &model.Location{Code: code, Fields: doc}, nil
}

// Reserve inserts the slot keyed by its code; the unique _id rejects a second reservation.
func (r *locationRepository) Reserve(ctx context.Context, code string, fields model.Document) error {
	doc := bson.M{}
	for k, v := range fields {
		doc[k] = v
	}
	doc["_id"] = code
	if _, err := r.locations().InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainErrors.ErrLocationConflict
		}
		return err
	}
	return nil
}

func (r *locationRepository) Annotate(ctx context.Context, code string, fields, onCreate model.Document) error {
	update := bson.M{}
	if len(fields) > 0 {
		update["$set"] = bson.M(fields)
	}
	initial := bson.M{}
	for k, v := range onCreate {
		if _, overridden := fields[k]; !overridden && k != "_id" {
			initial[k] = v
		}
	}
	if len(update) == 0 && len(initial) == 0 {
		initial["code"] = code
	}
	if len(initial) > 0 {
		update["$setOnInsert"] = initial
	}
	_, err := r.locations().UpdateOne(ctx, bson.M{"_id": code}, update, options.Update().SetUpsert(true))
	return err
}
