package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/polkiloo/storeadmin/internal/domain/model"
)

func (r *customerRepository) MirrorOrder(ctx context.Context, customerID, orderID string, fields model.Document) error {
	update := bson.M{
		"$set":         bson.M(fields),
		"$setOnInsert": bson.M{"customerId": customerID, "orderId": orderID},
	}
	filter := bson.M{"_id": customerID + "/" + orderID}
	_, err := r.storage.collection(customerOrdersCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// RecordCancellation increments the counter server-side with $inc.
func (r *customerRepository) RecordCancellation(ctx context.Context, customerID string, at time.Time) error {
	update := bson.M{
		"$inc": bson.M{"cancellationsCount": 1},
		"$set": bson.M{"lastCancelledAt": at},
	}
	_, err := r.storage.collection(customersCollection).UpdateOne(ctx, bson.M{"_id": customerID}, update, options.Update().SetUpsert(true))
	return err
}

func (r *archiveRepository) Archive(ctx context.Context, id string, fields model.Document) error {
	doc := bson.M{}
	for k, v := range fields {
		doc[k] = v
	}
	doc["_id"] = id
	_, err := r.storage.collection(deliveredCollection).ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}
