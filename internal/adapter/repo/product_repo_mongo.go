package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"productstudio/internal/domain"
)

const (
	productsCollection = "products"

	fieldSKU       = "SKU"
	fieldStatus    = "Status"
	fieldCreatedAt = "Created At"
)

// ProductRepositoryMongo implements domain.ProductRepository on a MongoDB
// collection whose document fields are named after the product slots.
type ProductRepositoryMongo struct {
	coll *mongo.Collection
}

func NewProductRepositoryMongo(db *mongo.Database) *ProductRepositoryMongo {
	return &ProductRepositoryMongo{coll: db.Collection(productsCollection)}
}

// EnsureIndexes creates the unique SKU index.
func (r *ProductRepositoryMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: fieldSKU, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ensure products index: %w", err)
	}
	return nil
}

func (r *ProductRepositoryMongo) FindBySKU(ctx context.Context, sku int64) (*domain.Product, error) {
	var p domain.Product
	if err := r.coll.FindOne(ctx, bson.D{{Key: fieldSKU, Value: sku}}).Decode(&p); err != nil {
		return nil, mongoError(err, "load", sku)
	}
	return &p, nil
}

func (r *ProductRepositoryMongo) ApplySlot(ctx context.Context, sku int64, slot domain.Slot, value string) (*domain.Product, error) {
	if _, err := domain.ParseSlot(string(slot)); err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(false)
	var p domain.Product
	err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: fieldSKU, Value: sku}}, slotUpdate(slot, value), opts).Decode(&p)
	if err != nil {
		return nil, mongoError(err, "update slot", sku)
	}
	return &p, nil
}

func (r *ProductRepositoryMongo) MarkFulfilled(ctx context.Context, sku int64, at time.Time) (bool, error) {
	res, err := r.coll.UpdateOne(ctx, fulfillableFilter(sku), bson.D{{Key: "$set", Value: bson.D{
		{Key: fieldStatus, Value: string(domain.ProductStatusFulfilled)},
		{Key: fieldCreatedAt, Value: at},
	}}})
	if err != nil {
		return false, mongoError(err, "mark fulfilled", sku)
	}
	return res.ModifiedCount == 1, nil
}

func (r *ProductRepositoryMongo) MarkPending(ctx context.Context, sku int64) (bool, error) {
	res, err := r.coll.UpdateOne(ctx, unstatusedFilter(sku), bson.D{{Key: "$set", Value: bson.D{
		{Key: fieldStatus, Value: string(domain.ProductStatusPending)},
	}}})
	if err != nil {
		return false, mongoError(err, "mark pending", sku)
	}
	return res.ModifiedCount == 1, nil
}

func slotUpdate(slot domain.Slot, value string) bson.D {
	return bson.D{{Key: "$set", Value: bson.D{{Key: string(slot), Value: value}}}}
}

// fulfillableFilter matches the product only while it is not yet fulfilled and
// every required slot holds a non-empty value.
func fulfillableFilter(sku int64) bson.D {
	filter := bson.D{
		{Key: fieldSKU, Value: sku},
		{Key: fieldStatus, Value: bson.D{{Key: "$ne", Value: string(domain.ProductStatusFulfilled)}}},
	}
	for _, slot := range domain.RequiredSlots {
		filter = append(filter, bson.E{Key: string(slot), Value: bson.D{{Key: "$nin", Value: bson.A{nil, ""}}}})
	}
	return filter
}

// unstatusedFilter matches the product only while its status is missing,
// null or empty.
func unstatusedFilter(sku int64) bson.D {
	return bson.D{
		{Key: fieldSKU, Value: sku},
		{Key: fieldStatus, Value: bson.D{{Key: "$in", Value: bson.A{nil, ""}}}},
	}
}

func mongoError(err error, op string, sku int64) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: sku %d", domain.ErrNotFound, sku)
	}
	return fmt.Errorf("%w: %s sku %d: %v", domain.ErrPersistFailed, op, sku, err)
}

var _ domain.ProductRepository = (*ProductRepositoryMongo)(nil)
