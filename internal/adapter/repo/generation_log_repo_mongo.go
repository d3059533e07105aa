package repo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"productstudio/internal/domain"
)

const generatedImagesCollection = "generated_images"

// GenerationLogRepositoryMongo implements domain.GenerationLogRepository on MongoDB.
type GenerationLogRepositoryMongo struct {
	coll *mongo.Collection
}

func NewGenerationLogRepositoryMongo(db *mongo.Database) *GenerationLogRepositoryMongo {
	return &GenerationLogRepositoryMongo{coll: db.Collection(generatedImagesCollection)}
}

func (r *GenerationLogRepositoryMongo) Append(ctx context.Context, e *domain.GenerationLog) error {
	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("%w: insert generation log: %v", domain.ErrPersistFailed, err)
	}
	return nil
}

func (r *GenerationLogRepositoryMongo) ListRecent(ctx context.Context, limit int) ([]domain.GenerationLog, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list generation logs: %v", domain.ErrPersistFailed, err)
	}
	defer cur.Close(ctx)

	var items []domain.GenerationLog
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("%w: decode generation logs: %v", domain.ErrPersistFailed, err)
	}
	return items, nil
}

var _ domain.GenerationLogRepository = (*GenerationLogRepositoryMongo)(nil)
