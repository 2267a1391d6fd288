package mongo

import (
	"context"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoSharedDrillRepository struct {
	collection *mongo.Collection
	ids        counters
}

// NewMongoSharedDrillRepository creates a new instance of mongoSharedDrillRepository.
func NewMongoSharedDrillRepository(db *mongo.Database, ids counters) repository.SharedDrillRepository {
	return &mongoSharedDrillRepository{collection: db.Collection(sharedDrillCollectionName), ids: ids}
}

func (r *mongoSharedDrillRepository) Create(ctx context.Context, drill *domain.SharedDrill) error {
	id, err := r.ids.next(ctx, sharedDrillCollectionName)
	if err != nil {
		return err
	}
	drill.ID = id
	drill.SentAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, drill); err != nil {
		return translate(err, "insert shared drill")
	}
	return nil
}

func (r *mongoSharedDrillRepository) ListByPlayer(ctx context.Context, playerID int64) ([]domain.SharedDrill, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sentAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"playerId": playerID}, opts)
	if err != nil {
		return nil, translate(err, "find shared drills by player")
	}
	defer cursor.Close(ctx)

	drills := []domain.SharedDrill{}
	if err := cursor.All(ctx, &drills); err != nil {
		return nil, translate(err, "decode shared drills")
	}
	return drills, nil
}
