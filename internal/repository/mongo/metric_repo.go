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

type mongoMetricRepository struct {
	collection *mongo.Collection
	ids        counters
}

// NewMongoMetricRepository creates a new instance of mongoMetricRepository.
func NewMongoMetricRepository(db *mongo.Database, ids counters) repository.MetricRepository {
	return &mongoMetricRepository{collection: db.Collection(metricCollectionName), ids: ids}
}

func (r *mongoMetricRepository) Create(ctx context.Context, metric *domain.Metric) error {
	id, err := r.ids.next(ctx, metricCollectionName)
	if err != nil {
		return err
	}
	metric.ID = id
	metric.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, metric); err != nil {
		return translate(err, "insert metric")
	}
	return nil
}

func (r *mongoMetricRepository) ListByPlayer(ctx context.Context, playerID int64) ([]domain.Metric, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"playerId": playerID}, opts)
	if err != nil {
		return nil, translate(err, "find metrics by player")
	}
	defer cursor.Close(ctx)

	metrics := []domain.Metric{}
	if err := cursor.All(ctx, &metrics); err != nil {
		return nil, translate(err, "decode metrics")
	}
	return metrics, nil
}

func (r *mongoMetricRepository) CountByPlayer(ctx context.Context) (map[int64]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$playerId"},
			{Key: "n", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err, "count metrics by player")
	}
	defer cursor.Close(ctx)

	var rows []struct {
		PlayerID int64 `bson:"_id"`
		Count    int   `bson:"n"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, translate(err, "decode metric counts")
	}

	counts := make(map[int64]int, len(rows))
	for _, row := range rows {
		counts[row.PlayerID] = row.Count
	}
	return counts, nil
}
