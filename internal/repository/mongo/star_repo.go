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

type mongoStarRepository struct {
	collection *mongo.Collection
	ids        counters
}

// NewMongoStarRepository creates a new instance of mongoStarRepository.
func NewMongoStarRepository(db *mongo.Database, ids counters) repository.StarRepository {
	return &mongoStarRepository{collection: db.Collection(starCollectionName), ids: ids}
}

// Toggle relies on the unique {instructorId, playerId} index: losing an insert race
// to a concurrent toggle still leaves the star in place, reported as active.
func (r *mongoStarRepository) Toggle(ctx context.Context, instructorID, playerID int64) (bool, error) {
	pair := bson.M{"instructorId": instructorID, "playerId": playerID}

	result, err := r.collection.DeleteOne(ctx, pair)
	if err != nil {
		return false, translate(err, "delete star")
	}
	if result.DeletedCount > 0 {
		return false, nil
	}

	id, err := r.ids.next(ctx, starCollectionName)
	if err != nil {
		return false, err
	}
	star := domain.Star{ID: id, InstructorID: instructorID, PlayerID: playerID, CreatedAt: time.Now().UTC()}
	if _, err := r.collection.InsertOne(ctx, star); err != nil && !mongo.IsDuplicateKeyError(err) {
		return false, translate(err, "insert star")
	}
	return true, nil
}

func (r *mongoStarRepository) CountByInstructor(ctx context.Context, instructorID int64) (int, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"instructorId": instructorID})
	if err != nil {
		return 0, translate(err, "count stars")
	}
	return int(n), nil
}

func (r *mongoStarRepository) PlayerIDsByInstructor(ctx context.Context, instructorID int64) ([]int64, error) {
	opts := options.Find().
		SetProjection(bson.M{"playerId": 1}).
		SetSort(bson.D{{Key: "playerId", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"instructorId": instructorID}, opts)
	if err != nil {
		return nil, translate(err, "find starred players")
	}
	defer cursor.Close(ctx)

	var stars []domain.Star
	if err := cursor.All(ctx, &stars); err != nil {
		return nil, translate(err, "decode stars")
	}
	ids := make([]int64, len(stars))
	for i, s := range stars {
		ids[i] = s.PlayerID
	}
	return ids, nil
}
