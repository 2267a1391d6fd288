package mongo

import (
	"context"

	"alcyxob/coaching-app/internal/repository"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	instructorCollectionName  = "instructors"
	playerCollectionName      = "players"
	metricCollectionName      = "metrics"
	noteCollectionName        = "notes"
	starCollectionName        = "stars"
	sharedDrillCollectionName = "shared_drills"
	counterCollectionName     = "counters"
)

// counters hands out integer ids, one sequence per collection, so documents keep
// the same numeric identifiers the relational backend uses.
type counters struct {
	collection *mongo.Collection
}

func newCounters(db *mongo.Database) counters {
	return counters{collection: db.Collection(counterCollectionName)}
}

func (c counters) next(ctx context.Context, sequence string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := c.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": sequence},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, errors.Wrapf(err, "allocate %s id", sequence)
	}
	return doc.Seq, nil
}

// translate maps driver errors onto repository errors.
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return errors.WithSecondaryError(errors.Wrap(repository.ErrConflict, op), err)
	}
	return errors.Wrap(err, op)
}

// EnsureIndexes creates the unique and lookup indexes of every collection.
// Call this once during application startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		instructorCollectionName: {
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		playerCollectionName: {
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		metricCollectionName: {
			{Keys: bson.D{{Key: "playerId", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
		noteCollectionName: {
			{Keys: bson.D{{Key: "playerId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "instructorId", Value: 1}}},
		},
		starCollectionName: {
			{Keys: bson.D{{Key: "instructorId", Value: 1}, {Key: "playerId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "playerId", Value: 1}}},
		},
		sharedDrillCollectionName: {
			{Keys: bson.D{{Key: "playerId", Value: 1}, {Key: "sentAt", Value: -1}}},
		},
	}

	for name, indexes := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return errors.Wrapf(err, "create indexes for %s", name)
		}
	}
	return nil
}

// NewRepositories builds every MongoDB repository on top of one database handle.
func NewRepositories(db *mongo.Database) repository.Repositories {
	ids := newCounters(db)
	deletes := newCascader(db)
	return repository.Repositories{
		Instructors: NewMongoInstructorRepository(db, ids, deletes),
		Players:     NewMongoPlayerRepository(db, ids, deletes),
		Metrics:     NewMongoMetricRepository(db, ids),
		Notes:       NewMongoNoteRepository(db, ids),
		Stars:       NewMongoStarRepository(db, ids),
		Drills:      NewMongoSharedDrillRepository(db, ids),
	}
}
