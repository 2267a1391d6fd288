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

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

type mongoNoteRepository struct {
	collection *mongo.Collection
	ids        counters
}

// NewMongoNoteRepository creates a new instance of mongoNoteRepository.
func NewMongoNoteRepository(db *mongo.Database, ids counters) repository.NoteRepository {
	return &mongoNoteRepository{collection: db.Collection(noteCollectionName), ids: ids}
}

func (r *mongoNoteRepository) Create(ctx context.Context, note *domain.Note) error {
	id, err := r.ids.next(ctx, noteCollectionName)
	if err != nil {
		return err
	}
	note.ID = id
	note.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, note); err != nil {
		return translate(err, "insert note")
	}
	return nil
}

func (r *mongoNoteRepository) ListByPlayer(ctx context.Context, playerID int64) ([]domain.Note, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"playerId": playerID}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, translate(err, "find notes by player")
	}
	defer cursor.Close(ctx)

	notes := []domain.Note{}
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, translate(err, "decode notes")
	}
	return notes, nil
}

func (r *mongoNoteRepository) LatestShared(ctx context.Context, playerID int64) (*domain.Note, error) {
	var note domain.Note
	filter := bson.M{"playerId": playerID, "sharedWithPlayer": true}
	err := r.collection.FindOne(ctx, filter, options.FindOne().SetSort(newestFirst)).Decode(&note)
	if err != nil {
		return nil, translate(err, "find latest shared note")
	}
	return &note, nil
}
