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

// mongoPlayerRepository implements the repository.PlayerRepository interface using MongoDB.
type mongoPlayerRepository struct {
	collection *mongo.Collection
	ids        counters
	deletes    *cascader
}

// NewMongoPlayerRepository creates a new instance of mongoPlayerRepository.
func NewMongoPlayerRepository(db *mongo.Database, ids counters, deletes *cascader) repository.PlayerRepository {
	return &mongoPlayerRepository{
		collection: db.Collection(playerCollectionName),
		ids:        ids,
		deletes:    deletes,
	}
}

func (r *mongoPlayerRepository) Create(ctx context.Context, player *domain.Player) error {
	id, err := r.ids.next(ctx, playerCollectionName)
	if err != nil {
		return err
	}
	player.ID = id
	player.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, player); err != nil {
		player.ID = 0
		return translate(err, "insert player")
	}
	return nil
}

func (r *mongoPlayerRepository) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	var player domain.Player
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&player); err != nil {
		return nil, translate(err, "find player by id")
	}
	return &player, nil
}

func (r *mongoPlayerRepository) GetByCode(ctx context.Context, code string) (*domain.Player, error) {
	var player domain.Player
	if err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&player); err != nil {
		return nil, translate(err, "find player by code")
	}
	return &player, nil
}

func (r *mongoPlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translate(err, "find players")
	}
	defer cursor.Close(ctx)

	players := []domain.Player{}
	if err := cursor.All(ctx, &players); err != nil {
		return nil, translate(err, "decode players")
	}
	return players, nil
}

// Delete removes everything the player owns, then the player.
func (r *mongoPlayerRepository) Delete(ctx context.Context, id int64) error {
	return r.deletes.deleteOwned(ctx, r.collection, id, "playerId",
		metricCollectionName, noteCollectionName, starCollectionName, sharedDrillCollectionName)
}
