package mongo

import (
	"context"
	"sync"

	"alcyxob/coaching-app/internal/repository"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// cascader runs an owner delete together with its dependents. Replica sets and
// sharded clusters get one multi-document transaction. A standalone server has
// no transactions, so the deletes run in order there, dependents first, and a
// failed delete can be retried without leaving the owner half-emptied forever.
type cascader struct {
	db *mongo.Database

	mu            sync.Mutex
	probed        bool
	transactional bool
}

func newCascader(db *mongo.Database) *cascader {
	return &cascader{db: db}
}

// supportsTransactions asks the server for its topology once. A failed probe
// is not cached.
func (c *cascader) supportsTransactions(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.probed {
		return c.transactional, nil
	}

	var hello struct {
		SetName string `bson:"setName"`
		Msg     string `bson:"msg"`
	}
	if err := c.db.RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
		return false, errors.Wrap(err, "detect mongodb topology")
	}
	c.transactional = hello.SetName != "" || hello.Msg == "isdbgrid"
	c.probed = true
	return c.transactional, nil
}

// run executes fn, inside a transaction when the deployment has them.
// fn must use the context it is given.
func (c *cascader) run(ctx context.Context, fn func(ctx context.Context) error) error {
	transactional, err := c.supportsTransactions(ctx)
	if err != nil {
		return err
	}
	if !transactional {
		return fn(ctx)
	}

	session, err := c.db.Client().StartSession()
	if err != nil {
		return errors.Wrap(err, "start mongodb session")
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// deleteOwned removes every document of the named collections whose field
// matches id, then the owner document itself.
func (c *cascader) deleteOwned(ctx context.Context, owner *mongo.Collection, id int64, field string, dependents ...string) error {
	return c.run(ctx, func(ctx context.Context) error {
		filter := bson.M{field: id}
		for _, name := range dependents {
			if _, err := c.db.Collection(name).DeleteMany(ctx, filter); err != nil {
				return translate(err, "delete "+owner.Name()+" "+name)
			}
		}

		result, err := owner.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return translate(err, "delete "+owner.Name())
		}
		if result.DeletedCount == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}
