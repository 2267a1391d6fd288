package mongo

import (
	"context"
	"testing"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"
	"alcyxob/coaching-app/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// Mock server replies, consumed in order by the repository calls.

func nextSeq(sequence string, n int64) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
		{Key: "_id", Value: sequence},
		{Key: "seq", Value: n},
	}})
}

func inserted() bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)})
}

func duplicateKey() bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{
		Index:   0,
		Code:    11000,
		Message: "E11000 duplicate key error",
	})
}

func deleted(n int32) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: n})
}

// standaloneHello answers the topology probe of a server without transactions.
func standaloneHello() bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "isWritablePrimary", Value: true})
}

func cursorOf(ns string, docs ...bson.D) bson.D {
	return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, docs...)
}

// deletedCollections lists the collections targeted by delete commands, in order.
func deletedCollections(mt *mtest.T) []string {
	var names []string
	for _, evt := range mt.GetAllStartedEvents() {
		if evt.CommandName == "delete" {
			names = append(names, evt.Command.Lookup("delete").StringValue())
		}
	}
	return names
}

func newMockT(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestInstructorCreate(t *testing.T) {
	mt := newMockT(t)
	ctx := context.Background()

	mt.Run("assigns sequence id", func(mt *mtest.T) {
		repos := NewRepositories(mt.DB)
		mt.AddMockResponses(nextSeq(instructorCollectionName, 7), inserted())

		in := &domain.Instructor{Code: "ABC123"}
		require.NoError(mt, repos.Instructors.Create(ctx, in))
		assert.Equal(mt, int64(7), in.ID)
		assert.Equal(mt, domain.DefaultInstructorName, in.Name)
		assert.False(mt, in.CreatedAt.IsZero())
	})

	mt.Run("duplicate code is a conflict", func(mt *mtest.T) {
		repos := NewRepositories(mt.DB)
		mt.AddMockResponses(nextSeq(instructorCollectionName, 8), duplicateKey())

		in := &domain.Instructor{Name: "Sam", Code: "ABC123"}
		err := repos.Instructors.Create(ctx, in)
		require.ErrorIs(mt, err, repository.ErrConflict)
		assert.Zero(mt, in.ID)
	})

	mt.Run("service retries a taken code", func(mt *mtest.T) {
		repos := NewRepositories(mt.DB)
		mt.AddMockResponses(
			nextSeq(instructorCollectionName, 1), duplicateKey(),
			nextSeq(instructorCollectionName, 2), inserted(),
		)

		auth := service.NewAuthService(repos.Instructors, repos.Players, "COACH123", nil)
		in, err := auth.CreateInstructor(ctx, "Sam")
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), in.ID)
		assert.Regexp(mt, `^[0-9A-F]{6}$`, in.Code)
	})
}

func TestPlayerGetByCode(t *testing.T) {
	mt := newMockT(t)
	ctx := context.Background()

	mt.Run("found", func(mt *mtest.T) {
		repos := NewRepositories(mt.DB)
		mt.AddMockResponses(cursorOf("coaching.players", bson.D{
			{Key: "_id", Value: int64(3)},
			{Key: "name", Value: "Avery"},
			{Key: "code", Value: "ABC123"},
			{Key: "age", Value: int32(11)},
		}))

		p, err := repos.Players.GetByCode(ctx, "ABC123")
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), p.ID)
		assert.Equal(mt, "Avery", p.Name)
		require.NotNil(mt, p.Age)
		assert.Equal(mt, 11, *p.Age)
	})

	mt.Run("missing is not found", func(mt *mtest.T) {
		repos := NewRepositories(mt.DB)
		mt.AddMockResponses(cursorOf("coaching.players"))

		_, err := repos.Players.GetByCode(ctx, "NOPE00")
		require.ErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestStarToggle(t *testing.T) {
	mt := newMockT(t)
	ctx := context.Background()

	mt.Run("existing star is removed", func(mt *mtest.T) {
		repos := NewRepositories(mt.DB)
		mt.AddMockResponses(deleted(1))

		active, err := repos.Stars.Toggle(ctx, 1, 9)
		require.NoError(mt, err)
		assert.False(mt, active)
		assert.Equal(mt, []string{starCollectionName}, deletedCollections(mt))
	})

	mt.Run("missing star is inserted", func(mt *mtest.T) {
		repos := NewRepositories(mt.DB)
		mt.AddMockResponses(deleted(0), nextSeq(starCollectionName, 4), inserted())

		active, err := repos.Stars.Toggle(ctx, 1, 9)
		require.NoError(mt, err)
		assert.True(mt, active)
	})

	mt.Run("lost insert race still reports active", func(mt *mtest.T) {
		repos := NewRepositories(mt.DB)
		mt.AddMockResponses(deleted(0), nextSeq(starCollectionName, 5), duplicateKey())

		active, err := repos.Stars.Toggle(ctx, 1, 9)
		require.NoError(mt, err)
		assert.True(mt, active)
	})
}

func TestMetricCountByPlayer(t *testing.T) {
	mt := newMockT(t)

	mt.Run("decodes grouped counts", func(mt *mtest.T) {
		repos := NewRepositories(mt.DB)
		mt.AddMockResponses(cursorOf("coaching.metrics",
			bson.D{{Key: "_id", Value: int64(1)}, {Key: "n", Value: int32(3)}},
			bson.D{{Key: "_id", Value: int64(2)}, {Key: "n", Value: int32(1)}},
		))

		counts, err := repos.Metrics.CountByPlayer(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, map[int64]int{1: 3, 2: 1}, counts)
	})
}

func TestCascadingDeletes(t *testing.T) {
	mt := newMockT(t)
	ctx := context.Background()

	mt.Run("player dependents go before the player", func(mt *mtest.T) {
		repos := NewRepositories(mt.DB)
		mt.AddMockResponses(standaloneHello(), deleted(3), deleted(1), deleted(2), deleted(1), deleted(1))

		require.NoError(mt, repos.Players.Delete(ctx, 5))
		assert.Equal(mt, []string{
			metricCollectionName,
			noteCollectionName,
			starCollectionName,
			sharedDrillCollectionName,
			playerCollectionName,
		}, deletedCollections(mt))
	})

	mt.Run("instructor keeps shared drills", func(mt *mtest.T) {
		repos := NewRepositories(mt.DB)
		mt.AddMockResponses(standaloneHello(), deleted(1), deleted(0), deleted(1))

		require.NoError(mt, repos.Instructors.Delete(ctx, 2))
		assert.Equal(mt, []string{
			starCollectionName,
			noteCollectionName,
			instructorCollectionName,
		}, deletedCollections(mt))
	})

	mt.Run("missing owner is not found", func(mt *mtest.T) {
		repos := NewRepositories(mt.DB)
		mt.AddMockResponses(standaloneHello(), deleted(0), deleted(0), deleted(0), deleted(0), deleted(0))

		require.ErrorIs(mt, repos.Players.Delete(ctx, 404), repository.ErrNotFound)
	})

	mt.Run("failed dependent delete keeps the owner", func(mt *mtest.T) {
		repos := NewRepositories(mt.DB)
		mt.AddMockResponses(standaloneHello(), deleted(2), mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "delete rejected",
		}))

		require.Error(mt, repos.Players.Delete(ctx, 5))
		assert.Equal(mt, []string{metricCollectionName, noteCollectionName}, deletedCollections(mt))
	})
}

func TestConnectDBRequiresURI(t *testing.T) {
	_, err := ConnectDB("")
	require.EqualError(t, err, "mongodb uri is required")
}
