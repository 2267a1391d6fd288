package mongo

import (
	"context"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoInstructorRepository implements the repository.InstructorRepository interface using MongoDB.
type mongoInstructorRepository struct {
	collection *mongo.Collection
	ids        counters
	deletes    *cascader
}

// NewMongoInstructorRepository creates a new instance of mongoInstructorRepository.
func NewMongoInstructorRepository(db *mongo.Database, ids counters, deletes *cascader) repository.InstructorRepository {
	return &mongoInstructorRepository{
		collection: db.Collection(instructorCollectionName),
		ids:        ids,
		deletes:    deletes,
	}
}

// Create inserts a new instructor. A duplicate code maps to repository.ErrConflict.
func (r *mongoInstructorRepository) Create(ctx context.Context, instructor *domain.Instructor) error {
	id, err := r.ids.next(ctx, instructorCollectionName)
	if err != nil {
		return err
	}
	if instructor.Name == "" {
		instructor.Name = domain.DefaultInstructorName
	}
	instructor.ID = id
	instructor.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, instructor); err != nil {
		instructor.ID = 0
		return translate(err, "insert instructor")
	}
	return nil
}

func (r *mongoInstructorRepository) GetByID(ctx context.Context, id int64) (*domain.Instructor, error) {
	var instructor domain.Instructor
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&instructor); err != nil {
		return nil, translate(err, "find instructor by id")
	}
	return &instructor, nil
}

func (r *mongoInstructorRepository) GetByCode(ctx context.Context, code string) (*domain.Instructor, error) {
	var instructor domain.Instructor
	if err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&instructor); err != nil {
		return nil, translate(err, "find instructor by code")
	}
	return &instructor, nil
}

// Delete removes the instructor's stars and notes, then the instructor.
// Shared drills keep their instructorId.
func (r *mongoInstructorRepository) Delete(ctx context.Context, id int64) error {
	return r.deletes.deleteOwned(ctx, r.collection, id, "instructorId",
		starCollectionName, noteCollectionName)
}
