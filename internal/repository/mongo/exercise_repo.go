package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/megaJingHua/PixelGym/internal/domain"
	"github.com/megaJingHua/PixelGym/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository using
// MongoDB.
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new instance of
// mongoExerciseRepository.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// Upsert replaces the whole wiki entry keyed by its ID, creating it when
// absent.
func (r *mongoExerciseRepository) Upsert(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == "" {
		exercise.ID = uuid.NewString()
	}
	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = time.Now().UTC()
	}
	exercise.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": exercise.ID}, exercise, opts)
	return err
}

func (r *mongoExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// List returns every wiki entry.
func (r *mongoExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exercises := []domain.Exercise{}
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// Delete removes a wiki entry. Idempotent.
func (r *mongoExerciseRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// EnsureExerciseIndexes creates necessary indexes for the exercises
// collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "authorId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
