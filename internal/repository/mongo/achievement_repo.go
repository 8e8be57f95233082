package mongo

import (
	"context"
	"errors"

	"github.com/megaJingHua/PixelGym/internal/domain"
	"github.com/megaJingHua/PixelGym/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const achievementCollectionName = "achievements"

// mongoAchievementRepository implements repository.AchievementRepository.
// It holds only the system achievement set; coach-defined achievements are
// embedded in coach user records.
type mongoAchievementRepository struct {
	collection *mongo.Collection
}

// NewMongoAchievementRepository creates a new instance of
// mongoAchievementRepository.
func NewMongoAchievementRepository(db *mongo.Database) repository.AchievementRepository {
	return &mongoAchievementRepository{
		collection: db.Collection(achievementCollectionName),
	}
}

// Seed inserts the built-in achievements that are not present yet. Existing
// records keep their (possibly admin-edited) thresholds.
func (r *mongoAchievementRepository) Seed(ctx context.Context, defaults []domain.Achievement) error {
	for _, a := range defaults {
		filter := bson.M{"_id": a.ID}
		update := bson.M{"$setOnInsert": a}
		opts := options.Update().SetUpsert(true)
		if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
			return err
		}
	}
	return nil
}

// List returns the system achievement set.
func (r *mongoAchievementRepository) List(ctx context.Context) ([]domain.Achievement, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	achievements := []domain.Achievement{}
	if err = cursor.All(ctx, &achievements); err != nil {
		return nil, err
	}
	return achievements, nil
}

func (r *mongoAchievementRepository) GetByID(ctx context.Context, id string) (*domain.Achievement, error) {
	var a domain.Achievement
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// SetThreshold changes a system achievement's criteria value. The set
// itself is fixed; records are never deleted.
func (r *mongoAchievementRepository) SetThreshold(ctx context.Context, id string, value float64) error {
	update := bson.M{"$set": bson.M{"criteriaValue": value}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
