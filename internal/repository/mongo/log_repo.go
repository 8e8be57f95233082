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

const logCollectionName = "logs"

// mongoLogRepository implements repository.LogRepository using MongoDB.
type mongoLogRepository struct {
	collection *mongo.Collection
}

// NewMongoLogRepository creates a new instance of mongoLogRepository.
func NewMongoLogRepository(db *mongo.Database) repository.LogRepository {
	return &mongoLogRepository{
		collection: db.Collection(logCollectionName),
	}
}

// Upsert replaces the whole log record keyed by its ID, creating it when
// absent. Last writer wins, matching the store's create-or-replace
// contract.
func (r *mongoLogRepository) Upsert(ctx context.Context, log *domain.WorkoutLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	log.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": log.ID}, log, opts)
	return err
}

func (r *mongoLogRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutLog, error) {
	var log domain.WorkoutLog
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// List returns every log record.
func (r *mongoLogRepository) List(ctx context.Context) ([]domain.WorkoutLog, error) {
	return r.find(ctx, bson.M{})
}

// GetByStudentID returns all logs owned by one student.
func (r *mongoLogRepository) GetByStudentID(ctx context.Context, studentID string) ([]domain.WorkoutLog, error) {
	return r.find(ctx, bson.M{"studentId": studentID})
}

func (r *mongoLogRepository) find(ctx context.Context, filter bson.M) ([]domain.WorkoutLog, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []domain.WorkoutLog{}
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// Merge applies a shallow field merge onto an existing log ({...existing,
// ...fields}) and returns the updated record. The caller is responsible for
// restricting which fields appear in the map.
func (r *mongoLogRepository) Merge(ctx context.Context, id string, fields map[string]any) (*domain.WorkoutLog, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.WorkoutLog
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// Delete removes a log. Idempotent: a missing log is not an error.
func (r *mongoLogRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// EnsureLogIndexes creates necessary indexes for the logs collection.
func EnsureLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "studentId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "isShared", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
