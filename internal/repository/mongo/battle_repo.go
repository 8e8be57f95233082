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

const battleCollectionName = "battles"

// mongoBattleRepository implements repository.BattleRepository using
// MongoDB. The sub-resource mutations are expressed as single atomic update
// documents ($inc/$addToSet/$pull/$push/positional $set) instead of
// read-modify-write on the whole object, so two concurrent likes or records
// cannot drop each other's writes.
type mongoBattleRepository struct {
	collection *mongo.Collection
}

// NewMongoBattleRepository creates a new instance of mongoBattleRepository.
func NewMongoBattleRepository(db *mongo.Database) repository.BattleRepository {
	return &mongoBattleRepository{
		collection: db.Collection(battleCollectionName),
	}
}

// Upsert replaces the whole battle keyed by its ID, creating it when
// absent.
func (r *mongoBattleRepository) Upsert(ctx context.Context, battle *domain.Battle) error {
	if battle.ID == "" {
		battle.ID = uuid.NewString()
	}
	if battle.CreatedAt.IsZero() {
		battle.CreatedAt = time.Now().UTC()
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": battle.ID}, battle, opts)
	return err
}

func (r *mongoBattleRepository) GetByID(ctx context.Context, id string) (*domain.Battle, error) {
	var battle domain.Battle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&battle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &battle, nil
}

// List returns every battle.
func (r *mongoBattleRepository) List(ctx context.Context) ([]domain.Battle, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	battles := []domain.Battle{}
	if err = cursor.All(ctx, &battles); err != nil {
		return nil, err
	}
	return battles, nil
}

// Delete removes a battle. Idempotent.
func (r *mongoBattleRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// ToggleLike flips userID's like in one atomic step per direction. The
// unlike update only matches documents that contain the user in likedBy,
// the like update only those that do not, so a repeated call returns the
// battle to its prior state and the counter can never double-apply.
func (r *mongoBattleRepository) ToggleLike(ctx context.Context, battleID, userID string) (bool, error) {
	// Try the unlike direction first.
	unlike := bson.M{
		"$pull": bson.M{"likedBy": userID},
		"$inc":  bson.M{"likes": -1},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": battleID, "likedBy": userID}, unlike)
	if err != nil {
		return false, err
	}
	if result.MatchedCount > 0 {
		return false, nil
	}

	like := bson.M{
		"$addToSet": bson.M{"likedBy": userID},
		"$inc":      bson.M{"likes": 1},
	}
	result, err = r.collection.UpdateOne(ctx, bson.M{"_id": battleID, "likedBy": bson.M{"$ne": userID}}, like)
	if err != nil {
		return false, err
	}
	if result.MatchedCount == 0 {
		// Neither filter matched: the battle does not exist (a concurrent
		// toggle would have matched one of the two).
		if _, err := r.GetByID(ctx, battleID); err != nil {
			return false, err
		}
		return false, repository.ErrUpdateFailed
	}
	return true, nil
}

// AppendComment atomically appends one comment to the battle.
func (r *mongoBattleRepository) AppendComment(ctx context.Context, battleID string, c domain.Comment) error {
	update := bson.M{"$push": bson.M{"comments": c}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": battleID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpsertRecord replaces the student's existing record in place, or appends
// one if the student has none. Both directions are single atomic updates.
func (r *mongoBattleRepository) UpsertRecord(ctx context.Context, battleID string, rec domain.BattleRecord) error {
	replace := bson.M{"$set": bson.M{"records.$": rec}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": battleID, "records.studentId": rec.StudentID}, replace)
	if err != nil {
		return err
	}
	if result.MatchedCount > 0 {
		return nil
	}

	push := bson.M{"$push": bson.M{"records": rec}}
	result, err = r.collection.UpdateOne(ctx, bson.M{"_id": battleID}, push)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureBattleIndexes creates necessary indexes for the battles collection.
func EnsureBattleIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "authorId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "targetStudentId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
