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

const userCollectionName = "users"

// mongoUserRepository implements repository.UserRepository using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// Create inserts a new user. Duplicate email or name maps to ErrDuplicate
// via the unique indexes.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.Email == "" || user.PasswordHash == "" || user.Role == "" {
		return errors.New("user email, password hash, and role are required")
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

// Upsert replaces the whole user record keyed by its ID, creating it when
// absent. Last writer wins.
func (r *mongoUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user, opts)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns every user record.
func (r *mongoUserRepository) List(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []domain.User{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes a user record. Succeeds even when the record is already
// gone.
func (r *mongoUserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *mongoUserRepository) SetStatus(ctx context.Context, id string, status domain.Status) error {
	return r.setFields(ctx, id, bson.M{"status": status})
}

// SetCoach links a student to a coach.
func (r *mongoUserRepository) SetCoach(ctx context.Context, studentID, coachID string) error {
	filter := bson.M{"_id": studentID, "role": domain.RoleStudent}
	update := bson.M{"$set": bson.M{
		"coachId":   coachID,
		"updatedAt": time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoUserRepository) SetCredentials(ctx context.Context, id, email, passwordHash string) error {
	fields := bson.M{}
	if email != "" {
		fields["email"] = email
	}
	if passwordHash != "" {
		fields["passwordHash"] = passwordHash
	}
	if len(fields) == 0 {
		return nil
	}
	err := r.setFields(ctx, id, fields)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *mongoUserRepository) SetSelectedBadges(ctx context.Context, id string, badgeIDs []string) error {
	return r.setFields(ctx, id, bson.M{"selectedBadgeIds": badgeIDs})
}

func (r *mongoUserRepository) setFields(ctx context.Context, id string, fields bson.M) error {
	fields["updatedAt"] = time.Now().UTC()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddDefinedAchievement appends an achievement to a coach's own list.
func (r *mongoUserRepository) AddDefinedAchievement(ctx context.Context, coachID string, a domain.Achievement) error {
	filter := bson.M{"_id": coachID, "role": domain.RoleCoach}
	update := bson.M{
		"$push": bson.M{"definedAchievements": a},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// RemoveDefinedAchievement deletes one achievement from a coach's list.
func (r *mongoUserRepository) RemoveDefinedAchievement(ctx context.Context, coachID, achievementID string) error {
	filter := bson.M{"_id": coachID}
	update := bson.M{
		"$pull": bson.M{"definedAchievements": bson.M{"_id": achievementID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureUserIndexes creates necessary indexes for the users collection.
// Call this once during application startup.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}}, // Login handle must be unique
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "coachId", Value: 1}}, // Roster lookups
			Options: options.Index().SetSparse(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
