package repository

import (
	"context"

	"github.com/megaJingHua/PixelGym/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Upsert(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByName(ctx context.Context, name string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// Delete is idempotent: removing a missing user is not an error.
	Delete(ctx context.Context, id string) error

	SetStatus(ctx context.Context, id string, status domain.Status) error
	SetCoach(ctx context.Context, studentID, coachID string) error
	SetCredentials(ctx context.Context, id, email, passwordHash string) error
	SetSelectedBadges(ctx context.Context, id string, badgeIDs []string) error

	AddDefinedAchievement(ctx context.Context, coachID string, a domain.Achievement) error
	RemoveDefinedAchievement(ctx context.Context, coachID, achievementID string) error
}

// LogRepository defines the interface for interacting with workout logs.
type LogRepository interface {
	Upsert(ctx context.Context, log *domain.WorkoutLog) error
	GetByID(ctx context.Context, id string) (*domain.WorkoutLog, error)
	List(ctx context.Context) ([]domain.WorkoutLog, error)
	GetByStudentID(ctx context.Context, studentID string) ([]domain.WorkoutLog, error)
	// Merge applies a shallow field merge onto an existing log, the only
	// partial-update path in the system.
	Merge(ctx context.Context, id string, fields map[string]any) (*domain.WorkoutLog, error)
	Delete(ctx context.Context, id string) error
}

// ExerciseRepository defines the interface for interacting with wiki entries.
type ExerciseRepository interface {
	Upsert(ctx context.Context, exercise *domain.Exercise) error
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
	Delete(ctx context.Context, id string) error
}

// BattleRepository defines the interface for interacting with battles. The
// sub-resource mutations (likes, comments, records) are single atomic
// updates so concurrent callers cannot lose each other's writes.
type BattleRepository interface {
	Upsert(ctx context.Context, battle *domain.Battle) error
	GetByID(ctx context.Context, id string) (*domain.Battle, error)
	List(ctx context.Context) ([]domain.Battle, error)
	Delete(ctx context.Context, id string) error

	// ToggleLike atomically flips userID's like and returns the new state.
	ToggleLike(ctx context.Context, battleID, userID string) (liked bool, err error)
	// AppendComment atomically appends one comment.
	AppendComment(ctx context.Context, battleID string, c domain.Comment) error
	// UpsertRecord atomically replaces-or-appends the student's record.
	UpsertRecord(ctx context.Context, battleID string, rec domain.BattleRecord) error
}

// AchievementRepository holds the fixed system achievement set. Seed is run
// once at startup; afterwards only thresholds change.
type AchievementRepository interface {
	Seed(ctx context.Context, defaults []domain.Achievement) error
	List(ctx context.Context) ([]domain.Achievement, error)
	GetByID(ctx context.Context, id string) (*domain.Achievement, error)
	SetThreshold(ctx context.Context, id string, value float64) error
}

// SessionRepository tracks issued tokens so logout and account deletion can
// revoke them before they expire.
type SessionRepository interface {
	Store(ctx context.Context, tokenID, userID string) error
	UserID(ctx context.Context, tokenID string) (string, bool, error)
	Delete(ctx context.Context, tokenID string) error
	// DeleteAllForUser revokes every live session of one user.
	DeleteAllForUser(ctx context.Context, userID string) error
}
