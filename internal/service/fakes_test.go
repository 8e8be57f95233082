package service

import (
	"context"
	"time"

	"github.com/megaJingHua/PixelGym/internal/domain"
	"github.com/megaJingHua/PixelGym/internal/repository"
)

// In-memory repository fakes. Insertion order is preserved so tests can
// rely on deterministic listings.

// --- users ---

type fakeUserRepo struct {
	users []domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	return &fakeUserRepo{users: users}
}

func (r *fakeUserRepo) find(id string) (int, bool) {
	for i := range r.users {
		if r.users[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	for i := range r.users {
		if r.users[i].Email == user.Email || r.users[i].Name == user.Name {
			return repository.ErrDuplicate
		}
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *fakeUserRepo) Upsert(ctx context.Context, user *domain.User) error {
	if i, ok := r.find(user.ID); ok {
		r.users[i] = *user
		return nil
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if i, ok := r.find(id); ok {
		u := r.users[i]
		return &u, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByName(ctx context.Context, name string) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].Name == name {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if i, ok := r.find(id); ok {
		r.users = append(r.users[:i], r.users[i+1:]...)
	}
	return nil
}

func (r *fakeUserRepo) SetStatus(ctx context.Context, id string, status domain.Status) error {
	i, ok := r.find(id)
	if !ok {
		return repository.ErrNotFound
	}
	r.users[i].Status = status
	return nil
}

func (r *fakeUserRepo) SetCoach(ctx context.Context, studentID, coachID string) error {
	i, ok := r.find(studentID)
	if !ok {
		return repository.ErrNotFound
	}
	r.users[i].CoachID = coachID
	return nil
}

func (r *fakeUserRepo) SetCredentials(ctx context.Context, id, email, passwordHash string) error {
	i, ok := r.find(id)
	if !ok {
		return repository.ErrNotFound
	}
	if email != "" {
		r.users[i].Email = email
	}
	if passwordHash != "" {
		r.users[i].PasswordHash = passwordHash
	}
	return nil
}

func (r *fakeUserRepo) SetSelectedBadges(ctx context.Context, id string, badgeIDs []string) error {
	i, ok := r.find(id)
	if !ok {
		return repository.ErrNotFound
	}
	r.users[i].SelectedBadgeIDs = badgeIDs
	return nil
}

func (r *fakeUserRepo) AddDefinedAchievement(ctx context.Context, coachID string, a domain.Achievement) error {
	i, ok := r.find(coachID)
	if !ok {
		return repository.ErrNotFound
	}
	r.users[i].DefinedAchievements = append(r.users[i].DefinedAchievements, a)
	return nil
}

func (r *fakeUserRepo) RemoveDefinedAchievement(ctx context.Context, coachID, achievementID string) error {
	i, ok := r.find(coachID)
	if !ok {
		return repository.ErrNotFound
	}
	defined := r.users[i].DefinedAchievements
	for j := range defined {
		if defined[j].ID == achievementID {
			r.users[i].DefinedAchievements = append(defined[:j], defined[j+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- workout logs ---

type fakeLogRepo struct {
	logs []domain.WorkoutLog
}

func newFakeLogRepo(logs ...domain.WorkoutLog) *fakeLogRepo {
	return &fakeLogRepo{logs: logs}
}

func (r *fakeLogRepo) find(id string) (int, bool) {
	for i := range r.logs {
		if r.logs[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func (r *fakeLogRepo) Upsert(ctx context.Context, log *domain.WorkoutLog) error {
	if i, ok := r.find(log.ID); ok {
		r.logs[i] = *log
		return nil
	}
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeLogRepo) GetByID(ctx context.Context, id string) (*domain.WorkoutLog, error) {
	if i, ok := r.find(id); ok {
		l := r.logs[i]
		return &l, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeLogRepo) List(ctx context.Context) ([]domain.WorkoutLog, error) {
	out := make([]domain.WorkoutLog, len(r.logs))
	copy(out, r.logs)
	return out, nil
}

func (r *fakeLogRepo) GetByStudentID(ctx context.Context, studentID string) ([]domain.WorkoutLog, error) {
	var out []domain.WorkoutLog
	for _, l := range r.logs {
		if l.StudentID == studentID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLogRepo) Merge(ctx context.Context, id string, fields map[string]any) (*domain.WorkoutLog, error) {
	i, ok := r.find(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	l := &r.logs[i]
	for k, v := range fields {
		switch k {
		case "date":
			l.Date = v.(time.Time)
		case "items":
			l.Items = v.([]domain.LogItem)
		case "notes":
			l.Notes = v.(string)
		case "isHidden":
			l.IsHidden = v.(bool)
		case "duration":
			l.Duration = v.(int)
		case "isShared":
			l.IsShared = v.(bool)
		case "isPlan":
			l.IsPlan = v.(bool)
		case "isPlanCompleted":
			l.IsPlanCompleted = v.(bool)
		case "score":
			score := v.(int)
			l.Score = &score
		case "coachComment":
			l.CoachComment = v.(string)
		case "coachIdWhoCommented":
			l.CoachIDWhoCommented = v.(string)
		case "coachCommentDate":
			d := v.(time.Time)
			l.CoachCommentDate = &d
		}
	}
	out := *l
	return &out, nil
}

func (r *fakeLogRepo) Delete(ctx context.Context, id string) error {
	if i, ok := r.find(id); ok {
		r.logs = append(r.logs[:i], r.logs[i+1:]...)
	}
	return nil
}

// --- exercises ---

type fakeExerciseRepo struct {
	exercises []domain.Exercise
}

func newFakeExerciseRepo(exercises ...domain.Exercise) *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: exercises}
}

func (r *fakeExerciseRepo) find(id string) (int, bool) {
	for i := range r.exercises {
		if r.exercises[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func (r *fakeExerciseRepo) Upsert(ctx context.Context, exercise *domain.Exercise) error {
	if i, ok := r.find(exercise.ID); ok {
		r.exercises[i] = *exercise
		return nil
	}
	r.exercises = append(r.exercises, *exercise)
	return nil
}

func (r *fakeExerciseRepo) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	if i, ok := r.find(id); ok {
		e := r.exercises[i]
		return &e, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeExerciseRepo) List(ctx context.Context) ([]domain.Exercise, error) {
	out := make([]domain.Exercise, len(r.exercises))
	copy(out, r.exercises)
	return out, nil
}

func (r *fakeExerciseRepo) Delete(ctx context.Context, id string) error {
	if i, ok := r.find(id); ok {
		r.exercises = append(r.exercises[:i], r.exercises[i+1:]...)
	}
	return nil
}

// --- battles ---

type fakeBattleRepo struct {
	battles []domain.Battle
}

func newFakeBattleRepo(battles ...domain.Battle) *fakeBattleRepo {
	return &fakeBattleRepo{battles: battles}
}

func (r *fakeBattleRepo) find(id string) (int, bool) {
	for i := range r.battles {
		if r.battles[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func (r *fakeBattleRepo) Upsert(ctx context.Context, battle *domain.Battle) error {
	if i, ok := r.find(battle.ID); ok {
		r.battles[i] = *battle
		return nil
	}
	r.battles = append(r.battles, *battle)
	return nil
}

func (r *fakeBattleRepo) GetByID(ctx context.Context, id string) (*domain.Battle, error) {
	if i, ok := r.find(id); ok {
		b := r.battles[i]
		return &b, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeBattleRepo) List(ctx context.Context) ([]domain.Battle, error) {
	out := make([]domain.Battle, len(r.battles))
	copy(out, r.battles)
	return out, nil
}

func (r *fakeBattleRepo) Delete(ctx context.Context, id string) error {
	if i, ok := r.find(id); ok {
		r.battles = append(r.battles[:i], r.battles[i+1:]...)
	}
	return nil
}

func (r *fakeBattleRepo) ToggleLike(ctx context.Context, battleID, userID string) (bool, error) {
	i, ok := r.find(battleID)
	if !ok {
		return false, repository.ErrNotFound
	}
	return r.battles[i].ToggleLike(userID), nil
}

func (r *fakeBattleRepo) AppendComment(ctx context.Context, battleID string, c domain.Comment) error {
	i, ok := r.find(battleID)
	if !ok {
		return repository.ErrNotFound
	}
	r.battles[i].AddComment(c)
	return nil
}

func (r *fakeBattleRepo) UpsertRecord(ctx context.Context, battleID string, rec domain.BattleRecord) error {
	i, ok := r.find(battleID)
	if !ok {
		return repository.ErrNotFound
	}
	r.battles[i].UpsertRecord(rec)
	return nil
}

// --- achievements ---

type fakeAchievementRepo struct {
	achievements []domain.Achievement
}

func newFakeAchievementRepo(achievements ...domain.Achievement) *fakeAchievementRepo {
	return &fakeAchievementRepo{achievements: achievements}
}

func (r *fakeAchievementRepo) Seed(ctx context.Context, defaults []domain.Achievement) error {
	for _, d := range defaults {
		exists := false
		for _, a := range r.achievements {
			if a.ID == d.ID {
				exists = true
				break
			}
		}
		if !exists {
			r.achievements = append(r.achievements, d)
		}
	}
	return nil
}

func (r *fakeAchievementRepo) List(ctx context.Context) ([]domain.Achievement, error) {
	out := make([]domain.Achievement, len(r.achievements))
	copy(out, r.achievements)
	return out, nil
}

func (r *fakeAchievementRepo) GetByID(ctx context.Context, id string) (*domain.Achievement, error) {
	for i := range r.achievements {
		if r.achievements[i].ID == id {
			a := r.achievements[i]
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAchievementRepo) SetThreshold(ctx context.Context, id string, value float64) error {
	for i := range r.achievements {
		if r.achievements[i].ID == id {
			r.achievements[i].CriteriaValue = value
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- sessions ---

type fakeSessionRepo struct {
	sessions map[string]string // tokenID -> userID

	// When set, DeleteAllForUser fails with this error.
	deleteAllErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]string{}}
}

func (r *fakeSessionRepo) Store(ctx context.Context, tokenID, userID string) error {
	r.sessions[tokenID] = userID
	return nil
}

func (r *fakeSessionRepo) UserID(ctx context.Context, tokenID string) (string, bool, error) {
	userID, ok := r.sessions[tokenID]
	return userID, ok, nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, tokenID string) error {
	delete(r.sessions, tokenID)
	return nil
}

func (r *fakeSessionRepo) DeleteAllForUser(ctx context.Context, userID string) error {
	if r.deleteAllErr != nil {
		return r.deleteAllErr
	}
	for tokenID, owner := range r.sessions {
		if owner == userID {
			delete(r.sessions, tokenID)
		}
	}
	return nil
}
