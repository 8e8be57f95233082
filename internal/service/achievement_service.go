package service

import (
	"context"
	"errors"

	"github.com/megaJingHua/PixelGym/internal/domain"
	"github.com/megaJingHua/PixelGym/internal/repository"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrAchievementNotFound = errors.New("achievement not found")
	ErrAchievementDenied   = errors.New("access denied to this achievement")
	ErrBadgeLimitReached   = errors.New("at most three achievements can be pinned")
	ErrBadgeLocked         = errors.New("only unlocked achievements can be pinned")
	ErrProgressDenied      = errors.New("access denied to this student's progress")
)

// --- Service Interface ---
type AchievementService interface {
	// AchievementsFor returns the system set plus the achievements defined
	// by the student's coach (for a coach viewer: the coach's own).
	AchievementsFor(ctx context.Context, viewer *domain.User) ([]domain.Achievement, error)
	// Progress evaluates every applicable achievement against the
	// student's full log list. Allowed to the student themselves, their
	// coach, and the super-admin.
	Progress(ctx context.Context, viewer *domain.User, studentID string) ([]domain.Progress, error)

	DefineAchievement(ctx context.Context, coach *domain.User, a domain.Achievement) (*domain.Achievement, error)
	RemoveAchievement(ctx context.Context, coach *domain.User, achievementID string) error
	// SetSystemThreshold edits a built-in achievement's criteria value.
	SetSystemThreshold(ctx context.Context, actor *domain.User, achievementID string, value float64) error

	// PinBadge adds an unlocked achievement to the student's displayed
	// selection. A fourth pin is rejected without touching the selection.
	PinBadge(ctx context.Context, student *domain.User, achievementID string) ([]string, error)
	UnpinBadge(ctx context.Context, student *domain.User, achievementID string) ([]string, error)
}

// --- Service Implementation ---

type achievementService struct {
	achievementRepo repository.AchievementRepository
	userRepo        repository.UserRepository
	logRepo         repository.LogRepository
}

// NewAchievementService creates a new instance of achievementService.
func NewAchievementService(achievementRepo repository.AchievementRepository, userRepo repository.UserRepository, logRepo repository.LogRepository) AchievementService {
	return &achievementService{
		achievementRepo: achievementRepo,
		userRepo:        userRepo,
		logRepo:         logRepo,
	}
}

func (s *achievementService) AchievementsFor(ctx context.Context, viewer *domain.User) ([]domain.Achievement, error) {
	system, err := s.achievementRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	coachID := ""
	if viewer.IsCoach() {
		coachID = viewer.ID
	} else if viewer.CoachID != "" {
		coachID = viewer.CoachID
	}
	if coachID == "" {
		return system, nil
	}

	coach, err := s.userRepo.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return system, nil
		}
		return nil, err
	}
	return append(system, coach.DefinedAchievements...), nil
}

func (s *achievementService) Progress(ctx context.Context, viewer *domain.User, studentID string) ([]domain.Progress, error) {
	if studentID == "" {
		studentID = viewer.ID
	}
	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if viewer.ID != studentID && !viewer.IsSuperAdmin() && student.CoachID != viewer.ID {
		return nil, ErrProgressDenied
	}

	achievements, err := s.AchievementsFor(ctx, student)
	if err != nil {
		return nil, err
	}
	logs, err := s.logRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	progress := make([]domain.Progress, 0, len(achievements))
	for _, a := range achievements {
		progress = append(progress, domain.Evaluate(a, logs))
	}
	return progress, nil
}

// DefineAchievement stores a coach-authored achievement on the coach's own
// record, scoped to that coach's students.
func (s *achievementService) DefineAchievement(ctx context.Context, coach *domain.User, a domain.Achievement) (*domain.Achievement, error) {
	if !coach.IsCoach() {
		return nil, ErrAchievementDenied
	}
	if a.Title == "" || a.CriteriaType == "" || a.CriteriaValue <= 0 {
		return nil, ErrValidationFailed
	}
	switch a.CriteriaType {
	case domain.CriteriaLogCount, domain.CriteriaMaxWeight, domain.CriteriaPlanCount, domain.CriteriaTotalTime:
	default:
		return nil, ErrValidationFailed
	}

	a.ID = uuid.NewString()
	a.CreatorID = coach.ID
	if err := s.userRepo.AddDefinedAchievement(ctx, coach.ID, a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *achievementService) RemoveAchievement(ctx context.Context, coach *domain.User, achievementID string) error {
	err := s.userRepo.RemoveDefinedAchievement(ctx, coach.ID, achievementID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrAchievementNotFound
	}
	return err
}

// SetSystemThreshold edits a built-in threshold. Super-admin only; the
// system set itself is never deleted or extended.
func (s *achievementService) SetSystemThreshold(ctx context.Context, actor *domain.User, achievementID string, value float64) error {
	if !actor.IsSuperAdmin() {
		return ErrAdminOnly
	}
	if value <= 0 {
		return ErrValidationFailed
	}
	err := s.achievementRepo.SetThreshold(ctx, achievementID, value)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrAchievementNotFound
	}
	return err
}

// PinBadge appends the achievement to the student's selection. The limit
// check happens before any write, so a rejected pin leaves the stored
// selection untouched.
func (s *achievementService) PinBadge(ctx context.Context, student *domain.User, achievementID string) ([]string, error) {
	current, err := s.userRepo.GetByID(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	for _, id := range current.SelectedBadgeIDs {
		if id == achievementID {
			return current.SelectedBadgeIDs, nil // already pinned
		}
	}
	if len(current.SelectedBadgeIDs) >= domain.MaxSelectedBadges {
		return current.SelectedBadgeIDs, ErrBadgeLimitReached
	}

	progress, err := s.Progress(ctx, student, student.ID)
	if err != nil {
		return nil, err
	}
	unlocked := false
	for _, p := range progress {
		if p.AchievementID == achievementID {
			unlocked = p.Unlocked
			break
		}
	}
	if !unlocked {
		return current.SelectedBadgeIDs, ErrBadgeLocked
	}

	selection := append(append([]string{}, current.SelectedBadgeIDs...), achievementID)
	if err := s.userRepo.SetSelectedBadges(ctx, student.ID, selection); err != nil {
		return nil, err
	}
	return selection, nil
}

func (s *achievementService) UnpinBadge(ctx context.Context, student *domain.User, achievementID string) ([]string, error) {
	current, err := s.userRepo.GetByID(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	selection := make([]string, 0, len(current.SelectedBadgeIDs))
	for _, id := range current.SelectedBadgeIDs {
		if id != achievementID {
			selection = append(selection, id)
		}
	}
	if len(selection) == len(current.SelectedBadgeIDs) {
		return current.SelectedBadgeIDs, nil
	}
	if err := s.userRepo.SetSelectedBadges(ctx, student.ID, selection); err != nil {
		return nil, err
	}
	return selection, nil
}
