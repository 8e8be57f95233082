package service

import (
	"context"
	"errors"

	"github.com/megaJingHua/PixelGym/internal/domain"
	"github.com/megaJingHua/PixelGym/internal/repository"

	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrAdminOnly         = errors.New("only the super-admin may perform this action")
	ErrNotACoach         = errors.New("target user is not a coach")
	ErrCoachUnavailable  = errors.New("target coach is disabled")
	ErrCannotDeleteAdmin = errors.New("the super-admin account cannot be deleted")
)

// --- Service Interface ---
//
// Account administration. Listing and lookup are open to any authenticated
// user (name resolution for logs, battles and wiki entries happens
// client-side); every mutation is restricted to the super-admin.
type AccountService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	// UpsertUser performs the generic create-or-replace write keyed by the
	// record's ID. Last writer wins.
	UpsertUser(ctx context.Context, actor *domain.User, user *domain.User) error
	ApproveUser(ctx context.Context, actor *domain.User, id string) error
	SetUserStatus(ctx context.Context, actor *domain.User, id string, status domain.Status) error
	AssignCoach(ctx context.Context, actor *domain.User, studentID, coachID string) error
	DeleteUser(ctx context.Context, actor *domain.User, id string) error
}

// --- Service Implementation ---

type accountService struct {
	userRepo repository.UserRepository
	sessions repository.SessionRepository
	logger   *zap.SugaredLogger
}

// NewAccountService creates a new instance of accountService.
func NewAccountService(userRepo repository.UserRepository, sessions repository.SessionRepository, logger *zap.SugaredLogger) AccountService {
	return &accountService{
		userRepo: userRepo,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *accountService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *accountService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpsertUser replaces a whole user record. Only the super-admin, or the
// user themselves, may write a record; the password hash and role of an
// existing record are preserved (no endpoint changes a role).
func (s *accountService) UpsertUser(ctx context.Context, actor *domain.User, user *domain.User) error {
	if !actor.IsSuperAdmin() && actor.ID != user.ID {
		return ErrAdminOnly
	}

	existing, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if existing != nil {
		user.PasswordHash = existing.PasswordHash
		user.Role = existing.Role
		user.CreatedAt = existing.CreatedAt
		if existing.IsSuperAdmin() {
			// The reserved handle keeps its name and active status.
			user.Name = existing.Name
			user.Status = domain.StatusActive
		}
	}
	return s.userRepo.Upsert(ctx, user)
}

func (s *accountService) ApproveUser(ctx context.Context, actor *domain.User, id string) error {
	return s.SetUserStatus(ctx, actor, id, domain.StatusActive)
}

func (s *accountService) SetUserStatus(ctx context.Context, actor *domain.User, id string, status domain.Status) error {
	if !actor.IsSuperAdmin() {
		return ErrAdminOnly
	}
	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if target.IsSuperAdmin() {
		return ErrAdminOnly // the admin account cannot be demoted
	}
	return s.userRepo.SetStatus(ctx, id, status)
}

// AssignCoach links a student to a coach. The coach must exist, hold the
// coach role and not be disabled.
func (s *accountService) AssignCoach(ctx context.Context, actor *domain.User, studentID, coachID string) error {
	if !actor.IsSuperAdmin() {
		return ErrAdminOnly
	}
	coach, err := s.userRepo.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !coach.IsCoach() && !coach.IsSuperAdmin() {
		return ErrNotACoach
	}
	if coach.Status == domain.StatusDisabled {
		return ErrCoachUnavailable
	}

	err = s.userRepo.SetCoach(ctx, studentID, coachID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// DeleteUser removes an account. Live sessions are revoked first; if that
// fails the failure is logged and the record is deleted anyway, trading a
// possibly orphaned session for never leaving a login-capable orphan
// record.
func (s *accountService) DeleteUser(ctx context.Context, actor *domain.User, id string) error {
	if !actor.IsSuperAdmin() {
		return ErrAdminOnly
	}
	if target, err := s.userRepo.GetByID(ctx, id); err == nil && target.IsSuperAdmin() {
		return ErrCannotDeleteAdmin
	}

	if err := s.sessions.DeleteAllForUser(ctx, id); err != nil {
		s.logger.Errorw("failed to revoke sessions for deleted user", "userId", id, "error", err)
	}

	return s.userRepo.Delete(ctx, id)
}
