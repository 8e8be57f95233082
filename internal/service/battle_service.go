package service

import (
	"context"
	"errors"
	"time"

	"github.com/megaJingHua/PixelGym/internal/domain"
	"github.com/megaJingHua/PixelGym/internal/repository"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrBattleNotFound     = errors.New("battle not found")
	ErrBattleAccessDenied = errors.New("access denied to this battle")
	ErrEmptyComment       = errors.New("comment content cannot be empty")
	ErrRecordNotStudent   = errors.New("only students submit battle records")
)

// --- Service Interface ---
type BattleService interface {
	VisibleBattles(ctx context.Context, viewer *domain.User, mode domain.BattleFilterMode) ([]domain.Battle, error)
	CreateBattle(ctx context.Context, author *domain.User, battle *domain.Battle) (*domain.Battle, error)
	DeleteBattle(ctx context.Context, viewer *domain.User, battleID string) error

	// ToggleLike flips the viewer's like and returns the updated battle.
	ToggleLike(ctx context.Context, viewer *domain.User, battleID string) (*domain.Battle, error)
	// AddComment appends a comment stamped with the server time.
	AddComment(ctx context.Context, viewer *domain.User, battleID, content string) (*domain.Battle, error)
	// SubmitRecord stores the student's completion report, replacing any
	// previous one by the same student.
	SubmitRecord(ctx context.Context, viewer *domain.User, battleID, content string) (*domain.Battle, error)
}

// --- Service Implementation ---

type battleService struct {
	battleRepo repository.BattleRepository
	userRepo   repository.UserRepository
}

// NewBattleService creates a new instance of battleService.
func NewBattleService(battleRepo repository.BattleRepository, userRepo repository.UserRepository) BattleService {
	return &battleService{
		battleRepo: battleRepo,
		userRepo:   userRepo,
	}
}

func (s *battleService) VisibleBattles(ctx context.Context, viewer *domain.User, mode domain.BattleFilterMode) ([]domain.Battle, error) {
	battles, err := s.battleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if mode == "" || mode == domain.BattleModeAll {
		return battles, nil
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.VisibleBattles(viewer, battles, users, mode), nil
}

// CreateBattle stores a new challenge authored by the caller.
func (s *battleService) CreateBattle(ctx context.Context, author *domain.User, battle *domain.Battle) (*domain.Battle, error) {
	if battle.Title == "" || len(battle.Routine) == 0 {
		return nil, ErrValidationFailed
	}
	battle.AuthorID = author.ID
	battle.AuthorName = author.Name
	battle.Likes = 0
	battle.LikedBy = nil
	battle.Comments = nil
	battle.Records = nil
	if err := s.battleRepo.Upsert(ctx, battle); err != nil {
		return nil, err
	}
	return battle, nil
}

// DeleteBattle removes a challenge. The author or the super-admin may
// delete; a missing battle deletes successfully.
func (s *battleService) DeleteBattle(ctx context.Context, viewer *domain.User, battleID string) error {
	battle, err := s.battleRepo.GetByID(ctx, battleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if battle.AuthorID != viewer.ID && !viewer.IsSuperAdmin() {
		return ErrBattleAccessDenied
	}
	return s.battleRepo.Delete(ctx, battleID)
}

func (s *battleService) ToggleLike(ctx context.Context, viewer *domain.User, battleID string) (*domain.Battle, error) {
	if _, err := s.battleRepo.ToggleLike(ctx, battleID, viewer.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}
	return s.battleRepo.GetByID(ctx, battleID)
}

func (s *battleService) AddComment(ctx context.Context, viewer *domain.User, battleID, content string) (*domain.Battle, error) {
	if content == "" {
		return nil, ErrEmptyComment
	}
	comment := domain.Comment{
		ID:      uuid.NewString(),
		Author:  viewer.Name,
		Content: content,
		Date:    time.Now().UTC(),
	}
	if err := s.battleRepo.AppendComment(ctx, battleID, comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}
	return s.battleRepo.GetByID(ctx, battleID)
}

func (s *battleService) SubmitRecord(ctx context.Context, viewer *domain.User, battleID, content string) (*domain.Battle, error) {
	if !viewer.IsStudent() {
		return nil, ErrRecordNotStudent
	}
	rec := domain.BattleRecord{
		ID:          uuid.NewString(),
		StudentID:   viewer.ID,
		StudentName: viewer.Name,
		CompletedAt: time.Now().UTC(),
		Content:     content,
	}
	if err := s.battleRepo.UpsertRecord(ctx, battleID, rec); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}
	return s.battleRepo.GetByID(ctx, battleID)
}
