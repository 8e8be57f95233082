package service

import (
	"context"
	"errors"

	"github.com/megaJingHua/PixelGym/internal/domain"
	"github.com/megaJingHua/PixelGym/internal/repository"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrExerciseAccessDenied = errors.New("access denied to modify or delete this exercise")
	ErrValidationFailed     = errors.New("exercise validation failed")
)

// --- Service Interface ---
type ExerciseService interface {
	// VisibleExercises lists the wiki entries inside the viewer's cohort,
	// optionally narrowed by a free-text query.
	VisibleExercises(ctx context.Context, viewer *domain.User, query string) ([]domain.Exercise, error)
	CreateExercise(ctx context.Context, author *domain.User, exercise *domain.Exercise) (*domain.Exercise, error)
	UpdateExercise(ctx context.Context, viewer *domain.User, exercise *domain.Exercise) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, viewer *domain.User, exerciseID string) error
}

// --- Service Implementation ---

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

func (s *exerciseService) VisibleExercises(ctx context.Context, viewer *domain.User, query string) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.VisibleExercises(viewer, exercises, query), nil
}

// CreateExercise stores a new wiki entry owned by the authoring coach.
func (s *exerciseService) CreateExercise(ctx context.Context, author *domain.User, exercise *domain.Exercise) (*domain.Exercise, error) {
	if !author.IsCoach() && !author.IsSuperAdmin() {
		return nil, ErrExerciseAccessDenied
	}
	if exercise.Name == "" || exercise.Muscle == "" {
		return nil, ErrValidationFailed
	}
	if exercise.Level < 0 || exercise.Level > 5 {
		return nil, ErrValidationFailed
	}

	exercise.AuthorID = author.ID
	exercise.AuthorName = author.Name
	if err := s.exerciseRepo.Upsert(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// UpdateExercise replaces an entry, keeping authorship with the original
// author. Only the author may update.
func (s *exerciseService) UpdateExercise(ctx context.Context, viewer *domain.User, exercise *domain.Exercise) (*domain.Exercise, error) {
	if exercise.Name == "" {
		return nil, ErrValidationFailed
	}

	existing, err := s.exerciseRepo.GetByID(ctx, exercise.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if existing.AuthorID != viewer.ID {
		return nil, ErrExerciseAccessDenied
	}

	exercise.AuthorID = existing.AuthorID
	exercise.AuthorName = existing.AuthorName
	exercise.CreatedAt = existing.CreatedAt
	if err := s.exerciseRepo.Upsert(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// DeleteExercise removes an entry. The author or the super-admin may
// delete; deleting an already-missing entry succeeds.
func (s *exerciseService) DeleteExercise(ctx context.Context, viewer *domain.User, exerciseID string) error {
	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.AuthorID != viewer.ID && !viewer.IsSuperAdmin() {
		return ErrExerciseAccessDenied
	}
	return s.exerciseRepo.Delete(ctx, exerciseID)
}
