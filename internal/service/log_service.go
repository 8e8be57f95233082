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
	ErrLogNotFound     = errors.New("log not found")
	ErrLogAccessDenied = errors.New("access denied to this log")
	ErrNotAPlan        = errors.New("log is not an open plan")
	ErrNoStudents      = errors.New("no target students given")
	ErrNoPeers         = errors.New("no peers under the same coach to share with")
	ErrPlanAssignment  = errors.New("some plan copies could not be created")
)

// Fields a student may merge into their own log via the partial-update
// path, and the fields a coach may merge when reviewing. Everything else in
// the patch body is dropped.
var (
	studentMergeFields = map[string]bool{
		"date": true, "items": true, "notes": true, "isHidden": true,
		"duration": true, "isShared": true,
	}
	coachMergeFields = map[string]bool{
		"score": true, "coachComment": true, "isHidden": true,
	}
)

// --- Service Interface ---
type LogService interface {
	// VisibleLogs lists the logs the viewer may see, newest first. A coach
	// may pass viewingStudentID to drill into one student; allMode gives
	// the super-admin the unfiltered view.
	VisibleLogs(ctx context.Context, viewer *domain.User, viewingStudentID string, allMode bool) ([]domain.WorkoutLog, error)
	CreateLog(ctx context.Context, viewer *domain.User, log *domain.WorkoutLog) (*domain.WorkoutLog, error)
	// UpdateLog shallow-merges the given fields into the log (the only
	// partial-update path).
	UpdateLog(ctx context.Context, viewer *domain.User, logID string, patch map[string]any) (*domain.WorkoutLog, error)
	DeleteLog(ctx context.Context, viewer *domain.User, logID string) error

	// AssignPlan creates one independent plan copy per target student.
	AssignPlan(ctx context.Context, coach *domain.User, studentIDs []string, items []domain.LogItem, notes string, date time.Time) ([]domain.WorkoutLog, error)
	// ShareLog copies the student's own log to every active peer under the
	// same coach and marks the original shared.
	ShareLog(ctx context.Context, student *domain.User, logID string) ([]domain.WorkoutLog, error)
	// CompletePlan turns an assigned plan into a completed log in place.
	CompletePlan(ctx context.Context, student *domain.User, logID string, items []domain.LogItem, notes string, duration int) (*domain.WorkoutLog, error)
}

// --- Service Implementation ---

type logService struct {
	logRepo  repository.LogRepository
	userRepo repository.UserRepository
}

// NewLogService creates a new instance of logService.
func NewLogService(logRepo repository.LogRepository, userRepo repository.UserRepository) LogService {
	return &logService{
		logRepo:  logRepo,
		userRepo: userRepo,
	}
}

func (s *logService) VisibleLogs(ctx context.Context, viewer *domain.User, viewingStudentID string, allMode bool) ([]domain.WorkoutLog, error) {
	logs, err := s.logRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if allMode && viewer.IsSuperAdmin() {
		return domain.AllLogsSorted(logs), nil
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.VisibleLogs(viewer, logs, users, viewingStudentID), nil
}

// CreateLog stores a new log. A student always owns their own logs; a
// coach may only create plan records, and only for their own students.
func (s *logService) CreateLog(ctx context.Context, viewer *domain.User, log *domain.WorkoutLog) (*domain.WorkoutLog, error) {
	if viewer.IsStudent() {
		log.StudentID = viewer.ID
	} else {
		if !log.IsPlan {
			return nil, ErrLogAccessDenied
		}
		student, err := s.userRepo.GetByID(ctx, log.StudentID)
		if err != nil || student.CoachID != viewer.ID {
			return nil, ErrLogAccessDenied
		}
	}
	if log.Date.IsZero() {
		log.Date = time.Now().UTC()
	}
	if err := s.logRepo.Upsert(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// UpdateLog merges the allowed subset of the patch into the log. The owning
// student may edit content fields of their own log; the student's coach
// (and the super-admin) may score and comment, which also stamps the
// commenting coach and time.
func (s *logService) UpdateLog(ctx context.Context, viewer *domain.User, logID string, patch map[string]any) (*domain.WorkoutLog, error) {
	log, err := s.logRepo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}

	var allowed map[string]bool
	switch {
	case viewer.IsStudent() && log.StudentID == viewer.ID:
		allowed = studentMergeFields
	case s.isCoachOf(ctx, viewer, log.StudentID):
		allowed = coachMergeFields
	default:
		return nil, ErrLogAccessDenied
	}

	fields := map[string]any{}
	for k, v := range patch {
		if allowed[k] {
			fields[k] = v
		}
	}
	if _, ok := fields["coachComment"]; ok || fields["score"] != nil {
		fields["coachIdWhoCommented"] = viewer.ID
		fields["coachCommentDate"] = time.Now().UTC()
	}
	if len(fields) == 0 {
		return log, nil
	}

	updated, err := s.logRepo.Merge(ctx, logID, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeleteLog hard-deletes a log. The owning student or any coach may delete.
func (s *logService) DeleteLog(ctx context.Context, viewer *domain.User, logID string) error {
	log, err := s.logRepo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil // idempotent delete
		}
		return err
	}
	if viewer.IsStudent() && log.StudentID != viewer.ID {
		return ErrLogAccessDenied
	}
	return s.logRepo.Delete(ctx, logID)
}

// AssignPlan writes one independent record per target student. Creation
// continues past individual failures; successfully created copies are kept
// and the failures reported, with no rollback.
func (s *logService) AssignPlan(ctx context.Context, coach *domain.User, studentIDs []string, items []domain.LogItem, notes string, date time.Time) ([]domain.WorkoutLog, error) {
	if len(studentIDs) == 0 {
		return nil, ErrNoStudents
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}

	created := make([]domain.WorkoutLog, 0, len(studentIDs))
	var failed error
	for _, studentID := range studentIDs {
		student, err := s.userRepo.GetByID(ctx, studentID)
		if err != nil || student.CoachID != coach.ID {
			failed = ErrPlanAssignment
			continue
		}
		plan := domain.WorkoutLog{
			ID:        uuid.NewString(),
			StudentID: studentID,
			Date:      date,
			Items:     copyItems(items),
			Notes:     notes,
			IsPlan:    true,
		}
		if err := s.logRepo.Upsert(ctx, &plan); err != nil {
			failed = ErrPlanAssignment
			continue
		}
		created = append(created, plan)
	}
	return created, failed
}

// ShareLog gives every active peer under the same coach an independent
// plan copy carrying the origin student's ID, then marks the original
// shared.
func (s *logService) ShareLog(ctx context.Context, student *domain.User, logID string) ([]domain.WorkoutLog, error) {
	log, err := s.logRepo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	if log.StudentID != student.ID {
		return nil, ErrLogAccessDenied
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	copies := []domain.WorkoutLog{}
	for _, peer := range users {
		if peer.ID == student.ID || !peer.IsStudent() {
			continue
		}
		if peer.CoachID == "" || peer.CoachID != student.CoachID || peer.Status != domain.StatusActive {
			continue
		}
		cp := domain.WorkoutLog{
			ID:         uuid.NewString(),
			StudentID:  peer.ID,
			Date:       log.Date,
			Items:      copyItems(log.Items),
			Notes:      log.Notes,
			IsPlan:     true,
			SharedFrom: student.ID,
		}
		if err := s.logRepo.Upsert(ctx, &cp); err != nil {
			return copies, err
		}
		copies = append(copies, cp)
	}
	if len(copies) == 0 {
		return nil, ErrNoPeers
	}

	if _, err := s.logRepo.Merge(ctx, logID, map[string]any{"isShared": true}); err != nil {
		return copies, err
	}
	return copies, nil
}

// CompletePlan overwrites the plan in place with what the student actually
// performed.
func (s *logService) CompletePlan(ctx context.Context, student *domain.User, logID string, items []domain.LogItem, notes string, duration int) (*domain.WorkoutLog, error) {
	log, err := s.logRepo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	if log.StudentID != student.ID {
		return nil, ErrLogAccessDenied
	}
	if !log.IsPlan {
		return nil, ErrNotAPlan
	}

	fields := map[string]any{
		"isPlan":          false,
		"isPlanCompleted": true,
		"items":           items,
		"notes":           notes,
		"date":            time.Now().UTC(),
		"duration":        duration,
	}
	updated, err := s.logRepo.Merge(ctx, logID, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	return updated, nil
}

// isCoachOf reports whether viewer is the coach of the given student. The
// super-admin reviews any log.
func (s *logService) isCoachOf(ctx context.Context, viewer *domain.User, studentID string) bool {
	if viewer.IsStudent() {
		return false
	}
	if viewer.IsSuperAdmin() {
		return true
	}
	student, err := s.userRepo.GetByID(ctx, studentID)
	return err == nil && student.CoachID == viewer.ID
}

func copyItems(items []domain.LogItem) []domain.LogItem {
	out := make([]domain.LogItem, len(items))
	copy(out, items)
	return out
}
