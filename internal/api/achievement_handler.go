package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/megaJingHua/PixelGym/internal/domain"
	"github.com/megaJingHua/PixelGym/internal/service"

	"github.com/gin-gonic/gin"
)

// AchievementHandler exposes achievements, progress and badge pinning.
type AchievementHandler struct {
	achievementService service.AchievementService
}

// NewAchievementHandler creates a new AchievementHandler.
func NewAchievementHandler(achievementService service.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

// --- DTOs ---

type DefineAchievementRequest struct {
	Title            string              `json:"title" binding:"required"`
	Description      string              `json:"description"`
	Icon             string              `json:"icon"`
	TargetAudience   string              `json:"targetAudience"`
	CriteriaType     domain.CriteriaType `json:"criteriaType" binding:"required,oneof=log_count max_weight plan_count total_time"`
	CriteriaValue    float64             `json:"criteriaValue" binding:"required,gt=0"`
	CriteriaExercise string              `json:"criteriaExercise"`
}

type SetThresholdRequest struct {
	CriteriaValue float64 `json:"criteriaValue" binding:"required,gt=0"`
}

type PinBadgeRequest struct {
	AchievementID string `json:"achievementId" binding:"required"`
}

// --- Handlers ---

// ListAchievements returns the system set plus the caller's cohort set.
func (h *AchievementHandler) ListAchievements(c *gin.Context) {
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	achievements, err := h.achievementService.AchievementsFor(c.Request.Context(), viewer)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list achievements")
		return
	}
	c.JSON(http.StatusOK, achievements)
}

// Progress evaluates every applicable achievement for a student
// (?studentId=, defaulting to the caller).
func (h *AchievementHandler) Progress(c *gin.Context) {
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	progress, err := h.achievementService.Progress(c.Request.Context(), viewer, c.Query("studentId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgressDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to evaluate progress")
		}
		return
	}
	c.JSON(http.StatusOK, progress)
}

// DefineAchievement stores a coach-authored achievement.
func (h *AchievementHandler) DefineAchievement(c *gin.Context) {
	var req DefineAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	achievement := domain.Achievement{
		Title:            req.Title,
		Description:      req.Description,
		Icon:             req.Icon,
		TargetAudience:   req.TargetAudience,
		CriteriaType:     req.CriteriaType,
		CriteriaValue:    req.CriteriaValue,
		CriteriaExercise: req.CriteriaExercise,
	}
	created, err := h.achievementService.DefineAchievement(c.Request.Context(), viewer, achievement)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAchievementDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to define achievement")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "achievement": created})
}

// RemoveAchievement deletes one of the calling coach's own achievements.
func (h *AchievementHandler) RemoveAchievement(c *gin.Context) {
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	if err := h.achievementService.RemoveAchievement(c.Request.Context(), viewer, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrAchievementNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to remove achievement")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetSystemThreshold edits a built-in achievement's criteria value.
func (h *AchievementHandler) SetSystemThreshold(c *gin.Context) {
	var req SetThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	if err := h.achievementService.SetSystemThreshold(c.Request.Context(), viewer, c.Param("id"), req.CriteriaValue); err != nil {
		switch {
		case errors.Is(err, service.ErrAdminOnly):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrAchievementNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update threshold")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PinBadge pins an unlocked achievement for display (at most three).
func (h *AchievementHandler) PinBadge(c *gin.Context) {
	h.changePin(c, h.achievementService.PinBadge)
}

// UnpinBadge removes one pinned achievement.
func (h *AchievementHandler) UnpinBadge(c *gin.Context) {
	h.changePin(c, h.achievementService.UnpinBadge)
}

func (h *AchievementHandler) changePin(c *gin.Context, op func(ctx context.Context, student *domain.User, achievementID string) ([]string, error)) {
	var req PinBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	selection, err := op(c.Request.Context(), viewer, req.AchievementID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadgeLimitReached), errors.Is(err, service.ErrBadgeLocked):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update pinned badges")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "selectedBadgeIds": selection})
}
