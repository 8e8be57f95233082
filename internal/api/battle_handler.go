package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/megaJingHua/PixelGym/internal/domain"
	"github.com/megaJingHua/PixelGym/internal/service"

	"github.com/gin-gonic/gin"
)

// BattleHandler exposes challenges and their sub-resources.
type BattleHandler struct {
	battleService service.BattleService
}

// NewBattleHandler creates a new BattleHandler.
func NewBattleHandler(battleService service.BattleService) *BattleHandler {
	return &BattleHandler{battleService: battleService}
}

// --- DTOs ---

type CreateBattleRequest struct {
	ID              string   `json:"id"`
	Title           string   `json:"title" binding:"required"`
	Routine         []string `json:"routine" binding:"required,min=1"`
	TargetStudentID string   `json:"targetStudentId"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type RecordRequest struct {
	Content string `json:"content" binding:"required"`
}

// --- Handlers ---

// ListBattles returns battles filtered by ?mode=all|received|sent.
func (h *BattleHandler) ListBattles(c *gin.Context) {
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	mode := domain.BattleFilterMode(c.DefaultQuery("mode", string(domain.BattleModeAll)))
	battles, err := h.battleService.VisibleBattles(c.Request.Context(), viewer, mode)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list battles")
		return
	}
	c.JSON(http.StatusOK, battles)
}

// CreateBattle stores a new challenge authored by the caller.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	battle := &domain.Battle{
		ID:              req.ID,
		Title:           req.Title,
		Routine:         req.Routine,
		TargetStudentID: req.TargetStudentID,
	}
	created, err := h.battleService.CreateBattle(c.Request.Context(), viewer, battle)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to create battle")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "battle": created})
}

// DeleteBattle removes a challenge. Idempotent.
func (h *BattleHandler) DeleteBattle(c *gin.Context) {
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	if err := h.battleService.DeleteBattle(c.Request.Context(), viewer, c.Param("id")); err != nil {
		h.mapBattleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Like toggles the caller's like: the first call adds it, a second call by
// the same user takes it back.
func (h *BattleHandler) Like(c *gin.Context) {
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	battle, err := h.battleService.ToggleLike(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		h.mapBattleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "battle": battle})
}

// AddComment appends a comment authored by the caller.
func (h *BattleHandler) AddComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	battle, err := h.battleService.AddComment(c.Request.Context(), viewer, c.Param("id"), req.Content)
	if err != nil {
		if errors.Is(err, service.ErrEmptyComment) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.mapBattleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "battle": battle})
}

// SubmitRecord stores the calling student's completion report, replacing
// any earlier one.
func (h *BattleHandler) SubmitRecord(c *gin.Context) {
	var req RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	battle, err := h.battleService.SubmitRecord(c.Request.Context(), viewer, c.Param("id"), req.Content)
	if err != nil {
		if errors.Is(err, service.ErrRecordNotStudent) {
			abortWithError(c, http.StatusForbidden, err.Error())
			return
		}
		h.mapBattleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "battle": battle})
}

func (h *BattleHandler) mapBattleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBattleNotFound):
		abortWithError(c, http.StatusNotFound, "Battle not found")
	case errors.Is(err, service.ErrBattleAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Battle operation failed")
	}
}
