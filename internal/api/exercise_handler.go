package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/megaJingHua/PixelGym/internal/domain"
	"github.com/megaJingHua/PixelGym/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler exposes the exercise wiki.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs ---

type ExerciseRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name" binding:"required"`
	Muscle   string `json:"muscle" binding:"required"`
	Guide    string `json:"guide"`
	ImageURL string `json:"imageUrl"`
	Level    int    `json:"level" binding:"omitempty,min=1,max=5"`
	Tools    string `json:"tools"`
}

// --- Handlers ---

// ListExercises returns the wiki entries visible to the caller's cohort,
// optionally filtered by ?q= free-text search.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	exercises, err := h.exerciseService.VisibleExercises(c.Request.Context(), viewer, c.Query("q"))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list exercises")
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// CreateExercise stores a new wiki entry authored by the calling coach.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	exercise := exerciseFromRequest(req)
	created, err := h.exerciseService.CreateExercise(c.Request.Context(), viewer, exercise)
	if err != nil {
		h.mapExerciseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "exercise": created})
}

// UpdateExercise replaces an entry owned by the calling coach.
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	exercise := exerciseFromRequest(req)
	exercise.ID = c.Param("id")
	updated, err := h.exerciseService.UpdateExercise(c.Request.Context(), viewer, exercise)
	if err != nil {
		h.mapExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "exercise": updated})
}

// DeleteExercise removes an entry. Idempotent.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	if err := h.exerciseService.DeleteExercise(c.Request.Context(), viewer, c.Param("id")); err != nil {
		h.mapExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func exerciseFromRequest(req ExerciseRequest) *domain.Exercise {
	return &domain.Exercise{
		ID:       req.ID,
		Name:     req.Name,
		Muscle:   req.Muscle,
		Guide:    req.Guide,
		ImageURL: req.ImageURL,
		Level:    req.Level,
		Tools:    req.Tools,
	}
}

func (h *ExerciseHandler) mapExerciseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, "Exercise not found")
	case errors.Is(err, service.ErrExerciseAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Exercise operation failed")
	}
}
