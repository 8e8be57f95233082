package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/megaJingHua/PixelGym/internal/domain"
	"github.com/megaJingHua/PixelGym/internal/service"

	"github.com/gin-gonic/gin"
)

// LogHandler exposes workout log CRUD plus the plan lifecycle.
type LogHandler struct {
	logService service.LogService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logService service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

// --- DTOs ---

type CreateLogRequest struct {
	ID        string           `json:"id"`
	StudentID string           `json:"studentId"`
	Date      time.Time        `json:"date"`
	Items     []domain.LogItem `json:"items" binding:"required,min=1"`
	Notes     string           `json:"notes"`
	IsPlan    bool             `json:"isPlan"`
}

type AssignPlanRequest struct {
	StudentIDs []string         `json:"studentIds" binding:"required,min=1"`
	Items      []domain.LogItem `json:"items" binding:"required,min=1"`
	Notes      string           `json:"notes"`
	Date       time.Time        `json:"date"`
}

type CompletePlanRequest struct {
	Items    []domain.LogItem `json:"items" binding:"required,min=1"`
	Notes    string           `json:"notes"`
	Duration int              `json:"duration"`
}

// --- Handlers ---

// ListLogs returns the logs the caller may see, newest first. Coaches can
// drill into one student via ?studentId=; the super-admin can pass
// ?scope=all for the unfiltered view.
func (h *LogHandler) ListLogs(c *gin.Context) {
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	allMode := c.Query("scope") == "all"
	logs, err := h.logService.VisibleLogs(c.Request.Context(), viewer, c.Query("studentId"), allMode)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}

// CreateLog stores a new log (or, keyed by a repeated ID, replaces one).
func (h *LogHandler) CreateLog(c *gin.Context) {
	var req CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	log := &domain.WorkoutLog{
		ID:        req.ID,
		StudentID: req.StudentID,
		Date:      req.Date,
		Items:     req.Items,
		Notes:     req.Notes,
		IsPlan:    req.IsPlan,
	}
	created, err := h.logService.CreateLog(c.Request.Context(), viewer, log)
	if err != nil {
		if errors.Is(err, service.ErrLogAccessDenied) {
			abortWithError(c, http.StatusForbidden, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to create log")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "log": created})
}

// UpdateLog shallow-merges the request body into the log. This is the only
// partial-update endpoint; unknown or disallowed fields are dropped.
func (h *LogHandler) UpdateLog(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	updated, err := h.logService.UpdateLog(c.Request.Context(), viewer, c.Param("id"), patch)
	if err != nil {
		h.mapLogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "log": updated})
}

// DeleteLog hard-deletes a log. Idempotent.
func (h *LogHandler) DeleteLog(c *gin.Context) {
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	if err := h.logService.DeleteLog(c.Request.Context(), viewer, c.Param("id")); err != nil {
		h.mapLogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AssignPlan creates one independent plan copy per target student. Partial
// failures keep the successful copies (207 with both lists).
func (h *LogHandler) AssignPlan(c *gin.Context) {
	var req AssignPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	created, err := h.logService.AssignPlan(c.Request.Context(), viewer, req.StudentIDs, req.Items, req.Notes, req.Date)
	if err != nil {
		if errors.Is(err, service.ErrPlanAssignment) {
			c.JSON(http.StatusMultiStatus, gin.H{"success": false, "logs": created, "error": err.Error()})
			return
		}
		if errors.Is(err, service.ErrNoStudents) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to assign plan")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "logs": created})
}

// ShareLog copies the caller's log to their active peers.
func (h *LogHandler) ShareLog(c *gin.Context) {
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	copies, err := h.logService.ShareLog(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNoPeers) {
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.mapLogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "logs": copies})
}

// CompletePlan turns an assigned plan into a completed log in place.
func (h *LogHandler) CompletePlan(c *gin.Context) {
	var req CompletePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	viewer, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	updated, err := h.logService.CompletePlan(c.Request.Context(), viewer, c.Param("id"), req.Items, req.Notes, req.Duration)
	if err != nil {
		if errors.Is(err, service.ErrNotAPlan) {
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.mapLogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "log": updated})
}

func (h *LogHandler) mapLogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLogNotFound):
		abortWithError(c, http.StatusNotFound, "Log not found")
	case errors.Is(err, service.ErrLogAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Log operation failed")
	}
}
