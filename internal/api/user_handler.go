package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/megaJingHua/PixelGym/internal/domain"
	"github.com/megaJingHua/PixelGym/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes account listing and administration.
type UserHandler struct {
	accountService service.AccountService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(accountService service.AccountService) *UserHandler {
	return &UserHandler{accountService: accountService}
}

// --- DTOs ---

type UpsertUserRequest struct {
	ID               string        `json:"id" binding:"required"`
	Name             string        `json:"name" binding:"required"`
	Email            string        `json:"email"`
	Role             domain.Role   `json:"role"`
	Status           domain.Status `json:"status"`
	CoachID          string        `json:"coachId"`
	SelectedBadgeIDs []string      `json:"selectedBadgeIds"`
	CustomBadges     []domain.Badge `json:"customBadges"`
}

type SetStatusRequest struct {
	Status domain.Status `json:"status" binding:"required,oneof=pending active disabled"`
}

type AssignCoachRequest struct {
	CoachID string `json:"coachId" binding:"required"`
}

// --- Handlers ---

// ListUsers returns every account. Name resolution for logs, battles and
// wiki entries is a client concern, so the listing is unfiltered.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.accountService.ListUsers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.accountService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpsertUser performs the whole-record create-or-replace write keyed by the
// body's ID. Last writer wins.
func (h *UserHandler) UpsertUser(c *gin.Context) {
	var req UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	actor, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	user := &domain.User{
		ID:               req.ID,
		Name:             req.Name,
		Email:            req.Email,
		Role:             req.Role,
		Status:           req.Status,
		CoachID:          req.CoachID,
		SelectedBadgeIDs: req.SelectedBadgeIDs,
		CustomBadges:     req.CustomBadges,
	}
	if err := h.accountService.UpsertUser(c.Request.Context(), actor, user); err != nil {
		if errors.Is(err, service.ErrAdminOnly) {
			abortWithError(c, http.StatusForbidden, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to save user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// DeleteUser removes an account and revokes its sessions. Admin only.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	if err := h.accountService.DeleteUser(c.Request.Context(), actor, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrAdminOnly), errors.Is(err, service.ErrCannotDeleteAdmin):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to delete user")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ApproveUser activates a pending account. Admin only.
func (h *UserHandler) ApproveUser(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	if err := h.accountService.ApproveUser(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.mapAccountError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetStatus changes an account's lifecycle status. Admin only.
func (h *UserHandler) SetStatus(c *gin.Context) {
	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	actor, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	if err := h.accountService.SetUserStatus(c.Request.Context(), actor, c.Param("id"), req.Status); err != nil {
		h.mapAccountError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AssignCoach links a student to a coach. Admin only.
func (h *UserHandler) AssignCoach(c *gin.Context) {
	var req AssignCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	actor, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	if err := h.accountService.AssignCoach(c.Request.Context(), actor, c.Param("id"), req.CoachID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotACoach), errors.Is(err, service.ErrCoachUnavailable):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			h.mapAccountError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *UserHandler) mapAccountError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAdminOnly):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Account operation failed")
	}
}
