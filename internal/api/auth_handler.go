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

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type SignupRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     domain.Role `json:"role" binding:"required,oneof=coach student"`
}

// UserResponse excludes sensitive info like the password hash.
type UserResponse struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Email            string        `json:"email"`
	Role             domain.Role   `json:"role"`
	Status           domain.Status `json:"status"`
	CoachID          string        `json:"coachId,omitempty"`
	SelectedBadgeIDs []string      `json:"selectedBadgeIds,omitempty"`
	IsSuperAdmin     bool          `json:"isSuperAdmin"`
	CreatedAt        time.Time     `json:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UpdateAccountRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=8"`
}

// --- Handler Methods ---

// Signup creates a new account. Every account except the reserved admin
// handle starts pending and cannot log in until approved.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists), errors.Is(err, service.ErrNameAlreadyTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrHashingFailed):
			abortWithError(c, http.StatusInternalServerError, "Could not process registration")
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": MapUserToResponse(user)})
}

// Login authenticates a user and returns a JWT token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthenticationFailed):
			abortWithError(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrAccountPending), errors.Is(err, service.ErrAccountDisabled):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrTokenGeneration):
			abortWithError(c, http.StatusInternalServerError, "Could not process login")
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}

// Logout revokes the session behind the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID, err := currentTokenID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify session")
		return
	}
	if err := h.authService.Logout(c.Request.Context(), tokenID); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to revoke session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateAccount changes the caller's own email and/or password.
func (h *AuthHandler) UpdateAccount(c *gin.Context) {
	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	if err := h.authService.UpdateAccount(c.Request.Context(), user.ID, req.Email, req.Password); err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			abortWithError(c, http.StatusConflict, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the caller's own profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// MapUserToResponse converts a domain User to a UserResponse DTO, excluding
// the password hash.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		Role:             user.Role,
		Status:           user.Status,
		CoachID:          user.CoachID,
		SelectedBadgeIDs: user.SelectedBadgeIDs,
		IsSuperAdmin:     user.IsSuperAdmin(),
		CreatedAt:        user.CreatedAt,
	}
}
