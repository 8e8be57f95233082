package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/megaJingHua/PixelGym/internal/domain"
	"github.com/megaJingHua/PixelGym/internal/repository"
	"github.com/megaJingHua/PixelGym/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Constants for context keys
const (
	ContextUserKey    = "currentUser"
	ContextTokenIDKey = "tokenID"
)

// AuthMiddleware creates a Gin middleware that validates the bearer JWT,
// checks the token's session has not been revoked, and loads the caller's
// user record into the request context.
func AuthMiddleware(jwtSecret string, sessions repository.SessionRepository, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := &service.Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			}
			return
		}
		if !token.Valid || claims.UserID == "" || claims.ID == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		// Revocation check: logout and account deletion remove sessions.
		userID, ok, err := sessions.UserID(c.Request.Context(), claims.ID)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to verify session")
			return
		}
		if !ok || userID != claims.UserID {
			abortWithError(c, http.StatusUnauthorized, "Session has been revoked")
			return
		}

		user, err := userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				abortWithError(c, http.StatusUnauthorized, "Account no longer exists")
			} else {
				abortWithError(c, http.StatusInternalServerError, "Failed to load account")
			}
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextTokenIDKey, claims.ID)
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// RoleMiddleware creates middleware to check if the user has one of the
// required roles. The super-admin passes every role check. Must run AFTER
// AuthMiddleware.
func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "User not found in context")
			return
		}
		if user.IsSuperAdmin() {
			c.Next()
			return
		}

		for _, role := range allowedRoles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		abortWithError(c, http.StatusForbidden, fmt.Sprintf("Access denied: Role '%s' does not have permission", user.Role))
	}
}

// SuperAdminMiddleware restricts a route to the permanent admin account.
func SuperAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "User not found in context")
			return
		}
		if !user.IsSuperAdmin() {
			abortWithError(c, http.StatusForbidden, "Access denied: admin only")
			return
		}
		c.Next()
	}
}

// currentUser returns the authenticated user loaded by AuthMiddleware.
func currentUser(c *gin.Context) (*domain.User, error) {
	raw, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, errors.New("user not found in context")
	}
	user, ok := raw.(*domain.User)
	if !ok {
		return nil, errors.New("invalid user type in context")
	}
	return user, nil
}

// currentTokenID returns the session token ID of the request's JWT.
func currentTokenID(c *gin.Context) (string, error) {
	raw, exists := c.Get(ContextTokenIDKey)
	if !exists {
		return "", errors.New("token ID not found in context")
	}
	id, ok := raw.(string)
	if !ok {
		return "", errors.New("invalid token ID type in context")
	}
	return id, nil
}
