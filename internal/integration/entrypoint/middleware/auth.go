// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gestao-consultoria/backend/internal/application/adapter"
	"github.com/gestao-consultoria/backend/internal/domain/entity"
	domainerror "github.com/gestao-consultoria/backend/internal/domain/error"
	"github.com/gestao-consultoria/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID.
	UserIDKey ContextKey = "user_id"
	// UserEmailKey is the context key for the authenticated user's email.
	UserEmailKey ContextKey = "user_email"
	// UserRoleKey is the context key for the authenticated user's profile role.
	UserRoleKey ContextKey = "user_role"
)

// AuthMiddleware authenticates Supabase bearer tokens and loads the caller's role.
type AuthMiddleware struct {
	identity    adapter.IdentityService
	profileRepo adapter.ProfileRepository
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(identity adapter.IdentityService, profileRepo adapter.ProfileRepository) *AuthMiddleware {
	return &AuthMiddleware{
		identity:    identity,
		profileRepo: profileRepo,
	}
}

// Authenticate returns a Gin middleware handler that enforces bearer authentication.
// The role always comes from the caller's profile row, never from the token.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Unauthorized",
				Code:  string(domainerror.ErrCodeAdminUnauthorized),
			})
			return
		}

		user, err := m.identity.GetUser(c.Request.Context(), strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid token",
				Code:  string(domainerror.ErrCodeAdminInvalidToken),
			})
			return
		}

		profile, err := m.profileRepo.FindByID(c.Request.Context(), user.ID)
		if err != nil {
			if !errors.Is(err, domainerror.ErrProfileNotFound) {
				slog.Error("failed to load caller profile", "user_id", user.ID, "error", err)
			}
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Error: "Forbidden",
				Code:  string(domainerror.ErrCodeAdminForbidden),
			})
			return
		}

		c.Set(string(UserIDKey), user.ID)
		c.Set(string(UserEmailKey), user.Email)
		c.Set(string(UserRoleKey), profile.Role)

		c.Next()
	}
}

// RequireRead allows any known role.
func (m *AuthMiddleware) RequireRead() gin.HandlerFunc {
	return requireRole(entity.Role.IsKnown)
}

// RequireWrite allows roles that may create or modify financial records.
func (m *AuthMiddleware) RequireWrite() gin.HandlerFunc {
	return requireRole(entity.Role.CanWrite)
}

func requireRole(allowed func(entity.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if !ok || !allowed(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Error: "Forbidden",
				Code:  string(domainerror.ErrCodeAdminForbidden),
			})
			return
		}
		c.Next()
	}
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}

// GetUserRoleFromContext extracts the profile role from the Gin context.
func GetUserRoleFromContext(c *gin.Context) (entity.Role, bool) {
	role, exists := c.Get(string(UserRoleKey))
	if !exists {
		return "", false
	}
	r, ok := role.(entity.Role)
	return r, ok
}
