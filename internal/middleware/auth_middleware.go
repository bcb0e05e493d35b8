package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placemate/placemate/internal/app/models/dto"
	"github.com/placemate/placemate/internal/pkg/auth"
)

// Context keys set by Authenticate
const (
	ContextUserID     = "userID"
	ContextEmail      = "email"
	ContextActiveRole = "activeRole"
	ContextRoles      = "roles"
)

// RoleChecker re-verifies role assignments against current state
type RoleChecker interface {
	HasRole(ctx context.Context, userID int64, role string) (bool, error)
}

// AuthMiddleware guards routes behind access token validation and role checks
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   RoleChecker
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo RoleChecker) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

// Authenticate validates the access token and loads the caller's identity
// into the request context. The token is read from the access_token cookie
// first, then from the Authorization header.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("access_token")
		if err != nil || tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					dto.NewErrorResponse("Authentication required", dto.ErrorCodeUnauthorized, nil))
				return
			}
			tokenString, err = auth.ExtractBearerToken(authHeader)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					dto.NewErrorResponse("Invalid authorization header", dto.ErrorCodeUnauthorized, nil))
				return
			}
		}

		claims, err := m.jwtService.ValidateToken(tokenString, auth.TokenTypeAccess)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextActiveRole, claims.ActiveRole)
		c.Set(ContextRoles, claims.Roles)

		c.Next()
	}
}

// RequireRoles allows the request through only when the caller's active
// role is one of the given roles. The role is re-checked against the
// database so revoked assignments take effect before the token expires.
func (m *AuthMiddleware) RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		activeRole := c.GetString(ContextActiveRole)
		allowed := false
		for _, role := range roles {
			if activeRole == role {
				allowed = true
				break
			}
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("Permission denied", dto.ErrorCodeForbidden, nil))
			return
		}

		userID := c.GetInt64(ContextUserID)
		hasRole, err := m.userRepo.HasRole(c.Request.Context(), userID, activeRole)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		if !hasRole {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("Role is no longer assigned", dto.ErrorCodeForbidden, nil))
			return
		}

		c.Next()
	}
}

// GetUserID reads the authenticated user's ID from the request context
func GetUserID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserID)
}

// GetActiveRole reads the authenticated user's active role from the
// request context
func GetActiveRole(c *gin.Context) string {
	return c.GetString(ContextActiveRole)
}
