package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questionmaster/api/internal/app/models"
	"github.com/questionmaster/api/internal/app/models/dto"
	"github.com/questionmaster/api/internal/pkg/auth"
)

// Context keys set by the auth middleware and read by controllers.
const (
	ContextUserID      = "userID"
	ContextUserRole    = "userRole"
	ContextDisplayName = "displayName"
)

// AuthMiddleware validates JWT tokens and enforces role requirements.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth requires a valid Bearer token and stores the caller's identity
// in the request context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c)
		if !ok {
			return
		}
		if !m.storeIdentity(c, claims) {
			return
		}
		c.Next()
	}
}

// OptionalAuth parses the Bearer token when present but lets anonymous
// requests through. Invalid tokens are still rejected so a client never
// silently loses its identity.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		claims, ok := m.authenticate(c)
		if !ok {
			return
		}
		if !m.storeIdentity(c, claims) {
			return
		}
		c.Next()
	}
}

// RoleRequired checks that the authenticated caller holds the given role.
// JWTAuth must run earlier in the chain.
func (m *AuthMiddleware) RoleRequired(requiredRole models.AppRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextUserRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(http.StatusUnauthorized, "Authentication required"))
			return
		}

		roleValue, ok := role.(models.AppRole)
		if !ok || roleValue != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(http.StatusForbidden, "You don't have sufficient permissions for this operation"))
			return
		}

		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) (*auth.Claims, bool) {
	tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			dto.NewErrorResponse(http.StatusUnauthorized, "Authentication required"))
		return nil, false
	}

	claims, err := m.jwtService.ValidateToken(tokenString)
	if err != nil {
		message := "Invalid token"
		if errors.Is(err, auth.ErrExpiredToken) {
			message = "Token has expired"
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			dto.NewErrorResponse(http.StatusUnauthorized, message))
		return nil, false
	}

	return claims, true
}

func (m *AuthMiddleware) storeIdentity(c *gin.Context, claims *auth.Claims) bool {
	userID, err := claims.UserID()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			dto.NewErrorResponse(http.StatusUnauthorized, "Invalid token"))
		return false
	}

	c.Set(ContextUserID, userID)
	c.Set(ContextUserRole, claims.ResolveRole())
	if displayName := claims.ResolveDisplayName(); displayName != nil {
		c.Set(ContextDisplayName, *displayName)
	}
	return true
}
