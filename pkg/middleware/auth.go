package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/config"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/models"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/tokens"
)

// UserLoader is the minimal user lookup the auth middleware depends on.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*models.AdminUser, error)
}

// contextUserKey is where RequireAuth stashes the authenticated admin user.
const contextUserKey = "user"

// RequireAuth verifies the Bearer token and re-validates the account on
// every request: the token is never trusted blindly, the user is re-fetched
// and a deactivated account is rejected even when its token is still valid.
func RequireAuth(cfg *config.Config, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
			return
		}
		var token string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &token); n != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
			return
		}

		userID, err := tokens.ParseToken(cfg, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
			return
		}

		u, err := users.GetByID(c.Request.Context(), userID)
		if err != nil || u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
			return
		}
		if !u.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Account is deactivated"})
			return
		}

		c.Set(contextUserKey, u)
		c.Next()
	}
}

// RequireRole gates a route on the role hierarchy (super_admin satisfies
// every gate). Must run after RequireAuth.
func RequireRole(required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization failed"})
			return
		}
		if !u.Role.Satisfies(required) {
			msg := "Access denied. Admin role required."
			if required == models.RoleSuperAdmin {
				msg = "Access denied. Super admin role required."
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": msg})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated admin user, or nil outside an
// authenticated request.
func CurrentUser(c *gin.Context) *models.AdminUser {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.AdminUser)
	return u
}
