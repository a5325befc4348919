package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"guesthouse-backend/config"
	"guesthouse-backend/models"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	CtxUserID    = "userId"
	CtxAudience  = "audience"
	CtxSessionID = "sessionId"
)

func bearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(auth, "Bearer "), true
}

// RequireCustomer guards the cart and checkout flow. A missing or invalid
// token means "please login": the frontend redirects to authentication
// instead of mutating an anonymous cart.
func RequireCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			utils.JSONErrorCode(c, http.StatusUnauthorized, "error.loginRequired", "please login to continue")
			c.Abort()
			return
		}
		claims, err := utils.ParseToken(raw)
		if err != nil || claims.Audience != utils.AudienceCustomer {
			utils.JSONErrorCode(c, http.StatusUnauthorized, "error.loginRequired", "please login to continue")
			c.Abort()
			return
		}
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxAudience, claims.Audience)
		// The cart is private per session; key it by the customer identity.
		c.Set(CtxSessionID, fmt.Sprintf("customer:%d", claims.UserID))
		c.Next()
	}
}

// RequireAdmin guards the admin dashboard routes.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			utils.JSONErrorCode(c, http.StatusUnauthorized, "error.loginRequired", "admin login required")
			c.Abort()
			return
		}
		claims, err := utils.ParseToken(raw)
		if err != nil || claims.Audience != utils.AudienceAdmin {
			utils.JSONErrorCode(c, http.StatusUnauthorized, "error.loginRequired", "admin login required")
			c.Abort()
			return
		}
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxAudience, claims.Audience)
		c.Next()
	}
}

// RequirePermission checks the server-owned (role, permission) matrix for
// the authenticated admin. The client only renders a fetched snapshot; this
// table is the source of truth.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := c.Get(CtxUserID)
		if !ok {
			utils.JSONErrorCode(c, http.StatusUnauthorized, "error.loginRequired", "admin login required")
			c.Abort()
			return
		}

		var count int64
		err := config.DB.
			Model(&models.RolePermission{}).
			Joins("JOIN role_members ON role_members.role_id = role_permissions.role_id").
			Where("role_members.admin_id = ? AND role_permissions.permission = ?", adminID, permission).
			Count(&count).Error
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}
		if count == 0 {
			utils.JSONErrorCode(c, http.StatusForbidden, "error.forbidden", "you do not have permission to do this")
			c.Abort()
			return
		}
		c.Next()
	}
}
