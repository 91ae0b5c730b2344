package middleware

import (
	"net/http"

	"hotelier/internal/domain"
	"hotelier/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireAnyRole ensures the authenticated user holds one of the listed
// roles.
func RequireAnyRole(roles ...domain.UserRole) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[string(r)] = true
	}

	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if !allowed[role.(string)] {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly middleware requires the admin role.
func AdminOnly() gin.HandlerFunc {
	return RequireAnyRole(domain.RoleAdmin)
}

// Housekeeping middleware admits admins and housekeepers.
func Housekeeping() gin.HandlerFunc {
	return RequireAnyRole(domain.RoleAdmin, domain.RoleHousekeeper)
}
