package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/classpulse/classpulse-api/internal/models"
	appErrors "github.com/classpulse/classpulse-api/pkg/errors"
	"github.com/classpulse/classpulse-api/pkg/response"
)

// RoleHeader carries the dashboard viewer role. No authentication happens
// here: the role is explicit request context, injected rather than read from
// ambient client storage.
const RoleHeader = "X-Dashboard-Role"

// ContextRoleKey is the gin context key holding the resolved role.
const ContextRoleKey = "dashboard_role"

// Role resolves the viewer role from the request header, falling back to the
// configured default.
func Role(defaultRole models.Role) gin.HandlerFunc {
	if !defaultRole.Valid() {
		defaultRole = models.RoleTeacher
	}
	return func(c *gin.Context) {
		role := models.Role(c.GetHeader(RoleHeader))
		if !role.Valid() {
			role = defaultRole
		}
		c.Set(ContextRoleKey, role)
		c.Next()
	}
}

// RequireRoles restricts a route to the listed roles.
func RequireRoles(allowed ...models.Role) gin.HandlerFunc {
	allowedSet := make(map[models.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}
	return func(c *gin.Context) {
		role := RoleValue(c)
		if _, ok := allowedSet[role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RoleValue returns the role stored in the gin context.
func RoleValue(c *gin.Context) models.Role {
	if v, exists := c.Get(ContextRoleKey); exists {
		if role, ok := v.(models.Role); ok {
			return role
		}
	}
	return ""
}
