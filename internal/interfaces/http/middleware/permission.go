package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skywrench/internal/infrastructure/permission"
	"skywrench/internal/shared/authorization"
	"skywrench/internal/shared/constants"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type PermissionMiddleware struct {
	enforcer *permission.Enforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer *permission.Enforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// RequirePermission checks the caller's role against the policy for one
// resource/action pair. It must run after RequireAuth.
func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := currentRole(c)
		if role == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		allowed, err := m.enforcer.Enforce(role, resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "role", role, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied", "role", role, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireStaff rejects callers whose role is not a staff role. It is used
// where row-level scoping differs between customers and staff rather than
// a policy check.
func (m *PermissionMiddleware) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := authorization.ParseUserRole(currentRole(c))
		if !role.IsStaff() {
			utils.ErrorResponse(c, http.StatusForbidden, "staff access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentRole(c *gin.Context) string {
	if v, ok := c.Get(constants.ContextKeyUserRole); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}
