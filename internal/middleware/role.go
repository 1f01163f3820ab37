package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JoaovitorDev12/cgpl-agendamento/internal/domain"
	"github.com/JoaovitorDev12/cgpl-agendamento/internal/pkg/response"
)

// RequireRole ensures that the authenticated user has the specified role
func RequireRole(requiredRole domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		if p.Role != requiredRole {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// PlannerOnly middleware requires the planner role
func PlannerOnly() gin.HandlerFunc {
	return RequireRole(domain.RolePlanner)
}
