package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JoaovitorDev12/cgpl-agendamento/internal/domain"
	jwtsvc "github.com/JoaovitorDev12/cgpl-agendamento/internal/pkg/jwt"
	"github.com/JoaovitorDev12/cgpl-agendamento/internal/pkg/response"
)

const principalKey = "principal"

// RequireAuth validates the Bearer token and stores the resulting Principal
// in the request context.
func RequireAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing Authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set(principalKey, domain.Principal{
			ID:          claims.UserID,
			DisplayName: claims.DisplayName,
			Role:        domain.UserRole(claims.Role),
		})

		c.Next()
	}
}

// PrincipalFrom returns the Principal stored by RequireAuth.
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}
