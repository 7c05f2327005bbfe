package middleware

import (
	"context"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/art-school-server/internal/domain/entity"
	"github.com/oksasatya/art-school-server/pkg/response"
)

// RoleLookup resolves the stored role of an authenticated email.
type RoleLookup interface {
	RoleOf(ctx context.Context, email string) (entity.Role, error)
}

// RequireRole must run after Auth. Callers without one of roles get 403.
func RequireRole(lookup RoleLookup, metrics *Metrics, roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := lookup.RoleOf(c.Request.Context(), UserEmail(c))
		if err != nil {
			_ = c.Error(err)
			response.Abort(c, http.StatusInternalServerError, "internal server error")
			return
		}
		if !slices.Contains(roles, role) {
			metrics.Rejected(ReasonRole)
			response.Abort(c, http.StatusForbidden, msgForbidden)
			return
		}
		c.Next()
	}
}
