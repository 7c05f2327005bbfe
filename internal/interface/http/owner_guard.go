package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/art-school-server/internal/application"
	"github.com/oksasatya/art-school-server/internal/interface/middleware"
	"github.com/oksasatya/art-school-server/pkg/response"
)

// OwnerGuard applies application.CheckOwner to a request and answers the
// empty and mismatch cases itself.
type OwnerGuard struct {
	Audit   *application.Auditor
	Metrics *middleware.Metrics
}

func NewOwnerGuard(audit *application.Auditor, metrics *middleware.Metrics) *OwnerGuard {
	return &OwnerGuard{Audit: audit, Metrics: metrics}
}

// Scope returns the authenticated email to filter by. When it returns false the
// response is already written: [] for a missing owner, 403 for a foreign one.
func (g *OwnerGuard) Scope(c *gin.Context, supplied string) (string, bool) {
	caller := middleware.UserEmail(c)
	decision, err := application.CheckOwner(supplied, caller)
	if err != nil {
		g.reject(c, supplied, caller)
		return "", false
	}
	if decision == application.DecisionEmpty {
		response.JSON(c, http.StatusOK, []any{})
		return "", false
	}
	return caller, true
}

// Permit is for request bodies: an omitted owner defaults to the caller, a foreign one is 403.
func (g *OwnerGuard) Permit(c *gin.Context, supplied string) (string, bool) {
	caller := middleware.UserEmail(c)
	if supplied == "" {
		return caller, true
	}
	if _, err := application.CheckOwner(supplied, caller); err != nil {
		g.reject(c, supplied, caller)
		return "", false
	}
	return caller, true
}

func (g *OwnerGuard) reject(c *gin.Context, supplied, caller string) {
	g.Metrics.Rejected(middleware.ReasonOwnerMismatch)
	g.Audit.Record(c.Request.Context(), application.AuditEvent{
		Email:    caller,
		Action:   application.AuditOwnerMismatch,
		Metadata: map[string]any{"requested": supplied, "path": c.FullPath()},
	})
	response.Abort(c, http.StatusForbidden, application.ErrOwnerMismatch.Error())
}
