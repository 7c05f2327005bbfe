package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/art-school-server/internal/interface/http"
)

// EnrollmentModule serves the caller's added classes. Every route requires a Bearer token.
type EnrollmentModule struct {
	Handler *handlers.EnrollmentHandler
	Auth    gin.HandlerFunc
	Limit   gin.HandlerFunc
}

func (m *EnrollmentModule) Name() string { return "added-classes" }

func (m *EnrollmentModule) Register(rg *gin.RouterGroup) {
	added := rg.Group("/added-classes", m.Auth, m.Limit)
	{
		added.POST("", m.Handler.Add)
		added.GET("", m.Handler.List)
		added.DELETE("/:id", m.Handler.Remove)
	}
}
