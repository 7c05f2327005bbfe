package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/art-school-server/internal/interface/http"
)

type ClassModule struct {
	Handler    *handlers.ClassHandler
	Auth       gin.HandlerFunc
	Limit      gin.HandlerFunc
	Admin      gin.HandlerFunc
	Instructor gin.HandlerFunc // instructor or admin
}

func (m *ClassModule) Name() string { return "classes" }

func (m *ClassModule) Register(rg *gin.RouterGroup) {
	rg.GET("/classes", m.Handler.List)
	rg.GET("/classes/search", m.Handler.Search)
	rg.GET("/stat", m.Handler.Stats)
	rg.GET("/instructors", m.Handler.Instructors)

	auth := rg.Group("/", m.Auth, m.Limit)
	{
		auth.GET("/my-classes", m.Handler.MyClasses)
		auth.POST("/classes", m.Instructor, m.Handler.Create)
		auth.PUT("/classes/:id", m.Handler.Update)
		auth.PATCH("/classes/:id", m.Admin, m.Handler.UpdateStatus)
		auth.POST("/classes/:id/image", m.Handler.UploadImage)
	}
}
