package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/art-school-server/internal/interface/http"
)

// UserModule serves identity reads and role changes.
// Bearer: GET /users/:email, GET /users/role/:email (owner only)
// Bearer + admin: GET /users, PATCH /users/:id?role=
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
	Limit   gin.HandlerFunc
	Admin   gin.HandlerFunc
}

func (m *UserModule) Name() string { return "users" }

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users", m.Auth, m.Limit)
	{
		users.GET("", m.Admin, m.Handler.List)
		users.GET("/:email", m.Handler.GetByEmail)
		users.GET("/role/:email", m.Handler.Role)
		users.PATCH("/:id", m.Admin, m.Handler.UpdateRole)
	}
}
