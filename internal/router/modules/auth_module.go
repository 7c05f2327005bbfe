package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/art-school-server/internal/interface/http"
	"github.com/oksasatya/art-school-server/internal/interface/middleware"
)

// AuthModule holds the routes that need no token.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   *handlers.UserHandler
	Redis   *redis.Client
}

func (m *AuthModule) Name() string { return "auth" }

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	tokenLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil)   // 10 req/min per IP
	registerLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil) // 5 req/min per IP

	rg.GET("/", handlers.Banner)
	rg.POST("/jwt", tokenLimiter, m.Handler.Token)
	rg.POST("/users", registerLimiter, m.Users.Register)
}
