package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/art-school-server/internal/interface/http"
)

type PaymentModule struct {
	Handler *handlers.PaymentHandler
	Auth    gin.HandlerFunc
	Limit   gin.HandlerFunc
}

func (m *PaymentModule) Name() string { return "payments" }

func (m *PaymentModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/", m.Auth, m.Limit)
	{
		auth.POST("/create-payment-intent", m.Handler.CreateIntent)
		auth.POST("/payments", m.Handler.Record)
		auth.GET("/payments", m.Handler.List)
	}
}
