package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/art-school-server/internal/interface/middleware"
)

// MetricsModule exposes Prometheus metrics, rate-limited per IP except for private networks.
type MetricsModule struct {
	Gatherer prometheus.Gatherer
	Redis    *redis.Client
}

func (m *MetricsModule) Name() string { return "metrics" }

func (m *MetricsModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/metrics", rl, gin.WrapH(middleware.Handler(m.Gatherer)))
}
