package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/art-school-server/config"
	"github.com/oksasatya/art-school-server/internal/container"
	"github.com/oksasatya/art-school-server/internal/infrastructure/elastic"
	"github.com/oksasatya/art-school-server/internal/infrastructure/memory"
	"github.com/oksasatya/art-school-server/internal/infrastructure/mongodb"
	"github.com/oksasatya/art-school-server/internal/infrastructure/payment"
	pginfra "github.com/oksasatya/art-school-server/internal/infrastructure/postgres"
	"github.com/oksasatya/art-school-server/internal/interface/middleware"
	"github.com/oksasatya/art-school-server/internal/router"
	"github.com/oksasatya/art-school-server/pkg/helpers"
	"github.com/oksasatya/art-school-server/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	// Document store
	var repos container.Repositories
	switch cfg.StoreDriver {
	case "memory":
		logger.Warn("STORE_DRIVER=memory; data is lost on restart")
		repos = container.MemoryRepositories(memory.NewStore())
	case "mongo":
		client, err := mongodb.Connect(ctx, cfg.MongoConnectionURI(), cfg.MongoTimeout)
		if err != nil {
			log.Fatalf("failed to connect to mongo: %v", err)
		}
		closers = append(closers, func() { _ = client.Disconnect(context.Background()) })
		db := client.Database(cfg.MongoDatabase)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			log.Fatalf("failed to ensure indexes: %v", err)
		}
		repos = container.MongoRepositories(db)
	default:
		log.Fatalf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	backends := buildBackends(ctx, cfg, logger, &closers)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	c := container.New(cfg, logger, repos, backends, reg)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(c.Metrics.Instrument())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))
	if cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	registry := router.NewRegistry(r, "")
	router.InitModules(registry, c)
	registry.RegisterAll()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.WithField("store", cfg.StoreDriver).Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
		return
	}
	logger.Info("server exited properly")
}

// buildBackends connects the optional services. Anything unconfigured or
// unreachable is left nil and the matching feature is switched off.
func buildBackends(ctx context.Context, cfg *config.Config, logger *logrus.Logger, closers *[]func()) container.Backends {
	var b container.Backends

	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			logger.WithError(err).Warn("redis unavailable; rate limiting disabled")
			_ = rdb.Close()
		} else {
			b.Redis = rdb
			*closers = append(*closers, func() { _ = rdb.Close() })
		}
	}

	if cfg.AuditDatabaseURL != "" {
		pool, err := pginfra.NewPool(ctx, cfg.AuditDatabaseURL, cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			log.Fatalf("failed to connect to audit database: %v", err)
		}
		*closers = append(*closers, pool.Close)
		if err := pginfra.RunMigrations(cfg.AuditDatabaseURL, cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		b.Audit = pginfra.NewAuditRepository(pool)
	}

	if cfg.PaymentSecretKey != "" {
		b.Gateway = payment.NewStripeGateway(cfg.PaymentSecretKey, nil)
	} else {
		logger.Warn("PAYMENT_SECRET_KEY not set; payment intents will fail")
	}

	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		*closers = append(*closers, func() { _ = gcsClient.Close() })
		b.Images = helpers.NewGCSUploader(gcsClient, cfg.GCSBucket)
	}

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		logger.WithError(err).Warn("elasticsearch unavailable; class search disabled")
	} else if es != nil {
		if err := helpers.PingES(ctx, es); err != nil {
			logger.WithError(err).Warn("elasticsearch unreachable; class search disabled")
		} else {
			b.Index = elastic.NewClassIndex(es, cfg.ESClassesIndex)
		}
	}

	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQReceiptQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; receipts disabled")
		} else {
			b.Receipts = pub
			*closers = append(*closers, pub.Close)
		}
	}
	return b
}
