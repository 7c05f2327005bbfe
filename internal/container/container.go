// Package container assembles the services and shared clients the router wires into modules.
package container

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/art-school-server/config"
	"github.com/oksasatya/art-school-server/internal/application"
	repo "github.com/oksasatya/art-school-server/internal/domain/repository"
	"github.com/oksasatya/art-school-server/internal/infrastructure/memory"
	"github.com/oksasatya/art-school-server/internal/infrastructure/mongodb"
	"github.com/oksasatya/art-school-server/internal/interface/middleware"
	"github.com/oksasatya/art-school-server/pkg/helpers"
)

// Repositories are the document store collections.
type Repositories struct {
	Users       repo.UserRepository
	Classes     repo.ClassRepository
	Instructors repo.InstructorRepository
	Enrollments repo.EnrollmentRepository
	Payments    repo.PaymentRepository
}

// MemoryRepositories backs every collection with one in-process store.
func MemoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		Users:       s.Users(),
		Classes:     s.Classes(),
		Instructors: s.Instructors(),
		Enrollments: s.Enrollments(),
		Payments:    s.Payments(),
	}
}

// MongoRepositories binds each collection of db.
func MongoRepositories(db *mongo.Database) Repositories {
	return Repositories{
		Users:       mongodb.NewUserRepository(db),
		Classes:     mongodb.NewClassRepository(db),
		Instructors: mongodb.NewInstructorRepository(db),
		Enrollments: mongodb.NewEnrollmentRepository(db),
		Payments:    mongodb.NewPaymentRepository(db),
	}
}

// Backends are the optional collaborators; a nil field turns the feature off.
type Backends struct {
	Redis    *redis.Client
	Audit    application.AuditSink
	Gateway  application.PaymentGateway
	Images   application.ImageUploader
	Index    application.ClassIndex
	Receipts application.ReceiptPublisher
}

// Container replaces package-level singletons: everything a module needs is reachable from it.
type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Redis    *redis.Client
	Metrics  *middleware.Metrics
	Gatherer prometheus.Gatherer

	Tokens  *helpers.JWTManager
	Auditor *application.Auditor

	Users       *application.UserService
	Classes     *application.ClassService
	Enrollments *application.EnrollmentService
	Payments    *application.PaymentService
}

// New builds the services. reg may be nil, in which case no metrics are collected.
func New(cfg *config.Config, logger *logrus.Logger, repos Repositories, b Backends, reg *prometheus.Registry) *Container {
	tokens := helpers.NewJWTManager(cfg.AccessTokenSecret)
	auditor := application.NewAuditor(b.Audit, logger)
	payments := application.NewPaymentService(repos.Payments, repos.Enrollments, repos.Classes,
		b.Gateway, b.Receipts, logger, cfg.PaymentCurrency, cfg.AppName, cfg.MailSendEnabled)

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Redis:   b.Redis,
		Tokens:  tokens,
		Auditor: auditor,

		Users:       application.NewUserService(repos.Users, tokens, auditor, logger, cfg.RoleLegacyCoercion),
		Classes:     application.NewClassService(repos.Classes, repos.Instructors, b.Index, b.Images, logger),
		Enrollments: application.NewEnrollmentService(repos.Enrollments),
		Payments:    payments,
	}
	if reg != nil {
		c.Metrics = middleware.NewMetrics(reg)
		c.Gatherer = reg
	}
	return c
}
