package router

import (
	"time"

	"github.com/oksasatya/art-school-server/internal/container"
	"github.com/oksasatya/art-school-server/internal/domain/entity"
	handlers "github.com/oksasatya/art-school-server/internal/interface/http"
	"github.com/oksasatya/art-school-server/internal/interface/middleware"
	"github.com/oksasatya/art-school-server/internal/router/modules"
)

// InitModules builds the handlers from c and adds one module per resource.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	if r.Logger == nil {
		r.Logger = c.Logger
	}
	guard := handlers.NewOwnerGuard(c.Auditor, c.Metrics)
	auth := middleware.Auth(c.Tokens, c.Metrics)
	perCaller := middleware.RateLimit(c.Redis, c.Config.RateLimitRPM, time.Minute, middleware.KeyByEmail(), nil)
	admin := middleware.RequireRole(c.Users, c.Metrics, entity.RoleAdmin)
	instructor := middleware.RequireRole(c.Users, c.Metrics, entity.RoleInstructor, entity.RoleAdmin)

	users := handlers.NewUserHandler(c.Users, guard, c.Logger)

	r.Add(&modules.AuthModule{
		Handler: handlers.NewAuthHandler(c.Users, c.Logger),
		Users:   users,
		Redis:   c.Redis,
	})
	r.Add(&modules.UserModule{Handler: users, Auth: auth, Limit: perCaller, Admin: admin})
	r.Add(&modules.ClassModule{
		Handler:    handlers.NewClassHandler(c.Classes, guard, c.Logger),
		Auth:       auth,
		Limit:      perCaller,
		Admin:      admin,
		Instructor: instructor,
	})
	r.Add(&modules.EnrollmentModule{
		Handler: handlers.NewEnrollmentHandler(c.Enrollments, guard, c.Logger),
		Auth:    auth,
		Limit:   perCaller,
	})
	r.Add(&modules.PaymentModule{
		Handler: handlers.NewPaymentHandler(c.Payments, guard, c.Logger),
		Auth:    auth,
		Limit:   perCaller,
	})
	if c.Config.MetricsEnabled && c.Gatherer != nil {
		r.Add(&modules.MetricsModule{Gatherer: c.Gatherer, Redis: c.Redis})
	}
}
