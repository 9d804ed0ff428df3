package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/course-enrollment-api/internal/middleware"
	"github.com/noah-isme/course-enrollment-api/internal/models"
	"github.com/noah-isme/course-enrollment-api/internal/service"
	"github.com/noah-isme/course-enrollment-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/course-enrollment-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/course-enrollment-api/pkg/middleware/requestid"
)

// RouterConfig carries everything needed to mount the API.
type RouterConfig struct {
	APIPrefix      string
	AllowedOrigins []string
	AuthEnabled    bool
	Auth           *service.AuthService
	Logger         *zap.Logger
	Metrics        *service.MetricsService

	Students    *StudentHandler
	Courses     *CourseHandler
	Enrollments *EnrollmentHandler
	Ops         *MetricsHandler
	Docs        gin.HandlerFunc
}

// NewRouter builds the gin engine with global middleware and all routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(cfg.Logger))
	r.Use(corsmiddleware.New(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", cfg.Ops.Health)
	r.GET("/ready", cfg.Ops.Ready)
	r.GET("/metrics", cfg.Ops.Prometheus)
	if cfg.Docs != nil {
		r.GET("/docs/*any", cfg.Docs)
	}

	api := r.Group(cfg.APIPrefix, middleware.Chain(cfg.AuthEnabled, middleware.JWT(cfg.Auth))...)
	adminOnly := middleware.Chain(cfg.AuthEnabled, middleware.RequireRoles(models.RoleAdmin))
	registrars := middleware.Chain(cfg.AuthEnabled, middleware.RequireRoles(models.RoleAdmin, models.RoleRegistrar))

	students := api.Group("/students")
	students.POST("", append(registrars, cfg.Students.Register)...)
	students.GET("/:id", cfg.Students.Get)

	courses := api.Group("/courses")
	courses.POST("", append(adminOnly, cfg.Courses.Register)...)
	courses.GET("", cfg.Courses.List)
	courses.GET("/export", cfg.Courses.Export)
	courses.GET("/:id", cfg.Courses.Get)

	api.POST("/enrollments", append(registrars, cfg.Enrollments.Create)...)

	return r
}
