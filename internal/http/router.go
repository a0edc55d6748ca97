package http

import (
	"context"
	"log/slog"

	"github.com/geocoder89/portfolio-api/internal/config"
	"github.com/geocoder89/portfolio-api/internal/http/handlers"
	"github.com/geocoder89/portfolio-api/internal/http/middlewares"
	"github.com/geocoder89/portfolio-api/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Deps are the process-wide collaborators built once in main and shared read-only by handlers.
type Deps struct {
	Auth     handlers.Authenticator
	Skills   handlers.DocumentStore
	Projects handlers.DocumentStore

	// Ping backs /readyz; nil means always ready.
	Ping func(ctx context.Context) error
	// ShuttingDown flips /readyz to 503 once graceful shutdown begins.
	ShuttingDown func() bool

	Prom     *observability.Prom
	Gatherer prometheus.Gatherer
}

func NewRouter(log *slog.Logger, deps Deps, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" && gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))

	// status and health
	h := handlers.NewHealthHandler(deps.Ping, deps.ShuttingDown)
	r.GET("/", h.Root)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	r.GET("/docs", handlers.SwaggerUI)
	r.GET("/docs/openapi.yaml", handlers.OpenAPISpec)

	// Wire up handlers
	authHandler := handlers.NewAuthHandler(deps.Auth)
	skillsHandler := handlers.NewDocumentsHandler(deps.Skills, handlers.SkillMessages)
	projectsHandler := handlers.NewDocumentsHandler(deps.Projects, handlers.ProjectMessages)

	// no route below verifies a bearer token
	api := r.Group("/api/v1")
	api.Use(middlewares.RequireJSON())

	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	api.GET("/skills", skillsHandler.List)
	api.POST("/skills", skillsHandler.Create)

	api.GET("/projects", projectsHandler.List)
	api.POST("/projects", projectsHandler.Create)

	return r
}
