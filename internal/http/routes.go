package http

import (
	"time"

	"projectmanager/internal/http/handlers"
	"projectmanager/internal/http/middleware"
	"projectmanager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Stores are the persistence backends behind the services.
type Stores struct {
	Users    service.UserStore
	Projects service.ProjectStore
	Tasks    service.TaskStore
}

type RouterConfig struct {
	Stores  Stores
	Tokens  *service.TokenIssuer
	Hasher  *service.PasswordHasher
	Limiter *middleware.RateLimiter
	// Probed by /readyz, keyed by name.
	HealthDeps map[string]handlers.Pinger
	Version    string

	CORSAllowedOrigins []string
	APIRateLimit       int
	APIRateWindow      time.Duration
	AuthRateLimit      int
	AuthRateWindow     time.Duration
}

// NewHandler wires the services over the given stores.
func NewHandler(stores Stores, tokens *service.TokenIssuer, hasher *service.PasswordHasher) *handlers.Handler {
	projects := service.NewProjectService(stores.Projects, stores.Users)
	return handlers.NewHandler(
		service.NewAuthService(stores.Users, hasher, tokens),
		service.NewIdentityResolver(stores.Users),
		projects,
		service.NewTaskService(stores.Tasks, projects),
		service.NewProgressService(stores.Tasks, projects),
	)
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(), middleware.Metrics(), middleware.CORS(cfg.CORSAllowedOrigins))

	RegisterRoutes(r, cfg)
	return r
}

func RegisterRoutes(r *gin.Engine, cfg RouterConfig) {
	h := NewHandler(cfg.Stores, cfg.Tokens, cfg.Hasher)
	healthHandler := handlers.NewHealthHandler(cfg.HealthDeps, cfg.Version)

	limiter := cfg.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(nil)
	}

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	registerAPIRoutes(v1, h, limiter, cfg)

	// Unversioned prefix used by the existing frontend
	api := r.Group("/api")
	registerAPIRoutes(api, h, limiter, cfg)
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, limiter *middleware.RateLimiter, cfg RouterConfig) {
	// Auth and public routes bypass the token filter
	authRL := limiter.Limit("auth", cfg.AuthRateLimit, cfg.AuthRateWindow)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authRL, h.Register)
		auth.POST("/login", authRL, h.Login)
	}
	api.GET("/public/ping", h.Ping)

	projects := api.Group("/projects")
	projects.Use(
		limiter.Limit("api", cfg.APIRateLimit, cfg.APIRateWindow),
		middleware.JWT(cfg.Tokens),
		middleware.RequireAuth(),
	)
	{
		projects.POST("", h.CreateProject)
		projects.GET("", h.ListProjects)
		projects.GET("/paged", h.ListProjectsPaged)
		projects.GET("/:id", h.GetProject)
		projects.PUT("/:id", h.UpdateProject)
		projects.DELETE("/:id", h.DeleteProject)
		projects.GET("/:id/progress", h.GetProgress)

		projects.POST("/:id/tasks", h.AddTask)
		projects.GET("/:id/tasks", h.ListTasks)
		projects.GET("/:id/tasks/paged", h.ListTasksPaged)
		projects.GET("/:id/tasks/:taskId", h.GetTask)
		projects.PUT("/:id/tasks/:taskId", h.UpdateTask)
		projects.PATCH("/:id/tasks/:taskId/toggle", h.ToggleTask)
		projects.DELETE("/:id/tasks/:taskId", h.DeleteTask)
	}
}
