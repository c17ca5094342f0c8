package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"projectmanager/internal/config"
	"projectmanager/internal/db"
	httpServer "projectmanager/internal/http"
	"projectmanager/internal/http/handlers"
	"projectmanager/internal/http/middleware"
	"projectmanager/internal/logger"
	"projectmanager/internal/repository"
	"projectmanager/internal/repository/memory"
	"projectmanager/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	tokens, err := service.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiration)
	if err != nil {
		logger.Fatal("token issuer", "error", err)
	}

	var stores httpServer.Stores
	healthDeps := map[string]handlers.Pinger{}

	switch cfg.Storage {
	case config.StorageMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		mem := memory.New()
		stores = httpServer.Stores{Users: mem.Users(), Projects: mem.Projects(), Tasks: mem.Tasks()}
		healthDeps["database"] = mem
	default:
		dbPool := db.Connect(cfg.DatabaseURL, cfg.DBMaxConns)
		defer dbPool.Close()
		stores = httpServer.Stores{
			Users:    repository.NewUserRepository(dbPool),
			Projects: repository.NewProjectRepository(dbPool),
			Tasks:    repository.NewTaskRepository(dbPool),
		}
		healthDeps["database"] = dbPool
	}

	redisClient := middleware.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if redisClient != nil {
		defer redisClient.Close()
	}
	limiter := middleware.NewRateLimiter(redisClient)
	if redisClient != nil {
		healthDeps["redis"] = limiter
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := httpServer.NewRouter(httpServer.RouterConfig{
		Stores:             stores,
		Tokens:             tokens,
		Hasher:             service.NewPasswordHasher(cfg.BcryptCost),
		Limiter:            limiter,
		HealthDeps:         healthDeps,
		Version:            cfg.AppVersion,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		APIRateLimit:       cfg.APIRateLimit,
		APIRateWindow:      cfg.APIRateWindow,
		AuthRateLimit:      cfg.AuthRateLimit,
		AuthRateWindow:     cfg.AuthRateWindow,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "storage", cfg.Storage, "version", cfg.AppVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return
	}

	logger.Info("server exited")
}
