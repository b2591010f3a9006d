package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/SAP-F-2025/grading-service/internal/cache"
	"github.com/SAP-F-2025/grading-service/internal/config"
	"github.com/SAP-F-2025/grading-service/internal/events"
	"github.com/SAP-F-2025/grading-service/internal/handlers"
	"github.com/SAP-F-2025/grading-service/internal/repositories"
	"github.com/SAP-F-2025/grading-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/grading-service/internal/services"
	"github.com/SAP-F-2025/grading-service/internal/utils"
	"github.com/SAP-F-2025/grading-service/internal/validator"
	"github.com/SAP-F-2025/grading-service/pkg"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		fx.NopLogger,

		// Core
		fx.Provide(
			config.LoadConfig,
			NewLogger,
			func(l utils.Logger) *slog.Logger { return l.Slog() },
			pkg.InitDatabase,
			NewCache,
			NewEventPublisher,
			validator.New,
		),

		// Repositories and services
		fx.Provide(
			NewRepository,
			func(cfg *config.Config) services.GradingServiceConfig {
				return services.GradingServiceConfig{CacheTTL: cfg.GradingCacheTTL}
			},
			services.NewServiceManager,
		),

		// HTTP
		fx.Provide(
			NewGinEngine,
			func(sm services.ServiceManager, l utils.Logger, repo repositories.Repository) *handlers.HandlerManager {
				return handlers.NewHandlerManager(sm, l, repo)
			},
		),

		fx.Invoke(RegisterRoutesAndStartServer),
	)

	app.Run()
}

func NewLogger(cfg *config.Config) utils.Logger {
	logger := utils.NewLogger(cfg.Environment, os.Stdout)
	slog.SetDefault(logger.Slog())
	return logger
}

func NewCache(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) cache.CacheService {
	cacheService, closeFn := pkg.NewGradingCache(cfg, logger)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return closeFn() },
	})
	return cacheService
}

func NewEventPublisher(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (events.EventPublisher, error) {
	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return publisher.Close() },
	})
	return publisher, nil
}

func NewRepository(lc fx.Lifecycle, db *gorm.DB) repositories.Repository {
	repo := postgres.NewRepository(db)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return repo.Close() },
	})
	return repo
}

func NewGinEngine(cfg *config.Config, logger utils.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return handlers.NewRouter(logger, cfg.CORSAllowedOrigins)
}

// RegisterRoutesAndStartServer mounts the API and ties the HTTP server to the app lifecycle
func RegisterRoutesAndStartServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, router *gin.Engine, hm *handlers.HandlerManager, cfg *config.Config, logger utils.Logger) {
	hm.SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Grading service starting", "port", cfg.Port, "environment", cfg.Environment)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.LogError(err, "HTTP server failed")
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Grading service shutting down")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
