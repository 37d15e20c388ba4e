package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/student-roster/api/swagger"
	"github.com/noah-isme/student-roster/internal/handler"
	"github.com/noah-isme/student-roster/internal/middleware"
	"github.com/noah-isme/student-roster/internal/repository"
	"github.com/noah-isme/student-roster/internal/service"
	"github.com/noah-isme/student-roster/pkg/cache"
	"github.com/noah-isme/student-roster/pkg/config"
	"github.com/noah-isme/student-roster/pkg/database"
	"github.com/noah-isme/student-roster/pkg/logger"
	corsmiddleware "github.com/noah-isme/student-roster/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/student-roster/pkg/middleware/requestid"
)

const shutdownTimeout = 10 * time.Second

// @title Student Roster API
// @version 1.0.0
// @description Lists, filters and enrolls students.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Students.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			// the roster still works from Postgres alone
			logr.Warn("redis unavailable, list cache disabled", zap.Error(err))
		} else {
			repo := repository.NewCacheRepository(client, "roster", logr)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Students.CacheTTL, logr, cacheRepo != nil)

	studentRepo := repository.NewStudentRepository(db, metricsSvc)
	studentSvc := service.NewStudentService(studentRepo, cacheSvc, metricsSvc, validator.New(), logr)
	exportSvc := service.NewExportService(studentSvc, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	handler.RegisterRoutes(r.Group(cfg.APIPrefix),
		handler.NewStudentHandler(studentSvc, exportSvc),
		handler.NewMetricsHandler(metricsSvc, db),
	)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", server.Addr), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logr.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Error("could not stop server gracefully", zap.Error(err))
		return server.Close()
	}
	return nil
}
