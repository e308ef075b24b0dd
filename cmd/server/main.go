package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/classpulse/classpulse-api/api/swagger"
	"github.com/classpulse/classpulse-api/internal/datasync"
	"github.com/classpulse/classpulse-api/internal/handler"
	"github.com/classpulse/classpulse-api/internal/middleware"
	"github.com/classpulse/classpulse-api/internal/models"
	"github.com/classpulse/classpulse-api/internal/repository"
	"github.com/classpulse/classpulse-api/internal/seed"
	"github.com/classpulse/classpulse-api/internal/service"
	"github.com/classpulse/classpulse-api/pkg/cache"
	"github.com/classpulse/classpulse-api/pkg/config"
	"github.com/classpulse/classpulse-api/pkg/database"
	"github.com/classpulse/classpulse-api/pkg/jobs"
	"github.com/classpulse/classpulse-api/pkg/logger"
	corsmiddleware "github.com/classpulse/classpulse-api/pkg/middleware/cors"
	reqidmiddleware "github.com/classpulse/classpulse-api/pkg/middleware/requestid"
)

// @title ClassPulse API
// @version 0.1.0
// @description Academic tracking dashboard backend with resilient local-remote sync
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The remote store and the snapshot cache are both optional at boot: a
	// missing Postgres or Redis degrades to fallback generation, never to a
	// crash.
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Warn(fmt.Sprintf("postgres unavailable, serving without a remote store: %v", err))
		db = nil
	}
	if db != nil {
		defer db.Close() //nolint:errcheck
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn(fmt.Sprintf("redis unavailable, serving without snapshots: %v", err))
		redisClient = nil
	}

	notifications := service.NewNotificationService(cfg.Sync.NotifyBuffer, logr)
	metrics := service.NewMetricsService()

	snapshots := repository.NewSnapshotRepository(redisClient, logr, metrics.ObserveSnapshotWrite)
	defer snapshots.Close() //nolint:errcheck

	generator := seed.NewGenerator(seed.Config{
		Students:        cfg.Roster.Students,
		AssignmentLabel: cfg.Roster.AssignmentLabel,
	})
	roster := generator.Students()

	flushCfg := jobs.QueueConfig{
		Workers:    cfg.Sync.FlushWorkers,
		MaxRetries: cfg.Sync.FlushRetries,
		RetryDelay: cfg.Sync.FlushRetryDelay,
	}

	grades := datasync.NewCollection(datasync.Config[models.GradeEntry]{
		Key:        models.CollectionGrades,
		Gateway:    repository.NewGradeRepository(db),
		Snapshots:  snapshots,
		Generate:   generator.GradeEntries,
		Notifier:   notifications,
		Metrics:    metrics,
		Logger:     logr,
		Flush:      flushCfg,
		SeedRemote: cfg.Sync.SeedRemote,
	})
	attendance := datasync.NewCollection(datasync.Config[models.AttendanceRecord]{
		Key:        models.CollectionAttendance,
		Gateway:    repository.NewAttendanceRepository(db),
		Snapshots:  snapshots,
		Generate:   generator.AttendanceRecords,
		Notifier:   notifications,
		Metrics:    metrics,
		Logger:     logr,
		Flush:      flushCfg,
		SeedRemote: cfg.Sync.SeedRemote,
	})
	events := datasync.NewCollection(datasync.Config[models.CalendarEvent]{
		Key:        models.CollectionEvents,
		Gateway:    repository.NewCalendarRepository(db),
		Snapshots:  snapshots,
		Generate:   generator.CalendarEvents,
		Notifier:   notifications,
		Metrics:    metrics,
		Logger:     logr,
		Flush:      flushCfg,
		SeedRemote: cfg.Sync.SeedRemote,
	})
	goals := datasync.NewCollection(datasync.Config[models.Goal]{
		Key:        models.CollectionGoals,
		Gateway:    repository.NewGoalRepository(db),
		Snapshots:  snapshots,
		Generate:   generator.Goals,
		Notifier:   notifications,
		Metrics:    metrics,
		Logger:     logr,
		Flush:      flushCfg,
		SeedRemote: cfg.Sync.SeedRemote,
	})

	for _, start := range []func(context.Context){grades.Start, attendance.Start, events.Start, goals.Start} {
		start(ctx)
	}
	defer func() {
		goals.Stop()
		events.Stop()
		attendance.Stop()
		grades.Stop()
	}()

	validate := validator.New()

	gradeSvc := service.NewGradeService(grades, validate, notifications, logr)
	attendanceSvc := service.NewAttendanceService(attendance, roster, validate, notifications, nil, logr)
	calendarSvc := service.NewCalendarService(events, validate, notifications, logr)
	goalSvc := service.NewGoalService(goals, validate, notifications, logr)
	exportSvc := service.NewExportService(attendanceSvc, gradeSvc, logr)

	gradeHandler := handler.NewGradeHandler(gradeSvc, exportSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc, exportSvc)
	calendarHandler := handler.NewCalendarHandler(calendarSvc)
	goalHandler := handler.NewGoalHandler(goalSvc)
	notificationHandler := handler.NewNotificationHandler(notifications)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Role(models.Role(cfg.Dashboard.DefaultRole)))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/grades", gradeHandler.List)
		api.POST("/grades", gradeHandler.Create)
		api.PATCH("/grades/:id", gradeHandler.Update)
		api.DELETE("/grades/:id", gradeHandler.Delete)

		api.GET("/attendance", attendanceHandler.Week)
		api.POST("/attendance", attendanceHandler.SetStatus)

		api.GET("/events", calendarHandler.List)
		api.POST("/events", calendarHandler.Create)
		api.PUT("/events/:id", calendarHandler.Update)
		api.DELETE("/events/:id", calendarHandler.Delete)

		api.GET("/goals", goalHandler.List)
		api.POST("/goals", goalHandler.Create)
		api.PATCH("/goals/:id", goalHandler.Update)
		api.DELETE("/goals/:id", goalHandler.Delete)

		api.GET("/notifications", notificationHandler.List)

		if cfg.Exports.Enabled {
			exports := api.Group("", middleware.RequireRoles(models.RoleTeacher))
			exports.GET("/attendance/export", attendanceHandler.Export)
			exports.GET("/grades/export", gradeHandler.Export)
		}
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
}
