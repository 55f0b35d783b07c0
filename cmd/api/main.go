package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/MaazSajjad/smart-scheduler-sub001/api/swagger"
	"github.com/MaazSajjad/smart-scheduler-sub001/internal/handler"
	"github.com/MaazSajjad/smart-scheduler-sub001/internal/middleware"
	"github.com/MaazSajjad/smart-scheduler-sub001/internal/models"
	"github.com/MaazSajjad/smart-scheduler-sub001/internal/recommender"
	"github.com/MaazSajjad/smart-scheduler-sub001/internal/repository"
	"github.com/MaazSajjad/smart-scheduler-sub001/internal/service"
	"github.com/MaazSajjad/smart-scheduler-sub001/pkg/cache"
	"github.com/MaazSajjad/smart-scheduler-sub001/pkg/config"
	"github.com/MaazSajjad/smart-scheduler-sub001/pkg/database"
	"github.com/MaazSajjad/smart-scheduler-sub001/pkg/logger"
	corsmiddleware "github.com/MaazSajjad/smart-scheduler-sub001/pkg/middleware/cors"
	reqidmiddleware "github.com/MaazSajjad/smart-scheduler-sub001/pkg/middleware/requestid"
)

// @title Smart Scheduler API
// @version 1.0.0
// @description Course timetabling service: AI-assisted generation, conflict validation and group allocation.
// @BasePath /api/v1
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// cache is an optimisation; the API still serves from Postgres
		logr.Sugar().Warnw("redis unavailable, continuing without cache", "error", err)
		redisClient = nil
	}

	var recClient recommender.Client
	if cfg.Recommender.Enabled {
		gemini, err := recommender.NewGeminiClient(context.Background(), cfg.Recommender, logr)
		if err != nil {
			logr.Sugar().Warnw("recommender unavailable, generation disabled", "error", err)
		} else {
			recClient = gemini
		}
	}

	// repositories
	versionRepo := repository.NewScheduleVersionRepository(db)
	settingRepo := repository.NewGroupSettingRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	// services
	metrics := service.NewMetricsService()
	authService := service.NewAuthService(userRepo, cfg.JWT, nil, logr)
	scheduleService := service.NewScheduleService(versionRepo, settingRepo, recClient, cacheRepo, db, nil, logr, service.ScheduleServiceConfig{
		ProposalTTL:      cfg.Scheduler.ProposalTTL,
		ApprovedCacheTTL: cfg.Scheduler.ApprovedCacheTTL,
	})
	groupService := service.NewGroupService(settingRepo, studentRepo, db, nil, logr)
	studentService := service.NewStudentService(studentRepo, nil, logr)
	exportService := service.NewExportService(scheduleService, logr)

	// handlers
	authHandler := handler.NewAuthHandler(authService)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	groupHandler := handler.NewGroupHandler(groupService)
	studentHandler := handler.NewStudentHandler(studentService)
	exportHandler := handler.NewExportHandler(exportService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("", middleware.JWT(authService))
	authed.GET("/auth/me", authHandler.Me)

	staff := authed.Group("", middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator))
	staff.POST("/schedules/generate", scheduleHandler.Generate)
	staff.POST("/schedules/save", scheduleHandler.Save)
	staff.POST("/schedules/validate", scheduleHandler.Validate)
	staff.PUT("/schedules/:id/sections", scheduleHandler.ReplaceSections)
	staff.POST("/schedules/:id/finalize", scheduleHandler.Finalize)
	staff.POST("/schedules/:id/approve", scheduleHandler.Approve)
	staff.DELETE("/schedules/:id", scheduleHandler.Delete)
	staff.GET("/schedules", scheduleHandler.List)
	staff.GET("/schedules/:id", scheduleHandler.Get)
	staff.GET("/schedules/:id/export/csv", exportHandler.CSV)
	staff.GET("/schedules/:id/export/pdf", exportHandler.PDF)
	staff.POST("/groups/calculate", groupHandler.Calculate)
	staff.POST("/groups/assign", groupHandler.Assign)
	staff.GET("/groups/setting", groupHandler.GetSetting)
	staff.GET("/students", studentHandler.List)

	// students can only read the approved timetable of their cohort
	authed.GET("/schedules/approved", scheduleHandler.GetApproved)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
