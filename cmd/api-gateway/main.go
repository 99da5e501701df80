package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hagwon-io/hagwon-api/api/swagger"
	"github.com/hagwon-io/hagwon-api/internal/handler"
	"github.com/hagwon-io/hagwon-api/internal/middleware"
	"github.com/hagwon-io/hagwon-api/internal/repository"
	"github.com/hagwon-io/hagwon-api/internal/service"
	"github.com/hagwon-io/hagwon-api/pkg/cache"
	"github.com/hagwon-io/hagwon-api/pkg/config"
	"github.com/hagwon-io/hagwon-api/pkg/database"
	"github.com/hagwon-io/hagwon-api/pkg/logger"
	corsmiddleware "github.com/hagwon-io/hagwon-api/pkg/middleware/cors"
	reqidmiddleware "github.com/hagwon-io/hagwon-api/pkg/middleware/requestid"
	"github.com/hagwon-io/hagwon-api/pkg/timegrid"
)

// @title Hagwon Admin API
// @version 1.0.0
// @description Weekly timetable administration for academy schedules
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	scheduleRepo := repository.NewScheduleRowRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	classRepo := repository.NewClassRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Density.CacheTTL, logr, cfg.Density.CacheEnabled && redisClient != nil)

	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	studentSvc := service.NewStudentService(studentRepo, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, cacheSvc, nil, logr, cfg.Timetable.MaxBlocksPerApply)
	timetableSvc := service.NewTimetableService(scheduleRepo, classRepo, studentRepo, cacheSvc, nil, logr, service.TimetableConfig{
		Grid: timegrid.Config{
			StartHour:       cfg.Grid.StartHour,
			EndHour:         cfg.Grid.EndHour,
			SlotMinutes:     cfg.Grid.SlotMinutes,
			DayCount:        cfg.Grid.DayCount,
			DayColumnWidth:  cfg.Grid.DayColumnWidth,
			SlotPixelHeight: cfg.Grid.SlotPixelHeight,
			HeaderHeight:    cfg.Grid.HeaderHeight,
		},
		Suggest: timegrid.SuggestOptions{
			SlotMinutes:     cfg.Suggest.SlotMinutes,
			MinClassMinutes: cfg.Suggest.MinClassMinutes,
		},
		CacheTTL: cfg.Density.CacheTTL,
	})

	authHandler := handler.NewAuthHandler(authSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	timetableHandler := handler.NewTimetableHandler(timetableSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	{
		protected.GET("/students", studentHandler.List)
		protected.GET("/students/:id", studentHandler.Get)
		protected.GET("/students/:id/availability", timetableHandler.Availability)

		protected.GET("/schedule-blocks", scheduleHandler.List)
		protected.POST("/schedule-blocks", scheduleHandler.Create)
		protected.PATCH("/schedule-blocks/:id", scheduleHandler.Update)
		protected.DELETE("/schedule-blocks/:id", scheduleHandler.Delete)

		protected.POST("/timetable/blocks:apply", scheduleHandler.Apply)
		protected.GET("/timetable/layout", timetableHandler.Layout)
		protected.GET("/timetable/density", timetableHandler.Density)
		protected.POST("/timetable/suggest", timetableHandler.Suggest)
		protected.POST("/timetable/suggest:auto", timetableHandler.AutoSuggest)
		protected.GET("/timetable/export", timetableHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
