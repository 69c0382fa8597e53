package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/simak-gateway/api/swagger"
	"github.com/noah-isme/simak-gateway/internal/handler"
	"github.com/noah-isme/simak-gateway/internal/middleware"
	"github.com/noah-isme/simak-gateway/internal/models"
	"github.com/noah-isme/simak-gateway/internal/repository"
	"github.com/noah-isme/simak-gateway/internal/service"
	"github.com/noah-isme/simak-gateway/internal/upstream"
	"github.com/noah-isme/simak-gateway/pkg/cache"
	"github.com/noah-isme/simak-gateway/pkg/config"
	"github.com/noah-isme/simak-gateway/pkg/database"
	"github.com/noah-isme/simak-gateway/pkg/logger"
	corsmiddleware "github.com/noah-isme/simak-gateway/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/simak-gateway/pkg/middleware/requestid"
)

// @title SIMAK Gateway
// @version 1.0.0
// @description Gateway for the SIMAK academic service: elective submission workflow and event management
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

	metricsSvc := service.NewMetricsService()
	upstreamClient := upstream.NewClient(cfg.Upstream, logr, metricsSvc)

	var cacheRepo service.CacheRepository
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis unavailable, event caching disabled", "error", err)
	} else {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Elective.EventCacheTTL, logr)

	var auditSvc *service.AuditService
	if cfg.Audit.Enabled {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect audit database", "error", err)
		}
		auditSvc = service.NewAuditService(repository.NewAuditRepository(db), logr)
	}

	authSvc := service.NewAuthService(cfg.JWT, logr)
	electiveSvc := service.NewElectiveService(upstreamClient, nil, logr, cfg.Elective.CohortWindow)
	eventSvc := service.NewEventService(upstreamClient, cacheSvc, nil, logr, cfg.Elective.EventCacheTTL)
	exportSvc := service.NewExportService(electiveSvc, eventSvc, logr)

	identityHandler := handler.NewIdentityHandler(upstreamClient)
	electiveHandler := handler.NewElectiveHandler(electiveSvc)
	eventHandler := handler.NewEventHandler(eventSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	auditHandler := handler.NewAuditHandler(auditSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Scrape)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(authSvc))

	api.GET("/identity/detail", identityHandler.Detail)

	elective := api.Group("/elective")
	{
		elective.GET("/participation",
			middleware.RequireRoles(models.RoleStudent),
			electiveHandler.Participation)
		elective.POST("/choices",
			middleware.RequireRoles(models.RoleStudent),
			middleware.Audit(auditSvc, models.AuditActionChoicesSubmit, "elective_choices"),
			electiveHandler.Submit)
		elective.PUT("/choices/status",
			middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher),
			middleware.Audit(auditSvc, models.AuditActionChoicesReview, "elective_choices"),
			electiveHandler.Review)
		elective.GET("/submissions/:eventId",
			middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher),
			electiveHandler.Submissions)

		elective.GET("/events", eventHandler.List)
		elective.GET("/events/:id", eventHandler.Get)
		elective.POST("/events",
			middleware.RequireRoles(models.RoleAdmin),
			middleware.Audit(auditSvc, models.AuditActionEventCreate, "enrollment_event"),
			eventHandler.Create)
		elective.PUT("/events/:id",
			middleware.RequireRoles(models.RoleAdmin),
			middleware.Audit(auditSvc, models.AuditActionEventUpdate, "enrollment_event"),
			eventHandler.Update)
		elective.DELETE("/events/:id",
			middleware.RequireRoles(models.RoleAdmin),
			middleware.Audit(auditSvc, models.AuditActionEventDelete, "enrollment_event"),
			eventHandler.Delete)
		if cfg.Exports.Enabled {
			elective.GET("/events/:id/export",
				middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher),
				exportHandler.Recap)
		}
	}

	if cfg.Audit.Enabled {
		api.GET("/audit-logs", middleware.RequireRoles(models.RoleAdmin), auditHandler.List)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("gateway starting", "addr", addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("gateway failed", "error", err)
	}
}
