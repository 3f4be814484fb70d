package app

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shadowknight55/social-dashboard/internal/middleware"
	"github.com/shadowknight55/social-dashboard/internal/modules/settings"
	"github.com/shadowknight55/social-dashboard/internal/modules/stats"
	"github.com/shadowknight55/social-dashboard/internal/pkg/response"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes() {
	r := a.router
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "social-dashboard",
		"version": "1.0.0",
	}
	r.GET("/", func(c *gin.Context) {
		response.OK(c, appInfo)
	})
	r.GET("/health", a.health)

	api := r.Group(apiPrefix)
	api.Use(middleware.OptionalAuth())
	api.Use(middleware.RateLimit(a.rc.Raw()))
	api.Use(middleware.HTTPCache(a.rc.Raw(), middleware.HTTPCacheOptions{
		Disable: a.cfg.IsDev(),
	}))

	// Shared services
	settingsSvc := settings.NewService(settings.NewMongoStore(a.db), a.logger)
	statsSvc := stats.NewService(stats.NewMongoStore(a.db), stats.NewSynthesizer(), a.logger)

	stats.NewHandler(statsSvc, settingsSvc).RegisterRoutes(api, authMW)
	settings.NewHandler(settingsSvc).RegisterRoutes(api, authMW)
}

func (a *App) health(c *gin.Context) {
	ctx := c.Request.Context()
	status := "ok"
	checks := gin.H{"mongo": "ok", "redis": "ok"}
	if err := a.mongoClient.Ping(ctx, nil); err != nil {
		status = "degraded"
		checks["mongo"] = err.Error()
	}
	if err := a.rc.Raw().Ping(ctx).Err(); err != nil {
		status = "degraded"
		checks["redis"] = err.Error()
	}
	response.OK(c, gin.H{
		"status": status,
		"uptime": time.Since(processStart).Truncate(time.Second).String(),
		"checks": checks,
	})
}
