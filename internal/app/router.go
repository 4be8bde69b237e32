package app

import (
	"practice_backend/docs"
	"practice_backend/internal/config"
	"practice_backend/internal/middleware"
	"practice_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 系统
	router.GET("/", c.health.Root)
	router.GET("/api/health", c.health.HealthCheck)

	// 2. 练习（Redis 窗口限流）
	practice := router.Group("/practice")
	practice.Use(middleware.RedisRateLimit(a.Redis, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()))
	{
		practice.POST("/generate", c.practice.Generate)
		practice.POST("/answer", c.practice.Answer)
		practice.GET("/dimensions", c.practice.ListDimensions)
	}
}
