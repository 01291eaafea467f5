package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"trustboard-backend/internal/shared/middleware"
	"trustboard-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupInfluencerRoutes(v1, c)
		setupClaimRoutes(v1, c)
		setupReportRoutes(v1, c)
		setupSocialRoutes(v1, c)
	}

	return router
}

func setupInfluencerRoutes(v1 *gin.RouterGroup, c *container.Container) {
	influencers := v1.Group("/influencers")
	influencers.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		influencers.POST("", c.InfluencerHandler.Create)
		influencers.GET("", c.InfluencerHandler.Search)
		influencers.GET("/search", c.InfluencerHandler.FindByHandle)
		influencers.GET("/:id", c.InfluencerHandler.GetByID)
		influencers.PUT("/:id", c.InfluencerHandler.Update)
		influencers.POST("/:id/refresh", c.InfluencerHandler.Refresh)
		influencers.DELETE("/:id", middleware.AdminMiddleware(), c.InfluencerHandler.Delete)
	}
}

func setupClaimRoutes(v1 *gin.RouterGroup, c *container.Container) {
	claims := v1.Group("/claims")
	claims.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		claims.POST("", c.ClaimHandler.Create)
		claims.GET("", c.ClaimHandler.List)
		claims.GET("/:id", c.ClaimHandler.GetByID)
		claims.PUT("/:id", c.ClaimHandler.Update)
		claims.POST("/:id/studies", c.ClaimHandler.AddStudy)
		claims.POST("/:id/verify", c.ClaimHandler.Verify)
		claims.DELETE("/:id", middleware.AdminMiddleware(), c.ClaimHandler.Delete)
	}
}

func setupReportRoutes(v1 *gin.RouterGroup, c *container.Container) {
	reports := v1.Group("/reports")
	reports.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		reports.POST("", c.ReportHandler.Create)
		reports.GET("", c.ReportHandler.List)
		reports.GET("/:id", c.ReportHandler.GetByID)
		reports.DELETE("/:id", c.ReportHandler.Delete)
		reports.GET("/:id/export", c.ReportHandler.Export)
		reports.GET("/:id/export/:format", c.ReportHandler.Export)
	}
}

func setupSocialRoutes(v1 *gin.RouterGroup, c *container.Container) {
	social := v1.Group("/social")
	social.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		social.GET("/auth/:platform/url", c.SocialHandler.GetAuthURL)
		social.GET("/auth/:platform/callback", c.SocialHandler.Callback)
		social.GET("/connections", c.SocialHandler.ListConnections)
		social.DELETE("/connections/:platform", c.SocialHandler.Disconnect)
		social.POST("/analyze/:platform/:username", c.SocialHandler.Analyze)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Redis is non-critical; a failure degrades caching, not the API.
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
