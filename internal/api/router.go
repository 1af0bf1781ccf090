package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Lawrencium-103/finstrat/internal/middleware"
)

// requestTimeout bounds read handlers. The refresh trigger is exempt: a full
// fetch across the universe can legitimately run longer.
const requestTimeout = 10 * time.Second

// NewRouter creates a Gin engine with all routes configured.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, RateLimiter).
//   - Adds request timeout handling for read endpoints.
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in
//     app.InitializeApp().
func NewRouter(handler *Handler) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(),
	)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		read := v1.Group("")
		read.Use(func(c *gin.Context) {
			ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
			defer cancel()
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
		read.GET("/quote/:ticker", handler.GetQuote)
		read.GET("/candles/:ticker", handler.GetCandles)
		read.GET("/metrics/:ticker", handler.GetMetrics)
		read.GET("/picks", handler.GetPicks)
		read.GET("/picks/history", handler.GetPicksHistory)
		read.GET("/status", handler.GetStatus)

		v1.POST("/refresh", handler.TriggerRefresh)
	}

	return router
}
