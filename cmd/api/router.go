package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"commerce-admin-backend/internal/shared/middleware"
	"commerce-admin-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupRefundRoutes(v1, c)
	}

	return router
}

func setupRefundRoutes(rg *gin.RouterGroup, c *container.Container) {
	orders := rg.Group("/orders/:order_id")
	{
		orders.POST("/refund-session", c.RefundHandler.OpenSession)
		orders.GET("/refund-session", c.RefundHandler.GetSession)
		orders.DELETE("/refund-session", c.RefundHandler.CloseSession)
		orders.PUT("/refund-session/quantity", c.RefundHandler.SetQuantity)
		orders.PUT("/refund-session/amount", c.RefundHandler.SetCustomAmount)
		orders.POST("/refund-session/submit", c.RefundHandler.Submit)
		orders.GET("/refunds", c.RefundHandler.ListAudit)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "ok"
		if err := c.DB.Ping(ctx.Request.Context()); err != nil {
			dbStatus = "down"
		}

		cacheStatus := "ok"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "down"
		}

		status := http.StatusOK
		overall := "ok"
		if dbStatus != "ok" {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		ctx.JSON(status, gin.H{
			"status":   overall,
			"database": dbStatus,
			"cache":    cacheStatus,
			"version":  c.Config.App.Version,
		})
	}
}
