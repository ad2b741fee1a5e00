package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/chickenroad/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.FarmHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/farm", handler.GetFarm)
	r.GET("/report", handler.GetReport)

	r.POST("/chickens/first", handler.CreateFirstChicken)
	r.POST("/chickens", handler.BuyChicken)
	r.DELETE("/chickens/:id", handler.SellChicken)

	r.POST("/feed", handler.Feed)
	r.POST("/eggs/collect", handler.CollectEggs)
	r.POST("/eggs/sell", handler.SellEggs)
	r.POST("/upgrades/:kind", handler.BuyUpgrade)

	r.POST("/deaths/:id/confirm", handler.ConfirmDeath)
	r.POST("/notices/funds/dismiss", handler.DismissFundsNotice)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
