package routes

import (
	"net/http"

	"github.com/chillcharlie357/watermark/internal/http/handlers"
	"github.com/chillcharlie357/watermark/internal/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Router struct {
	handler *handlers.WatermarkHandler
	logger  *zap.Logger
}

func NewRouter(handler *handlers.WatermarkHandler, logger *zap.Logger) *Router {
	return &Router{
		handler: handler,
		logger:  logger,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.SecurityHeaders())

	// API version 1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", r.handler.HealthCheck)

		images := v1.Group("/images")
		{
			images.POST("/render", r.handler.RenderImage)
			images.POST("/export", r.handler.ExportBatch)
			images.POST("/export/async", r.handler.ExportBatchAsync)
		}

		templates := v1.Group("/templates")
		{
			templates.GET("", r.handler.GetTemplate)
			templates.PUT("", r.handler.SaveTemplate)
			templates.DELETE("", r.handler.DeleteTemplate)
		}
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Watermark service is running",
		})
	})

	return router
}
