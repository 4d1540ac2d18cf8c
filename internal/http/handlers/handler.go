package handlers

import (
	"github.com/chillcharlie357/watermark/internal/config"
	"github.com/chillcharlie357/watermark/internal/models"
	"github.com/chillcharlie357/watermark/internal/services/exporter"
	"github.com/chillcharlie357/watermark/internal/services/processor"
	"github.com/chillcharlie357/watermark/internal/services/queue"
	"github.com/chillcharlie357/watermark/internal/services/storage"
	"github.com/chillcharlie357/watermark/internal/services/template"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const imageParamKey = "image"

// WatermarkHandler serves the rendering and export endpoints. Storage and
// queue may be nil; the affected endpoints then degrade (no cache/upload,
// async export unavailable) without touching the render path.
type WatermarkHandler struct {
	pipeline  *processor.Pipeline
	exporter  *exporter.Exporter
	templates *template.Store
	storage   *storage.Service
	queue     *queue.QueueService
	logger    *zap.Logger
	config    *config.Config
}

func NewWatermarkHandler(
	pipeline *processor.Pipeline,
	exp *exporter.Exporter,
	templates *template.Store,
	storage *storage.Service,
	queue *queue.QueueService,
	logger *zap.Logger,
	config *config.Config,
) *WatermarkHandler {
	return &WatermarkHandler{
		pipeline:  pipeline,
		exporter:  exp,
		templates: templates,
		storage:   storage,
		queue:     queue,
		logger:    logger,
		config:    config,
	}
}

func (h *WatermarkHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}
