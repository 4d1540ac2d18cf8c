package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/chillcharlie357/watermark/internal/models"
	"github.com/chillcharlie357/watermark/internal/services/exporter"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExportBatch runs a batch export synchronously and reports the aggregate
// result. The same-directory guard rejects the whole batch before any write.
func (h *WatermarkHandler) ExportBatch(c *gin.Context) {
	var job models.ExportJob
	if err := c.ShouldBindJSON(&job); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid export request: "+err.Error())
		return
	}
	job.ID = uuid.New().String()

	result, err := h.exporter.Export(c.Request.Context(), job)
	if err != nil {
		if errors.Is(err, exporter.ErrSameDirectory) {
			h.respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Export batch failed", zap.String("job_id", job.ID), zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data: models.ExportJob{
			ID:        job.ID,
			Paths:     job.Paths,
			OutputDir: job.OutputDir,
			Settings:  job.Settings,
			Status:    models.StatusCompleted,
			Result:    result,
		},
	})
}

// ExportBatchAsync publishes the batch to the export queue and returns the
// job ID immediately.
func (h *WatermarkHandler) ExportBatchAsync(c *gin.Context) {
	if h.queue == nil {
		h.respondError(c, http.StatusServiceUnavailable, "Async export is not available")
		return
	}

	var job models.ExportJob
	if err := c.ShouldBindJSON(&job); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid export request: "+err.Error())
		return
	}

	job.ID = uuid.New().String()
	job.Status = models.StatusPending
	job.CreatedAt = time.Now()

	if err := h.queue.PublishJob(c.Request.Context(), &job); err != nil {
		h.logger.Error("Failed to publish export job", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to queue export job")
		return
	}

	c.JSON(http.StatusAccepted, models.APIResponse{
		Success: true,
		Data:    gin.H{"job_id": job.ID, "status": job.Status},
	})
}
