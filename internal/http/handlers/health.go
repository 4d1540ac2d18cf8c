package handlers

import (
	"net/http"
	"time"

	"github.com/chillcharlie357/watermark/internal/models"
	"github.com/gin-gonic/gin"
)

func (h *WatermarkHandler) HealthCheck(c *gin.Context) {
	services := make(map[string]string)
	if h.storage != nil {
		for k, v := range h.storage.HealthCheck(c.Request.Context()) {
			services[k] = v
		}
	}
	if h.queue != nil {
		services["rabbitmq"] = h.queue.HealthCheck()
	} else {
		services["rabbitmq"] = "disabled"
	}

	overall := "healthy"
	for _, status := range services {
		if status != "healthy" && status != "disabled" {
			overall = "unhealthy"
			break
		}
	}

	statusCode := http.StatusOK
	if overall == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == "healthy",
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Services:  services,
		},
	})
}
