package handlers

import (
	"net/http"

	"github.com/chillcharlie357/watermark/internal/models"
	"github.com/gin-gonic/gin"
)

func (h *WatermarkHandler) GetTemplate(c *gin.Context) {
	settings, err := h.templates.Load()
	if err != nil {
		h.respondError(c, http.StatusNotFound, "No template saved")
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: settings})
}

func (h *WatermarkHandler) SaveTemplate(c *gin.Context) {
	settings := models.DefaultSettings()
	if err := c.ShouldBindJSON(&settings); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid settings: "+err.Error())
		return
	}

	if err := h.templates.Save(settings.Clamped()); err != nil {
		h.respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{Success: true})
}

func (h *WatermarkHandler) DeleteTemplate(c *gin.Context) {
	if err := h.templates.Delete(); err != nil {
		h.respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{Success: true})
}
