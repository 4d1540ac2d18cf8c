package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/chillcharlie357/watermark/internal/models"
	"github.com/chillcharlie357/watermark/internal/services/processor"
	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RenderImage renders one uploaded image with the settings in the `payload`
// form field and returns the encoded result. When the upload store is
// configured the result is published there and its URL returned instead.
func (h *WatermarkHandler) RenderImage(c *gin.Context) {
	file, header, err := c.Request.FormFile(imageParamKey)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	settings, err := h.parseSettings(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.config.Export.MaxFileSize))
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "Failed to read image: "+err.Error())
		return
	}

	ctx := c.Request.Context()

	var cacheKey string
	if h.storage != nil {
		cacheKey = h.storage.RenderCacheKey(header.Filename, int64(len(data)), settings)
		if cached, err := h.storage.GetFromCache(ctx, cacheKey); err == nil && cached != nil {
			h.respondRendered(c, cached, settings)
			return
		}
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid image: "+err.Error())
		return
	}

	rendered := h.pipeline.Render(img, settings)

	var buf bytes.Buffer
	if err := processor.Encode(&buf, rendered, settings); err != nil {
		h.logger.Error("Failed to encode rendered image", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to encode result")
		return
	}

	if h.storage != nil && cacheKey != "" {
		if err := h.storage.SetCache(ctx, cacheKey, buf.Bytes()); err != nil {
			h.logger.Warn("Failed to cache rendered image", zap.Error(err))
		}
	}

	h.respondRendered(c, buf.Bytes(), settings)
}

func (h *WatermarkHandler) respondRendered(c *gin.Context, data []byte, s models.WatermarkSettings) {
	if h.storage != nil && h.storage.UploadsEnabled() {
		filename := "render" + s.Extension()
		url, err := h.storage.Upload(c.Request.Context(), data, filename)
		if err != nil {
			h.logger.Warn("Upload failed, returning image inline", zap.Error(err))
		} else {
			c.JSON(http.StatusOK, models.APIResponse{
				Success: true,
				Data:    gin.H{"url": url, "file_size": len(data)},
			})
			return
		}
	}

	contentType := "image/jpeg"
	if s.OutputFormat == models.FormatPNG {
		contentType = "image/png"
	}
	c.Data(http.StatusOK, contentType, data)
}

// parseSettings reads the settings snapshot from the `payload` form field.
// A missing payload means defaults; the pipeline clamps ranges again anyway.
func (h *WatermarkHandler) parseSettings(c *gin.Context) (models.WatermarkSettings, error) {
	settings := models.DefaultSettings()

	jsonStr := c.PostForm("payload")
	if jsonStr == "" {
		return settings, nil
	}
	if err := json.Unmarshal([]byte(jsonStr), &settings); err != nil {
		return settings, fmt.Errorf("invalid settings payload: %v", err)
	}
	return settings.Clamped(), nil
}
