package processor

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/chillcharlie357/watermark/internal/models"
)

// Encode writes img in the settings' output format. JPEG has no alpha
// channel, so the image is flattened over white first; PNG keeps alpha.
func Encode(w io.Writer, img image.Image, s models.WatermarkSettings) error {
	switch s.OutputFormat {
	case models.FormatPNG:
		return png.Encode(w, img)
	default:
		return jpeg.Encode(w, flattenToRGB(img), &jpeg.Options{Quality: s.JPEGQuality})
	}
}

func flattenToRGB(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Over)
	return rgba
}
