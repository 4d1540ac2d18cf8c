// Package processor implements the watermark rendering pipeline: placement
// resolution, text and image compositing, and the final encode.
package processor

import (
	"image"
	"image/color"
	"math"

	"github.com/chillcharlie357/watermark/internal/models"
	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// Rotations below this magnitude are treated as none.
const rotationEpsilon = 0.01

type Pipeline struct {
	fonts  *FontResolver
	logger *zap.Logger
}

func NewPipeline(fonts *FontResolver, logger *zap.Logger) *Pipeline {
	return &Pipeline{fonts: fonts, logger: logger}
}

// Render applies the full stage chain to one source image and returns the
// composited result. The stage order is fixed: normalize, optional source
// resize, text layer, image layer, rotation. Resizing happens before any
// compositing so watermark geometry is computed against the final canvas;
// rotation happens last so watermarks turn together with the photo. Render
// never mutates src and never fails: every per-stage problem degrades to
// skipping that stage.
func (p *Pipeline) Render(src image.Image, s models.WatermarkSettings) *image.NRGBA {
	s = s.Clamped()

	img := imaging.Clone(src)

	if s.ResizePercent != nil && *s.ResizePercent > 0 {
		pct := *s.ResizePercent
		w := max(1, img.Bounds().Dx()*pct/100)
		h := max(1, img.Bounds().Dy()*pct/100)
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}

	p.drawText(img, s)
	p.drawOverlay(img, s)

	if math.Abs(s.RotationDeg) > rotationEpsilon {
		img = imaging.Rotate(img, s.RotationDeg, color.NRGBA{})
	}

	return img
}
