package processor

import (
	"image"
	"image/draw"
	"os"

	"github.com/chillcharlie357/watermark/internal/models"
	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// drawOverlay pastes the image watermark onto base, using the watermark's
// own alpha channel as the compositing mask. A missing or undecodable file
// is logged and skipped; it never aborts the render.
func (p *Pipeline) drawOverlay(base *image.NRGBA, s models.WatermarkSettings) {
	if !s.ImageEnabled || s.ImagePath == "" {
		return
	}
	if _, err := os.Stat(s.ImagePath); err != nil {
		return
	}

	wm, err := imaging.Open(s.ImagePath)
	if err != nil {
		p.logger.Warn("watermark image skipped",
			zap.String("path", s.ImagePath),
			zap.Error(err))
		return
	}

	// Clone yields NRGBA; images without an alpha channel come out opaque.
	mark := imaging.Clone(wm)

	w := max(1, mark.Bounds().Dx()*s.ImageScalePercent/100)
	h := max(1, mark.Bounds().Dy()*s.ImageScalePercent/100)
	mark = imaging.Resize(mark, w, h, imaging.Lanczos)

	if s.ImageAlpha < 255 {
		scaleAlpha(mark, s.ImageAlpha)
	}

	b := base.Bounds()
	pos := resolvePosition(b.Dx(), b.Dy(), w, h, s)
	r := image.Rect(pos.X, pos.Y, pos.X+w, pos.Y+h)
	draw.Draw(base, r, mark, mark.Bounds().Min, draw.Over)
}

// scaleAlpha multiplies the alpha channel pointwise, preserving the relative
// transparency already present in the watermark.
func scaleAlpha(img *image.NRGBA, alpha int) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(int(img.Pix[i]) * alpha / 255)
	}
}
