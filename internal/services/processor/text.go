package processor

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/chillcharlie357/watermark/internal/models"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// drawText renders the text layer onto base. The text is drawn on a
// transparent layer first and then composited with its own alpha, so partial
// opacity blends against the photo instead of replacing it.
func (p *Pipeline) drawText(base *image.NRGBA, s models.WatermarkSettings) {
	if !s.TextEnabled || s.Text == "" {
		return
	}

	face := p.fonts.Face(s.FontSize)

	stroke := 0
	if s.StrokeEnabled {
		stroke = s.StrokeWidth
	}

	bounds, _ := font.BoundString(face, s.Text)
	textW := fixedCeil(bounds.Max.X-bounds.Min.X) + 2*stroke
	textH := fixedCeil(bounds.Max.Y-bounds.Min.Y) + 2*stroke
	if textW <= 2*stroke || textH <= 2*stroke {
		return
	}

	b := base.Bounds()
	pos := resolvePosition(b.Dx(), b.Dy(), textW, textH, s)

	alpha := uint8(s.TextAlpha)
	fill := color.NRGBA{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: alpha}

	layer := image.NewNRGBA(b)

	// Align the tight bounding box to the resolved top-left corner.
	dot := fixed.Point26_6{
		X: fixed.I(pos.X+stroke) - bounds.Min.X,
		Y: fixed.I(pos.Y+stroke) - bounds.Min.Y,
	}

	if stroke > 0 {
		strokeFill := color.NRGBA{R: s.StrokeColor.R, G: s.StrokeColor.G, B: s.StrokeColor.B, A: alpha}
		for dx := -stroke; dx <= stroke; dx++ {
			for dy := -stroke; dy <= stroke; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				drawString(layer, face, s.Text, offsetDot(dot, dx, dy), strokeFill)
			}
		}
	}
	drawString(layer, face, s.Text, dot, fill)

	draw.Draw(base, b, layer, b.Min, draw.Over)
}

func drawString(dst *image.NRGBA, face font.Face, text string, dot fixed.Point26_6, col color.NRGBA) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  dot,
	}
	d.DrawString(text)
}

func offsetDot(dot fixed.Point26_6, dx, dy int) fixed.Point26_6 {
	return fixed.Point26_6{X: dot.X + fixed.I(dx), Y: dot.Y + fixed.I(dy)}
}

func fixedCeil(v fixed.Int26_6) int {
	return int(math.Ceil(float64(v) / 64.0))
}
