package processor

import (
	"image"
	"image/color"
	"testing"

	"github.com/chillcharlie357/watermark/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testPipeline(t *testing.T) *Pipeline {
	t.Helper()

	logger := zap.NewNop()
	return NewPipeline(NewFontResolver("", "", logger), logger)
}

func testImage(t *testing.T, w, h int, c color.NRGBA) *image.NRGBA {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func TestRenderTextAlphaZeroLeavesImageUntouched(t *testing.T) {
	p := testPipeline(t)
	base := testImage(t, 200, 150, white)

	s := models.DefaultSettings()
	s.Text = "invisible"
	s.Color = models.RGB{R: 0, G: 0, B: 0}
	s.TextAlpha = 0

	out := p.Render(base, s)

	require.Equal(t, base.Bounds(), out.Bounds())
	require.Equal(t, base.Pix, out.Pix)
}

func TestRenderTextAlphaFullReplacesPixels(t *testing.T) {
	p := testPipeline(t)
	base := testImage(t, 400, 200, white)

	s := models.DefaultSettings()
	s.Text = "WATERMARK"
	s.Color = models.RGB{R: 0, G: 0, B: 0}
	s.TextAlpha = 255
	s.Position = models.PositionCenter

	out := p.Render(base, s)

	black := 0
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] == 0 && out.Pix[i+1] == 0 && out.Pix[i+2] == 0 {
			black++
		}
	}
	require.Greater(t, black, 0, "opaque glyph interiors must fully replace the background")
}

func TestRenderTextStrokeDrawsOutline(t *testing.T) {
	p := testPipeline(t)
	base := testImage(t, 400, 200, white)

	s := models.DefaultSettings()
	s.Text = "OUTLINED"
	s.Color = models.RGB{R: 0, G: 0, B: 0}
	s.StrokeEnabled = true
	s.StrokeColor = models.RGB{R: 255, G: 0, B: 0}
	s.StrokeWidth = 2
	s.Position = models.PositionCenter

	out := p.Render(base, s)

	stroked := 0
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] == 255 && out.Pix[i+1] == 0 && out.Pix[i+2] == 0 {
			stroked++
		}
	}
	require.Greater(t, stroked, 0, "stroke color must appear around the glyphs")
}

func TestRenderTextDisabledIsNoOp(t *testing.T) {
	p := testPipeline(t)
	base := testImage(t, 100, 100, white)

	tests := []struct {
		name   string
		mutate func(*models.WatermarkSettings)
	}{
		{"disabled", func(s *models.WatermarkSettings) { s.TextEnabled = false }},
		{"empty text", func(s *models.WatermarkSettings) { s.Text = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := models.DefaultSettings()
			tt.mutate(&s)
			out := p.Render(base, s)
			require.Equal(t, base.Pix, out.Pix)
		})
	}
}

func TestRenderResizePercent(t *testing.T) {
	p := testPipeline(t)
	base := testImage(t, 200, 100, white)

	s := models.DefaultSettings()
	s.TextEnabled = false
	pct := 50
	s.ResizePercent = &pct

	out := p.Render(base, s)
	require.Equal(t, 100, out.Bounds().Dx())
	require.Equal(t, 50, out.Bounds().Dy())
}

func TestRenderRotation(t *testing.T) {
	p := testPipeline(t)
	base := testImage(t, 200, 100, white)

	tests := []struct {
		name         string
		deg          float64
		wantW, wantH int
	}{
		{"below threshold keeps dimensions", 0.005, 200, 100},
		{"zero keeps dimensions", 0, 200, 100},
		{"quarter turn swaps dimensions", 90, 100, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := models.DefaultSettings()
			s.TextEnabled = false
			s.RotationDeg = tt.deg

			out := p.Render(base, s)
			require.Equal(t, tt.wantW, out.Bounds().Dx())
			require.Equal(t, tt.wantH, out.Bounds().Dy())
			if tt.deg == 0 {
				require.Equal(t, base.Pix, out.Pix)
			}
		})
	}
}

func TestRenderDoesNotMutateSource(t *testing.T) {
	p := testPipeline(t)
	base := testImage(t, 200, 100, white)
	before := make([]uint8, len(base.Pix))
	copy(before, base.Pix)

	s := models.DefaultSettings()
	s.Text = "mutation check"
	s.Color = models.RGB{R: 0, G: 0, B: 0}
	p.Render(base, s)

	require.Equal(t, before, base.Pix)
}
