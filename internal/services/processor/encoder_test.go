package processor

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/chillcharlie357/watermark/internal/models"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

func TestEncodeJPEGFlattensAlpha(t *testing.T) {
	img := testImage(t, 10, 10, color.NRGBA{R: 255, A: 0}) // fully transparent

	s := models.DefaultSettings()
	s.OutputFormat = models.FormatJPEG
	s.JPEGQuality = 90

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, s))

	decoded, err := imaging.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	// transparent pixels flatten to the white background
	r, g, b, _ := decoded.At(5, 5).RGBA()
	require.Greater(t, r>>8, uint32(250))
	require.Greater(t, g>>8, uint32(250))
	require.Greater(t, b>>8, uint32(250))
}

func TestEncodePNGPreservesAlpha(t *testing.T) {
	img := testImage(t, 10, 10, color.NRGBA{R: 255, A: 128})

	s := models.DefaultSettings()
	s.OutputFormat = models.FormatPNG

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, s))

	decoded, err := imaging.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	_, _, _, a := decoded.At(5, 5).RGBA()
	require.Less(t, a>>8, uint32(255), "PNG keeps partial alpha")
}
