package exporter

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/chillcharlie357/watermark/internal/models"
	"github.com/chillcharlie357/watermark/internal/services/processor"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testExporter(t *testing.T) *Exporter {
	t.Helper()

	logger := zap.NewNop()
	pipeline := processor.NewPipeline(processor.NewFontResolver("", "", logger), logger)
	return New(pipeline, logger, 2)
}

func writeTestImage(t *testing.T, dir, name string) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 80, G: 120, B: 200, A: 255})
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, imaging.Save(img, path))
	return path
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		name   string
		rule   string
		format string
		want   string
	}{
		{"original keeps base name", models.NamingOriginal, models.FormatJPEG, "photo.jpg"},
		{"prefix", models.NamingPrefix, models.FormatJPEG, "wm_photo.jpg"},
		{"suffix", models.NamingSuffix, models.FormatJPEG, "photo_watermarked.jpg"},
		{"extension forced by format", models.NamingSuffix, models.FormatPNG, "photo_watermarked.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := models.DefaultSettings()
			s.NamingRule = tt.rule
			s.OutputFormat = tt.format

			require.Equal(t, tt.want, OutputName("/photos/photo.jpg", s))
		})
	}
}

func TestExportBatchCollectsPerFileFailures(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()

	good1 := writeTestImage(t, srcDir, "a.png")
	good2 := writeTestImage(t, srcDir, "b.png")
	corrupt := filepath.Join(srcDir, "c.jpg")
	require.NoError(t, os.WriteFile(corrupt, []byte("definitely not a jpeg"), 0o644))

	s := models.DefaultSettings()
	s.TextEnabled = false
	s.OutputFormat = models.FormatPNG

	result, err := testExporter(t).Export(context.Background(), models.ExportJob{
		Paths:     []string{good1, good2, corrupt},
		OutputDir: outDir,
		Settings:  s,
	})
	require.NoError(t, err, "per-file failures never abort the batch")

	require.Equal(t, 2, result.Succeeded)
	require.Len(t, result.Failed, 1)
	require.Equal(t, corrupt, result.Failed[0].Path)

	require.FileExists(t, filepath.Join(outDir, "a_watermarked.png"))
	require.FileExists(t, filepath.Join(outDir, "b_watermarked.png"))
}

func TestExportSameDirectoryRejected(t *testing.T) {
	srcDir := t.TempDir()
	src := writeTestImage(t, srcDir, "a.png")

	before, err := os.ReadDir(srcDir)
	require.NoError(t, err)

	_, err = testExporter(t).Export(context.Background(), models.ExportJob{
		Paths:     []string{src},
		OutputDir: srcDir,
		Settings:  models.DefaultSettings(),
	})
	require.ErrorIs(t, err, ErrSameDirectory)

	after, readErr := os.ReadDir(srcDir)
	require.NoError(t, readErr)
	require.Len(t, after, len(before), "the guard fires before any file is written")
}

func TestExportCreatesOutputDirectory(t *testing.T) {
	srcDir := t.TempDir()
	src := writeTestImage(t, srcDir, "a.png")
	outDir := filepath.Join(t.TempDir(), "nested", "out")

	s := models.DefaultSettings()
	s.TextEnabled = false

	result, err := testExporter(t).Export(context.Background(), models.ExportJob{
		Paths:     []string{src},
		OutputDir: outDir,
		Settings:  s,
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Succeeded)
	require.FileExists(t, filepath.Join(outDir, "a_watermarked.jpg"))
}
