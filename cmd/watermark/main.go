// Command watermark is the batch CLI. It keeps the original tool's surface:
// a file or directory argument, a font size, a color name and a position
// keyword, writing results next to the input unless -out is given.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chillcharlie357/watermark/internal/models"
	"github.com/chillcharlie357/watermark/internal/services/exporter"
	"github.com/chillcharlie357/watermark/internal/services/processor"
	"go.uber.org/zap"
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".bmp": true, ".tif": true, ".tiff": true,
}

var namedColors = map[string]models.RGB{
	"white":   {R: 255, G: 255, B: 255},
	"black":   {R: 0, G: 0, B: 0},
	"red":     {R: 255, G: 0, B: 0},
	"green":   {R: 0, G: 128, B: 0},
	"blue":    {R: 0, G: 0, B: 255},
	"yellow":  {R: 255, G: 255, B: 0},
	"cyan":    {R: 0, G: 255, B: 255},
	"magenta": {R: 255, G: 0, B: 255},
	"gray":    {R: 128, G: 128, B: 128},
	"orange":  {R: 255, G: 165, B: 0},
}

func main() {
	text := flag.String("text", "Sample Watermark", "watermark text")
	size := flag.Int("size", 24, "font size")
	colorName := flag.String("color", "white", "watermark color: name or #rrggbb hex")
	position := flag.String("position", "bottom-right",
		"watermark position: top-left|top-right|bottom-left|bottom-right|center (nine-grid keywords also accepted)")
	alpha := flag.Int("alpha", 255, "text opacity 0..255")
	stroke := flag.Int("stroke", 0, "stroke width in pixels (0 disables)")
	strokeColor := flag.String("stroke-color", "black", "stroke color: name or #rrggbb hex")
	wmImage := flag.String("wm-image", "", "watermark image path (PNG with alpha recommended)")
	wmScale := flag.Int("wm-scale", 50, "watermark image scale percent")
	wmAlpha := flag.Int("wm-alpha", 255, "watermark image opacity 0..255")
	rotate := flag.Float64("rotate", 0, "rotation in degrees counter-clockwise")
	resize := flag.Int("resize", 0, "resize source by percent before compositing (0 keeps native size)")
	outDir := flag.String("out", "", "output directory (default: <input dir>/<dir>_watermark)")
	format := flag.String("format", models.FormatJPEG, "output format: JPEG or PNG")
	quality := flag.Int("quality", 95, "JPEG quality 0..100")
	fontPath := flag.String("font", "", "font path (.ttf/.otf/.ttc), optional")
	workers := flag.Int("workers", 0, "number of concurrent workers (0 uses the default)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: watermark [flags] <image file or directory>")
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	paths, baseDir, err := collectImages(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "no image files found in %s\n", input)
		os.Exit(1)
	}

	settings := buildSettings(*text, *size, *colorName, *position, *alpha,
		*stroke, *strokeColor, *wmImage, *wmScale, *wmAlpha, *rotate, *resize,
		*format, *quality)

	target := *outDir
	if target == "" {
		target = filepath.Join(baseDir, filepath.Base(baseDir)+"_watermark")
	}

	fonts := processor.NewFontResolver(*fontPath, "", logger)
	pipeline := processor.NewPipeline(fonts, logger)
	exp := exporter.New(pipeline, logger, *workers)

	result, err := exp.Export(context.Background(), models.ExportJob{
		Paths:     paths,
		OutputDir: target,
		Settings:  settings,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for _, f := range result.Failed {
		fmt.Fprintf(os.Stderr, "failed: %s: %s\n", f.Path, f.Error)
	}
	fmt.Printf("exported %d of %d images to %s\n", result.Succeeded, len(paths), target)
	if len(result.Failed) > 0 {
		os.Exit(1)
	}
}

func buildSettings(text string, size int, colorName, position string, alpha,
	stroke int, strokeColor, wmImage string, wmScale, wmAlpha int,
	rotate float64, resize int, format string, quality int) models.WatermarkSettings {

	s := models.DefaultSettings()
	s.Text = text
	s.TextEnabled = text != ""
	s.FontSize = size
	s.Color = parseColor(colorName)
	s.TextAlpha = alpha
	s.StrokeEnabled = stroke > 0
	s.StrokeWidth = stroke
	s.StrokeColor = parseColor(strokeColor)
	s.ImageEnabled = wmImage != ""
	s.ImagePath = wmImage
	s.ImageScalePercent = wmScale
	s.ImageAlpha = wmAlpha
	// Unknown keywords fall through to bottom-right inside the resolver.
	s.Position = models.Position(strings.ToLower(position))
	s.RotationDeg = rotate
	if resize > 0 {
		s.ResizePercent = &resize
	}
	if strings.EqualFold(format, "png") {
		s.OutputFormat = models.FormatPNG
	} else {
		s.OutputFormat = models.FormatJPEG
	}
	s.NamingRule = models.NamingSuffix
	s.Suffix = "_watermark"
	s.JPEGQuality = quality
	return s.Clamped()
}

func parseColor(name string) models.RGB {
	lower := strings.ToLower(strings.TrimSpace(name))
	if c, ok := namedColors[lower]; ok {
		return c
	}
	if strings.HasPrefix(lower, "#") && len(lower) == 7 {
		var r, g, b uint8
		if _, err := fmt.Sscanf(lower[1:], "%02x%02x%02x", &r, &g, &b); err == nil {
			return models.RGB{R: r, G: g, B: b}
		}
	}
	fmt.Fprintf(os.Stderr, "unknown color %q, using white\n", name)
	return models.RGB{R: 255, G: 255, B: 255}
}

// collectImages expands a file or directory argument into the source list
// and reports the directory outputs default next to.
func collectImages(input string) ([]string, string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, "", fmt.Errorf("path %s does not exist", input)
	}

	if !info.IsDir() {
		if !imageExtensions[strings.ToLower(filepath.Ext(input))] {
			return nil, "", fmt.Errorf("%s is not a supported image file", input)
		}
		return []string{input}, filepath.Dir(input), nil
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, "", fmt.Errorf("read directory %s: %w", input, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(input, entry.Name()))
		}
	}
	return paths, input, nil
}
