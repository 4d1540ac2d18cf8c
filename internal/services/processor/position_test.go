package processor

import (
	"image"
	"testing"

	"github.com/chillcharlie357/watermark/internal/models"
	"github.com/stretchr/testify/require"
)

func TestResolvePositionPresets(t *testing.T) {
	const (
		canvasW  = 800
		canvasH  = 600
		contentW = 200
		contentH = 100
	)

	tests := []struct {
		position models.Position
		want     image.Point
	}{
		{models.PositionTopLeft, image.Point{X: 10, Y: 10}},
		{models.PositionTopCenter, image.Point{X: 300, Y: 10}},
		{models.PositionTopRight, image.Point{X: 590, Y: 10}},
		{models.PositionCenterLeft, image.Point{X: 10, Y: 250}},
		{models.PositionCenter, image.Point{X: 300, Y: 250}},
		{models.PositionCenterRight, image.Point{X: 590, Y: 250}},
		{models.PositionBottomLeft, image.Point{X: 10, Y: 490}},
		{models.PositionBottomCenter, image.Point{X: 300, Y: 490}},
		{models.PositionBottomRight, image.Point{X: 590, Y: 490}},
	}

	for _, tt := range tests {
		t.Run(string(tt.position), func(t *testing.T) {
			s := models.WatermarkSettings{Position: tt.position}
			got := resolvePosition(canvasW, canvasH, contentW, contentH, s)
			require.Equal(t, tt.want, got)

			// the draw rectangle stays inside the canvas
			require.GreaterOrEqual(t, got.X, 0)
			require.GreaterOrEqual(t, got.Y, 0)
			require.LessOrEqual(t, got.X+contentW, canvasW)
			require.LessOrEqual(t, got.Y+contentH, canvasH)
		})
	}
}

func TestResolvePositionUnknownKeywordFallsBack(t *testing.T) {
	s := models.WatermarkSettings{Position: "somewhere-else"}
	got := resolvePosition(800, 600, 200, 100, s)
	require.Equal(t, image.Point{X: 590, Y: 490}, got, "unknown keywords resolve to bottom-right")
}

func TestResolvePositionCustom(t *testing.T) {
	tests := []struct {
		name   string
		custom models.Point
		want   image.Point
	}{
		{"inside", models.Point{X: 100, Y: 100}, image.Point{X: 100, Y: 100}},
		{"clamped to max", models.Point{X: 750, Y: 550}, image.Point{X: 600, Y: 500}},
		{"clamped to zero", models.Point{X: -50, Y: -10}, image.Point{X: 0, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := models.WatermarkSettings{
				Position:  models.PositionTopLeft, // preset must lose to custom
				CustomPos: &tt.custom,
			}
			got := resolvePosition(800, 600, 200, 100, s)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePositionContentLargerThanCanvas(t *testing.T) {
	s := models.WatermarkSettings{CustomPos: &models.Point{X: 500, Y: 500}}
	got := resolvePosition(100, 100, 200, 200, s)
	require.Equal(t, image.Point{X: 0, Y: 0}, got, "negative ranges collapse to 0")
}
