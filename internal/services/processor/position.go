package processor

import (
	"image"

	"github.com/chillcharlie357/watermark/internal/models"
)

// margin is the fixed distance from each relevant edge for preset anchors.
const margin = 10

// resolvePosition maps a content box onto a canvas. A custom position wins
// over the preset and is clamped so the box never leaves the canvas, even
// when the coordinates come from an imprecise pointer mapping. Unknown
// preset keywords resolve to bottom-right rather than erroring.
func resolvePosition(canvasW, canvasH, contentW, contentH int, s models.WatermarkSettings) image.Point {
	if s.CustomPos != nil {
		return image.Point{
			X: clampCoord(s.CustomPos.X, canvasW-contentW),
			Y: clampCoord(s.CustomPos.Y, canvasH-contentH),
		}
	}

	left := margin
	hCenter := (canvasW - contentW) / 2
	right := canvasW - contentW - margin
	top := margin
	vCenter := (canvasH - contentH) / 2
	bottom := canvasH - contentH - margin

	switch s.Position {
	case models.PositionTopLeft:
		return image.Point{X: left, Y: top}
	case models.PositionTopCenter:
		return image.Point{X: hCenter, Y: top}
	case models.PositionTopRight:
		return image.Point{X: right, Y: top}
	case models.PositionCenterLeft:
		return image.Point{X: left, Y: vCenter}
	case models.PositionCenter:
		return image.Point{X: hCenter, Y: vCenter}
	case models.PositionCenterRight:
		return image.Point{X: right, Y: vCenter}
	case models.PositionBottomLeft:
		return image.Point{X: left, Y: bottom}
	case models.PositionBottomCenter:
		return image.Point{X: hCenter, Y: bottom}
	default:
		return image.Point{X: right, Y: bottom}
	}
}

// clampCoord forces v into [0, limit]. A negative limit (content larger than
// canvas) collapses the range to 0.
func clampCoord(v, limit int) int {
	if limit < 0 {
		limit = 0
	}
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}
