package models

import (
	"encoding/json"
	"fmt"
)

// Position names one of the nine preset watermark anchors.
type Position string

const (
	PositionTopLeft      Position = "top-left"
	PositionTopCenter    Position = "top-center"
	PositionTopRight     Position = "top-right"
	PositionCenterLeft   Position = "center-left"
	PositionCenter       Position = "center"
	PositionCenterRight  Position = "center-right"
	PositionBottomLeft   Position = "bottom-left"
	PositionBottomCenter Position = "bottom-center"
	PositionBottomRight  Position = "bottom-right"
)

const (
	FormatJPEG = "JPEG"
	FormatPNG  = "PNG"
)

const (
	NamingOriginal = "original"
	NamingPrefix   = "prefix"
	NamingSuffix   = "suffix"
)

// RGB is a color triple that serializes as a 3-element JSON array,
// matching the template file layout.
type RGB struct {
	R, G, B uint8
}

func (c RGB) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]uint8{c.R, c.G, c.B})
}

func (c *RGB) UnmarshalJSON(data []byte) error {
	var arr [3]uint8
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("color must be a [r,g,b] array: %w", err)
	}
	c.R, c.G, c.B = arr[0], arr[1], arr[2]
	return nil
}

// Point is a pixel coordinate that serializes as a 2-element JSON array.
type Point struct {
	X, Y int
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var arr [2]int
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("position must be a [x,y] array: %w", err)
	}
	p.X, p.Y = arr[0], arr[1]
	return nil
}

// WatermarkSettings describes one render: both watermark layers, placement,
// the whole-image transform and the export policy. It is passed by value into
// the pipeline; callers keep the only mutable copy.
type WatermarkSettings struct {
	// Text layer
	TextEnabled   bool   `json:"text_enabled"`
	Text          string `json:"text"`
	FontSize      int    `json:"font_size"`
	Color         RGB    `json:"color"`
	TextAlpha     int    `json:"text_alpha"`
	StrokeEnabled bool   `json:"stroke_enabled"`
	StrokeColor   RGB    `json:"stroke_color"`
	StrokeWidth   int    `json:"stroke_width"`

	// Image layer
	ImageEnabled      bool   `json:"image_enabled"`
	ImagePath         string `json:"image_path,omitempty"`
	ImageScalePercent int    `json:"image_scale_percent"`
	ImageAlpha        int    `json:"image_alpha"`

	// Placement: CustomPos, when set, overrides Position for that render.
	Position  Position `json:"position"`
	CustomPos *Point   `json:"custom_pos"`

	// Transform: degrees counter-clockwise, canvas expands to fit.
	RotationDeg float64 `json:"rotation_deg"`

	// Export
	OutputFormat  string `json:"output_format"`
	NamingRule    string `json:"naming_rule"`
	Prefix        string `json:"prefix"`
	Suffix        string `json:"suffix"`
	JPEGQuality   int    `json:"jpeg_quality"`
	ResizePercent *int   `json:"resize_percent"`
}

// DefaultSettings returns the settings a fresh session starts from.
func DefaultSettings() WatermarkSettings {
	return WatermarkSettings{
		TextEnabled:       true,
		Text:              "Sample Watermark",
		FontSize:          24,
		Color:             RGB{255, 255, 255},
		TextAlpha:         255,
		StrokeColor:       RGB{0, 0, 0},
		ImageScalePercent: 50,
		ImageAlpha:        255,
		Position:          PositionBottomRight,
		OutputFormat:      FormatJPEG,
		NamingRule:        NamingSuffix,
		Prefix:            "wm_",
		Suffix:            "_watermarked",
		JPEGQuality:       90,
	}
}

// Clamped returns a copy with every bounded field forced into range. The
// pipeline calls this once per render so out-of-range values coming from a
// collaborator can never reach the compositors.
func (s WatermarkSettings) Clamped() WatermarkSettings {
	s.TextAlpha = clamp(s.TextAlpha, 0, 255)
	s.ImageAlpha = clamp(s.ImageAlpha, 0, 255)
	s.JPEGQuality = clamp(s.JPEGQuality, 0, 100)
	if s.FontSize < 1 {
		s.FontSize = 1
	}
	if s.StrokeWidth < 0 {
		s.StrokeWidth = 0
	}
	if s.ImageScalePercent < 1 {
		s.ImageScalePercent = 1
	}
	return s
}

// Extension reports the output file extension forced by OutputFormat.
func (s WatermarkSettings) Extension() string {
	if s.OutputFormat == FormatPNG {
		return ".png"
	}
	return ".jpg"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
