package lasso

import (
	"github.com/ironsheep/image-lasso/internal/canvas"
	"github.com/ironsheep/image-lasso/internal/geometry"
)

// Defaults for Config. Distances are canvas units.
const (
	DefaultCloseThreshold = 20.0
	DefaultSnapRadius     = 10.0
	DefaultSnapSpacing    = 5.0
	DefaultSensitivity    = 50
	DefaultMarkerRadius   = 3.0
)

// Config holds the tuning shared by all lasso tools.
type Config struct {
	// CloseThreshold is how close a point must come to the first point to
	// close the trace.
	CloseThreshold float64
	// SnapRadius is the magnetic search radius around the pointer.
	SnapRadius float64
	// SnapSpacing is the distance between intermediate magnetic points.
	SnapSpacing float64
	// Tension is the freehand smoothing tension, see geometry.SmoothN.
	Tension float64
	// SamplesPerSpan is the freehand smoothing density.
	SamplesPerSpan int
	// Sensitivity is the initial magnetic sensitivity, 0-100.
	Sensitivity int

	PreviewStyle canvas.Style
	SegmentStyle canvas.Style
	MarkerStyle  canvas.Style
	MarkerRadius float64
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() Config {
	return Config{
		CloseThreshold: DefaultCloseThreshold,
		SnapRadius:     DefaultSnapRadius,
		SnapSpacing:    DefaultSnapSpacing,
		Tension:        geometry.DefaultTension,
		SamplesPerSpan: geometry.DefaultSamplesPerSpan,
		Sensitivity:    DefaultSensitivity,
		PreviewStyle:   canvas.Style{Stroke: "#1e90ff", Width: 1, Dash: []float64{5, 5}},
		SegmentStyle:   canvas.Style{Stroke: "#1e90ff", Width: 2},
		MarkerStyle:    canvas.Style{Stroke: "#ffffff", Fill: "#1e90ff", Width: 1},
		MarkerRadius:   DefaultMarkerRadius,
	}
}

// withDefaults fills zero-valued numeric fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.CloseThreshold <= 0 {
		c.CloseThreshold = d.CloseThreshold
	}
	if c.SnapRadius <= 0 {
		c.SnapRadius = d.SnapRadius
	}
	if c.SnapSpacing <= 0 {
		c.SnapSpacing = d.SnapSpacing
	}
	if c.SamplesPerSpan <= 0 {
		c.SamplesPerSpan = d.SamplesPerSpan
	}
	if c.MarkerRadius <= 0 {
		c.MarkerRadius = d.MarkerRadius
	}
	c.Sensitivity = clampSensitivity(c.Sensitivity)
	return c
}

func clampSensitivity(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
