package lasso

import (
	"github.com/ironsheep/image-lasso/internal/canvas"
	"github.com/ironsheep/image-lasso/internal/geometry"
	"github.com/ironsheep/image-lasso/internal/monitoring"
)

// Freehand buffers raw pointer positions while the button is held and emits
// a smoothed outline on completion.
type Freehand struct {
	cfg    Config
	ov     overlay
	points []geometry.Point
	active bool
}

// NewFreehand returns an idle freehand session drawing onto host. A nil host
// disables visual aids.
func NewFreehand(host canvas.Drawer, cfg Config) *Freehand {
	return &Freehand{cfg: cfg.withDefaults(), ov: newOverlay(host)}
}

// Kind returns ToolFreehand.
func (f *Freehand) Kind() ToolKind { return ToolFreehand }

// Active reports whether a trace is in progress.
func (f *Freehand) Active() bool { return f.active }

// Points returns a copy of the raw buffered points.
func (f *Freehand) Points() []geometry.Point {
	return append([]geometry.Point(nil), f.points...)
}

// Start begins a new trace at p, abandoning any trace in progress.
func (f *Freehand) Start(p geometry.Point) {
	f.finish()
	f.active = true
	f.points = []geometry.Point{p}
	f.redraw()
}

// Continue appends p to the active trace. It is ignored when no trace is
// active.
func (f *Freehand) Continue(p geometry.Point) {
	if !f.active {
		return
	}
	f.points = append(f.points, p)
	f.redraw()
}

// Complete finishes the trace and returns its smoothed outline.
//
// With autoClose set, a trace whose last point lies within CloseThreshold of
// its first point is closed by appending the first point before smoothing.
// Fewer than MinPoints buffered points cancel the trace and report false.
// Degenerate traces (collinear or coincident points) are still returned.
func (f *Freehand) Complete(autoClose bool) ([]geometry.Point, bool) {
	if !f.active {
		return nil, false
	}
	if len(f.points) < MinPoints {
		monitoring.Logf("lasso: freehand trace discarded with %d points", len(f.points))
		f.Cancel()
		return nil, false
	}

	raw := append([]geometry.Point(nil), f.points...)
	first, last := raw[0], raw[len(raw)-1]
	if autoClose && last != first && geometry.IsNear(last, first, f.cfg.CloseThreshold) {
		raw = append(raw, first)
	}
	out := geometry.SmoothN(raw, f.cfg.Tension, f.cfg.SamplesPerSpan)

	f.finish()
	return out, true
}

// Cancel abandons the trace and removes the preview.
func (f *Freehand) Cancel() {
	f.finish()
}

func (f *Freehand) finish() {
	f.ov.clearPreview()
	f.points = nil
	f.active = false
}

func (f *Freehand) redraw() {
	f.ov.setPreview(f.ov.polyline(f.points, f.cfg.PreviewStyle))
}
