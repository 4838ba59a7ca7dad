package lasso

import (
	"github.com/ironsheep/image-lasso/internal/canvas"
	"github.com/ironsheep/image-lasso/internal/geometry"
)

// Polygonal places one vertex per click and joins consecutive vertices with
// straight segments.
type Polygonal struct {
	cfg    Config
	ov     overlay
	points []geometry.Point
	// markers[i] and segments[i] belong to points[i]; segments[0] is unused
	// because the first vertex has no incoming segment.
	markers  []canvas.ObjectID
	segments []canvas.ObjectID
	active   bool
}

// NewPolygonal returns an idle polygonal session drawing onto host. A nil
// host disables visual aids.
func NewPolygonal(host canvas.Drawer, cfg Config) *Polygonal {
	return &Polygonal{cfg: cfg.withDefaults(), ov: newOverlay(host)}
}

// Kind returns ToolPolygonal.
func (s *Polygonal) Kind() ToolKind { return ToolPolygonal }

// Active reports whether a trace is in progress.
func (s *Polygonal) Active() bool { return s.active }

// Points returns a copy of the committed vertices.
func (s *Polygonal) Points() []geometry.Point {
	return append([]geometry.Point(nil), s.points...)
}

// AddPoint commits p. Once at least MinPoints vertices exist, a click within
// CloseThreshold of the first vertex closes the polygon instead.
func (s *Polygonal) AddPoint(p geometry.Point) ([]geometry.Point, bool) {
	if !s.active {
		s.finish()
		s.active = true
	}
	if len(s.points) >= MinPoints && geometry.IsNear(p, s.points[0], s.cfg.CloseThreshold) {
		out := append(s.Points(), s.points[0])
		s.finish()
		return out, true
	}

	s.ov.clearPreview()
	var seg canvas.ObjectID
	if n := len(s.points); n > 0 {
		seg = s.ov.draw(s.ov.polyline([]geometry.Point{s.points[n-1], p}, s.cfg.SegmentStyle))
	}
	s.points = append(s.points, p)
	s.segments = append(s.segments, seg)
	s.markers = append(s.markers, s.ov.draw(s.ov.marker(p, s.cfg)))
	return nil, false
}

// UpdatePreview draws the dashed rubber band from the last vertex to p.
func (s *Polygonal) UpdatePreview(p geometry.Point) {
	if !s.active || len(s.points) == 0 {
		return
	}
	last := s.points[len(s.points)-1]
	s.ov.setPreview(s.ov.polyline([]geometry.Point{last, p}, s.cfg.PreviewStyle))
}

// RemoveLastPoint pops the most recent vertex with its marker and incoming
// segment. Removing the only vertex ends the trace.
func (s *Polygonal) RemoveLastPoint() bool {
	if !s.active || len(s.points) == 0 {
		return false
	}
	n := len(s.points) - 1
	s.ov.clearPreview()
	s.ov.erase(s.markers[n])
	s.ov.erase(s.segments[n])
	s.points = s.points[:n]
	s.markers = s.markers[:n]
	s.segments = s.segments[:n]
	if n == 0 {
		s.finish()
	}
	return true
}

// Complete finishes the polygon with its vertices as placed. The ring is
// implicitly closed; the first vertex is not repeated.
func (s *Polygonal) Complete() ([]geometry.Point, bool) {
	if !s.active {
		return nil, false
	}
	if len(s.points) < MinPoints {
		s.Cancel()
		return nil, false
	}
	out := s.Points()
	s.finish()
	return out, true
}

// Cancel abandons the trace and removes every visual aid.
func (s *Polygonal) Cancel() {
	s.finish()
}

func (s *Polygonal) finish() {
	s.ov.clearPreview()
	for i := range s.points {
		s.ov.erase(s.markers[i])
		s.ov.erase(s.segments[i])
	}
	s.points, s.markers, s.segments = nil, nil, nil
	s.active = false
}
