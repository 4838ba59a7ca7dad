package lasso

import (
	"github.com/ironsheep/image-lasso/internal/canvas"
	"github.com/ironsheep/image-lasso/internal/edgemap"
	"github.com/ironsheep/image-lasso/internal/geometry"
)

// Magnetic is a polygonal lasso whose points snap onto image edges.
//
// Every committed or previewed point is moved to the strongest gradient
// within SnapRadius that clears the sensitivity threshold. Between two
// consecutive vertices the edge is sampled every SnapSpacing units along the
// straight line and each sample is snapped as well, so the outline follows
// the boundary between sparse clicks.
//
// Once the edge map is available every point is clamped into the image, so
// a pointer that strays past the border commits a point on the border.
// Snapping degrades to plain polygonal behaviour, with no intermediate
// points, while the edge map is unavailable (still decoding or failed) or
// when the sensitivity is zero.
type Magnetic struct {
	cfg         Config
	ov          overlay
	edges       edgemap.Source
	sensitivity int

	// points holds every committed point, intermediate ones included.
	points []geometry.Point
	// vertices[i] is the index in points of the i-th clicked vertex.
	// markers[i] and segments[i] belong to that vertex; segments[i] is the
	// polyline for the edge leading into it and is unused for i == 0.
	vertices []int
	markers  []canvas.ObjectID
	segments []canvas.ObjectID
	active   bool
}

// NewMagnetic returns an idle magnetic session. edges may be nil or not yet
// ready, in which case points are used unsnapped.
func NewMagnetic(host canvas.Drawer, edges edgemap.Source, cfg Config) *Magnetic {
	cfg = cfg.withDefaults()
	return &Magnetic{
		cfg:         cfg,
		ov:          newOverlay(host),
		edges:       edges,
		sensitivity: cfg.Sensitivity,
	}
}

// Kind returns ToolMagnetic.
func (s *Magnetic) Kind() ToolKind { return ToolMagnetic }

// Active reports whether a trace is in progress.
func (s *Magnetic) Active() bool { return s.active }

// Points returns a copy of every committed point, intermediate ones included.
func (s *Magnetic) Points() []geometry.Point {
	return append([]geometry.Point(nil), s.points...)
}

// Vertices returns a copy of the clicked vertices, after snapping.
func (s *Magnetic) Vertices() []geometry.Point {
	out := make([]geometry.Point, len(s.vertices))
	for i, idx := range s.vertices {
		out[i] = s.points[idx]
	}
	return out
}

// Sensitivity returns the current sensitivity, 0-100.
func (s *Magnetic) Sensitivity() int { return s.sensitivity }

// SetSensitivity changes how strong an edge must be to attract a point.
// Values are clamped to 0-100; zero disables snapping. Points already
// committed are not re-snapped.
func (s *Magnetic) SetSensitivity(v int) {
	s.sensitivity = clampSensitivity(v)
}

// snapper returns the map and threshold to snap with, or false when snapping
// is currently disabled.
func (s *Magnetic) snapper() (*edgemap.Map, float64, bool) {
	if s.edges == nil || s.sensitivity <= 0 {
		return nil, 0, false
	}
	m, ok := s.edges.EdgeMap()
	if !ok {
		return nil, 0, false
	}
	return m, m.Threshold(s.sensitivity), true
}

// clamp confines p to the image extent once the edge map is available.
// Points are left as they are while no map is ready.
func (s *Magnetic) clamp(p geometry.Point) geometry.Point {
	if s.edges == nil {
		return p
	}
	m, ok := s.edges.EdgeMap()
	if !ok {
		return p
	}
	return m.Clamp(p)
}

// Snap returns p, clamped into the image, moved onto the strongest nearby
// edge. Without a qualifying edge the clamped point is returned; while
// snapping is disabled only the clamp applies.
func (s *Magnetic) Snap(p geometry.Point) geometry.Point {
	p = s.clamp(p)
	m, threshold, ok := s.snapper()
	if !ok {
		return p
	}
	q, _ := m.Snap(p, s.cfg.SnapRadius, threshold)
	return q
}

// edgePath returns the snapped intermediate points strictly between from and
// to. Consecutive duplicates, and samples that collapse onto either end, are
// dropped. It returns nil while snapping is disabled.
func (s *Magnetic) edgePath(from, to geometry.Point) []geometry.Point {
	m, threshold, ok := s.snapper()
	if !ok {
		return nil
	}
	var out []geometry.Point
	prev := from
	for _, q := range geometry.Interpolate(from, to, s.cfg.SnapSpacing) {
		q, _ = m.Snap(q, s.cfg.SnapRadius, threshold)
		if q == prev || q == to {
			continue
		}
		out = append(out, q)
		prev = q
	}
	return out
}

func (s *Magnetic) lastVertex() geometry.Point {
	return s.points[s.vertices[len(s.vertices)-1]]
}

// AddPoint snaps p and commits it as a vertex, filling the edge from the
// previous vertex with snapped intermediate points. Once at least MinPoints
// vertices exist, a snapped point within CloseThreshold of the first vertex
// closes the outline instead.
func (s *Magnetic) AddPoint(p geometry.Point) ([]geometry.Point, bool) {
	if !s.active {
		s.finish()
		s.active = true
	}
	snapped := s.Snap(p)

	if len(s.vertices) >= MinPoints {
		first := s.points[0]
		if geometry.IsNear(snapped, first, s.cfg.CloseThreshold) {
			out := append(s.Points(), s.edgePath(s.lastVertex(), first)...)
			out = append(out, first)
			s.finish()
			return out, true
		}
	}

	s.ov.clearPreview()
	var seg canvas.ObjectID
	if len(s.vertices) > 0 {
		from := s.lastVertex()
		path := s.edgePath(from, snapped)
		s.points = append(s.points, path...)
		line := append(append([]geometry.Point{from}, path...), snapped)
		seg = s.ov.draw(s.ov.polyline(line, s.cfg.SegmentStyle))
	}
	s.vertices = append(s.vertices, len(s.points))
	s.points = append(s.points, snapped)
	s.segments = append(s.segments, seg)
	s.markers = append(s.markers, s.ov.draw(s.ov.marker(snapped, s.cfg)))
	return nil, false
}

// UpdatePreview draws the dashed, edge-following rubber band from the last
// vertex to the snapped position of p.
func (s *Magnetic) UpdatePreview(p geometry.Point) {
	if !s.active || len(s.vertices) == 0 {
		return
	}
	from := s.lastVertex()
	to := s.Snap(p)
	line := append(append([]geometry.Point{from}, s.edgePath(from, to)...), to)
	s.ov.setPreview(s.ov.polyline(line, s.cfg.PreviewStyle))
}

// RemoveLastPoint removes the most recent vertex, its marker, and every
// intermediate point of the edge leading into it. Removing the only vertex
// ends the trace.
func (s *Magnetic) RemoveLastPoint() bool {
	if !s.active || len(s.vertices) == 0 {
		return false
	}
	n := len(s.vertices) - 1
	s.ov.clearPreview()
	s.ov.erase(s.markers[n])
	s.ov.erase(s.segments[n])

	keep := 0
	if n > 0 {
		keep = s.vertices[n-1] + 1
	}
	s.points = s.points[:keep]
	s.vertices = s.vertices[:n]
	s.markers = s.markers[:n]
	s.segments = s.segments[:n]
	if n == 0 {
		s.finish()
	}
	return true
}

// Complete finishes the outline. The closing edge back to the first vertex
// is filled with snapped intermediate points, but the first vertex itself is
// not repeated.
func (s *Magnetic) Complete() ([]geometry.Point, bool) {
	if !s.active {
		return nil, false
	}
	if len(s.vertices) < MinPoints {
		s.Cancel()
		return nil, false
	}
	out := append(s.Points(), s.edgePath(s.lastVertex(), s.points[0])...)
	s.finish()
	return out, true
}

// Cancel abandons the trace and removes every visual aid.
func (s *Magnetic) Cancel() {
	s.finish()
}

func (s *Magnetic) finish() {
	s.ov.clearPreview()
	for i := range s.vertices {
		s.ov.erase(s.markers[i])
		s.ov.erase(s.segments[i])
	}
	s.points, s.vertices, s.markers, s.segments = nil, nil, nil, nil
	s.active = false
}
