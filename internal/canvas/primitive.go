package canvas

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-lasso/internal/geometry"
)

// ObjectID identifies a primitive within one Host. IDs are never reused by
// the host that issued them.
type ObjectID uint64

// Kind is the shape of a primitive.
type Kind int

const (
	// KindLine is a straight segment between two points.
	KindLine Kind = iota
	// KindPolyline is an open chain of segments.
	KindPolyline
	// KindCircle is a circle centred on its single point.
	KindCircle
	// KindPath is a closed, optionally filled outline.
	KindPath
)

// String returns the serialised name of k.
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindPolyline:
		return "polyline"
	case KindCircle:
		return "circle"
	case KindPath:
		return "path"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Style describes how a primitive is painted. Colours are "#rrggbb" hex
// strings; an empty Fill means no fill.
type Style struct {
	Stroke string    `json:"stroke,omitempty"`
	Fill   string    `json:"fill,omitempty"`
	Width  float64   `json:"width,omitempty"`
	Dash   []float64 `json:"dash,omitempty"`
}

// Normalize validates the colours in s and rewrites them in canonical
// lowercase "#rrggbb" form. It returns an error naming the first invalid
// colour; the returned style is only meaningful when err is nil.
func (s Style) Normalize() (Style, error) {
	out := s
	out.Dash = append([]float64(nil), s.Dash...)
	if s.Stroke != "" {
		c, err := colorful.Hex(s.Stroke)
		if err != nil {
			return s, fmt.Errorf("invalid stroke colour %q: %w", s.Stroke, err)
		}
		out.Stroke = c.Clamped().Hex()
	}
	if s.Fill != "" {
		c, err := colorful.Hex(s.Fill)
		if err != nil {
			return s, fmt.Errorf("invalid fill colour %q: %w", s.Fill, err)
		}
		out.Fill = c.Clamped().Hex()
	}
	if out.Width < 0 {
		out.Width = 0
	}
	return out, nil
}

// Primitive is one drawable object.
type Primitive struct {
	Kind   Kind             `json:"kind"`
	Points []geometry.Point `json:"points"`
	Radius float64          `json:"radius,omitempty"`
	Style  Style            `json:"style"`

	// Transient primitives are visual aids owned by an in-progress trace.
	Transient bool `json:"-"`

	// RegionID and Tag link a completed selection outline back to the
	// selection region it was exported as.
	RegionID string `json:"region_id,omitempty"`
	Tag      string `json:"tag,omitempty"`
}

// Clone returns a deep copy of p.
func (p Primitive) Clone() Primitive {
	c := p
	c.Points = append([]geometry.Point(nil), p.Points...)
	c.Style.Dash = append([]float64(nil), p.Style.Dash...)
	return c
}

// Translate returns a copy of p moved by (dx, dy).
func (p Primitive) Translate(dx, dy float64) Primitive {
	c := p.Clone()
	for i := range c.Points {
		c.Points[i].X += dx
		c.Points[i].Y += dy
	}
	return c
}
