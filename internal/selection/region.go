package selection

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/ironsheep/image-lasso/internal/geometry"
)

// PermissionTag is an opaque label supplied by the caller, for example
// "open-to-repost" or "approval-required".
type PermissionTag string

// BoundingBox is an axis-aligned box in canvas coordinates.
type BoundingBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (b BoundingBox) Right() float64 { return b.Left + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b BoundingBox) Bottom() float64 { return b.Top + b.Height }

// Empty reports whether b covers no area.
func (b BoundingBox) Empty() bool { return b.Width <= 0 || b.Height <= 0 }

func boxOf(points []geometry.Point) BoundingBox {
	r, ok := geometry.Bounds(points)
	if !ok {
		return BoundingBox{}
	}
	return BoundingBox{Left: r.Min.X, Top: r.Min.Y, Width: r.Width(), Height: r.Height()}
}

// Region is a completed, tagged selection.
type Region struct {
	id     string
	box    BoundingBox
	points []geometry.Point
	tag    PermissionTag
}

type options struct {
	id         string
	dropPoints bool
}

// Option customises FromPoints.
type Option func(*options)

// WithID uses id instead of a generated one.
func WithID(id string) Option {
	return func(o *options) { o.id = id }
}

// WithoutPoints keeps only the bounding box of the outline.
func WithoutPoints() Option {
	return func(o *options) { o.dropPoints = true }
}

// FromPoints packages a finished outline as a Region. The bounding box is the
// tight bound of points. Without WithID a random UUID is assigned.
func FromPoints(points []geometry.Point, tag PermissionTag, opts ...Option) Region {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == "" {
		o.id = uuid.New().String()
	}
	r := Region{id: o.id, box: boxOf(points), tag: tag}
	if !o.dropPoints {
		r.points = append([]geometry.Point(nil), points...)
	}
	return r
}

// ID returns the region's identifier.
func (r Region) ID() string { return r.id }

// Box returns the bounding box.
func (r Region) Box() BoundingBox { return r.box }

// Tag returns the permission tag.
func (r Region) Tag() PermissionTag { return r.tag }

// Points returns a copy of the outline, or nil if it was not kept.
func (r Region) Points() []geometry.Point {
	if len(r.points) == 0 {
		return nil
	}
	return append([]geometry.Point(nil), r.points...)
}

// HasPoints reports whether the outline was kept.
func (r Region) HasPoints() bool { return len(r.points) > 0 }

// Translate returns a copy of r moved by (dx, dy) under a new id.
func (r Region) Translate(dx, dy float64) Region {
	out := Region{id: uuid.New().String(), tag: r.tag, box: r.box}
	out.box.Left += dx
	out.box.Top += dy
	if len(r.points) > 0 {
		out.points = make([]geometry.Point, len(r.points))
		for i, p := range r.points {
			out.points[i] = geometry.Pt(p.X+dx, p.Y+dy)
		}
	}
	return out
}

// Contains reports whether p lies inside the outline using the even-odd
// rule. A region without points falls back to its bounding box.
func (r Region) Contains(p geometry.Point) bool {
	if len(r.points) < 3 {
		return p.X >= r.box.Left && p.X <= r.box.Right() &&
			p.Y >= r.box.Top && p.Y <= r.box.Bottom()
	}
	return pointInPolygon(p, r.points)
}

func pointInPolygon(p geometry.Point, polygon []geometry.Point) bool {
	inside := false
	j := len(polygon) - 1
	for i := range polygon {
		a, b := polygon[i], polygon[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

type regionJSON struct {
	ID            string           `json:"id"`
	BoundingBox   BoundingBox      `json:"bounding_box"`
	Points        []geometry.Point `json:"points,omitempty"`
	PermissionTag PermissionTag    `json:"permission_tag"`
}

// MarshalJSON implements json.Marshaler.
func (r Region) MarshalJSON() ([]byte, error) {
	return json.Marshal(regionJSON{
		ID:            r.id,
		BoundingBox:   r.box,
		Points:        r.points,
		PermissionTag: r.tag,
	})
}

// UnmarshalJSON implements json.Unmarshaler. When points are present the
// bounding box is recomputed from them.
func (r *Region) UnmarshalJSON(data []byte) error {
	var v regionJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.ID == "" {
		return fmt.Errorf("selection region has no id")
	}
	box := v.BoundingBox
	if len(v.Points) > 0 {
		box = boxOf(v.Points)
	}
	if math.IsNaN(box.Width) || box.Width < 0 || box.Height < 0 {
		return fmt.Errorf("selection region %s has an invalid bounding box", v.ID)
	}
	*r = Region{id: v.ID, box: box, points: v.Points, tag: v.PermissionTag}
	return nil
}
