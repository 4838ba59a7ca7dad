package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a canvas-space coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func fromVec(v r2.Vec) Point {
	return Point{X: v.X, Y: v.Y}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(b.vec(), a.vec()))
}

// IsNear reports whether a and b lie within threshold of each other.
// The comparison is inclusive, so a point exactly threshold away is near.
func IsNear(a, b Point, threshold float64) bool {
	return Distance(a, b) <= threshold
}

// Lerp returns the point a fraction t of the way from a to b.
func Lerp(a, b Point, t float64) Point {
	return fromVec(r2.Add(a.vec(), r2.Scale(t, r2.Sub(b.vec(), a.vec()))))
}

// Interpolate returns the points strictly between a and b spaced spacing
// units apart along the straight line from a. Neither endpoint is included.
// A non-positive spacing, or endpoints closer than spacing, yields nil.
func Interpolate(a, b Point, spacing float64) []Point {
	d := Distance(a, b)
	if spacing <= 0 || d <= spacing {
		return nil
	}
	n := int(math.Ceil(d/spacing)) - 1
	out := make([]Point, 0, n)
	for k := 1; k <= n; k++ {
		out = append(out, Lerp(a, b, float64(k)*spacing/d))
	}
	return out
}

// Rect is an axis-aligned rectangle given by its minimum and maximum corners.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Bounds returns the tight axis-aligned bounding box of points.
// It reports false when points is empty.
func Bounds(points []Point) (Rect, bool) {
	if len(points) == 0 {
		return Rect{}, false
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r, true
}

// Closed reports whether points form a closed ring, that is, whether there are
// at least two points and the last equals the first.
func Closed(points []Point) bool {
	return len(points) > 1 && points[0] == points[len(points)-1]
}
