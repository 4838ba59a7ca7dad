package geometry

import "gonum.org/v1/gonum/spatial/r2"

// DefaultTension reproduces the classic Catmull-Rom curve.
const DefaultTension = 0.5

// DefaultSamplesPerSpan is the number of output points generated for each
// span between two consecutive input points.
const DefaultSamplesPerSpan = 8

// Smooth resamples points along a cardinal spline using DefaultSamplesPerSpan.
// See SmoothN.
func Smooth(points []Point, tension float64) []Point {
	return SmoothN(points, tension, DefaultSamplesPerSpan)
}

// SmoothN resamples points along a cardinal spline with samples output points
// per span.
//
// The tangent at each input point is tension times the vector between its
// neighbours; tension is clamped to [0, 1]. At 0 every span degenerates to its
// straight segment, at 0.5 the curve is Catmull-Rom. Input points are emitted
// unchanged, in order, so the result starts and ends where the input does.
//
// Closed input (first point equal to last, at least four points) takes its
// end tangents from across the seam so the join stays smooth. Lists with fewer
// than three points are returned as a copy.
func SmoothN(points []Point, tension float64, samples int) []Point {
	n := len(points)
	if n < 3 {
		return append([]Point(nil), points...)
	}
	if tension < 0 {
		tension = 0
	} else if tension > 1 {
		tension = 1
	}
	if samples < 1 {
		samples = 1
	}

	closed := n > 3 && Closed(points)
	at := func(i int) r2.Vec {
		if closed {
			ring := n - 1
			i = ((i % ring) + ring) % ring
			return points[i].vec()
		}
		if i < 0 {
			i = 0
		} else if i >= n {
			i = n - 1
		}
		return points[i].vec()
	}

	out := make([]Point, 0, (n-1)*samples+1)
	for i := 0; i < n-1; i++ {
		p1, p2 := points[i].vec(), points[i+1].vec()
		m1 := r2.Scale(tension, r2.Sub(p2, at(i-1)))
		m2 := r2.Scale(tension, r2.Sub(at(i+2), p1))

		out = append(out, points[i])
		for s := 1; s < samples; s++ {
			out = append(out, fromVec(hermite(p1, p2, m1, m2, float64(s)/float64(samples))))
		}
	}
	return append(out, points[n-1])
}

// hermite evaluates the cubic Hermite segment from p1 to p2 with tangents m1
// and m2 at parameter t in [0, 1].
func hermite(p1, p2, m1, m2 r2.Vec, t float64) r2.Vec {
	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2
	return r2.Add(
		r2.Add(r2.Scale(h00, p1), r2.Scale(h10, m1)),
		r2.Add(r2.Scale(h01, p2), r2.Scale(h11, m2)),
	)
}
