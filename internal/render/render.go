package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-lasso/internal/canvas"
	"github.com/ironsheep/image-lasso/internal/geometry"
)

// DefaultFillAlpha is the opacity used for path fills.
const DefaultFillAlpha = 0.25

// Source is the read side of a canvas.Host.
type Source interface {
	Objects() []canvas.ObjectID
	Get(id canvas.ObjectID) (canvas.Primitive, bool)
}

// Options controls what Draw paints besides the primitives.
type Options struct {
	// GridSpacing draws a coordinate grid every n pixels; 0 disables it.
	GridSpacing int
	// Labels prints "x,y" at each grid intersection.
	Labels bool
	// GridColor is a "#rrggbb" colour; invalid or empty means red.
	GridColor string
	// FillAlpha is the opacity of path fills in [0, 1].
	FillAlpha float64
}

// Draw returns a copy of img with every primitive in src painted on top, in
// the order src lists them. The result's bounds start at (0, 0) and canvas
// coordinates are taken relative to img's origin.
func Draw(img image.Image, src Source, opts Options) (*image.NRGBA, error) {
	dst := imaging.Clone(img)
	if opts.GridSpacing > 0 {
		Grid(dst, opts.GridSpacing, opts.Labels, opts.GridColor)
	}
	alpha := opts.FillAlpha
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultFillAlpha
	}
	if src == nil {
		return dst, nil
	}
	for _, id := range src.Objects() {
		p, ok := src.Get(id)
		if !ok {
			continue
		}
		if err := Primitive(dst, p, alpha); err != nil {
			return nil, fmt.Errorf("object %d: %w", id, err)
		}
	}
	return dst, nil
}

// Primitive paints a single primitive onto dst.
func Primitive(dst *image.NRGBA, p canvas.Primitive, fillAlpha float64) error {
	stroke, fill, err := colours(p.Style)
	if err != nil {
		return err
	}
	width := p.Style.Width
	if width <= 0 {
		width = 1
	}

	switch p.Kind {
	case canvas.KindLine, canvas.KindPolyline:
		if stroke != nil {
			polyline(dst, p.Points, width, p.Style.Dash, *stroke)
		}
	case canvas.KindPath:
		if fill != nil {
			fillPolygon(dst, p.Points, *fill, fillAlpha)
		}
		if stroke != nil {
			ring := p.Points
			if len(ring) > 2 && !geometry.Closed(ring) {
				ring = append(slices.Clone(ring), ring[0])
			}
			polyline(dst, ring, width, p.Style.Dash, *stroke)
		}
	case canvas.KindCircle:
		if len(p.Points) == 0 {
			return nil
		}
		c := p.Points[0]
		if fill != nil {
			disc(dst, c, p.Radius, *fill, 1)
		}
		if stroke != nil {
			circle(dst, c, p.Radius, width, p.Style.Dash, *stroke)
		}
	default:
		return fmt.Errorf("unsupported primitive kind %s", p.Kind)
	}
	return nil
}

func colours(s canvas.Style) (stroke, fill *colorful.Color, err error) {
	if s.Stroke != "" {
		c, err := colorful.Hex(s.Stroke)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid stroke colour %q: %w", s.Stroke, err)
		}
		stroke = &c
	}
	if s.Fill != "" {
		c, err := colorful.Hex(s.Fill)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid fill colour %q: %w", s.Fill, err)
		}
		fill = &c
	}
	return stroke, fill, nil
}

// blend mixes c into the pixel at (x, y) with opacity a.
func blend(dst *image.NRGBA, x, y int, c colorful.Color, a float64) {
	if !(image.Point{x, y}.In(dst.Rect)) {
		return
	}
	i := dst.PixOffset(x, y)
	base := colorful.Color{
		R: float64(dst.Pix[i+0]) / 255,
		G: float64(dst.Pix[i+1]) / 255,
		B: float64(dst.Pix[i+2]) / 255,
	}
	r, g, b := base.BlendRgb(c, a).Clamped().RGB255()
	dst.Pix[i+0] = r
	dst.Pix[i+1] = g
	dst.Pix[i+2] = b
	dst.Pix[i+3] = uint8(math.Max(float64(dst.Pix[i+3]), a*255+0.5))
}

// span converts the closed interval [lo, hi] into pixel indices clipped to
// [minI, maxI]. The result is empty (first > last) when nothing remains.
func span(lo, hi float64, minI, maxI int) (int, int) {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return 1, 0
	}
	lo = math.Max(math.Ceil(lo), float64(minI))
	hi = math.Min(math.Floor(hi), float64(maxI))
	if lo > hi {
		return 1, 0
	}
	return int(lo), int(hi)
}

// disc fills every pixel whose centre is within r of c.
func disc(dst *image.NRGBA, c geometry.Point, r float64, col colorful.Color, a float64) {
	if r < 0.5 {
		r = 0.5
	}
	x0, x1 := span(c.X-r, c.X+r, dst.Rect.Min.X, dst.Rect.Max.X-1)
	y0, y1 := span(c.Y-r, c.Y+r, dst.Rect.Min.Y, dst.Rect.Max.Y-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)-c.X, float64(y)-c.Y
			if dx*dx+dy*dy <= r*r {
				blend(dst, x, y, col, a)
			}
		}
	}
}

// dasher walks a dash pattern across consecutive segments.
type dasher struct {
	pattern []float64
	period  float64
	index   int
	left    float64
}

func newDasher(pattern []float64) *dasher {
	var total float64
	for _, d := range pattern {
		if d < 0 {
			return nil
		}
		total += d
	}
	if total <= 0 {
		return nil
	}
	if len(pattern)%2 == 1 {
		pattern = append(slices.Clone(pattern), pattern...)
		total *= 2
	}
	return &dasher{pattern: pattern, period: total, left: pattern[0]}
}

// on reports whether the pen is down, then advances by step.
func (d *dasher) on(step float64) bool {
	if d == nil {
		return true
	}
	down := d.index%2 == 0
	d.advance(step)
	return down
}

// advance moves the pattern forward by dist without drawing.
func (d *dasher) advance(dist float64) {
	if d == nil || !(dist > 0) {
		return
	}
	d.left -= math.Mod(dist, d.period)
	for d.left <= 0 {
		d.index = (d.index + 1) % len(d.pattern)
		d.left += d.pattern[d.index]
	}
}

const (
	stampStep = 0.5
	// maxRingSegments bounds the polygon used to stroke a circle.
	maxRingSegments = 1 << 14
)

func polyline(dst *image.NRGBA, pts []geometry.Point, width float64, dash []float64, col colorful.Color) {
	if len(pts) == 0 {
		return
	}
	d := newDasher(dash)
	if len(pts) == 1 {
		disc(dst, pts[0], width/2, col, 1)
		return
	}
	for i := 1; i < len(pts); i++ {
		segment(dst, pts[i-1], pts[i], width, d, col)
	}
}

// clipSegment returns the parameter range [t0, t1] of the segment a-b that
// lies within r grown by pad on every side (Liang-Barsky).
func clipSegment(a, b geometry.Point, r image.Rectangle, pad float64) (t0, t1 float64, ok bool) {
	minX, maxX := float64(r.Min.X)-pad, float64(r.Max.X-1)+pad
	minY, maxY := float64(r.Min.Y)-pad, float64(r.Max.Y-1)+pad
	dx, dy := b.X-a.X, b.Y-a.Y

	t0, t1 = 0, 1
	for _, e := range [4][2]float64{
		{-dx, a.X - minX},
		{dx, maxX - a.X},
		{-dy, a.Y - minY},
		{dy, maxY - a.Y},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return t0, t1, true
}

// segment stamps the part of a-b that can touch dst. The dash pattern still
// advances over the clipped-off ends so dashes stay continuous.
func segment(dst *image.NRGBA, a, b geometry.Point, width float64, d *dasher, col colorful.Color) {
	length := geometry.Distance(a, b)
	if math.IsNaN(length) || math.IsInf(length, 0) {
		return
	}
	if length == 0 {
		if d.on(0) {
			disc(dst, a, width/2, col, 1)
		}
		return
	}

	t0, t1, ok := clipSegment(a, b, dst.Rect, width/2+1)
	if !ok {
		d.advance(length)
		return
	}
	d.advance(t0 * length)
	from, to := geometry.Lerp(a, b, t0), geometry.Lerp(a, b, t1)
	visible := (t1 - t0) * length

	steps := int(math.Ceil(visible / stampStep))
	if steps == 0 {
		if d.on(0) {
			disc(dst, from, width/2, col, 1)
		}
	}
	for i := 0; steps > 0 && i <= steps; i++ {
		t := float64(i) / float64(steps)
		if d.on(visible / float64(steps)) {
			disc(dst, geometry.Lerp(from, to, t), width/2, col, 1)
		}
	}
	d.advance((1 - t1) * length)
}

func circle(dst *image.NRGBA, c geometry.Point, r, width float64, dash []float64, col colorful.Color) {
	reach := r + width/2 + 1
	b := dst.Rect
	if c.X+reach < float64(b.Min.X) || c.X-reach > float64(b.Max.X) ||
		c.Y+reach < float64(b.Min.Y) || c.Y-reach > float64(b.Max.Y) {
		return
	}
	n := int(math.Min(math.Ceil(2*math.Pi*r/stampStep), maxRingSegments))
	if n < 8 {
		n = 8
	}
	ring := make([]geometry.Point, n+1)
	for i := range ring {
		theta := 2 * math.Pi * float64(i) / float64(n)
		ring[i] = geometry.Pt(c.X+r*math.Cos(theta), c.Y+r*math.Sin(theta))
	}
	polyline(dst, ring, width, dash, col)
}

// fillPolygon fills pixel centres inside pts with the even-odd rule, one
// scanline at a time. Rows and spans are clipped to dst.
func fillPolygon(dst *image.NRGBA, pts []geometry.Point, col colorful.Color, a float64) {
	if len(pts) < 3 {
		return
	}
	box, _ := geometry.Bounds(pts)
	y0, y1 := span(box.Min.Y, box.Max.Y, dst.Rect.Min.Y, dst.Rect.Max.Y-1)

	xs := make([]float64, 0, 8)
	for y := y0; y <= y1; y++ {
		fy := float64(y)
		xs = xs[:0]
		for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
			pi, pj := pts[i], pts[j]
			if (pi.Y > fy) != (pj.Y > fy) {
				xs = append(xs, pi.X+(fy-pi.Y)*(pj.X-pi.X)/(pj.Y-pi.Y))
			}
		}
		slices.Sort(xs)
		for k := 0; k+1 < len(xs); k += 2 {
			// the right end is exclusive
			x0, x1 := span(xs[k], math.Ceil(xs[k+1])-1, dst.Rect.Min.X, dst.Rect.Max.X-1)
			for x := x0; x <= x1; x++ {
				blend(dst, x, y, col, a)
			}
		}
	}
}

// ParseColor parses "#rrggbb" into an opaque colour, falling back to def.
func ParseColor(hex string, def color.NRGBA) color.NRGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return def
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
