package edgemap

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"

	"github.com/ironsheep/image-lasso/internal/geometry"
	"github.com/ironsheep/image-lasso/internal/monitoring"
)

var (
	// ErrDecode reports that the source image could not be decoded.
	ErrDecode = errors.New("edgemap: failed to decode image")

	// ErrEmptyImage reports a nil image or one without pixels.
	ErrEmptyImage = errors.New("edgemap: image has no pixels")
)

// Luminance selects how pixel colours are reduced to a single intensity
// before the gradient is computed.
type Luminance int

const (
	// LuminanceBT601 uses ITU-R BT.601 weights.
	LuminanceBT601 Luminance = iota
	// LuminanceLab uses CIE L* lightness.
	LuminanceLab
)

// String returns the config-file name of the model.
func (l Luminance) String() string {
	switch l {
	case LuminanceLab:
		return "lab"
	default:
		return "bt601"
	}
}

// ParseLuminance converts a config-file name into a Luminance. Unknown names
// fall back to LuminanceBT601 and report false.
func ParseLuminance(s string) (Luminance, bool) {
	switch s {
	case "bt601", "":
		return LuminanceBT601, true
	case "lab":
		return LuminanceLab, true
	default:
		return LuminanceBT601, false
	}
}

type options struct {
	luminance  Luminance
	blurRadius float64
}

// Option configures Build.
type Option func(*options)

// WithLuminance selects the luminance model.
func WithLuminance(l Luminance) Option {
	return func(o *options) { o.luminance = l }
}

// WithPreBlur applies a Gaussian blur of the given radius before the Sobel
// pass. A radius of zero or less disables it.
func WithPreBlur(radius float64) Option {
	return func(o *options) { o.blurRadius = radius }
}

// Map is an immutable gradient-magnitude field over one source image.
type Map struct {
	width     int
	height    int
	magnitude []float64
	max       float64
}

// Build computes the edge map of img.
//
// Parameters:
//   - img: Source image (color or grayscale). Its bounds may have any origin;
//     the map is indexed from the top-left pixel.
//   - opts: Optional luminance model and pre-blur radius.
//
// Returns:
//   - *Map: The complete gradient field.
//   - error: ErrEmptyImage if img is nil or has no pixels.
//
// # Algorithm
//
//  1. Optional Gaussian pre-blur (bild/blur)
//  2. Luminance conversion, normalised to 0-1
//  3. Sobel operators for X and Y gradients with clamped (replicated) borders
//  4. magnitude = sqrt(Gx² + Gy²)
//
// The maximum magnitude for a hard black/white step is 4, and 4·√2 for a
// diagonal corner.
func Build(img image.Image, opts ...Option) (*Map, error) {
	if img == nil {
		return nil, ErrEmptyImage
	}
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	src := img
	if o.blurRadius > 0 {
		src = blur.Gaussian(src, o.blurRadius)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	lum := luminance(src, o.luminance)

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				py := clamp(y+ky, 0, height-1)
				for kx := -1; kx <= 1; kx++ {
					px := clamp(x+kx, 0, width-1)
					v := lum[py*width+px]
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y*width+x] = math.Sqrt(gx*gx + gy*gy)
		}
	}

	m := &Map{
		width:     width,
		height:    height,
		magnitude: magnitude,
		max:       floats.Max(magnitude),
	}
	monitoring.Logf("edgemap: built %dx%d map (luminance=%s, blur=%.1f, max=%.3f)",
		width, height, o.luminance, o.blurRadius, m.max)
	return m, nil
}

// Decode reads an image from r and builds its edge map. EXIF orientation is
// applied so the map lines up with what the user sees.
//
// Returns an error wrapping ErrDecode if the data is not a supported image.
func Decode(r io.Reader, opts ...Option) (*Map, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return Build(img, opts...)
}

// Open loads the image file at path and builds its edge map.
//
// # Errors
//
//   - Returns a wrapped os error if the file cannot be opened
//   - Returns an error wrapping ErrDecode if the file is not a valid image
func Open(path string, opts ...Option) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return Decode(f, opts...)
}

// luminance converts src to a dense row-major intensity slice in 0-1.
func luminance(src image.Image, model Luminance) []float64 {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	lum := make([]float64, width*height)

	switch model {
	case LuminanceLab:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				c, ok := colorful.MakeColor(src.At(x+bounds.Min.X, y+bounds.Min.Y))
				if !ok {
					// Fully transparent pixels carry no colour.
					continue
				}
				l, _, _ := c.Lab()
				lum[y*width+x] = math.Min(math.Max(l, 0), 1)
			}
		}
	default:
		gray := imaging.Grayscale(src)
		gb := gray.Bounds()
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				lum[y*width+x] = float64(gray.Pix[gray.PixOffset(x+gb.Min.X, y+gb.Min.Y)]) / 255.0
			}
		}
	}
	return lum
}

// Width returns the number of pixel columns covered by the map.
func (m *Map) Width() int { return m.width }

// Height returns the number of pixel rows covered by the map.
func (m *Map) Height() int { return m.height }

// Max returns the strongest gradient magnitude in the map.
func (m *Map) Max() float64 { return m.max }

// EdgeMap returns m itself, so a built map can be used wherever a Source is
// expected.
func (m *Map) EdgeMap() (*Map, bool) { return m, m != nil }

// GradientAt returns the gradient magnitude at the pixel nearest (x, y).
// Coordinates outside the image, and NaN coordinates, yield 0.
func (m *Map) GradientAt(x, y float64) float64 {
	ix, iy, ok := m.pixel(x, y)
	if !ok {
		return 0
	}
	return m.magnitude[iy*m.width+ix]
}

func (m *Map) pixel(x, y float64) (int, int, bool) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return 0, 0, false
	}
	rx, ry := math.Round(x), math.Round(y)
	if rx < 0 || ry < 0 || rx >= float64(m.width) || ry >= float64(m.height) {
		return 0, 0, false
	}
	return int(rx), int(ry), true
}

// Clamp returns p moved inside the image extent [0, Width-1] x [0, Height-1].
// NaN coordinates clamp to 0.
func (m *Map) Clamp(p geometry.Point) geometry.Point {
	return geometry.Pt(clampf(p.X, float64(m.width-1)), clampf(p.Y, float64(m.height-1)))
}

func clampf(v, hi float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, hi)
}

// Threshold maps a lasso sensitivity in 0-100 onto a magnitude threshold
// relative to the strongest edge in the map: (1 - s/100) * Max().
//
// A sensitivity of zero or less disables snapping and yields +Inf. Values
// above 100 are treated as 100, which accepts any non-zero gradient.
func (m *Map) Threshold(sensitivity int) float64 {
	if sensitivity <= 0 {
		return math.Inf(1)
	}
	if sensitivity > 100 {
		sensitivity = 100
	}
	return (1 - float64(sensitivity)/100) * m.max
}

// Snap searches the disc of the given radius around p for the pixel with the
// highest gradient magnitude strictly above threshold.
//
// Parameters:
//   - p: Raw pointer position in canvas coordinates.
//   - radius: Search radius in canvas units.
//   - threshold: Minimum magnitude a candidate must exceed (see Threshold).
//
// Returns the candidate pixel position and true, or p unchanged and false when
// no pixel in range clears the threshold. Equal magnitudes are resolved in
// favour of the candidate closest to p, then by row-major scan order, so the
// result is deterministic.
func (m *Map) Snap(p geometry.Point, radius, threshold float64) (geometry.Point, bool) {
	if math.IsInf(threshold, 1) || math.IsNaN(p.X) || math.IsNaN(p.Y) || radius < 0 {
		return p, false
	}

	cx, cy := int(math.Round(p.X)), int(math.Round(p.Y))
	r := int(math.Ceil(radius))
	r2 := radius * radius

	best := threshold
	bestDist := math.Inf(1)
	found := false
	var bx, by int

	for y := clamp(cy-r, 0, m.height-1); y <= clamp(cy+r, 0, m.height-1); y++ {
		dy := float64(y - cy)
		for x := clamp(cx-r, 0, m.width-1); x <= clamp(cx+r, 0, m.width-1); x++ {
			dx := float64(x - cx)
			if dx*dx+dy*dy > r2 {
				continue
			}
			mag := m.magnitude[y*m.width+x]
			if mag <= threshold {
				continue
			}
			d := math.Hypot(float64(x)-p.X, float64(y)-p.Y)
			if mag > best || (mag == best && d < bestDist) {
				best, bestDist = mag, d
				bx, by = x, y
				found = true
			}
		}
	}

	if !found {
		return p, false
	}
	return geometry.Pt(float64(bx), float64(by)), true
}

// clamp constrains an integer value to the range [lo, hi].
// Used for boundary handling in convolution and neighbourhood scans.
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
