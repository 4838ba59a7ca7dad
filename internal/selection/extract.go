package selection

import (
	"errors"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-lasso/internal/geometry"
)

// ErrEmptyRegion is returned when a region does not overlap the image.
var ErrEmptyRegion = errors.New("selection does not overlap the image")

// PixelBounds returns the smallest pixel rectangle holding every pixel
// centre inside the bounding box.
func (b BoundingBox) PixelBounds() image.Rectangle {
	return image.Rect(
		int(math.Ceil(b.Left)), int(math.Ceil(b.Top)),
		int(math.Floor(b.Right()))+1, int(math.Floor(b.Bottom()))+1,
	)
}

// Mask returns an alpha mask over bounds that is opaque for every pixel whose
// centre lies inside r.
func (r Region) Mask(bounds image.Rectangle) *image.Alpha {
	mask := image.NewAlpha(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if r.Contains(geometry.Pt(float64(x), float64(y))) {
				mask.Pix[mask.PixOffset(x, y)] = 0xff
			}
		}
	}
	return mask
}

// Extract crops img to the region's bounding box and clears every pixel
// outside the outline. The result's bounds start at (0, 0).
//
// Returns ErrEmptyRegion if the region lies entirely outside img.
func Extract(img image.Image, r Region) (*image.NRGBA, error) {
	rect := r.box.PixelBounds().Intersect(img.Bounds())
	if rect.Empty() {
		return nil, ErrEmptyRegion
	}

	cropped := imaging.Crop(img, rect)
	if !r.HasPoints() {
		return cropped, nil
	}

	mask := r.Mask(rect)
	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			if mask.AlphaAt(rect.Min.X+x, rect.Min.Y+y).A != 0 {
				continue
			}
			i := cropped.PixOffset(x, y)
			cropped.Pix[i+0] = 0
			cropped.Pix[i+1] = 0
			cropped.Pix[i+2] = 0
			cropped.Pix[i+3] = 0
		}
	}
	return cropped, nil
}
