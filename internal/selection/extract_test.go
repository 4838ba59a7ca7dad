package selection

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-lasso/internal/geometry"
)

// createSolidImage creates a width x height image filled with c.
func createSolidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestBoundingBox_PixelBounds(t *testing.T) {
	tests := []struct {
		box  BoundingBox
		want image.Rectangle
	}{
		{BoundingBox{Left: 10, Top: 20, Width: 5, Height: 5}, image.Rect(10, 20, 16, 26)},
		{BoundingBox{Left: 10.2, Top: 19.9, Width: 4.6, Height: 0.2}, image.Rect(11, 20, 15, 21)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.box.PixelBounds(), "box %+v", tt.box)
	}
}

func TestMask(t *testing.T) {
	tri := FromPoints([]geometry.Point{
		geometry.Pt(0.5, 0.5), geometry.Pt(9.5, 0.5), geometry.Pt(0.5, 9.5),
	}, "")
	mask := tri.Mask(image.Rect(0, 0, 10, 10))

	assert.Equal(t, uint8(0xff), mask.AlphaAt(1, 1).A)
	assert.Equal(t, uint8(0xff), mask.AlphaAt(7, 1).A)
	assert.Equal(t, uint8(0), mask.AlphaAt(8, 8).A)
	assert.Equal(t, uint8(0), mask.AlphaAt(0, 0).A)
}

func TestExtract(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	img := createSolidImage(50, 50, red)

	// diamond centred on (25, 25)
	r := FromPoints([]geometry.Point{
		geometry.Pt(25, 10.5), geometry.Pt(39.5, 25), geometry.Pt(25, 39.5), geometry.Pt(10.5, 25),
	}, "open")

	out, err := Extract(img, r)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 29, 29), out.Bounds())

	// (25,25) in image space is (14,14) in the crop
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, out.NRGBAAt(14, 14))
	assert.Equal(t, color.NRGBA{}, out.NRGBAAt(0, 0), "corner lies outside the diamond")
	assert.Equal(t, color.NRGBA{}, out.NRGBAAt(28, 28))
}

func TestExtract_ClipsToImage(t *testing.T) {
	img := createSolidImage(20, 20, color.White)
	r := FromPoints([]geometry.Point{
		geometry.Pt(-10, -10), geometry.Pt(10, -10), geometry.Pt(10, 10), geometry.Pt(-10, 10),
	}, "")

	out, err := Extract(img, r)
	require.NoError(t, err)
	assert.Equal(t, 11, out.Bounds().Dx())
	assert.Equal(t, 11, out.Bounds().Dy())
}

func TestExtract_BoxOnly(t *testing.T) {
	img := createSolidImage(20, 20, color.White)
	r := FromPoints([]geometry.Point{
		geometry.Pt(2, 2), geometry.Pt(8, 2), geometry.Pt(2, 8),
	}, "", WithoutPoints())

	out, err := Extract(img, r)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, out.NRGBAAt(6, 6),
		"without an outline the whole box is kept")
}

func TestExtract_OutsideImage(t *testing.T) {
	img := createSolidImage(20, 20, color.White)
	r := FromPoints(square(40, 60), "")

	_, err := Extract(img, r)
	assert.True(t, errors.Is(err, ErrEmptyRegion))
}
