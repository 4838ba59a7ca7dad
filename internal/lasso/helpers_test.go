package lasso

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-lasso/internal/edgemap"
	"github.com/ironsheep/image-lasso/internal/geometry"
)

// squareImage returns a size x size black image with a white square covering
// [lo, hi) on both axes.
func squareImage(size, lo, hi int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x >= lo && x < hi && y >= lo && y < hi {
				img.Set(x, y, color.White)
			} else {
				img.Set(x, y, color.Black)
			}
		}
	}
	return img
}

// stepImage returns an image that is black left of split and white from
// split onwards.
func stepImage(width, height, split int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < split {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

func buildMap(t *testing.T, img image.Image) *edgemap.Map {
	t.Helper()
	m, err := edgemap.Build(img)
	require.NoError(t, err)
	return m
}

func pts(xy ...float64) []geometry.Point {
	out := make([]geometry.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, geometry.Pt(xy[i], xy[i+1]))
	}
	return out
}
