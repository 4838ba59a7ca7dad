package edgemap

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-lasso/internal/geometry"
)

// createStepImage creates an image that is black for x < split and white
// from split onwards.
func createStepImage(width, height, split int) *image.RGBA {
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

// createInMemoryImage creates a uniformly coloured image.
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestBuild_Dimensions(t *testing.T) {
	m, err := Build(createInMemoryImage(64, 48, color.White))
	require.NoError(t, err)
	assert.Equal(t, 64, m.Width())
	assert.Equal(t, 48, m.Height())
}

func TestBuild_Empty(t *testing.T) {
	_, err := Build(nil)
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = Build(image.NewRGBA(image.Rect(0, 0, 0, 10)))
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestBuild_UniformImage(t *testing.T) {
	m, err := Build(createInMemoryImage(50, 50, color.RGBA{128, 128, 128, 255}))
	require.NoError(t, err)
	assert.Zero(t, m.Max())
	assert.Zero(t, m.GradientAt(25, 25))
}

func TestBuild_StrongEdge(t *testing.T) {
	m, err := Build(createStepImage(100, 100, 50))
	require.NoError(t, err)

	assert.InDelta(t, 4.0, m.Max(), 1e-9)
	assert.InDelta(t, 4.0, m.GradientAt(49, 50), 1e-9)
	assert.InDelta(t, 4.0, m.GradientAt(50, 50), 1e-9)
	assert.Zero(t, m.GradientAt(10, 50))
	assert.Zero(t, m.GradientAt(90, 50))
}

func TestBuild_NonZeroOrigin(t *testing.T) {
	full := createStepImage(100, 100, 50)
	sub := full.SubImage(image.Rect(40, 40, 60, 60))

	m, err := Build(sub)
	require.NoError(t, err)
	assert.Equal(t, 20, m.Width())
	assert.Equal(t, 20, m.Height())
	// Column 50 of the parent is column 10 of the sub-image.
	assert.InDelta(t, 4.0, m.GradientAt(10, 5), 1e-9)
	assert.Zero(t, m.GradientAt(2, 5))
}

func TestBuild_LabLuminance(t *testing.T) {
	m, err := Build(createStepImage(60, 60, 30), WithLuminance(LuminanceLab))
	require.NoError(t, err)
	assert.InDelta(t, 4.0, m.GradientAt(30, 30), 0.01)
	assert.Zero(t, m.GradientAt(5, 30))
}

func TestBuild_PreBlur(t *testing.T) {
	sharp, err := Build(createStepImage(100, 100, 50))
	require.NoError(t, err)
	soft, err := Build(createStepImage(100, 100, 50), WithPreBlur(2))
	require.NoError(t, err)

	assert.Zero(t, sharp.GradientAt(48, 50))
	assert.Greater(t, soft.GradientAt(48, 50), 0.0, "blur should spread the edge")
	assert.Less(t, soft.GradientAt(49, 50), 4.0, "blur should soften the peak")
	assert.Zero(t, soft.GradientAt(20, 50))
}

func TestParseLuminance(t *testing.T) {
	tests := []struct {
		in     string
		want   Luminance
		wantOK bool
	}{
		{"", LuminanceBT601, true},
		{"bt601", LuminanceBT601, true},
		{"lab", LuminanceLab, true},
		{"hsv", LuminanceBT601, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLuminance(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
	assert.Equal(t, "lab", LuminanceLab.String())
	assert.Equal(t, "bt601", LuminanceBT601.String())
}

func TestGradientAt_OutOfBounds(t *testing.T) {
	m, err := Build(createStepImage(20, 20, 10))
	require.NoError(t, err)

	tests := []struct {
		name string
		x, y float64
	}{
		{"left", -1, 5},
		{"above", 5, -0.6},
		{"right", 20, 5},
		{"below", 5, 19.5},
		{"far away", 1e9, -1e9},
		{"nan", math.NaN(), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Zero(t, m.GradientAt(tt.x, tt.y))
		})
	}
}

func TestGradientAt_NearestPixel(t *testing.T) {
	m, err := Build(createStepImage(100, 100, 50))
	require.NoError(t, err)
	assert.InDelta(t, 4.0, m.GradientAt(49.4, 50.2), 1e-9)
	assert.Zero(t, m.GradientAt(47.4, 50))
}

func TestThreshold(t *testing.T) {
	m, err := Build(createStepImage(100, 100, 50))
	require.NoError(t, err)

	assert.True(t, math.IsInf(m.Threshold(0), 1))
	assert.True(t, math.IsInf(m.Threshold(-5), 1))
	assert.InDelta(t, 2.0, m.Threshold(50), 1e-9)
	assert.InDelta(t, 0.0, m.Threshold(100), 1e-9)
	assert.InDelta(t, 0.0, m.Threshold(250), 1e-9)
	assert.InDelta(t, 3.6, m.Threshold(10), 1e-9)
}

func TestSnap_HardEdge(t *testing.T) {
	m, err := Build(createStepImage(100, 100, 50))
	require.NoError(t, err)

	for _, raw := range []geometry.Point{
		geometry.Pt(45, 50),
		geometry.Pt(55.5, 20),
		geometry.Pt(41, 80),
	} {
		got, ok := m.Snap(raw, 10, m.Threshold(50))
		require.True(t, ok, "raw %v should snap", raw)
		assert.InDelta(t, 49.5, got.X, 1.0, "snapped %v should sit on the boundary", got)
		assert.Equal(t, math.Round(raw.Y), got.Y, "snap should move straight across the edge")
	}
}

func TestSnap_NoCandidate(t *testing.T) {
	step, err := Build(createStepImage(100, 100, 50))
	require.NoError(t, err)
	uniform, err := Build(createInMemoryImage(100, 100, color.White))
	require.NoError(t, err)

	raw := geometry.Pt(45, 50)

	got, ok := step.Snap(raw, 10, step.Threshold(0))
	assert.False(t, ok, "sensitivity 0 disables snapping")
	assert.Equal(t, raw, got)

	got, ok = step.Snap(geometry.Pt(20, 50), 10, step.Threshold(50))
	assert.False(t, ok, "edge is out of reach")
	assert.Equal(t, geometry.Pt(20, 50), got)

	got, ok = uniform.Snap(raw, 10, uniform.Threshold(100))
	assert.False(t, ok, "uniform image has no edges")
	assert.Equal(t, raw, got)

	got, ok = step.Snap(geometry.Pt(-500, -500), 10, step.Threshold(100))
	assert.False(t, ok, "far outside the image")
	assert.Equal(t, geometry.Pt(-500, -500), got)
}

func TestSnap_TieBreaksByDistance(t *testing.T) {
	img := createInMemoryImage(60, 60, color.Black)
	for y := 0; y < 60; y++ {
		img.Set(20, y, color.White)
	}
	m, err := Build(img)
	require.NoError(t, err)

	got, ok := m.Snap(geometry.Pt(17, 30), 10, m.Threshold(50))
	require.True(t, ok)
	assert.Equal(t, geometry.Pt(19, 30), got)

	got, ok = m.Snap(geometry.Pt(24, 30), 10, m.Threshold(50))
	require.True(t, ok)
	assert.Equal(t, geometry.Pt(21, 30), got)
}

func TestSnap_RespectsRadius(t *testing.T) {
	m, err := Build(createStepImage(100, 100, 50))
	require.NoError(t, err)

	_, ok := m.Snap(geometry.Pt(38, 50), 10, m.Threshold(50))
	assert.False(t, ok, "boundary is 11 pixels away")

	_, ok = m.Snap(geometry.Pt(38, 50), 12, m.Threshold(50))
	assert.True(t, ok)
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, createStepImage(40, 30, 20)))

	m, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 40, m.Width())
	assert.Equal(t, 30, m.Height())
	assert.InDelta(t, 4.0, m.Max(), 1e-9)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode(strings.NewReader("definitely not an image"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode), "got %v", err)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "step.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, createStepImage(30, 30, 15)))
	require.NoError(t, f.Close())

	m, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 30, m.Width())

	_, err = Open(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrDecode), "missing files are not decode failures")
}

func TestMap_IsItsOwnSource(t *testing.T) {
	m, err := Build(createStepImage(10, 10, 5))
	require.NoError(t, err)

	var src Source = m
	got, ok := src.EdgeMap()
	assert.True(t, ok)
	assert.Same(t, m, got)
}

func TestClamp(t *testing.T) {
	m, err := Build(createStepImage(20, 10, 10))
	require.NoError(t, err)

	tests := []struct {
		in, want geometry.Point
	}{
		{geometry.Pt(5, 5), geometry.Pt(5, 5)},
		{geometry.Pt(-3, 4), geometry.Pt(0, 4)},
		{geometry.Pt(25, 12), geometry.Pt(19, 9)},
		{geometry.Pt(math.NaN(), 2.5), geometry.Pt(0, 2.5)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.Clamp(tt.in), "Clamp(%v)", tt.in)
	}
}
