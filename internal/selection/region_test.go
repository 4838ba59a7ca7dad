package selection

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-lasso/internal/geometry"
)

func square(lo, hi float64) []geometry.Point {
	return []geometry.Point{
		geometry.Pt(lo, lo), geometry.Pt(hi, lo), geometry.Pt(hi, hi), geometry.Pt(lo, hi),
	}
}

func TestFromPoints_TightBox(t *testing.T) {
	points := []geometry.Point{
		geometry.Pt(12, 40), geometry.Pt(80, 15), geometry.Pt(60, 90), geometry.Pt(12, 40),
	}
	r := FromPoints(points, "open-to-repost")

	want := BoundingBox{Left: 12, Top: 15, Width: 68, Height: 75}
	if diff := cmp.Diff(want, r.Box()); diff != "" {
		t.Errorf("bounding box mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, PermissionTag("open-to-repost"), r.Tag())
	assert.Equal(t, points, r.Points())

	_, err := uuid.Parse(r.ID())
	assert.NoError(t, err, "generated id should be a UUID")
}

func TestFromPoints_Options(t *testing.T) {
	r := FromPoints(square(0, 10), "approval-required", WithID("r-1"), WithoutPoints())
	assert.Equal(t, "r-1", r.ID())
	assert.False(t, r.HasPoints())
	assert.Nil(t, r.Points())
	assert.Equal(t, BoundingBox{Width: 10, Height: 10}, r.Box())
}

func TestFromPoints_UniqueIDs(t *testing.T) {
	a := FromPoints(square(0, 1), "")
	b := FromPoints(square(0, 1), "")
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestRegion_PointsAreCopied(t *testing.T) {
	points := square(0, 10)
	r := FromPoints(points, "")
	points[0] = geometry.Pt(-50, -50)
	assert.Equal(t, geometry.Pt(0, 0), r.Points()[0])

	got := r.Points()
	got[1] = geometry.Pt(999, 999)
	assert.Equal(t, geometry.Pt(10, 0), r.Points()[1])
}

func TestRegion_Translate(t *testing.T) {
	r := FromPoints(square(0, 10), "open", WithID("orig"))
	moved := r.Translate(5, -2)

	assert.NotEqual(t, r.ID(), moved.ID(), "edits create a new region")
	assert.Equal(t, r.Tag(), moved.Tag())
	assert.Equal(t, BoundingBox{Left: 5, Top: -2, Width: 10, Height: 10}, moved.Box())
	assert.Equal(t, geometry.Pt(15, 8), moved.Points()[2])
	assert.Equal(t, BoundingBox{Width: 10, Height: 10}, r.Box(), "original is unchanged")
}

func TestRegion_Contains(t *testing.T) {
	// L-shaped outline
	l := FromPoints([]geometry.Point{
		geometry.Pt(0, 0), geometry.Pt(20, 0), geometry.Pt(20, 10),
		geometry.Pt(10, 10), geometry.Pt(10, 20), geometry.Pt(0, 20),
	}, "")

	tests := []struct {
		name string
		p    geometry.Point
		want bool
	}{
		{"inside arm", geometry.Pt(15, 5), true},
		{"inside stem", geometry.Pt(5, 15), true},
		{"notch", geometry.Pt(15, 15), false},
		{"outside", geometry.Pt(-1, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Contains(tt.p))
		})
	}

	boxOnly := FromPoints(square(0, 10), "", WithoutPoints())
	assert.True(t, boxOnly.Contains(geometry.Pt(10, 10)))
	assert.False(t, boxOnly.Contains(geometry.Pt(10.5, 3)))
}

func TestRegion_JSON(t *testing.T) {
	r := FromPoints(square(2, 8), "open-to-repost", WithID("abc"))
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "abc",
		"bounding_box": {"left": 2, "top": 2, "width": 6, "height": 6},
		"points": [{"x":2,"y":2},{"x":8,"y":2},{"x":8,"y":8},{"x":2,"y":8}],
		"permission_tag": "open-to-repost"
	}`, string(data))

	var back Region
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r.ID(), back.ID())
	assert.Equal(t, r.Box(), back.Box())
	assert.Equal(t, r.Points(), back.Points())
	assert.Equal(t, r.Tag(), back.Tag())
}

func TestRegion_UnmarshalRecomputesBox(t *testing.T) {
	var r Region
	err := json.Unmarshal([]byte(`{
		"id": "x",
		"bounding_box": {"left": 0, "top": 0, "width": 1000, "height": 1000},
		"points": [{"x":1,"y":1},{"x":4,"y":1},{"x":4,"y":3}]
	}`), &r)
	require.NoError(t, err)
	assert.Equal(t, BoundingBox{Left: 1, Top: 1, Width: 3, Height: 2}, r.Box())
}

func TestRegion_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no id", `{"bounding_box":{"width":1,"height":1}}`},
		{"negative box", `{"id":"a","bounding_box":{"width":-1,"height":1}}`},
		{"malformed", `{"id":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Region
			assert.Error(t, json.Unmarshal([]byte(tt.data), &r))
		})
	}
}
