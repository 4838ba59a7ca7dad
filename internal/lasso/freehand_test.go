package lasso

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-lasso/internal/canvas"
	"github.com/ironsheep/image-lasso/internal/geometry"
)

func traceFreehand(f *Freehand, points []geometry.Point) {
	f.Start(points[0])
	for _, p := range points[1:] {
		f.Continue(p)
	}
}

func TestFreehand_PreviewFollowsPointer(t *testing.T) {
	host := canvas.NewArena()
	f := NewFreehand(host, DefaultConfig())

	f.Start(geometry.Pt(0, 0))
	assert.True(t, f.Active())
	assert.Equal(t, 1, host.TransientCount())

	f.Continue(geometry.Pt(10, 0))
	f.Continue(geometry.Pt(10, 10))
	assert.Equal(t, 1, host.TransientCount(), "the preview is replaced, not stacked")

	ids := host.Objects()
	require.Len(t, ids, 1)
	p, _ := host.Get(ids[0])
	assert.Equal(t, canvas.KindPolyline, p.Kind)
	assert.Len(t, p.Points, 3)
	assert.NotEmpty(t, p.Style.Dash, "preview is dashed")
}

func TestFreehand_InsufficientPoints(t *testing.T) {
	host := canvas.NewArena()
	f := NewFreehand(host, DefaultConfig())

	traceFreehand(f, pts(0, 0, 5, 5))
	out, ok := f.Complete(true)
	assert.False(t, ok)
	assert.Nil(t, out)
	assert.False(t, f.Active())
	assert.Zero(t, host.Len(), "a discarded trace leaves no visuals")
}

func TestFreehand_AutoClose(t *testing.T) {
	raw := pts(0, 0, 50, 0, 50, 50, 5, 8)

	f := NewFreehand(nil, DefaultConfig())
	traceFreehand(f, raw)
	out, ok := f.Complete(true)
	require.True(t, ok)
	assert.True(t, geometry.Closed(out), "last point within 20 units closes the trace")

	traceFreehand(f, raw)
	out, ok = f.Complete(false)
	require.True(t, ok)
	assert.False(t, geometry.Closed(out), "autoClose=false leaves the trace open")
	assert.Equal(t, raw[len(raw)-1], out[len(out)-1])

	far := pts(0, 0, 50, 0, 50, 50, 30, 30)
	traceFreehand(f, far)
	out, ok = f.Complete(true)
	require.True(t, ok)
	assert.False(t, geometry.Closed(out), "last point too far from the first")
}

func TestFreehand_SmoothedExtentCoversRaw(t *testing.T) {
	raw := pts(10, 10, 40, 5, 80, 20, 90, 60, 50, 90, 15, 70, 12, 18)
	f := NewFreehand(nil, DefaultConfig())
	traceFreehand(f, raw)

	out, ok := f.Complete(true)
	require.True(t, ok)
	assert.Greater(t, len(out), len(raw), "smoothing densifies the outline")

	rawBox, _ := geometry.Bounds(raw)
	box, _ := geometry.Bounds(out)
	assert.LessOrEqual(t, box.Min.X, rawBox.Min.X)
	assert.LessOrEqual(t, box.Min.Y, rawBox.Min.Y)
	assert.GreaterOrEqual(t, box.Max.X, rawBox.Max.X)
	assert.GreaterOrEqual(t, box.Max.Y, rawBox.Max.Y)
}

func TestFreehand_DegenerateTraceAccepted(t *testing.T) {
	f := NewFreehand(nil, DefaultConfig())
	traceFreehand(f, pts(5, 5, 5, 5, 5, 5))
	out, ok := f.Complete(false)
	require.True(t, ok)
	for _, p := range out {
		assert.InDelta(t, 5, p.X, 1e-9)
		assert.InDelta(t, 5, p.Y, 1e-9)
	}

	traceFreehand(f, pts(0, 0, 10, 10, 20, 20))
	_, ok = f.Complete(false)
	assert.True(t, ok, "collinear traces are the caller's policy")
}

func TestFreehand_ContinueWithoutStart(t *testing.T) {
	host := canvas.NewArena()
	f := NewFreehand(host, DefaultConfig())
	f.Continue(geometry.Pt(1, 1))
	assert.False(t, f.Active())
	assert.Empty(t, f.Points())
	assert.Zero(t, host.Len())

	_, ok := f.Complete(true)
	assert.False(t, ok)
}

func TestFreehand_StartRestarts(t *testing.T) {
	host := canvas.NewArena()
	f := NewFreehand(host, DefaultConfig())
	traceFreehand(f, pts(0, 0, 1, 1, 2, 2))
	f.Start(geometry.Pt(50, 50))

	assert.Equal(t, pts(50, 50), f.Points())
	assert.Equal(t, 1, host.TransientCount())
}

func TestFreehand_CancelIdempotent(t *testing.T) {
	host := canvas.NewArena()
	f := NewFreehand(host, DefaultConfig())
	traceFreehand(f, pts(0, 0, 10, 0, 10, 10, 0, 10))

	f.Cancel()
	once := host.Objects()
	f.Cancel()
	assert.Equal(t, once, host.Objects())
	assert.Zero(t, host.Len())
	assert.False(t, f.Active())
	assert.Empty(t, f.Points())

	traceFreehand(f, pts(0, 0, 10, 0, 10, 10))
	_, ok := f.Complete(false)
	require.True(t, ok)
	f.Cancel()
	assert.Zero(t, host.Len(), "cancel after complete is a no-op")
}
