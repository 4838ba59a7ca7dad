package lasso

import (
	"github.com/ironsheep/image-lasso/internal/canvas"
	"github.com/ironsheep/image-lasso/internal/geometry"
)

// discard is used when a session is created without a canvas.
type discard struct{}

func (discard) Add(canvas.Primitive) canvas.ObjectID { return 0 }
func (discard) Remove(canvas.ObjectID) bool          { return false }

// overlay tracks the transient primitives a session has drawn.
type overlay struct {
	host    canvas.Drawer
	preview canvas.ObjectID
}

func newOverlay(host canvas.Drawer) overlay {
	if host == nil {
		host = discard{}
	}
	return overlay{host: host}
}

func (o *overlay) draw(p canvas.Primitive) canvas.ObjectID {
	p.Transient = true
	return o.host.Add(p)
}

func (o *overlay) erase(id canvas.ObjectID) {
	if id != 0 {
		o.host.Remove(id)
	}
}

func (o *overlay) setPreview(p canvas.Primitive) {
	o.clearPreview()
	o.preview = o.draw(p)
}

func (o *overlay) clearPreview() {
	o.erase(o.preview)
	o.preview = 0
}

func (o *overlay) polyline(points []geometry.Point, style canvas.Style) canvas.Primitive {
	return canvas.Primitive{
		Kind:   canvas.KindPolyline,
		Points: append([]geometry.Point(nil), points...),
		Style:  style,
	}
}

func (o *overlay) marker(p geometry.Point, cfg Config) canvas.Primitive {
	return canvas.Primitive{
		Kind:   canvas.KindCircle,
		Points: []geometry.Point{p},
		Radius: cfg.MarkerRadius,
		Style:  cfg.MarkerStyle,
	}
}
