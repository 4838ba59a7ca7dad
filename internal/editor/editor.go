package editor

import (
	"errors"
	"fmt"

	"github.com/ironsheep/image-lasso/internal/canvas"
	"github.com/ironsheep/image-lasso/internal/edgemap"
	"github.com/ironsheep/image-lasso/internal/geometry"
	"github.com/ironsheep/image-lasso/internal/history"
	"github.com/ironsheep/image-lasso/internal/lasso"
	"github.com/ironsheep/image-lasso/internal/monitoring"
	"github.com/ironsheep/image-lasso/internal/selection"
)

var (
	// ErrToolUnavailable is returned when the magnetic tool is selected for
	// an image whose edge map could not be built.
	ErrToolUnavailable = errors.New("selection tools unavailable for this image")
	// ErrNoActiveObject is returned by operations on the active object when
	// none is set.
	ErrNoActiveObject = errors.New("no active object")
)

// RegionStyle is how completed selection outlines are painted.
var RegionStyle = canvas.Style{Stroke: "#1e90ff", Fill: "#1e90ff", Width: 2}

// Option configures New.
type Option func(*Editor)

// WithConfig sets the lasso tool configuration.
func WithConfig(cfg lasso.Config) Option {
	return func(e *Editor) { e.cfg = cfg }
}

// WithHistoryDepth caps the number of undo steps.
func WithHistoryDepth(n int) Option {
	return func(e *Editor) { e.history = history.New(n) }
}

// WithEdges attaches the edge map future of the image being edited.
func WithEdges(f *edgemap.Future) Option {
	return func(e *Editor) { e.edges = f }
}

// Editor routes pointer events to the active lasso session and records the
// resulting canvas mutations.
type Editor struct {
	host    canvas.Host
	history *history.Manager
	cfg     lasso.Config
	edges   *edgemap.Future

	tool        lasso.ToolKind
	session     lasso.Session
	sensitivity int
	tag         selection.PermissionTag
	clipboard   canvas.Clipboard
}

// New returns an editor over host with no tool selected. The host's current
// state becomes the base of the undo history.
func New(host canvas.Host, opts ...Option) (*Editor, error) {
	e := &Editor{
		host:    host,
		history: history.New(history.DefaultMaxDepth),
		cfg:     lasso.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.sensitivity = e.cfg.Sensitivity

	initial, err := host.Serialize()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot canvas: %w", err)
	}
	e.history.Initialize(initial)
	return e, nil
}

// AttachImage replaces the edge map source. Any trace in progress is
// cancelled because its snapped points belong to the previous image. A
// magnetic tool is deselected if f has already failed.
func (e *Editor) AttachImage(f *edgemap.Future) {
	e.Cancel()
	e.edges = f
	if e.tool == lasso.ToolMagnetic && e.edgesFailed() {
		e.tool = lasso.ToolNone
	}
	e.session = e.newSession(e.tool)
}

// Edges returns the attached edge map future, or nil.
func (e *Editor) Edges() *edgemap.Future { return e.edges }

// edgesFailed reports whether the attached edge map finished with an error.
func (e *Editor) edgesFailed() bool {
	return e.edges != nil && e.edges.Err() != nil
}

// Tool returns the selected tool.
func (e *Editor) Tool() lasso.ToolKind { return e.tool }

// Active reports whether a trace is in progress.
func (e *Editor) Active() bool { return e.session != nil && e.session.Active() }

// Points returns the committed points of the trace in progress.
func (e *Editor) Points() []geometry.Point {
	if e.session == nil {
		return nil
	}
	return e.session.Points()
}

// SelectTool cancels any trace in progress and switches to kind.
//
// Selecting ToolMagnetic fails with ErrToolUnavailable once the attached edge
// map has failed to build. While the map is still decoding the magnetic tool
// is allowed and places unsnapped points.
func (e *Editor) SelectTool(kind lasso.ToolKind) error {
	if kind == lasso.ToolMagnetic && e.edgesFailed() {
		return fmt.Errorf("%w: %w", ErrToolUnavailable, e.edges.Err())
	}
	e.Cancel()
	e.tool = kind
	e.session = e.newSession(kind)
	monitoring.Logf("editor: selected %s tool", kind)
	return nil
}

func (e *Editor) newSession(kind lasso.ToolKind) lasso.Session {
	switch kind {
	case lasso.ToolFreehand:
		return lasso.NewFreehand(e.host, e.cfg)
	case lasso.ToolPolygonal:
		return lasso.NewPolygonal(e.host, e.cfg)
	case lasso.ToolMagnetic:
		var src edgemap.Source
		if e.edges != nil {
			src = e.edges
		}
		m := lasso.NewMagnetic(e.host, src, e.cfg)
		m.SetSensitivity(e.sensitivity)
		return m
	default:
		return nil
	}
}

// PointerDown handles a button press at p. It returns the completed region
// when the press closes a polygonal or magnetic trace.
func (e *Editor) PointerDown(p geometry.Point) (selection.Region, bool) {
	switch s := e.session.(type) {
	case *lasso.Freehand:
		s.Start(p)
	case lasso.VertexSession:
		if points, closed := s.AddPoint(p); closed {
			return e.commit(points)
		}
	}
	return selection.Region{}, false
}

// PointerMove handles pointer motion to p.
func (e *Editor) PointerMove(p geometry.Point) {
	switch s := e.session.(type) {
	case *lasso.Freehand:
		s.Continue(p)
	case lasso.VertexSession:
		s.UpdatePreview(p)
	}
}

// PointerUp handles a button release at p. Releasing ends a freehand trace
// and closes it automatically when it ends near its start.
func (e *Editor) PointerUp(p geometry.Point) (selection.Region, bool) {
	s, ok := e.session.(*lasso.Freehand)
	if !ok || !s.Active() {
		return selection.Region{}, false
	}
	s.Continue(p)
	if points, ok := s.Complete(true); ok {
		return e.commit(points)
	}
	return selection.Region{}, false
}

// Complete finishes the trace in progress. Traces with fewer than three
// points are cancelled and report false.
func (e *Editor) Complete() (selection.Region, bool) {
	var (
		points []geometry.Point
		ok     bool
	)
	switch s := e.session.(type) {
	case *lasso.Freehand:
		points, ok = s.Complete(true)
	case lasso.VertexSession:
		points, ok = s.Complete()
	}
	if !ok {
		return selection.Region{}, false
	}
	return e.commit(points)
}

// Cancel abandons the trace in progress. It is safe to call at any time.
func (e *Editor) Cancel() {
	if e.session != nil {
		e.session.Cancel()
	}
}

// RemoveLastPoint drops the most recent vertex of a polygonal or magnetic
// trace.
func (e *Editor) RemoveLastPoint() bool {
	s, ok := e.session.(lasso.VertexSession)
	return ok && s.RemoveLastPoint()
}

// Delete handles the delete key. During a polygonal or magnetic trace it
// removes the last vertex, and during a freehand drag it cancels the trace.
// Committed objects are only deleted while no trace is in progress.
func (e *Editor) Delete() error {
	if e.Active() {
		if !e.RemoveLastPoint() {
			e.Cancel()
		}
		return nil
	}
	id, ok := e.host.ActiveObject()
	if !ok {
		return ErrNoActiveObject
	}
	e.host.Remove(id)
	e.record()
	return nil
}

// Sensitivity returns the magnetic sensitivity, 0-100.
func (e *Editor) Sensitivity() int { return e.sensitivity }

// SetSensitivity changes the magnetic sensitivity. It applies to the current
// session and to magnetic sessions created later.
func (e *Editor) SetSensitivity(v int) {
	if m, ok := e.session.(*lasso.Magnetic); ok {
		m.SetSensitivity(v)
		e.sensitivity = m.Sensitivity()
		return
	}
	e.sensitivity = max(0, min(100, v))
}

// PermissionTag returns the tag applied to completed regions.
func (e *Editor) PermissionTag() selection.PermissionTag { return e.tag }

// SetPermissionTag sets the tag applied to regions completed from now on.
func (e *Editor) SetPermissionTag(tag selection.PermissionTag) { e.tag = tag }

// commit draws a finished outline as a region path and records the new
// state.
func (e *Editor) commit(points []geometry.Point) (selection.Region, bool) {
	region := selection.FromPoints(points, e.tag)
	id := e.host.Add(regionPrimitive(region))
	e.host.SetActiveObject(id)
	e.record()
	monitoring.Logf("editor: completed %s region %s with %d points", e.tool, region.ID(), len(points))
	return region, true
}

func regionPrimitive(r selection.Region) canvas.Primitive {
	return canvas.Primitive{
		Kind:     canvas.KindPath,
		Points:   r.Points(),
		Style:    RegionStyle,
		RegionID: r.ID(),
		Tag:      string(r.Tag()),
	}
}

func regionOf(p canvas.Primitive) (selection.Region, bool) {
	if p.Kind != canvas.KindPath || p.RegionID == "" {
		return selection.Region{}, false
	}
	return selection.FromPoints(p.Points, selection.PermissionTag(p.Tag), selection.WithID(p.RegionID)), true
}

// record snapshots the host after a structural mutation.
func (e *Editor) record() {
	data, err := e.host.Serialize()
	if err != nil {
		monitoring.Logf("editor: failed to snapshot canvas: %v", err)
		return
	}
	e.history.Record(data)
}

// Regions returns every selection region on the canvas, in drawing order.
func (e *Editor) Regions() []selection.Region {
	var out []selection.Region
	for _, id := range e.host.Objects() {
		p, ok := e.host.Get(id)
		if !ok {
			continue
		}
		if r, ok := regionOf(p); ok {
			out = append(out, r)
		}
	}
	return out
}

// Region returns the region with the given id.
func (e *Editor) Region(id string) (selection.Region, bool) {
	for _, r := range e.Regions() {
		if r.ID() == id {
			return r, true
		}
	}
	return selection.Region{}, false
}

// Translate moves the active object by (dx, dy). A moved selection outline
// becomes a new region, which is returned.
func (e *Editor) Translate(dx, dy float64) (selection.Region, bool, error) {
	id, ok := e.host.ActiveObject()
	if !ok {
		return selection.Region{}, false, ErrNoActiveObject
	}
	p, ok := e.host.Get(id)
	if !ok {
		return selection.Region{}, false, ErrNoActiveObject
	}

	var (
		moved     canvas.Primitive
		region    selection.Region
		hasRegion bool
	)
	if r, ok := regionOf(p); ok {
		region, hasRegion = r.Translate(dx, dy), true
		moved = regionPrimitive(region)
		moved.Style = p.Style
	} else {
		moved = p.Translate(dx, dy)
	}

	e.host.Remove(id)
	e.host.SetActiveObject(e.host.Add(moved))
	e.record()
	return region, hasRegion, nil
}

// Copy places the active object on the editor's clipboard.
func (e *Editor) Copy() error {
	id, ok := e.host.ActiveObject()
	if !ok {
		return ErrNoActiveObject
	}
	if e.clipboard.Copy(e.host, id) == 0 {
		return ErrNoActiveObject
	}
	return nil
}

// Paste adds the clipboard contents moved by (dx, dy) and returns the new
// object IDs. Nothing is recorded when the clipboard is empty.
func (e *Editor) Paste(dx, dy float64) []canvas.ObjectID {
	ids := e.clipboard.Paste(e.host, dx, dy)
	if len(ids) == 0 {
		return nil
	}
	e.host.SetActiveObject(ids[len(ids)-1])
	e.record()
	return ids
}

// CanUndo reports whether Undo would change the canvas.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo would change the canvas.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// Undo restores the previous canvas state, cancelling any trace in
// progress. It reports false when there is nothing to undo.
func (e *Editor) Undo() (bool, error) {
	e.Cancel()
	s, ok := e.history.Undo()
	if !ok {
		return false, nil
	}
	return true, e.apply(s)
}

// Redo reapplies the state most recently undone.
func (e *Editor) Redo() (bool, error) {
	e.Cancel()
	s, ok := e.history.Redo()
	if !ok {
		return false, nil
	}
	return true, e.apply(s)
}

func (e *Editor) apply(s history.Snapshot) error {
	err := e.history.Apply(s, func(s history.Snapshot) error {
		return e.host.Deserialize(s)
	})
	if err != nil {
		return fmt.Errorf("failed to restore canvas: %w", err)
	}
	return nil
}
