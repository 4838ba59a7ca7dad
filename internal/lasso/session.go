package lasso

import (
	"fmt"
	"strings"

	"github.com/ironsheep/image-lasso/internal/geometry"
)

// ToolKind selects one of the lasso tools.
type ToolKind int

const (
	// ToolNone means no selection tool is active.
	ToolNone ToolKind = iota
	// ToolFreehand traces while the pointer is held down.
	ToolFreehand
	// ToolPolygonal places straight-edged vertices on click.
	ToolPolygonal
	// ToolMagnetic places vertices that snap onto image edges.
	ToolMagnetic
)

// String returns the tool's name.
func (k ToolKind) String() string {
	switch k {
	case ToolNone:
		return "none"
	case ToolFreehand:
		return "freehand"
	case ToolPolygonal:
		return "polygonal"
	case ToolMagnetic:
		return "magnetic"
	default:
		return fmt.Sprintf("tool(%d)", int(k))
	}
}

// ParseToolKind converts a tool name, case-insensitively, into a ToolKind.
func ParseToolKind(s string) (ToolKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return ToolNone, nil
	case "freehand":
		return ToolFreehand, nil
	case "polygonal", "polygon":
		return ToolPolygonal, nil
	case "magnetic":
		return ToolMagnetic, nil
	default:
		return ToolNone, fmt.Errorf("unknown lasso tool %q", s)
	}
}

// Session is one in-progress trace.
type Session interface {
	// Kind identifies the tool.
	Kind() ToolKind
	// Active reports whether a trace is in progress.
	Active() bool
	// Points returns a copy of the committed point buffer.
	Points() []geometry.Point
	// Cancel abandons the trace and removes all visual aids. Calling it
	// again, or after completion, does nothing.
	Cancel()
}

// VertexSession is the click-driven contract shared by Polygonal and
// Magnetic.
type VertexSession interface {
	Session

	// AddPoint commits a vertex at p, starting a trace if none is active.
	// When p closes the trace it returns the finished point list, whose last
	// point equals its first, and true; the session is then finished.
	AddPoint(p geometry.Point) ([]geometry.Point, bool)
	// UpdatePreview redraws the rubber band from the last vertex to p
	// without touching the committed points.
	UpdatePreview(p geometry.Point)
	// RemoveLastPoint drops the most recent vertex together with its
	// visuals, reporting whether there was one.
	RemoveLastPoint() bool
	// Complete finishes the trace. With fewer than three vertices it
	// behaves as Cancel and reports false.
	Complete() ([]geometry.Point, bool)
}

var (
	_ VertexSession = (*Polygonal)(nil)
	_ VertexSession = (*Magnetic)(nil)
	_ Session       = (*Freehand)(nil)
)

// MinPoints is the smallest number of points a completed trace may have.
const MinPoints = 3
