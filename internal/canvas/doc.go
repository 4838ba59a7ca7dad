// Package canvas defines the drawing surface the selection engine works on.
//
// Host is the capability set a lasso session or editor needs from an
// interactive surface: add and remove drawable primitives, serialise and
// restore the persistent object state, and track the active object. Arena is
// an in-memory Host that keeps primitives in an arena indexed by opaque
// ObjectIDs; callers hold IDs, never references into the arena.
//
// Primitives flagged Transient (preview strokes, vertex markers) are part of
// the visible surface but never part of a serialised snapshot, so undo history
// cannot capture a half-finished trace.
package canvas
