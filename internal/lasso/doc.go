// Package lasso implements the interactive region-selection tools.
//
// Three tools share the Session contract:
//   - Freehand follows the pointer while the button is held and smooths the
//     trace with a Catmull-Rom spline on completion.
//   - Polygonal commits one vertex per click and joins them with straight
//     segments. Its output is not smoothed.
//   - Magnetic behaves like Polygonal but snaps every point onto the
//     strongest nearby image edge and fills each edge between clicks with
//     intermediate snapped points, so the outline hugs real boundaries.
//
// A session draws only transient visual aids (preview strokes, vertex
// markers) onto its canvas.Drawer and removes every one of them when it
// completes or is cancelled. Cancel is idempotent and a no-op on a finished
// session. Completion with fewer than three points is a silent cancel, not
// an error.
//
// Sessions are not safe for concurrent use; pointer events for one session
// arrive in order on one goroutine.
package lasso
