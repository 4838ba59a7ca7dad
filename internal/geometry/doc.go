// Package geometry provides the stateless point math shared by the lasso tools.
//
// All coordinates are canvas-space floats with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward. Canvas space and source
// image pixel space coincide: pixel (x, y) of an edge map is queried at
// Point{X: x, Y: y}.
//
// # Smoothing
//
// Smooth resamples a coarse point list with a cardinal spline. At the default
// tension of 0.5 the spline is the classic Catmull-Rom curve. The curve passes
// through every input point, so the bounding box of the smoothed list always
// contains the bounding box of the raw list.
package geometry
