// Package render rasterises canvas primitives over an image so a client
// without its own drawing surface can see both the in-progress trace and the
// completed outlines.
//
// Strokes are stamped discs along each segment and paths are filled with an
// even-odd scanline pass. An optional coordinate grid, labelled with a tiny
// built-in digit font, helps a caller pick pixel coordinates for the next
// pointer event.
package render
