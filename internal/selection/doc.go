// Package selection holds the durable output of a completed lasso trace.
//
// A Region is the sole handoff point between the lasso tools and the rest of
// an application: an opaque id, the tight bounding box of the traced outline
// in canvas coordinates, the outline itself (optional) and a caller-owned
// PermissionTag that this package never interprets.
//
// Regions are immutable. Edits such as moving a region produce a new Region
// with a new id.
//
// # Pixel Extraction
//
// Extract cuts the region's pixels out of the source image. Canvas space is
// image pixel space, with pixel (x, y) centred on the point (x, y). Pixels
// outside the outline are made fully transparent.
//
// Converting a box into percentages of the media dimensions, or any other
// normalised format, is the caller's concern.
package selection
