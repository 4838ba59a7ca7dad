// Package edgemap builds the per-pixel gradient-magnitude index used by the
// magnetic lasso to snap pointer positions onto image edges.
//
// A Map is computed once per source image with a single pass of a 3x3 Sobel
// operator over luminance. After construction it is immutable, so one Map may
// be shared by any number of lasso sessions working on the same image.
//
// # Coordinate System
//
// Queries take canvas-space float coordinates, which coincide with pixel
// coordinates of the source image measured from its top-left corner. Lookups
// use the nearest pixel. Queries outside the image return a zero gradient and
// never fail, because lasso tools query continuously while the pointer moves
// and may stray past the image border.
//
// # Luminance
//
// Two luminance models are available:
//   - LuminanceBT601 (default): 0.299*R + 0.587*G + 0.114*B, computed by
//     imaging.Grayscale
//   - LuminanceLab: CIE L* lightness via go-colorful, which tracks perceived
//     brightness more closely on saturated photographs
//
// # Asynchronous Construction
//
// Decoding an image can take noticeable time. Future wraps construction in a
// goroutine so an editing surface can stay interactive; until the Future
// resolves, its EdgeMap method reports false and callers fall back to
// unsnapped behaviour.
//
// # Error Handling
//
// Construction either yields a complete Map or an error; a Map is never
// partially built. Decode failures wrap ErrDecode, empty images ErrEmptyImage.
package edgemap
