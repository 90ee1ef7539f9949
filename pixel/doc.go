// Package pixel implements a 1-bit color and image library suitable for e-paper panels.
//
// The types in this package are compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces, so decoded bitmaps can be converted to the
// packed layout expected by monochrome panels with the standard drawing primitives.
package pixel
