package draw

import (
	"image"
	"image/color"
)

// Line draws a line between two points.
func Line(dst Image, a, b image.Point, c color.Color) {
	bresenham(dst, a.X, a.Y, b.X, b.Y, c)
}

// HorizontalLine draws a line between (x,y) and (x+w-1,y).
func HorizontalLine(dst Image, x, y, w int, c color.Color) {
	if w <= 0 {
		return
	}
	bresenham(dst, x, y, x+w-1, y, c)
}

// VerticalLine draws a line between (x,y) and (x,y+h-1).
func VerticalLine(dst Image, x, y, h int, c color.Color) {
	if h <= 0 {
		return
	}
	bresenham(dst, x, y, x, y+h-1, c)
}

// Rectangle draws the outline of rect, Max excluded.
func Rectangle(dst Image, rect image.Rectangle, c color.Color) {
	rect = rect.Canon()
	if rect.Empty() {
		return
	}
	var (
		w = rect.Dx()
		h = rect.Dy()
	)
	HorizontalLine(dst, rect.Min.X, rect.Min.Y, w, c)
	HorizontalLine(dst, rect.Min.X, rect.Max.Y-1, w, c)
	VerticalLine(dst, rect.Min.X, rect.Min.Y, h, c)
	VerticalLine(dst, rect.Max.X-1, rect.Min.Y, h, c)
}

// RoundedRectangle draws a rectangle with radius pixels rounded corners.
func RoundedRectangle(dst Image, rect image.Rectangle, radius int, c color.Color) {
	rect = rect.Canon()
	var (
		r = radius
		x = rect.Min.X
		y = rect.Min.Y
		w = rect.Dx()
		h = rect.Dy()
	)
	if limit := min(w, h) / 2; r > limit {
		r = limit
	}
	if r <= 0 {
		Rectangle(dst, rect, c)
		return
	}
	HorizontalLine(dst, x+r, y, w-2*r, c)
	HorizontalLine(dst, x+r, y+h-1, w-2*r, c)
	VerticalLine(dst, x, y+r, h-2*r, c)
	VerticalLine(dst, x+w-1, y+r, h-2*r, c)
	roundedCorner(dst, x+r, y+r, r, cornerTopLeft, c)
	roundedCorner(dst, x+w-r-1, y+r, r, cornerTopRight, c)
	roundedCorner(dst, x+w-r-1, y+h-r-1, r, cornerBottomRight, c)
	roundedCorner(dst, x+r, y+h-r-1, r, cornerBottomLeft, c)
}

const (
	cornerTopLeft = 1 << iota
	cornerTopRight
	cornerBottomRight
	cornerBottomLeft
)

// roundedCorner plots one quadrant of a midpoint circle centered at (x0,y0).
func roundedCorner(dst Image, x0, y0, radius, quadrant int, c color.Color) {
	var (
		f    = 1 - radius
		ddFx = 1
		ddFy = -2 * radius
		x    = 0
		y    = radius
	)
	plot := func(dx, dy int) {
		switch quadrant {
		case cornerTopLeft:
			dst.Set(x0-dx, y0-dy, c)
		case cornerTopRight:
			dst.Set(x0+dx, y0-dy, c)
		case cornerBottomRight:
			dst.Set(x0+dx, y0+dy, c)
		case cornerBottomLeft:
			dst.Set(x0-dx, y0+dy, c)
		}
	}
	plot(0, radius)
	plot(radius, 0)
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		plot(x, y)
		plot(y, x)
	}
}

// bresenham plots an integer line, both end points included.
func bresenham(dst Image, x1, y1, x2, y2 int, c color.Color) {
	dx := x2 - x1
	if dx < 0 {
		dx = -dx
	}
	dy := y2 - y1
	if dy > 0 {
		dy = -dy
	}
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	e := dx + dy
	for {
		dst.Set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}
