// Package core provides fundamental types and utilities for the terminal
// front end. It contains no external dependencies (especially no Bubble Tea)
// so rendering logic stays pure and testable.
package core

import "math"

// Rect is an axis-aligned cell rectangle.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	return max(lo, min(hi, val))
}

// Viewport maps world coordinates (arena pixels) onto a cell rectangle
// drawn with half-block pixels, two per cell vertically.
type Viewport struct {
	Area   Rect    // target cells
	WorldW float64 // world width mapped onto Area.W columns
	WorldH float64 // world height mapped onto 2*Area.H pixel rows
}

// NewViewport fits a world of w by h into area.
func NewViewport(area Rect, w, h float64) Viewport {
	return Viewport{Area: area, WorldW: w, WorldH: h}
}

// Col returns the screen column of world x.
func (v Viewport) Col(x float64) int {
	if v.WorldW <= 0 {
		return v.Area.X
	}
	c := int(math.Floor(x / v.WorldW * float64(v.Area.W)))
	return v.Area.X + Clamp(c, 0, v.Area.W-1)
}

// PixelRow returns the half-block row of world y, counted from the top of the screen.
func (v Viewport) PixelRow(y float64) int {
	if v.WorldH <= 0 {
		return 2 * v.Area.Y
	}
	rows := 2 * v.Area.H
	r := int(math.Floor(y / v.WorldH * float64(rows)))
	return 2*v.Area.Y + Clamp(r, 0, rows-1)
}

// WorldX converts a screen column back to the world x at the column center.
func (v Viewport) WorldX(col int) float64 {
	if v.Area.W <= 0 {
		return 0
	}
	return (float64(col-v.Area.X) + 0.5) / float64(v.Area.W) * v.WorldW
}

// Span returns the columns [c1, c2] covered by world range [x1, x2).
// A non-empty range always covers at least one column.
func (v Viewport) Span(x1, x2 float64) (int, int) {
	c1 := v.Col(x1)
	c2 := v.Col(math.Nextafter(x2, x1))
	return c1, max(c1, c2)
}

// PixelSpan returns the half-block rows [r1, r2] covered by world range [y1, y2).
func (v Viewport) PixelSpan(y1, y2 float64) (int, int) {
	r1 := v.PixelRow(y1)
	r2 := v.PixelRow(math.Nextafter(y2, y1))
	return r1, max(r1, r2)
}
