package model

import "image"

// Cell represents an axis-aligned rectangle in pixel coordinates.
// X1 <= X2 and Y1 <= Y2 for well-formed cells.
type Cell struct {
	X1, Y1, X2, Y2 int
}

// NewCell creates a cell from its corner coordinates, ordering them so that
// X1 <= X2 and Y1 <= Y2.
func NewCell(x1, y1, x2, y2 int) Cell {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Cell{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// CellFromRect converts an image.Rectangle to a cell.
func CellFromRect(r image.Rectangle) Cell {
	return Cell{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

// Width returns the horizontal extent of the cell
func (c Cell) Width() int {
	return c.X2 - c.X1
}

// Height returns the vertical extent of the cell
func (c Cell) Height() int {
	return c.Y2 - c.Y1
}

// Area returns (X2-X1)*(Y2-Y1). Inverted cells have a non-positive area.
func (c Cell) Area() int {
	return (c.X2 - c.X1) * (c.Y2 - c.Y1)
}

// Center returns the center of the cell, rounded down.
func (c Cell) Center() image.Point {
	return image.Point{X: (c.X1 + c.X2) / 2, Y: (c.Y1 + c.Y2) / 2}
}

// Shift returns a copy of the cell translated by (dx, dy).
func (c Cell) Shift(dx, dy int) Cell {
	return Cell{X1: c.X1 + dx, Y1: c.Y1 + dy, X2: c.X2 + dx, Y2: c.Y2 + dy}
}

// Union returns the smallest cell containing both cells
func (c Cell) Union(other Cell) Cell {
	return Cell{
		X1: min(c.X1, other.X1),
		Y1: min(c.Y1, other.Y1),
		X2: max(c.X2, other.X2),
		Y2: max(c.Y2, other.Y2),
	}
}

// ContainsPoint reports whether p lies inside the cell, borders included.
func (c Cell) ContainsPoint(p image.Point) bool {
	return p.X >= c.X1 && p.X <= c.X2 && p.Y >= c.Y1 && p.Y <= c.Y2
}

// Contains reports whether other lies entirely inside the cell
func (c Cell) Contains(other Cell) bool {
	return other.X1 >= c.X1 && other.X2 <= c.X2 && other.Y1 >= c.Y1 && other.Y2 <= c.Y2
}

// Overlaps reports whether the interiors of the two cells intersect.
func (c Cell) Overlaps(other Cell) bool {
	return c.X1 < other.X2 && other.X1 < c.X2 && c.Y1 < other.Y2 && other.Y1 < c.Y2
}

// Rect converts the cell to an image.Rectangle.
func (c Cell) Rect() image.Rectangle {
	return image.Rect(c.X1, c.Y1, c.X2, c.Y2)
}

// BoundingBox returns the smallest cell enclosing all given cells.
// The second return value is false when cells is empty.
func BoundingBox(cells []Cell) (Cell, bool) {
	if len(cells) == 0 {
		return Cell{}, false
	}
	bbox := cells[0]
	for _, c := range cells[1:] {
		bbox = bbox.Union(c)
	}
	return bbox, true
}
