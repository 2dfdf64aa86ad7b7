package model

// Line represents a detected straight stroke. Lines produced by the
// detectors are axis aligned: horizontal lines have Y1 == Y2 and vertical
// lines have X1 == X2.
type Line struct {
	X1, Y1, X2, Y2 int
	Thickness      int
}

// Horizontal reports whether the line runs along the X axis.
// A zero-length line is considered horizontal.
func (l Line) Horizontal() bool {
	return l.Y1 == l.Y2
}

// Vertical reports whether the line runs along the Y axis.
func (l Line) Vertical() bool {
	return l.X1 == l.X2 && l.Y1 != l.Y2
}

// Length returns the extent of the line along its orientation.
func (l Line) Length() int {
	if l.Horizontal() {
		return abs(l.X2 - l.X1)
	}
	return abs(l.Y2 - l.Y1)
}

// BBox returns the rectangle spanned by the line end points.
func (l Line) BBox() Cell {
	return NewCell(l.X1, l.Y1, l.X2, l.Y2)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
