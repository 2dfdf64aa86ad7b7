// Package cells builds the cells of bordered tables from detected lines.
package cells

import (
	"sort"

	"github.com/tsawler/gridscan/model"
)

// margin is the distance in pixels within which a line end is considered to
// reach another line.
const margin = 5

// GetCells returns the cells delimited by the given horizontal and vertical
// lines. A cell is the area between two horizontal lines and two vertical
// lines crossing both of them, provided no other horizontal line splits it.
// Cells spanning several rows or columns are returned once, at their full
// extent. The result holds no duplicates.
func GetCells(horizontal, vertical []model.Line) []model.Cell {
	if len(horizontal) < 2 || len(vertical) < 2 {
		return nil
	}

	hs := append([]model.Line(nil), horizontal...)
	sort.SliceStable(hs, func(i, j int) bool { return hs[i].Y1 < hs[j].Y1 })

	set := model.NewCellSet()
	for i, top := range hs {
		for j := i + 1; j < len(hs); j++ {
			bottom := hs[j]
			if bottom.Y1-top.Y1 <= margin {
				continue
			}

			xs := crossings(top, bottom, vertical)
			for k := 0; k+1 < len(xs); k++ {
				if splitBetween(hs[i+1:j], top.Y1, bottom.Y1, xs[k], xs[k+1]) {
					continue
				}
				set.Add(model.Cell{X1: xs[k], Y1: top.Y1, X2: xs[k+1], Y2: bottom.Y1})
			}
		}
	}
	return set.Cells()
}

// crossings returns the sorted X positions of the vertical lines spanning
// from top to bottom within both lines' horizontal extent. Positions closer
// than margin are merged.
func crossings(top, bottom model.Line, vertical []model.Line) []int {
	left := max(min(top.X1, top.X2), min(bottom.X1, bottom.X2)) - margin
	right := min(max(top.X1, top.X2), max(bottom.X1, bottom.X2)) + margin

	var xs []int
	for _, v := range vertical {
		y1, y2 := min(v.Y1, v.Y2), max(v.Y1, v.Y2)
		if v.X1 < left || v.X1 > right {
			continue
		}
		if y1 > top.Y1+margin || y2 < bottom.Y1-margin {
			continue
		}
		xs = append(xs, v.X1)
	}
	sort.Ints(xs)

	out := xs[:0]
	for _, x := range xs {
		if len(out) > 0 && x-out[len(out)-1] <= margin {
			continue
		}
		out = append(out, x)
	}
	return out
}

// splitBetween reports whether one of the lines lies strictly between y1 and
// y2 and covers [x1, x2].
func splitBetween(lines []model.Line, y1, y2, x1, x2 int) bool {
	for _, l := range lines {
		if l.Y1-y1 <= margin || y2-l.Y1 <= margin {
			continue
		}
		if min(l.X1, l.X2) <= x1+margin && max(l.X1, l.X2) >= x2-margin {
			return true
		}
	}
	return false
}
