package tables

import (
	"math"
	"sort"

	"github.com/tsawler/gridscan/model"
)

const (
	// boundaryOverlap is the fraction of the cluster span a line must cover
	// to border it.
	boundaryOverlap = 0.8

	// boundaryProximity is the maximum distance between a bordering line and
	// a cell edge, as a fraction of the cluster span across the line.
	boundaryProximity = 0.05

	// minCellArea is the area at or below which a cell is noise
	minCellArea = 20
)

// AddSemiBorderedCells completes a cluster of cells whose outer frame is
// only partly drawn. Lines running along most of the cluster close to one
// of its cell edges are taken as boundaries; the area between the cluster
// and the union of those boundaries is tiled with new cells following the
// cluster's own row and column edges.
//
// The cluster is never shrunk: on a side without a boundary the strip is
// empty. Without any boundary line no cell is added.
// The result holds the cluster cells first, then the left, right, top and
// bottom strips, without duplicates and without cells of area 20 or less.
// charLength is currently unused.
func AddSemiBorderedCells(cluster []model.Cell, lines []model.Line, charLength float64) []model.Cell {
	bbox, ok := model.BoundingBox(cluster)
	if !ok {
		return nil
	}
	xMin, xMax, yMin, yMax := bbox.X1, bbox.X2, bbox.Y1, bbox.Y2

	xs, ys := edgeValues(cluster)

	newXMin, newXMax, newYMin, newYMax := xMin, xMax, yMin, yMax
	var boundary model.Cell
	found := false
	for _, l := range lines {
		if !bordersCluster(l, bbox, xs, ys) {
			continue
		}
		if !found {
			boundary, found = l.BBox(), true
			continue
		}
		boundary = boundary.Union(l.BBox())
	}
	if found {
		newXMin, newXMax = min(boundary.X1, xMin), max(boundary.X2, xMax)
		newYMin, newYMax = min(boundary.Y1, yMin), max(boundary.Y2, yMax)
	}

	xFences := fences(xs, newXMin, newXMax)
	yFences := fences(ys, newYMin, newYMax)

	set := model.NewCellSet(cluster...)
	for i := 0; i+1 < len(yFences); i++ {
		set.Add(model.Cell{X1: newXMin, Y1: yFences[i], X2: xMin, Y2: yFences[i+1]})
	}
	for i := 0; i+1 < len(yFences); i++ {
		set.Add(model.Cell{X1: xMax, Y1: yFences[i], X2: newXMax, Y2: yFences[i+1]})
	}
	for i := 0; i+1 < len(xFences); i++ {
		set.Add(model.Cell{X1: xFences[i], Y1: newYMin, X2: xFences[i+1], Y2: yMin})
	}
	for i := 0; i+1 < len(xFences); i++ {
		set.Add(model.Cell{X1: xFences[i], Y1: yMax, X2: xFences[i+1], Y2: newYMax})
	}

	return set.Filter(func(c model.Cell) bool { return c.Area() > minCellArea }).Cells()
}

// bordersCluster reports whether a line runs along the cluster: it covers
// most of the cluster span and lies close to one of the cell edges.
func bordersCluster(l model.Line, bbox model.Cell, xs, ys []int) bool {
	switch {
	case l.Horizontal():
		x1, x2 := min(l.X1, l.X2), max(l.X1, l.X2)
		overlap := min(x2, bbox.X2) - max(x1, bbox.X1)
		return float64(overlap) >= boundaryOverlap*float64(bbox.Width()) &&
			float64(nearest(l.Y1, ys)) <= boundaryProximity*float64(bbox.Height())
	case l.Vertical():
		y1, y2 := min(l.Y1, l.Y2), max(l.Y1, l.Y2)
		overlap := min(y2, bbox.Y2) - max(y1, bbox.Y1)
		return float64(overlap) >= boundaryOverlap*float64(bbox.Height()) &&
			float64(nearest(l.X1, xs)) <= boundaryProximity*float64(bbox.Width())
	}
	return false
}

// edgeValues returns the distinct X and Y coordinates of the cell edges
func edgeValues(cells []model.Cell) (xs, ys []int) {
	seenX := make(map[int]bool)
	seenY := make(map[int]bool)
	for _, c := range cells {
		for _, x := range [2]int{c.X1, c.X2} {
			if !seenX[x] {
				seenX[x] = true
				xs = append(xs, x)
			}
		}
		for _, y := range [2]int{c.Y1, c.Y2} {
			if !seenY[y] {
				seenY[y] = true
				ys = append(ys, y)
			}
		}
	}
	return xs, ys
}

// nearest returns the distance from v to the closest value
func nearest(v int, values []int) int {
	best := math.MaxInt
	for _, w := range values {
		d := v - w
		if d < 0 {
			d = -d
		}
		best = min(best, d)
	}
	return best
}

// fences returns the sorted distinct values of edges plus lo and hi
func fences(edges []int, lo, hi int) []int {
	out := append([]int{lo, hi}, edges...)
	sort.Ints(out)
	uniq := out[:0]
	for _, v := range out {
		if len(uniq) == 0 || v != uniq[len(uniq)-1] {
			uniq = append(uniq, v)
		}
	}
	return uniq
}
