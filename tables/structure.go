package tables

import (
	"sort"

	"github.com/tsawler/gridscan/model"
)

// fenceMargin is the distance in pixels below which two cell edges are the
// same fence.
const fenceMargin = 2

// clusterToTable lays out the cells of a cluster on a grid. The distinct
// cell edges are the fences of the grid; every slot between consecutive
// fences takes the cell covering it. A merged cell therefore appears in each
// slot it covers, and a slot no cell covers gets a cell of its own.
func clusterToTable(cluster []model.Cell) *model.Table {
	if len(cluster) == 0 {
		return nil
	}

	var xs, ys []int
	for _, c := range cluster {
		xs = append(xs, c.X1, c.X2)
		ys = append(ys, c.Y1, c.Y2)
	}
	xFences := mergeFences(xs)
	yFences := mergeFences(ys)
	if len(xFences) < 2 || len(yFences) < 2 {
		return nil
	}

	rows := make([]model.Row, 0, len(yFences)-1)
	for i := 0; i+1 < len(yFences); i++ {
		items := make([]model.Cell, 0, len(xFences)-1)
		for j := 0; j+1 < len(xFences); j++ {
			slot := model.Cell{X1: xFences[j], Y1: yFences[i], X2: xFences[j+1], Y2: yFences[i+1]}
			items = append(items, coveringCell(cluster, slot))
		}
		rows = append(rows, model.Row{Items: items})
	}
	return model.NewTable(rows...)
}

// mergeFences sorts values and merges those closer than fenceMargin
func mergeFences(values []int) []int {
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	var out []int
	for _, v := range sorted {
		if len(out) > 0 && v-out[len(out)-1] <= fenceMargin {
			continue
		}
		out = append(out, v)
	}
	return out
}

// coveringCell returns the cell covering most of the slot, or the slot
// itself when no cell covers at least half of it.
func coveringCell(cells []model.Cell, slot model.Cell) model.Cell {
	best, bestArea := slot, 0
	for _, c := range cells {
		w := min(c.X2, slot.X2) - max(c.X1, slot.X1)
		h := min(c.Y2, slot.Y2) - max(c.Y1, slot.Y1)
		if w <= 0 || h <= 0 {
			continue
		}
		if a := w * h; a > bestArea {
			best, bestArea = c, a
		}
	}
	if 2*bestArea < slot.Area() {
		return slot
	}
	return best
}
