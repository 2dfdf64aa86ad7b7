package tables

import (
	"sort"

	"github.com/tsawler/gridscan/model"
)

// adjacencyMargin is the distance in pixels within which two cell edges are
// considered shared.
const adjacencyMargin = 2

// clusterCells groups cells that touch or overlap, directly or through other
// cells. Clusters are ordered top to bottom, then left to right, and keep
// the input order of their cells.
func clusterCells(cells []model.Cell) [][]model.Cell {
	if len(cells) == 0 {
		return nil
	}

	parent := make([]int, len(cells))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	for i := range cells {
		for j := i + 1; j < len(cells); j++ {
			if adjacent(cells[i], cells[j]) {
				if a, b := find(i), find(j); a != b {
					parent[b] = a
				}
			}
		}
	}

	index := make(map[int]int)
	var clusters [][]model.Cell
	for i, c := range cells {
		root := find(i)
		k, ok := index[root]
		if !ok {
			k = len(clusters)
			index[root] = k
			clusters = append(clusters, nil)
		}
		clusters[k] = append(clusters[k], c)
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		a, _ := model.BoundingBox(clusters[i])
		b, _ := model.BoundingBox(clusters[j])
		if a.Y1 != b.Y1 {
			return a.Y1 < b.Y1
		}
		return a.X1 < b.X1
	})
	return clusters
}

// adjacent reports whether two cells overlap or share part of an edge.
func adjacent(a, b model.Cell) bool {
	xTouch := a.X1 <= b.X2+adjacencyMargin && b.X1 <= a.X2+adjacencyMargin
	yTouch := a.Y1 <= b.Y2+adjacencyMargin && b.Y1 <= a.Y2+adjacencyMargin
	if !xTouch || !yTouch {
		return false
	}
	// Cells meeting only at a corner are not adjacent
	xOverlap := min(a.X2, b.X2) - max(a.X1, b.X1)
	yOverlap := min(a.Y2, b.Y2) - max(a.Y1, b.Y1)
	return xOverlap > adjacencyMargin || yOverlap > adjacencyMargin
}
