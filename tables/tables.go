package tables

import (
	"github.com/tsawler/gridscan/internal/log"
	"github.com/tsawler/gridscan/model"
)

// GetTables builds bordered tables from cells. Cells are clustered,
// each cluster is completed with the lines bordering it and laid out as a
// table. When elements are given, tables containing none of them are
// dropped.
func GetTables(cells, elements []model.Cell, lines []model.Line, charLength float64) []*model.Table {
	var tables []*model.Table
	for _, cluster := range clusterCells(cells) {
		completed := AddSemiBorderedCells(cluster, lines, charLength)
		table := clusterToTable(completed)
		if table == nil {
			continue
		}
		if len(elements) > 0 && !containsElement(table, elements) {
			log.Debugf("dropping table %v without content", table.BBox())
			continue
		}
		tables = append(tables, table)
	}
	return tables
}

// containsElement reports whether the center of one of the elements lies
// inside the table.
func containsElement(t *model.Table, elements []model.Cell) bool {
	bbox := t.BBox()
	for _, e := range elements {
		if bbox.ContainsPoint(e.Center()) {
			return true
		}
	}
	return false
}
