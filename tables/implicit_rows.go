package tables

import (
	"image"
	"sort"

	"github.com/tsawler/gridscan/internal/imgproc"
	"github.com/tsawler/gridscan/model"
)

// whiteLevel is the gray value above which a pixel counts as blank when
// checking a row separator.
const whiteLevel = 200

// HandleImplicitRows splits table rows holding several lines of text with no
// rule between them. img is the page image with the detected lines erased;
// a row is only split along a horizontal band of img that is blank across
// the whole row. The input tables are not modified.
func HandleImplicitRows(img *image.Gray, tables []*model.Table, contours []model.Cell) []*model.Table {
	out := make([]*model.Table, 0, len(tables))
	for _, t := range tables {
		out = append(out, splitTable(img, t, contours))
	}
	return out
}

func splitTable(img *image.Gray, t *model.Table, contours []model.Cell) *model.Table {
	table := t.Clone()
	var rows []model.Row
	for _, row := range table.Items {
		rows = append(rows, splitRow(img, row, contours)...)
	}
	table.Items = rows
	if len(table.Content) != len(rows) {
		table.Content = nil
	}
	return table
}

// splitRow returns the rows obtained by cutting row between its text lines.
// Cells taller than the row (merged vertically with other rows) are repeated
// in every resulting row.
func splitRow(img *image.Gray, row model.Row, contours []model.Cell) []model.Row {
	if len(row.Items) == 0 {
		return []model.Row{row}
	}

	top, bottom := row.Items[0].Y1, row.Items[0].Y2
	for _, c := range row.Items[1:] {
		top, bottom = max(top, c.Y1), min(bottom, c.Y2)
	}
	if bottom <= top {
		return []model.Row{row}
	}
	bbox := row.BBox()

	var inside []model.Cell
	for _, c := range contours {
		if c.Y1 >= top && c.Y2 <= bottom && c.X2 > bbox.X1 && c.X1 < bbox.X2 {
			inside = append(inside, c)
		}
	}

	groups := textLines(inside)
	if len(groups) < 2 {
		return []model.Row{row}
	}

	cuts := []int{top}
	for i := 0; i+1 < len(groups); i++ {
		if y, ok := blankRow(img, bbox.X1, bbox.X2, groups[i].Y2, groups[i+1].Y1); ok {
			cuts = append(cuts, y)
		}
	}
	cuts = append(cuts, bottom)
	if len(cuts) == 2 {
		return []model.Row{row}
	}

	rows := make([]model.Row, 0, len(cuts)-1)
	for i := 0; i+1 < len(cuts); i++ {
		items := make([]model.Cell, len(row.Items))
		for j, c := range row.Items {
			if c.Y1 == top && c.Y2 == bottom {
				c.Y1, c.Y2 = cuts[i], cuts[i+1]
			}
			items[j] = c
		}
		rows = append(rows, model.Row{Items: items})
	}
	return rows
}

// textLines merges contours overlapping vertically into text lines, sorted
// top to bottom.
func textLines(contours []model.Cell) []model.Cell {
	sorted := append([]model.Cell(nil), contours...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Y1 < sorted[j].Y1 })

	var groups []model.Cell
	for _, c := range sorted {
		if n := len(groups); n > 0 && c.Y1 < groups[n-1].Y2 {
			groups[n-1] = groups[n-1].Union(c)
			continue
		}
		groups = append(groups, c)
	}
	return groups
}

// blankRow returns the pixel row of [y1, y2) closest to its middle that is
// blank between x1 and x2.
func blankRow(img *image.Gray, x1, x2, y1, y2 int) (int, bool) {
	mid := (y1 + y2) / 2
	best, found := 0, false
	for y := y1; y < y2; y++ {
		if !isBlank(img, x1, x2, y) {
			continue
		}
		if !found || abs(y-mid) < abs(best-mid) {
			best, found = y, true
		}
	}
	return best, found
}

func isBlank(img *image.Gray, x1, x2, y int) bool {
	for x := x1; x < x2; x++ {
		if imgproc.At(img, x, y) <= whiteLevel {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
