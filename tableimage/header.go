package tableimage

import "github.com/tsawler/gridscan/model"

// AddBorderlessHeaders adds n speculative header rows on top of each table.
// A header row is a copy of the current top row moved up by the mean row
// height, where the height of a row is that of its shortest cell. Later
// stages drop the rows that hold no content.
//
// The input tables are not modified; tables without cells are returned as
// copies.
func AddBorderlessHeaders(tables []*model.Table, n int) []*model.Table {
	out := make([]*model.Table, 0, len(tables))
	for _, t := range tables {
		table := t.Clone()
		for i := 0; i < n; i++ {
			gap, ok := rowGap(table.Items)
			if !ok {
				break
			}
			header := table.Items[0].Shift(-gap)
			table.Items = append([]model.Row{header}, table.Items...)
			if table.Content != nil {
				table.Content = append([][]string{make([]string, header.NbColumns())}, table.Content...)
			}
		}
		out = append(out, table)
	}
	return out
}

// rowGap returns the mean over rows of the smallest cell height in the row,
// truncated. Rows without cells are ignored.
func rowGap(rows []model.Row) (int, bool) {
	if len(rows) == 0 || len(rows[0].Items) == 0 {
		return 0, false
	}

	var sum, n int
	for _, r := range rows {
		if len(r.Items) == 0 {
			continue
		}
		h := r.Items[0].Height()
		for _, c := range r.Items[1:] {
			h = min(h, c.Height())
		}
		sum += h
		n++
	}
	return int(float64(sum) / float64(n)), true
}
