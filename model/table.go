package model

// Row represents one structural row of a table. Cells are ordered left to
// right; a merged cell is repeated once per column it spans.
type Row struct {
	Items []Cell
}

// NewRow creates a row from the given cells
func NewRow(cells ...Cell) Row {
	items := make([]Cell, len(cells))
	copy(items, cells)
	return Row{Items: items}
}

// NbColumns returns the number of cells in the row
func (r Row) NbColumns() int {
	return len(r.Items)
}

// BBox returns the bounding box of the row's cells.
func (r Row) BBox() Cell {
	bbox, _ := BoundingBox(r.Items)
	return bbox
}

// Clone returns a deep copy of the row
func (r Row) Clone() Row {
	return NewRow(r.Items...)
}

// Shift returns a copy of the row with every cell moved vertically by dy.
func (r Row) Shift(dy int) Row {
	items := make([]Cell, len(r.Items))
	for i, c := range r.Items {
		items[i] = c.Shift(0, dy)
	}
	return Row{Items: items}
}

// Table represents a table as an ordered list of rows
type Table struct {
	Items []Row
	Title string

	// Content holds the recognized text of each grid slot once OCR words have
	// been attached. Content[i][j] corresponds to Items[i].Items[j].
	Content [][]string
}

// NewTable creates a table from the given rows
func NewTable(rows ...Row) *Table {
	items := make([]Row, len(rows))
	for i, r := range rows {
		items[i] = r.Clone()
	}
	return &Table{Items: items}
}

// NbRows returns the number of rows
func (t *Table) NbRows() int {
	return len(t.Items)
}

// NbColumns returns the maximum number of cells found in a row.
func (t *Table) NbColumns() int {
	n := 0
	for _, r := range t.Items {
		n = max(n, r.NbColumns())
	}
	return n
}

// BBox returns the bounding box of all cells of the table.
func (t *Table) BBox() Cell {
	bbox, _ := BoundingBox(t.Cells())
	return bbox
}

// Cells returns the distinct cells of the table in row order.
func (t *Table) Cells() []Cell {
	set := NewCellSet()
	for _, r := range t.Items {
		for _, c := range r.Items {
			set.Add(c)
		}
	}
	return set.Cells()
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	out := NewTable(t.Items...)
	out.Title = t.Title
	if t.Content != nil {
		out.Content = make([][]string, len(t.Content))
		for i, row := range t.Content {
			out.Content[i] = append([]string(nil), row...)
		}
	}
	return out
}
