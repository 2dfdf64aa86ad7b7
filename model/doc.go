// Package model defines the geometric value types produced by table
// reconstruction.
//
// All coordinates are integer pixel positions in the page image, with the
// origin in the upper-left corner and Y growing downwards.
//
// # Cells
//
// A [Cell] is an axis-aligned rectangle. Cells are comparable values: two
// cells with identical coordinates are the same cell, so they can be used as
// map keys. [CellSet] keeps an insertion-ordered, deduplicated collection:
//
//	set := model.NewCellSet(cells...)
//	set.Add(model.Cell{X1: 0, Y1: 0, X2: 10, Y2: 10})
//	unique := set.Cells()
//
// # Lines
//
// A [Line] is a detected stroke with a thickness. Every line is either
// [Line.Horizontal] or [Line.Vertical], never both.
//
// # Tables
//
// A [Table] is an ordered list of [Row] values, each holding the cells of
// one structural row. Merged cells appear once per grid slot they cover, so
// every row of a well-formed table has the same number of items.
//
// Cells, rows and tables are never shifted in place: [Cell.Shift],
// [Row.Shift] and [Table.Clone] return new values.
package model
