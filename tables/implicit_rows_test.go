package tables

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/gridscan/internal/imgproc"
	"github.com/tsawler/gridscan/model"
)

// twoLineTable returns a one-row table of two 100x60 cells and the contours
// of two text lines in each cell, drawn on a white image.
func twoLineTable() (*image.Gray, *model.Table, []model.Cell) {
	img := imgproc.NewWhite(200, 120)
	contours := []model.Cell{
		{X1: 10, Y1: 5, X2: 40, Y2: 15},
		{X1: 110, Y1: 5, X2: 140, Y2: 15},
		{X1: 10, Y1: 35, X2: 40, Y2: 45},
		{X1: 110, Y1: 35, X2: 140, Y2: 45},
	}
	for _, c := range contours {
		imgproc.FillRect(img, c.Rect(), 0)
	}
	table := model.NewTable(model.NewRow(
		model.Cell{X1: 0, Y1: 0, X2: 100, Y2: 60},
		model.Cell{X1: 100, Y1: 0, X2: 200, Y2: 60},
	))
	return img, table, contours
}

func TestHandleImplicitRowsSplitsTextLines(t *testing.T) {
	img, table, contours := twoLineTable()

	got := HandleImplicitRows(img, []*model.Table{table}, contours)

	require.Len(t, got, 1)
	require.Equal(t, 2, got[0].NbRows())
	assert.Equal(t, []model.Cell{{X1: 0, Y1: 0, X2: 100, Y2: 25}, {X1: 100, Y1: 0, X2: 200, Y2: 25}}, got[0].Items[0].Items)
	assert.Equal(t, []model.Cell{{X1: 0, Y1: 25, X2: 100, Y2: 60}, {X1: 100, Y1: 25, X2: 200, Y2: 60}}, got[0].Items[1].Items)

	assert.Equal(t, 1, table.NbRows(), "input table is not modified")
}

func TestHandleImplicitRowsNeedsBlankSeparator(t *testing.T) {
	img, table, contours := twoLineTable()
	imgproc.FillRect(img, image.Rect(60, 10, 62, 40), 0)

	got := HandleImplicitRows(img, []*model.Table{table}, contours)

	assert.Equal(t, 1, got[0].NbRows())
}

func TestHandleImplicitRowsSingleLine(t *testing.T) {
	img, table, contours := twoLineTable()

	got := HandleImplicitRows(img, []*model.Table{table}, contours[:2])

	assert.Equal(t, 1, got[0].NbRows())
}

func TestHandleImplicitRowsRepeatsMergedCells(t *testing.T) {
	img, _, contours := twoLineTable()
	tall := model.Cell{X1: 100, Y1: 0, X2: 200, Y2: 120}
	table := model.NewTable(
		model.NewRow(model.Cell{X1: 0, Y1: 0, X2: 100, Y2: 60}, tall),
		model.NewRow(model.Cell{X1: 0, Y1: 60, X2: 100, Y2: 120}, tall),
	)

	got := HandleImplicitRows(img, []*model.Table{table}, contours)

	require.Equal(t, 3, got[0].NbRows())
	assert.Equal(t, tall, got[0].Items[0].Items[1])
	assert.Equal(t, tall, got[0].Items[1].Items[1])
	assert.Equal(t, model.Cell{X1: 0, Y1: 25, X2: 100, Y2: 60}, got[0].Items[1].Items[0])
}

func TestHandleImplicitRowsEmpty(t *testing.T) {
	got := HandleImplicitRows(imgproc.NewWhite(10, 10), nil, nil)
	assert.Empty(t, got)
}

func TestTextLines(t *testing.T) {
	groups := textLines([]model.Cell{
		{X1: 0, Y1: 40, X2: 10, Y2: 50},
		{X1: 0, Y1: 0, X2: 10, Y2: 10},
		{X1: 50, Y1: 5, X2: 60, Y2: 12},
	})

	assert.Equal(t, []model.Cell{
		{X1: 0, Y1: 0, X2: 60, Y2: 12},
		{X1: 0, Y1: 40, X2: 10, Y2: 50},
	}, groups)
}
