package tables

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/gridscan/model"
)

func hline(y, x1, x2 int) model.Line { return model.Line{X1: x1, Y1: y, X2: x2, Y2: y, Thickness: 1} }
func vline(x, y1, y2 int) model.Line { return model.Line{X1: x, Y1: y1, X2: x, Y2: y2, Thickness: 1} }

// grid2x2 is a cluster of 4 cells at x in {0, 50, 100} and y in {0, 30, 60}.
func grid2x2() []model.Cell {
	return []model.Cell{
		{X1: 0, Y1: 0, X2: 50, Y2: 30},
		{X1: 50, Y1: 0, X2: 100, Y2: 30},
		{X1: 0, Y1: 30, X2: 50, Y2: 60},
		{X1: 50, Y1: 30, X2: 100, Y2: 60},
	}
}

func totalArea(cells []model.Cell) int {
	n := 0
	for _, c := range cells {
		n += c.Area()
	}
	return n
}

func TestAddSemiBorderedCellsEmptyCluster(t *testing.T) {
	assert.Nil(t, AddSemiBorderedCells(nil, []model.Line{hline(0, 0, 100)}, 8))
}

func TestAddSemiBorderedCellsNoLines(t *testing.T) {
	got := AddSemiBorderedCells(grid2x2(), nil, 8)
	assert.Equal(t, grid2x2(), got)
}

func TestAddSemiBorderedCellsFullFrame(t *testing.T) {
	cluster := []model.Cell{
		{X1: 0, Y1: 0, X2: 100, Y2: 50},
		{X1: 100, Y1: 0, X2: 200, Y2: 50},
		{X1: 0, Y1: 50, X2: 100, Y2: 100},
		{X1: 100, Y1: 50, X2: 200, Y2: 100},
	}
	// Tolerances are 5% of the span: 5 px vertically, 10 px horizontally
	lines := []model.Line{
		hline(-5, -10, 210),
		hline(105, -10, 210),
		vline(-10, -5, 105),
		vline(210, -5, 105),
	}

	got := AddSemiBorderedCells(cluster, lines, 8)

	bbox, ok := model.BoundingBox(got)
	require.True(t, ok)
	assert.Equal(t, model.Cell{X1: -10, Y1: -5, X2: 210, Y2: 105}, bbox, "extent is the union of the four lines")
	assert.Len(t, got, 16, "the frame closes into a 4x4 tiling")
	assert.Equal(t, 220*110, totalArea(got), "cells tile the extent without overlap")
	assert.Equal(t, cluster, got[:4], "cluster cells come first")

	for _, c := range got[4:] {
		switch {
		case c.X2 == 0:
			assert.Equal(t, -10, c.X1, "left strip width")
		case c.X1 == 200:
			assert.Equal(t, 210, c.X2, "right strip width")
		case c.Y2 == 0:
			assert.Equal(t, -5, c.Y1, "top strip height")
		case c.Y1 == 100:
			assert.Equal(t, 105, c.Y2, "bottom strip height")
		default:
			t.Errorf("unexpected cell %+v", c)
		}
	}
}

func TestAddSemiBorderedCellsPartialFrame(t *testing.T) {
	// The horizontal line is 5 px above the cluster, beyond the 3 px
	// tolerance of a 60 px high cluster: only the vertical line borders it.
	lines := []model.Line{
		hline(-5, -10, 110),
		vline(-5, -10, 70),
	}

	got := AddSemiBorderedCells(grid2x2(), lines, 8)

	want := append(grid2x2(),
		// left strip
		model.Cell{X1: -5, Y1: -10, X2: 0, Y2: 0},
		model.Cell{X1: -5, Y1: 0, X2: 0, Y2: 30},
		model.Cell{X1: -5, Y1: 30, X2: 0, Y2: 60},
		model.Cell{X1: -5, Y1: 60, X2: 0, Y2: 70},
		// top strip
		model.Cell{X1: 0, Y1: -10, X2: 50, Y2: 0},
		model.Cell{X1: 50, Y1: -10, X2: 100, Y2: 0},
		// bottom strip
		model.Cell{X1: 0, Y1: 60, X2: 50, Y2: 70},
		model.Cell{X1: 50, Y1: 60, X2: 100, Y2: 70},
	)
	assert.Equal(t, want, got)

	for _, c := range got {
		assert.Less(t, c.X1, 100, "no strip right of the cluster: %+v", c)
	}
}

func TestAddSemiBorderedCellsCandidateCriteria(t *testing.T) {
	tests := []struct {
		name   string
		line   model.Line
		border bool
	}{
		{"horizontal on top edge", hline(0, 0, 100), true},
		{"horizontal at tolerance", hline(-3, 0, 100), true},
		{"horizontal beyond tolerance", hline(-4, 0, 100), false},
		{"horizontal on inner edge", hline(32, 0, 100), true},
		{"horizontal too short", hline(-2, 0, 79), false},
		{"horizontal at 80 percent", hline(-2, 20, 100), true},
		{"vertical on left edge", vline(-5, 0, 60), true},
		{"vertical beyond tolerance", vline(-6, 0, 60), false},
		{"vertical too short", vline(-2, 0, 47), false},
	}

	bbox := model.Cell{X1: 0, Y1: 0, X2: 100, Y2: 60}
	xs, ys := edgeValues(grid2x2())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.border, bordersCluster(tt.line, bbox, xs, ys))
		})
	}
}

func TestAddSemiBorderedCellsDropsTinyCells(t *testing.T) {
	cluster := []model.Cell{
		{X1: 0, Y1: 0, X2: 100, Y2: 60},
		{X1: 0, Y1: 60, X2: 4, Y2: 65}, // area 20
	}
	lines := []model.Line{vline(-2, 0, 65)}

	got := AddSemiBorderedCells(cluster, lines, 8)

	for _, c := range got {
		assert.Greater(t, c.Area(), 20, "%+v", c)
	}
	assert.NotContains(t, got, cluster[1])
}

func TestAddSemiBorderedCellsProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 200; iter++ {
		var cluster []model.Cell
		for i := 0; i < 1+rng.Intn(6); i++ {
			x, y := rng.Intn(200), rng.Intn(200)
			cluster = append(cluster, model.Cell{X1: x, Y1: y, X2: x + 1 + rng.Intn(80), Y2: y + 1 + rng.Intn(80)})
		}
		var lines []model.Line
		for i := 0; i < rng.Intn(6); i++ {
			a, b := rng.Intn(300)-50, rng.Intn(300)-50
			lo, hi := rng.Intn(150)-50, 150+rng.Intn(150)
			if rng.Intn(2) == 0 {
				lines = append(lines, hline(a, lo, hi))
			} else {
				lines = append(lines, vline(b, lo, hi))
			}
		}

		got := AddSemiBorderedCells(cluster, lines, 8)

		seen := make(map[model.Cell]bool)
		for _, c := range got {
			require.False(t, seen[c], "duplicate cell %+v", c)
			seen[c] = true
			require.Greater(t, c.Area(), 20)
			require.Less(t, c.X1, c.X2)
			require.Less(t, c.Y1, c.Y2)
		}
		for _, c := range cluster {
			if c.Area() > 20 {
				require.True(t, seen[c], "input cell %+v missing", c)
			}
		}
	}
}
