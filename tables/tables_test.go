package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/gridscan/model"
)

// ============================================================================
// clusterCells Tests
// ============================================================================

func TestClusterCells(t *testing.T) {
	far := model.Cell{X1: 500, Y1: 500, X2: 600, Y2: 550}
	cells := append([]model.Cell{far}, grid2x2()...)

	clusters := clusterCells(cells)

	require.Len(t, clusters, 2)
	assert.Equal(t, grid2x2(), clusters[0], "clusters are ordered top to bottom")
	assert.Equal(t, []model.Cell{far}, clusters[1])
}

func TestClusterCellsCornerOnly(t *testing.T) {
	cells := []model.Cell{
		{X1: 0, Y1: 0, X2: 50, Y2: 30},
		{X1: 50, Y1: 30, X2: 100, Y2: 60},
	}
	assert.Len(t, clusterCells(cells), 2)
}

func TestClusterCellsEmpty(t *testing.T) {
	assert.Nil(t, clusterCells(nil))
}

// ============================================================================
// clusterToTable Tests
// ============================================================================

func TestClusterToTable(t *testing.T) {
	table := clusterToTable(grid2x2())

	require.NotNil(t, table)
	assert.Equal(t, 2, table.NbRows())
	assert.Equal(t, 2, table.NbColumns())
	assert.Equal(t, model.Cell{X1: 50, Y1: 30, X2: 100, Y2: 60}, table.Items[1].Items[1])
}

func TestClusterToTableMergedCell(t *testing.T) {
	merged := model.Cell{X1: 0, Y1: 0, X2: 100, Y2: 30}
	cluster := []model.Cell{
		merged,
		{X1: 0, Y1: 30, X2: 50, Y2: 60},
		{X1: 50, Y1: 30, X2: 100, Y2: 60},
	}

	table := clusterToTable(cluster)

	require.Equal(t, 2, table.NbRows())
	assert.Equal(t, []model.Cell{merged, merged}, table.Items[0].Items)
	assert.Len(t, table.Cells(), 3)
}

func TestClusterToTableFillsHoles(t *testing.T) {
	cluster := []model.Cell{
		{X1: 0, Y1: 0, X2: 50, Y2: 30},
		{X1: 50, Y1: 30, X2: 100, Y2: 60},
	}

	table := clusterToTable(cluster)

	require.Equal(t, 2, table.NbRows())
	assert.Equal(t, model.Cell{X1: 50, Y1: 0, X2: 100, Y2: 30}, table.Items[0].Items[1])
}

func TestClusterToTableMergesCloseFences(t *testing.T) {
	cluster := []model.Cell{
		{X1: 0, Y1: 0, X2: 50, Y2: 30},
		{X1: 51, Y1: 0, X2: 100, Y2: 31},
	}

	table := clusterToTable(cluster)
	assert.Equal(t, 1, table.NbRows())
	assert.Equal(t, 2, table.NbColumns())
}

// ============================================================================
// GetTables Tests
// ============================================================================

func TestGetTables(t *testing.T) {
	far := []model.Cell{
		{X1: 500, Y1: 500, X2: 600, Y2: 550},
		{X1: 600, Y1: 500, X2: 700, Y2: 550},
	}
	cells := append(grid2x2(), far...)
	elements := []model.Cell{{X1: 10, Y1: 10, X2: 40, Y2: 20}}

	tables := GetTables(cells, elements, nil, 8)

	require.Len(t, tables, 1, "the table without content is dropped")
	assert.Equal(t, model.Cell{X1: 0, Y1: 0, X2: 100, Y2: 60}, tables[0].BBox())

	tables = GetTables(cells, nil, nil, 8)
	assert.Len(t, tables, 2)
}

func TestGetTablesSemiBordered(t *testing.T) {
	lines := []model.Line{vline(-5, -10, 70)}

	tables := GetTables(grid2x2(), nil, lines, 8)

	require.Len(t, tables, 1)
	assert.Equal(t, model.Cell{X1: -5, Y1: -10, X2: 100, Y2: 70}, tables[0].BBox())
	assert.Equal(t, 4, tables[0].NbRows())
	assert.Equal(t, 3, tables[0].NbColumns())
}

func TestGetTablesNoCells(t *testing.T) {
	assert.Empty(t, GetTables(nil, nil, nil, 0))
}

// ============================================================================
// Config Tests
// ============================================================================

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, 2, c.MinRows)
	assert.Equal(t, 3, c.MinCols)
	assert.NoError(t, c.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no rows", func(c *Config) { c.MinRows = 0 }},
		{"no columns", func(c *Config) { c.MinCols = 0 }},
		{"confidence above one", func(c *Config) { c.MinConfidence = 1.5 }},
		{"negative tolerance", func(c *Config) { c.AlignmentTolerance = -1 }},
		{"negative gap", func(c *Config) { c.MinBorderlessGap = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			assert.Error(t, c.Validate())
		})
	}
}

// ============================================================================
// Utility Tests
// ============================================================================

func TestStats(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.Equal(t, 5.0, mean(values))
	assert.Equal(t, 4.0, variance(values))
	assert.InDelta(t, 0.4, coefficientOfVariation(values), 1e-9)

	assert.Zero(t, mean(nil))
	assert.Zero(t, variance(nil))
	assert.Zero(t, coefficientOfVariation([]float64{3}))
}
