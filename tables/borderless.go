package tables

import (
	"image"
	"math"
	"sort"

	"github.com/tsawler/gridscan/internal/log"
	"github.com/tsawler/gridscan/model"
)

// defaultCharLength is used to size whitespace gaps when the character
// length of the page is unknown.
const defaultCharLength = 8.0

// grid holds the fences of a table hypothesis. Rows and Cols are sorted
// ascending.
type grid struct {
	Rows      []int
	Cols      []int
	HasHLines []bool
	HasVLines []bool
}

func (g *grid) rowCount() int { return max(len(g.Rows)-1, 0) }
func (g *grid) colCount() int { return max(len(g.Cols)-1, 0) }

// slot returns the area of the grid cell at (row, col)
func (g *grid) slot(row, col int) model.Cell {
	return model.Cell{X1: g.Cols[col], Y1: g.Rows[row], X2: g.Cols[col+1], Y2: g.Rows[row+1]}
}

var _ Detector = (*BorderlessDetector)(nil)

// BorderlessDetector implements table detection for tables without rules.
// It clusters text contours by vertical proximity, then looks in each
// cluster for whitespace columns running through every text line.
type BorderlessDetector struct {
	config Config
}

// NewBorderlessDetector creates a new borderless table detector with default configuration.
func NewBorderlessDetector() *BorderlessDetector {
	return &BorderlessDetector{
		config: DefaultConfig(),
	}
}

// Name returns the detector's identifier ("borderless").
func (d *BorderlessDetector) Name() string {
	return "borderless"
}

// Configure sets the detector configuration.
func (d *BorderlessDetector) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	d.config = config
	return nil
}

// IdentifyBorderlessTables finds borderless tables with the default
// configuration.
func IdentifyBorderlessTables(thresh *image.Gray, charLength, medianLineSep float64, lines []model.Line, contours []model.Cell, existing []*model.Table) []*model.Table {
	return NewBorderlessDetector().Identify(thresh, charLength, medianLineSep, lines, contours, existing)
}

// Identify is Detect with the page passed as separate values.
func (d *BorderlessDetector) Identify(thresh *image.Gray, charLength, medianLineSep float64, lines []model.Line, contours []model.Cell, existing []*model.Table) []*model.Table {
	return Identifier(d)(thresh, charLength, medianLineSep, lines, contours, existing)
}

// Detect finds borderless tables on a page. Contours inside existing tables
// are ignored. Nothing is detected without a median line separation.
func (d *BorderlessDetector) Detect(page Page) []*model.Table {
	if page.MedianLineSep <= 0 || page.Thresh == nil {
		return nil
	}

	// Step 1: Cluster contours outside existing tables by vertical proximity
	clusters := d.clusterContours(freeContours(page.Contours, page.Existing), page.MedianLineSep)

	var tables []*model.Table

	// Step 2: For each cluster, try to detect table structure
	for _, cluster := range clusters {
		if table := d.detectTableInCluster(cluster, page); table != nil {
			tables = append(tables, table)
		}
	}

	return tables
}

// freeContours returns the contours whose center lies outside every table.
func freeContours(contours []model.Cell, existing []*model.Table) []model.Cell {
	boxes := make([]model.Cell, 0, len(existing))
	for _, t := range existing {
		if t.NbRows() > 0 {
			boxes = append(boxes, t.BBox())
		}
	}

	var out []model.Cell
	for _, c := range contours {
		covered := false
		for _, b := range boxes {
			if b.ContainsPoint(c.Center()) {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, c)
		}
	}
	return out
}

// clusterContours groups contours that are vertically close. Contours
// separated by more than two line separations start new clusters.
func (d *BorderlessDetector) clusterContours(contours []model.Cell, medianLineSep float64) [][]model.Cell {
	if len(contours) == 0 {
		return nil
	}

	sorted := make([]model.Cell, len(contours))
	copy(sorted, contours)

	// Sort by Y position (top to bottom)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y1 < sorted[j].Y1
	})

	maxGap := int(math.Round(2 * medianLineSep))

	var clusters [][]model.Cell
	currentCluster := []model.Cell{sorted[0]}
	bottom := sorted[0].Y2

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Y1-bottom > maxGap {
			clusters = append(clusters, currentCluster)
			currentCluster = []model.Cell{sorted[i]}
		} else {
			currentCluster = append(currentCluster, sorted[i])
		}
		bottom = max(bottom, sorted[i].Y2)
	}

	clusters = append(clusters, currentCluster)
	return clusters
}

// detectTableInCluster attempts to find a table in a cluster of contours.
// It builds a grid, calculates a confidence score and lays out the grid
// slots as table rows.
func (d *BorderlessDetector) detectTableInCluster(contours []model.Cell, page Page) *model.Table {
	if len(contours) < d.config.MinRows*d.config.MinCols {
		return nil
	}

	// Step 1: Build grid from contours and lines
	g := d.buildGrid(contours, page)

	if g == nil || g.rowCount() < d.config.MinRows || g.colCount() < d.config.MinCols {
		return nil
	}

	// Step 2: Calculate confidence score
	confidence := d.calculateConfidence(g, contours)

	if confidence < d.config.MinConfidence {
		log.Debugf("borderless candidate %dx%d rejected, confidence %.2f", g.rowCount(), g.colCount(), confidence)
		return nil
	}

	// Step 3: Lay out slots as rows
	rows := make([]model.Row, g.rowCount())
	for i := range rows {
		items := make([]model.Cell, g.colCount())
		for j := range items {
			items[j] = g.slot(i, j)
		}
		rows[i] = model.Row{Items: items}
	}
	return &model.Table{Items: rows}
}

// buildGrid constructs a grid from text line positions and whitespace
// columns, and detects which fences have visible lines.
func (d *BorderlessDetector) buildGrid(contours []model.Cell, page Page) *grid {
	bbox, _ := model.BoundingBox(contours)

	rows := d.extractRowBoundaries(contours, bbox)
	if len(rows) < d.config.MinRows+1 {
		return nil
	}

	cols := d.extractColumnBoundaries(contours, bbox, page.CharLength)
	if len(cols) < d.config.MinCols+1 {
		return nil
	}

	return &grid{
		Rows:      rows,
		Cols:      cols,
		HasHLines: d.detectHorizontalLines(rows, page.Lines),
		HasVLines: d.detectVerticalLines(cols, page.Lines),
	}
}

// extractRowBoundaries returns the row fences: the top and bottom of the
// cluster and the middle of the space between consecutive text lines.
func (d *BorderlessDetector) extractRowBoundaries(contours []model.Cell, bbox model.Cell) []int {
	textRows := textLines(contours)
	if len(textRows) == 0 {
		return nil
	}

	fences := []int{bbox.Y1}
	for i := 0; i+1 < len(textRows); i++ {
		fences = append(fences, (textRows[i].Y2+textRows[i+1].Y1)/2)
	}
	return append(fences, bbox.Y2)
}

// extractColumnBoundaries returns the column fences: the left and right of
// the cluster and the middle of every run of columns at least
// MinBorderlessGap characters wide that no contour of the cluster covers.
func (d *BorderlessDetector) extractColumnBoundaries(contours []model.Cell, bbox model.Cell, charLength float64) []int {
	if charLength <= 0 {
		charLength = defaultCharLength
	}
	minGap := max(int(math.Round(d.config.MinBorderlessGap*charLength)), 1)

	covered := make([]bool, bbox.Width())
	for _, c := range contours {
		for x := max(c.X1, bbox.X1); x < min(c.X2, bbox.X2); x++ {
			covered[x-bbox.X1] = true
		}
	}

	fences := []int{bbox.X1}
	start := -1
	for i, used := range covered {
		switch {
		case !used && start < 0:
			start = i
		case used && start >= 0:
			if i-start >= minGap && start > 0 {
				fences = append(fences, bbox.X1+(start+i)/2)
			}
			start = -1
		}
	}
	return append(fences, bbox.X2)
}

// detectHorizontalLines determines which row fences have a visible
// horizontal line within the alignment tolerance.
func (d *BorderlessDetector) detectHorizontalLines(rows []int, lines []model.Line) []bool {
	hasLines := make([]bool, len(rows))

	for i, y := range rows {
		for _, line := range lines {
			if line.Horizontal() && math.Abs(float64(line.Y1-y)) < d.config.AlignmentTolerance {
				hasLines[i] = true
				break
			}
		}
	}

	return hasLines
}

// detectVerticalLines determines which column fences have a visible
// vertical line within the alignment tolerance.
func (d *BorderlessDetector) detectVerticalLines(cols []int, lines []model.Line) []bool {
	hasLines := make([]bool, len(cols))

	for i, x := range cols {
		for _, line := range lines {
			if line.Vertical() && math.Abs(float64(line.X1-x)) < d.config.AlignmentTolerance {
				hasLines[i] = true
				break
			}
		}
	}

	return hasLines
}

// calculateConfidence computes a confidence score (0.0-1.0) for the detected table.
// The score combines grid regularity (30%), alignment quality (30%), line presence (20%),
// and cell occupancy (20%).
func (d *BorderlessDetector) calculateConfidence(g *grid, contours []model.Cell) float64 {
	score := 0.0

	// Factor 1: Grid regularity (0-0.3)
	score += d.calculateGridRegularity(g) * 0.3

	// Factor 2: Alignment quality (0-0.3)
	score += d.calculateAlignmentQuality(contours, g) * 0.3

	// Factor 3: Line presence (0-0.2)
	score += d.calculateLineScore(g) * 0.2

	// Factor 4: Cell occupancy (0-0.2)
	score += d.calculateCellOccupancy(contours, g) * 0.2

	return math.Min(1.0, score)
}

// calculateGridRegularity measures how regular the grid is by computing the
// coefficient of variation of row heights and column widths. Lower variance
// results in a higher score.
func (d *BorderlessDetector) calculateGridRegularity(g *grid) float64 {
	if g.rowCount() < 2 || g.colCount() < 2 {
		return 0
	}

	rowHeights := make([]float64, g.rowCount())
	for i := range rowHeights {
		rowHeights[i] = float64(g.Rows[i+1] - g.Rows[i])
	}

	colWidths := make([]float64, g.colCount())
	for i := range colWidths {
		colWidths[i] = float64(g.Cols[i+1] - g.Cols[i])
	}

	rowScore := math.Max(0, 1-coefficientOfVariation(rowHeights))
	colScore := math.Max(0, 1-coefficientOfVariation(colWidths))

	return (rowScore + colScore) / 2
}

// calculateAlignmentQuality measures the fraction of contours that fit in a
// single grid slot without crossing a fence.
func (d *BorderlessDetector) calculateAlignmentQuality(contours []model.Cell, g *grid) float64 {
	if len(contours) == 0 {
		return 0
	}

	alignedCount := 0
	for _, c := range contours {
		row, col := d.findCell(c.Center(), g)
		if row < 0 || col < 0 {
			continue
		}
		slot := g.slot(row, col)
		tol := int(d.config.AlignmentTolerance)
		if c.X1 >= slot.X1-tol && c.X2 <= slot.X2+tol && c.Y1 >= slot.Y1-tol && c.Y2 <= slot.Y2+tol {
			alignedCount++
		}
	}

	return float64(alignedCount) / float64(len(contours))
}

// calculateLineScore measures the fraction of fences that have visible
// lines, averaging horizontal and vertical coverage.
func (d *BorderlessDetector) calculateLineScore(g *grid) float64 {
	if len(g.HasHLines) == 0 || len(g.HasVLines) == 0 {
		return 0
	}

	hScore := float64(countTrue(g.HasHLines)) / float64(len(g.HasHLines))
	vScore := float64(countTrue(g.HasVLines)) / float64(len(g.HasVLines))

	return (hScore + vScore) / 2
}

// calculateCellOccupancy measures the fraction of grid slots that contain
// the center of at least one contour.
func (d *BorderlessDetector) calculateCellOccupancy(contours []model.Cell, g *grid) float64 {
	totalCells := g.rowCount() * g.colCount()
	if totalCells == 0 {
		return 0
	}

	occupied := make(map[[2]int]bool)
	for _, c := range contours {
		row, col := d.findCell(c.Center(), g)
		if row >= 0 && col >= 0 {
			occupied[[2]int{row, col}] = true
		}
	}

	return float64(len(occupied)) / float64(totalCells)
}

// findCell returns the row and column indices of the slot containing the
// given point, or -1 for both if the point is outside the grid.
func (d *BorderlessDetector) findCell(p image.Point, g *grid) (row, col int) {
	row = -1
	col = -1

	for i := 0; i < g.rowCount(); i++ {
		if p.Y >= g.Rows[i] && p.Y <= g.Rows[i+1] {
			row = i
			break
		}
	}

	for i := 0; i < g.colCount(); i++ {
		if p.X >= g.Cols[i] && p.X <= g.Cols[i+1] {
			col = i
			break
		}
	}

	if row < 0 || col < 0 {
		return -1, -1
	}
	return row, col
}

func countTrue(values []bool) int {
	n := 0
	for _, v := range values {
		if v {
			n++
		}
	}
	return n
}
