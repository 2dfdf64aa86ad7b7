package tableimage

import (
	"image"

	"github.com/tsawler/gridscan/cells"
	"github.com/tsawler/gridscan/lines"
	"github.com/tsawler/gridscan/metrics"
	"github.com/tsawler/gridscan/model"
	"github.com/tsawler/gridscan/tables"
)

// Stages holds the processing steps used by a TableImage. A nil field falls
// back to the default implementation.
type Stages struct {
	// Prepare normalizes the page background. It must be idempotent.
	Prepare func(img *image.Gray) *image.Gray

	// ComputeMetrics measures the scale and the text contours of a page
	ComputeMetrics func(img *image.Gray) metrics.Metrics

	// ThresholdDarkAreas binarizes the page, ink is foreground
	ThresholdDarkAreas func(img *image.Gray, charLength float64) *image.Gray

	// FilterLines removes from the binary image what cannot be a rule
	FilterLines func(thresh *image.Gray, charLength float64) *image.Gray

	// DetectLines finds the horizontal and vertical rules of the binary image
	DetectLines func(thresh *image.Gray, contours []model.Cell, charLength float64, p lines.Params) (h, v []model.Line)

	// GetCells builds the cells enclosed by the rules
	GetCells func(h, v []model.Line) []model.Cell

	// GetTables groups cells into tables, keeping those holding an element
	GetTables func(cells, elements []model.Cell, lines []model.Line, charLength float64) []*model.Table

	// HandleImplicitRows splits rows on the page image with the rules erased
	HandleImplicitRows func(img *image.Gray, tables []*model.Table, contours []model.Cell) []*model.Table

	// IdentifyBorderless finds tables without rules outside the existing
	// tables
	IdentifyBorderless tables.IdentifyFunc
}

// DefaultStages returns the default implementation of every step.
func DefaultStages() Stages {
	return Stages{
		Prepare:            metrics.PrepareImage,
		ComputeMetrics:     metrics.ComputeImgMetrics,
		ThresholdDarkAreas: lines.ThresholdDarkAreas,
		FilterLines:        lines.FilterLines,
		DetectLines:        lines.DetectLines,
		GetCells:           cells.GetCells,
		GetTables:          tables.GetTables,
		HandleImplicitRows: tables.HandleImplicitRows,
		IdentifyBorderless: tables.IdentifyBorderlessTables,
	}
}

// withDefaults returns s with every nil step replaced by its default
func (s Stages) withDefaults() Stages {
	d := DefaultStages()
	if s.Prepare == nil {
		s.Prepare = d.Prepare
	}
	if s.ComputeMetrics == nil {
		s.ComputeMetrics = d.ComputeMetrics
	}
	if s.ThresholdDarkAreas == nil {
		s.ThresholdDarkAreas = d.ThresholdDarkAreas
	}
	if s.FilterLines == nil {
		s.FilterLines = d.FilterLines
	}
	if s.DetectLines == nil {
		s.DetectLines = d.DetectLines
	}
	if s.GetCells == nil {
		s.GetCells = d.GetCells
	}
	if s.GetTables == nil {
		s.GetTables = d.GetTables
	}
	if s.HandleImplicitRows == nil {
		s.HandleImplicitRows = d.HandleImplicitRows
	}
	if s.IdentifyBorderless == nil {
		s.IdentifyBorderless = d.IdentifyBorderless
	}
	return s
}
