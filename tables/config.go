package tables

import (
	"fmt"
	"image"

	"github.com/tsawler/gridscan/model"
)

// Detector is the interface for borderless table detection algorithms
type Detector interface {
	// Detect finds tables in a page
	Detect(page Page) []*model.Table

	// Name returns the detector name
	Name() string

	// Configure sets detector parameters
	Configure(config Config) error
}

// IdentifyFunc is the borderless identification step of the extraction
// pipeline.
type IdentifyFunc func(thresh *image.Gray, charLength, medianLineSep float64, lines []model.Line, contours []model.Cell, existing []*model.Table) []*model.Table

// Identifier runs d as the borderless identification step.
func Identifier(d Detector) IdentifyFunc {
	return func(thresh *image.Gray, charLength, medianLineSep float64, lines []model.Line, contours []model.Cell, existing []*model.Table) []*model.Table {
		return d.Detect(Page{
			Thresh:        thresh,
			CharLength:    charLength,
			MedianLineSep: medianLineSep,
			Lines:         lines,
			Contours:      contours,
			Existing:      existing,
		})
	}
}

// Page holds what a detector knows about a page image.
type Page struct {
	// Binary image of the bordered pass, ink is foreground. Glyphs have
	// been filtered out of it, so text positions come from Contours. A page
	// without it has not been through the bordered pass and is skipped.
	Thresh *image.Gray

	CharLength    float64
	MedianLineSep float64

	Lines    []model.Line
	Contours []model.Cell

	// Tables already found on the page. Detectors skip their area.
	Existing []*model.Table
}

// Config holds detector configuration
type Config struct {
	// Minimum rows for a valid table
	MinRows int

	// Minimum columns for a valid table
	MinCols int

	// Minimum confidence threshold (0-1)
	MinConfidence float64

	// Tolerance for row/column alignment (pixels)
	AlignmentTolerance float64

	// Minimum width of a whitespace column separating two table columns,
	// in character lengths
	MinBorderlessGap float64
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		MinRows:            2,
		MinCols:            3,
		MinConfidence:      0.5,
		AlignmentTolerance: 5.0,
		MinBorderlessGap:   2.0,
	}
}

// Validate checks that the configuration values are usable.
func (c Config) Validate() error {
	if c.MinRows < 1 || c.MinCols < 1 {
		return fmt.Errorf("invalid table size %dx%d", c.MinRows, c.MinCols)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min confidence %v out of range [0, 1]", c.MinConfidence)
	}
	if c.AlignmentTolerance < 0 || c.MinBorderlessGap < 0 {
		return fmt.Errorf("tolerances must not be negative")
	}
	return nil
}
