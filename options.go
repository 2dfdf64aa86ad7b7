package gridscan

import (
	"github.com/tsawler/gridscan/ocr"
	"github.com/tsawler/gridscan/tableimage"
	"github.com/tsawler/gridscan/tables"
)

// ExtractOptions holds configuration for table extraction.
type ExtractOptions struct {
	// Pipeline passes
	implicitRows      bool
	borderlessTables  bool
	borderlessHeaders bool
	headerRows        int

	// Borderless detection
	detection tables.Config
	detector  tables.Detector

	// Text attachment
	words         []ocr.Word
	recognizer    ocr.HOCRRecognizer
	minConfidence float64
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		headerRows:    tableimage.DefaultHeaderRows,
		detection:     tables.DefaultConfig(),
		minConfidence: ocr.DefaultMinConfidence,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	if o.words != nil {
		newOpts.words = make([]ocr.Word, len(o.words))
		copy(newOpts.words, o.words)
	}
	return newOpts
}

// attachesText reports whether recognized text goes into the tables
func (o ExtractOptions) attachesText() bool {
	return o.words != nil || o.recognizer != nil
}
