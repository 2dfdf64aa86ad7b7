// Package gridscan provides a fluent API for extracting tables from page
// images.
//
// Basic usage:
//
//	tables, err := gridscan.Open("scan.png").Tables()
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	tables, err := gridscan.Open("invoice.tiff").
//	    ImplicitRows().
//	    BorderlessTables().
//	    Tables()
//
// Tables without rules are only searched for when BorderlessTables is set.
// Recognized text can be attached to the table cells with Words or OCR.
//
// For advanced use cases, the lower-level tableimage package is also
// available.
package gridscan

import (
	"image"

	"github.com/tsawler/gridscan/reader"
)

// Open returns an Extractor for an image file. The file is read by the
// first terminal operation.
//
// Example:
//
//	tables, err := gridscan.Open("scan.png").Tables()
func Open(filename string) *Extractor {
	return &Extractor{
		src:     &source{filename: filename},
		options: defaultOptions(),
	}
}

// FromImage returns an Extractor for a decoded image.
//
// Example:
//
//	img, _, err := image.Decode(r)
//	if err != nil {
//	    // handle error
//	}
//	tables, err := gridscan.FromImage(img).Tables()
func FromImage(img image.Image) *Extractor {
	return &Extractor{
		src:     &source{img: img},
		options: defaultOptions(),
	}
}

// FromRaw returns an Extractor for a raw pixel buffer, as delivered by
// scanners or PDF image streams.
func FromRaw(raw *reader.RawImage) *Extractor {
	return &Extractor{
		src:     &source{raw: raw},
		options: defaultOptions(),
	}
}

// New returns an Extractor without a page. It serves as a template for
// ExtractFiles and ExtractImages.
func New() *Extractor {
	return &Extractor{options: defaultOptions()}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	tables := gridscan.Must(gridscan.Open("scan.png").Tables())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
