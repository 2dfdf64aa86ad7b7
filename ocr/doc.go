// Package ocr attaches recognized text to reconstructed tables.
//
// Words come from hOCR documents, the HTML output format of Tesseract. They
// can be produced by the Tesseract client of this package, which wraps the
// engine via gosseract and requires the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Without the tag every Client operation returns ErrOCRNotEnabled. Parsing
// hOCR and attaching words to tables work in both builds.
package ocr
