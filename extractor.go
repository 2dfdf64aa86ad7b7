package gridscan

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/tsawler/gridscan/config"
	"github.com/tsawler/gridscan/internal/log"
	"github.com/tsawler/gridscan/model"
	"github.com/tsawler/gridscan/ocr"
	"github.com/tsawler/gridscan/reader"
	"github.com/tsawler/gridscan/tableimage"
	"github.com/tsawler/gridscan/tables"
)

// ErrNoSource is returned by terminal operations of an Extractor created
// with New, which has no page.
var ErrNoSource = errors.New("gridscan: no page to extract from")

// source is the page of an Extractor. It is shared by the copies of an
// Extractor and decoded at most once.
type source struct {
	filename string
	img      image.Image
	raw      *reader.RawImage

	once   sync.Once
	loaded image.Image
	err    error
}

func (s *source) load() (image.Image, error) {
	s.once.Do(func() {
		switch {
		case s.raw != nil:
			s.loaded, s.err = s.raw.Image()
			if s.err != nil {
				s.err = fmt.Errorf("failed to convert raw image: %w", s.err)
			}
		case s.filename != "":
			s.loaded, s.err = reader.Open(s.filename)
		default:
			// A nil image is rejected by tableimage.New
			s.loaded = s.img
		}
	})
	return s.loaded, s.err
}

// Extractor provides a fluent interface for extracting tables from a page
// image. Each configuration method returns a new Extractor instance, making
// it safe for concurrent use and allowing method chaining.
type Extractor struct {
	src *source

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		src:     e.src,
		options: e.options.clone(),
		err:     e.err,
	}
}

// withSource returns a copy of the Extractor reading another page
func (e *Extractor) withSource(src *source) *Extractor {
	newExt := e.clone()
	newExt.src = src
	return newExt
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// ImplicitRows splits rows holding several lines of text separated by
// whitespace.
//
// Example:
//
//	tables, err := gridscan.Open("scan.png").ImplicitRows().Tables()
func (e *Extractor) ImplicitRows() *Extractor {
	newExt := e.clone()
	newExt.options.implicitRows = true
	return newExt
}

// BorderlessTables also searches for tables without rules, made of aligned
// blocks of text. It needs a page with several lines of text.
//
// Example:
//
//	tables, err := gridscan.Open("scan.png").BorderlessTables().Tables()
func (e *Extractor) BorderlessTables() *Extractor {
	newExt := e.clone()
	newExt.options.borderlessTables = true
	return newExt
}

// BorderlessHeaders adds header rows on top of bordered tables, for tables
// whose header is not enclosed by rules. Combined with ImplicitRows or Words
// the added rows pick up the text above the table.
func (e *Extractor) BorderlessHeaders() *Extractor {
	newExt := e.clone()
	newExt.options.borderlessHeaders = true
	return newExt
}

// HeaderRows sets the number of header rows added by BorderlessHeaders.
// The default is 1.
func (e *Extractor) HeaderRows(n int) *Extractor {
	newExt := e.clone()
	if n < 0 && newExt.err == nil {
		newExt.err = fmt.Errorf("header rows must be >= 0, got %d", n)
	}
	newExt.options.headerRows = n
	return newExt
}

// Detection replaces the settings of the borderless table detector.
func (e *Extractor) Detection(cfg tables.Config) *Extractor {
	newExt := e.clone()
	if err := cfg.Validate(); err != nil && newExt.err == nil {
		newExt.err = fmt.Errorf("invalid detection settings: %w", err)
	}
	newExt.options.detection = cfg
	return newExt
}

// Detector replaces the borderless table detector. The detector is used as
// given: settings from Detection or Configure do not apply to it. It is
// shared by the pages of ExtractFiles and ExtractImages.
//
// Example:
//
//	d := tables.NewBorderlessDetector()
//	if err := d.Configure(cfg); err != nil {
//	    // handle error
//	}
//	found, err := gridscan.Open("scan.png").BorderlessTables().Detector(d).Tables()
func (e *Extractor) Detector(d tables.Detector) *Extractor {
	newExt := e.clone()
	newExt.options.detector = d
	return newExt
}

// Words attaches recognized words to the cells of the tables found. Words
// are in page coordinates. Multiple calls are cumulative.
//
// Example:
//
//	words, err := ocr.ParseHOCR(doc)
//	if err != nil {
//	    // handle error
//	}
//	tables, err := gridscan.Open("scan.png").Words(words...).Tables()
func (e *Extractor) Words(words ...ocr.Word) *Extractor {
	newExt := e.clone()
	newExt.options.words = append(newExt.options.words, words...)
	if newExt.options.words == nil {
		newExt.options.words = []ocr.Word{}
	}
	return newExt
}

// OCR runs r on the page and attaches the words found to the tables.
//
// Example:
//
//	client, err := ocr.New()
//	if err != nil {
//	    // handle error
//	}
//	defer client.Close()
//	tables, err := gridscan.Open("scan.png").OCR(client).Tables()
func (e *Extractor) OCR(r ocr.HOCRRecognizer) *Extractor {
	newExt := e.clone()
	newExt.options.recognizer = r
	return newExt
}

// MinConfidence sets the confidence, from 0 to 100, below which recognized
// words are ignored. The default is 50.
func (e *Extractor) MinConfidence(c float64) *Extractor {
	newExt := e.clone()
	if (c < 0 || c > 100) && newExt.err == nil {
		newExt.err = fmt.Errorf("min confidence must be between 0 and 100, got %g", c)
	}
	newExt.options.minConfidence = c
	return newExt
}

// Configure applies the extraction, borderless and OCR confidence settings
// of a configuration file. OCR itself is enabled with the OCR method.
func (e *Extractor) Configure(cfg *config.Config) *Extractor {
	newExt := e.clone()
	if err := cfg.Validate(); err != nil {
		if newExt.err == nil {
			newExt.err = fmt.Errorf("invalid configuration: %w", err)
		}
		return newExt
	}

	newExt.options.implicitRows = cfg.Extraction.ImplicitRows
	newExt.options.borderlessTables = cfg.Extraction.BorderlessTables
	newExt.options.borderlessHeaders = cfg.Extraction.BorderlessHeaders
	newExt.options.headerRows = cfg.Extraction.HeaderRows
	newExt.options.detection = cfg.Tables()
	newExt.options.minConfidence = cfg.OCR.MinConfidence
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Page prepares the page for extraction and returns it.
func (e *Extractor) Page() (*tableimage.TableImage, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.src == nil {
		return nil, ErrNoSource
	}

	img, err := e.src.load()
	if err != nil {
		return nil, err
	}

	detector := e.options.detector
	if detector == nil {
		d := tables.NewBorderlessDetector()
		if err := d.Configure(e.options.detection); err != nil {
			return nil, fmt.Errorf("invalid detection settings: %w", err)
		}
		detector = d
	}
	log.Debugf("borderless detector: %s", detector.Name())

	return tableimage.New(img,
		tableimage.WithStages(tableimage.Stages{IdentifyBorderless: tables.Identifier(detector)}),
		tableimage.WithHeaderRows(e.options.headerRows),
	)
}

// Scale returns the character length and line separation measured on the
// page.
func (e *Extractor) Scale() (tableimage.Scale, error) {
	page, err := e.Page()
	if err != nil {
		return tableimage.Scale{}, err
	}
	return page.Scale(), nil
}

// Tables extracts the tables of the page, bordered tables first. With Words
// or OCR the Content of each table is filled.
//
// Example:
//
//	tables, err := gridscan.Open("scan.png").Tables()
//	for _, t := range tables {
//	    fmt.Printf("%d x %d table at %+v\n", t.NbRows(), t.NbColumns(), t.BBox())
//	}
func (e *Extractor) Tables() ([]*model.Table, error) {
	page, err := e.Page()
	if err != nil {
		return nil, err
	}

	o := e.options
	found := page.ExtractTables(o.implicitRows, o.borderlessTables, o.borderlessHeaders)
	log.Debugf("%d tables found", len(found))

	if !o.attachesText() {
		return found, nil
	}

	words := append([]ocr.Word(nil), o.words...)
	if o.recognizer != nil {
		recognized, err := ocr.Recognize(o.recognizer, page.Image())
		if err != nil {
			return nil, fmt.Errorf("failed to recognize text: %w", err)
		}
		log.Debugf("%d words recognized", len(recognized))
		words = append(words, recognized...)
	}
	return ocr.AttachWords(found, words, o.minConfidence), nil
}
