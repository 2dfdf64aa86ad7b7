package tableimage

import (
	"errors"
	"image"

	"github.com/tsawler/gridscan/internal/imgproc"
	"github.com/tsawler/gridscan/internal/log"
	"github.com/tsawler/gridscan/model"
)

// ErrInvalidImage is returned by New for a nil or empty image.
var ErrInvalidImage = errors.New("tableimage: invalid image")

// DefaultHeaderRows is the number of header rows synthesized by default
// when borderless headers are detected.
const DefaultHeaderRows = 1

// TableImage holds a prepared page image and its scale. A TableImage is not
// modified by extraction and may be reused; each extraction starts from
// scratch.
type TableImage struct {
	img        *image.Gray
	scale      Scale
	contours   []model.Cell
	stages     Stages
	headerRows int
}

// Option configures a TableImage
type Option func(*TableImage)

// WithStages replaces the processing steps. Nil steps keep their default.
func WithStages(s Stages) Option {
	return func(ti *TableImage) {
		ti.stages = s.withDefaults()
	}
}

// WithHeaderRows sets the number of header rows synthesized when borderless
// headers are detected.
func WithHeaderRows(n int) Option {
	return func(ti *TableImage) {
		ti.headerRows = max(n, 0)
	}
}

// New prepares an image for table extraction: it is converted to grayscale,
// its background normalized and its scale measured.
func New(img image.Image, opts ...Option) (*TableImage, error) {
	if img == nil || imgproc.IsEmpty(img) {
		return nil, ErrInvalidImage
	}

	ti := &TableImage{
		stages:     DefaultStages(),
		headerRows: DefaultHeaderRows,
	}
	for _, opt := range opts {
		opt(ti)
	}

	ti.img = ti.stages.Prepare(imgproc.ToGray(img))
	m := ti.stages.ComputeMetrics(ti.img)
	ti.scale = Scale{CharLength: m.CharLength, MedianLineSep: m.MedianLineSep}
	ti.contours = m.Contours

	log.Debugf("page %dx%d: char length %.1f, line sep %.1f, %d contours",
		ti.img.Rect.Dx(), ti.img.Rect.Dy(), ti.scale.CharLength, ti.scale.MedianLineSep, len(ti.contours))
	return ti, nil
}

// Image returns the prepared grayscale image
func (ti *TableImage) Image() *image.Gray {
	return ti.img
}

// Scale returns the scale measured on the page
func (ti *TableImage) Scale() Scale {
	return ti.scale
}

// Contours returns the text contours of the page
func (ti *TableImage) Contours() []model.Cell {
	return ti.contours
}

// ExtractBorderedTables finds the tables delimited by rules.
//
// The page is binarized, its lines detected and turned into cells, and the
// cells grouped into tables. With detectBorderlessHeaders a speculative
// header row is added on top of each table; with implicitRows rows holding
// several lines of text are split. Tables with fewer than two cells are
// dropped.
func (ti *TableImage) ExtractBorderedTables(implicitRows, detectBorderlessHeaders bool) State {
	s := ti.stages
	cl := ti.scale.CharLength

	thresh := s.ThresholdDarkAreas(ti.img, cl)
	thresh = s.FilterLines(thresh, cl)

	p := DetectionParams(ti.scale)
	h, v := s.DetectLines(thresh, ti.contours, cl, p)

	st := State{
		Thresh: thresh,
		Lines:  append(append(make([]model.Line, 0, len(h)+len(v)), h...), v...),
		white:  &whiteImage{},
	}

	cells := s.GetCells(h, v)
	found := s.GetTables(cells, ti.contours, st.Lines, cl)
	log.Debugf("bordered: %d horizontal, %d vertical lines, %d cells, %d tables", len(h), len(v), len(cells), len(found))

	if detectBorderlessHeaders {
		found = AddBorderlessHeaders(found, ti.headerRows)
	}

	if implicitRows {
		found = s.HandleImplicitRows(st.WhiteImage(ti.img), found, ti.contours)
	}

	for _, t := range found {
		if t.NbRows()*t.NbColumns() >= 2 {
			st.Tables = append(st.Tables, t)
		}
	}
	return st
}

// ExtractBorderlessTables appends to the state the tables without rules.
// It needs the state returned by ExtractBorderedTables and a known line
// separation; otherwise the state is returned unchanged. Only tables with
// at least two rows and three columns are kept.
func (ti *TableImage) ExtractBorderlessTables(st State) State {
	if !ti.scale.HasLineSep() {
		log.Debugf("borderless: skipped, unknown line separation")
		return st
	}
	if st.Thresh == nil {
		log.Warnf("borderless: skipped, bordered extraction has not run")
		return st
	}

	found := ti.stages.IdentifyBorderless(st.Thresh, ti.scale.CharLength, ti.scale.MedianLineSep, st.Lines, ti.contours, st.Tables)

	tables := append([]*model.Table(nil), st.Tables...)
	for _, t := range found {
		if t.NbRows() >= 2 && t.NbColumns() >= 3 {
			tables = append(tables, t)
		}
	}
	log.Debugf("borderless: %d candidates, %d kept", len(found), len(tables)-len(st.Tables))

	st.Tables = tables
	return st
}

// ExtractTables runs the bordered pass and, if borderlessTables is set, the
// borderless pass. Bordered tables come first.
func (ti *TableImage) ExtractTables(implicitRows, borderlessTables, detectBorderlessHeaders bool) []*model.Table {
	st := ti.ExtractBorderedTables(implicitRows, detectBorderlessHeaders)
	if borderlessTables {
		st = ti.ExtractBorderlessTables(st)
	}
	return st.Tables
}
