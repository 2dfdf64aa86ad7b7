package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/tsawler/gridscan/model"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// DefaultMinConfidence is the confidence below which words are ignored
const DefaultMinConfidence = 50

// HOCRRecognizer turns an encoded image into an hOCR document. *Client
// implements it.
type HOCRRecognizer interface {
	RecognizeHOCR(imageData []byte) (string, error)
}

// Recognize runs r on img and returns the words found.
func Recognize(r HOCRRecognizer, img image.Image) ([]Word, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	doc, err := r.RecognizeHOCR(buf.Bytes())
	if err != nil {
		return nil, err
	}
	return ParseHOCR([]byte(doc))
}

// AttachWords returns copies of the tables with their Content filled. Each
// slot of a row receives the words whose center lies inside its cell, in
// reading order; a merged cell gives its text to every slot it covers.
// Words with a confidence below minConfidence are ignored.
func AttachWords(tables []*model.Table, words []Word, minConfidence float64) []*model.Table {
	var kept []Word
	for _, w := range words {
		if w.Confidence >= minConfidence {
			kept = append(kept, w)
		}
	}
	sortReadingOrder(kept)

	out := make([]*model.Table, 0, len(tables))
	for _, t := range tables {
		table := t.Clone()
		table.Content = make([][]string, len(table.Items))
		for i, row := range table.Items {
			table.Content[i] = make([]string, len(row.Items))
			for j, cell := range row.Items {
				table.Content[i][j] = cellText(cell, kept)
			}
		}
		out = append(out, table)
	}
	return out
}

// cellText joins the words centered in the cell: words of a line are
// separated by spaces, lines by newlines. Words must be in reading order.
func cellText(cell model.Cell, words []Word) string {
	var lines []string
	var line []string
	var lineBottom int
	for _, w := range words {
		if !cell.ContainsPoint(w.BBox.Center()) {
			continue
		}
		if len(line) > 0 && w.BBox.Y1 >= lineBottom {
			lines = append(lines, strings.Join(line, " "))
			line = nil
		}
		if len(line) == 0 {
			lineBottom = w.BBox.Y2
		}
		line = append(line, w.Text)
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}
	return strings.Join(lines, "\n")
}

// sortReadingOrder sorts words top to bottom, then left to right within
// a text line. Two words share a line when the center of the lower one is
// above the bottom of the upper one.
func sortReadingOrder(words []Word) {
	sort.SliceStable(words, func(i, j int) bool {
		return words[i].BBox.Center().Y < words[j].BBox.Center().Y
	})

	start := 0
	for start < len(words) {
		end := start + 1
		bottom := words[start].BBox.Y2
		for end < len(words) && words[end].BBox.Center().Y < bottom {
			end++
		}
		line := words[start:end]
		sort.SliceStable(line, func(i, j int) bool {
			return line[i].BBox.X1 < line[j].BBox.X1
		})
		start = end
	}
}
