// Package metrics computes the scale of a page image: the typical width of a
// character, the median distance between text lines and the text contours.
package metrics

import (
	"image"
	"sort"

	"github.com/tsawler/gridscan/internal/imgproc"
	"github.com/tsawler/gridscan/model"
)

// Character-like component bounds, in pixels
const (
	minCharHeight = 6
	maxCharHeight = 60
	minCharAspect = 0.1
	maxCharAspect = 2.5

	// minChars is the number of characters needed to trust the char length
	minChars = 5

	// minLineSeps is the number of line distances needed for a median
	minLineSeps = 3
)

// Metrics holds the scale measurements of an image
type Metrics struct {
	// CharLength is the mean width of a character in pixels, 0 if unknown.
	CharLength float64

	// MedianLineSep is the median vertical distance between consecutive
	// text lines in pixels, 0 if unknown.
	MedianLineSep float64

	// Contours are the bounding boxes of text blocks (words or groups of
	// words on a line).
	Contours []model.Cell
}

// ComputeImgMetrics measures the character length, the median line
// separation and the text contours of a grayscale image.
func ComputeImgMetrics(img *image.Gray) Metrics {
	if imgproc.IsEmpty(img) {
		return Metrics{}
	}

	bin := imgproc.Binarize(img, imgproc.Otsu(img))
	comps := imgproc.Components(bin)

	var widthSum, chars int
	for _, c := range comps {
		if isCharacter(c) {
			widthSum += c.Bounds.Dx()
			chars++
		}
	}

	var m Metrics
	if chars >= minChars {
		m.CharLength = float64(widthSum) / float64(chars)
	}

	text := imgproc.RemoveComponents(bin, func(c imgproc.Component) bool {
		return !isTextLike(c)
	})
	kw := max(int(m.CharLength/2), 1)
	for _, c := range imgproc.Components(imgproc.Dilate(text, kw, 1)) {
		m.Contours = append(m.Contours, model.CellFromRect(c.Bounds))
	}

	m.MedianLineSep = medianLineSep(m.Contours)
	return m
}

func isCharacter(c imgproc.Component) bool {
	w, h := c.Bounds.Dx(), c.Bounds.Dy()
	if h < minCharHeight || h > maxCharHeight {
		return false
	}
	aspect := float64(w) / float64(h)
	return aspect >= minCharAspect && aspect <= maxCharAspect
}

// isTextLike reports whether a component may belong to text. Punctuation is
// kept; rules and large drawings are not.
func isTextLike(c imgproc.Component) bool {
	w, h := c.Bounds.Dx(), c.Bounds.Dy()
	if h > maxCharHeight {
		return false
	}
	// Thin vertical rules
	if h > 4*minCharHeight && h > 8*w {
		return false
	}
	return float64(w) <= maxCharAspect*float64(max(h, minCharHeight))
}

// medianLineSep returns the median vertical distance between the center of
// each contour and the center of the closest contour below it that overlaps
// it horizontally.
func medianLineSep(contours []model.Cell) float64 {
	var seps []float64
	for _, c := range contours {
		best := -1
		for _, o := range contours {
			if o.Y1 < c.Y2 || o.X2 <= c.X1 || o.X1 >= c.X2 {
				continue
			}
			d := o.Center().Y - c.Center().Y
			if d > 0 && (best < 0 || d < best) {
				best = d
			}
		}
		if best > 0 {
			seps = append(seps, float64(best))
		}
	}
	if len(seps) < minLineSeps {
		return 0
	}
	return median(seps)
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
