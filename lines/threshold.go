package lines

import (
	"image"

	"github.com/tsawler/gridscan/internal/imgproc"
)

const (
	// defaultBlockSize is the adaptive threshold window used when the
	// character length is unknown.
	defaultBlockSize = 11

	// thresholdOffset is subtracted from the local mean before comparing
	thresholdOffset = 5

	blurSigma = 1.0
)

// ThresholdDarkAreas converts a grayscale image to a binary image where ink
// is foreground. The threshold is computed locally over a window sized
// after the character length so that uneven lighting and shaded areas do
// not swallow the strokes.
func ThresholdDarkAreas(img *image.Gray, charLength float64) *image.Gray {
	block := defaultBlockSize
	if charLength > 0 {
		block = max(int(charLength)/2*2+1, 3)
	}
	return imgproc.AdaptiveThreshold(imgproc.Blur(img, blurSigma), block, thresholdOffset)
}

// FilterLines removes from a binary image the components that cannot be part
// of a table rule: those spanning less than two characters in both
// directions.
func FilterLines(thresh *image.Gray, charLength float64) *image.Gray {
	minSpan := int(2 * charLength)
	return imgproc.RemoveComponents(thresh, func(c imgproc.Component) bool {
		return c.Bounds.Dx() < minSpan && c.Bounds.Dy() < minSpan
	})
}
