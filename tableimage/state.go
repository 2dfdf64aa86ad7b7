package tableimage

import (
	"image"
	"sync"

	"github.com/tsawler/gridscan/internal/imgproc"
	"github.com/tsawler/gridscan/model"
)

// State is the result of the extraction passes on a page. It is returned
// by each pass and handed to the next one.
type State struct {
	// Thresh is the binary page image used for line detection. It is nil
	// until the bordered pass has run.
	Thresh *image.Gray

	// Lines holds the horizontal lines followed by the vertical lines
	Lines []model.Line

	// Tables found so far, bordered tables first
	Tables []*model.Table

	white *whiteImage
}

type whiteImage struct {
	once sync.Once
	img  *image.Gray
}

// WhiteImage returns a copy of img with the lines of the state painted
// white. The image is computed on the first call and shared by copies of
// the state.
func (s State) WhiteImage(img *image.Gray) *image.Gray {
	if s.white == nil {
		return eraseLines(img, s.Lines)
	}
	s.white.once.Do(func() {
		s.white.img = eraseLines(img, s.Lines)
	})
	return s.white.img
}

// eraseLines paints every line white. Horizontal lines are erased with a
// pen three times their thickness and extended by their thickness at both
// ends; vertical lines with a pen twice their thickness. For a pen of width
// w the band spans [c-w/2, c-w/2+w) across the line at coordinate c.
func eraseLines(img *image.Gray, lines []model.Line) *image.Gray {
	out := imgproc.Clone(img)
	for _, l := range lines {
		t := l.Thickness
		switch {
		case l.Horizontal():
			imgproc.StrokeRect(out, l.X1-t, l.Y1, l.X2+t, l.Y2, 3*t, 255)
		case l.Vertical():
			imgproc.StrokeRect(out, l.X1, l.Y1-t, l.X2, l.Y2+t, 2*t, 255)
		}
	}
	return out
}
