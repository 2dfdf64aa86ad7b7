package imgproc

import (
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Foreground and Background are the pixel values of binary images.
const (
	Foreground uint8 = 255
	Background uint8 = 0
)

// ToGray converts any image to grayscale. The result has bounds starting at
// (0, 0) and never shares storage with img.
func ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), img, b.Min, draw.Src)
	return g
}

// Clone returns a deep copy of g
func Clone(g *image.Gray) *image.Gray {
	out := image.NewGray(g.Rect)
	copy(out.Pix, g.Pix)
	return out
}

// NewWhite creates a white image of the given size
func NewWhite(width, height int) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, width, height))
	for i := range g.Pix {
		g.Pix[i] = 255
	}
	return g
}

// Blur applies a gaussian blur with the given sigma.
func Blur(g *image.Gray, sigma float64) *image.Gray {
	if sigma <= 0 {
		return Clone(g)
	}
	return ToGray(imaging.Blur(g, sigma))
}

// IsEmpty reports whether the image has no pixels.
func IsEmpty(img image.Image) bool {
	return img == nil || img.Bounds().Empty()
}

// FillRect paints every pixel of r (clipped to the image) with value v.
func FillRect(g *image.Gray, r image.Rectangle, v uint8) {
	r = r.Intersect(g.Rect)
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := g.Pix[g.PixOffset(r.Min.X, y):g.PixOffset(r.Max.X, y)]
		for i := range row {
			row[i] = v
		}
	}
}

// StrokeRect draws the outline of the rectangle with corners (x1, y1) and
// (x2, y2), both inclusive, using a pen exactly thickness pixels wide. The
// pen covers [c-thickness/2, c-thickness/2+thickness) around each outline
// coordinate c. A degenerate rectangle (a segment) becomes a filled band.
func StrokeRect(g *image.Gray, x1, y1, x2, y2, thickness int, v uint8) {
	if thickness < 1 {
		thickness = 1
	}
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	lo, hi := thickness/2, thickness-thickness/2

	// Top, bottom, left, right bands
	FillRect(g, image.Rect(x1-lo, y1-lo, x2+hi, y1+hi), v)
	FillRect(g, image.Rect(x1-lo, y2-lo, x2+hi, y2+hi), v)
	FillRect(g, image.Rect(x1-lo, y1-lo, x1+hi, y2+hi), v)
	FillRect(g, image.Rect(x2-lo, y1-lo, x2+hi, y2+hi), v)
}

// At returns the gray value at (x, y), or white outside the image.
func At(g *image.Gray, x, y int) uint8 {
	if !(image.Point{X: x, Y: y}).In(g.Rect) {
		return 255
	}
	return g.GrayAt(x, y).Y
}
