package imgproc

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBinary creates a w x h binary image with the given rectangles set to
// foreground.
func newBinary(w, h int, rects ...image.Rectangle) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for _, r := range rects {
		FillRect(g, r, Foreground)
	}
	return g
}

func TestToGrayRebasesBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 20, 20))
	for y := 10; y < 20; y++ {
		for x := 10; x < 20; x++ {
			src.Set(x, y, color.White)
		}
	}
	src.Set(12, 13, color.Black)

	g := ToGray(src)
	require.Equal(t, image.Rect(0, 0, 10, 10), g.Bounds())
	assert.Equal(t, uint8(0), g.GrayAt(2, 3).Y)
	assert.Equal(t, uint8(255), g.GrayAt(0, 0).Y)
}

func TestCloneIsIndependent(t *testing.T) {
	g := NewWhite(4, 4)
	c := Clone(g)
	c.Pix[0] = 0
	assert.Equal(t, uint8(255), g.Pix[0])
}

func TestFillRectClips(t *testing.T) {
	g := NewWhite(10, 10)
	FillRect(g, image.Rect(-5, -5, 3, 3), 0)

	assert.Equal(t, uint8(0), At(g, 0, 0))
	assert.Equal(t, uint8(0), At(g, 2, 2))
	assert.Equal(t, uint8(255), At(g, 3, 3))
	assert.Equal(t, uint8(255), At(g, -1, 0), "outside pixels read as white")
}

func TestStrokeRectSegmentIsBand(t *testing.T) {
	g := NewWhite(50, 50)
	StrokeRect(g, 10, 20, 30, 20, 4, 0)

	// A 4 px pen covers y 18..21 and x 8..31
	for y := 18; y <= 21; y++ {
		for x := 8; x <= 31; x++ {
			require.Equal(t, uint8(0), At(g, x, y), "pixel (%d,%d)", x, y)
		}
	}
	assert.Equal(t, uint8(255), At(g, 7, 20))
	assert.Equal(t, uint8(255), At(g, 32, 20))
	assert.Equal(t, uint8(255), At(g, 20, 17))
	assert.Equal(t, uint8(255), At(g, 20, 22))
}

func TestStrokeRectBandWidth(t *testing.T) {
	tests := []struct {
		thickness int
		want      int
	}{
		{1, 1},
		{2, 2},
		{3, 3},
		{6, 6},
		{9, 9},
	}
	for _, tt := range tests {
		g := NewWhite(40, 40)
		StrokeRect(g, 5, 20, 35, 20, tt.thickness, 0)

		got := 0
		for y := 0; y < 40; y++ {
			if At(g, 20, y) == 0 {
				got++
			}
		}
		if got != tt.want {
			t.Errorf("thickness %d painted %d rows, want %d", tt.thickness, got, tt.want)
		}
	}
}

func TestStrokeRectOutline(t *testing.T) {
	g := NewWhite(40, 40)
	StrokeRect(g, 10, 10, 30, 30, 1, 0)

	assert.Equal(t, uint8(0), At(g, 10, 20))
	assert.Equal(t, uint8(0), At(g, 30, 20))
	assert.Equal(t, uint8(0), At(g, 20, 10))
	assert.Equal(t, uint8(255), At(g, 20, 20), "interior stays untouched")
}

func TestAdaptiveThresholdFindsDarkSquare(t *testing.T) {
	g := NewWhite(40, 40)
	FillRect(g, image.Rect(18, 18, 23, 23), 0)

	bin := AdaptiveThreshold(g, 15, 10)
	assert.Equal(t, Foreground, At(bin, 20, 20))
	assert.Equal(t, Background, At(bin, 5, 5))
	assert.Equal(t, 25, countForeground(bin, bin.Rect))
}

func TestOtsuSplitsBimodalImage(t *testing.T) {
	g := NewWhite(20, 10)
	FillRect(g, image.Rect(0, 0, 10, 10), 0)

	bin := Binarize(g, Otsu(g))
	assert.Equal(t, 100, countForeground(bin, bin.Rect))
	assert.Equal(t, Foreground, At(bin, 0, 0))
	assert.Equal(t, Background, At(bin, 15, 5))
}

func TestOtsuEmptyImage(t *testing.T) {
	assert.Equal(t, uint8(127), Otsu(image.NewGray(image.Rect(0, 0, 0, 0))))
}

func TestOpenKeepsLongRunsOnly(t *testing.T) {
	bin := newBinary(50, 10,
		image.Rect(10, 5, 30, 6), // 20px horizontal run
		image.Rect(40, 2, 43, 3), // 3px speck
	)

	opened := Open(bin, 10, 1)
	assert.Equal(t, 20, countForeground(opened, image.Rect(0, 0, 50, 10)))
	for x := 10; x < 30; x++ {
		assert.Equal(t, Foreground, At(opened, x, 5), "x=%d", x)
	}
	assert.Equal(t, Background, At(opened, 41, 2))
}

func TestDilateAndErode(t *testing.T) {
	bin := newBinary(20, 20, image.Rect(10, 10, 11, 11))

	dilated := Dilate(bin, 3, 3)
	assert.Equal(t, 9, countForeground(dilated, dilated.Rect))

	eroded := Erode(dilated, 3, 3)
	assert.Equal(t, 1, countForeground(eroded, eroded.Rect))
	assert.Equal(t, Foreground, At(eroded, 10, 10))
}

func TestComponents(t *testing.T) {
	bin := newBinary(30, 30,
		image.Rect(1, 1, 5, 5),
		image.Rect(5, 5, 7, 7), // diagonal neighbour of the first square
		image.Rect(20, 20, 25, 22),
	)

	comps := Components(bin)
	require.Len(t, comps, 2)
	assert.Equal(t, image.Rect(1, 1, 7, 7), comps[0].Bounds)
	assert.Equal(t, 20, comps[0].Pixels)
	assert.Equal(t, image.Rect(20, 20, 25, 22), comps[1].Bounds)
}

func TestRemoveComponents(t *testing.T) {
	bin := newBinary(30, 30, image.Rect(1, 1, 3, 3), image.Rect(10, 10, 20, 20))

	out := RemoveComponents(bin, func(c Component) bool { return c.Pixels < 10 })
	assert.Equal(t, 100, countForeground(out, out.Rect))
	assert.Equal(t, 104, countForeground(bin, bin.Rect), "input is not modified")
}

func TestBlur(t *testing.T) {
	g := NewWhite(20, 20)
	FillRect(g, image.Rect(5, 5, 15, 15), 0)

	blurred := Blur(g, 1)
	assert.Equal(t, g.Bounds(), blurred.Bounds())
	assert.Equal(t, uint8(0), At(blurred, 10, 10))
}

// countForeground returns the number of foreground pixels inside r.
func countForeground(bin *image.Gray, r image.Rectangle) int {
	r = r.Intersect(bin.Rect)
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for _, v := range bin.Pix[bin.PixOffset(r.Min.X, y):bin.PixOffset(r.Max.X, y)] {
			if v == Foreground {
				n++
			}
		}
	}
	return n
}
