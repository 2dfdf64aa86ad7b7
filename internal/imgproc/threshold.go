package imgproc

import "image"

// integral is a summed-area table over an image. sum has (w+1)*(h+1)
// entries; entry (x, y) holds the sum of all pixels above and left of (x, y).
type integral struct {
	w, h int
	sum  []int64
}

func newIntegral(g *image.Gray, value func(uint8) int64) integral {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	ii := integral{w: w, h: h, sum: make([]int64, (w+1)*(h+1))}
	for y := 0; y < h; y++ {
		var rowSum int64
		src := g.Pix[y*g.Stride : y*g.Stride+w]
		for x := 0; x < w; x++ {
			rowSum += value(src[x])
			ii.sum[(y+1)*(w+1)+x+1] = ii.sum[y*(w+1)+x+1] + rowSum
		}
	}
	return ii
}

// rect returns the sum over [x0, x1) x [y0, y1) clipped to the image, and
// the number of pixels it covers.
func (ii integral) rect(x0, y0, x1, y1 int) (int64, int64) {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, ii.w), min(y1, ii.h)
	if x1 <= x0 || y1 <= y0 {
		return 0, 0
	}
	s := ii.sum[y1*(ii.w+1)+x1] - ii.sum[y0*(ii.w+1)+x1] - ii.sum[y1*(ii.w+1)+x0] + ii.sum[y0*(ii.w+1)+x0]
	return s, int64((x1 - x0) * (y1 - y0))
}

// AdaptiveThreshold binarizes g against the mean of a block x block window
// around each pixel: a pixel becomes foreground when it is darker than the
// local mean minus c.
func AdaptiveThreshold(g *image.Gray, block int, c float64) *image.Gray {
	if block < 3 {
		block = 3
	}
	if block%2 == 0 {
		block++
	}
	half := block / 2
	ii := newIntegral(g, func(v uint8) int64 { return int64(v) })

	w, h := g.Rect.Dx(), g.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum, n := ii.rect(x-half, y-half, x+half+1, y+half+1)
			mean := float64(sum) / float64(n)
			if float64(g.Pix[y*g.Stride+x]) < mean-c {
				out.Pix[y*out.Stride+x] = Foreground
			}
		}
	}
	return out
}

// Otsu returns the threshold maximising the between-class variance of the
// image histogram.
func Otsu(g *image.Gray) uint8 {
	var hist [256]int64
	w, h := g.Rect.Dx(), g.Rect.Dy()
	for y := 0; y < h; y++ {
		for _, v := range g.Pix[y*g.Stride : y*g.Stride+w] {
			hist[v]++
		}
	}

	total := int64(w * h)
	if total == 0 {
		return 127
	}

	var sumAll float64
	for i, n := range hist {
		sumAll += float64(i) * float64(n)
	}

	var (
		sumB      float64
		weightB   int64
		best      float64
		threshold uint8
	)
	for i, n := range hist {
		weightB += n
		if weightB == 0 {
			continue
		}
		weightF := total - weightB
		if weightF == 0 {
			break
		}
		sumB += float64(i) * float64(n)
		meanB := sumB / float64(weightB)
		meanF := (sumAll - sumB) / float64(weightF)
		between := float64(weightB) * float64(weightF) * (meanB - meanF) * (meanB - meanF)
		if between > best {
			best = between
			threshold = uint8(i)
		}
	}
	return threshold
}

// Binarize marks every pixel with a value <= t as foreground.
func Binarize(g *image.Gray, t uint8) *image.Gray {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if g.Pix[y*g.Stride+x] <= t {
				out.Pix[y*out.Stride+x] = Foreground
			}
		}
	}
	return out
}
