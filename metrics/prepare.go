package metrics

import (
	"image"

	"github.com/tsawler/gridscan/internal/imgproc"
)

// darkLevel is the gray value at or below which a pixel counts as dark when
// looking for a black page background.
const darkLevel = 127

// PrepareImage removes a black background surrounding the page. Dark pixels
// connected to the image border form a frame; when more than half of the
// border pixels are dark the frame is painted white. The input is never
// modified and images without such a frame are returned as a copy.
func PrepareImage(img *image.Gray) *image.Gray {
	out := imgproc.Clone(img)
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return out
	}

	dark := imgproc.Binarize(img, darkLevel)
	if borderDarkRatio(dark) <= 0.5 {
		return out
	}

	inner := imgproc.RemoveComponents(dark, func(c imgproc.Component) bool {
		return c.Bounds.Min.X == 0 || c.Bounds.Min.Y == 0 || c.Bounds.Max.X == w || c.Bounds.Max.Y == h
	})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if dark.Pix[y*dark.Stride+x] == imgproc.Foreground && inner.Pix[y*inner.Stride+x] == imgproc.Background {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}

// borderDarkRatio returns the fraction of border pixels that are foreground
func borderDarkRatio(bin *image.Gray) float64 {
	w, h := bin.Rect.Dx(), bin.Rect.Dy()
	var total, dark int
	count := func(x, y int) {
		total++
		if bin.Pix[y*bin.Stride+x] == imgproc.Foreground {
			dark++
		}
	}
	for x := 0; x < w; x++ {
		count(x, 0)
		if h > 1 {
			count(x, h-1)
		}
	}
	for y := 1; y < h-1; y++ {
		count(0, y)
		if w > 1 {
			count(w-1, y)
		}
	}
	if total == 0 {
		return 0
	}
	return float64(dark) / float64(total)
}
