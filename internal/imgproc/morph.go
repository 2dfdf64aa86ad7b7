package imgproc

import "image"

func isForeground(v uint8) int64 {
	if v == Foreground {
		return 1
	}
	return 0
}

// Erode keeps a foreground pixel only if the whole kw x kh window around it
// is foreground. Pixels of the window falling outside the image are ignored.
func Erode(bin *image.Gray, kw, kh int) *image.Gray {
	return morph(bin, kw, kh, false, func(sum, n int64) bool { return n > 0 && sum == n })
}

// Dilate marks a pixel as foreground if any pixel of the kw x kh window
// around it is foreground.
func Dilate(bin *image.Gray, kw, kh int) *image.Gray {
	return morph(bin, kw, kh, true, func(sum, _ int64) bool { return sum > 0 })
}

// Open is an erosion followed by a dilation with the same kernel. It removes
// foreground structures that cannot contain the kernel.
func Open(bin *image.Gray, kw, kh int) *image.Gray {
	return Dilate(Erode(bin, kw, kh), kw, kh)
}

// morph evaluates on over the kernel window of every pixel. The kernel is
// anchored at its center; dilation uses the reflected kernel so that an
// opening restores the structures an erosion kept.
func morph(bin *image.Gray, kw, kh int, reflect bool, on func(sum, n int64) bool) *image.Gray {
	kw, kh = max(kw, 1), max(kh, 1)
	left, top := kw/2, kh/2
	if reflect {
		left, top = kw-1-left, kh-1-top
	}

	ii := newIntegral(bin, isForeground)
	w, h := bin.Rect.Dx(), bin.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum, n := ii.rect(x-left, y-top, x-left+kw, y-top+kh)
			if on(sum, n) {
				out.Pix[y*out.Stride+x] = Foreground
			}
		}
	}
	return out
}
