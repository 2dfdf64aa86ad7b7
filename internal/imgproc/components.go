package imgproc

import "image"

// Component is a connected group of foreground pixels
type Component struct {
	Bounds image.Rectangle
	Pixels int
}

// Components returns the 8-connected foreground components of bin in scan
// order (top to bottom, left to right by first pixel).
func Components(bin *image.Gray) []Component {
	var out []Component
	walkComponents(bin, func(c Component, _ []int) {
		out = append(out, c)
	})
	return out
}

// RemoveComponents returns a copy of bin without the components for which
// drop returns true.
func RemoveComponents(bin *image.Gray, drop func(Component) bool) *image.Gray {
	out := Clone(bin)
	w := bin.Rect.Dx()
	walkComponents(bin, func(c Component, pixels []int) {
		if !drop(c) {
			return
		}
		for _, idx := range pixels {
			out.Pix[(idx/w)*out.Stride+idx%w] = Background
		}
	})
	return out
}

// walkComponents flood fills every 8-connected component and calls fn with
// the component and the linear indices (y*width+x) of its pixels. The pixel
// slice is reused between calls.
func walkComponents(bin *image.Gray, fn func(Component, []int)) {
	w, h := bin.Rect.Dx(), bin.Rect.Dy()
	seen := make([]bool, w*h)
	var stack, pixels []int

	for start := 0; start < w*h; start++ {
		sx, sy := start%w, start/w
		if seen[start] || bin.Pix[sy*bin.Stride+sx] != Foreground {
			continue
		}

		bounds := image.Rect(sx, sy, sx+1, sy+1)
		pixels = pixels[:0]
		seen[start] = true
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			pixels = append(pixels, idx)
			x, y := idx%w, idx/w
			bounds = bounds.Union(image.Rect(x, y, x+1, y+1))

			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					n := ny*w + nx
					if seen[n] || bin.Pix[ny*bin.Stride+nx] != Foreground {
						continue
					}
					seen[n] = true
					stack = append(stack, n)
				}
			}
		}
		fn(Component{Bounds: bounds, Pixels: len(pixels)}, pixels)
	}
}
