package lines

import (
	"image"
	"math"
	"sort"

	"github.com/tsawler/gridscan/internal/imgproc"
	"github.com/tsawler/gridscan/model"
)

// Params controls line detection
type Params struct {
	// Minimum number of foreground pixels for a run to become a line
	Threshold int

	// Minimum length of a line in pixels
	MinLineLength int

	// Maximum gap between two pixel runs of the same line
	MaxLineGap int

	// Length of the opening kernel used to isolate straight strokes
	KernelSize int
}

const (
	// textHeightRatio bounds the height of a text contour in character lengths
	textHeightRatio = 4

	// snapTolerance is the distance in pixels within which a line end is
	// moved onto a perpendicular line
	snapTolerance = 5
)

// run is a sequence of foreground pixels along one row (or column), possibly
// interrupted by gaps no longer than MaxLineGap.
type run struct {
	pos        int // row for horizontal runs, column for vertical runs
	start, end int // first and last pixel, inclusive
	count      int
}

// runGroup collects runs on consecutive rows (or columns) that overlap
type runGroup struct {
	first, last int
	start, end  int
}

// DetectLines returns the horizontal and vertical lines of a binary image.
// Lines lying entirely inside a text contour are strokes of large
// characters and are dropped.
func DetectLines(thresh *image.Gray, contours []model.Cell, charLength float64, p Params) (h, v []model.Line) {
	if imgproc.IsEmpty(thresh) {
		return nil, nil
	}
	k := max(p.KernelSize, 1)

	horizontal := imgproc.Open(thresh, k, 1)
	for _, g := range groupRuns(scanRuns(horizontal, true, p)) {
		y := (g.first + g.last) / 2
		h = append(h, model.Line{X1: g.start, Y1: y, X2: g.end, Y2: y, Thickness: g.last - g.first + 1})
	}

	vertical := imgproc.Open(thresh, 1, k)
	for _, g := range groupRuns(scanRuns(vertical, false, p)) {
		x := (g.first + g.last) / 2
		v = append(v, model.Line{X1: x, Y1: g.start, X2: x, Y2: g.end, Thickness: g.last - g.first + 1})
	}

	maxTextHeight := math.MaxInt
	if charLength > 0 {
		maxTextHeight = int(textHeightRatio * charLength)
	}
	h = removeTextStrokes(h, contours, maxTextHeight)
	v = removeTextStrokes(v, contours, maxTextHeight)
	snapEnds(h, v, snapTolerance)
	return h, v
}

// snapEnds moves the ends of each line onto the perpendicular line they stop
// at, when that line is within tol pixels. Blurring and line thickness
// otherwise leave ends overshooting the frame by a pixel or two.
func snapEnds(h, v []model.Line, tol int) {
	for i := range h {
		l := &h[i]
		for _, o := range v {
			if l.Y1 < o.Y1-tol || l.Y1 > o.Y2+tol {
				continue
			}
			if abs(l.X1-o.X1) <= tol {
				l.X1 = o.X1
			}
			if abs(l.X2-o.X1) <= tol {
				l.X2 = o.X1
			}
		}
	}
	for i := range v {
		l := &v[i]
		for _, o := range h {
			if l.X1 < o.X1-tol || l.X1 > o.X2+tol {
				continue
			}
			if abs(l.Y1-o.Y1) <= tol {
				l.Y1 = o.Y1
			}
			if abs(l.Y2-o.Y1) <= tol {
				l.Y2 = o.Y1
			}
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// scanRuns returns the runs of every row (horizontal) or column (vertical)
// that satisfy the length and vote thresholds.
func scanRuns(bin *image.Gray, horizontal bool, p Params) []run {
	w, h := bin.Rect.Dx(), bin.Rect.Dy()
	outer, inner := h, w
	at := func(pos, i int) bool { return bin.Pix[pos*bin.Stride+i] == imgproc.Foreground }
	if !horizontal {
		outer, inner = w, h
		at = func(pos, i int) bool { return bin.Pix[i*bin.Stride+pos] == imgproc.Foreground }
	}

	var runs []run
	keep := func(r run) {
		if r.count > 0 && r.count >= p.Threshold && r.end-r.start+1 >= p.MinLineLength {
			runs = append(runs, r)
		}
	}
	for pos := 0; pos < outer; pos++ {
		cur := run{pos: pos}
		for i := 0; i < inner; i++ {
			if !at(pos, i) {
				continue
			}
			if cur.count > 0 && i-cur.end-1 > p.MaxLineGap {
				keep(cur)
				cur = run{pos: pos}
			}
			if cur.count == 0 {
				cur.start = i
			}
			cur.end = i
			cur.count++
		}
		keep(cur)
	}
	return runs
}

// groupRuns merges overlapping runs on adjacent rows (or columns) into
// groups. Runs are expected in scan order.
func groupRuns(runs []run) []runGroup {
	var groups []runGroup
	for _, r := range runs {
		joined := -1
		for i := range groups {
			g := &groups[i]
			if g.last < r.pos-1 || r.start > g.end || r.end < g.start {
				continue
			}
			if joined < 0 {
				g.last = r.pos
				g.start = min(g.start, r.start)
				g.end = max(g.end, r.end)
				joined = i
				continue
			}
			// The run bridges two groups
			j := &groups[joined]
			j.first = min(j.first, g.first)
			j.start = min(j.start, g.start)
			j.end = max(j.end, g.end)
			g.first, g.last = -1, -2
		}
		if joined < 0 {
			groups = append(groups, runGroup{first: r.pos, last: r.pos, start: r.start, end: r.end})
		}
	}

	out := groups[:0]
	for _, g := range groups {
		if g.first >= 0 {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].first != out[j].first {
			return out[i].first < out[j].first
		}
		return out[i].start < out[j].start
	})
	return out
}

// removeTextStrokes drops the lines whose bounding box lies inside a contour
// no taller than maxTextHeight.
func removeTextStrokes(lines []model.Line, contours []model.Cell, maxTextHeight int) []model.Line {
	if len(contours) == 0 {
		return lines
	}
	out := lines[:0:0]
	for _, l := range lines {
		inside := false
		for _, c := range contours {
			if c.Height() <= maxTextHeight && c.Contains(l.BBox()) {
				inside = true
				break
			}
		}
		if !inside {
			out = append(out, l)
		}
	}
	return out
}
