package tableimage

import (
	"math"

	"github.com/tsawler/gridscan/lines"
)

// Line detection parameters used when the line separation is unknown
const (
	fallbackMinLineLength = 10
	fallbackMaxLineGap    = 10
	fallbackKernelSize    = 20

	voteThreshold = 10
)

// Scale holds the scale constants of a page in pixels. A zero value means
// the measure is unknown.
type Scale struct {
	CharLength    float64
	MedianLineSep float64
}

// HasLineSep reports whether the median line separation is known
func (s Scale) HasLineSep() bool {
	return s.MedianLineSep > 0
}

// HasCharLength reports whether the character length is known
func (s Scale) HasCharLength() bool {
	return s.CharLength > 0
}

// DetectionParams returns the line detection parameters for a page. Lines
// must be at least a third of a line separation long and the opening
// kernel is two thirds of it. Without a line separation fixed values are
// used.
func DetectionParams(s Scale) lines.Params {
	if !s.HasLineSep() {
		return lines.Params{
			Threshold:     voteThreshold,
			MinLineLength: fallbackMinLineLength,
			MaxLineGap:    fallbackMaxLineGap,
			KernelSize:    fallbackKernelSize,
		}
	}

	length := max(int(math.RoundToEven(0.33*s.MedianLineSep)), 1)
	return lines.Params{
		Threshold:     voteThreshold,
		MinLineLength: length,
		MaxLineGap:    length,
		KernelSize:    max(int(math.RoundToEven(0.66*s.MedianLineSep)), 1),
	}
}
