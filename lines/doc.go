// Package lines finds the horizontal and vertical rules of a page image.
//
// Detection runs on a binary image produced by [ThresholdDarkAreas] and
// cleaned by [FilterLines]. [DetectLines] keeps the long straight strokes
// of that image with a morphological opening, scans the remaining pixel
// runs and groups adjacent runs into lines with a thickness.
//
//	thresh := lines.FilterLines(lines.ThresholdDarkAreas(img, charLength), charLength)
//	h, v := lines.DetectLines(thresh, contours, charLength, params)
package lines
