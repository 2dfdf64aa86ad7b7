// Package imgproc implements the raster operations used by the table
// reconstruction pipeline on 8-bit grayscale images.
//
// Binary images are represented as *image.Gray where foreground (ink)
// pixels have value 255 and background pixels have value 0. All images
// produced by this package have bounds starting at (0, 0), and the
// functions expect their inputs to do so as well ([ToGray] normalizes any
// image.Image).
//
// Window based operations ([AdaptiveThreshold], [Erode], [Dilate]) use a
// summed-area table so their cost does not depend on the kernel size.
package imgproc
