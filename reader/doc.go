// Package reader loads page images for table extraction.
//
// # Encoded Images
//
// Use [Open] to read an image file, or [Decode] with any io.Reader:
//
//	img, err := reader.Open("scan.tiff")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// PNG, JPEG and GIF are decoded by the standard library; TIFF, BMP and WebP
// by golang.org/x/image. Other formats fail with [ErrUnsupportedFormat].
//
// # Raw Pixel Buffers
//
// Scanners and PDF image streams deliver bare pixel data. A [RawImage]
// describes such a buffer:
//
//	raw := &reader.RawImage{
//	    Width:            1700,
//	    Height:           2200,
//	    ColorSpace:       reader.DeviceGray,
//	    BitsPerComponent: 1,
//	    Data:             data,
//	}
//	img, err := raw.Image()
//
// Supported layouts are gray with 1, 4 or 8 bits per component, and RGB or
// CMYK with 8 bits per component. Rows of sub-byte samples are padded to a
// byte boundary.
package reader
