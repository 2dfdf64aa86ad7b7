package reader

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ColorSpace names the layout of the samples of a raw pixel buffer
type ColorSpace string

// Color spaces of raw buffers, named as in PDF image streams
const (
	DeviceGray ColorSpace = "DeviceGray"
	DeviceRGB  ColorSpace = "DeviceRGB"
	DeviceCMYK ColorSpace = "DeviceCMYK"
	CalGray    ColorSpace = "CalGray"
	CalRGB     ColorSpace = "CalRGB"
	ICCBased   ColorSpace = "ICCBased"
)

// RawImage is an uncompressed pixel buffer, row by row from the top left.
type RawImage struct {
	Width            int
	Height           int
	ColorSpace       ColorSpace
	BitsPerComponent int
	Data             []byte
}

// Image converts the buffer to an image. Gray buffers give an *image.Gray,
// color buffers an *image.RGBA. Unknown color spaces are read as gray.
func (raw *RawImage) Image() (image.Image, error) {
	if raw.Width <= 0 || raw.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", raw.Width, raw.Height)
	}

	var (
		img image.Image
		err error
	)
	switch raw.ColorSpace {
	case DeviceRGB, CalRGB:
		img, err = raw.rgba(3, func(p []byte) color.RGBA {
			return color.RGBA{R: p[0], G: p[1], B: p[2], A: 255}
		})
	case DeviceCMYK:
		img, err = raw.rgba(4, func(p []byte) color.RGBA {
			r, g, b := color.CMYKToRGB(p[0], p[1], p[2], p[3])
			return color.RGBA{R: r, G: g, B: b, A: 255}
		})
	default:
		img, err = raw.gray()
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

// ToPNG encodes the buffer as PNG, the input format of most OCR engines.
func (raw *RawImage) ToPNG() ([]byte, error) {
	img, err := raw.Image()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// gray unpacks 1, 4 or 8 bit samples. Sub-byte samples are stored most
// significant bits first; a 1-bit 0 is black.
func (raw *RawImage) gray() (*image.Gray, error) {
	bpc := raw.BitsPerComponent
	switch bpc {
	case 1, 4, 8:
	default:
		return nil, fmt.Errorf("unsupported bits per component: %d", bpc)
	}

	stride := (raw.Width*bpc + 7) / 8
	if want := stride * raw.Height; len(raw.Data) < want {
		return nil, fmt.Errorf("insufficient data for %d-bit gray image: got %d, expected %d", bpc, len(raw.Data), want)
	}

	perByte := 8 / bpc
	mask := byte(1<<bpc - 1)
	scale := 255 / mask

	img := image.NewGray(image.Rect(0, 0, raw.Width, raw.Height))
	for y := 0; y < raw.Height; y++ {
		row := raw.Data[y*stride : (y+1)*stride]
		for x := 0; x < raw.Width; x++ {
			shift := uint(8 - bpc*(x%perByte+1))
			v := (row[x/perByte] >> shift) & mask
			img.Pix[y*img.Stride+x] = v * scale
		}
	}
	return img, nil
}

// rgba unpacks 8-bit samples with n components per pixel
func (raw *RawImage) rgba(n int, convert func([]byte) color.RGBA) (*image.RGBA, error) {
	if raw.BitsPerComponent != 8 {
		return nil, fmt.Errorf("unsupported bits per component for %s: %d", raw.ColorSpace, raw.BitsPerComponent)
	}
	if want := raw.Width * raw.Height * n; len(raw.Data) < want {
		return nil, fmt.Errorf("insufficient data for %s image: got %d, expected %d", raw.ColorSpace, len(raw.Data), want)
	}

	img := image.NewRGBA(image.Rect(0, 0, raw.Width, raw.Height))
	for i := 0; i < raw.Width*raw.Height; i++ {
		c := convert(raw.Data[i*n : (i+1)*n])
		img.Pix[4*i], img.Pix[4*i+1], img.Pix[4*i+2], img.Pix[4*i+3] = c.R, c.G, c.B, c.A
	}
	return img, nil
}
