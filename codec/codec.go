// Package codec decodes encoded images into straight-alpha RGBA buffers.
//
// The standard decoder understands PNG, JPEG, GIF, BMP, TIFF and WebP.
// Decoded pixels are always returned top-left origin, row-major, four bytes
// per pixel with alpha not premultiplied, whatever the source color model.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	// Registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	xdraw "golang.org/x/image/draw"
)

// Decoding errors.
var (
	// ErrEmptyData is returned when there are no bytes to decode.
	ErrEmptyData = errors.New("codec: empty data")

	// ErrDecode is returned when the bytes are not a supported image.
	ErrDecode = errors.New("codec: decode failed")

	// ErrEmptyImage is returned for images without pixels.
	ErrEmptyImage = errors.New("codec: image has no pixels")
)

// Decoder turns encoded image bytes into straight-alpha RGBA pixels.
type Decoder interface {
	Decode(data []byte) (pix []byte, width, height int, err error)
}

// Standard decodes every format registered with the image package.
type Standard struct{}

// NewStandard returns the default decoder.
func NewStandard() *Standard {
	return &Standard{}
}

// Decode implements Decoder.Decode.
func (Standard) Decode(data []byte) ([]byte, int, int, error) {
	if len(data) == 0 {
		return nil, 0, 0, ErrEmptyData
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	pix, w, h, err := RGBA(img)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%s: %w", format, err)
	}
	return pix, w, h, nil
}

// Format reports the registered format name of data without decoding
// pixels, along with its dimensions.
func Format(data []byte) (string, int, int, error) {
	if len(data) == 0 {
		return "", 0, 0, ErrEmptyData
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", 0, 0, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return format, cfg.Width, cfg.Height, nil
}

// RGBA copies img into a fresh straight-alpha RGBA buffer.
func RGBA(img image.Image) ([]byte, int, int, error) {
	n := NRGBA(img)
	if n == nil {
		return nil, 0, 0, ErrEmptyImage
	}
	return n.Pix, n.Rect.Dx(), n.Rect.Dy(), nil
}

// NRGBA converts img to a new *image.NRGBA whose bounds start at the
// origin and whose stride is exactly four bytes per pixel. It returns nil
// for empty images. The result never aliases img.
func NRGBA(img image.Image) *image.NRGBA {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	if b.Empty() {
		return nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	if src, ok := img.(*image.NRGBA); ok {
		for y := range b.Dy() {
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], src.Pix[i:i+dst.Stride])
		}
		return dst
	}

	xdraw.Copy(dst, image.Point{}, img, b, xdraw.Src, nil)
	return dst
}
