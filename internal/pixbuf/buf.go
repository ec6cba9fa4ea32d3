// Package pixbuf provides the bounds-checked RGBA8 canvas the atlas is
// composed into.
//
// Every write goes through an accessor that validates coordinates, so a
// mis-computed placement surfaces as ErrOutOfBounds instead of silently
// corrupting a neighbouring entry.
package pixbuf

import (
	"errors"
	"image"
)

const bytesPerPixel = 4

// Common errors for buffer operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("pixbuf: invalid dimensions")

	// ErrDataSize is returned when raw data does not match width*height*4.
	ErrDataSize = errors.New("pixbuf: data size does not match dimensions")

	// ErrOutOfBounds is returned when a pixel or region lies outside the buffer.
	ErrOutOfBounds = errors.New("pixbuf: coordinates out of bounds")
)

// Buffer is a tightly packed, row-major, top-down RGBA8 pixel buffer.
//
// Buffer is not safe for concurrent writes.
type Buffer struct {
	data   []byte
	width  int
	height int
}

// New creates a zeroed width x height buffer.
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Buffer{
		data:   make([]byte, width*height*bytesPerPixel),
		width:  width,
		height: height,
	}, nil
}

// FromRaw wraps existing RGBA data without copying.
// len(data) must be exactly width*height*4.
func FromRaw(data []byte, width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(data) != width*height*bytesPerPixel {
		return nil, ErrDataSize
	}
	return &Buffer{data: data, width: width, height: height}, nil
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Stride returns the number of bytes per row.
func (b *Buffer) Stride() int {
	return b.width * bytesPerPixel
}

// Bounds returns the buffer rectangle, always anchored at (0, 0).
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// Data returns the raw pixel data slice.
func (b *Buffer) Data() []byte {
	return b.data
}

// RowBytes returns the pixel data for row y.
// Returns nil if y is out of bounds.
func (b *Buffer) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.Stride()
	return b.data[start : start+b.Stride()]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *Buffer) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.Stride() + x*bytesPerPixel
}

// GetRGBA returns the color at (x, y).
// Returns (0,0,0,0) if coordinates are out of bounds.
func (b *Buffer) GetRGBA(x, y int) (r, g, bl, a uint8) {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return 0, 0, 0, 0
	}
	p := b.data[off : off+bytesPerPixel]
	return p[0], p[1], p[2], p[3]
}

// SetRGBA sets the color at (x, y).
// Returns ErrOutOfBounds if coordinates are outside the buffer.
func (b *Buffer) SetRGBA(x, y int, r, g, bl, a uint8) error {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	p := b.data[off : off+bytesPerPixel]
	p[0], p[1], p[2], p[3] = r, g, bl, a
	return nil
}

// Fill sets every pixel to the given color.
func (b *Buffer) Fill(r, g, bl, a uint8) {
	if len(b.data) == 0 {
		return
	}
	b.data[0], b.data[1], b.data[2], b.data[3] = r, g, bl, a
	// Doubling copy.
	for n := bytesPerPixel; n < len(b.data); n *= 2 {
		copy(b.data[n:], b.data[:n])
	}
}

// FlipRows mirrors the rows of region r in place: row r.Min.Y swaps with
// row r.Max.Y-1 and so on. Columns outside r are untouched.
func (b *Buffer) FlipRows(r image.Rectangle) error {
	if r.Empty() {
		return nil
	}
	if !r.In(b.Bounds()) {
		return ErrOutOfBounds
	}
	x0 := r.Min.X * bytesPerPixel
	x1 := r.Max.X * bytesPerPixel
	tmp := make([]byte, x1-x0)
	for top, bottom := r.Min.Y, r.Max.Y-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := b.RowBytes(top)[x0:x1]
		c := b.RowBytes(bottom)[x0:x1]
		copy(tmp, a)
		copy(a, c)
		copy(c, tmp)
	}
	return nil
}

// Blit copies src into b with its top-left corner at dst.
// When flip is set, source row h-1-y lands on destination row y.
func (b *Buffer) Blit(dst image.Point, src *Buffer, flip bool) error {
	r := image.Rectangle{Min: dst, Max: dst.Add(image.Pt(src.width, src.height))}
	if !r.In(b.Bounds()) {
		return ErrOutOfBounds
	}
	x0 := dst.X * bytesPerPixel
	x1 := x0 + src.Stride()
	for y := range src.height {
		sy := y
		if flip {
			sy = src.height - 1 - y
		}
		copy(b.RowBytes(dst.Y + y)[x0:x1], src.RowBytes(sy))
	}
	return nil
}

// ToNRGBA returns a copy of the buffer as a straight-alpha *image.NRGBA.
func (b *Buffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(b.Bounds())
	copy(img.Pix, b.data)
	return img
}
