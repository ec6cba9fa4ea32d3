// Package raster turns font outlines into glyph coverage bitmaps for the
// atlas builder.
//
// Rasterization is split in two phases because the packer needs every
// bitmap size before it can place anything, but nothing can be rendered
// until placement is known:
//
//	m, _ := face.Measure('A', 32, 2)         // size and metrics only
//	dst := image.NewAlpha(image.Rect(0, 0, m.Width, m.Height))
//	_ = face.Render('A', 32, 2, dst)         // coverage into dst
//
// Sizes are pixel heights: a font at size 32 is scaled so that its
// ascender-to-descender extent spans 32 pixels.
//
// Two parsers are provided: SFNT (golang.org/x/image/font/sfnt) and GoText
// (github.com/go-text/typesetting). Both draw outlines with
// golang.org/x/image/vector and lay out bitmaps the same way. Their
// vertical metrics can differ slightly, since go-text prefers OS/2 typo
// metrics where the font asks for them.
package raster

import (
	"errors"
	"image"
)

// Sentinel errors for raster package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("raster: empty font data")

	// ErrParse is returned when font data cannot be parsed.
	ErrParse = errors.New("raster: failed to parse font")

	// ErrGlyph is returned when a glyph outline cannot be loaded.
	ErrGlyph = errors.New("raster: failed to load glyph")

	// ErrInvalidSize is returned for non-positive sizes or oversampling.
	ErrInvalidSize = errors.New("raster: invalid size")

	// ErrDestination is returned when the Render target does not match the
	// measured bitmap size.
	ErrDestination = errors.New("raster: destination size mismatch")
)

// Metrics describes one rasterized glyph.
type Metrics struct {
	// Width and Height are the coverage bitmap size in oversampled pixels,
	// including the oversampling-1 extra columns and rows the prefilter
	// spills into.
	Width, Height int

	// XOffset and YOffset place the bitmap's top-left corner relative to
	// the pen position on the baseline, Y pointing down, in output
	// (un-oversampled) pixels.
	XOffset, YOffset float32

	// Advance is the horizontal pen advance in output pixels.
	Advance float32
}

// Face rasterizes the glyphs of one parsed font.
//
// Implementations in this package are safe for concurrent use.
type Face interface {
	// Measure returns the bitmap size and metrics of r at the given pixel
	// size and oversampling factor. Codepoints missing from the font map to
	// the font's notdef glyph.
	Measure(r rune, size float64, oversampling int) (Metrics, error)

	// Render writes the coverage of r into dst, whose bounds must be exactly
	// Metrics.Width x Metrics.Height. Rows are top-down.
	Render(r rune, size float64, oversampling int, dst *image.Alpha) error
}

// Parser parses font files into Faces.
type Parser interface {
	Parse(data []byte) (Face, error)
}
