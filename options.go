package texatlas

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/texatlas/codec"
	"github.com/gogpu/texatlas/raster"
)

// RowOrder selects how each entry's rows are stored inside its box.
type RowOrder uint8

const (
	// BottomUp mirrors every glyph and image vertically within its box,
	// for renderers whose texture V axis points up.
	BottomUp RowOrder = iota

	// TopDown stores rows as the rasterizer and decoder produce them.
	TopDown
)

// String returns the flag spelling of the row order.
func (o RowOrder) String() string {
	switch o {
	case BottomUp:
		return "bottom-up"
	case TopDown:
		return "top-down"
	default:
		return fmt.Sprintf("RowOrder(%d)", uint8(o))
	}
}

// ParseRowOrder parses "bottom-up" or "top-down".
func ParseRowOrder(s string) (RowOrder, error) {
	switch s {
	case "bottom-up":
		return BottomUp, nil
	case "top-down":
		return TopDown, nil
	default:
		return 0, invalidArgf("row order %q", s)
	}
}

// PackerOption configures a Packer during creation.
//
// Example:
//
//	p := texatlas.New(texatlas.WithRasterizer(raster.NewGoText()))
type PackerOption func(*packerOptions)

type packerOptions struct {
	rasterizer GlyphRasterizer
	decoder    ImageDecoder
}

func defaultPackerOptions() packerOptions {
	return packerOptions{
		rasterizer: raster.NewSFNT(),
		decoder:    codec.NewStandard(),
	}
}

// WithRasterizer sets the font parser used by AddFont.
// The default is raster.NewSFNT().
func WithRasterizer(r GlyphRasterizer) PackerOption {
	return func(o *packerOptions) {
		if r != nil {
			o.rasterizer = r
		}
	}
}

// WithDecoder sets the image decoder used by AddEncodedImage.
// The default is codec.NewStandard().
func WithDecoder(d ImageDecoder) PackerOption {
	return func(o *packerOptions) {
		if d != nil {
			o.decoder = d
		}
	}
}

// BuildOption configures a single Build call.
type BuildOption func(*buildOptions)

type buildOptions struct {
	oversampling int
	padding      int
	rowOrder     RowOrder
	maxDimension int // 0 means unlimited
}

func defaultBuildOptions() buildOptions {
	return buildOptions{
		oversampling: 1,
		padding:      1,
		rowOrder:     BottomUp,
	}
}

// WithOversampling rasterizes glyphs n times larger on both axes and
// reports their metrics scaled back by n. Default 1.
func WithOversampling(n int) BuildOption {
	return func(o *buildOptions) {
		o.oversampling = n
	}
}

// WithPadding sets the empty border, in pixels, kept between entries and
// between every entry and the canvas edges. The canvas must be larger than
// the padding.
// Default 1.
func WithPadding(n int) BuildOption {
	return func(o *buildOptions) {
		o.padding = n
	}
}

// WithRowOrder sets the row order of entries. Default BottomUp.
func WithRowOrder(r RowOrder) BuildOption {
	return func(o *buildOptions) {
		o.rowOrder = r
	}
}

// WithGPULimits rejects canvases a device with the given limits could not
// hold as a single 2D texture.
//
// Example:
//
//	atlas, err := p.Build(ctx, 4096, 4096, texatlas.WithGPULimits(gputypes.DefaultLimits()))
func WithGPULimits(l gputypes.Limits) BuildOption {
	return func(o *buildOptions) {
		o.maxDimension = int(l.MaxTextureDimension2D)
	}
}

// packArea is the part of a width x height canvas handed to the packer.
// Every rectangle carries its padding on the left and top, so leaving the
// last padding columns and rows free keeps the same gap to the far edges.
func (o *buildOptions) packArea(width, height int) (int, int) {
	return width - o.padding, height - o.padding
}

func (o *buildOptions) validate(width, height int) error {
	switch {
	case width <= 0 || height <= 0:
		return invalidArgf("canvas %dx%d", width, height)
	case o.oversampling < 1:
		return invalidArgf("oversampling %d", o.oversampling)
	case o.padding < 0:
		return invalidArgf("padding %d", o.padding)
	case o.padding >= width || o.padding >= height:
		return invalidArgf("canvas %dx%d not larger than padding %d", width, height, o.padding)
	case o.rowOrder != BottomUp && o.rowOrder != TopDown:
		return invalidArgf("row order %v", o.rowOrder)
	case o.maxDimension > 0 && (width > o.maxDimension || height > o.maxDimension):
		return invalidArgf("canvas %dx%d exceeds GPU limit %d", width, height, o.maxDimension)
	}
	return nil
}
