package texatlas

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
)

// Atlas is the result of a successful Build.
type Atlas struct {
	// Pixels holds Width*Height straight-alpha RGBA pixels, row-major from
	// the top-left corner.
	Pixels []byte

	Width, Height int

	// Lookup locates every requested glyph and image.
	Lookup Lookup

	// Build parameters the lookup was computed with.
	Oversampling int
	Padding      int
	RowOrder     RowOrder

	// Utilization is the packed share of the canvas area, padding included.
	Utilization float64
}

// Image returns the canvas as an *image.NRGBA sharing Pixels.
func (a *Atlas) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    a.Pixels,
		Stride: a.Width * 4,
		Rect:   image.Rect(0, 0, a.Width, a.Height),
	}
}

// EncodePNG writes the canvas as PNG.
func (a *Atlas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, a.Image()); err != nil {
		return fmt.Errorf("texatlas: encode PNG: %w", err)
	}
	return nil
}

type atlasJSON struct {
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Oversampling int     `json:"oversampling"`
	Padding      int     `json:"padding"`
	RowOrder     string  `json:"rowOrder"`
	Utilization  float64 `json:"utilization"`
	Entries      Lookup  `json:"entries"`
}

// MarshalJSON encodes the canvas parameters and the lookup table.
// Pixels are not included.
func (a *Atlas) MarshalJSON() ([]byte, error) {
	return json.Marshal(atlasJSON{
		Width:        a.Width,
		Height:       a.Height,
		Oversampling: a.Oversampling,
		Padding:      a.Padding,
		RowOrder:     a.RowOrder.String(),
		Utilization:  a.Utilization,
		Entries:      a.Lookup,
	})
}
