package texatlas

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/texatlas/rectpack"
)

// Build packs every pending request into a width x height canvas.
//
// Glyphs are measured first, then all rectangles are packed in one pass,
// then glyphs are rendered and everything is painted. ctx is checked
// between those phases. On any error no atlas is returned and the pending
// requests are kept, so Build can be retried with other parameters.
//
// If the requests do not fit, the error is an *OutOfSpaceError naming the
// first request that could not be placed.
func (p *Packer) Build(ctx context.Context, width, height int, opts ...BuildOption) (*Atlas, error) {
	o := defaultBuildOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(width, height); err != nil {
		return nil, err
	}

	log := Logger()
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, err := planGlyphs(p.fonts, o.oversampling)
	if err != nil {
		return nil, err
	}
	glyphs := len(items)
	items = planImages(items, p.images)
	log.Debug("texatlas: measured",
		"fonts", len(p.fonts), "glyphs", glyphs, "images", len(p.images))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rects := rectangles(items, o.padding)
	pw, ph := o.packArea(width, height)
	res, err := rectpack.Pack(pw, ph, rects)
	if err != nil {
		return nil, outOfSpace(err, items, width, height)
	}
	placed := make([]rectpack.Rect, len(items))
	for i := range items {
		w, h := items[i].bitmapSize()
		placed[i] = rectpack.Rect{ID: i, W: w + o.padding, H: h + o.padding}
	}
	for _, r := range rects {
		placed[r.ID] = r
	}
	log.Debug("texatlas: packed",
		"rects", len(rects), "canvas", fmt.Sprintf("%dx%d", width, height),
		"utilization", res.Utilization, "skyline", res.Nodes)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	masks, err := renderGlyphs(items, o.oversampling)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	canvas, err := compose(items, placed, masks, width, height, &o)
	if err != nil {
		return nil, err
	}

	atlas := &Atlas{
		Pixels:       canvas.Data(),
		Width:        width,
		Height:       height,
		Lookup:       buildLookup(items, placed, width, height, &o),
		Oversampling: o.oversampling,
		Padding:      o.padding,
		RowOrder:     o.rowOrder,
		Utilization:  float64(res.UsedArea) / float64(width*height),
	}
	log.Debug("texatlas: built",
		"entries", len(atlas.Lookup), "elapsed", time.Since(start))
	return atlas, nil
}

// Fits reports whether the pending requests would pack into a width x height
// canvas with the given options. Glyphs are measured but nothing is
// rendered.
func (p *Packer) Fits(ctx context.Context, width, height int, opts ...BuildOption) (bool, error) {
	o := defaultBuildOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(width, height); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	items, err := planGlyphs(p.fonts, o.oversampling)
	if err != nil {
		return false, err
	}
	items = planImages(items, p.images)
	pw, ph := o.packArea(width, height)
	return rectpack.Fits(pw, ph, rectangles(items, o.padding)), nil
}

// outOfSpace maps a packer failure back to the request it came from.
func outOfSpace(err error, items []item, width, height int) error {
	var pe *rectpack.OutOfSpaceError
	if !errors.As(err, &pe) || pe.ID < 0 || pe.ID >= len(items) {
		return fmt.Errorf("texatlas: pack: %w", err)
	}
	it := &items[pe.ID]
	e := &OutOfSpaceError{
		ID:           it.id(),
		IsGlyph:      it.isGlyph(),
		Width:        pe.W,
		Height:       pe.H,
		CanvasWidth:  width,
		CanvasHeight: height,
		err:          err,
	}
	if e.IsGlyph {
		e.Glyph = it.glyph
	}
	Logger().Debug("texatlas: out of space", "id", e.ID, "w", e.Width, "h", e.Height)
	return e
}
