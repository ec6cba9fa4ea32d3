package texatlas

import (
	"fmt"

	"github.com/gogpu/texatlas/rectpack"
)

// item is one atlas entry in build order: every glyph of every font in
// request order, then every image.
type item struct {
	font  *fontRequest
	glyph rune
	m     GlyphMetrics

	image *imageRequest
}

func (it *item) isGlyph() bool { return it.font != nil }

func (it *item) id() string {
	if it.isGlyph() {
		return it.font.id
	}
	return it.image.id
}

// bitmapSize is the pixel size of the entry before padding.
func (it *item) bitmapSize() (w, h int) {
	if it.isGlyph() {
		return it.m.Width, it.m.Height
	}
	return it.image.pix.Width(), it.image.pix.Height()
}

// planGlyphs measures every requested glyph.
func planGlyphs(fonts []fontRequest, oversampling int) ([]item, error) {
	n := 0
	for i := range fonts {
		n += len(fonts[i].glyphs)
	}
	items := make([]item, 0, n)
	for i := range fonts {
		f := &fonts[i]
		for _, r := range f.glyphs {
			m, err := f.face.Measure(r, float64(f.size), oversampling)
			if err != nil {
				return nil, fmt.Errorf("%w: font %q glyph %U: %w", ErrDecodeFailure, f.id, r, err)
			}
			items = append(items, item{font: f, glyph: r, m: m})
		}
	}
	return items, nil
}

// planImages appends one item per image.
func planImages(items []item, images []imageRequest) []item {
	for i := range images {
		items = append(items, item{image: &images[i]})
	}
	return items
}

// rectangles turns items into packer input. Entries with no area are
// left out and stay at the origin, as zero-sized boxes.
func rectangles(items []item, padding int) []rectpack.Rect {
	rects := make([]rectpack.Rect, 0, len(items))
	for i := range items {
		w, h := items[i].bitmapSize()
		w, h = w+padding, h+padding
		if w <= 0 || h <= 0 {
			continue
		}
		rects = append(rects, rectpack.Rect{ID: i, W: w, H: h})
	}
	return rects
}
