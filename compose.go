package texatlas

import (
	"fmt"
	"image"

	"github.com/gogpu/texatlas/internal/pixbuf"
	"github.com/gogpu/texatlas/rectpack"
)

// renderGlyphs draws the coverage bitmap of every glyph item.
// Entries without pixels get a nil mask.
func renderGlyphs(items []item, oversampling int) ([]*image.Alpha, error) {
	masks := make([]*image.Alpha, len(items))
	for i := range items {
		it := &items[i]
		if !it.isGlyph() || it.m.Width <= 0 || it.m.Height <= 0 {
			continue
		}
		mask := image.NewAlpha(image.Rect(0, 0, it.m.Width, it.m.Height))
		if err := it.font.face.Render(it.glyph, float64(it.font.size), oversampling, mask); err != nil {
			return nil, fmt.Errorf("%w: font %q glyph %U: %w", ErrDecodeFailure, it.font.id, it.glyph, err)
		}
		masks[i] = mask
	}
	return masks, nil
}

// compose paints every item into a fresh transparent white canvas.
func compose(items []item, placed []rectpack.Rect, masks []*image.Alpha, width, height int, o *buildOptions) (*pixbuf.Buffer, error) {
	canvas, err := pixbuf.New(width, height)
	if err != nil {
		return nil, err
	}
	canvas.Fill(0xff, 0xff, 0xff, 0)

	flip := o.rowOrder == BottomUp
	for i := range items {
		it := &items[i]
		at := image.Pt(placed[i].X+o.padding, placed[i].Y+o.padding)

		if !it.isGlyph() {
			if err := canvas.Blit(at, it.image.pix, flip); err != nil {
				return nil, fmt.Errorf("texatlas: image %q at %v: %w", it.image.id, at, err)
			}
			continue
		}

		mask := masks[i]
		if mask == nil {
			continue
		}
		if err := paintCoverage(canvas, at, mask); err != nil {
			return nil, fmt.Errorf("texatlas: glyph %U of %q at %v: %w", it.glyph, it.font.id, at, err)
		}
		if flip {
			region := image.Rectangle{Min: at, Max: at.Add(mask.Rect.Size())}
			if err := canvas.FlipRows(region); err != nil {
				return nil, err
			}
		}
	}
	return canvas, nil
}

// paintCoverage writes mask as the alpha of white pixels at dst.
func paintCoverage(canvas *pixbuf.Buffer, dst image.Point, mask *image.Alpha) error {
	w, h := mask.Rect.Dx(), mask.Rect.Dy()
	for y := range h {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x, a := range row {
			if err := canvas.SetRGBA(dst.X+x, dst.Y+y, 0xff, 0xff, 0xff, a); err != nil {
				return err
			}
		}
	}
	return nil
}
