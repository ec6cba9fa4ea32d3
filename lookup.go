package texatlas

import (
	"encoding/json"
	"strconv"

	"github.com/gogpu/texatlas/rectpack"
)

// Box is a pixel rectangle in the canvas, X1 and Y1 exclusive.
type Box struct {
	X0, Y0, X1, Y1 int
}

// MarshalJSON encodes the box as [x0, y0, x1, y1].
func (b Box) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]int{b.X0, b.Y0, b.X1, b.Y1})
}

// UV is a Box divided by the canvas size.
type UV struct {
	U0, V0, U1, V1 float32
}

// MarshalJSON encodes the box as [u0, v0, u1, v1].
func (uv UV) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float32{uv.U0, uv.V0, uv.U1, uv.V1})
}

// Vec is a pair of float32 values, used for render sizes and offsets.
type Vec struct {
	X, Y float32
}

// MarshalJSON encodes the vector as [x, y].
func (v Vec) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float32{v.X, v.Y})
}

// GlyphEntry locates one glyph in the atlas.
type GlyphEntry struct {
	Box Box `json:"box"`
	UV  UV  `json:"uv"`

	// Size is the bitmap size scaled back by the oversampling factor.
	Size Vec `json:"size"`

	// Offset places the bitmap relative to the pen position on the
	// baseline, with Y pointing up.
	Offset Vec `json:"offset"`

	// Advance is the horizontal pen advance in pixels.
	Advance float32 `json:"advance"`
}

// ImageEntry locates one image in the atlas.
type ImageEntry struct {
	Box  Box `json:"box"`
	UV   UV  `json:"uv"`
	Size Vec `json:"size"`
}

// Record is the lookup value of one identifier: a glyph table for fonts,
// a single entry for images.
type Record struct {
	Glyphs map[rune]GlyphEntry
	Image  *ImageEntry
}

// IsFont reports whether the record came from a font request.
func (r Record) IsFont() bool { return r.Image == nil }

// MarshalJSON encodes fonts as an object keyed by decimal codepoint and
// images as a single entry.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.Image != nil {
		return json.Marshal(r.Image)
	}
	glyphs := make(map[string]GlyphEntry, len(r.Glyphs))
	for cp, e := range r.Glyphs {
		glyphs[strconv.Itoa(int(cp))] = e
	}
	return json.Marshal(glyphs)
}

// Lookup maps request identifiers to their atlas records. Fonts and images
// share one namespace; when identifiers repeat, the last request wins and
// fonts are written before images.
type Lookup map[string]Record

// Glyph returns the entry of codepoint r in font id.
func (l Lookup) Glyph(id string, r rune) (GlyphEntry, bool) {
	rec, ok := l[id]
	if !ok || rec.Image != nil {
		return GlyphEntry{}, false
	}
	e, ok := rec.Glyphs[r]
	return e, ok
}

// Image returns the entry of image id.
func (l Lookup) Image(id string) (ImageEntry, bool) {
	rec, ok := l[id]
	if !ok || rec.Image == nil {
		return ImageEntry{}, false
	}
	return *rec.Image, true
}

// buildLookup derives every record from the placements.
func buildLookup(items []item, placed []rectpack.Rect, width, height int, o *buildOptions) Lookup {
	lookup := make(Lookup)
	var (
		cur   *fontRequest
		table map[rune]GlyphEntry
	)
	for i := range items {
		it := &items[i]
		box, uv := placement(placed[i], o.padding, width, height)

		if !it.isGlyph() {
			w, h := it.bitmapSize()
			lookup[it.image.id] = Record{Image: &ImageEntry{
				Box:  box,
				UV:   uv,
				Size: Vec{float32(w), float32(h)},
			}}
			continue
		}

		if it.font != cur {
			cur = it.font
			table = make(map[rune]GlyphEntry, len(cur.glyphs))
			lookup[cur.id] = Record{Glyphs: table}
		}
		n := float32(o.oversampling)
		size := Vec{float32(it.m.Width) / n, float32(it.m.Height) / n}
		table[it.glyph] = GlyphEntry{
			Box:     box,
			UV:      uv,
			Size:    size,
			Offset:  Vec{it.m.XOffset, -it.m.YOffset - size.Y},
			Advance: it.m.Advance,
		}
	}
	return lookup
}

// placement insets a placed rectangle by the padding on its top-left edges.
func placement(r rectpack.Rect, padding, width, height int) (Box, UV) {
	b := Box{
		X0: r.X + padding,
		Y0: r.Y + padding,
		X1: r.X + r.W,
		Y1: r.Y + r.H,
	}
	w, h := float32(width), float32(height)
	return b, UV{
		U0: float32(b.X0) / w,
		V0: float32(b.Y0) / h,
		U1: float32(b.X1) / w,
		V1: float32(b.Y1) / h,
	}
}
