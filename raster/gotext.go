package raster

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
)

// GoText parses fonts with github.com/go-text/typesetting. It reads CFF
// outlines and glyphs carried inside SVG or bitmap tables that also ship an
// outline, which the SFNT backend rejects.
type GoText struct{}

// NewGoText returns the go-text/typesetting backed parser.
func NewGoText() *GoText {
	return &GoText{}
}

// Parse implements Parser.Parse.
func (p *GoText) Parse(data []byte) (Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	ext, ok := face.FontHExtents()
	if !ok {
		return nil, fmt.Errorf("%w: missing horizontal extents", ErrParse)
	}
	src := &gotextFont{
		face:    face,
		ascent:  ext.Ascender,
		descent: -ext.Descender,
	}
	return &outlineFace{src: src}, nil
}

// gotextFont wraps a font.Face, which caches lookups internally and so
// needs a lock.
type gotextFont struct {
	mu      sync.Mutex
	face    *font.Face
	ascent  float32
	descent float32
}

func (f *gotextFont) vmetrics() (float32, float32) {
	return f.ascent, f.descent
}

func (f *gotextFont) glyph(r rune) ([]segment, float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Missing runes resolve to glyph 0, the notdef glyph.
	gid, _ := f.face.NominalGlyph(r)
	adv := f.face.HorizontalAdvance(gid)

	var outline font.GlyphOutline
	switch d := f.face.GlyphData(gid).(type) {
	case font.GlyphOutline:
		outline = d
	case font.GlyphSVG:
		outline = d.Outline
	case font.GlyphBitmap:
		if d.Outline == nil {
			return nil, 0, fmt.Errorf("bitmap glyph %d has no outline", gid)
		}
		outline = *d.Outline
	case nil:
		return nil, adv, nil
	default:
		return nil, 0, fmt.Errorf("unsupported glyph data %T", d)
	}

	segs := make([]segment, 0, len(outline.Segments))
	for _, s := range outline.Segments {
		out := segment{}
		switch s.Op {
		case ot.SegmentOpMoveTo:
			out.op = opMoveTo
		case ot.SegmentOpLineTo:
			out.op = opLineTo
		case ot.SegmentOpQuadTo:
			out.op = opQuadTo
		case ot.SegmentOpCubeTo:
			out.op = opCubeTo
		default:
			continue
		}
		// Font units have Y up; flip to match the sfnt backend.
		for i := range out.op.points() {
			out.pts[i] = [2]float32{s.Args[i].X, -s.Args[i].Y}
		}
		segs = append(segs, out)
	}
	return segs, adv, nil
}
