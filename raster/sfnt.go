package raster

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// SFNT parses TrueType and OpenType fonts with golang.org/x/image/font/sfnt.
// It is the default Parser.
type SFNT struct{}

// NewSFNT returns the golang.org/x/image backed parser.
func NewSFNT() *SFNT {
	return &SFNT{}
}

// Parse implements Parser.Parse.
func (p *SFNT) Parse(data []byte) (Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	// The Face reads outlines from data on demand.
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	src := &sfntFont{font: f, ppem: fixed.I(int(f.UnitsPerEm()))}
	var buf sfnt.Buffer
	m, err := f.Metrics(&buf, src.ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("%w: metrics: %w", ErrParse, err)
	}
	src.ascent = fixedToFloat32(m.Ascent)
	src.descent = fixedToFloat32(m.Descent)
	return &outlineFace{src: src}, nil
}

// sfntFont reads outlines at ppem == unitsPerEm, which yields coordinates
// in font units.
type sfntFont struct {
	font    *sfnt.Font
	ppem    fixed.Int26_6
	ascent  float32
	descent float32
}

func (f *sfntFont) vmetrics() (float32, float32) {
	return f.ascent, f.descent
}

func (f *sfntFont) glyph(r rune) ([]segment, float32, error) {
	var buf sfnt.Buffer

	// Missing runes resolve to glyph 0, the notdef glyph.
	gi, err := f.font.GlyphIndex(&buf, r)
	if err != nil {
		return nil, 0, err
	}
	adv, err := f.font.GlyphAdvance(&buf, gi, f.ppem, font.HintingNone)
	if err != nil {
		return nil, 0, err
	}
	raw, err := f.font.LoadGlyph(&buf, gi, f.ppem, nil)
	if err != nil {
		return nil, 0, err
	}

	segs := make([]segment, 0, len(raw))
	for _, s := range raw {
		out := segment{}
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			out.op = opMoveTo
		case sfnt.SegmentOpLineTo:
			out.op = opLineTo
		case sfnt.SegmentOpQuadTo:
			out.op = opQuadTo
		case sfnt.SegmentOpCubeTo:
			out.op = opCubeTo
		default:
			continue
		}
		for i := range out.op.points() {
			out.pts[i] = [2]float32{fixedToFloat32(s.Args[i].X), fixedToFloat32(s.Args[i].Y)}
		}
		segs = append(segs, out)
	}
	return segs, fixedToFloat32(adv), nil
}

// fixedToFloat32 converts fixed.Int26_6 to float32.
func fixedToFloat32(x fixed.Int26_6) float32 {
	return float32(x) / 64
}
