package raster

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/vector"
)

type segmentOp uint8

const (
	opMoveTo segmentOp = iota
	opLineTo
	opQuadTo
	opCubeTo
)

// segment is one outline command in font units, Y pointing down.
type segment struct {
	op  segmentOp
	pts [3][2]float32
}

// outlineFont is what a font backend has to provide for the shared
// measuring and drawing code.
type outlineFont interface {
	// vmetrics returns ascender and descender in font units, both positive.
	vmetrics() (ascent, descent float32)

	// glyph returns the outline and advance of r in font units.
	glyph(r rune) ([]segment, float32, error)
}

// box is a glyph bitmap box in oversampled pixels, relative to the origin.
type box struct {
	x0, y0, x1, y1 int
}

func (b box) dx() int { return b.x1 - b.x0 }
func (b box) dy() int { return b.y1 - b.y0 }

// outlineFace implements Face over any outlineFont.
type outlineFace struct {
	src outlineFont
}

func (f *outlineFace) scale(size float64) (float32, error) {
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return 0, fmt.Errorf("%w: size %v", ErrInvalidSize, size)
	}
	asc, desc := f.src.vmetrics()
	if asc+desc <= 0 {
		return 0, fmt.Errorf("%w: font has no vertical extent", ErrParse)
	}
	return float32(size) / (asc + desc), nil
}

// layout loads r and computes its oversampled bitmap box.
func (f *outlineFace) layout(r rune, size float64, oversampling int) (segs []segment, b box, scale, advance float32, err error) {
	if oversampling < 1 {
		return nil, box{}, 0, 0, fmt.Errorf("%w: oversampling %d", ErrInvalidSize, oversampling)
	}
	scale, err = f.scale(size)
	if err != nil {
		return nil, box{}, 0, 0, err
	}
	segs, advance, err = f.src.glyph(r)
	if err != nil {
		return nil, box{}, 0, 0, fmt.Errorf("%w %U: %w", ErrGlyph, r, err)
	}
	if len(segs) == 0 {
		return nil, box{}, scale, advance, nil
	}

	s := scale * float32(oversampling)
	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := float32(-math.MaxFloat32), float32(-math.MaxFloat32)
	for _, seg := range segs {
		for _, p := range seg.pts[:seg.op.points()] {
			minX, maxX = min(minX, p[0]), max(maxX, p[0])
			minY, maxY = min(minY, p[1]), max(maxY, p[1])
		}
	}
	b = box{
		x0: int(math.Floor(float64(minX * s))),
		y0: int(math.Floor(float64(minY * s))),
		x1: int(math.Ceil(float64(maxX * s))),
		y1: int(math.Ceil(float64(maxY * s))),
	}
	return segs, b, scale, advance, nil
}

// Measure implements Face.Measure.
func (f *outlineFace) Measure(r rune, size float64, oversampling int) (Metrics, error) {
	_, b, scale, advance, err := f.layout(r, size, oversampling)
	if err != nil {
		return Metrics{}, err
	}
	n := float32(oversampling)
	shift := subpixelShift(oversampling)
	return Metrics{
		Width:   b.dx() + oversampling - 1,
		Height:  b.dy() + oversampling - 1,
		XOffset: float32(b.x0)/n + shift,
		YOffset: float32(b.y0)/n + shift,
		Advance: advance * scale,
	}, nil
}

// Render implements Face.Render.
func (f *outlineFace) Render(r rune, size float64, oversampling int, dst *image.Alpha) error {
	segs, b, scale, _, err := f.layout(r, size, oversampling)
	if err != nil {
		return err
	}
	bounds := dst.Bounds()
	if bounds.Dx() != b.dx()+oversampling-1 || bounds.Dy() != b.dy()+oversampling-1 {
		return fmt.Errorf("%w: %U wants %dx%d, got %dx%d", ErrDestination, r,
			b.dx()+oversampling-1, b.dy()+oversampling-1, bounds.Dx(), bounds.Dy())
	}
	if b.dx() == 0 || b.dy() == 0 {
		return nil
	}

	s := scale * float32(oversampling)
	ox, oy := float32(b.x0), float32(b.y0)
	pt := func(p [2]float32) (float32, float32) {
		return p[0]*s - ox, p[1]*s - oy
	}

	z := vector.NewRasterizer(b.dx(), b.dy())
	for _, seg := range segs {
		switch seg.op {
		case opMoveTo:
			z.ClosePath()
			z.MoveTo(pt(seg.pts[0]))
		case opLineTo:
			z.LineTo(pt(seg.pts[0]))
		case opQuadTo:
			bx, by := pt(seg.pts[0])
			cx, cy := pt(seg.pts[1])
			z.QuadTo(bx, by, cx, cy)
		case opCubeTo:
			bx, by := pt(seg.pts[0])
			cx, cy := pt(seg.pts[1])
			dx, dy := pt(seg.pts[2])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	z.ClosePath()

	target := image.Rect(0, 0, b.dx(), b.dy()).Add(bounds.Min)
	z.Draw(dst, target, image.Opaque, image.Point{})

	if oversampling > 1 {
		prefilter(dst, oversampling)
	}
	return nil
}

func (op segmentOp) points() int {
	switch op {
	case opQuadTo:
		return 2
	case opCubeTo:
		return 3
	default:
		return 1
	}
}

// subpixelShift recentres an oversampled bitmap after the box prefilter,
// which smears coverage (n-1) oversampled pixels right and down.
func subpixelShift(n int) float32 {
	if n <= 1 {
		return 0
	}
	return -float32(n-1) / (2 * float32(n))
}
