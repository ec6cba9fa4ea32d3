package texatlas

import (
	"errors"
	"fmt"
	"image"
)

// fakeFont is font data accepted by fakeRasterizer.
var fakeFont = []byte("fake font")

// fakeRasterizer produces deterministic glyphs: space is blank, every other
// rune is (4 + r%7) x size pixels, each bitmap row y holding coverage y+1.
type fakeRasterizer struct {
	parses int
}

func newFakeRasterizer() *fakeRasterizer { return &fakeRasterizer{} }

func (f *fakeRasterizer) Parse(data []byte) (FontFace, error) {
	f.parses++
	if string(data) != string(fakeFont) {
		return nil, errors.New("fake: not a font")
	}
	return fakeFace{}, nil
}

type fakeFace struct{}

func fakeSize(r rune, size int) (int, int) {
	if r == ' ' {
		return 0, 0
	}
	return 4 + int(r)%7, size
}

func (fakeFace) Measure(r rune, size float64, oversampling int) (GlyphMetrics, error) {
	if r < 0 {
		return GlyphMetrics{}, errors.New("fake: negative rune")
	}
	w, h := fakeSize(r, int(size))
	return GlyphMetrics{
		Width:   w * oversampling,
		Height:  h * oversampling,
		XOffset: 1.5,
		YOffset: -float32(h),
		Advance: float32(w) + 1,
	}, nil
}

func (fakeFace) Render(r rune, size float64, oversampling int, dst *image.Alpha) error {
	w, h := fakeSize(r, int(size))
	b := dst.Bounds()
	if b.Dx() != w*oversampling || b.Dy() != h*oversampling {
		return fmt.Errorf("fake: destination %v for %U", b, r)
	}
	for y := range b.Dy() {
		for x := range b.Dx() {
			dst.Pix[dst.PixOffset(b.Min.X+x, b.Min.Y+y)] = uint8(y + 1)
		}
	}
	return nil
}

// fakeDecoder decodes "WxH" strings into opaque gray images.
type fakeDecoder struct{}

func (fakeDecoder) Decode(data []byte) ([]byte, int, int, error) {
	var w, h int
	if _, err := fmt.Sscanf(string(data), "%dx%d", &w, &h); err != nil {
		return nil, 0, 0, err
	}
	pix := make([]byte, w*h*4)
	for i := range pix {
		pix[i] = 0x80
	}
	return pix, w, h, nil
}

// solid returns w*h pixels of one color.
func solid(w, h int, r, g, b, a uint8) []byte {
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, a
	}
	return pix
}
