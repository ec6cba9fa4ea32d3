package codec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 255, 0, 255})
	img.SetNRGBA(2, 0, color.NRGBA{0, 0, 255, 255})
	img.SetNRGBA(0, 1, color.NRGBA{255, 255, 255, 255})
	img.SetNRGBA(1, 1, color.NRGBA{128, 128, 128, 255})
	img.SetNRGBA(2, 1, color.NRGBA{10, 20, 30, 255})
	return img
}

func TestStandard_Decode(t *testing.T) {
	src := testImage()

	encoders := []struct {
		name   string
		format string
		encode func(*bytes.Buffer) error
	}{
		{"png", "png", func(b *bytes.Buffer) error { return png.Encode(b, src) }},
		{"bmp", "bmp", func(b *bytes.Buffer) error { return bmp.Encode(b, src) }},
		{"tiff", "tiff", func(b *bytes.Buffer) error { return tiff.Encode(b, src, nil) }},
	}

	for _, tt := range encoders {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.encode(&buf); err != nil {
				t.Fatalf("encode: %v", err)
			}

			pix, w, h, err := NewStandard().Decode(buf.Bytes())
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if w != 3 || h != 2 {
				t.Fatalf("Decode() size = %dx%d, want 3x2", w, h)
			}
			if len(pix) != w*h*4 {
				t.Fatalf("len(pix) = %d, want %d", len(pix), w*h*4)
			}
			// Top-left pixel must be red: origin is top-left.
			if got := pix[:4]; !bytes.Equal(got, []byte{255, 0, 0, 255}) {
				t.Errorf("pixel (0,0) = %v, want red", got)
			}
			if got := pix[(1*3+2)*4:][:4]; !bytes.Equal(got, []byte{10, 20, 30, 255}) {
				t.Errorf("pixel (2,1) = %v, want {10 20 30 255}", got)
			}

			format, _, _, err := Format(buf.Bytes())
			if err != nil || format != tt.format {
				t.Errorf("Format() = %q, %v, want %q", format, err, tt.format)
			}
		})
	}
}

func TestStandard_DecodeGIF(t *testing.T) {
	pal := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{
		color.NRGBA{0, 0, 0, 0},
		color.NRGBA{255, 255, 0, 255},
	})
	pal.SetColorIndex(1, 1, 1)

	var buf bytes.Buffer
	if err := gif.Encode(&buf, pal, nil); err != nil {
		t.Fatal(err)
	}
	pix, w, h, err := NewStandard().Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if w != 2 || h != 2 {
		t.Fatalf("size = %dx%d, want 2x2", w, h)
	}
	if pix[3] != 0 {
		t.Errorf("pixel (0,0) alpha = %d, want 0", pix[3])
	}
	if got := pix[12:16]; !bytes.Equal(got, []byte{255, 255, 0, 255}) {
		t.Errorf("pixel (1,1) = %v, want yellow", got)
	}
}

func TestStandard_DecodeErrors(t *testing.T) {
	d := NewStandard()

	if _, _, _, err := d.Decode(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("Decode(nil) error = %v, want ErrEmptyData", err)
	}
	if _, _, _, err := d.Decode([]byte("not an image")); !errors.Is(err, ErrDecode) {
		t.Errorf("Decode(garbage) error = %v, want ErrDecode", err)
	}
	if _, _, _, err := Format(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("Format(nil) error = %v, want ErrEmptyData", err)
	}
}

func TestNRGBA_Unpremultiplies(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{128, 0, 0, 128})

	got := NRGBA(src).NRGBAAt(0, 0)
	want := color.NRGBA{255, 0, 0, 128}
	if got != want {
		t.Errorf("NRGBA() = %v, want %v", got, want)
	}
}

func TestNRGBA_SubImage(t *testing.T) {
	src := testImage()
	sub := src.SubImage(image.Rect(1, 1, 3, 2))

	got := NRGBA(sub)
	if got.Rect != image.Rect(0, 0, 2, 1) {
		t.Fatalf("bounds = %v, want (0,0)-(2,1)", got.Rect)
	}
	if got.Stride != 8 {
		t.Errorf("stride = %d, want 8", got.Stride)
	}
	if c := got.NRGBAAt(1, 0); c != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("pixel (1,0) = %v", c)
	}

	// The copy must not alias the source.
	got.Pix[0] = 99
	if src.Pix[src.PixOffset(1, 1)] == 99 {
		t.Error("NRGBA() aliases the source buffer")
	}
}

func TestRGBA_Empty(t *testing.T) {
	if _, _, _, err := RGBA(image.NewNRGBA(image.Rectangle{})); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("RGBA(empty) error = %v, want ErrEmptyImage", err)
	}
	if _, _, _, err := RGBA(nil); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("RGBA(nil) error = %v, want ErrEmptyImage", err)
	}
}
