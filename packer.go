package texatlas

import (
	"errors"
	"image"

	"github.com/gogpu/texatlas/codec"
	"github.com/gogpu/texatlas/glyphset"
	"github.com/gogpu/texatlas/internal/fontcache"
	"github.com/gogpu/texatlas/internal/pixbuf"
	"github.com/gogpu/texatlas/raster"
)

// GlyphRasterizer parses font data into a FontFace.
type GlyphRasterizer = raster.Parser

// FontFace measures and renders glyphs of one parsed font.
type FontFace = raster.Face

// GlyphMetrics describes one glyph bitmap as measured by a FontFace.
type GlyphMetrics = raster.Metrics

// ImageDecoder turns encoded image bytes into straight-alpha RGBA pixels.
type ImageDecoder = codec.Decoder

type fontRequest struct {
	id     string
	data   []byte
	face   FontFace
	size   int
	glyphs []rune
}

type imageRequest struct {
	id  string
	pix *pixbuf.Buffer
}

// Packer accumulates font and image requests and builds atlases from them.
//
// Requests are validated and copied when they are added, so a failed call
// leaves the Packer unchanged and later changes to the caller's slices have
// no effect. Build never consumes requests: after an out of space failure
// the same Packer can be built again with a larger canvas.
//
// A Packer is not safe for concurrent use. Distinct Packers share nothing
// and may build concurrently.
type Packer struct {
	rasterizer GlyphRasterizer
	decoder    ImageDecoder

	// faces parses each distinct font payload once across requests.
	faces *fontcache.Cache[FontFace]

	fonts  []fontRequest
	images []imageRequest
}

// New creates an empty Packer.
//
// Example:
//
//	p := texatlas.New()
//	if err := p.AddFont("body", ttf, 16); err != nil { ... }
//	atlas, err := p.Build(ctx, 256, 256, texatlas.WithOversampling(2))
func New(opts ...PackerOption) *Packer {
	o := defaultPackerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Packer{
		rasterizer: o.rasterizer,
		decoder:    o.decoder,
		faces:      fontcache.New[FontFace](0),
	}
}

// AddFont requests glyphs of a font rasterized at size pixels from
// ascender to descender. Without glyphs the printable ASCII range 32..126
// is used. An explicitly spread empty slice, as in AddFont(id, data, size,
// []rune{}...), is rejected like an empty AddFontGlyphs list.
// Repeated codepoints are requested once.
func (p *Packer) AddFont(id string, data []byte, size int, glyphs ...rune) error {
	if glyphs == nil {
		glyphs = glyphset.Printable()
	}
	return p.AddFontGlyphs(id, data, size, glyphs)
}

// AddFontGlyphs is AddFont with an explicit glyph list, which must not be
// empty.
func (p *Packer) AddFontGlyphs(id string, data []byte, size int, glyphs []rune) error {
	if len(glyphs) == 0 {
		return invalidArgf("font %q: empty glyph set", id)
	}
	return p.addFont(id, data, size, glyphs)
}

func (p *Packer) addFont(id string, data []byte, size int, glyphs []rune) error {
	if size <= 0 {
		return invalidArgf("font %q: size %d", id, size)
	}

	owned := make([]byte, len(data))
	copy(owned, data)
	face, err := p.faces.Get(owned, p.rasterizer.Parse)
	if err != nil {
		Logger().Warn("texatlas: font rejected", "id", id, "err", err)
		return decodeFailure("font", id, err)
	}

	p.fonts = append(p.fonts, fontRequest{
		id:     id,
		data:   owned,
		face:   face,
		size:   size,
		glyphs: glyphset.Merge(glyphs),
	})
	return nil
}

// AddImage requests an image given as straight-alpha RGBA pixels,
// row-major from the top-left corner.
func (p *Packer) AddImage(id string, pixels []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		return invalidArgf("image %q: size %dx%d", id, width, height)
	}
	if len(pixels) != width*height*4 {
		return invalidArgf("image %q: %d bytes for %dx%d pixels", id, len(pixels), width, height)
	}
	owned := make([]byte, len(pixels))
	copy(owned, pixels)
	return p.addImage(id, owned, width, height)
}

// AddEncodedImage decodes data with the Packer's ImageDecoder and requests
// the result.
func (p *Packer) AddEncodedImage(id string, data []byte) error {
	pix, w, h, err := p.decoder.Decode(data)
	if err == nil && (w <= 0 || h <= 0 || len(pix) != w*h*4) {
		err = errors.New("decoder returned inconsistent dimensions")
	}
	if err != nil {
		Logger().Warn("texatlas: image rejected", "id", id, "err", err)
		return decodeFailure("image", id, err)
	}
	// Decoders may return shared buffers.
	owned := make([]byte, len(pix))
	copy(owned, pix)
	return p.addImage(id, owned, w, h)
}

// AddImageFrom requests any image.Image, converted to straight alpha.
func (p *Packer) AddImageFrom(id string, img image.Image) error {
	pix, w, h, err := codec.RGBA(img)
	if err != nil {
		return invalidArgf("image %q: %v", id, err)
	}
	return p.addImage(id, pix, w, h)
}

func (p *Packer) addImage(id string, owned []byte, width, height int) error {
	buf, err := pixbuf.FromRaw(owned, width, height)
	if err != nil {
		return invalidArgf("image %q: %v", id, err)
	}
	p.images = append(p.images, imageRequest{id: id, pix: buf})
	return nil
}

// Len returns the number of pending requests.
func (p *Packer) Len() int {
	return len(p.fonts) + len(p.images)
}

// Fonts returns the number of pending font requests.
func (p *Packer) Fonts() int {
	return len(p.fonts)
}

// Images returns the number of pending image requests.
func (p *Packer) Images() int {
	return len(p.images)
}

// Reset drops every pending request and every parsed font.
func (p *Packer) Reset() {
	p.faces.Clear()
	clear(p.fonts)
	clear(p.images)
	p.fonts = p.fonts[:0]
	p.images = p.images[:0]
}
