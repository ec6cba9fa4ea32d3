package texatlas

import "github.com/gogpu/gputypes"

// TextureDescriptor describes a sampled RGBA8 texture that can receive the
// canvas through a queue write.
func (a *Atlas) TextureDescriptor(label string) gputypes.TextureDescriptor {
	return gputypes.TextureDescriptor{
		Label:         label,
		Size:          gputypes.NewExtent2D(uint32(a.Width), uint32(a.Height)),
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	}
}

// DataLayout describes Pixels for a queue texture write.
//
// Rows are tightly packed. Buffer-to-texture copies need BytesPerRow
// aligned to 256; use PaddedRows for those.
func (a *Atlas) DataLayout() gputypes.TextureDataLayout {
	return gputypes.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(a.Width * 4),
		RowsPerImage: uint32(a.Height),
	}
}

// copyRowAlignment is the BytesPerRow alignment of buffer-to-texture copies.
const copyRowAlignment = 256

// PaddedRows returns the canvas with every row padded to a multiple of 256
// bytes, together with the matching layout.
func (a *Atlas) PaddedRows() ([]byte, gputypes.TextureDataLayout) {
	row := a.Width * 4
	stride := (row + copyRowAlignment - 1) / copyRowAlignment * copyRowAlignment
	layout := gputypes.TextureDataLayout{
		BytesPerRow:  uint32(stride),
		RowsPerImage: uint32(a.Height),
	}
	if stride == row {
		return a.Pixels, layout
	}
	out := make([]byte, stride*a.Height)
	for y := range a.Height {
		copy(out[y*stride:], a.Pixels[y*row:(y+1)*row])
	}
	return out, layout
}
