// Package texatlas packs font glyphs and images into a single RGBA texture
// atlas and reports where each of them landed.
//
// # Quick Start
//
//	p := texatlas.New()
//	if err := p.AddFont("body", goregular.TTF, 16); err != nil {
//	    return err
//	}
//	if err := p.AddEncodedImage("logo", pngBytes); err != nil {
//	    return err
//	}
//	atlas, err := p.Build(ctx, 256, 256, texatlas.WithOversampling(2))
//	if err != nil {
//	    return err
//	}
//	g, _ := atlas.Lookup.Glyph("body", 'A')
//
// # Pipeline
//
// A [Packer] collects requests. [Packer.Build] measures every glyph through
// the font's [FontFace], packs all rectangles at once with the skyline
// packer of package rectpack, renders the glyphs, paints glyph coverage as
// alpha over white and copies image pixels, then derives the [Lookup].
// Pixels no entry covers stay transparent white, so glyphs can be tinted
// by the renderer.
//
// # Coordinates
//
// Boxes are canvas pixels with the origin at the top-left. Each entry is
// preceded by Padding empty pixels on its top and left edges, which keeps
// Padding pixels between any two entries. With the default [BottomUp] row
// order every entry is stored vertically mirrored inside its own box.
// Glyph offsets are relative to the pen position on the baseline with Y
// pointing up.
//
// # Collaborators
//
// Font parsing and glyph rasterization sit behind [GlyphRasterizer]; the
// implementations live in package raster. Image decoding sits behind
// [ImageDecoder]; the standard decoder lives in package codec. Both can be
// replaced with [WithRasterizer] and [WithDecoder].
//
// # Logging
//
// texatlas is silent by default. Use [SetLogger] to receive build
// diagnostics through log/slog.
package texatlas
