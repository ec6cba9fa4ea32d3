package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/texatlas"
	"github.com/gogpu/texatlas/glyphset"
	"github.com/gogpu/texatlas/raster"
)

type fontFlag struct {
	name   string
	path   string
	size   int
	glyphs []rune
}

type imageFlag struct {
	name string
	path string
}

type config struct {
	width, height int
	oversampling  int
	padding       int
	rowOrder      texatlas.RowOrder
	backend       string
	gpuLimits     string
	auto          bool
	out           string
	lookup        string
	verbose       bool
	summary       bool

	fonts  []fontFlag
	images []imageFlag
}

// repeated collects every occurrence of a flag through parse.
type repeated[T any] struct {
	items *[]T
	parse func(string) (T, error)
}

func (r repeated[T]) String() string { return "" }

func (r repeated[T]) Set(s string) error {
	v, err := r.parse(s)
	if err != nil {
		return err
	}
	*r.items = append(*r.items, v)
	return nil
}

func parseFlags(args []string, output io.Writer) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("texatlas", flag.ContinueOnError)
	fs.SetOutput(output)

	size := fs.String("size", "256x256", "canvas size WxH")
	rowOrder := fs.String("row-order", texatlas.BottomUp.String(), "entry row order: bottom-up or top-down")
	fs.IntVar(&cfg.oversampling, "oversampling", 1, "glyph oversampling factor")
	fs.IntVar(&cfg.padding, "padding", 1, "empty pixels between entries")
	fs.StringVar(&cfg.backend, "backend", "sfnt", "font backend: sfnt or gotext")
	fs.StringVar(&cfg.gpuLimits, "gpu-limits", "default", "reject canvases over GPU limits: default, downlevel or none")
	fs.BoolVar(&cfg.auto, "auto", false, "grow the canvas until everything fits")
	fs.StringVar(&cfg.out, "out", "atlas.png", "output PNG file")
	fs.StringVar(&cfg.lookup, "lookup", "", "output JSON lookup file")
	fs.BoolVar(&cfg.verbose, "v", false, "log build details")
	fs.BoolVar(&cfg.summary, "summary", false, "print a table of packed entries to stdout")
	fs.Var(repeated[fontFlag]{&cfg.fonts, parseFont}, "font", "font request name=path:size[:glyphs] (repeatable)")
	fs.Var(repeated[imageFlag]{&cfg.images, parseImage}, "image", "image request name=path (repeatable)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments %q", fs.Args())
	}

	var err error
	if cfg.width, cfg.height, err = parseSize(*size); err != nil {
		return nil, err
	}
	if cfg.rowOrder, err = texatlas.ParseRowOrder(*rowOrder); err != nil {
		return nil, err
	}
	if cfg.backend != "sfnt" && cfg.backend != "gotext" {
		return nil, fmt.Errorf("unknown backend %q", cfg.backend)
	}
	if _, ok := limitsByName[cfg.gpuLimits]; !ok && cfg.gpuLimits != "none" {
		return nil, fmt.Errorf("unknown GPU limits %q", cfg.gpuLimits)
	}
	return cfg, nil
}

func (c *config) rasterizer() texatlas.GlyphRasterizer {
	if c.backend == "gotext" {
		return raster.NewGoText()
	}
	return raster.NewSFNT()
}

func (c *config) limits() (gputypes.Limits, bool) {
	fn, ok := limitsByName[c.gpuLimits]
	if !ok {
		return gputypes.Limits{}, false
	}
	return fn(), true
}

// maxDimension bounds the -auto search.
func (c *config) maxDimension() int {
	if l, ok := c.limits(); ok {
		return int(l.MaxTextureDimension2D)
	}
	return int(gputypes.DefaultLimits().MaxTextureDimension2D)
}

func (c *config) buildOptions() []texatlas.BuildOption {
	opts := []texatlas.BuildOption{
		texatlas.WithOversampling(c.oversampling),
		texatlas.WithPadding(c.padding),
		texatlas.WithRowOrder(c.rowOrder),
	}
	if l, ok := c.limits(); ok {
		opts = append(opts, texatlas.WithGPULimits(l))
	}
	return opts
}

func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WxH", s)
	}
	w, err1 := strconv.Atoi(ws)
	h, err2 := strconv.Atoi(hs)
	if err := errors.Join(err1, err2); err != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %q: want positive WxH", s)
	}
	return w, h, nil
}

func parseFont(s string) (fontFlag, error) {
	name, rest, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fontFlag{}, fmt.Errorf("font %q: want name=path:size[:glyphs]", s)
	}
	parts := strings.SplitN(rest, ":", 3)
	if len(parts) < 2 || parts[0] == "" {
		return fontFlag{}, fmt.Errorf("font %q: want name=path:size[:glyphs]", s)
	}
	size, err := strconv.Atoi(parts[1])
	if err != nil || size <= 0 {
		return fontFlag{}, fmt.Errorf("font %q: bad size %q", s, parts[1])
	}
	f := fontFlag{name: name, path: parts[0], size: size, glyphs: glyphset.Printable()}
	if len(parts) == 3 {
		if f.glyphs, err = glyphset.Parse(parts[2]); err != nil {
			return fontFlag{}, fmt.Errorf("font %q: %w", s, err)
		}
	}
	return f, nil
}

func parseImage(s string) (imageFlag, error) {
	name, path, ok := strings.Cut(s, "=")
	if !ok || name == "" || path == "" {
		return imageFlag{}, fmt.Errorf("image %q: want name=path", s)
	}
	return imageFlag{name: name, path: path}, nil
}
