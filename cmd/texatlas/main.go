// Command texatlas packs fonts and images into a texture atlas PNG and a
// JSON lookup table.
//
// Usage:
//
//	texatlas -size 512x512 -oversampling 2 \
//	    -font body=Go-Regular.ttf:16 \
//	    -font title=Go-Bold.ttf:32:ascii,Cyrillic \
//	    -image logo=logo.png \
//	    -out atlas.png -lookup atlas.json -summary
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/texatlas"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "texatlas:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	if cfg.verbose {
		texatlas.SetLogger(log)
		defer texatlas.SetLogger(nil)
	}

	p := texatlas.New(texatlas.WithRasterizer(cfg.rasterizer()))
	for _, f := range cfg.fonts {
		data, err := os.ReadFile(filepath.Clean(f.path))
		if err != nil {
			return err
		}
		if err := p.AddFontGlyphs(f.name, data, f.size, f.glyphs); err != nil {
			return err
		}
	}
	for _, img := range cfg.images {
		data, err := os.ReadFile(filepath.Clean(img.path))
		if err != nil {
			return err
		}
		if err := p.AddEncodedImage(img.name, data); err != nil {
			return err
		}
	}
	if p.Len() == 0 {
		return errors.New("nothing to pack: use -font or -image")
	}

	opts := cfg.buildOptions()
	width, height := cfg.width, cfg.height
	if cfg.auto {
		width, height, err = autoSize(ctx, p, width, height, cfg.maxDimension(), opts)
		if err != nil {
			return err
		}
	}

	atlas, err := p.Build(ctx, width, height, opts...)
	if err != nil {
		return err
	}
	if err := writePNG(cfg.out, atlas); err != nil {
		return err
	}
	if cfg.lookup != "" {
		if err := writeLookup(cfg.lookup, atlas); err != nil {
			return err
		}
	}

	if cfg.summary {
		if err := writeSummary(stdout, atlas); err != nil {
			return err
		}
	}

	log.Info("atlas written",
		"out", cfg.out, "size", fmt.Sprintf("%dx%d", width, height),
		"entries", len(atlas.Lookup), "utilization", fmt.Sprintf("%.1f%%", atlas.Utilization*100))
	return nil
}

// autoSize doubles the smaller side of the canvas until every request
// fits or the limit is reached.
func autoSize(ctx context.Context, p *texatlas.Packer, w, h, limit int, opts []texatlas.BuildOption) (int, int, error) {
	for {
		ok, err := p.Fits(ctx, w, h, opts...)
		if err != nil {
			return 0, 0, err
		}
		if ok {
			return w, h, nil
		}
		switch {
		case w <= h && w*2 <= limit:
			w *= 2
		case h*2 <= limit:
			h *= 2
		case w*2 <= limit:
			w *= 2
		default:
			return 0, 0, fmt.Errorf("%w: requests do not fit %dx%d", texatlas.ErrOutOfSpace, w, h)
		}
	}
}

func writePNG(path string, atlas *texatlas.Atlas) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := atlas.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeLookup(path string, atlas *texatlas.Atlas) error {
	data, err := json.MarshalIndent(atlas, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Clean(path), append(data, '\n'), 0o644)
}

// limitsByName maps -gpu-limits values to device limits. "none" disables
// the check.
var limitsByName = map[string]func() gputypes.Limits{
	"default":   gputypes.DefaultLimits,
	"downlevel": gputypes.DownlevelLimits,
}
