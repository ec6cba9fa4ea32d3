package main

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gogpu/texatlas"
)

var (
	headerColor = lipgloss.Color("#7C3AED")
	borderColor = lipgloss.Color("#243141")
)

// writeSummary prints one table row per lookup identifier. Colors are
// dropped when w is not a terminal.
func writeSummary(w io.Writer, atlas *texatlas.Atlas) error {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true).Foreground(headerColor).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.NewStyle().Foreground(borderColor)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers("ID", "KIND", "ENTRIES", "BOUNDS")

	for _, id := range slices.Sorted(maps.Keys(atlas.Lookup)) {
		rec := atlas.Lookup[id]
		if !rec.IsFont() {
			t.Row(id, "image", "1", formatBox(rec.Image.Box))
			continue
		}
		var bounds texatlas.Box
		first := true
		for _, g := range rec.Glyphs {
			if g.Box.X1 == g.Box.X0 || g.Box.Y1 == g.Box.Y0 {
				continue
			}
			if first {
				bounds, first = g.Box, false
				continue
			}
			bounds = texatlas.Box{
				X0: min(bounds.X0, g.Box.X0),
				Y0: min(bounds.Y0, g.Box.Y0),
				X1: max(bounds.X1, g.Box.X1),
				Y1: max(bounds.Y1, g.Box.Y1),
			}
		}
		t.Row(id, "font", fmt.Sprint(len(rec.Glyphs)), formatBox(bounds))
	}

	_, err := fmt.Fprintf(w, "%s\n%dx%d, %.1f%% used\n", t.Render(), atlas.Width, atlas.Height, atlas.Utilization*100)
	return err
}

func formatBox(b texatlas.Box) string {
	return fmt.Sprintf("%d,%d-%d,%d", b.X0, b.Y0, b.X1, b.Y1)
}
