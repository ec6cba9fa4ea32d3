package rectpack

import (
	"fmt"
	"slices"
)

// Rect is a rectangle request and, after Pack, its placement.
type Rect struct {
	// ID is an opaque back-reference chosen by the caller.
	ID int

	// X, Y is the top-left corner, set by Pack.
	X, Y int

	// W, H are the requested dimensions.
	W, H int
}

// Result summarizes a successful Pack.
type Result struct {
	// UsedArea is the sum of all placed rectangle areas.
	UsedArea int

	// Utilization is UsedArea divided by the canvas area.
	Utilization float64

	// Nodes is the final number of skyline segments.
	Nodes int
}

// Pack places every rectangle of rects into a width x height canvas and
// writes the placements into rects in place. The slice order is preserved.
//
// Rectangles are packed tallest first, then widest first, ties keeping
// their input order, so identical input always yields identical output.
//
// Pack is all or nothing: if any rectangle cannot be placed it returns an
// *OutOfSpaceError for the first one, and the X, Y fields are left unset.
func Pack(width, height int, rects []Rect) (Result, error) {
	if width <= 0 || height <= 0 {
		return Result{}, fmt.Errorf("%w: canvas %dx%d", ErrInvalidSize, width, height)
	}
	for i := range rects {
		if rects[i].W <= 0 || rects[i].H <= 0 {
			return Result{}, fmt.Errorf("%w: rectangle %d is %dx%d",
				ErrInvalidSize, rects[i].ID, rects[i].W, rects[i].H)
		}
	}

	order := packOrder(rects)
	xs := make([]int, len(rects))
	ys := make([]int, len(rects))

	s := NewSkyline(width, height)
	for _, idx := range order {
		r := rects[idx]
		x, y, ok := s.Insert(r.W, r.H)
		if !ok {
			return Result{}, &OutOfSpaceError{ID: r.ID, W: r.W, H: r.H}
		}
		xs[idx], ys[idx] = x, y
	}

	for i := range rects {
		rects[i].X, rects[i].Y = xs[i], ys[i]
	}

	return Result{
		UsedArea:    s.UsedArea(),
		Utilization: s.Utilization(),
		Nodes:       s.NodeCount(),
	}, nil
}

// Fits reports whether rects would pack into a width x height canvas.
// rects is not modified.
func Fits(width, height int, rects []Rect) bool {
	tmp := slices.Clone(rects)
	_, err := Pack(width, height, tmp)
	return err == nil
}

// packOrder returns indices into rects sorted by decreasing height, then
// decreasing width. The sort is stable.
func packOrder(rects []Rect) []int {
	order := make([]int, len(rects))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		ra, rb := rects[a], rects[b]
		if ra.H != rb.H {
			return rb.H - ra.H
		}
		return rb.W - ra.W
	})
	return order
}
