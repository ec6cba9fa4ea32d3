package raster

import "image"

// prefilter applies an n-wide box filter along both axes of dst in place.
// Output pixel i is the mean of input pixels i-n+1..i, so coverage spreads
// into the trailing n-1 columns and rows reserved by Measure.
func prefilter(dst *image.Alpha, n int) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	line := make([]uint32, max(w, h))

	for y := range h {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		boxFilter(row, 1, w, n, line)
	}
	for x := range w {
		col := dst.Pix[x:]
		boxFilter(col, dst.Stride, h, n, line)
	}
}

// boxFilter filters count samples of p spaced step bytes apart.
// scratch must hold at least count values.
func boxFilter(p []uint8, step, count, n int, scratch []uint32) {
	for i := range count {
		scratch[i] = uint32(p[i*step])
	}
	var total uint32
	for i := range count {
		total += scratch[i]
		if i >= n {
			total -= scratch[i-n]
		}
		p[i*step] = uint8(total / uint32(n))
	}
}
