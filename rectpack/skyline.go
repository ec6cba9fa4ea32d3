// Package rectpack places axis-aligned rectangles into a fixed canvas
// using a skyline bin packer.
//
// The skyline is the running profile of the lowest free y coordinate at
// each x. Rectangles are dropped onto the skyline like tetris blocks: each
// candidate position is the left edge of a skyline node, the resulting y is
// the highest node the rectangle spans, and the wasted area is the gap left
// underneath it.
//
// # Usage
//
//	rects := []rectpack.Rect{
//	    {ID: 0, W: 32, H: 18},
//	    {ID: 1, W: 12, H: 40},
//	}
//	if _, err := rectpack.Pack(256, 256, rects); err != nil {
//	    var oos *rectpack.OutOfSpaceError
//	    if errors.As(err, &oos) {
//	        log.Printf("rectangle %d does not fit", oos.ID)
//	    }
//	}
//	// rects[i].X, rects[i].Y now hold the placements.
package rectpack

// node is one horizontal segment of the skyline.
type node struct {
	x, y, width int
}

// Skyline is an incremental skyline allocator for a single canvas.
// The zero value is not usable; create one with NewSkyline.
//
// Skyline is not safe for concurrent use.
type Skyline struct {
	width  int
	height int
	nodes  []node

	usedArea int
}

// NewSkyline creates an allocator for a width x height canvas.
// Non-positive dimensions produce an allocator that rejects everything.
func NewSkyline(width, height int) *Skyline {
	s := &Skyline{}
	s.Reset(width, height)
	return s
}

// Reset clears all allocations and resizes the canvas.
func (s *Skyline) Reset(width, height int) {
	s.width = width
	s.height = height
	s.usedArea = 0
	s.nodes = s.nodes[:0]
	if width > 0 && height > 0 {
		s.nodes = append(s.nodes, node{x: 0, y: 0, width: width})
	}
}

// Insert finds space for a w x h rectangle and commits it.
// Returns the top-left corner and true, or -1, -1, false if the rectangle
// does not fit anywhere on the current skyline.
//
// Among all fitting positions the lowest y wins, then the smallest wasted
// area underneath, then the leftmost x.
func (s *Skyline) Insert(w, h int) (x, y int, ok bool) {
	if w <= 0 || h <= 0 {
		return -1, -1, false
	}

	best := -1
	bestY := s.height
	bestWaste := 0

	for i := range s.nodes {
		if s.nodes[i].x+w > s.width {
			// Nodes are sorted by x, so nothing further right fits either.
			break
		}
		ny, waste := s.fit(i, w)
		if ny+h > s.height {
			continue
		}
		if best == -1 || ny < bestY || (ny == bestY && waste < bestWaste) {
			best = i
			bestY = ny
			bestWaste = waste
		}
	}

	if best == -1 {
		return -1, -1, false
	}

	x = s.nodes[best].x
	s.addLevel(best, x, bestY, w, h)
	s.usedArea += w * h
	return x, bestY, true
}

// fit returns the resting y of a rectangle of width w whose left edge is
// at node i, and the area left empty below it.
func (s *Skyline) fit(i, w int) (y, waste int) {
	left := s.nodes[i].x
	right := left + w

	for j := i; j < len(s.nodes) && s.nodes[j].x < right; j++ {
		if s.nodes[j].y > y {
			y = s.nodes[j].y
		}
	}
	for j := i; j < len(s.nodes) && s.nodes[j].x < right; j++ {
		n := s.nodes[j]
		covered := min(n.x+n.width, right) - n.x
		waste += (y - n.y) * covered
	}
	return y, waste
}

// addLevel raises the skyline under a newly placed rectangle.
func (s *Skyline) addLevel(i, x, y, w, h int) {
	s.nodes = append(s.nodes, node{})
	copy(s.nodes[i+1:], s.nodes[i:])
	s.nodes[i] = node{x: x, y: y + h, width: w}

	// Trim or drop the segments now in the shadow of the new one.
	for j := i + 1; j < len(s.nodes); {
		prev := s.nodes[j-1]
		cur := &s.nodes[j]
		end := prev.x + prev.width
		if cur.x >= end {
			break
		}
		shrink := end - cur.x
		cur.x += shrink
		cur.width -= shrink
		if cur.width > 0 {
			break
		}
		s.nodes = append(s.nodes[:j], s.nodes[j+1:]...)
	}

	// Merge neighbours at the same height.
	for j := 0; j < len(s.nodes)-1; {
		if s.nodes[j].y == s.nodes[j+1].y {
			s.nodes[j].width += s.nodes[j+1].width
			s.nodes = append(s.nodes[:j+1], s.nodes[j+2:]...)
			continue
		}
		j++
	}
}

// Utilization returns the fraction of canvas area allocated (0.0 to 1.0).
func (s *Skyline) Utilization() float64 {
	if s.width <= 0 || s.height <= 0 {
		return 0
	}
	return float64(s.usedArea) / float64(s.width*s.height)
}

// UsedArea returns the total area of all allocated rectangles.
func (s *Skyline) UsedArea() int {
	return s.usedArea
}

// NodeCount returns the number of segments in the skyline.
func (s *Skyline) NodeCount() int {
	return len(s.nodes)
}
