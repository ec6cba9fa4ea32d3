package rectpack

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
)

func randomRects(seed int64, n, minSize, maxSize int) []Rect {
	rng := rand.New(rand.NewSource(seed))
	rects := make([]Rect, n)
	for i := range rects {
		rects[i] = Rect{
			ID: i,
			W:  minSize + rng.Intn(maxSize-minSize+1),
			H:  minSize + rng.Intn(maxSize-minSize+1),
		}
	}
	return rects
}

func overlaps(a, b Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

func TestPack_Empty(t *testing.T) {
	res, err := Pack(16, 16, nil)
	if err != nil {
		t.Fatalf("Pack(nil) error = %v", err)
	}
	if res.UsedArea != 0 {
		t.Errorf("UsedArea = %d, want 0", res.UsedArea)
	}
}

func TestPack_NoOverlapWithinBounds(t *testing.T) {
	const w, h = 512, 512
	rects := randomRects(1, 300, 4, 24)

	area := 0
	for _, r := range rects {
		area += r.W * r.H
	}
	if area*10 > w*h*7 {
		t.Fatalf("test setup: area %d exceeds 70%% of canvas", area)
	}

	if _, err := Pack(w, h, rects); err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	for i, a := range rects {
		if a.X < 0 || a.Y < 0 || a.X+a.W > w || a.Y+a.H > h {
			t.Errorf("rect %d out of bounds: %+v", i, a)
		}
		for j := i + 1; j < len(rects); j++ {
			if overlaps(a, rects[j]) {
				t.Errorf("rect %d %+v overlaps rect %d %+v", i, a, j, rects[j])
			}
		}
	}
}

func TestPack_Deterministic(t *testing.T) {
	a := randomRects(42, 200, 1, 30)
	b := slices.Clone(a)

	if _, err := Pack(400, 400, a); err != nil {
		t.Fatalf("first Pack() error = %v", err)
	}
	if _, err := Pack(400, 400, b); err != nil {
		t.Fatalf("second Pack() error = %v", err)
	}
	if !slices.Equal(a, b) {
		t.Error("identical input produced different placements")
	}
}

func TestPack_TallestFirst(t *testing.T) {
	rects := []Rect{
		{ID: 0, W: 10, H: 10},
		{ID: 1, W: 10, H: 20},
		{ID: 2, W: 15, H: 20},
	}
	if _, err := Pack(100, 100, rects); err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	// Order: ID 2 (20 tall, wider), ID 1, then ID 0.
	want := []Rect{
		{ID: 0, X: 25, Y: 0, W: 10, H: 10},
		{ID: 1, X: 15, Y: 0, W: 10, H: 20},
		{ID: 2, X: 0, Y: 0, W: 15, H: 20},
	}
	if !slices.Equal(rects, want) {
		t.Errorf("got %+v, want %+v", rects, want)
	}
}

func TestPack_OutOfSpace(t *testing.T) {
	rects := []Rect{{ID: 7, W: 100, H: 100}}

	_, err := Pack(4, 4, rects)
	if !errors.Is(err, ErrOutOfSpace) {
		t.Fatalf("Pack() error = %v, want ErrOutOfSpace", err)
	}
	var oos *OutOfSpaceError
	if !errors.As(err, &oos) {
		t.Fatalf("Pack() error = %T, want *OutOfSpaceError", err)
	}
	if oos.ID != 7 || oos.W != 100 || oos.H != 100 {
		t.Errorf("OutOfSpaceError = %+v, want ID 7 100x100", oos)
	}
}

func TestPack_AllOrNothing(t *testing.T) {
	rects := []Rect{
		{ID: 0, W: 8, H: 8},
		{ID: 1, W: 8, H: 8},
		{ID: 2, W: 8, H: 8},
	}
	if _, err := Pack(16, 8, rects); err == nil {
		t.Fatal("Pack() succeeded, want out of space")
	}
	for _, r := range rects {
		if r.X != 0 || r.Y != 0 {
			t.Errorf("rect %d was partially placed at (%d,%d)", r.ID, r.X, r.Y)
		}
	}
}

func TestPack_InvalidSize(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		rects []Rect
	}{
		{"zero canvas", 0, 10, nil},
		{"negative canvas", 10, -1, nil},
		{"zero rect", 10, 10, []Rect{{W: 0, H: 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pack(tt.w, tt.h, tt.rects)
			if !errors.Is(err, ErrInvalidSize) {
				t.Errorf("Pack() error = %v, want ErrInvalidSize", err)
			}
		})
	}
}

func TestFits(t *testing.T) {
	rects := []Rect{{ID: 0, W: 10, H: 10}, {ID: 1, W: 10, H: 10}}

	if !Fits(20, 10, rects) {
		t.Error("Fits(20, 10) = false, want true")
	}
	if Fits(15, 10, rects) {
		t.Error("Fits(15, 10) = true, want false")
	}
	for _, r := range rects {
		if r.X != 0 || r.Y != 0 {
			t.Error("Fits modified its input")
		}
	}
}

func BenchmarkPack(b *testing.B) {
	src := randomRects(7, 1000, 4, 32)
	rects := make([]Rect, len(src))
	b.ReportAllocs()
	for b.Loop() {
		copy(rects, src)
		if _, err := Pack(1024, 1024, rects); err != nil {
			b.Fatal(err)
		}
	}
}
