package layout

import (
	"math"
	"testing"
)

func approxEq(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func rectApproxEq(a, b Rect) bool {
	return approxEq(a.X, b.X) && approxEq(a.Y, b.Y) &&
		approxEq(a.W, b.W) && approxEq(a.H, b.H)
}

const (
	landscape = 16.0 / 9.0
	portrait  = 9.0 / 16.0
)

func TestComputeTilesUnitSquare(t *testing.T) {
	for _, aspect := range []float64{landscape, portrait} {
		for n := 1; n <= MaxPanes; n++ {
			rects := Compute(n, aspect)
			if len(rects) != n {
				t.Fatalf("n=%d aspect=%.2f: got %d rects", n, aspect, len(rects))
			}

			area := 0.0
			for _, r := range rects {
				area += r.W * r.H
				if r.X < -1e-9 || r.Y < -1e-9 || r.X+r.W > 1+1e-9 || r.Y+r.H > 1+1e-9 {
					t.Errorf("n=%d: rect %+v outside unit square", n, r)
				}
			}
			if !approxEq(area, 1.0) {
				t.Errorf("n=%d aspect=%.2f: area sum %.4f, want 1.0", n, aspect, area)
			}

			// Pairwise overlap check via center sampling.
			for i := range rects {
				for j := i + 1; j < len(rects); j++ {
					a, b := rects[i], rects[j]
					ox := math.Min(a.X+a.W, b.X+b.W) - math.Max(a.X, b.X)
					oy := math.Min(a.Y+a.H, b.Y+b.H) - math.Max(a.Y, b.Y)
					if ox > 1e-9 && oy > 1e-9 {
						t.Errorf("n=%d: rects %d and %d overlap", n, i, j)
					}
				}
			}
		}
	}
}

func TestComputeDeterministic(t *testing.T) {
	for n := 1; n <= MaxPanes; n++ {
		a := Compute(n, landscape)
		b := Compute(n, landscape)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("n=%d: rect %d differs between calls: %+v vs %+v", n, i, a[i], b[i])
			}
		}
	}
}

func TestComputeFivePanesLandscape(t *testing.T) {
	// ceil(sqrt(5)) = 3 columns, 2 rows. Row one holds three panes of
	// width 1/3; the under-full second row divides its width between its
	// two panes.
	rects := Compute(5, landscape)
	if len(rects) != 5 {
		t.Fatalf("got %d rects", len(rects))
	}
	third := 1.0 / 3.0
	want := []Rect{
		{0, 0, third, 0.5},
		{third, 0, third, 0.5},
		{2 * third, 0, third, 0.5},
		{0, 0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5, 0.5},
	}
	for i := range want {
		if !rectApproxEq(rects[i], want[i]) {
			t.Errorf("rect %d: got %+v, want %+v", i, rects[i], want[i])
		}
	}
}

func TestComputePortraitTransposes(t *testing.T) {
	// Two panes in portrait stack vertically.
	rects := Compute(2, portrait)
	want := []Rect{
		{0, 0, 1, 0.5},
		{0, 0.5, 1, 0.5},
	}
	for i := range want {
		if !rectApproxEq(rects[i], want[i]) {
			t.Errorf("rect %d: got %+v, want %+v", i, rects[i], want[i])
		}
	}
}

func TestComputeSinglePaneFillsWindow(t *testing.T) {
	for _, aspect := range []float64{landscape, portrait} {
		rects := Compute(1, aspect)
		if len(rects) != 1 || !rectApproxEq(rects[0], FullRect()) {
			t.Fatalf("aspect=%.2f: got %+v", aspect, rects)
		}
	}
}

func TestAddPaneFocusAndOrder(t *testing.T) {
	tree := NewTree()
	first, err := tree.AddPane()
	if err != nil {
		t.Fatal(err)
	}
	if f, ok := tree.Focused(); !ok || f != first {
		t.Fatalf("focus = %v/%v, want %v", f, ok, first)
	}

	second, _ := tree.AddPane()
	if f, _ := tree.Focused(); f != second {
		t.Fatalf("new pane should take focus, got %v", f)
	}
	if tree.Len() != 2 {
		t.Fatalf("len = %d", tree.Len())
	}
}

func TestAddPaneCapacity(t *testing.T) {
	tree := NewTree()
	for i := 0; i < MaxPanes; i++ {
		if _, err := tree.AddPane(); err != nil {
			t.Fatalf("pane %d: %v", i, err)
		}
	}
	if _, err := tree.AddPane(); err != ErrTooManyPanes {
		t.Fatalf("got %v, want ErrTooManyPanes", err)
	}
	if tree.Len() != MaxPanes {
		t.Fatalf("len = %d after rejected add", tree.Len())
	}
}

func TestCloseMovesFocusToNewest(t *testing.T) {
	tree := NewTree()
	a, _ := tree.AddPane()
	b, _ := tree.AddPane()
	c, _ := tree.AddPane()

	// Closing the focused pane moves focus to the newest survivor.
	if f, ok := tree.Close(c); !ok || f != b {
		t.Fatalf("focus after close = %v/%v, want %v", f, ok, b)
	}

	// Closing an unfocused pane leaves focus alone.
	if f, ok := tree.Close(a); !ok || f != b {
		t.Fatalf("focus after close = %v/%v, want %v", f, ok, b)
	}
}

func TestCloseLastPaneSignals(t *testing.T) {
	tree := NewTree()
	id, _ := tree.AddPane()
	if _, ok := tree.Close(id); ok {
		t.Fatal("closing the last pane should report no panes remain")
	}
	if tree.Len() != 0 {
		t.Fatalf("len = %d", tree.Len())
	}
	if _, ok := tree.Focused(); ok {
		t.Fatal("empty tree must have no focus")
	}
}

func TestPaneIDsNeverReused(t *testing.T) {
	tree := NewTree()
	a, _ := tree.AddPane()
	tree.Close(a)
	b, _ := tree.AddPane()
	if b == a {
		t.Fatalf("pane ID %v reused", b)
	}
}

func TestHitTest(t *testing.T) {
	tree := NewTree()
	first, _ := tree.AddPane()
	second, _ := tree.AddPane()

	// Two panes in landscape sit side by side.
	if id, ok := tree.HitTest(0.25, 0.5, landscape); !ok || id != first {
		t.Errorf("left half: got %v/%v, want %v", id, ok, first)
	}
	if id, ok := tree.HitTest(0.75, 0.5, landscape); !ok || id != second {
		t.Errorf("right half: got %v/%v, want %v", id, ok, second)
	}
	if _, ok := tree.HitTest(1.5, 0.5, landscape); ok {
		t.Error("out-of-bounds point should miss")
	}
	if _, ok := tree.HitTest(-0.1, 0.5, landscape); ok {
		t.Error("negative point should miss")
	}
}

func TestHitTestCoversSharedEdges(t *testing.T) {
	tree := NewTree()
	for i := 0; i < 4; i++ {
		tree.AddPane()
	}
	// A point exactly on the shared edge must hit exactly one pane.
	hits := 0
	for _, pr := range tree.PaneRects(landscape) {
		if pr.Rect.Contains(0.5, 0.5) {
			hits++
		}
	}
	if hits != 1 {
		t.Fatalf("shared corner hit %d panes, want 1", hits)
	}
}
