package render

import (
	"math/rand"
	"testing"
)

func TestMarkSolidMergesAdjacent(t *testing.T) {
	tr := NewOcclusionTracker(100)

	tr.MarkSolid(Range{Start: 10, End: 20})
	tr.MarkSolid(Range{Start: 30, End: 40})
	if got := len(tr.Ranges()); got != 2 {
		t.Fatalf("expected 2 ranges, got %d", got)
	}

	// Touching ranges merge.
	tr.MarkSolid(Range{Start: 21, End: 29})
	ranges := tr.Ranges()
	if len(ranges) != 1 {
		t.Fatalf("expected 1 merged range, got %d: %v", len(ranges), ranges)
	}
	if ranges[0].Start != 10 || ranges[0].End != 40 {
		t.Errorf("merged range = %v, want [10,40]", ranges[0])
	}
}

func TestMarkSolidClampsToScreen(t *testing.T) {
	tr := NewOcclusionTracker(100)
	tr.MarkSolid(Range{Start: -20, End: 150})
	if !tr.FullyOccluded() {
		t.Errorf("screen-covering range should fully occlude")
	}
}

func TestClipReturnsOpenSubranges(t *testing.T) {
	tr := NewOcclusionTracker(100)
	tr.MarkSolid(Range{Start: 20, End: 29})
	tr.MarkSolid(Range{Start: 50, End: 59})

	open := tr.Clip(Range{Start: 10, End: 69})
	want := []Range{{10, 19}, {30, 49}, {60, 69}}
	if len(open) != len(want) {
		t.Fatalf("open = %v, want %v", open, want)
	}
	for i := range want {
		if open[i] != want[i] {
			t.Errorf("open[%d] = %v, want %v", i, open[i], want[i])
		}
	}
}

func TestClipFullyOccludedRange(t *testing.T) {
	tr := NewOcclusionTracker(100)
	tr.MarkSolid(Range{Start: 0, End: 99})
	if open := tr.Clip(Range{Start: 5, End: 95}); open != nil {
		t.Errorf("expected no open subranges, got %v", open)
	}
}

// The tracker's invariants: ranges stay sorted, pairwise disjoint and
// non-touching, and Clip never returns a solid column.
func TestTrackerInvariantsUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tr := NewOcclusionTracker(320)

	for i := 0; i < 500; i++ {
		start := rng.Intn(320)
		end := start + rng.Intn(40)
		tr.MarkSolid(Range{Start: start, End: end})

		ranges := tr.Ranges()
		for j := range ranges {
			if ranges[j].Start > ranges[j].End {
				t.Fatalf("inverted range %v", ranges[j])
			}
			if j > 0 && ranges[j].Start <= ranges[j-1].End+1 {
				t.Fatalf("ranges %v and %v overlap or touch", ranges[j-1], ranges[j])
			}
		}

		cs := rng.Intn(320)
		for _, open := range tr.Clip(Range{Start: cs, End: cs + rng.Intn(60)}) {
			for x := open.Start; x <= open.End; x++ {
				if tr.SolidAt(x) {
					t.Fatalf("Clip returned solid column %d", x)
				}
			}
		}
	}
}

func TestFullyOccludedRequiresWholeScreen(t *testing.T) {
	tr := NewOcclusionTracker(10)
	tr.MarkSolid(Range{Start: 0, End: 8})
	if tr.FullyOccluded() {
		t.Errorf("tracker with open column reported fully occluded")
	}
	tr.MarkSolid(Range{Start: 9, End: 9})
	if !tr.FullyOccluded() {
		t.Errorf("tracker covering all columns not reported fully occluded")
	}
}
