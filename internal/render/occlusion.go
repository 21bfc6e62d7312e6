package render

import "sort"

// Range is an inclusive span of screen columns.
type Range struct {
	Start, End int
}

// OcclusionTracker tracks which screen columns are fully blocked by solid
// wall spans drawn earlier in the frame. The ranges are kept sorted by start
// column and pairwise disjoint; adjacent ranges are merged on insert.
type OcclusionTracker struct {
	width  int
	ranges []Range
}

// NewOcclusionTracker creates a tracker for a screen of the given width
// with no columns blocked.
func NewOcclusionTracker(width int) *OcclusionTracker {
	return &OcclusionTracker{width: width}
}

// MarkSolid inserts a fully blocking column range, merging with adjacent
// and overlapping ranges.
func (t *OcclusionTracker) MarkSolid(r Range) {
	if r.Start > r.End {
		return
	}
	if r.Start < 0 {
		r.Start = 0
	}
	if r.End >= t.width {
		r.End = t.width - 1
	}
	if r.Start > r.End {
		return
	}

	// Find the insertion point and swallow every range that overlaps or
	// touches the new one.
	i := sort.Search(len(t.ranges), func(i int) bool {
		return t.ranges[i].End >= r.Start-1
	})
	j := i
	for j < len(t.ranges) && t.ranges[j].Start <= r.End+1 {
		if t.ranges[j].Start < r.Start {
			r.Start = t.ranges[j].Start
		}
		if t.ranges[j].End > r.End {
			r.End = t.ranges[j].End
		}
		j++
	}

	t.ranges = append(t.ranges[:i], append([]Range{r}, t.ranges[j:]...)...)
}

// Clip removes already-solid columns from the candidate range and returns
// the remaining open subranges, in order. The result is empty when the
// candidate is fully blocked.
func (t *OcclusionTracker) Clip(r Range) []Range {
	if r.Start < 0 {
		r.Start = 0
	}
	if r.End >= t.width {
		r.End = t.width - 1
	}
	if r.Start > r.End {
		return nil
	}

	var open []Range
	cur := r.Start
	i := sort.Search(len(t.ranges), func(i int) bool {
		return t.ranges[i].End >= r.Start
	})
	for ; i < len(t.ranges) && t.ranges[i].Start <= r.End; i++ {
		if t.ranges[i].Start > cur {
			open = append(open, Range{Start: cur, End: t.ranges[i].Start - 1})
		}
		if t.ranges[i].End+1 > cur {
			cur = t.ranges[i].End + 1
		}
	}
	if cur <= r.End {
		open = append(open, Range{Start: cur, End: r.End})
	}
	return open
}

// SolidAt reports whether a single column is fully blocked.
func (t *OcclusionTracker) SolidAt(x int) bool {
	i := sort.Search(len(t.ranges), func(i int) bool {
		return t.ranges[i].End >= x
	})
	return i < len(t.ranges) && t.ranges[i].Start <= x
}

// FullyOccluded reports whether every screen column is blocked. The BSP
// traversal checks this to end the frame early.
func (t *OcclusionTracker) FullyOccluded() bool {
	return len(t.ranges) == 1 && t.ranges[0].Start == 0 && t.ranges[0].End == t.width-1
}

// Ranges returns the current solid ranges. The slice is owned by the
// tracker; callers must not modify it.
func (t *OcclusionTracker) Ranges() []Range {
	return t.ranges
}
