package render

import (
	"nocturne/internal/geom"
	"nocturne/internal/level"
)

// renderChild walks the BSP tree front to back. At each node the child on
// the viewpoint's side of the partition is descended first; the far child is
// skipped when its bounding box projects onto fully occluded columns. Once
// every screen column is solid the rest of the frame is pure occlusion, so
// traversal stops.
func (fr *frame) renderChild(c level.ChildRef) {
	if fr.occlusion.FullyOccluded() {
		return
	}
	if c.IsSubSector {
		fr.renderSubSector(&fr.r.level.SubSectors[c.Index])
		return
	}

	node := &fr.r.level.Nodes[c.Index]

	near, far := node.Right, node.Left
	farBox := node.LeftBBox
	if fr.view.Position.IsLeftOf(node.PartitionLine()) {
		near, far = node.Left, node.Right
		farBox = node.RightBBox
	}

	fr.renderChild(near)

	if fr.bboxVisible(farBox) {
		fr.renderChild(far)
	}
}

// renderSubSector renders the segs of one convex leaf. Segs inside a leaf
// cannot occlude each other, so their order does not matter.
func (fr *frame) renderSubSector(ss *level.SubSector) {
	for i := ss.FirstSeg; i < ss.FirstSeg+ss.NumSegs; i++ {
		fr.renderSeg(&fr.r.level.Segs[i])
	}
}

// bboxVisible conservatively tests whether any part of a node bounding box
// can appear in an unoccluded screen column. False positives cost a
// subtree descent; false negatives would drop geometry, so every ambiguous
// case answers true.
func (fr *frame) bboxVisible(b level.BBox) bool {
	// Inside the box: always visible.
	if fr.view.Position.X >= b.Left && fr.view.Position.X <= b.Right &&
		fr.view.Position.Y >= b.Bottom && fr.view.Position.Y <= b.Top {
		return true
	}

	corners := [4]geom.Vertex{
		geom.V(b.Left, b.Bottom),
		geom.V(b.Left, b.Top),
		geom.V(b.Right, b.Bottom),
		geom.V(b.Right, b.Top),
	}

	const nearLimit = 0.01

	anyFront := false
	anyBehind := false
	minX, maxX := fr.fb.Width, -1
	for _, corner := range corners {
		v := corner.Sub(fr.view.Position).Rotate(-fr.view.Angle)
		if v.X < nearLimit {
			anyBehind = true
			continue
		}
		anyFront = true
		x := fr.r.proj.screenX(v)
		minX = geom.Min(minX, x)
		maxX = geom.Max(maxX, x)
	}

	if !anyFront {
		return false
	}
	if anyBehind {
		// The box straddles the view plane; its projection can reach either
		// screen edge.
		minX, maxX = 0, fr.fb.Width-1
	}

	return len(fr.occlusion.Clip(Range{Start: minX, End: maxX})) > 0
}
