// Package level holds the immutable map model: vertices, linedefs, sidedefs,
// sectors, segs, subsectors and the BSP node tree. Geometry never changes
// after NewMap; the only mutable state is each sector's current light level
// and floor height plus the map objects, and those are only written by the
// simulation between frames.
package level

import (
	"fmt"

	"nocturne/internal/geom"
)

// LineDef flags, matching the classic on-disk semantics.
const (
	FlagBlocking      = 1 << 0
	FlagTwoSided      = 1 << 2
	FlagDontPegTop    = 1 << 3
	FlagDontPegBottom = 1 << 4
)

// NoSideDef marks a linedef side without a sidedef.
const NoSideDef = -1

// LineDef references two vertices and one or two sidedefs.
type LineDef struct {
	StartVertex int
	EndVertex   int
	Flags       int
	FrontSide   int // index into Map.SideDefs, NoSideDef if absent
	BackSide    int
}

// TwoSided reports whether the linedef is a portal between two sectors.
func (l *LineDef) TwoSided() bool {
	return l.Flags&FlagTwoSided != 0
}

// SideDef is one textured face of a linedef.
type SideDef struct {
	XOffset       float64
	YOffset       float64
	UpperTexture  string // "-" for none
	LowerTexture  string
	MiddleTexture string
	Sector        int
}

// Sector is a map region with floor/ceiling heights, textures and a light
// level. FloorHeight, CeilingHeight and LightLevel are the base values from
// the map; LightLevel (current) and the current floor height are mutated by
// thinkers only.
type Sector struct {
	FloorHeight    float64 // base floor height
	CeilingHeight  float64
	FloorTexture   string
	CeilingTexture string
	BaseLight      int16 // base light level, 0..255
	Special        int16 // light/floor special selector, 0 for none
	Tag            int16

	// Mutable state, written by the thinker scheduler between frames.
	LightLevel   int16   // current light level
	CurrentFloor float64 // current floor height (moving floor specials)
}

// Seg is a directed wall fragment bound to a linedef side.
type Seg struct {
	StartVertex int
	EndVertex   int
	LineDef     int
	Direction   bool    // false: same as linedef, true: opposite
	Offset      float64 // distance along the linedef to the seg start
}

// SubSector is a convex leaf region referencing a contiguous run of segs.
type SubSector struct {
	FirstSeg int
	NumSegs  int
	Sector   int
}

// BBox is an axis-aligned bounding box in map coordinates.
type BBox struct {
	Left, Right, Top, Bottom float64
}

// ChildRef addresses a BSP node child: either another node or a subsector.
type ChildRef struct {
	IsSubSector bool
	Index       int
}

// Node is one BSP partition. Nodes live in Map.Nodes, addressed by index;
// the tree is strict and built once at load time.
type Node struct {
	X, Y      float64 // partition line start
	DX, DY    float64 // partition line direction
	RightBBox BBox
	LeftBBox  BBox
	Right     ChildRef
	Left      ChildRef
}

// PartitionLine returns the node's partition as a directed line.
func (n *Node) PartitionLine() geom.Line {
	return geom.L(geom.V(n.X, n.Y), geom.V(n.X+n.DX, n.Y+n.DY))
}

// Thing is a map object spawn record.
type Thing struct {
	Position geom.Vertex
	Angle    float64
	Type     int
	Flags    int
}

// Map is the immutable map model handed to the renderer and simulation.
type Map struct {
	Vertices   []geom.Vertex
	LineDefs   []LineDef
	SideDefs   []SideDef
	Sectors    []Sector
	Segs       []Seg
	SubSectors []SubSector
	Nodes      []Node
	Root       ChildRef
	Things     []Thing
}

// NewMap validates cross-references and derives the sectors' initial
// mutable state. Malformed maps (dangling BSP children, a seg pointing at a
// nonexistent sector) fail here rather than mid-frame.
func NewMap(m *Map) (*Map, error) {
	for i := range m.LineDefs {
		ld := &m.LineDefs[i]
		if ld.StartVertex < 0 || ld.StartVertex >= len(m.Vertices) ||
			ld.EndVertex < 0 || ld.EndVertex >= len(m.Vertices) {
			return nil, fmt.Errorf("linedef %d: vertex out of range", i)
		}
		if err := m.checkSide(ld.FrontSide); err != nil {
			return nil, fmt.Errorf("linedef %d front: %w", i, err)
		}
		if err := m.checkSide(ld.BackSide); err != nil {
			return nil, fmt.Errorf("linedef %d back: %w", i, err)
		}
		if ld.FrontSide == NoSideDef && ld.BackSide == NoSideDef {
			return nil, fmt.Errorf("linedef %d: no sidedefs", i)
		}
	}

	for i := range m.Segs {
		seg := &m.Segs[i]
		if seg.LineDef < 0 || seg.LineDef >= len(m.LineDefs) {
			return nil, fmt.Errorf("seg %d: linedef %d out of range", i, seg.LineDef)
		}
		if seg.StartVertex < 0 || seg.StartVertex >= len(m.Vertices) ||
			seg.EndVertex < 0 || seg.EndVertex >= len(m.Vertices) {
			return nil, fmt.Errorf("seg %d: vertex out of range", i)
		}
	}

	for i := range m.SubSectors {
		ss := &m.SubSectors[i]
		if ss.FirstSeg < 0 || ss.NumSegs <= 0 || ss.FirstSeg+ss.NumSegs > len(m.Segs) {
			return nil, fmt.Errorf("subsector %d: seg range out of range", i)
		}
		if ss.Sector < 0 || ss.Sector >= len(m.Sectors) {
			return nil, fmt.Errorf("subsector %d: sector %d out of range", i, ss.Sector)
		}
	}

	if err := m.checkChild(m.Root); err != nil {
		return nil, fmt.Errorf("root: %w", err)
	}
	for i := range m.Nodes {
		if err := m.checkChild(m.Nodes[i].Left); err != nil {
			return nil, fmt.Errorf("node %d left: %w", i, err)
		}
		if err := m.checkChild(m.Nodes[i].Right); err != nil {
			return nil, fmt.Errorf("node %d right: %w", i, err)
		}
	}
	if err := m.checkAcyclic(); err != nil {
		return nil, err
	}

	for i := range m.Sectors {
		sec := &m.Sectors[i]
		sec.BaseLight = geom.Clamp(sec.BaseLight, 0, 255)
		sec.LightLevel = sec.BaseLight
		sec.CurrentFloor = sec.FloorHeight
	}

	return m, nil
}

func (m *Map) checkSide(idx int) error {
	if idx == NoSideDef {
		return nil
	}
	if idx < 0 || idx >= len(m.SideDefs) {
		return fmt.Errorf("sidedef %d out of range", idx)
	}
	if sec := m.SideDefs[idx].Sector; sec < 0 || sec >= len(m.Sectors) {
		return fmt.Errorf("sidedef %d: sector %d out of range", idx, sec)
	}
	return nil
}

func (m *Map) checkChild(c ChildRef) error {
	if c.IsSubSector {
		if c.Index < 0 || c.Index >= len(m.SubSectors) {
			return fmt.Errorf("subsector child %d out of range", c.Index)
		}
		return nil
	}
	if c.Index < 0 || c.Index >= len(m.Nodes) {
		return fmt.Errorf("node child %d out of range", c.Index)
	}
	return nil
}

// checkAcyclic walks the tree from the root and verifies every node and
// every subsector is reachable at most once, so per-frame traversal cannot
// loop and visits each leaf exactly once.
func (m *Map) checkAcyclic() error {
	seenNodes := make([]bool, len(m.Nodes))
	seenLeaves := make([]bool, len(m.SubSectors))
	var walk func(c ChildRef) error
	walk = func(c ChildRef) error {
		if c.IsSubSector {
			if seenLeaves[c.Index] {
				return fmt.Errorf("subsector %d reachable twice: BSP tree children overlap", c.Index)
			}
			seenLeaves[c.Index] = true
			return nil
		}
		if seenNodes[c.Index] {
			return fmt.Errorf("node %d reachable twice: BSP tree has a cycle or shared child", c.Index)
		}
		seenNodes[c.Index] = true
		if err := walk(m.Nodes[c.Index].Left); err != nil {
			return err
		}
		return walk(m.Nodes[c.Index].Right)
	}
	return walk(m.Root)
}

// SegSides returns the front and back sidedef indices of a seg, honoring the
// seg direction. The back index is NoSideDef for one-sided walls.
func (m *Map) SegSides(seg *Seg) (front, back int) {
	ld := &m.LineDefs[seg.LineDef]
	if seg.Direction {
		return ld.BackSide, ld.FrontSide
	}
	return ld.FrontSide, ld.BackSide
}

// SegSector returns the sector index the seg faces, or -1.
func (m *Map) SegSector(seg *Seg) int {
	front, _ := m.SegSides(seg)
	if front == NoSideDef {
		return -1
	}
	return m.SideDefs[front].Sector
}

// SubSectorAt walks the BSP tree and returns the subsector containing the
// position. The tree covers the whole map, so this always terminates at a
// leaf.
func (m *Map) SubSectorAt(p geom.Vertex) *SubSector {
	child := m.Root
	for !child.IsSubSector {
		node := &m.Nodes[child.Index]
		if p.IsLeftOf(node.PartitionLine()) {
			child = node.Left
		} else {
			child = node.Right
		}
	}
	return &m.SubSectors[child.Index]
}

// SectorAt returns the sector containing the position, or nil for a position
// outside any sector's geometry.
func (m *Map) SectorAt(p geom.Vertex) *Sector {
	ss := m.SubSectorAt(p)
	if ss.Sector < 0 || ss.Sector >= len(m.Sectors) {
		return nil
	}
	return &m.Sectors[ss.Sector]
}

// MinNeighborLight returns the lowest base light level among sectors sharing
// a two-sided linedef with the given sector, capped at max. Light specials
// use this as their dark level.
func (m *Map) MinNeighborLight(sector int, max int16) int16 {
	light := max
	for i := range m.LineDefs {
		ld := &m.LineDefs[i]
		if ld.FrontSide == NoSideDef || ld.BackSide == NoSideDef {
			continue
		}
		front := m.SideDefs[ld.FrontSide].Sector
		back := m.SideDefs[ld.BackSide].Sector
		if front == sector {
			light = geom.Min(light, m.Sectors[back].BaseLight)
		}
		if back == sector {
			light = geom.Min(light, m.Sectors[front].BaseLight)
		}
	}
	return light
}
