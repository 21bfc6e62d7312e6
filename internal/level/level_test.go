package level

import (
	"testing"

	"nocturne/internal/geom"
)

// twoRooms is a minimal valid two-sector map: two squares side by side
// joined by a two-sided linedef.
func twoRooms() *Map {
	return &Map{
		Vertices: []geom.Vertex{
			geom.V(0, 0), geom.V(128, 0), geom.V(256, 0),
			geom.V(0, 128), geom.V(128, 128), geom.V(256, 128),
		},
		Sectors: []Sector{
			{FloorHeight: 0, CeilingHeight: 128, BaseLight: 160},
			{FloorHeight: 16, CeilingHeight: 128, BaseLight: 96},
		},
		SideDefs: []SideDef{
			{Sector: 0, MiddleTexture: "WALL"},
			{Sector: 0, MiddleTexture: "WALL"},
			{Sector: 0, MiddleTexture: "WALL"},
			{Sector: 0, MiddleTexture: "-"},
			{Sector: 1, MiddleTexture: "-"},
			{Sector: 1, MiddleTexture: "WALL"},
			{Sector: 1, MiddleTexture: "WALL"},
			{Sector: 1, MiddleTexture: "WALL"},
		},
		LineDefs: []LineDef{
			{StartVertex: 0, EndVertex: 3, FrontSide: 0, BackSide: NoSideDef},
			{StartVertex: 3, EndVertex: 4, FrontSide: 1, BackSide: NoSideDef},
			{StartVertex: 1, EndVertex: 0, FrontSide: 2, BackSide: NoSideDef},
			{StartVertex: 4, EndVertex: 1, FrontSide: 3, BackSide: 4, Flags: FlagTwoSided},
			{StartVertex: 4, EndVertex: 5, FrontSide: 5, BackSide: NoSideDef},
			{StartVertex: 2, EndVertex: 1, FrontSide: 6, BackSide: NoSideDef},
			{StartVertex: 5, EndVertex: 2, FrontSide: 7, BackSide: NoSideDef},
		},
		Segs: []Seg{
			{StartVertex: 0, EndVertex: 3, LineDef: 0},
			{StartVertex: 3, EndVertex: 4, LineDef: 1},
			{StartVertex: 4, EndVertex: 1, LineDef: 3},
			{StartVertex: 1, EndVertex: 0, LineDef: 2},
			{StartVertex: 1, EndVertex: 4, LineDef: 3, Direction: true},
			{StartVertex: 4, EndVertex: 5, LineDef: 4},
			{StartVertex: 5, EndVertex: 2, LineDef: 6},
			{StartVertex: 2, EndVertex: 1, LineDef: 5},
		},
		SubSectors: []SubSector{
			{FirstSeg: 0, NumSegs: 4, Sector: 0},
			{FirstSeg: 4, NumSegs: 4, Sector: 1},
		},
		Nodes: []Node{
			{
				X: 128, Y: 0, DX: 0, DY: 128,
				Left:      ChildRef{IsSubSector: true, Index: 0},
				Right:     ChildRef{IsSubSector: true, Index: 1},
				LeftBBox:  BBox{Left: 0, Right: 128, Top: 128, Bottom: 0},
				RightBBox: BBox{Left: 128, Right: 256, Top: 128, Bottom: 0},
			},
		},
		Root: ChildRef{IsSubSector: false, Index: 0},
	}
}

func TestNewMapValid(t *testing.T) {
	m, err := NewMap(twoRooms())
	if err != nil {
		t.Fatalf("valid map rejected: %v", err)
	}
	if m.Sectors[0].LightLevel != m.Sectors[0].BaseLight {
		t.Errorf("current light not initialized from base light")
	}
	if m.Sectors[1].CurrentFloor != 16 {
		t.Errorf("current floor = %v, want 16", m.Sectors[1].CurrentFloor)
	}
}

func TestNewMapRejectsDanglingChild(t *testing.T) {
	m := twoRooms()
	m.Nodes[0].Left = ChildRef{IsSubSector: true, Index: 99}
	if _, err := NewMap(m); err == nil {
		t.Errorf("dangling subsector child accepted")
	}
}

func TestNewMapRejectsBadSectorRef(t *testing.T) {
	m := twoRooms()
	m.SideDefs[0].Sector = 7
	if _, err := NewMap(m); err == nil {
		t.Errorf("sidedef with out-of-range sector accepted")
	}
}

func TestNewMapRejectsBadSegRange(t *testing.T) {
	m := twoRooms()
	m.SubSectors[1].NumSegs = 40
	if _, err := NewMap(m); err == nil {
		t.Errorf("subsector with out-of-range seg run accepted")
	}
}

func TestNewMapRejectsSharedNodeChild(t *testing.T) {
	m := twoRooms()
	m.Nodes = append(m.Nodes, Node{
		Left:  ChildRef{IsSubSector: false, Index: 0},
		Right: ChildRef{IsSubSector: false, Index: 0},
	})
	m.Root = ChildRef{IsSubSector: false, Index: 1}
	if _, err := NewMap(m); err == nil {
		t.Errorf("node reachable twice accepted")
	}
}

func TestNewMapRejectsSharedSubSectorChild(t *testing.T) {
	m := twoRooms()
	m.Nodes[0].Right = ChildRef{IsSubSector: true, Index: 0}
	if _, err := NewMap(m); err == nil {
		t.Errorf("subsector reachable from both children accepted")
	}
}

func TestNewMapClampsBaseLight(t *testing.T) {
	m := twoRooms()
	m.Sectors[0].BaseLight = 999
	built, err := NewMap(m)
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	if built.Sectors[0].BaseLight != 255 {
		t.Errorf("base light = %d, want clamped to 255", built.Sectors[0].BaseLight)
	}
}

func TestSubSectorAt(t *testing.T) {
	m, err := NewMap(twoRooms())
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	if ss := m.SubSectorAt(geom.V(64, 64)); ss.Sector != 0 {
		t.Errorf("point in room 0 resolved to sector %d", ss.Sector)
	}
	if ss := m.SubSectorAt(geom.V(192, 64)); ss.Sector != 1 {
		t.Errorf("point in room 1 resolved to sector %d", ss.Sector)
	}
}

func TestSegSidesHonorDirection(t *testing.T) {
	m, err := NewMap(twoRooms())
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}

	front, back := m.SegSides(&m.Segs[2]) // portal seg facing room 0
	if front != 3 || back != 4 {
		t.Errorf("portal seg sides = %d,%d, want 3,4", front, back)
	}

	front, back = m.SegSides(&m.Segs[4]) // same linedef, reversed seg
	if front != 4 || back != 3 {
		t.Errorf("reversed portal seg sides = %d,%d, want 4,3", front, back)
	}
}

func TestMinNeighborLight(t *testing.T) {
	m, err := NewMap(twoRooms())
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	if got := m.MinNeighborLight(0, m.Sectors[0].BaseLight); got != 96 {
		t.Errorf("MinNeighborLight(0) = %d, want 96", got)
	}
	// The cap applies when every neighbor is brighter.
	if got := m.MinNeighborLight(1, m.Sectors[1].BaseLight); got != 96 {
		t.Errorf("MinNeighborLight(1) = %d, want capped 96", got)
	}
}

func TestIsSkyTexture(t *testing.T) {
	if !IsSkyTexture("F_SKY1") {
		t.Errorf("F_SKY1 not recognized as sky")
	}
	if IsSkyTexture("FLAT5") {
		t.Errorf("FLAT5 recognized as sky")
	}
}
