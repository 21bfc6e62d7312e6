// Package world builds the demo content: a small hand-laid map with its
// BSP tree, procedural textures and sprite frames. It stands in for a map
// container loader; everything the renderer and simulation consume comes
// through the same level types a real loader would produce.
package world

import (
	"nocturne/internal/geom"
	"nocturne/internal/level"
	"nocturne/internal/sim"
)

// Demo sector tags.
const (
	TagLift = 1 // sector raised and lowered with the use key
)

// BuildDemoMap lays out three connected rooms in a row:
//
//	A: the start room
//	B: a raised middle room with a flickering fire light, usable as a lift
//	C: an open yard under the sky with a glowing light
//
// The rooms are convex, so each is a single subsector and the BSP tree is
// two vertical partitions.
func BuildDemoMap() (*level.Map, error) {
	m := &level.Map{
		Vertices: []geom.Vertex{
			geom.V(0, 0), geom.V(256, 0), geom.V(512, 0), geom.V(768, 0),
			geom.V(0, 256), geom.V(256, 256), geom.V(512, 256), geom.V(768, 256),
		},
		Sectors: []level.Sector{
			{
				FloorHeight: 0, CeilingHeight: 128,
				FloorTexture: "FLAT5", CeilingTexture: "CEIL3",
				BaseLight: 160,
			},
			{
				FloorHeight: 16, CeilingHeight: 144,
				FloorTexture: "FLAT14", CeilingTexture: "CEIL3",
				BaseLight: 192, Special: sim.SpecialFireFlicker, Tag: TagLift,
			},
			{
				FloorHeight: 0, CeilingHeight: 192,
				FloorTexture: "FLAT10", CeilingTexture: "F_SKY1",
				BaseLight: 224, Special: sim.SpecialGlow,
			},
		},
		SideDefs: []level.SideDef{
			{Sector: 0, MiddleTexture: "STARTAN"},                                             // 0: A west
			{Sector: 0, MiddleTexture: "STARTAN"},                                             // 1: A north
			{Sector: 0, MiddleTexture: "STARTAN"},                                             // 2: A south
			{Sector: 0, MiddleTexture: "-", LowerTexture: "STEP", UpperTexture: "STARTAN"},    // 3: A|B, A side
			{Sector: 1, MiddleTexture: "-", LowerTexture: "STEP", UpperTexture: "BROWN"},      // 4: A|B, B side
			{Sector: 1, MiddleTexture: "BROWN"},                                               // 5: B north
			{Sector: 1, MiddleTexture: "BROWN"},                                               // 6: B south
			{Sector: 1, MiddleTexture: "-", LowerTexture: "STEP", UpperTexture: "BROWN"},      // 7: B|C, B side
			{Sector: 2, MiddleTexture: "-", LowerTexture: "STEP", UpperTexture: "STONE"},      // 8: B|C, C side
			{Sector: 2, MiddleTexture: "STONE"},                                               // 9: C north
			{Sector: 2, MiddleTexture: "STONE"},                                               // 10: C south
			{Sector: 2, MiddleTexture: "STONE"},                                               // 11: C east
		},
		// Linedef vertex order keeps the front sector on the right of the
		// line direction, so front sidedefs face their room interiors.
		LineDefs: []level.LineDef{
			{StartVertex: 0, EndVertex: 4, FrontSide: 0, BackSide: level.NoSideDef},
			{StartVertex: 4, EndVertex: 5, FrontSide: 1, BackSide: level.NoSideDef},
			{StartVertex: 1, EndVertex: 0, FrontSide: 2, BackSide: level.NoSideDef},
			{StartVertex: 5, EndVertex: 1, FrontSide: 3, BackSide: 4, Flags: level.FlagTwoSided},
			{StartVertex: 5, EndVertex: 6, FrontSide: 5, BackSide: level.NoSideDef},
			{StartVertex: 2, EndVertex: 1, FrontSide: 6, BackSide: level.NoSideDef},
			{StartVertex: 6, EndVertex: 2, FrontSide: 7, BackSide: 8, Flags: level.FlagTwoSided},
			{StartVertex: 6, EndVertex: 7, FrontSide: 9, BackSide: level.NoSideDef},
			{StartVertex: 3, EndVertex: 2, FrontSide: 10, BackSide: level.NoSideDef},
			{StartVertex: 7, EndVertex: 3, FrontSide: 11, BackSide: level.NoSideDef},
		},
		Segs: []level.Seg{
			// Room A
			{StartVertex: 0, EndVertex: 4, LineDef: 0},
			{StartVertex: 4, EndVertex: 5, LineDef: 1},
			{StartVertex: 5, EndVertex: 1, LineDef: 3},
			{StartVertex: 1, EndVertex: 0, LineDef: 2},
			// Room B
			{StartVertex: 1, EndVertex: 5, LineDef: 3, Direction: true},
			{StartVertex: 5, EndVertex: 6, LineDef: 4},
			{StartVertex: 6, EndVertex: 2, LineDef: 6},
			{StartVertex: 2, EndVertex: 1, LineDef: 5},
			// Room C
			{StartVertex: 2, EndVertex: 6, LineDef: 6, Direction: true},
			{StartVertex: 6, EndVertex: 7, LineDef: 7},
			{StartVertex: 7, EndVertex: 3, LineDef: 9},
			{StartVertex: 3, EndVertex: 2, LineDef: 8},
		},
		SubSectors: []level.SubSector{
			{FirstSeg: 0, NumSegs: 4, Sector: 0},
			{FirstSeg: 4, NumSegs: 4, Sector: 1},
			{FirstSeg: 8, NumSegs: 4, Sector: 2},
		},
		Nodes: []level.Node{
			{
				X: 256, Y: 0, DX: 0, DY: 256,
				Left:      level.ChildRef{IsSubSector: true, Index: 0},
				Right:     level.ChildRef{IsSubSector: true, Index: 1},
				LeftBBox:  level.BBox{Left: 0, Right: 256, Top: 256, Bottom: 0},
				RightBBox: level.BBox{Left: 256, Right: 512, Top: 256, Bottom: 0},
			},
			{
				X: 512, Y: 0, DX: 0, DY: 256,
				Left:      level.ChildRef{IsSubSector: false, Index: 0},
				Right:     level.ChildRef{IsSubSector: true, Index: 2},
				LeftBBox:  level.BBox{Left: 0, Right: 512, Top: 256, Bottom: 0},
				RightBBox: level.BBox{Left: 512, Right: 768, Top: 256, Bottom: 0},
			},
		},
		Root: level.ChildRef{IsSubSector: false, Index: 1},
		Things: []level.Thing{
			{Position: geom.V(128, 128), Angle: 0, Type: sim.ThingPlayer1Start},
			{Position: geom.V(384, 96), Type: sim.ThingBarrel},
			{Position: geom.V(384, 192), Type: sim.ThingTorch},
			{Position: geom.V(640, 128), Angle: 2.0, Type: sim.ThingPillar},
			{Position: geom.V(576, 208), Type: sim.ThingBarrel},
		},
	}

	return level.NewMap(m)
}
