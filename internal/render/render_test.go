package render

import (
	"testing"

	"nocturne/internal/geom"
	"nocturne/internal/level"
	"nocturne/internal/sim"
	"nocturne/internal/world"
)

// testRoom is a single large square sector: four one-sided walls, one
// subsector, no partition nodes.
func testRoom(t *testing.T) *level.Map {
	t.Helper()
	m := &level.Map{
		Vertices: []geom.Vertex{
			geom.V(0, 0), geom.V(2048, 0), geom.V(2048, 2048), geom.V(0, 2048),
		},
		Sectors: []level.Sector{
			{
				FloorHeight: 0, CeilingHeight: 128,
				FloorTexture: "FLOOR", CeilingTexture: "CEIL",
				BaseLight: 192,
			},
		},
		SideDefs: []level.SideDef{
			{Sector: 0, MiddleTexture: "WALL"},
			{Sector: 0, MiddleTexture: "WALL"},
			{Sector: 0, MiddleTexture: "WALL"},
			{Sector: 0, MiddleTexture: "WALL"},
		},
		LineDefs: []level.LineDef{
			{StartVertex: 0, EndVertex: 3, FrontSide: 0, BackSide: level.NoSideDef},
			{StartVertex: 3, EndVertex: 2, FrontSide: 1, BackSide: level.NoSideDef},
			{StartVertex: 2, EndVertex: 1, FrontSide: 2, BackSide: level.NoSideDef},
			{StartVertex: 1, EndVertex: 0, FrontSide: 3, BackSide: level.NoSideDef},
		},
		Segs: []level.Seg{
			{StartVertex: 0, EndVertex: 3, LineDef: 0},
			{StartVertex: 3, EndVertex: 2, LineDef: 1},
			{StartVertex: 2, EndVertex: 1, LineDef: 2},
			{StartVertex: 1, EndVertex: 0, LineDef: 3},
		},
		SubSectors: []level.SubSector{
			{FirstSeg: 0, NumSegs: 4, Sector: 0},
		},
		Root: level.ChildRef{IsSubSector: true, Index: 0},
	}
	built, err := level.NewMap(m)
	if err != nil {
		t.Fatalf("building test room: %v", err)
	}
	return built
}

func testRenderer(m *level.Map) *Renderer {
	return NewRenderer(m, level.NewTextureStore(), level.NewSpriteStore(), 320, 200, 200.0/240.0)
}

func pixelBlack(fb *Framebuffer, x, y int) bool {
	i := 4 * (y*fb.Width + x)
	return fb.Pixels[i] == 0 && fb.Pixels[i+1] == 0 && fb.Pixels[i+2] == 0
}

func TestEnclosedRoomFullyOccludesScreen(t *testing.T) {
	m := testRoom(t)
	r := testRenderer(m)
	fb := NewFramebuffer(320, 200)

	fr := r.newFrame(fb, Viewpoint{Position: geom.V(512, 1024), Angle: 0})
	fr.renderChild(m.Root)

	if !fr.occlusion.FullyOccluded() {
		t.Errorf("enclosed room left open columns: %v", fr.occlusion.Ranges())
	}
}

func TestEnclosedRoomProducesOneFloorAndOneCeilingPlane(t *testing.T) {
	m := testRoom(t)
	r := testRenderer(m)
	fb := NewFramebuffer(320, 200)

	fr := r.newFrame(fb, Viewpoint{Position: geom.V(512, 1024), Angle: 0})
	fr.renderChild(m.Root)

	floors, ceilings := 0, 0
	for _, vp := range fr.planes {
		switch vp.kind {
		case planeFloor:
			floors++
		case planeCeiling:
			ceilings++
		}
	}
	// One sector, one height, one light level: the per-sidedef planes must
	// merge into a single plane of each kind.
	if floors != 1 {
		t.Errorf("floor planes = %d, want 1", floors)
	}
	if ceilings != 1 {
		t.Errorf("ceiling planes = %d, want 1", ceilings)
	}
}

func TestEnclosedRoomPixelCoverage(t *testing.T) {
	m := testRoom(t)
	r := testRenderer(m)
	fb := NewFramebuffer(320, 200)

	fr := r.newFrame(fb, Viewpoint{Position: geom.V(512, 1024), Angle: 0})
	fr.renderChild(m.Root)

	// The far wall straddles the horizon row.
	if pixelBlack(fb, 160, 100) {
		t.Errorf("wall pixel at screen center not drawn")
	}

	fr.drawVisplanes()
	if pixelBlack(fb, 160, 180) {
		t.Errorf("floor pixel not drawn")
	}
	if pixelBlack(fb, 160, 10) {
		t.Errorf("ceiling pixel not drawn")
	}
}

// portalRooms is two square sectors in a row joined by an open portal: same
// floor and ceiling heights, so only the light level differs across it.
func portalRooms(t *testing.T, backLight int16) *level.Map {
	t.Helper()
	m := &level.Map{
		Vertices: []geom.Vertex{
			geom.V(0, 0), geom.V(128, 0), geom.V(256, 0),
			geom.V(0, 128), geom.V(128, 128), geom.V(256, 128),
		},
		Sectors: []level.Sector{
			{FloorHeight: 0, CeilingHeight: 128, FloorTexture: "FLOOR", CeilingTexture: "CEIL", BaseLight: 192},
			{FloorHeight: 0, CeilingHeight: 128, FloorTexture: "FLOOR", CeilingTexture: "CEIL", BaseLight: backLight},
		},
		SideDefs: []level.SideDef{
			{Sector: 0, MiddleTexture: "WALL"},
			{Sector: 0, MiddleTexture: "WALL"},
			{Sector: 0, MiddleTexture: "WALL"},
			{Sector: 0, MiddleTexture: "-"},
			{Sector: 1, MiddleTexture: "-"},
			{Sector: 1, MiddleTexture: "WALL"},
			{Sector: 1, MiddleTexture: "WALL"},
			{Sector: 1, MiddleTexture: "WALL"},
		},
		LineDefs: []level.LineDef{
			{StartVertex: 0, EndVertex: 3, FrontSide: 0, BackSide: level.NoSideDef},
			{StartVertex: 3, EndVertex: 4, FrontSide: 1, BackSide: level.NoSideDef},
			{StartVertex: 1, EndVertex: 0, FrontSide: 2, BackSide: level.NoSideDef},
			{StartVertex: 4, EndVertex: 1, FrontSide: 3, BackSide: 4, Flags: level.FlagTwoSided},
			{StartVertex: 4, EndVertex: 5, FrontSide: 5, BackSide: level.NoSideDef},
			{StartVertex: 2, EndVertex: 1, FrontSide: 6, BackSide: level.NoSideDef},
			{StartVertex: 5, EndVertex: 2, FrontSide: 7, BackSide: level.NoSideDef},
		},
		Segs: []level.Seg{
			{StartVertex: 0, EndVertex: 3, LineDef: 0},
			{StartVertex: 3, EndVertex: 4, LineDef: 1},
			{StartVertex: 4, EndVertex: 1, LineDef: 3},
			{StartVertex: 1, EndVertex: 0, LineDef: 2},
			{StartVertex: 1, EndVertex: 4, LineDef: 3, Direction: true},
			{StartVertex: 4, EndVertex: 5, LineDef: 4},
			{StartVertex: 5, EndVertex: 2, LineDef: 6},
			{StartVertex: 2, EndVertex: 1, LineDef: 5},
		},
		SubSectors: []level.SubSector{
			{FirstSeg: 0, NumSegs: 4, Sector: 0},
			{FirstSeg: 4, NumSegs: 4, Sector: 1},
		},
		Nodes: []level.Node{
			{
				X: 128, Y: 0, DX: 0, DY: 128,
				Left:      level.ChildRef{IsSubSector: true, Index: 0},
				Right:     level.ChildRef{IsSubSector: true, Index: 1},
				LeftBBox:  level.BBox{Left: 0, Right: 128, Top: 128, Bottom: 0},
				RightBBox: level.BBox{Left: 128, Right: 256, Top: 128, Bottom: 0},
			},
		},
		Root: level.ChildRef{IsSubSector: false, Index: 0},
	}
	built, err := level.NewMap(m)
	if err != nil {
		t.Fatalf("building portal rooms: %v", err)
	}
	return built
}

func TestDarkSectorFloorRendersDarker(t *testing.T) {
	// Total brightness of a pixel run on the far room's floor, with the far
	// room at the given light level. The viewpoint and geometry are identical
	// across calls, so the sampled pixels sit at the same distance.
	floorBrightness := func(backLight int16) int {
		m := portalRooms(t, backLight)
		r := testRenderer(m)
		fb := NewFramebuffer(320, 200)
		r.RenderFrame(fb, Viewpoint{Position: geom.V(64, 64), Angle: 0}, nil)

		sum := 0
		for x := 150; x <= 170; x++ {
			i := 4 * (160*fb.Width + x)
			sum += int(fb.Pixels[i]) + int(fb.Pixels[i+1]) + int(fb.Pixels[i+2])
		}
		return sum
	}

	lit := floorBrightness(255)
	dark := floorBrightness(0)
	if lit == 0 {
		t.Fatalf("lit floor rendered black; sample row missed the far floor")
	}
	if dark >= lit {
		t.Errorf("dark sector floor brightness %d, lit %d; want strictly darker", dark, lit)
	}
}

func TestVisplanesSplitByHeightAndLight(t *testing.T) {
	m, err := world.BuildDemoMap()
	if err != nil {
		t.Fatalf("demo map: %v", err)
	}
	r := testRenderer(m)
	fb := NewFramebuffer(320, 200)

	// From the start room the portal into the raised room is visible, so
	// floors of both sectors appear, at different heights.
	fr := r.newFrame(fb, Viewpoint{Position: geom.V(128, 128), Angle: 0})
	fr.renderChild(m.Root)

	sectors := map[int]bool{}
	for _, vp := range fr.planes {
		if vp.kind == planeFloor {
			sectors[vp.sector] = true
		}
	}
	if len(sectors) < 2 {
		t.Errorf("expected floor planes from at least 2 sectors, got %v", sectors)
	}

	for _, vp := range fr.planes {
		for _, other := range fr.planes {
			if vp == other || !vp.matches(other) {
				continue
			}
			// Two planes with the same key must have conflicting columns,
			// otherwise they should have merged.
			conflict := false
			for x := vp.Left; x <= vp.Right && x >= 0; x++ {
				if vp.top[x] != columnUnset && other.top[x] != columnUnset {
					conflict = true
					break
				}
			}
			if !conflict {
				t.Errorf("two mergeable planes left unmerged (sector %d)", vp.sector)
			}
		}
	}
}

func TestPortalRecordsDeferredMiddleWall(t *testing.T) {
	m, err := world.BuildDemoMap()
	if err != nil {
		t.Fatalf("demo map: %v", err)
	}
	r := testRenderer(m)
	fb := NewFramebuffer(320, 200)

	fr := r.newFrame(fb, Viewpoint{Position: geom.V(128, 128), Angle: 0})
	fr.renderChild(m.Root)

	deferred := 0
	for _, w := range fr.walls {
		if w.state == wallTwoSided {
			deferred++
		}
	}
	if deferred == 0 {
		t.Errorf("no deferred two-sided wall pieces recorded through the portal")
	}
}

func TestRenderFrameDemoMap(t *testing.T) {
	m, err := world.BuildDemoMap()
	if err != nil {
		t.Fatalf("demo map: %v", err)
	}
	r := NewRenderer(m, world.BuildTextures(), world.BuildSprites(), 320, 200, 200.0/240.0)
	fb := NewFramebuffer(320, 200)
	w := sim.NewWorld(m)

	view := Viewpoint{Position: geom.V(128, 128), Angle: 0}
	r.RenderFrame(fb, view, w)

	drawn := 0
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			if !pixelBlack(fb, x, y) {
				drawn++
			}
		}
	}
	if drawn < fb.Width*fb.Height/2 {
		t.Errorf("only %d of %d pixels drawn", drawn, fb.Width*fb.Height)
	}

	// A second frame from the same renderer must work identically; frame
	// state may not leak.
	r.RenderFrame(fb, view, w)
}

func TestSpriteRotationSelection(t *testing.T) {
	cases := []struct {
		view, object float64
		want         int
	}{
		{0, 0, 4},       // viewer and object face the same way: its back
		{3.14159, 0, 0}, // facing each other: its front
		{0, 3.14159, 0},
	}
	for _, c := range cases {
		if got := spriteRotation(c.view, c.object); got != c.want {
			t.Errorf("spriteRotation(%v, %v) = %d, want %d", c.view, c.object, got, c.want)
		}
	}
}
