package world

import (
	"testing"

	"nocturne/internal/geom"
	"nocturne/internal/level"
)

func TestBuildDemoMapValidates(t *testing.T) {
	m, err := BuildDemoMap()
	if err != nil {
		t.Fatalf("demo map invalid: %v", err)
	}

	if got := m.SectorAt(geom.V(128, 128)); got != &m.Sectors[0] {
		t.Errorf("start room position resolved to the wrong sector")
	}
	if got := m.SectorAt(geom.V(384, 128)); got != &m.Sectors[1] {
		t.Errorf("middle room position resolved to the wrong sector")
	}
	if got := m.SectorAt(geom.V(640, 128)); got != &m.Sectors[2] {
		t.Errorf("yard position resolved to the wrong sector")
	}

	// The middle room's dark level comes from the start room.
	if got := m.MinNeighborLight(1, m.Sectors[1].BaseLight); got != 160 {
		t.Errorf("middle room neighbor light = %d, want 160", got)
	}
}

func TestBuildTexturesCoversMapReferences(t *testing.T) {
	m, err := BuildDemoMap()
	if err != nil {
		t.Fatalf("demo map: %v", err)
	}
	store := BuildTextures()

	for _, sd := range m.SideDefs {
		for _, name := range []string{sd.UpperTexture, sd.LowerTexture, sd.MiddleTexture} {
			if name == "" || name == level.NoTexture {
				continue
			}
			if store.Texture(name) == store.Placeholder() {
				t.Errorf("wall texture %q missing from the store", name)
			}
		}
	}
	for _, sec := range m.Sectors {
		if store.Flat(sec.FloorTexture) == store.Placeholder() {
			t.Errorf("floor flat %q missing from the store", sec.FloorTexture)
		}
		if !level.IsSkyTexture(sec.CeilingTexture) &&
			store.Flat(sec.CeilingTexture) == store.Placeholder() {
			t.Errorf("ceiling flat %q missing from the store", sec.CeilingTexture)
		}
	}
}

func TestBuildSpritesCoversObjectStates(t *testing.T) {
	store := BuildSprites()

	for _, name := range []string{"BAR", "TRE", "COL", "PUF"} {
		if store.Frame(name, 0, 0) == store.Frame("NO_SUCH_SPRITE", 0, 0) {
			t.Errorf("sprite %q missing from the store", name)
		}
	}

	// The pillar has eight distinct rotations.
	seen := map[*level.Picture]bool{}
	for rot := 0; rot < 8; rot++ {
		seen[store.Frame("COL", 0, rot)] = true
	}
	if len(seen) != 8 {
		t.Errorf("pillar rotations = %d distinct pictures, want 8", len(seen))
	}
}

func TestTexturesAreDeterministic(t *testing.T) {
	a := BuildTextures().Texture("STARTAN")
	b := BuildTextures().Texture("STARTAN")
	for i := range a.Pixels {
		if a.Pixels[i] != b.Pixels[i] {
			t.Fatalf("texture generation not deterministic at byte %d", i)
		}
	}
}
