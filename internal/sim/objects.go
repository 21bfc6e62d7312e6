package sim

import (
	"nocturne/internal/geom"
	"nocturne/internal/level"
)

// MapObject is a live map object. Objects live in the World arena; a removed
// object keeps its slot until the between-tick compaction pass.
type MapObject struct {
	ID       int // stable spawn index, used as the sprite draw tie-break
	Position geom.Vertex
	Angle    float64
	Type     int
	Info     ObjectInfo
	StateID  StateID
	Sector   int // owning sector, for floor height and light
	removed  bool
}

// State returns the object's current state table entry.
func (o *MapObject) State() *State {
	return &States[o.StateID]
}

// Removed reports whether the object has been deactivated. Removed objects
// are skipped by the renderer.
func (o *MapObject) Removed() bool {
	return o.removed
}

// World owns the mutable simulation state layered over the immutable map:
// the live map objects and the thinker arena.
type World struct {
	Map     *level.Map
	Objects []*MapObject
}

// NewWorld spawns map objects from the map's things. Player and deathmatch
// starts are skipped; they belong to the game layer.
func NewWorld(m *level.Map) *World {
	w := &World{Map: m}
	for _, thing := range m.Things {
		if thing.Type >= ThingPlayer1Start && thing.Type <= ThingPlayer1Start+3 {
			continue
		}
		info := InfoForType(thing.Type)
		sector := -1
		if ss := m.SubSectorAt(thing.Position); ss != nil {
			sector = ss.Sector
		}
		w.Objects = append(w.Objects, &MapObject{
			ID:       len(w.Objects),
			Position: thing.Position,
			Angle:    thing.Angle,
			Type:     thing.Type,
			Info:     info,
			StateID:  info.SpawnState,
			Sector:   sector,
		})
	}
	return w
}

// LiveObjects appends all non-removed objects to dst and returns it. The
// renderer calls this once per frame.
func (w *World) LiveObjects(dst []*MapObject) []*MapObject {
	for _, o := range w.Objects {
		if !o.removed {
			dst = append(dst, o)
		}
	}
	return dst
}
