// Package sim runs the fixed-rate simulation: map object animation state
// machines, sector light specials and moving floors. It is the only writer
// of mutable map state; the renderer reads the result between ticks.
package sim

// TicRate is the number of simulation ticks per second.
const TicRate = 35

// InfiniteTics freezes a state until an external event forces a transition.
const InfiniteTics = -1

// ActionTag selects the entry action of a state. Actions are dispatched
// through one exhaustive switch in the scheduler so every transition is
// statically auditable.
type ActionTag int

const (
	ActionNone ActionTag = iota
	ActionRemove
)

// StateID indexes the States table.
type StateID int

// State is one entry of the animation state machine table: how long the
// state lasts, what happens on entry, and where to go next.
type State struct {
	Sprite     string
	Frame      int
	Tics       int // duration in ticks, InfiniteTics to freeze
	FullBright bool
	Action     ActionTag
	Next       StateID
}

// Built-in states. SNull is the removal sink; the others animate the demo
// object types. Maps with unknown spawn types fall back to SNull-adjacent
// static behavior instead of failing.
const (
	SNull StateID = iota
	SBarrel1
	SBarrel2
	STorch1
	STorch2
	STorch3
	SPillar
	SPuff1
	SPuff2
	SPuff3
	SPuffEnd
)

var States = []State{
	SNull:    {Sprite: "", Tics: InfiniteTics, Next: SNull},
	SBarrel1: {Sprite: "BAR", Frame: 0, Tics: 6, Next: SBarrel2},
	SBarrel2: {Sprite: "BAR", Frame: 1, Tics: 6, Next: SBarrel1},
	STorch1:  {Sprite: "TRE", Frame: 0, Tics: 4, FullBright: true, Next: STorch2},
	STorch2:  {Sprite: "TRE", Frame: 1, Tics: 4, FullBright: true, Next: STorch3},
	STorch3:  {Sprite: "TRE", Frame: 2, Tics: 4, FullBright: true, Next: STorch1},
	SPillar:  {Sprite: "COL", Frame: 0, Tics: InfiniteTics, Next: SPillar},
	SPuff1:   {Sprite: "PUF", Frame: 0, Tics: 4, FullBright: true, Next: SPuff2},
	SPuff2:   {Sprite: "PUF", Frame: 1, Tics: 4, Next: SPuff3},
	SPuff3:   {Sprite: "PUF", Frame: 2, Tics: 4, Next: SPuffEnd},
	SPuffEnd: {Sprite: "PUF", Frame: 3, Tics: 4, Action: ActionRemove, Next: SNull},
}

// ObjectInfo describes a thing type: its spawn state and physical extents
// used for rendering and height clipping.
type ObjectInfo struct {
	Type       int
	SpawnState StateID
	Radius     float64
	Height     float64
}

// Thing type identifiers understood by the demo content. Player starts are
// consumed by the game layer, not spawned as map objects.
const (
	ThingPlayer1Start = 1
	ThingBarrel       = 2035
	ThingTorch        = 46
	ThingPillar       = 30
)

var objectInfos = map[int]ObjectInfo{
	ThingBarrel: {Type: ThingBarrel, SpawnState: SBarrel1, Radius: 10, Height: 42},
	ThingTorch:  {Type: ThingTorch, SpawnState: STorch1, Radius: 16, Height: 68},
	ThingPillar: {Type: ThingPillar, SpawnState: SPillar, Radius: 16, Height: 48},
}

// InfoForType returns the object info for a thing type. Unknown types get a
// static pillar-like fallback so unsupported content renders instead of
// crashing.
func InfoForType(thingType int) ObjectInfo {
	if info, ok := objectInfos[thingType]; ok {
		return info
	}
	return ObjectInfo{Type: thingType, SpawnState: SPillar, Radius: 16, Height: 48}
}
