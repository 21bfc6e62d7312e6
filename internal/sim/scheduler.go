package sim

import (
	"math/rand"

	"nocturne/internal/geom"
)

// Sector light special selectors, matching the classic numbering. Unknown
// selectors get no thinker and the sector stays static.
const (
	SpecialLightFlash      = 1
	SpecialStrobeFast      = 2
	SpecialStrobeSlow      = 3
	SpecialStrobeFastSlime = 4
	SpecialGlow            = 8
	SpecialSyncStrobeSlow  = 12
	SpecialSyncStrobeFast  = 13
	SpecialFireFlicker     = 17
)

// Light special timing constants, in ticks.
const (
	SlowDark     = 35
	FastDark     = 15
	StrobeBright = 5
	GlowSpeed    = 8
)

// FloorFinish selects the follow-up behavior when a moving floor reaches its
// target.
type FloorFinish int

const (
	FloorFinishStop   FloorFinish = iota // deactivate
	FloorFinishReturn                    // move back to the starting height, then stop
)

type thinkerKind int

const (
	thinkObject thinkerKind = iota
	thinkLightFlash
	thinkStrobe
	thinkGlow
	thinkFireFlicker
	thinkMovingFloor
)

// thinker is one arena slot. The kind tag selects which fields are live;
// dispatch happens in a single switch in advance.
type thinker struct {
	kind    thinkerKind
	removed bool

	// thinkObject
	object *MapObject
	count  int

	// light specials
	sector   int
	minLight int16
	maxLight int16
	minTime  int
	maxTime  int
	goingUp  bool

	// thinkMovingFloor
	start  float64
	target float64
	step   float64
	finish FloorFinish
}

// Scheduler advances every active thinker once per simulation tick. Removal
// is deferred: a thinker marks itself removed mid-tick and a compaction pass
// drops the slot after the iteration, never during it.
type Scheduler struct {
	world    *World
	thinkers []thinker
	rng      *rand.Rand
}

// NewScheduler creates a scheduler over the world. The seed drives the
// randomized light specials; a fixed seed gives a reproducible simulation.
func NewScheduler(w *World, seed int64) *Scheduler {
	s := &Scheduler{
		world: w,
		rng:   rand.New(rand.NewSource(seed)),
	}
	for _, o := range w.Objects {
		if States[o.StateID].Tics != InfiniteTics {
			s.thinkers = append(s.thinkers, thinker{
				kind:   thinkObject,
				object: o,
				count:  States[o.StateID].Tics,
			})
		}
	}
	s.initLightSpecials()
	return s
}

// initLightSpecials attaches a light thinker to every sector whose special
// selects one. The dark level is the minimum base light of the neighboring
// sectors, as derived by MinNeighborLight.
func (s *Scheduler) initLightSpecials() {
	m := s.world.Map
	for i := range m.Sectors {
		sec := &m.Sectors[i]
		switch sec.Special {
		case SpecialLightFlash:
			min := m.MinNeighborLight(i, sec.BaseLight)
			s.thinkers = append(s.thinkers, thinker{
				kind:     thinkLightFlash,
				sector:   i,
				minLight: min,
				maxLight: sec.BaseLight,
				minTime:  7,
				maxTime:  64,
				count:    s.rng.Intn(64) + 1,
			})
		case SpecialStrobeFast, SpecialStrobeFastSlime:
			s.addStrobe(i, FastDark, false)
		case SpecialStrobeSlow:
			s.addStrobe(i, SlowDark, false)
		case SpecialSyncStrobeFast:
			s.addStrobe(i, FastDark, true)
		case SpecialSyncStrobeSlow:
			s.addStrobe(i, SlowDark, true)
		case SpecialGlow:
			min := m.MinNeighborLight(i, sec.BaseLight)
			s.thinkers = append(s.thinkers, thinker{
				kind:     thinkGlow,
				sector:   i,
				minLight: min,
				maxLight: sec.BaseLight,
			})
		case SpecialFireFlicker:
			min := m.MinNeighborLight(i, sec.BaseLight) + 16
			s.thinkers = append(s.thinkers, thinker{
				kind:     thinkFireFlicker,
				sector:   i,
				minLight: min,
				maxLight: sec.BaseLight,
				count:    4,
			})
		}
	}
}

func (s *Scheduler) addStrobe(sector int, darkTime int, inSync bool) {
	m := s.world.Map
	sec := &m.Sectors[sector]
	min := m.MinNeighborLight(sector, sec.BaseLight)
	if min == sec.BaseLight {
		min = 0
	}
	count := 1
	if !inSync {
		count = s.rng.Intn(8) + 1
	}
	s.thinkers = append(s.thinkers, thinker{
		kind:     thinkStrobe,
		sector:   sector,
		minLight: min,
		maxLight: sec.BaseLight,
		minTime:  darkTime,
		maxTime:  StrobeBright,
		count:    count,
	})
}

// AddMovingFloor starts a floor move toward target at a fixed step per tick.
// The floor lands exactly on the target and the thinker then stops, or
// returns to the starting height first when finish is FloorFinishReturn.
func (s *Scheduler) AddMovingFloor(sector int, target, step float64, finish FloorFinish) {
	sec := &s.world.Map.Sectors[sector]
	s.thinkers = append(s.thinkers, thinker{
		kind:   thinkMovingFloor,
		sector: sector,
		start:  sec.CurrentFloor,
		target: target,
		step:   step,
		finish: finish,
	})
}

// ActiveThinkers returns the number of live thinkers.
func (s *Scheduler) ActiveThinkers() int {
	return len(s.thinkers)
}

// Tick advances every active thinker by one simulation step, then compacts
// the arena.
func (s *Scheduler) Tick() {
	for i := range s.thinkers {
		if !s.thinkers[i].removed {
			s.advance(&s.thinkers[i])
		}
	}
	s.compact()
}

func (s *Scheduler) compact() {
	live := s.thinkers[:0]
	for _, t := range s.thinkers {
		if !t.removed {
			live = append(live, t)
		}
	}
	s.thinkers = live
}

// advance is the single dispatch point for all thinker kinds.
func (s *Scheduler) advance(t *thinker) {
	switch t.kind {
	case thinkObject:
		s.advanceObject(t)
	case thinkLightFlash:
		s.advanceLightFlash(t)
	case thinkStrobe:
		s.advanceStrobe(t)
	case thinkGlow:
		s.advanceGlow(t)
	case thinkFireFlicker:
		s.advanceFireFlicker(t)
	case thinkMovingFloor:
		s.advanceMovingFloor(t)
	}
}

// advanceObject counts down the current state and on zero enters the next
// state, running its entry action. A tick count of InfiniteTics freezes the
// state machine.
func (s *Scheduler) advanceObject(t *thinker) {
	if t.count == InfiniteTics {
		return
	}
	t.count--
	if t.count > 0 {
		return
	}

	next := States[t.object.StateID].Next
	t.object.StateID = next
	t.count = States[next].Tics

	switch States[next].Action {
	case ActionNone:
	case ActionRemove:
		t.object.removed = true
		t.removed = true
	}
}

// advanceLightFlash blinks between the sector's base light and the
// neighboring minimum with randomized hold times.
func (s *Scheduler) advanceLightFlash(t *thinker) {
	sec := &s.world.Map.Sectors[t.sector]
	t.count--
	if t.count > 0 {
		return
	}

	if sec.LightLevel == t.maxLight {
		sec.LightLevel = t.minLight
		t.count = s.rng.Intn(t.minTime) + 1
	} else {
		sec.LightLevel = t.maxLight
		t.count = s.rng.Intn(t.maxTime) + 1
	}
}

// advanceStrobe is a fixed-period square wave: minTime ticks dark, maxTime
// (StrobeBright) ticks bright.
func (s *Scheduler) advanceStrobe(t *thinker) {
	sec := &s.world.Map.Sectors[t.sector]
	t.count--
	if t.count > 0 {
		return
	}

	if sec.LightLevel == t.maxLight {
		sec.LightLevel = t.minLight
		t.count = t.minTime
	} else {
		sec.LightLevel = t.maxLight
		t.count = t.maxTime
	}
}

// advanceGlow ramps the light up and down between the neighboring minimum
// and the sector's base level.
func (s *Scheduler) advanceGlow(t *thinker) {
	sec := &s.world.Map.Sectors[t.sector]
	if t.goingUp {
		sec.LightLevel += GlowSpeed
		if sec.LightLevel >= t.maxLight {
			sec.LightLevel -= GlowSpeed
			t.goingUp = false
		}
	} else {
		sec.LightLevel -= GlowSpeed
		if sec.LightLevel <= t.minLight {
			sec.LightLevel += GlowSpeed
			t.goingUp = true
		}
	}
	sec.LightLevel = geom.Clamp(sec.LightLevel, 0, 255)
}

// advanceFireFlicker drops the light a random amount below the base level
// every 4 ticks, never below the derived minimum.
func (s *Scheduler) advanceFireFlicker(t *thinker) {
	sec := &s.world.Map.Sectors[t.sector]
	t.count--
	if t.count > 0 {
		return
	}

	amount := int16(s.rng.Intn(4) * 16)
	if sec.LightLevel-amount < t.minLight {
		sec.LightLevel = t.minLight
	} else {
		sec.LightLevel = t.maxLight - amount
	}
	t.count = 4
}

// advanceMovingFloor steps the sector floor toward the target, landing on it
// exactly, then stops or turns around per the finish policy.
func (s *Scheduler) advanceMovingFloor(t *thinker) {
	sec := &s.world.Map.Sectors[t.sector]

	if sec.CurrentFloor < t.target {
		sec.CurrentFloor += t.step
		if sec.CurrentFloor >= t.target {
			sec.CurrentFloor = t.target
		}
	} else if sec.CurrentFloor > t.target {
		sec.CurrentFloor -= t.step
		if sec.CurrentFloor <= t.target {
			sec.CurrentFloor = t.target
		}
	}

	if sec.CurrentFloor != t.target {
		return
	}

	switch t.finish {
	case FloorFinishReturn:
		t.target = t.start
		t.start = sec.CurrentFloor
		t.finish = FloorFinishStop
	case FloorFinishStop:
		t.removed = true
	}
}
