package render

import (
	"math"

	"nocturne/internal/geom"
	"nocturne/internal/level"
)

// planeKind distinguishes floor from ceiling visplanes.
type planeKind int

const (
	planeFloor planeKind = iota
	planeCeiling
)

const columnUnset = -2

// Visplane is a per-frame accumulation of horizontal floor or ceiling spans
// that share sector, kind, height, light level and texture. It records a
// top and bottom row for every column in [Left, Right].
type Visplane struct {
	kind    planeKind
	sector  int
	height  float64 // absolute world height of the plane
	light   int16
	texture *level.Picture
	sky     bool

	Left, Right int
	top         []int
	bottom      []int
}

func newVisplane(width int, kind planeKind, sector int, height float64, light int16, texture *level.Picture, sky bool) *Visplane {
	vp := &Visplane{
		kind:    kind,
		sector:  sector,
		height:  height,
		light:   light,
		texture: texture,
		sky:     sky,
		Left:    -1,
		Right:   -1,
		top:     make([]int, width),
		bottom:  make([]int, width),
	}
	for x := range vp.top {
		vp.top[x] = columnUnset
	}
	return vp
}

func (vp *Visplane) matches(other *Visplane) bool {
	return vp.kind == other.kind &&
		vp.sector == other.sector &&
		vp.height == other.height &&
		vp.light == other.light &&
		vp.texture == other.texture &&
		vp.sky == other.sky
}

func (vp *Visplane) setColumn(x, top, bottom int) {
	if vp.Left == -1 || x < vp.Left {
		vp.Left = x
	}
	if x > vp.Right {
		vp.Right = x
	}
	vp.top[x] = top
	vp.bottom[x] = bottom
}

// mergePlane folds a flushed visplane into the frame's plane set. A plane
// with an identical key absorbs the new columns when none of them conflict
// with columns it already owns; otherwise the new plane is kept separate.
func (fr *frame) mergePlane(vp *Visplane) {
	if vp.Left == -1 {
		return
	}
	for _, existing := range fr.planes {
		if !existing.matches(vp) {
			continue
		}
		conflict := false
		for x := vp.Left; x <= vp.Right; x++ {
			if vp.top[x] != columnUnset && existing.top[x] != columnUnset {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}
		for x := vp.Left; x <= vp.Right; x++ {
			if vp.top[x] != columnUnset {
				existing.setColumn(x, vp.top[x], vp.bottom[x])
			}
		}
		return
	}
	fr.planes = append(fr.planes, vp)
}

// sidedefPlanes accumulates the floor and ceiling visplane points emitted
// while walking one sidedef's columns. A gap in the columns flushes the
// accumulated planes so each stays a contiguous run.
type sidedefPlanes struct {
	fr           *frame
	sector       int
	light        int16
	floorFlat    *level.Picture
	ceilingFlat  *level.Picture
	floorHeight  float64
	ceilHeight   float64
	ceilSky      bool
	floorPlane   *Visplane
	ceilPlane    *Visplane
	floorUsed    bool
	ceilUsed     bool
}

func newSidedefPlanes(fr *frame, sector int, light int16, floorFlat, ceilingFlat *level.Picture, floorHeight, ceilHeight float64, ceilSky bool) *sidedefPlanes {
	return &sidedefPlanes{
		fr:          fr,
		sector:      sector,
		light:       light,
		floorFlat:   floorFlat,
		ceilingFlat: ceilingFlat,
		floorHeight: floorHeight,
		ceilHeight:  ceilHeight,
		ceilSky:     ceilSky,
	}
}

func (sp *sidedefPlanes) addFloorPoint(x, top, bottom int) {
	if !sp.floorUsed {
		sp.floorPlane = newVisplane(sp.fr.fb.Width, planeFloor, sp.sector, sp.floorHeight, sp.light, sp.floorFlat, false)
		sp.floorUsed = true
	}
	sp.floorPlane.setColumn(x, top, bottom)
}

func (sp *sidedefPlanes) addCeilingPoint(x, top, bottom int) {
	if !sp.ceilUsed {
		sp.ceilPlane = newVisplane(sp.fr.fb.Width, planeCeiling, sp.sector, sp.ceilHeight, sp.light, sp.ceilingFlat, sp.ceilSky)
		sp.ceilUsed = true
	}
	sp.ceilPlane.setColumn(x, top, bottom)
}

// flush hands the accumulated planes to the frame and resets.
func (sp *sidedefPlanes) flush() {
	if sp.floorUsed {
		sp.fr.mergePlane(sp.floorPlane)
		sp.floorPlane = nil
		sp.floorUsed = false
	}
	if sp.ceilUsed {
		sp.fr.mergePlane(sp.ceilPlane)
		sp.ceilPlane = nil
		sp.ceilUsed = false
	}
}

// drawVisplane rasterizes one visplane. Screen rows map back to world
// positions with an inverse perspective divide per row; the flat is sampled
// at the resulting world x,y with power-of-two wrapping.
func (fr *frame) drawVisplane(vp *Visplane) {
	if vp.sky {
		fr.drawSky(vp)
		return
	}

	p := fr.r.proj
	eyeZ := fr.view.EyeZ()
	sin, cos := math.Sincos(fr.view.Angle)

	for x := vp.Left; x <= vp.Right; x++ {
		if vp.top[x] == columnUnset {
			continue
		}
		top := geom.Max(vp.top[x], 0)
		bottom := geom.Min(vp.bottom[x], fr.fb.Height-1)

		// Single-row plane slivers read as solid horizontal lines; skip them.
		if bottom-top <= 1 {
			continue
		}

		for y := top; y <= bottom; y++ {
			// Back out of screen space into viewport coordinates.
			vx := (p.focusX - float64(x)) / p.aspect
			vy := p.focusY - float64(y)
			if vy == 0 {
				continue
			}

			// Inverse perspective: the plane is horizontal, so the world
			// forward distance follows from the plane height alone.
			wz := vp.height - eyeZ
			wx := p.gameFocusX * wz / vy
			wy := wz * vx / vy

			// Rotate into world orientation and translate to the viewpoint.
			wwx := wx*cos - wy*sin + fr.view.Position.X
			wwy := wx*sin + wy*cos + fr.view.Position.Y

			tx := int(wwx) & (level.FlatSize - 1)
			ty := int(wwy) & (level.FlatSize - 1)

			r, g, b, _ := vp.texture.At(tx, ty)
			sr, sg, sb := shadePixel(r, g, b, Shade(vp.light, wx))
			fr.fb.Set(x, y, sr, sg, sb)
		}
	}
}

// Sky texture mapping constants: 90 degrees of view covers one texture
// width.
const (
	skyTextureWidth  = 256
	skyTextureHeight = 128
)

// drawSky fills a sky visplane by horizontal angle only, so the backdrop
// pans with turning but never with movement.
func (fr *frame) drawSky(vp *Visplane) {
	sky := fr.r.textures.Sky()

	txOffset := int(-skyTextureWidth*fr.view.Angle/(math.Pi/2)) + skyTextureWidth
	txOffset %= skyTextureWidth
	if txOffset < 0 {
		txOffset += skyTextureWidth
	}

	for x := vp.Left; x <= vp.Right; x++ {
		if vp.top[x] == columnUnset {
			continue
		}
		top := geom.Max(vp.top[x], 0)
		bottom := geom.Min(vp.bottom[x], fr.fb.Height-1)

		tx := x * skyTextureWidth / fr.fb.Width
		tx = (tx + txOffset) % skyTextureWidth

		for y := top; y <= bottom; y++ {
			ty := y * skyTextureHeight / fr.fb.Height
			r, g, b, a := sky.At(tx, ty)
			if a == 0 {
				continue
			}
			fr.fb.Set(x, y, r, g, b)
		}
	}
}
