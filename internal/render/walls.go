package render

import (
	"nocturne/internal/geom"
	"nocturne/internal/level"
)

// projection converts viewport coordinates (x forward, y left) to screen
// coordinates. The horizontal field of view is 90 degrees in pre-aspect
// "game" space; the aspect correction narrows it back to the classic look.
// All projection math is float64; screen coordinates truncate toward zero.
type projection struct {
	width, height int
	focusX        float64 // screen center x
	focusY        float64 // screen center y
	gameFocusX    float64 // focal length in game space
	aspect        float64
}

func newProjection(width, height int, aspect float64) projection {
	gameWidth := float64(width) / aspect
	return projection{
		width:      width,
		height:     height,
		focusX:     float64(width) / 2,
		focusY:     float64(height) / 2,
		gameFocusX: gameWidth / 2,
		aspect:     aspect,
	}
}

// screenX projects a viewport vertex to a screen column, clamped to the
// screen.
func (p projection) screenX(v geom.Vertex) int {
	x := int(p.focusX - p.aspect*p.gameFocusX*v.Y/v.X)
	return geom.Clamp(x, 0, p.width-1)
}

// screenY projects a height (relative to the eye) at a viewport vertex to a
// screen row. Rows are not clamped; callers clip them.
func (p projection) screenY(v geom.Vertex, height float64) int {
	return int(p.focusY - p.gameFocusX*height/v.X)
}

// clippedLine is a wall segment in viewport coordinates after clipping to
// the view frustum, remembering how much was cut from the start so texture
// offsets stay aligned.
type clippedLine struct {
	line        geom.Line
	startOffset float64
}

// clipToViewport clips a viewport-space line against the two 45 degree
// frustum edges. It returns false when no part of the line is in view.
func clipToViewport(line geom.Line) (clippedLine, bool) {
	left := geom.L(geom.V(0, 0), geom.V(1, 1))
	right := geom.L(geom.V(0, 0), geom.V(1, -1))

	startOutsideLeft := line.Start.IsLeftOf(left)
	endOutsideLeft := line.End.IsLeftOf(left)
	startOutsideRight := !line.Start.IsLeftOf(right)
	endOutsideRight := !line.End.IsLeftOf(right)

	startInView := line.Start.X > 0 && !startOutsideLeft && !startOutsideRight
	endInView := line.End.X > 0 && !endOutsideLeft && !endOutsideRight

	if startInView && endInView {
		return clippedLine{line: line}, true
	}

	leftIntersection, leftOK := line.Intersection(left)
	rightIntersection, rightOK := line.Intersection(right)

	leftIntersected := leftOK && leftIntersection.X >= 0
	rightIntersected := rightOK && rightIntersection.X >= 0

	// Entirely outside with no frustum crossing in front of us.
	if !startInView && !endInView && !leftIntersected && !rightIntersected {
		return clippedLine{}, false
	}

	// One crossing only: the line does not pass through the view.
	if !startInView && !endInView && leftIntersected != rightIntersected {
		return clippedLine{}, false
	}

	// Crossings behind an edge both of whose endpoints are outside it.
	if (rightIntersected && startOutsideRight && endOutsideRight) ||
		(leftIntersected && startOutsideLeft && endOutsideLeft) {
		return clippedLine{}, false
	}

	start := line.Start
	end := line.End
	startOffset := 0.0

	if leftIntersected {
		if startOutsideLeft {
			startOffset = leftIntersection.DistanceTo(start)
			start = leftIntersection
		}
		if endOutsideLeft {
			end = leftIntersection
		}
	}
	if rightIntersected {
		if startOutsideRight {
			start = rightIntersection
		}
		if endOutsideRight {
			end = rightIntersection
		}
	}

	return clippedLine{line: geom.L(start, end), startOffset: startOffset}, true
}

type wallState int

const (
	wallSolid    wallState = iota // drawn during traversal, kept for sprite clipping
	wallTwoSided                  // deferred two-sided middle, drawn with the sprites
	wallDrawn                     // deferred wall already drawn
	wallObject                    // billboard sprite
)

type wallColumn struct {
	x             int
	clippedTop    int
	clippedBottom int
	topY          int
	bottomY       int
}

// wallRender is the retained context of one projected wall piece or sprite:
// enough to draw its columns later and to clip map objects against it.
type wallRender struct {
	state           wallState
	texture         *level.Picture // nil for a non-rendered portal
	light           int16
	clipped         clippedLine
	startX, endX    int
	bottomH, topH   float64 // heights relative to the eye
	offsetX         float64
	offsetY         float64
	extendsToBottom bool
	extendsToTop    bool
	columns         []wallColumn
}

// depth is the sorting key used when interleaving deferred walls with map
// objects: the forward distance of the near end of the clipped line.
func (w *wallRender) depth() float64 {
	return w.clipped.line.Start.X
}

func (w *wallRender) addColumn(x, clippedTop, clippedBottom, topY, bottomY int) {
	w.columns = append(w.columns, wallColumn{
		x:             x,
		clippedTop:    clippedTop,
		clippedBottom: clippedBottom,
		topY:          topY,
		bottomY:       bottomY,
	})
}

// render draws all recorded columns unless the piece was already drawn
// during traversal.
func (w *wallRender) render(fr *frame) {
	if w.state == wallSolid || w.state == wallDrawn {
		return
	}
	if w.texture != nil {
		for _, col := range w.columns {
			fr.drawWallColumn(w, col)
		}
	}
	if w.state == wallTwoSided {
		w.state = wallDrawn
	}
}

// drawWallColumn draws one textured column with perspective-correct
// horizontal texture interpolation and linear vertical mapping (one world
// unit per texel).
func (fr *frame) drawWallColumn(w *wallRender, col wallColumn) {
	tex := w.texture
	length := w.clipped.line.Length()
	uz0 := w.clipped.line.Start.X
	uz1 := w.clipped.line.End.X
	if uz0 <= 0 || uz1 <= 0 || w.endX == w.startX {
		return
	}

	ax := float64(col.x-w.startX) / float64(w.endX-w.startX)
	invZ := (1-ax)/uz0 + ax/uz1
	if invZ <= 0 {
		return
	}

	tx := int((ax * length / uz1) / invZ)
	tx += int(w.clipped.startOffset + w.offsetX)
	tx %= tex.Width
	if tx < 0 {
		tx += tex.Width
	}

	// Forward depth of this column, for light diminishing.
	z := 1 / invZ
	factor := Shade(w.light, z)

	dy := col.bottomY - col.topY
	for y := col.clippedTop; y <= col.clippedBottom; y++ {
		ay := 0.0
		if dy != 0 {
			ay = float64(y-col.topY) / float64(dy)
		}
		ty := int(float64(tex.Height) + ay*(w.topH-w.bottomH))
		ty += int(w.offsetY)
		ty %= tex.Height
		if ty < 0 {
			ty += tex.Height
		}

		r, g, b, a := tex.At(tx, ty)
		if a == 0 {
			continue
		}
		sr, sg, sb := shadePixel(r, g, b, factor)
		fr.fb.Set(col.x, y, sr, sg, sb)
	}
}

// sidedefArgs parameterizes one pass over a sidedef's columns. A seg is
// processed in up to four passes: occlusions-only for portals, and the
// middle, lower and upper wall pieces.
type sidedefArgs struct {
	clipped     clippedLine
	side        *level.SideDef
	bottomH     float64 // piece bottom relative to the eye
	topH        float64 // piece top relative to the eye
	segOffset   float64
	offsetY     float64
	textureName string
	light       int16

	sector      int
	floorFlat   *level.Picture
	ceilingFlat *level.Picture
	floorHeight float64 // absolute, for the visplane key
	ceilHeight  float64
	ceilSky     bool

	onlyOcclusions bool // no drawing, just occlusion + visplane bookkeeping
	isLowerWall    bool
	isUpperWall    bool
	drawCeiling    bool // false under the sky hack
	isTransparent  bool // deferred two-sided middle piece
}

// processSidedef walks one wall piece's visible columns: draws them, feeds
// the floor/ceiling visplanes and updates the occlusion state. This is the
// core of the wall rasterizer.
func (fr *frame) processSidedef(args *sidedefArgs) {
	p := fr.r.proj

	startX := p.screenX(args.clipped.line.Start)
	endX := p.screenX(args.clipped.line.End)

	// Viewed edge-on: nothing to see.
	if startX == endX {
		return
	}

	bottomStartY := p.screenY(args.clipped.line.Start, args.bottomH)
	bottomEndY := p.screenY(args.clipped.line.End, args.bottomH)
	topStartY := p.screenY(args.clipped.line.Start, args.topH)
	topEndY := p.screenY(args.clipped.line.End, args.topH)

	bottomDelta := float64(bottomStartY-bottomEndY) / float64(startX-endX)
	topDelta := float64(topStartY-topEndY) / float64(startX-endX)

	var texture *level.Picture
	if args.textureName != level.NoTexture {
		texture = fr.r.textures.Texture(args.textureName)
	}

	planes := newSidedefPlanes(fr, args.sector, args.light, args.floorFlat, args.ceilingFlat,
		args.floorHeight, args.ceilHeight, args.ceilSky)

	isFullHeight := !args.isLowerWall && !args.isUpperWall && !args.onlyOcclusions

	state := wallSolid
	if args.isTransparent {
		state = wallTwoSided
	}
	wall := &wallRender{
		state:           state,
		texture:         texture,
		light:           args.light,
		clipped:         args.clipped,
		startX:          startX,
		endX:            endX,
		bottomH:         args.bottomH,
		topH:            args.topH,
		offsetX:         args.side.XOffset + args.segOffset,
		offsetY:         args.side.YOffset + args.offsetY,
		extendsToBottom: args.isLowerWall || (!args.isTransparent && isFullHeight),
		extendsToTop:    args.isUpperWall || (!args.isTransparent && isFullHeight),
	}

	visible := fr.occlusion.Clip(Range{Start: startX, End: endX})

	for _, open := range visible {
		for x := open.Start; x <= open.End; x++ {
			bottomY := bottomStartY + int(float64(x-startX)*bottomDelta)
			topY := topStartY + int(float64(x-startX)*topDelta)

			floorClip := fr.floorClip[x]
			ceilClip := fr.ceilClip[x]

			clippedBottom := geom.Min(floorClip, bottomY)
			clippedTop := geom.Max(ceilClip, topY)
			clippedBottom = geom.Min(fr.fb.Height-1, clippedBottom)
			clippedTop = geom.Max(0, clippedTop)

			// Equality included: zero-height sectors still contribute their
			// occlusion edge.
			inVertWindow := clippedBottom >= clippedTop

			if inVertWindow {
				if !args.isTransparent && !args.onlyOcclusions && texture != nil {
					fr.drawWallColumn(wall, wallColumn{
						x:             x,
						clippedTop:    clippedTop,
						clippedBottom: clippedBottom,
						topY:          topY,
						bottomY:       bottomY,
					})
				}
				wall.addColumn(x, clippedTop, clippedBottom, topY, bottomY)
			}

			if !args.isTransparent && inVertWindow && (isFullHeight || args.onlyOcclusions) {
				planeAdded := false

				if clippedBottom < floorClip && clippedBottom != fr.fb.Height-1 {
					planes.addFloorPoint(x, clippedBottom, floorClip)
					planeAdded = true
				}
				if args.drawCeiling && clippedTop > ceilClip && clippedTop != -1 {
					planes.addCeilingPoint(x, ceilClip, clippedTop)
					planeAdded = true
				}
				if !planeAdded {
					planes.flush()
				}
			} else if !args.isTransparent && !inVertWindow && (isFullHeight || args.onlyOcclusions) &&
				floorClip > ceilClip {
				// The wall itself is outside the vertical window but an
				// unoccluded gap remains; it shows this sidedef's floor or
				// ceiling.
				if bottomY <= ceilClip {
					planes.addFloorPoint(x, ceilClip, floorClip)
					fr.occludeColumn(x)
				}
				if args.drawCeiling && topY >= floorClip {
					planes.addCeilingPoint(x, ceilClip, floorClip)
					fr.occludeColumn(x)
				}
			}

			if !args.isTransparent && inVertWindow {
				if args.onlyOcclusions {
					fr.floorClip[x] = clippedBottom
					if args.drawCeiling {
						fr.ceilClip[x] = clippedTop
					}
				}
				if args.isLowerWall {
					fr.floorClip[x] = clippedTop
				}
				if args.isUpperWall {
					fr.ceilClip[x] = clippedBottom
				}
			}

			if !args.isTransparent && isFullHeight {
				fr.floorClip[x] = fr.fb.Height / 2
				fr.ceilClip[x] = fr.fb.Height / 2
			}
		}

		// A full-height piece blocks everything behind its span.
		if !args.isTransparent && isFullHeight {
			fr.occlusion.MarkSolid(open)
		}

		// Occluded gap between subranges: keep plane runs contiguous.
		planes.flush()
	}

	planes.flush()
	fr.walls = append(fr.walls, wall)
}

// renderSeg projects one seg and dispatches its wall pieces. One-sided segs
// draw a single full-height piece; two-sided segs get an occlusion pass, a
// deferred middle piece and optional lower/upper pieces around the portal
// opening.
func (fr *frame) renderSeg(seg *level.Seg) {
	m := fr.r.level
	frontIdx, backIdx := m.SegSides(seg)
	if frontIdx == level.NoSideDef {
		return
	}
	frontSide := &m.SideDefs[frontIdx]
	frontSector := &m.Sectors[frontSide.Sector]

	floorHeight := frontSector.CurrentFloor
	ceilHeight := frontSector.CeilingHeight

	// Portal opening heights come from the back sector.
	var portalBottom, portalTop float64
	hasPortalBottom, hasPortalTop := false, false
	var backSector *level.Sector
	if backIdx != level.NoSideDef {
		backSector = &m.Sectors[m.SideDefs[backIdx].Sector]
		if backSector.CurrentFloor > frontSector.CurrentFloor {
			portalBottom = backSector.CurrentFloor
			hasPortalBottom = true
		}
		if backSector.CeilingHeight < frontSector.CeilingHeight {
			portalTop = backSector.CeilingHeight
			hasPortalTop = true
		}
	}

	ld := &m.LineDefs[seg.LineDef]
	isTwoSided := ld.TwoSided() && backIdx != level.NoSideDef
	topUnpegged := ld.Flags&level.FlagDontPegTop != 0
	bottomUnpegged := ld.Flags&level.FlagDontPegBottom != 0

	// Transform away the viewpoint position and angle.
	start := m.Vertices[seg.StartVertex].Sub(fr.view.Position).Rotate(-fr.view.Angle)
	end := m.Vertices[seg.EndVertex].Sub(fr.view.Position).Rotate(-fr.view.Angle)

	clipped, ok := clipToViewport(geom.L(start, end))
	if !ok {
		return
	}

	eyeZ := fr.view.EyeZ()

	// Facing the back of the seg: projected left-to-right order flips.
	if fr.r.proj.screenX(clipped.line.Start) > fr.r.proj.screenX(clipped.line.End) {
		return
	}

	floorFlat := fr.r.textures.Flat(frontSector.FloorTexture)
	ceilingFlat := fr.r.textures.Flat(frontSector.CeilingTexture)
	ceilSky := level.IsSkyTexture(frontSector.CeilingTexture)
	light := frontSector.LightLevel

	// Sky hack: a portal between two sky ceilings draws neither the upper
	// piece nor a ceiling plane, so the sky runs through unbroken.
	drawCeiling := true
	if backSector != nil &&
		level.IsSkyTexture(frontSector.CeilingTexture) &&
		level.IsSkyTexture(backSector.CeilingTexture) {
		hasPortalTop = false
		ceilHeight = backSector.CeilingHeight
		drawCeiling = false
	}

	base := sidedefArgs{
		clipped:     clipped,
		side:        frontSide,
		segOffset:   seg.Offset,
		light:       light,
		sector:      frontSide.Sector,
		floorFlat:   floorFlat,
		ceilingFlat: ceilingFlat,
		floorHeight: frontSector.CurrentFloor,
		ceilHeight:  frontSector.CeilingHeight,
		ceilSky:     ceilSky,
		drawCeiling: drawCeiling,
	}

	if !isTwoSided {
		// Solid wall: middle texture, floor to ceiling.
		offsetY := 0.0
		if bottomUnpegged {
			offsetY = floorHeight - ceilHeight
		}
		args := base
		args.bottomH = floorHeight - eyeZ
		args.topH = ceilHeight - eyeZ
		args.offsetY = offsetY
		args.textureName = frontSide.MiddleTexture
		fr.processSidedef(&args)
		return
	}

	// Portal pass 1: full height, occlusions and visplanes only.
	occ := base
	occ.bottomH = floorHeight - eyeZ
	occ.topH = ceilHeight - eyeZ
	occ.textureName = frontSide.MiddleTexture
	occ.onlyOcclusions = true
	fr.processSidedef(&occ)

	// Portal pass 2: the middle piece, deferred for transparency.
	midFloor := floorHeight
	midCeil := ceilHeight
	if hasPortalBottom {
		midFloor = portalBottom
	}
	if hasPortalTop {
		midCeil = portalTop
	}
	mid := base
	mid.bottomH = midFloor - eyeZ
	mid.topH = midCeil - eyeZ
	mid.textureName = frontSide.MiddleTexture
	mid.isTransparent = true
	fr.processSidedef(&mid)

	// Portal pass 3: the lower piece below the opening.
	if hasPortalBottom {
		offsetY := 0.0
		if bottomUnpegged {
			// Lower texture origin at the highest ceiling.
			offsetY = ceilHeight - portalBottom
		}
		lower := base
		lower.bottomH = floorHeight - eyeZ
		lower.topH = portalBottom - eyeZ
		lower.offsetY = offsetY
		lower.textureName = frontSide.LowerTexture
		lower.isLowerWall = true
		fr.processSidedef(&lower)
	}

	// Portal pass 4: the upper piece above the opening.
	if hasPortalTop {
		offsetY := portalTop - ceilHeight
		if topUnpegged {
			offsetY = 0
		}
		upper := base
		upper.bottomH = portalTop - eyeZ
		upper.topH = ceilHeight - eyeZ
		upper.offsetY = offsetY
		upper.textureName = frontSide.UpperTexture
		upper.isUpperWall = true
		fr.processSidedef(&upper)
	}

	// A portal whose opening projects to zero screen rows blocks like a
	// solid wall. Collect the collapsed columns into solid ranges.
	fr.markClosedColumns(fr.r.proj.screenX(clipped.line.Start), fr.r.proj.screenX(clipped.line.End))
}

// markClosedColumns marks columns whose vertical window has collapsed
// (floor clip meets ceiling clip) as fully solid.
func (fr *frame) markClosedColumns(startX, endX int) {
	runStart := -1
	for x := startX; x <= endX; x++ {
		closed := fr.floorClip[x] <= fr.ceilClip[x]+1
		if closed && runStart == -1 {
			runStart = x
		}
		if !closed && runStart != -1 {
			fr.occlusion.MarkSolid(Range{Start: runStart, End: x - 1})
			runStart = -1
		}
	}
	if runStart != -1 {
		fr.occlusion.MarkSolid(Range{Start: runStart, End: endX})
	}
}
