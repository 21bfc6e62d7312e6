package render

import (
	"math"
	"sort"

	"nocturne/internal/geom"
	"nocturne/internal/sim"
)

// spriteRender is one projected map object, ready to draw: a billboard
// wallRender plus its sorting keys.
type spriteRender struct {
	wall  *wallRender
	depth float64 // forward view distance, the back-to-front sort key
	id    int     // stable spawn index, breaks depth ties
}

// spriteRotation picks the 0..7 rotation index for an object seen from the
// given view angle. Rotation 0 faces the object's own facing direction;
// indices advance counterclockwise in 45 degree steps.
func spriteRotation(viewAngle, objectAngle float64) int {
	angle := viewAngle - objectAngle - math.Pi
	// Bias by half a step so angles round to the nearest step boundary.
	angle += math.Pi / 16
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return int(angle * 8 / (2 * math.Pi))
}

// projectMapObject turns one live object into a billboard sprite: a line
// through the object's position, perpendicular to the view direction, as
// wide as the sprite picture. Returns nil when the object is out of view.
func (fr *frame) projectMapObject(obj *sim.MapObject) *spriteRender {
	state := obj.State()
	if state.Sprite == "" {
		return nil
	}

	rotation := spriteRotation(fr.view.Angle, obj.Angle)
	picture := fr.r.sprites.Frame(state.Sprite, state.Frame, rotation)
	if picture == nil {
		return nil
	}

	viewPos := obj.Position.Sub(fr.view.Position).Rotate(-fr.view.Angle)

	// The billboard is centered on the object and faces the viewer, so in
	// view space it is a constant-depth vertical line.
	halfWidth := float64(picture.Width) / 2
	line := geom.L(
		geom.V(viewPos.X, viewPos.Y+halfWidth),
		geom.V(viewPos.X, viewPos.Y-halfWidth),
	)

	clipped, ok := clipToViewport(line)
	if !ok {
		return nil
	}

	light := int16(255)
	if !state.FullBright {
		if obj.Sector >= 0 {
			light = fr.r.level.Sectors[obj.Sector].LightLevel
		}
	}

	eyeZ := fr.view.EyeZ()
	floor := 0.0
	if obj.Sector >= 0 {
		floor = fr.r.level.Sectors[obj.Sector].CurrentFloor
	}

	// The picture's top offset places the sprite relative to the floor.
	offset := float64(picture.TopOffset - picture.Height)
	bottomH := floor - eyeZ + offset
	topH := floor + float64(picture.Height) - 1 - eyeZ + offset

	startX := fr.r.proj.screenX(clipped.line.Start)
	endX := fr.r.proj.screenX(clipped.line.End)
	if startX >= endX {
		return nil
	}

	wall := &wallRender{
		state:   wallObject,
		texture: picture,
		light:   light,
		clipped: clipped,
		startX:  startX,
		endX:    endX,
		bottomH: bottomH,
		topH:    topH,
	}

	fr.clipSpriteColumns(wall, viewPos)

	return &spriteRender{wall: wall, depth: clipped.line.Start.X, id: obj.ID}
}

// clipSpriteColumns fills the sprite's column list, clipped against every
// wall piece recorded in front of the object this frame.
func (fr *frame) clipSpriteColumns(wall *wallRender, viewPos geom.Vertex) {
	width := fr.fb.Width
	height := fr.fb.Height

	// The unobscured vertical window per column. Walls in front of the
	// object shrink it.
	topClip := make([]int, width)
	bottomClip := make([]int, width)
	for x := range topClip {
		topClip[x] = -1
		bottomClip[x] = height
	}

	for _, seg := range fr.walls {
		segLine := seg.clipped.line
		minX := math.Min(segLine.Start.X, segLine.End.X)
		maxX := math.Max(segLine.Start.X, segLine.End.X)

		// The whole seg is behind the object.
		if minX > viewPos.X {
			continue
		}
		// The seg straddles the object's depth; it is behind when the
		// object is on its front side.
		if maxX > viewPos.X && !viewPos.IsLeftOf(segLine) {
			continue
		}

		for _, col := range seg.columns {
			x := col.x
			switch seg.state {
			case wallSolid:
				// Solid pieces obscure everything beyond their drawn span.
				if seg.extendsToBottom {
					bottomClip[x] = geom.Min(bottomClip[x], col.clippedTop)
				}
				if seg.extendsToTop {
					topClip[x] = geom.Max(topClip[x], col.clippedBottom)
				}
			case wallTwoSided, wallDrawn:
				// Portals obscure everything outside their opening.
				topClip[x] = geom.Max(topClip[x], col.topY)
				bottomClip[x] = geom.Min(bottomClip[x], col.bottomY)
			}
		}
	}

	p := fr.r.proj
	bottomStartY := p.screenY(wall.clipped.line.Start, wall.bottomH)
	bottomEndY := p.screenY(wall.clipped.line.End, wall.bottomH)
	topStartY := p.screenY(wall.clipped.line.Start, wall.topH)
	topEndY := p.screenY(wall.clipped.line.End, wall.topH)

	bottomDelta := float64(bottomStartY-bottomEndY) / float64(wall.startX-wall.endX)
	topDelta := float64(topStartY-topEndY) / float64(wall.startX-wall.endX)

	// Stop one column short so the last texel column never wraps around.
	for x := wall.startX; x < wall.endX; x++ {
		bottomY := bottomStartY + int(float64(x-wall.startX)*bottomDelta)
		topY := topStartY + int(float64(x-wall.startX)*topDelta)

		clippedTop := geom.Max(topY, topClip[x])
		clippedBottom := geom.Min(bottomY, bottomClip[x])
		clippedTop = geom.Max(0, clippedTop)
		clippedBottom = geom.Min(height-1, clippedBottom)

		if clippedBottom < clippedTop {
			continue
		}
		wall.addColumn(x, clippedTop, clippedBottom, topY, bottomY)
	}
}

// drawMapObjects projects all live objects, sorts them back to front and
// draws them interleaved with the deferred two-sided wall pieces so
// transparency stacks correctly. fr.walls must already be in back-to-front
// order.
func (fr *frame) drawMapObjects() {
	sprites := make([]*spriteRender, 0, len(fr.objects))
	for _, obj := range fr.objects {
		if sprite := fr.projectMapObject(obj); sprite != nil {
			sprites = append(sprites, sprite)
		}
	}

	sort.Slice(sprites, func(i, j int) bool {
		if sprites[i].depth != sprites[j].depth {
			return sprites[i].depth > sprites[j].depth
		}
		return sprites[i].id < sprites[j].id
	})

	for _, sprite := range sprites {
		// Deferred wall pieces farther away than the object go first.
		for _, seg := range fr.walls {
			if seg.state == wallTwoSided && seg.depth() > sprite.depth {
				seg.render(fr)
			}
		}
		sprite.wall.render(fr)
	}
}

// drawRemainingWalls draws the deferred two-sided pieces that had no map
// object in front of them.
func (fr *frame) drawRemainingWalls() {
	for _, seg := range fr.walls {
		seg.render(fr)
	}
}
