package render

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"nocturne/internal/level"
	"nocturne/internal/sim"
)

// Renderer draws frames of a map. It holds only immutable state: the map,
// the texture and sprite stores and the projection. All per-frame state
// lives in the frame context, so a Renderer is safe to reuse across frames.
type Renderer struct {
	level    *level.Map
	textures *level.TextureStore
	sprites  *level.SpriteStore
	proj     projection
	parallel int // max goroutines for visplane rasterization
}

// NewRenderer creates a renderer for a fixed output size. The aspect ratio
// correction stretches the nominal 4:3 view onto the framebuffer.
func NewRenderer(m *level.Map, textures *level.TextureStore, sprites *level.SpriteStore, width, height int, aspect float64) *Renderer {
	return &Renderer{
		level:    m,
		textures: textures,
		sprites:  sprites,
		proj:     newProjection(width, height, aspect),
		parallel: runtime.NumCPU(),
	}
}

// RenderFrame draws one complete frame into the framebuffer: BSP wall
// traversal front to back, then the visplanes, then map objects interleaved
// with the deferred transparent wall pieces.
func (r *Renderer) RenderFrame(fb *Framebuffer, view Viewpoint, world *sim.World) {
	fb.Clear()

	fr := r.newFrame(fb, view)
	if world != nil {
		fr.objects = world.LiveObjects(fr.objects)
	}

	fr.renderChild(r.level.Root)

	fr.drawVisplanes()

	// Traversal appended walls front to back; sprites need them back to
	// front.
	for i, j := 0, len(fr.walls)-1; i < j; i, j = i+1, j-1 {
		fr.walls[i], fr.walls[j] = fr.walls[j], fr.walls[i]
	}

	fr.drawMapObjects()
	fr.drawRemainingWalls()
}

// drawVisplanes rasterizes the frame's merged visplanes. Planes own disjoint
// screen regions, so they rasterize in parallel.
func (fr *frame) drawVisplanes() {
	var g errgroup.Group
	g.SetLimit(fr.r.parallel)
	for _, vp := range fr.planes {
		vp := vp
		g.Go(func() error {
			fr.drawVisplane(vp)
			return nil
		})
	}
	// Rasterization cannot fail; Wait only synchronizes.
	_ = g.Wait()
}
