// Package render draws a first-person view of the map: BSP-ordered wall
// rasterization with column occlusion, visplane floors/ceilings, a sky
// backdrop, distance-diminished sector lighting and billboarded map objects.
package render

import (
	"nocturne/internal/geom"
	"nocturne/internal/sim"
)

// Framebuffer is the RGBA pixel target for one frame, row major, 4 bytes
// per pixel so it can be handed to the presentation layer unchanged.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []byte
}

// NewFramebuffer allocates a black, opaque framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]byte, 4*width*height),
	}
	fb.Clear()
	return fb
}

// Clear resets every pixel to opaque black.
func (fb *Framebuffer) Clear() {
	for i := range fb.Pixels {
		if i%4 == 3 {
			fb.Pixels[i] = 0xff
		} else {
			fb.Pixels[i] = 0
		}
	}
}

// Set writes one pixel. Out-of-bounds writes are dropped so degenerate
// projections stay harmless.
func (fb *Framebuffer) Set(x, y int, r, g, b byte) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	i := 4 * (y*fb.Width + x)
	fb.Pixels[i] = r
	fb.Pixels[i+1] = g
	fb.Pixels[i+2] = b
	fb.Pixels[i+3] = 0xff
}

// Viewpoint is the camera state for one frame: position, facing angle and
// the eye height above the absolute floor.
type Viewpoint struct {
	Position    geom.Vertex
	Angle       float64
	FloorHeight float64 // floor height of the sector under the viewpoint
}

// EyeZ returns the absolute z of the eye.
func (v *Viewpoint) EyeZ() float64 {
	return v.FloorHeight + EyeHeight
}

// EyeHeight is the eye level above the sector floor.
const EyeHeight = 41.0

// frame is the per-frame render context. All mutable state of the render
// phase lives here and is discarded wholesale when the frame ends; the
// Renderer itself holds only immutable configuration and the map.
type frame struct {
	r    *Renderer
	fb   *Framebuffer
	view Viewpoint

	occlusion *OcclusionTracker
	floorClip []int // first hidden row at/below, per column
	ceilClip  []int // last hidden row at/above, per column

	planes  []*Visplane
	walls   []*wallRender
	objects []*sim.MapObject
}

func (r *Renderer) newFrame(fb *Framebuffer, view Viewpoint) *frame {
	fr := &frame{
		r:         r,
		fb:        fb,
		view:      view,
		occlusion: NewOcclusionTracker(fb.Width),
		floorClip: make([]int, fb.Width),
		ceilClip:  make([]int, fb.Width),
	}
	for x := range fr.floorClip {
		fr.floorClip[x] = fb.Height
		fr.ceilClip[x] = -1
	}
	return fr
}

// occludeColumn marks a column fully solid: nothing behind it is visible and
// the vertical window collapses to the horizon.
func (fr *frame) occludeColumn(x int) {
	fr.occlusion.MarkSolid(Range{Start: x, End: x})
	fr.floorClip[x] = fr.fb.Height / 2
	fr.ceilClip[x] = fr.fb.Height / 2
}
