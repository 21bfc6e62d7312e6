package world

import (
	"nocturne/internal/level"
)

// BuildSprites generates the sprite frames for the demo object types:
// barrels, torches, the pillar and the puff animation. Alpha 0 marks
// transparent texels.
func BuildSprites() *level.SpriteStore {
	store := level.NewSpriteStore()

	store.AddFrame("BAR", barrelFrame(70, 120, 70))
	store.AddFrame("BAR", barrelFrame(60, 110, 80))

	store.AddFrame("TRE", torchFrame(250, 180, 60))
	store.AddFrame("TRE", torchFrame(255, 140, 40))
	store.AddFrame("TRE", torchFrame(240, 200, 90))

	// The pillar carries eight rotations so walking around it reads as a
	// solid object: a face stripe moves across the column with the angle.
	rotations := make([]*level.Picture, 8)
	for r := range rotations {
		rotations[r] = pillarFrame(r)
	}
	store.AddRotatedFrame("COL", rotations)

	for i := 0; i < 4; i++ {
		store.AddFrame("PUF", puffFrame(i))
	}

	return store
}

func barrelFrame(r, g, b byte) *level.Picture {
	const width, height = 26, 34
	p := level.NewPicture("BAR", width, height)
	p.TopOffset = height
	for y := 2; y < height; y++ {
		// Slight bulge in the middle of the barrel.
		inset := 0
		if y < 6 || y >= height-4 {
			inset = 2
		}
		for x := 1 + inset; x < width-1-inset; x++ {
			cr, cg, cb := r, g, b
			if y%8 == 0 {
				cr, cg, cb = 90, 90, 95 // metal hoop
			} else if x < 5+inset {
				cr, cg, cb = r/2, g/2, b/2 // shaded edge
			}
			n := byte(noise(x, y, 6) % 16)
			p.SetAt(x, y, cr-minByte(cr, n), cg-minByte(cg, n), cb-minByte(cb, n), 255)
		}
	}
	return p
}

func torchFrame(fr, fg, fb byte) *level.Picture {
	const width, height = 20, 52
	p := level.NewPicture("TRE", width, height)
	p.TopOffset = height
	// Pole
	for y := 14; y < height; y++ {
		for x := width/2 - 2; x <= width/2+2; x++ {
			p.SetAt(x, y, 70, 55, 40, 255)
		}
	}
	// Flame, widest just above the pole
	for y := 0; y < 16; y++ {
		half := 2 + (y * 6 / 16)
		for x := width/2 - half; x <= width/2+half; x++ {
			n := byte(noise(x, y, 7) % 40)
			p.SetAt(x, y, fr-minByte(fr, n/2), fg-minByte(fg, n), fb, 255)
		}
	}
	return p
}

func pillarFrame(rotation int) *level.Picture {
	const width, height = 28, 48
	p := level.NewPicture("COL", width, height)
	p.TopOffset = height
	stripe := (rotation * width) / 8
	for y := 0; y < height; y++ {
		for x := 2; x < width-2; x++ {
			n := byte(noise(x, y, 8) % 18)
			var cr, cg, cb byte = 150, 148, 152
			if y < 4 || y >= height-4 {
				cr, cg, cb = 120, 118, 122 // cap and base
			}
			if x >= stripe && x < stripe+3 {
				cr, cg, cb = 90, 88, 94 // rotation marker groove
			}
			p.SetAt(x, y, cr-n, cg-n, cb-n, 255)
		}
	}
	return p
}

func puffFrame(i int) *level.Picture {
	const size = 24
	p := level.NewPicture("PUF", size, size)
	p.TopOffset = size + 12 // floats above the ground
	radius := 10 - 2*i
	shade := byte(180 - 30*i)
	center := size / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := x-center, y-center
			if dx*dx+dy*dy <= radius*radius {
				n := byte(noise(x, y, 9+i) % 30)
				p.SetAt(x, y, shade-n, shade-n, shade-n, 255)
			}
		}
	}
	return p
}

func minByte(a, b byte) byte {
	if a < b {
		return a
	}
	return b
}
