package world

import (
	"nocturne/internal/level"
)

// noise is a cheap deterministic hash in [0, 255] used to roughen the
// procedural textures. Not random: the same texel always gets the same
// value, so frames are stable.
func noise(x, y, salt int) int {
	h := uint32(x*374761393 + y*668265263 + salt*2246822519)
	h = (h ^ (h >> 13)) * 1274126177
	return int((h ^ (h >> 16)) & 0xff)
}

// BuildTextures generates the wall textures, flats and sky the demo map
// references.
func BuildTextures() *level.TextureStore {
	store := level.NewTextureStore()

	store.AddTexture(brickTexture("STARTAN", 180, 150, 110))
	store.AddTexture(plankTexture("BROWN", 120, 85, 50))
	store.AddTexture(blockTexture("STONE", 130, 130, 135))
	store.AddTexture(blockTexture("STEP", 90, 90, 95))

	store.AddFlat(flatTexture("FLAT5", 110, 95, 60))
	store.AddFlat(flatTexture("FLAT14", 60, 70, 120))
	store.AddFlat(flatTexture("FLAT10", 105, 100, 95))
	store.AddFlat(flatTexture("CEIL3", 85, 80, 75))

	store.SetSky(skyTexture())
	return store
}

// brickTexture is rows of offset bricks with dark mortar lines.
func brickTexture(name string, r, g, b int) *level.Picture {
	const size = 128
	p := level.NewPicture(name, size, size)
	for y := 0; y < size; y++ {
		row := y / 16
		for x := 0; x < size; x++ {
			bx := x
			if row%2 == 1 {
				bx += 16
			}
			n := noise(x, y, 1) % 24
			cr, cg, cb := r-n, g-n, b-n
			if y%16 == 0 || bx%32 == 0 {
				cr, cg, cb = 40, 35, 30
			}
			p.SetAt(x, y, clampByte(cr), clampByte(cg), clampByte(cb), 255)
		}
	}
	return p
}

// plankTexture is horizontal wood planks.
func plankTexture(name string, r, g, b int) *level.Picture {
	const size = 128
	p := level.NewPicture(name, size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			n := noise(x/3, y, 2) % 28
			cr, cg, cb := r-n, g-n, b-n
			if y%32 == 0 {
				cr, cg, cb = 30, 22, 14
			}
			p.SetAt(x, y, clampByte(cr), clampByte(cg), clampByte(cb), 255)
		}
	}
	return p
}

// blockTexture is large square stone blocks.
func blockTexture(name string, r, g, b int) *level.Picture {
	const size = 128
	p := level.NewPicture(name, size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			n := noise(x, y, 3) % 20
			cr, cg, cb := r-n, g-n, b-n
			if x%64 == 0 || y%64 == 0 {
				cr, cg, cb = 50, 50, 52
			}
			p.SetAt(x, y, clampByte(cr), clampByte(cg), clampByte(cb), 255)
		}
	}
	return p
}

// flatTexture is a speckled floor/ceiling tile.
func flatTexture(name string, r, g, b int) *level.Picture {
	p := level.NewPicture(name, level.FlatSize, level.FlatSize)
	for y := 0; y < level.FlatSize; y++ {
		for x := 0; x < level.FlatSize; x++ {
			n := noise(x, y, 4) % 30
			p.SetAt(x, y, clampByte(r-n), clampByte(g-n), clampByte(b-n), 255)
		}
	}
	return p
}

// skyTexture is a dusk gradient with a band of stars near the top.
func skyTexture() *level.Picture {
	const width, height = 256, 128
	p := level.NewPicture("SKY1", width, height)
	for y := 0; y < height; y++ {
		// Dark blue zenith fading to orange at the horizon.
		t := float64(y) / float64(height-1)
		r := int(20 + t*160)
		g := int(24 + t*90)
		b := int(60 + t*20)
		for x := 0; x < width; x++ {
			cr, cg, cb := r, g, b
			if y < height/3 && noise(x, y, 5) > 252 {
				cr, cg, cb = 230, 230, 210
			}
			p.SetAt(x, y, clampByte(cr), clampByte(cg), clampByte(cb), 255)
		}
	}
	return p
}

func clampByte(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
