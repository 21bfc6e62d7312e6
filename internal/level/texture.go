package level

import (
	"strings"
)

// FlatSize is the fixed width and height of floor/ceiling textures.
const FlatSize = 64

// NoTexture is the sidedef texture name meaning "nothing here".
const NoTexture = "-"

// Picture is decoded pixel data for a wall texture, flat or sprite frame.
// Pixels are RGBA, row major; alpha 0 marks transparent texels.
type Picture struct {
	Name      string
	Width     int
	Height    int
	TopOffset int // sprite origin offset above its feet
	Pixels    []byte
}

// At returns the RGBA texel at (x, y). Coordinates wrap, so callers can
// sample with unbounded texture offsets.
func (p *Picture) At(x, y int) (r, g, b, a byte) {
	x %= p.Width
	if x < 0 {
		x += p.Width
	}
	y %= p.Height
	if y < 0 {
		y += p.Height
	}
	i := 4 * (y*p.Width + x)
	return p.Pixels[i], p.Pixels[i+1], p.Pixels[i+2], p.Pixels[i+3]
}

// SetAt writes the RGBA texel at (x, y) without wrapping.
func (p *Picture) SetAt(x, y int, r, g, b, a byte) {
	i := 4 * (y*p.Width + x)
	p.Pixels[i] = r
	p.Pixels[i+1] = g
	p.Pixels[i+2] = b
	p.Pixels[i+3] = a
}

// NewPicture allocates a fully transparent picture.
func NewPicture(name string, width, height int) *Picture {
	return &Picture{
		Name:   name,
		Width:  width,
		Height: height,
		Pixels: make([]byte, 4*width*height),
	}
}

// IsSkyTexture reports whether a ceiling texture name selects the sky plane.
func IsSkyTexture(name string) bool {
	return strings.Contains(name, "SKY")
}

// TextureStore resolves texture and flat names to pixel data. Lookups of
// unknown names return a designated placeholder rather than failing, so
// malformed content degrades to a visible checkerboard instead of a crash.
type TextureStore struct {
	textures    map[string]*Picture
	flats       map[string]*Picture
	sky         *Picture
	placeholder *Picture
}

// NewTextureStore creates an empty store with a checkerboard placeholder.
func NewTextureStore() *TextureStore {
	placeholder := NewPicture("PLACEHOLDER", FlatSize, FlatSize)
	for y := 0; y < FlatSize; y++ {
		for x := 0; x < FlatSize; x++ {
			if (x/8+y/8)%2 == 0 {
				placeholder.SetAt(x, y, 200, 60, 200, 255)
			} else {
				placeholder.SetAt(x, y, 20, 20, 20, 255)
			}
		}
	}
	return &TextureStore{
		textures:    make(map[string]*Picture),
		flats:       make(map[string]*Picture),
		placeholder: placeholder,
	}
}

// AddTexture registers a wall texture.
func (s *TextureStore) AddTexture(p *Picture) {
	s.textures[p.Name] = p
}

// AddFlat registers a floor/ceiling texture.
func (s *TextureStore) AddFlat(p *Picture) {
	s.flats[p.Name] = p
}

// SetSky sets the sky backdrop texture.
func (s *TextureStore) SetSky(p *Picture) {
	s.sky = p
}

// Texture returns the wall texture for a name, or the placeholder.
func (s *TextureStore) Texture(name string) *Picture {
	if t, ok := s.textures[name]; ok {
		return t
	}
	return s.placeholder
}

// Flat returns the floor/ceiling texture for a name, or the placeholder.
func (s *TextureStore) Flat(name string) *Picture {
	if f, ok := s.flats[name]; ok {
		return f
	}
	return s.placeholder
}

// Sky returns the sky texture, or the placeholder if none was set.
func (s *TextureStore) Sky() *Picture {
	if s.sky != nil {
		return s.sky
	}
	return s.placeholder
}

// Placeholder returns the designated missing-texture picture.
func (s *TextureStore) Placeholder() *Picture {
	return s.placeholder
}

// SpriteStore resolves (sprite name, frame, rotation) to a picture. Rotation
// 0..7 selects the view angle in 45 degree steps; a frame registered with a
// single picture serves all eight rotations.
type SpriteStore struct {
	frames      map[string][][]*Picture // name -> frame -> rotations
	placeholder *Picture
}

// NewSpriteStore creates an empty sprite store.
func NewSpriteStore() *SpriteStore {
	placeholder := NewPicture("SPRITE?", 32, 48)
	for y := 0; y < 48; y++ {
		for x := 0; x < 32; x++ {
			if (x/4+y/4)%2 == 0 {
				placeholder.SetAt(x, y, 200, 60, 200, 255)
			}
		}
	}
	placeholder.TopOffset = 48
	return &SpriteStore{
		frames:      make(map[string][][]*Picture),
		placeholder: placeholder,
	}
}

// AddFrame appends a frame with a single rotation-independent picture.
func (s *SpriteStore) AddFrame(name string, p *Picture) {
	s.frames[name] = append(s.frames[name], []*Picture{p})
}

// AddRotatedFrame appends a frame with one picture per 45 degree rotation.
func (s *SpriteStore) AddRotatedFrame(name string, rotations []*Picture) {
	s.frames[name] = append(s.frames[name], rotations)
}

// Frame returns the picture for a sprite frame and rotation, or the
// placeholder for unknown sprites or out-of-range frames.
func (s *SpriteStore) Frame(name string, frame, rotation int) *Picture {
	pics, ok := s.frames[name]
	if !ok || frame < 0 || frame >= len(pics) {
		return s.placeholder
	}
	rotations := pics[frame]
	if len(rotations) == 0 {
		return s.placeholder
	}
	return rotations[rotation%len(rotations)]
}
