package render

// Light diminishing constants. The scale is tuned to the look of classic
// colormap falloff rather than derived from it; the factor clamps at the
// minimum of zero, so fully diminished surfaces go black.
const (
	diminishScale  = 1.0 / (16.0 * 256.0)
	MinLightFactor = 0.0
)

// Shade resolves a sector light level and a view distance to a brightness
// factor in [0, 1]. It is a pure function: identical inputs always give the
// identical factor, the factor never increases with distance, and for a
// fixed distance a brighter sector never shades darker than a dimmer one.
func Shade(lightLevel int16, distance float64) float64 {
	if lightLevel < 0 {
		lightLevel = 0
	}
	if lightLevel > 255 {
		lightLevel = 255
	}
	if distance < 0 {
		distance = 0
	}

	factor := float64(lightLevel)/255.0 - distance*diminishScale
	if factor < MinLightFactor {
		factor = MinLightFactor
	}
	return factor
}

// shadePixel applies a brightness factor to an RGB texel.
func shadePixel(r, g, b byte, factor float64) (byte, byte, byte) {
	return byte(float64(r) * factor), byte(float64(g) * factor), byte(float64(b) * factor)
}
