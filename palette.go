package mandel

// RGB is an opaque color with red, green and blue components in [0, 1].
type RGB struct {
	R, G, B float64
}

// Lerp performs linear interpolation between two colors.
func (c RGB) Lerp(other RGB, t float64) RGB {
	return RGB{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
	}
}

// ARGB packs c as an opaque 0xAARRGGBB value. Each channel is scaled to
// [0, 255] and truncated.
func (c RGB) ARGB() uint32 {
	return OpaqueBlack | channel(c.R)<<16 | channel(c.G)<<8 | channel(c.B)
}

func channel(v float64) uint32 {
	return uint32(v * 255.0)
}

// PaletteSize is the number of anchor colors in a Palette.
const PaletteSize = 19

// Stops is the number of ramp segments between palette anchors.
const Stops = PaletteSize - 1

// Palette is an ordered table of anchor colors. Entry i is the color at
// normalized ramp position i/Stops.
type Palette [PaletteSize]RGB

// DefaultPalette runs navy → blue → cyan → yellow → red → maroon, then back
// down the same ramp and finishes on black.
var DefaultPalette = Palette{
	{0.0, 0.0, 0.5},
	{0.0, 0.0, 1.0},
	{0.0, 0.5, 1.0},
	{0.0, 1.0, 1.0},
	{0.5, 1.0, 0.5},
	{1.0, 1.0, 0.0},
	{1.0, 0.5, 0.0},
	{1.0, 0.0, 0.0},
	{0.5, 0.0, 0.0},
	{0.5, 0.0, 0.0},
	{1.0, 0.0, 0.0},
	{1.0, 0.5, 0.0},
	{1.0, 1.0, 0.0},
	{0.5, 1.0, 0.5},
	{0.0, 1.0, 1.0},
	{0.0, 0.5, 1.0},
	{0.0, 0.0, 1.0},
	{0.0, 0.0, 0.5},
	{0.0, 0.0, 0.0},
}
