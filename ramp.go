package mandel

// OpaqueBlack is the packed ARGB value produced for the top of the ramp and
// for a degenerate normalization range.
const OpaqueBlack uint32 = 0xff000000

// Range is the normalization range of a scalar buffer.
type Range struct {
	Min, Max float64
}

// Reduce scans values once and returns their minimum and maximum. The range
// starts from values[0] and is widened by every remaining element; later NaN
// elements never widen it. Reduce returns the zero Range for empty input.
func Reduce(values []float64) Range {
	if len(values) == 0 {
		return Range{}
	}
	r := Range{Min: values[0], Max: values[0]}
	for _, v := range values[1:] {
		if v < r.Min {
			r.Min = v
		}
		if v > r.Max {
			r.Max = v
		}
	}
	return r
}

// Degenerate reports whether the range is a single value, in which case
// every pixel maps to OpaqueBlack.
func (r Range) Degenerate() bool {
	return r.Min == r.Max
}

// MapToARGB maps scalar x to a packed 0xAARRGGBB color.
//
// x is normalized to t = (x-Min)/(Max-Min) * Stops. Bin floor(t) selects the
// palette segment and the fractional part interpolates between its two
// anchors; channels are truncated, not rounded. The result is OpaqueBlack
// when t is not below Stops (x == Max, or x is NaN) and for every x when the
// range is degenerate, where the division has no finite value.
//
// MapToARGB is pure and safe for concurrent use.
func MapToARGB(x float64, r Range, pal *Palette) uint32 {
	if r.Degenerate() {
		return OpaqueBlack
	}
	t := (x - r.Min) / (r.Max - r.Min) * Stops
	if !(t < Stops) {
		return OpaqueBlack
	}
	if t < 0 {
		t = 0
	}

	bin := int(t)
	return pal[bin].Lerp(pal[bin+1], t-float64(bin)).ARGB()
}

// UnpackARGB splits a packed 0xAARRGGBB color into its channels.
func UnpackARGB(c uint32) (r, g, b, a uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c), uint8(c >> 24)
}
