package mandel

import "math"

// ln2 is the natural logarithm of 2, the base change for the smoothing term.
var ln2 = math.Log(2.0)

// Coordinate maps the flat grid index idx of an n×n grid to its point in the
// complex plane. Columns span the real window [-2, 1) and rows the imaginary
// window [-1.5, 1.5), both sampled at the left/top edge of each pixel.
func Coordinate(idx, n int) complex128 {
	column := idx % n
	row := idx / n
	x0 := 3.0*(float64(column)/float64(n)) - 2.0
	y0 := 3.0*(float64(row)/float64(n)) - 1.5
	return complex(x0, y0)
}

// SmoothEscape returns the smoothed escape-time value of grid index idx.
//
// The recurrence z = z² + z0 runs from z = 0 while k <= Depth and
// |z|² < Escape2. The result is
//
//	ln(k + 1 - ln(ln(max(|z|², Escape2)) / 2) / ln 2)
//
// where z is the final iterate. A point that hits the cap may have escaped on
// its last, untested step; its magnitude is still taken from that z. The max
// keeps the inner logarithm at or above ln(Escape2).
//
// SmoothEscape is pure and safe for concurrent use.
func SmoothEscape(idx int, p Params) float64 {
	z0 := Coordinate(idx, p.Size)
	re0, im0 := real(z0), imag(z0)

	var re, im float64
	k := 0
	for ; k <= p.Depth && re*re+im*im < p.Escape2; k++ {
		re, im = re*re-im*im+re0, 2*re*im+im0
	}

	mag2 := re*re + im*im
	return math.Log(float64(k) + 1.0 - math.Log(math.Log(math.Max(mag2, p.Escape2))/2.0)/ln2)
}
