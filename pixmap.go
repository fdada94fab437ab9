package mandel

import (
	"image"
	"image/color"
)

// Image is a read-only view of a packed ARGB color buffer.
//
// Pixels are 0xAARRGGBB, row-major, top row first. Image implements
// image.Image so a render result can be handed to any encoder or drawer.
type Image struct {
	width  int
	height int
	pix    []uint32
}

// NewImage wraps pix as a width×height image without copying.
// Returns nil if len(pix) does not equal width*height.
func NewImage(width, height int, pix []uint32) *Image {
	if width <= 0 || height <= 0 || len(pix) != width*height {
		return nil
	}
	return &Image{width: width, height: height, pix: pix}
}

// Width returns the width of the image.
func (m *Image) Width() int {
	return m.width
}

// Height returns the height of the image.
func (m *Image) Height() int {
	return m.height
}

// Pix returns the underlying ARGB buffer.
func (m *Image) Pix() []uint32 {
	return m.pix
}

// ARGBAt returns the packed color at (x, y), or 0 outside the image.
func (m *Image) ARGBAt(x, y int) uint32 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.pix[y*m.width+x]
}

// At implements the image.Image interface.
func (m *Image) At(x, y int) color.Color {
	r, g, b, a := UnpackARGB(m.ARGBAt(x, y))
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Bounds implements the image.Image interface.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// ColorModel implements the image.Image interface.
func (m *Image) ColorModel() color.Model {
	return color.NRGBAModel
}

// ToNRGBA converts the image to a freshly allocated image.NRGBA.
func (m *Image) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(m.Bounds())
	for i, c := range m.pix {
		o := i * 4
		img.Pix[o+0], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = UnpackARGB(c)
	}
	return img
}
