// Package overlay draws the timing caption over a rendered frame.
//
// Text is rasterized with the embedded Go Regular font through
// golang.org/x/image/font.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Default caption placement and size, in pixels.
const (
	DefaultX    = 20
	DefaultY    = 20
	DefaultSize = 16.0
)

var (
	parseOnce  sync.Once
	parsedFont *sfnt.Font
	parseErr   error
)

// goRegular parses the embedded font once.
func goRegular() (*sfnt.Font, error) {
	parseOnce.Do(func() {
		parsedFont, parseErr = opentype.Parse(goregular.TTF)
	})
	return parsedFont, parseErr
}

// NewFace returns a Go Regular face of the given pixel size.
// The caller must Close the face.
func NewFace(size float64) (font.Face, error) {
	f, err := goRegular()
	if err != nil {
		return nil, fmt.Errorf("overlay: parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("overlay: new face: %w", err)
	}
	return face, nil
}

// Caption is a single line of text placed by its top-left corner.
type Caption struct {
	Text  string
	X, Y  int
	Size  float64
	Color color.Color
}

// DefaultCaption returns text in white at (20, 20).
func DefaultCaption(text string) Caption {
	return Caption{
		Text:  text,
		X:     DefaultX,
		Y:     DefaultY,
		Size:  DefaultSize,
		Color: color.White,
	}
}

// Draw renders c onto dst, clipped to dst's bounds. Empty text, or a caption
// lying entirely outside dst, draws nothing.
func Draw(dst draw.Image, c Caption) error {
	if c.Text == "" {
		return nil
	}

	face, err := NewFace(c.Size)
	if err != nil {
		return err
	}
	defer func() {
		_ = face.Close()
	}()

	if !captionBox(face, c).Overlaps(dst.Bounds()) {
		return nil
	}

	// Y is the top of the line; the drawer wants the baseline.
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c.Color),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(c.X), Y: fixed.I(c.Y) + face.Metrics().Ascent},
	}
	d.DrawString(c.Text)
	return nil
}

// captionBox returns the pixel rectangle c covers when drawn with face:
// the advance width by ascent plus descent.
func captionBox(face font.Face, c Caption) image.Rectangle {
	m := face.Metrics()
	advance := font.MeasureString(face, c.Text)
	return image.Rect(
		c.X,
		c.Y,
		c.X+advance.Ceil(),
		c.Y+(m.Ascent+m.Descent).Ceil(),
	)
}
