// Package display presents rendered frames: to an image file, to a terminal,
// or to a browser over a websocket.
//
// Every sink implements Sink. The command picks one with the -display flag.
package display

import (
	"context"
	"errors"
	"image"

	"github.com/gogpu/mandel"
	"github.com/gogpu/mandel/internal/overlay"
)

// ErrNoImage is returned when a frame carries no image.
var ErrNoImage = errors.New("display: frame has no image")

// Sink presents a single frame. Present blocks until the frame has been
// written or the viewer is closed.
type Sink interface {
	Present(ctx context.Context, f Frame) error
}

// Frame is a rendered image with the caption drawn over it.
type Frame struct {
	Image   *mandel.Image
	Caption string
}

// NewFrame builds a frame from a render result, captioned with the
// elapsed time.
func NewFrame(res *mandel.Result) Frame {
	return Frame{
		Image:   res.Image(),
		Caption: mandel.FormatElapsed(res.Elapsed),
	}
}

// Composite returns a copy of the frame with the caption drawn at its
// default position. With withCaption false the copy is left bare.
func (f Frame) Composite(withCaption bool) (*image.NRGBA, error) {
	if f.Image == nil {
		return nil, ErrNoImage
	}
	img := f.Image.ToNRGBA()
	if withCaption {
		if err := overlay.Draw(img, overlay.DefaultCaption(f.Caption)); err != nil {
			return nil, err
		}
	}
	return img, nil
}
