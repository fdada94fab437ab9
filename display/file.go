package display

import (
	"context"
	"fmt"

	"github.com/gogpu/mandel"
	"github.com/gogpu/mandel/internal/imageio"
)

// FileSink writes the frame to Path. The format follows the extension.
type FileSink struct {
	Path      string
	NoOverlay bool
}

// Present encodes f to s.Path.
func (s *FileSink) Present(ctx context.Context, f Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	img, err := f.Composite(!s.NoOverlay)
	if err != nil {
		return err
	}
	if err := imageio.Save(s.Path, img); err != nil {
		return fmt.Errorf("display: save %s: %w", s.Path, err)
	}

	mandel.Logger().Info("frame written", "path", s.Path,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}
