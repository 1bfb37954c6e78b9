package pipeline

import (
	"context"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gridplot/pkg/io"
	"github.com/matzehuels/gridplot/pkg/layout"
	"github.com/matzehuels/gridplot/pkg/render/canvas"
	"github.com/matzehuels/gridplot/pkg/render/debug"
)

// Render composes and encodes the artifacts for geo. The output image and
// the debug overlay are rendered concurrently; both only read geo.
func Render(ctx context.Context, geo *layout.Geometry, images []image.Image, face font.Face, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if !geo.Validated() {
		if err := geo.Validate(); err != nil {
			return nil, err
		}
	}

	var composed, overlay []byte
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		img, err := canvas.Compose(geo, images, face)
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		composed, err = io.EncodeBytes(img, opts.Output, opts.Quality)
		return err
	})
	if opts.Debug {
		g.Go(func() error {
			img, err := debug.Render(geo)
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			overlay, err = io.EncodeBytes(img, io.DebugPath(opts.Output), opts.Quality)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	artifacts := map[string][]byte{ArtifactImage: composed}
	if opts.Debug {
		artifacts[ArtifactDebug] = overlay
	}
	return artifacts, nil
}
