package io

import (
	"bytes"
	"context"
	"image"
	"os"
	"runtime"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gridplot/pkg/cache"
	"github.com/matzehuels/gridplot/pkg/errors"
	"github.com/matzehuels/gridplot/pkg/grid"
)

// Source is an input image file read into memory.
type Source struct {
	Path   string
	Data   []byte
	Digest string // SHA-256 of Data
}

// ReadSources reads the files at paths concurrently. The result is in the
// order of paths.
func ReadSources(ctx context.Context, paths []string) ([]Source, error) {
	sources := make([]Source, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrap(errors.ErrCodeImageLoad, err, "read %s", path)
			}
			sources[i] = Source{Path: path, Data: data, Digest: cache.Hash(data)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}

// Decode decodes src, applying the EXIF orientation tag if present.
func Decode(src Source) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(src.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeImageLoad, err, "decode %s", src.Path)
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errors.New(errors.ErrCodeImageLoad, "decode %s: image has no pixels", src.Path)
	}
	return img, nil
}

// DecodeSources decodes all sources concurrently. The result is in the
// order of sources.
func DecodeSources(ctx context.Context, sources []Source) ([]image.Image, error) {
	images := make([]image.Image, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := Decode(src)
			if err != nil {
				return err
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

// LoadImages reads and decodes the images at paths.
func LoadImages(ctx context.Context, paths []string) ([]image.Image, error) {
	sources, err := ReadSources(ctx, paths)
	if err != nil {
		return nil, err
	}
	return DecodeSources(ctx, sources)
}

// Sizes returns the pixel dimensions of each image.
func Sizes(images []image.Image) []grid.Size {
	sizes := make([]grid.Size, len(images))
	for i, img := range images {
		b := img.Bounds()
		sizes[i] = grid.Size{W: b.Dx(), H: b.Dy()}
	}
	return sizes
}
