// Package canvas composes the final output raster from a layout geometry.
package canvas

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/gridplot/pkg/errors"
	"github.com/matzehuels/gridplot/pkg/fonts"
	"github.com/matzehuels/gridplot/pkg/layout"
)

var (
	// Background fills the canvas, including gutters and empty slots.
	Background = color.White
	// Foreground is the label text colour.
	Foreground = color.Black
)

// Compose allocates a canvas of the geometry's size, draws every image
// centered in its cell and rasterizes label text with face. images is in
// input order. face may be nil when the geometry has no labels.
//
// Transparent source pixels are blended onto the white background, so the
// result is fully opaque.
func Compose(g *layout.Geometry, images []image.Image, face font.Face) (*image.NRGBA, error) {
	if !g.Validated() {
		if err := g.Validate(); err != nil {
			return nil, err
		}
	}
	if len(images) != len(g.Cells) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "geometry has %d cells but %d images were given", len(g.Cells), len(images))
	}
	if face == nil && (len(g.RowLabels) > 0 || len(g.ColumnLabels) > 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "geometry has labels but no font face was given")
	}

	dst := imaging.New(g.Width, g.Height, Background)

	for _, c := range g.Cells {
		img := images[c.Image]
		b := img.Bounds()
		if b.Dx() != c.Placement.W || b.Dy() != c.Placement.H {
			return nil, errors.New(errors.ErrCodeInvalidInput, "image %d is %dx%d, geometry expects %dx%d", c.Image, b.Dx(), b.Dy(), c.Placement.W, c.Placement.H)
		}
		draw.Draw(dst, c.Placement.Image(), img, b.Min, draw.Over)
	}

	if face != nil {
		drawLabels(dst, face, g.ColumnLabels)
		drawLabels(dst, face, g.RowLabels)
	}
	return dst, nil
}

func drawLabels(dst draw.Image, face font.Face, labels []layout.LabelBox) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(Foreground),
		Face: face,
	}
	ascent := face.Metrics().Ascent.Ceil()
	for _, l := range labels {
		for _, line := range l.Lines {
			if line.Text == "" {
				continue
			}
			// Lines were measured by fonts.Extent; start the pen past the
			// left bearing so ink stays inside the line rect.
			left, _ := fonts.Extent(face, line.Text)
			d.Dot = fixed.P(line.Rect.X+left, line.Rect.Y+ascent)
			d.DrawString(line.Text)
		}
	}
}
