// Package debug renders the diagnostic overlay of a layout geometry.
//
// Every region gets a filled rectangle with a 1px dark border drawn inside
// its bounds, so adjacent regions stay distinguishable:
//
//	cells          light blue
//	row labels     light red
//	column labels  light green
//	padding        light gray
//
// Gutters and empty grid slots remain white.
package debug

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"github.com/matzehuels/gridplot/pkg/geom"
	"github.com/matzehuels/gridplot/pkg/layout"
)

// Palette holds the overlay colours.
type Palette struct {
	Cell        color.NRGBA
	RowLabel    color.NRGBA
	ColumnLabel color.NRGBA
	Padding     color.NRGBA
	Border      color.NRGBA
}

// DefaultPalette returns pale fills of equal lightness and a dark gray border.
func DefaultPalette() Palette {
	return Palette{
		Cell:        nrgba(colorful.Hsl(205, 0.70, 0.85)),
		RowLabel:    nrgba(colorful.Hsl(0, 0.70, 0.85)),
		ColumnLabel: nrgba(colorful.Hsl(120, 0.45, 0.82)),
		Padding:     nrgba(colorful.Hsl(0, 0, 0.83)),
		Border:      nrgba(colorful.Hsl(0, 0, 0.25)),
	}
}

// Fill returns the fill colour for a region kind.
func (p Palette) Fill(k layout.Kind) color.NRGBA {
	switch k {
	case layout.KindCell:
		return p.Cell
	case layout.KindRowLabel:
		return p.RowLabel
	case layout.KindColumnLabel:
		return p.ColumnLabel
	default:
		return p.Padding
	}
}

func nrgba(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// Option configures [Render].
type Option func(*renderer)

type renderer struct {
	palette Palette
}

// WithPalette overrides the default colours.
func WithPalette(p Palette) Option { return func(r *renderer) { r.palette = p } }

// Render paints the overlay for g. The raster has the same size as the
// composed output. Unvalidated geometry is validated first, so overlapping
// regions fail with INTERNAL_ERROR instead of being painted over.
func Render(g *layout.Geometry, opts ...Option) (*image.NRGBA, error) {
	if !g.Validated() {
		if err := g.Validate(); err != nil {
			return nil, err
		}
	}
	r := renderer{palette: DefaultPalette()}
	for _, opt := range opts {
		opt(&r)
	}

	dst := imaging.New(g.Width, g.Height, color.White)
	for _, region := range g.Regions() {
		fillRect(dst, region.Rect, r.palette.Border)
		fillRect(dst, region.Rect.Inset(geom.Uniform(1)), r.palette.Fill(region.Kind))
	}
	return dst, nil
}

func fillRect(dst draw.Image, r geom.Rect, c color.Color) {
	if r.Empty() {
		return
	}
	draw.Draw(dst, r.Image(), image.NewUniform(c), image.Point{}, draw.Src)
}
