package layout

import (
	"fmt"

	"github.com/matzehuels/gridplot/pkg/errors"
	"github.com/matzehuels/gridplot/pkg/geom"
	"github.com/matzehuels/gridplot/pkg/label"
)

// Geometry is the complete, positioned layout of one output raster.
type Geometry struct {
	Width        int         `json:"width"`
	Height       int         `json:"height"`
	Gutter       int         `json:"gutter"`
	RowHeights   []int       `json:"row_heights"`
	ColumnWidths []int       `json:"column_widths"`
	Cells        []CellBox   `json:"cells"`
	RowLabels    []LabelBox  `json:"row_labels,omitempty"`
	ColumnLabels []LabelBox  `json:"column_labels,omitempty"`
	Padding      []geom.Rect `json:"padding,omitempty"`

	validated bool
}

// CellBox is a filled grid cell. Rect is the full cell; Placement is where
// the image lands inside it.
type CellBox struct {
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Image     int       `json:"image"`
	Rect      geom.Rect `json:"rect"`
	Placement geom.Rect `json:"placement"`
}

// LabelBox is a labeled band segment. Rect is the segment owned by the row
// or column; Block is the text bounding box inside it.
type LabelBox struct {
	Axis      label.Axis     `json:"axis"`
	Index     int            `json:"index"`
	Text      string         `json:"text"`
	Alignment geom.Alignment `json:"alignment"`
	Rect      geom.Rect      `json:"rect"`
	Block     geom.Rect      `json:"block"`
	Lines     []label.Line   `json:"lines"`
}

// Kind classifies a region of the canvas.
type Kind int

const (
	// KindCell is a grid cell, image and letterbox included.
	KindCell Kind = iota
	// KindRowLabel is a row's segment of the left label band.
	KindRowLabel
	// KindColumnLabel is a column's segment of the top label band.
	KindColumnLabel
	// KindPadding is band area no label owns, such as the top-left corner.
	KindPadding
)

func (k Kind) String() string {
	switch k {
	case KindCell:
		return "cell"
	case KindRowLabel:
		return "row label"
	case KindColumnLabel:
		return "column label"
	case KindPadding:
		return "padding"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Region is one classified rectangle of the canvas.
type Region struct {
	Kind Kind
	Rect geom.Rect
}

// Canvas returns the full canvas rectangle.
func (g *Geometry) Canvas() geom.Rect { return geom.R(0, 0, g.Width, g.Height) }

// Regions returns every cell, label and padding rectangle, in that order.
func (g *Geometry) Regions() []Region {
	regions := make([]Region, 0, len(g.Cells)+len(g.RowLabels)+len(g.ColumnLabels)+len(g.Padding))
	for _, c := range g.Cells {
		regions = append(regions, Region{Kind: KindCell, Rect: c.Rect})
	}
	for _, l := range g.RowLabels {
		regions = append(regions, Region{Kind: KindRowLabel, Rect: l.Rect})
	}
	for _, l := range g.ColumnLabels {
		regions = append(regions, Region{Kind: KindColumnLabel, Rect: l.Rect})
	}
	for _, p := range g.Padding {
		regions = append(regions, Region{Kind: KindPadding, Rect: p})
	}
	return regions
}

// Validate checks the structural invariants of the geometry: every region
// is non-empty and inside the canvas, no two regions overlap, images sit
// inside their cells and label text inside its segment. A violation is an
// INTERNAL_ERROR.
func (g *Geometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return errors.New(errors.ErrCodeInternal, "canvas has invalid size %dx%d", g.Width, g.Height)
	}
	canvas := g.Canvas()
	regions := g.Regions()
	for i, r := range regions {
		if r.Rect.Empty() {
			return errors.New(errors.ErrCodeInternal, "%s region %v is empty", r.Kind, r.Rect)
		}
		if !canvas.Contains(r.Rect) {
			return errors.New(errors.ErrCodeInternal, "%s region %v lies outside the %dx%d canvas", r.Kind, r.Rect, g.Width, g.Height)
		}
		for _, o := range regions[:i] {
			if r.Rect.Overlaps(o.Rect) {
				return errors.New(errors.ErrCodeInternal, "%s region %v overlaps %s region %v", r.Kind, r.Rect, o.Kind, o.Rect)
			}
		}
	}
	for _, c := range g.Cells {
		if !c.Rect.Contains(c.Placement) {
			return errors.New(errors.ErrCodeInternal, "image %d (%v) does not fit cell %v", c.Image, c.Placement, c.Rect)
		}
	}
	for _, boxes := range [][]LabelBox{g.RowLabels, g.ColumnLabels} {
		for _, l := range boxes {
			if !l.Rect.Contains(l.Block) {
				return errors.New(errors.ErrCodeInternal, "%s label %d (%v) does not fit segment %v", l.Axis, l.Index, l.Block, l.Rect)
			}
		}
	}
	g.validated = true
	return nil
}

// Validated reports whether Validate has succeeded on g.
func (g *Geometry) Validated() bool { return g.validated }
