package layout

import (
	"github.com/matzehuels/gridplot/pkg/errors"
	"github.com/matzehuels/gridplot/pkg/geom"
	"github.com/matzehuels/gridplot/pkg/grid"
	"github.com/matzehuels/gridplot/pkg/label"
)

// Input holds everything [Build] needs. Sizes are in input order.
type Input struct {
	Sizes        []grid.Size
	Rows         int
	RowLabels    []label.Spec
	ColumnLabels []label.Spec
	TopPadding   int
	LeftPadding  int
	Gutter       int

	// Metrics measures label text. It may be nil when there are no labels.
	Metrics label.Metrics
}

// Build computes and validates the geometry for in.
func Build(in Input) (*Geometry, error) {
	g, err := grid.Partition(len(in.Sizes), in.Rows)
	if err != nil {
		return nil, err
	}
	if err := errors.ValidateLabelCount("row", len(in.RowLabels), g.RowCount()); err != nil {
		return nil, err
	}
	if err := errors.ValidateLabelCount("column", len(in.ColumnLabels), g.Columns); err != nil {
		return nil, err
	}
	if err := errors.ValidatePadding("gutter", in.Gutter); err != nil {
		return nil, err
	}
	if in.Metrics == nil && (anyLabel(in.RowLabels) || anyLabel(in.ColumnLabels)) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "labels given without font metrics")
	}

	tracks, err := grid.SizeCells(g, in.Sizes)
	if err != nil {
		return nil, err
	}
	colBand, err := label.ComputeBand(label.Column, in.ColumnLabels, in.TopPadding, in.Metrics)
	if err != nil {
		return nil, err
	}
	rowBand, err := label.ComputeBand(label.Row, in.RowLabels, in.LeftPadding, in.Metrics)
	if err != nil {
		return nil, err
	}

	geo := &Geometry{
		Gutter:       in.Gutter,
		RowHeights:   make([]int, len(tracks.RowHeights)),
		ColumnWidths: make([]int, len(tracks.ColumnWidths)),
	}
	for r, h := range tracks.RowHeights {
		geo.RowHeights[r] = max(h, rowBand.Extent(r))
	}
	for c, w := range tracks.ColumnWidths {
		geo.ColumnWidths[c] = max(w, colBand.Extent(c))
	}

	rowY := offsets(colBand.Thickness, geo.RowHeights, in.Gutter)
	colX := offsets(rowBand.Thickness, geo.ColumnWidths, in.Gutter)
	geo.Width = span(colX, geo.ColumnWidths)
	geo.Height = span(rowY, geo.RowHeights)

	for _, cell := range g.Cells() {
		rect := geom.R(colX[cell.Col], rowY[cell.Row], geo.ColumnWidths[cell.Col], geo.RowHeights[cell.Row])
		geo.Cells = append(geo.Cells, CellBox{
			Row:       cell.Row,
			Col:       cell.Col,
			Image:     cell.Index,
			Rect:      rect,
			Placement: grid.Place(rect, in.Sizes[cell.Index]),
		})
	}

	if t := colBand.Thickness; t > 0 {
		for c := range geo.ColumnWidths {
			segment := geom.R(colX[c], 0, geo.ColumnWidths[c], t)
			geo.ColumnLabels, geo.Padding = placeLabel(colBand, c, segment, geo.ColumnLabels, geo.Padding)
		}
	}
	if t := rowBand.Thickness; t > 0 {
		for r := range geo.RowHeights {
			segment := geom.R(0, rowY[r], t, geo.RowHeights[r])
			geo.RowLabels, geo.Padding = placeLabel(rowBand, r, segment, geo.RowLabels, geo.Padding)
		}
	}
	if rowBand.Thickness > 0 && colBand.Thickness > 0 {
		geo.Padding = append(geo.Padding, geom.R(0, 0, rowBand.Thickness, colBand.Thickness))
	}

	if err := geo.Validate(); err != nil {
		return nil, err
	}
	return geo, nil
}

func placeLabel(b label.Band, i int, segment geom.Rect, labels []LabelBox, padding []geom.Rect) ([]LabelBox, []geom.Rect) {
	p, ok := b.Place(i, segment)
	if !ok {
		return labels, append(padding, segment)
	}
	spec := b.Spec(i)
	return append(labels, LabelBox{
		Axis:      b.Axis,
		Index:     i,
		Text:      spec.Text,
		Alignment: spec.Alignment,
		Rect:      segment,
		Block:     p.Rect,
		Lines:     p.Lines,
	}), padding
}

// offsets returns the leading edge of each track, starting at origin.
func offsets(origin int, tracks []int, gutter int) []int {
	out := make([]int, len(tracks))
	pos := origin
	for i, size := range tracks {
		out[i] = pos
		pos += size + gutter
	}
	return out
}

func span(starts, tracks []int) int {
	last := len(tracks) - 1
	return starts[last] + tracks[last]
}

func anyLabel(specs []label.Spec) bool {
	for _, s := range specs {
		if !s.Empty() {
			return true
		}
	}
	return false
}
