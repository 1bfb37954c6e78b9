package grid

import (
	"github.com/matzehuels/gridplot/pkg/errors"
	"github.com/matzehuels/gridplot/pkg/geom"
)

// Size is the pixel size of a source image.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Tracks holds the pixel size of every row and column of a grid.
type Tracks struct {
	RowHeights   []int `json:"row_heights"`
	ColumnWidths []int `json:"column_widths"`
}

// SizeCells computes row heights and column widths for g. sizes is indexed
// by image index and must have exactly g.Count entries with positive
// dimensions.
//
// A row is as tall as its tallest image. A column is as wide as the widest
// image occupying it in any row.
func SizeCells(g Grid, sizes []Size) (Tracks, error) {
	if len(sizes) != g.Count {
		return Tracks{}, errors.New(errors.ErrCodeInvalidInput, "got %d image sizes for a grid of %d images", len(sizes), g.Count)
	}
	for i, s := range sizes {
		if s.W <= 0 || s.H <= 0 {
			return Tracks{}, errors.New(errors.ErrCodeInvalidInput, "image %d has invalid size %dx%d", i, s.W, s.H)
		}
	}

	t := Tracks{
		RowHeights:   make([]int, len(g.Rows)),
		ColumnWidths: make([]int, g.Columns),
	}
	for r, row := range g.Rows {
		for _, cell := range row {
			s := sizes[cell.Index]
			t.RowHeights[r] = max(t.RowHeights[r], s.H)
			t.ColumnWidths[cell.Col] = max(t.ColumnWidths[cell.Col], s.W)
		}
	}
	return t, nil
}

// Width returns the sum of all column widths.
func (t Tracks) Width() int { return sum(t.ColumnWidths) }

// Height returns the sum of all row heights.
func (t Tracks) Height() int { return sum(t.RowHeights) }

// Place centers an image of size s inside cell. Images are never scaled,
// so the result is only smaller than cell when the image is.
func Place(cell geom.Rect, s Size) geom.Rect {
	return geom.Rect{
		X: cell.X + geom.Center.Offset(cell.W, s.W),
		Y: cell.Y + geom.Center.Offset(cell.H, s.H),
		W: s.W,
		H: s.H,
	}
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
