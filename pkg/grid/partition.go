package grid

import (
	"github.com/matzehuels/gridplot/pkg/errors"
)

// Cell is a filled grid slot. Index is the position of the assigned image in
// the caller's input order.
type Cell struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Index int `json:"index"`
}

// Grid is the row-major assignment of images to slots.
type Grid struct {
	Rows    [][]Cell `json:"rows"`
	Columns int      `json:"columns"`
	Count   int      `json:"count"`
}

// Partition assigns imageCount images to rowCount rows.
//
// The first imageCount%rowCount rows receive one image more than the rest.
// It returns an INVALID_GRID_SPEC error when rowCount is not in
// [1, imageCount].
func Partition(imageCount, rowCount int) (Grid, error) {
	if err := errors.ValidateGridSpec(imageCount, rowCount); err != nil {
		return Grid{}, err
	}

	base := imageCount / rowCount
	extra := imageCount % rowCount

	g := Grid{
		Rows:  make([][]Cell, rowCount),
		Count: imageCount,
	}
	next := 0
	for r := 0; r < rowCount; r++ {
		n := base
		if r < extra {
			n++
		}
		row := make([]Cell, n)
		for c := range row {
			row[c] = Cell{Row: r, Col: c, Index: next}
			next++
		}
		g.Rows[r] = row
		if n > g.Columns {
			g.Columns = n
		}
	}
	return g, nil
}

// RowCount returns the number of rows.
func (g Grid) RowCount() int { return len(g.Rows) }

// RowSizes returns the number of images in each row.
func (g Grid) RowSizes() []int {
	sizes := make([]int, len(g.Rows))
	for i, row := range g.Rows {
		sizes[i] = len(row)
	}
	return sizes
}

// Cells returns all filled cells in row-major order.
func (g Grid) Cells() []Cell {
	cells := make([]Cell, 0, g.Count)
	for _, row := range g.Rows {
		cells = append(cells, row...)
	}
	return cells
}

// At returns the cell at (row, col) and whether that slot is filled.
func (g Grid) At(row, col int) (Cell, bool) {
	if row < 0 || row >= len(g.Rows) || col < 0 || col >= len(g.Rows[row]) {
		return Cell{}, false
	}
	return g.Rows[row][col], true
}
