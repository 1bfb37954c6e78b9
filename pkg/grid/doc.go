// Package grid assigns images to row/column slots and sizes the resulting
// rows and columns.
//
// # Partitioning
//
// [Partition] distributes N images over R rows in row-major order. Every row
// receives floor(N/R) images and the first N mod R rows receive one extra, so
// row sizes differ by at most one and the longest rows come first:
//
//	g, _ := grid.Partition(5, 2)
//	g.RowSizes() // [3 2]
//	g.Columns    // 3
//
// The column count of the grid is the length of its longest row,
// ceil(N/R). Shorter rows leave their trailing slots empty.
//
// # Sizing
//
// [SizeCells] computes one height per row and one width per column from the
// dimensions of the images occupying them. Row and column sizes are derived
// independently; every cell is then the Cartesian product of its row height
// and column width. Because a column's width is the widest image that claims
// it in any row, grid lines stay straight even when source images differ in
// size and aspect ratio.
//
// No image is ever scaled or cropped. Images smaller than their cell are
// centered inside it (letterboxing), see [Place].
package grid
