// Package layout turns images, a row count and labels into the geometry
// model shared by the canvas composer and the debug overlay renderer.
//
// # Pipeline
//
// [Build] runs the layout stages in order:
//
//  1. [grid.Partition] assigns images to rows.
//  2. [grid.SizeCells] derives row heights and column widths.
//  3. [label.ComputeBand] sizes the row and column label bands.
//  4. Tracks grow where a label is longer than its row or column, so label
//     text is never truncated.
//  5. Every cell, label and padding rectangle is positioned on the canvas.
//  6. [Geometry.Validate] checks that all regions are disjoint and inside
//     the canvas.
//
// # Canvas
//
// The column label band runs along the top edge and the row label band
// along the left edge:
//
//	+--------+----------+----------+
//	| corner | col lbl  | col lbl  |
//	+--------+----------+----------+
//	| row lbl| cell 0,0 | cell 0,1 |
//	+--------+----------+----------+
//	| row lbl| cell 1,0 | cell 1,1 |
//	+--------+----------+----------+
//
// Band segments belonging to an unlabeled row or column, and the corner
// where both bands meet, are padding regions. Gutters sit between adjacent
// cells only and, like the empty slots of short rows, stay background.
//
// A [Geometry] is immutable once built. Renderers only read it and may run
// concurrently.
package layout
