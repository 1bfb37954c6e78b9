// Package label measures and places the text labels attached to grid rows
// and columns.
//
// Labels live in bands: a strip above the columns for column labels and a
// strip left of the rows for row labels. Every band on an axis has the same
// thickness, computed by [ComputeBand] as the larger of the configured
// padding and the thickest label block on that axis. Padding is a floor,
// never a cap, so text is never clipped. An axis without any label reserves
// no band at all and its padding is ignored.
//
// # Measurement
//
// Text is measured through the [Metrics] interface so layout stays
// independent of font rasterization. A block of n lines is
//
//	height = n*LineHeight + (n-1)*LineSpacing
//	width  = max(Measure(line))
//
// # Alignment
//
// Alignment applies along the band. For column labels Start is flush left
// and End flush right; for row labels Start is flush top and End flush
// bottom. Across the band the block is centered. Lines inside a block are
// aligned horizontally with the same alignment.
package label
