// Package render groups the two rasterizers that consume a
// [layout.Geometry].
//
// # Overview
//
// Both renderers read the same immutable geometry and never change it, so
// the pipeline runs them concurrently:
//
//   - [canvas] composes the output image: white background, images centered
//     in their cells, label text in black.
//   - [debug] paints the diagnostic overlay: every cell, label and padding
//     region filled with a colour-coded, bordered rectangle.
//
// Both produce a raster of exactly the geometry's canvas size, and rendering
// the same geometry twice yields identical pixels.
//
//	geo, _ := layout.Build(in)
//	img, _ := canvas.Compose(geo, images, face)
//	dbg, _ := debug.Render(geo)
//
// [layout.Geometry]: github.com/matzehuels/gridplot/pkg/layout.Geometry
package render
