// Package pkg provides the core libraries for gridplot, which composes a set
// of images into one labeled grid image.
//
// # Overview
//
// The pkg directory is organized by pipeline stage:
//
//  1. [grid] - Row partitioning and cell sizing
//  2. [label] - Label text blocks and label bands
//  3. [layout] - Canvas geometry and region validation
//  4. [render] - Raster composition and the debug overlay
//  5. [pipeline] - Orchestration (load → layout → render) with caching
//
// Supporting packages: [io] reads and writes images, [fonts] loads label
// faces, [cache] stores layouts and artifacts, [errors] carries error codes
// and [geom] holds rectangles and alignments.
//
// # Architecture
//
// The typical data flow through gridplot:
//
//	Image files
//	     ↓
//	[io] package (read, hash, decode)
//	     ↓
//	[grid] package (partition rows, size tracks)
//	     ↓
//	[layout] package (label bands, regions, validation)
//	     ↓
//	[render] packages (canvas + debug overlay)
//	     ↓
//	JPEG/PNG/GIF/TIFF/BMP + geometry JSON
//
// # Quick Start
//
//	import "github.com/matzehuels/gridplot/pkg/pipeline"
//
//	opts := pipeline.DefaultOptions()
//	opts.Images = []string{"a.png", "b.png", "c.png", "d.png"}
//	opts.Rows = 2
//	opts.ColumnLabels = []string{"before", "after"}
//	opts.Output = "grid.jpg"
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	_, err = result.Write(opts)
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/gridplot/pkg/grid
// [label]: https://pkg.go.dev/github.com/matzehuels/gridplot/pkg/label
// [layout]: https://pkg.go.dev/github.com/matzehuels/gridplot/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/gridplot/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gridplot/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/gridplot/pkg/io
// [fonts]: https://pkg.go.dev/github.com/matzehuels/gridplot/pkg/fonts
// [cache]: https://pkg.go.dev/github.com/matzehuels/gridplot/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/gridplot/pkg/errors
// [geom]: https://pkg.go.dev/github.com/matzehuels/gridplot/pkg/geom
package pkg
