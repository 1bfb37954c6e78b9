// Package pipeline provides the complete gridplot pipeline:
// load → layout → render.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read the source images and decode them concurrently
//  2. Layout: partition, size cells, compute label bands and build the
//     validated [layout.Geometry]
//  3. Render: compose the output raster and, in debug mode, the overlay
//     raster concurrently, then encode both
//
// Each stage can be run on its own ([ComputeLayout], [Render]) or through a
// [Runner], which adds caching, logging and observability hooks.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Images = []string{"a.png", "b.png", "c.png", "d.png"}
//	opts.Rows = 2
//	opts.ColumnLabels = []string{"before", "after"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	files, err := result.Write(opts)
package pipeline

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/gridplot/pkg/cache"
	"github.com/matzehuels/gridplot/pkg/errors"
	"github.com/matzehuels/gridplot/pkg/geom"
	"github.com/matzehuels/gridplot/pkg/grid"
	"github.com/matzehuels/gridplot/pkg/io"
	"github.com/matzehuels/gridplot/pkg/label"
	"github.com/matzehuels/gridplot/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Config Files
// =============================================================================

const (
	// DefaultRows is the default number of grid rows.
	DefaultRows = 1

	// DefaultTopPadding is the minimum height of the column label band.
	DefaultTopPadding = 40

	// DefaultLeftPadding is the minimum width of the row label band.
	DefaultLeftPadding = 0

	// DefaultFontSize is the label font size in pixels.
	DefaultFontSize = 24

	// DefaultLineSpacing is the gap between lines of a multi-line label.
	DefaultLineSpacing = 4

	// DefaultOutput is the default output path.
	DefaultOutput = "output.jpg"

	// DefaultQuality is the default JPEG quality.
	DefaultQuality = io.DefaultJPEGQuality
)

// Artifact names used as keys of [Result.Artifacts].
const (
	ArtifactImage    = "image"
	ArtifactDebug    = "debug"
	ArtifactGeometry = "geometry"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one gridplot run.
// It can be loaded from a TOML file with [LoadConfig].
type Options struct {
	// Load options
	Images []string `json:"images" toml:"images"`

	// Layout options
	Rows                 int            `json:"rows" toml:"rows"`
	RowLabels            []string       `json:"row_labels,omitempty" toml:"row_labels"`
	ColumnLabels         []string       `json:"column_labels,omitempty" toml:"column_labels"`
	RowLabelAlignment    geom.Alignment `json:"row_label_alignment" toml:"row_label_alignment"`
	ColumnLabelAlignment geom.Alignment `json:"column_label_alignment" toml:"column_label_alignment"`
	TopPadding           int            `json:"top_padding" toml:"top_padding"`
	LeftPadding          int            `json:"left_padding" toml:"left_padding"`
	Gutter               int            `json:"gutter,omitempty" toml:"gutter"`
	FontPath             string         `json:"font,omitempty" toml:"font"`
	FallbackFonts        []string       `json:"fallback_fonts,omitempty" toml:"fallback_fonts"`
	FontSize             int            `json:"font_size" toml:"font_size"`
	LineSpacing          int            `json:"line_spacing" toml:"line_spacing"`

	// Render options
	Debug        bool   `json:"debug,omitempty" toml:"debug"`
	Output       string `json:"output" toml:"output"`
	Quality      int    `json:"quality,omitempty" toml:"quality"`
	GeometryPath string `json:"geometry,omitempty" toml:"geometry"`

	// Refresh ignores cached results (they are still rewritten).
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns options with every default applied. Config files
// and flags are layered on top of it, so an explicit zero (for example
// top_padding = 0) is kept.
func DefaultOptions() Options {
	return Options{
		Rows:        DefaultRows,
		TopPadding:  DefaultTopPadding,
		LeftPadding: DefaultLeftPadding,
		FontSize:    DefaultFontSize,
		LineSpacing: DefaultLineSpacing,
		Output:      DefaultOutput,
		Quality:     DefaultQuality,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Geometry is the validated layout.
	Geometry *layout.Geometry

	// InputHash is the combined content hash of the source images.
	InputHash string

	// Artifacts contains encoded outputs keyed by artifact name.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ImageCount int
	Rows       int
	Columns    int
	Width      int
	Height     int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the geometry came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every option and fills the defaults that
// have no meaningful zero value. Grid and label errors are reported here,
// before any image is read.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Images) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at least one input image is required")
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()

	g, err := grid.Partition(len(o.Images), o.Rows)
	if err != nil {
		return err
	}
	if err := errors.ValidateLabelCount("row", len(o.RowLabels), g.RowCount()); err != nil {
		return err
	}
	if err := errors.ValidateLabelCount("column", len(o.ColumnLabels), g.Columns); err != nil {
		return err
	}
	for _, p := range []struct {
		name  string
		value int
	}{
		{"top padding", o.TopPadding},
		{"left padding", o.LeftPadding},
		{"gutter", o.Gutter},
		{"line spacing", o.LineSpacing},
	} {
		if err := errors.ValidatePadding(p.name, p.value); err != nil {
			return err
		}
	}
	if o.FontSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "font size must be positive (got %d)", o.FontSize)
	}
	for _, a := range []geom.Alignment{o.RowLabelAlignment, o.ColumnLabelAlignment} {
		if a < geom.Center || a > geom.End {
			return errors.New(errors.ErrCodeInvalidAlignment, "unknown alignment %d", int(a))
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if o.Quality == 0 {
		o.Quality = DefaultQuality
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := errors.ValidateOutputPath(o.Output); err != nil {
		return err
	}
	if _, err := io.FormatFor(o.Output); err != nil {
		return err
	}
	if o.Quality < 1 || o.Quality > 100 {
		return errors.New(errors.ErrCodeInvalidInput, "quality must be between 1 and 100 (got %d)", o.Quality)
	}
	if o.GeometryPath != "" {
		if err := errors.ValidateOutputPath(o.GeometryPath); err != nil {
			return err
		}
	}
	return nil
}

// HasLabels reports whether any row or column label has visible text.
func (o *Options) HasLabels() bool {
	for _, s := range append(o.RowLabelSpecs(), o.ColumnLabelSpecs()...) {
		if !s.Empty() {
			return true
		}
	}
	return false
}

// RowLabelSpecs returns the row labels with their alignment.
func (o *Options) RowLabelSpecs() []label.Spec {
	return label.Specs(o.RowLabels, o.RowLabelAlignment)
}

// ColumnLabelSpecs returns the column labels with their alignment.
func (o *Options) ColumnLabelSpecs() []label.Spec {
	return label.Specs(o.ColumnLabels, o.ColumnLabelAlignment)
}

// ArtifactNames returns the artifacts a run produces, in render order.
func (o *Options) ArtifactNames() []string {
	if o.Debug {
		return []string{ArtifactImage, ArtifactDebug}
	}
	return []string{ArtifactImage}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(fontHash string) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Rows:            o.Rows,
		RowLabels:       o.RowLabels,
		ColumnLabels:    o.ColumnLabels,
		RowAlignment:    o.RowLabelAlignment.String(),
		ColumnAlignment: o.ColumnLabelAlignment.String(),
		TopPadding:      o.TopPadding,
		LeftPadding:     o.LeftPadding,
		Gutter:          o.Gutter,
		FontSize:        float64(o.FontSize),
		LineSpacing:     o.LineSpacing,
		FontHash:        fontHash,
	}
}

// ArtifactKeyOpts returns cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(artifact string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Kind:    artifact,
		Format:  strings.ToLower(filepath.Ext(o.Output)),
		Quality: o.Quality,
	}
}
