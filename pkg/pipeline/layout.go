package pipeline

import (
	"github.com/matzehuels/gridplot/pkg/errors"
	"github.com/matzehuels/gridplot/pkg/grid"
	"github.com/matzehuels/gridplot/pkg/label"
	"github.com/matzehuels/gridplot/pkg/layout"
)

// LayoutInput assembles the layout engine input for images of the given
// sizes. metrics may be nil when opts has no labels.
func (o *Options) LayoutInput(sizes []grid.Size, metrics label.Metrics) layout.Input {
	return layout.Input{
		Sizes:        sizes,
		Rows:         o.Rows,
		RowLabels:    o.RowLabelSpecs(),
		ColumnLabels: o.ColumnLabelSpecs(),
		TopPadding:   o.TopPadding,
		LeftPadding:  o.LeftPadding,
		Gutter:       o.Gutter,
		Metrics:      metrics,
	}
}

// ComputeLayout builds the validated geometry for images of the given sizes,
// one per entry of opts.Images.
func ComputeLayout(sizes []grid.Size, metrics label.Metrics, opts Options) (*layout.Geometry, error) {
	if len(sizes) != len(opts.Images) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "got %d image sizes for %d images", len(sizes), len(opts.Images))
	}
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	return layout.Build(opts.LayoutInput(sizes, metrics))
}
