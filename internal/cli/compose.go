package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridplot/pkg/geom"
	"github.com/matzehuels/gridplot/pkg/pipeline"
)

// composeOpts holds the command-line flags for the compose command.
// Flag values only override the config file when set explicitly.
type composeOpts struct {
	config       string   // TOML config file
	rows         int      // number of grid rows
	rowLabels    []string // one label per row, top to bottom
	columnLabels []string // one label per column, left to right
	rowAlign     string   // row label alignment: start, center, end
	columnAlign  string   // column label alignment: start, center, end
	topPadding   int      // minimum column label band height
	leftPadding  int      // minimum row label band width
	gutter       int      // space between adjacent cells
	font         string   // TrueType/OpenType font file
	fallbacks    []string // fonts tried for runes the label font lacks
	fontSize     int      // label font size in pixels
	lineSpacing  int      // extra pixels between label lines
	debug        bool     // also write the region overlay
	output       string   // output image path
	quality      int      // JPEG quality
	geometry     string   // geometry JSON path
	noCache      bool     // disable the on-disk cache
	refresh      bool     // ignore cached results
}

// newComposeOpts returns flag values initialized to the pipeline defaults.
func newComposeOpts() *composeOpts {
	defaults := pipeline.DefaultOptions()
	return &composeOpts{
		rows:        defaults.Rows,
		rowAlign:    defaults.RowLabelAlignment.String(),
		columnAlign: defaults.ColumnLabelAlignment.String(),
		topPadding:  defaults.TopPadding,
		leftPadding: defaults.LeftPadding,
		fontSize:    defaults.FontSize,
		lineSpacing: defaults.LineSpacing,
		output:      defaults.Output,
		quality:     defaults.Quality,
	}
}

// composeCommand creates the compose command.
func (c *CLI) composeCommand() *cobra.Command {
	opts := newComposeOpts()

	cmd := &cobra.Command{
		Use:   "compose [images...]",
		Short: "Compose images into a labeled grid",
		Long: `Compose arranges the given images into a grid, in row-major order.

Rows are filled as evenly as possible; when the images do not divide evenly
the first rows receive one extra image. Every row is as tall as its tallest
image and every column as wide as its widest image. Images are centered in
their cells and never scaled.

Labels may contain line breaks, written either as real newlines or as "\n".`,
		Example: `  gridplot compose -r 2 a.png b.png c.png d.png -o grid.jpg
  gridplot compose --column-label Before --column-label After --row-label "Run 1" --row-label "Run 2" -r 2 *.png
  gridplot compose --config grid.toml --debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			po, err := opts.resolve(cmd, args)
			if err != nil {
				return err
			}
			return c.runCompose(cmd.Context(), po, opts.noCache)
		},
	}
	opts.bindFlags(cmd)

	return cmd
}

func (o *composeOpts) bindFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.config, "config", "c", "", "TOML config file (flags override its values)")
	f.IntVarP(&o.rows, "rows", "r", o.rows, "number of rows")
	f.StringArrayVar(&o.rowLabels, "row-label", nil, "row label, repeat once per row")
	f.StringArrayVar(&o.columnLabels, "column-label", nil, "column label, repeat once per column")
	f.StringVar(&o.rowAlign, "row-align", o.rowAlign, "row label alignment: start, center, end")
	f.StringVar(&o.columnAlign, "column-align", o.columnAlign, "column label alignment: start, center, end")
	f.IntVar(&o.topPadding, "top-padding", o.topPadding, "minimum height of the column label band")
	f.IntVar(&o.leftPadding, "left-padding", o.leftPadding, "minimum width of the row label band")
	f.IntVar(&o.gutter, "gutter", 0, "space between cells in pixels")
	f.StringVar(&o.font, "font", "", "label font file (default: Go Regular)")
	f.StringArrayVar(&o.fallbacks, "fallback-font", nil, "font for characters the label font lacks, repeatable")
	f.IntVar(&o.fontSize, "font-size", o.fontSize, "label font size in pixels")
	f.IntVar(&o.lineSpacing, "line-spacing", o.lineSpacing, "extra space between label lines")
	f.BoolVar(&o.debug, "debug", false, "also write a region overlay next to the output")
	f.StringVarP(&o.output, "output", "o", o.output, "output image (.jpg, .png, .gif, .tif, .bmp)")
	f.IntVar(&o.quality, "quality", o.quality, "JPEG quality (1-100)")
	f.StringVar(&o.geometry, "geometry", "", "write the layout geometry as JSON to this file")
	f.BoolVar(&o.noCache, "no-cache", false, "disable the layout and render cache")
	f.BoolVar(&o.refresh, "refresh", false, "ignore cached results")
}

// resolve builds pipeline options from the config file (or the defaults)
// and every flag set on the command line.
func (o *composeOpts) resolve(cmd *cobra.Command, args []string) (pipeline.Options, error) {
	po := pipeline.DefaultOptions()
	if o.config != "" {
		var err error
		if po, err = pipeline.LoadConfig(o.config); err != nil {
			return po, err
		}
	}

	if len(args) > 0 {
		po.Images = args
	}

	f := cmd.Flags()
	if f.Changed("rows") {
		po.Rows = o.rows
	}
	if f.Changed("row-label") {
		po.RowLabels = o.rowLabels
	}
	if f.Changed("column-label") {
		po.ColumnLabels = o.columnLabels
	}
	if f.Changed("row-align") {
		a, err := geom.ParseAlignment(o.rowAlign)
		if err != nil {
			return po, fmt.Errorf("--row-align: %w", err)
		}
		po.RowLabelAlignment = a
	}
	if f.Changed("column-align") {
		a, err := geom.ParseAlignment(o.columnAlign)
		if err != nil {
			return po, fmt.Errorf("--column-align: %w", err)
		}
		po.ColumnLabelAlignment = a
	}
	if f.Changed("top-padding") {
		po.TopPadding = o.topPadding
	}
	if f.Changed("left-padding") {
		po.LeftPadding = o.leftPadding
	}
	if f.Changed("gutter") {
		po.Gutter = o.gutter
	}
	if f.Changed("font") {
		po.FontPath = o.font
	}
	if f.Changed("fallback-font") {
		po.FallbackFonts = o.fallbacks
	}
	if f.Changed("font-size") {
		po.FontSize = o.fontSize
	}
	if f.Changed("line-spacing") {
		po.LineSpacing = o.lineSpacing
	}
	if f.Changed("debug") {
		po.Debug = o.debug
	}
	if f.Changed("output") {
		po.Output = o.output
	}
	if f.Changed("quality") {
		po.Quality = o.quality
	}
	if f.Changed("geometry") {
		po.GeometryPath = o.geometry
	}
	po.Refresh = o.refresh

	return po, nil
}

func (c *CLI) runCompose(ctx context.Context, opts pipeline.Options, noCache bool) error {
	ctx = withLogger(ctx, c.Logger)
	prog := newProgress(loggerFromContext(ctx))

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	written, err := result.Write(opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Composed %d images", result.Stats.ImageCount))

	printSuccess("Composed %d images into %d×%d grid", result.Stats.ImageCount, result.Stats.Rows, result.Stats.Columns)
	printStats(result.Stats.Width, result.Stats.Height, result.CacheInfo)
	for _, path := range written {
		printFile(path)
	}
	return nil
}
