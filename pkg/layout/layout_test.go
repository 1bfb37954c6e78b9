package layout

import (
	"reflect"
	"testing"
	"unicode/utf8"

	"github.com/matzehuels/gridplot/pkg/errors"
	"github.com/matzehuels/gridplot/pkg/geom"
	"github.com/matzehuels/gridplot/pkg/grid"
	"github.com/matzehuels/gridplot/pkg/label"
)

type stubMetrics struct{}

func (stubMetrics) LineHeight() int         { return 24 }
func (stubMetrics) LineSpacing() int        { return 2 }
func (stubMetrics) Measure(line string) int { return 10 * utf8.RuneCountInString(line) }

var fourImages = []grid.Size{{W: 100, H: 50}, {W: 80, H: 60}, {W: 120, H: 40}, {W: 90, H: 70}}

func TestBuildNoLabels(t *testing.T) {
	g, err := Build(Input{Sizes: fourImages, Rows: 2, TopPadding: 40})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.Width != 210 || g.Height != 130 {
		t.Errorf("canvas = %dx%d, want 210x130", g.Width, g.Height)
	}
	if len(g.Padding) != 0 || len(g.ColumnLabels) != 0 || len(g.RowLabels) != 0 {
		t.Errorf("unlabeled layout reserved bands: %+v", g)
	}

	want := []CellBox{
		{Row: 0, Col: 0, Image: 0, Rect: geom.R(0, 0, 120, 60), Placement: geom.R(10, 5, 100, 50)},
		{Row: 0, Col: 1, Image: 1, Rect: geom.R(120, 0, 90, 60), Placement: geom.R(125, 0, 80, 60)},
		{Row: 1, Col: 0, Image: 2, Rect: geom.R(0, 60, 120, 70), Placement: geom.R(0, 75, 120, 40)},
		{Row: 1, Col: 1, Image: 3, Rect: geom.R(120, 60, 90, 70), Placement: geom.R(120, 60, 90, 70)},
	}
	if !reflect.DeepEqual(g.Cells, want) {
		t.Errorf("Cells =\n%+v\nwant\n%+v", g.Cells, want)
	}
	if !g.Validated() {
		t.Error("Build should return validated geometry")
	}
}

func TestBuildColumnLabelBand(t *testing.T) {
	g, err := Build(Input{
		Sizes:        []grid.Size{{W: 100, H: 100}},
		Rows:         1,
		ColumnLabels: label.Specs([]string{"Title\nSubtitle"}, geom.Center),
		TopPadding:   40,
		Metrics:      stubMetrics{},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.Width != 100 || g.Height != 150 {
		t.Errorf("canvas = %dx%d, want 100x150", g.Width, g.Height)
	}
	if len(g.ColumnLabels) != 1 {
		t.Fatalf("got %d column labels, want 1", len(g.ColumnLabels))
	}
	lbl := g.ColumnLabels[0]
	if lbl.Rect != geom.R(0, 0, 100, 50) {
		t.Errorf("label segment = %v, want 100x50+0+0", lbl.Rect)
	}
	if lbl.Block != geom.R(10, 0, 80, 50) {
		t.Errorf("label block = %v, want 80x50+10+0", lbl.Block)
	}
	if g.Cells[0].Rect != geom.R(0, 50, 100, 100) {
		t.Errorf("cell = %v, want 100x100+0+50", g.Cells[0].Rect)
	}
}

func TestBuildBothBands(t *testing.T) {
	g, err := Build(Input{
		Sizes:        fourImages,
		Rows:         2,
		RowLabels:    label.Specs([]string{"A"}, geom.Start),
		ColumnLabels: label.Specs([]string{"", "B"}, geom.End),
		TopPadding:   40,
		LeftPadding:  30,
		Gutter:       5,
		Metrics:      stubMetrics{},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// 30 + 120 + 5 + 90 wide, 40 + 60 + 5 + 70 tall.
	if g.Width != 245 || g.Height != 175 {
		t.Errorf("canvas = %dx%d, want 245x175", g.Width, g.Height)
	}
	if g.Cells[3].Rect != geom.R(155, 105, 90, 70) {
		t.Errorf("last cell = %v, want 90x70+155+105", g.Cells[3].Rect)
	}

	if len(g.ColumnLabels) != 1 || g.ColumnLabels[0].Index != 1 {
		t.Fatalf("column labels = %+v", g.ColumnLabels)
	}
	if got := g.ColumnLabels[0].Block.Right(); got != g.Width {
		t.Errorf("end-aligned label right edge = %d, want %d", got, g.Width)
	}
	if len(g.RowLabels) != 1 || g.RowLabels[0].Block.Y != 40 {
		t.Errorf("start-aligned row label = %+v", g.RowLabels)
	}

	wantPadding := []geom.Rect{
		geom.R(30, 0, 120, 40), // unlabeled column 0
		geom.R(0, 105, 30, 70), // unlabeled row 1
		geom.R(0, 0, 30, 40),   // corner
	}
	if !reflect.DeepEqual(g.Padding, wantPadding) {
		t.Errorf("Padding = %v, want %v", g.Padding, wantPadding)
	}
}

func TestBuildGrowsTracksForLongLabels(t *testing.T) {
	g, err := Build(Input{
		Sizes:        []grid.Size{{W: 20, H: 20}, {W: 20, H: 20}},
		Rows:         2,
		RowLabels:    label.Specs([]string{"a\nb\nc"}, geom.Center),
		ColumnLabels: label.Specs([]string{"a very long title"}, geom.Center),
		Metrics:      stubMetrics{},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if want := []int{170}; !reflect.DeepEqual(g.ColumnWidths, want) {
		t.Errorf("ColumnWidths = %v, want %v", g.ColumnWidths, want)
	}
	if want := []int{76, 20}; !reflect.DeepEqual(g.RowHeights, want) {
		t.Errorf("RowHeights = %v, want %v", g.RowHeights, want)
	}
	for _, l := range append(g.RowLabels, g.ColumnLabels...) {
		if !l.Rect.Contains(l.Block) {
			t.Errorf("label %q truncated: block %v, segment %v", l.Text, l.Block, l.Rect)
		}
	}
}

func TestBuildCoverage(t *testing.T) {
	sizes := []grid.Size{{W: 13, H: 7}, {W: 5, H: 11}, {W: 9, H: 9}, {W: 4, H: 3}, {W: 8, H: 6}, {W: 12, H: 2}}
	g, err := Build(Input{
		Sizes:        sizes,
		Rows:         2,
		RowLabels:    label.Specs([]string{"x", ""}, geom.Center),
		ColumnLabels: label.Specs([]string{"", "y", "z\nw"}, geom.Start),
		TopPadding:   6,
		LeftPadding:  3,
		Metrics:      stubMetrics{},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	covered := make([]int, g.Width*g.Height)
	for _, r := range g.Regions() {
		for y := r.Rect.Y; y < r.Rect.Bottom(); y++ {
			for x := r.Rect.X; x < r.Rect.Right(); x++ {
				covered[y*g.Width+x]++
			}
		}
	}
	for i, n := range covered {
		if n != 1 {
			t.Fatalf("pixel (%d,%d) covered %d times, want exactly once", i%g.Width, i/g.Width, n)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		code errors.Code
	}{
		{"too many rows", Input{Sizes: fourImages, Rows: 5}, errors.ErrCodeInvalidGridSpec},
		{"no images", Input{Rows: 1}, errors.ErrCodeInvalidGridSpec},
		{"too many row labels", Input{Sizes: fourImages, Rows: 2, RowLabels: label.Specs([]string{"a", "b", "c"}, geom.Center), Metrics: stubMetrics{}}, errors.ErrCodeInvalidLabels},
		{"too many column labels", Input{Sizes: fourImages, Rows: 2, ColumnLabels: label.Specs([]string{"a", "b", "c"}, geom.Center), Metrics: stubMetrics{}}, errors.ErrCodeInvalidLabels},
		{"negative padding", Input{Sizes: fourImages, Rows: 1, TopPadding: -1}, errors.ErrCodeInvalidPadding},
		{"negative gutter", Input{Sizes: fourImages, Rows: 1, Gutter: -2}, errors.ErrCodeInvalidPadding},
		{"labels without metrics", Input{Sizes: fourImages, Rows: 1, RowLabels: label.Specs([]string{"a"}, geom.Center)}, errors.ErrCodeInvalidInput},
		{"zero size image", Input{Sizes: []grid.Size{{W: 0, H: 3}}, Rows: 1}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.in)
			if !errors.Is(err, tt.code) {
				t.Errorf("Build() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestValidateDetectsOverlap(t *testing.T) {
	g := &Geometry{
		Width:  100,
		Height: 100,
		Cells: []CellBox{
			{Rect: geom.R(0, 0, 60, 60), Placement: geom.R(0, 0, 60, 60)},
			{Image: 1, Rect: geom.R(50, 50, 50, 50), Placement: geom.R(50, 50, 50, 50)},
		},
	}
	if err := g.Validate(); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Validate() error = %v, want INTERNAL_ERROR", err)
	}
	if g.Validated() {
		t.Error("failed validation must not mark geometry validated")
	}
}

func TestValidateOutsideCanvas(t *testing.T) {
	g := &Geometry{
		Width:   50,
		Height:  50,
		Padding: []geom.Rect{geom.R(40, 40, 20, 20)},
	}
	if err := g.Validate(); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Validate() error = %v, want INTERNAL_ERROR", err)
	}
}

func TestGeometryJSON(t *testing.T) {
	g, err := Build(Input{
		Sizes:        fourImages,
		Rows:         2,
		ColumnLabels: label.Specs([]string{"left", "right"}, geom.End),
		TopPadding:   40,
		Metrics:      stubMetrics{},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	data, err := MarshalGeometry(g)
	if err != nil {
		t.Fatalf("MarshalGeometry: %v", err)
	}
	back, err := UnmarshalGeometry(data)
	if err != nil {
		t.Fatalf("UnmarshalGeometry: %v", err)
	}
	if !reflect.DeepEqual(back, g) {
		t.Errorf("geometry changed through JSON:\n%+v\nvs\n%+v", back, g)
	}

	if _, err := UnmarshalGeometry([]byte("{")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad JSON error = %v, want INVALID_FORMAT", err)
	}
}

func TestRegionsKinds(t *testing.T) {
	g, _ := Build(Input{
		Sizes:        fourImages,
		Rows:         2,
		RowLabels:    label.Specs([]string{"r0", "r1"}, geom.Center),
		ColumnLabels: label.Specs([]string{"c0"}, geom.Center),
		TopPadding:   40,
		LeftPadding:  40,
		Metrics:      stubMetrics{},
	})

	counts := map[Kind]int{}
	for _, r := range g.Regions() {
		counts[r.Kind]++
	}
	want := map[Kind]int{KindCell: 4, KindRowLabel: 2, KindColumnLabel: 1, KindPadding: 2}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("region kinds = %v, want %v", counts, want)
	}
}
