package label

import (
	"fmt"

	"github.com/matzehuels/gridplot/pkg/errors"
	"github.com/matzehuels/gridplot/pkg/geom"
)

// Axis identifies which side of the grid a band is attached to.
type Axis int

const (
	// Column bands run along the top edge, one segment per column.
	Column Axis = iota
	// Row bands run along the left edge, one segment per row.
	Row
)

func (a Axis) String() string {
	switch a {
	case Column:
		return "column"
	case Row:
		return "row"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Axis) UnmarshalText(text []byte) error {
	switch string(text) {
	case "column":
		*a = Column
	case "row":
		*a = Row
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown label axis %q", text)
	}
	return nil
}

// Band is the measured label band of one axis.
type Band struct {
	Axis      Axis
	Thickness int

	specs  []Spec
	blocks []Block
	m      Metrics
}

// ComputeBand measures the labels of one axis and derives the band
// thickness. Unlabeled slots (a short list or blank text) have no block.
// The band is zero-thick when no slot is labeled; otherwise it is at least
// padding and at least the thickest block across the band.
func ComputeBand(axis Axis, specs []Spec, padding int, m Metrics) (Band, error) {
	if err := errors.ValidatePadding(axis.String()+" label padding", padding); err != nil {
		return Band{}, err
	}

	b := Band{
		Axis:   axis,
		specs:  specs,
		blocks: make([]Block, len(specs)),
		m:      m,
	}
	labeled := false
	natural := 0
	for i, s := range specs {
		if s.Empty() {
			continue
		}
		labeled = true
		b.blocks[i] = Measure(s.Text, m)
		natural = max(natural, b.cross(b.blocks[i]))
	}
	if labeled {
		b.Thickness = max(padding, natural)
	}
	return b, nil
}

// Labeled reports whether slot i carries a label.
func (b Band) Labeled(i int) bool {
	return i >= 0 && i < len(b.specs) && !b.specs[i].Empty()
}

// Spec returns the label of slot i.
func (b Band) Spec(i int) Spec { return b.specs[i] }

// Block returns the measured block of slot i.
func (b Band) Block(i int) Block { return b.blocks[i] }

// Extent returns the natural size of label i along the band: its width for
// column labels, its height for row labels. Unlabeled slots return 0.
func (b Band) Extent(i int) int {
	if !b.Labeled(i) {
		return 0
	}
	if b.Axis == Column {
		return b.blocks[i].Width
	}
	return b.blocks[i].Height
}

func (b Band) cross(blk Block) int {
	if b.Axis == Column {
		return blk.Height
	}
	return blk.Width
}

// Line is one positioned line of label text.
type Line struct {
	Text string    `json:"text"`
	Rect geom.Rect `json:"rect"`
}

// Placement is a label block positioned inside its band segment.
type Placement struct {
	Rect  geom.Rect `json:"rect"`
	Lines []Line    `json:"lines"`
}

// Place positions label i inside segment, the part of the band belonging to
// row or column i. The block is aligned along the band and centered across
// it. It reports false for unlabeled slots.
func (b Band) Place(i int, segment geom.Rect) (Placement, bool) {
	if !b.Labeled(i) {
		return Placement{}, false
	}
	blk := b.blocks[i]
	align := b.specs[i].Alignment

	var x, y int
	if b.Axis == Column {
		x = segment.X + align.Offset(segment.W, blk.Width)
		y = segment.Y + geom.Center.Offset(segment.H, blk.Height)
	} else {
		x = segment.X + geom.Center.Offset(segment.W, blk.Width)
		y = segment.Y + align.Offset(segment.H, blk.Height)
	}

	p := Placement{
		Rect:  geom.R(x, y, blk.Width, blk.Height),
		Lines: make([]Line, len(blk.Lines)),
	}
	step := b.m.LineHeight() + b.m.LineSpacing()
	for j, text := range blk.Lines {
		p.Lines[j] = Line{
			Text: text,
			Rect: geom.R(x+align.Offset(blk.Width, blk.Widths[j]), y+j*step, blk.Widths[j], b.m.LineHeight()),
		}
	}
	return p, true
}
