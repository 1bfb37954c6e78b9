package geom

import (
	"strings"

	"github.com/matzehuels/gridplot/pkg/errors"
)

// Alignment positions a label inside its band along the band's long axis.
// For column bands the leading edge is the left edge; for row bands it is
// the top edge.
type Alignment int

const (
	// Center places the label equidistant from both band edges. It is the
	// zero value so an unset alignment centers.
	Center Alignment = iota
	// Start places the label flush against the leading edge.
	Start
	// End places the label flush against the trailing edge.
	End
)

// Offset returns the distance from the leading edge at which content of the
// given size starts inside space. Odd remainders round toward the leading
// edge, so Center is exact to within 1px. Oversized content starts at 0.
func (a Alignment) Offset(space, size int) int {
	free := space - size
	if free <= 0 {
		return 0
	}
	switch a {
	case Start:
		return 0
	case End:
		return free
	default:
		return free / 2
	}
}

// String implements fmt.Stringer.
func (a Alignment) String() string {
	switch a {
	case Start:
		return "start"
	case End:
		return "end"
	default:
		return "center"
	}
}

// ParseAlignment parses an alignment name. Besides start, center and end it
// accepts the directional synonyms left/top, middle and right/bottom.
// The empty string parses as Center.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "center", "centre", "middle":
		return Center, nil
	case "start", "left", "top":
		return Start, nil
	case "end", "right", "bottom":
		return End, nil
	default:
		return Center, errors.New(errors.ErrCodeInvalidAlignment, "unknown alignment %q (must be start, center or end)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Alignment) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Alignment) UnmarshalText(text []byte) error {
	parsed, err := ParseAlignment(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
