// Package fonts loads the typeface used for label text and adapts it to the
// measurements the layout engine needs.
//
// The default face is Go Regular, embedded in the binary through
// golang.org/x/image/font/gofont, so labels render without any font
// installed on the system. A TrueType or OpenType file can be loaded with
// [Load] instead.
//
// Fallback fonts cover characters the label font lacks, such as CJK text.
// A [Chain] draws every rune with the first face that has a glyph for it.
//
// Widths are ink-aware: a line is as wide as the union of its advance and
// the outline of its glyphs, so bearings that stick out of the advance box
// are never clipped. See [Extent].
package fonts

import (
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/gridplot/pkg/errors"
)

// DPI is fixed at 72 so that a face size in points equals its size in pixels.
const DPI = 72

// Parsed default font (computed once on first access).
var (
	defaultFont     *opentype.Font
	defaultFontErr  error
	defaultFontOnce sync.Once
)

// Default returns the embedded Go Regular font.
func Default() (*opentype.Font, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = Parse(goregular.TTF)
	})
	return defaultFont, defaultFontErr
}

// Parse parses TrueType or OpenType font data.
func Parse(data []byte) (*opentype.Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontLoad, err, "parse font")
	}
	return f, nil
}

// Load reads and parses the font file at path.
func Load(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontLoad, err, "read font %s", path)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontLoad, err, "parse font %s", path)
	}
	return f, nil
}

// Face is a sized font face that also reports label metrics.
// Like the font.Face it wraps, a Face is not safe for concurrent use.
type Face struct {
	font.Face
	spacing int
	ascent  int
	descent int
}

// Wrap adapts face to label metrics. spacing is the extra gap between lines
// of a multi-line label.
func Wrap(face font.Face, spacing int) *Face {
	m := face.Metrics()
	return &Face{
		Face:    face,
		spacing: spacing,
		ascent:  m.Ascent.Ceil(),
		descent: m.Descent.Ceil(),
	}
}

// NewFace creates a face of the given pixel size. Runes missing from f are
// drawn with the first of fallbacks that has them.
func NewFace(f *opentype.Font, size float64, spacing int, fallbacks ...*opentype.Font) (*Face, error) {
	if size <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "font size must be positive (got %g)", size)
	}
	if spacing < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "line spacing must be non-negative (got %d)", spacing)
	}
	faces := make([]font.Face, 0, 1+len(fallbacks))
	for _, src := range append([]*opentype.Font{f}, fallbacks...) {
		face, err := opentype.NewFace(src, &opentype.FaceOptions{
			Size:    size,
			DPI:     DPI,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFontLoad, err, "create %gpx face", size)
		}
		faces = append(faces, face)
	}
	if len(faces) == 1 {
		return Wrap(faces[0], spacing), nil
	}
	return Wrap(NewChain(faces[0], faces[1:]...), spacing), nil
}

// Open loads the font at path, or the default font when path is empty, plus
// every fallback font, and returns a face of the given size.
func Open(path string, fallbacks []string, size float64, spacing int) (*Face, error) {
	var (
		f   *opentype.Font
		err error
	)
	if path == "" {
		f, err = Default()
	} else {
		f, err = Load(path)
	}
	if err != nil {
		return nil, err
	}
	extra := make([]*opentype.Font, len(fallbacks))
	for i, p := range fallbacks {
		if extra[i], err = Load(p); err != nil {
			return nil, err
		}
	}
	return NewFace(f, size, spacing, extra...)
}

// LineHeight returns ascent plus descent, rounded up to whole pixels.
func (f *Face) LineHeight() int { return f.ascent + f.descent }

// LineSpacing returns the extra gap between lines.
func (f *Face) LineSpacing() int { return f.spacing }

// Ascent returns the distance from the top of a line to its baseline.
func (f *Face) Ascent() int { return f.ascent }

// Measure returns the ink-aware width of line in whole pixels.
func (f *Face) Measure(line string) int {
	_, width := Extent(f.Face, line)
	return width
}

// Extent measures line as drawn by face from a pen at x = 0. left is how far
// the ink reaches left of the pen, so drawing at x+left keeps all ink right
// of x; width covers both the ink and the advance.
func Extent(face font.Face, line string) (left, width int) {
	ink, advance := font.BoundString(face, line)
	if ink.Min.X < 0 {
		left = (-ink.Min.X).Ceil()
	}
	right := advance
	if ink.Max.X > right {
		right = ink.Max.X
	}
	return left, left + right.Ceil()
}
