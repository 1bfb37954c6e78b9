package label

import (
	"strings"

	"github.com/matzehuels/gridplot/pkg/geom"
)

// Metrics reports the font measurements needed to lay out label text.
type Metrics interface {
	// LineHeight is the pixel height of one line of text.
	LineHeight() int
	// LineSpacing is the extra gap between consecutive lines.
	LineSpacing() int
	// Measure returns the advance width of line in pixels.
	Measure(line string) int
}

// Spec is a single row or column label.
type Spec struct {
	Text      string         `json:"text"`
	Alignment geom.Alignment `json:"alignment"`
}

// Specs builds one Spec per text, all sharing align.
func Specs(texts []string, align geom.Alignment) []Spec {
	specs := make([]Spec, len(texts))
	for i, t := range texts {
		specs[i] = Spec{Text: t, Alignment: align}
	}
	return specs
}

// Empty reports whether the label has no visible text. A label made only of
// line breaks is empty.
func (s Spec) Empty() bool {
	return strings.TrimSpace(strings.Join(SplitLines(s.Text), "")) == ""
}

// SplitLines splits label text into lines. Both a real newline and the
// two-character sequence `\n` (as typed on a shell command line) break a line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, `\n`, "\n")
	return strings.Split(text, "\n")
}

// Block is a measured, multi-line label.
type Block struct {
	Lines  []string `json:"lines"`
	Widths []int    `json:"widths"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
}

// Measure computes the natural size of text.
func Measure(text string, m Metrics) Block {
	lines := SplitLines(text)
	b := Block{
		Lines:  lines,
		Widths: make([]int, len(lines)),
	}
	for i, line := range lines {
		b.Widths[i] = m.Measure(line)
		b.Width = max(b.Width, b.Widths[i])
	}
	n := len(lines)
	b.Height = n*m.LineHeight() + (n-1)*m.LineSpacing()
	return b
}
