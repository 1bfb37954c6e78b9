package fonts

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Chain is a font.Face that draws each rune with the first of its faces
// that has a glyph for it. Runes no face covers fall back to the first
// face's missing-glyph box.
type Chain struct {
	faces   []font.Face
	metrics font.Metrics
}

// NewChain returns a face that tries primary, then each fallback in order.
// Line metrics are the primary's, grown to fit the tallest fallback.
func NewChain(primary font.Face, fallbacks ...font.Face) *Chain {
	c := &Chain{
		faces:   append([]font.Face{primary}, fallbacks...),
		metrics: primary.Metrics(),
	}
	for _, f := range fallbacks {
		m := f.Metrics()
		if m.Ascent > c.metrics.Ascent {
			c.metrics.Ascent = m.Ascent
		}
		if m.Descent > c.metrics.Descent {
			c.metrics.Descent = m.Descent
		}
		if m.Height > c.metrics.Height {
			c.metrics.Height = m.Height
		}
	}
	return c
}

// pick returns the face used for r.
func (c *Chain) pick(r rune) font.Face {
	for _, f := range c.faces {
		if _, ok := f.GlyphAdvance(r); ok {
			return f
		}
	}
	return c.faces[0]
}

// Close closes every face in the chain and returns the first error.
func (c *Chain) Close() error {
	var first error
	for _, f := range c.faces {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (c *Chain) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	return c.pick(r).Glyph(dot, r)
}

func (c *Chain) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	return c.pick(r).GlyphBounds(r)
}

func (c *Chain) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	return c.pick(r).GlyphAdvance(r)
}

// Kern applies only between runes drawn by the same face.
func (c *Chain) Kern(r0, r1 rune) fixed.Int26_6 {
	f := c.pick(r0)
	if f != c.pick(r1) {
		return 0
	}
	return f.Kern(r0, r1)
}

func (c *Chain) Metrics() font.Metrics { return c.metrics }

var _ font.Face = (*Chain)(nil)
