package render

import (
	"fmt"
	"image/color"

	"github.com/matzehuels/wordcloud/pkg/anim"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
)

// PaintOp draws one word. X and Y are the glyph center in canvas
// coordinates (top-left origin).
type PaintOp struct {
	Text       string     `json:"text"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Rotation   int        `json:"rotation"`
	FontSize   float64    `json:"font_size"`
	FontWeight int        `json:"font_weight"`
	FontFamily string     `json:"font_family,omitempty"`
	Fill       color.RGBA `json:"-"`
	Alpha      float64    `json:"alpha"`
	GlowRadius float64    `json:"glow_radius"`
}

// Painter receives the paint operations of one frame.
type Painter interface {
	Begin(width, height float64)
	Paint(op PaintOp)
	End() error
}

// Surface is a drawing sink that can also measure text.
type Surface interface {
	layout.Measurer
	Painter
}

// Theme holds the colors of a rendered cloud.
type Theme struct {
	Background color.RGBA
	Fill       color.RGBA
}

// DefaultTheme is white text on a dark background.
var DefaultTheme = Theme{
	Background: color.RGBA{R: 0x0b, G: 0x10, B: 0x20, A: 0xff},
	Fill:       color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
}

// DefaultGlowScale converts glow intensity to a blur radius in pixels.
const DefaultGlowScale = 12.0

// RestFrame is the animation frame used for words without animation state,
// such as static renders.
var RestFrame = anim.Frame{Glow: anim.DefaultTunings[anim.Glow].Min, Alpha: 1}

// Ops converts a generation plus animation frames into paint operations, in
// glyph order. Glyphs missing from frames use RestFrame.
func Ops(gen *layout.Generation, frames map[string]anim.Frame, theme Theme, glowScale float64) []PaintOp {
	if gen == nil {
		return nil
	}
	ops := make([]PaintOp, 0, len(gen.Glyphs))
	for _, g := range gen.Glyphs {
		f, ok := frames[g.Label]
		if !ok {
			f = RestFrame
		}
		ops = append(ops, PaintOp{
			Text:       g.Label,
			X:          g.CanvasX(gen.Width) + f.DriftX,
			Y:          g.CanvasY(gen.Height) + f.DriftY,
			Rotation:   g.Rotation,
			FontSize:   g.FontSize,
			FontWeight: g.FontWeight,
			FontFamily: g.FontFamily,
			Fill:       theme.Fill,
			Alpha:      f.Alpha,
			GlowRadius: f.Glow * glowScale,
		})
	}
	return ops
}

// Paint draws ops onto p as a complete frame.
func Paint(p Painter, width, height float64, ops []PaintOp) error {
	p.Begin(width, height)
	for _, op := range ops {
		p.Paint(op)
	}
	return p.End()
}

// HexColor formats c as #rrggbb.
func HexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHexColor parses #rgb or #rrggbb.
func ParseHexColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("want #rgb or #rrggbb")
	}
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid color %q", s)
	}
	return c, nil
}
