package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"math"

	"github.com/matzehuels/wordcloud/pkg/anim"
	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/render"
)

// SVGOption configures an SVG sink.
type SVGOption func(*SVG)

// WithEmbeddedFont embeds the regular Go font as a data URI.
func WithEmbeddedFont() SVGOption { return func(s *SVG) { s.embedFont = true } }

// WithBackground sets the background color.
func WithBackground(c color.RGBA) SVGOption { return func(s *SVG) { s.background = &c } }

// WithTransparentBackground omits the background rectangle.
func WithTransparentBackground() SVGOption { return func(s *SVG) { s.background = nil } }

// SVG collects paint operations into an SVG document.
type SVG struct {
	measurer   *fonts.Measurer
	embedFont  bool
	background *color.RGBA

	width, height float64
	ops           []render.PaintOp
	out           []byte
}

// NewSVG returns an SVG sink.
func NewSVG(opts ...SVGOption) *SVG {
	bg := render.DefaultTheme.Background
	s := &SVG{measurer: fonts.NewMeasurer(), background: &bg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MeasureText implements layout.Measurer with the embedded fonts.
func (s *SVG) MeasureText(text string, size float64, weight int, family string) (float64, float64) {
	return s.measurer.MeasureText(text, size, weight, family)
}

// Begin starts a frame.
func (s *SVG) Begin(width, height float64) {
	s.width, s.height = width, height
	s.ops = s.ops[:0]
}

// Paint records one word.
func (s *SVG) Paint(op render.PaintOp) { s.ops = append(s.ops, op) }

// End writes the document.
func (s *SVG) End() error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.width, s.height, s.width, s.height)

	s.renderDefs(&buf)
	if s.background != nil {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", render.HexColor(*s.background))
	}
	buf.WriteString(`  <g class="words" text-anchor="middle" dominant-baseline="central">` + "\n")
	for _, op := range s.ops {
		renderWord(&buf, op, s.embedFont)
	}
	buf.WriteString("  </g>\n</svg>\n")

	s.out = buf.Bytes()
	return nil
}

// Bytes returns the last finished document.
func (s *SVG) Bytes() []byte { return s.out }

func (s *SVG) renderDefs(buf *bytes.Buffer) {
	radii := glowRadii(s.ops)
	if len(radii) == 0 && !s.embedFont {
		return
	}
	buf.WriteString("  <defs>\n")
	if s.embedFont {
		fmt.Fprintf(buf, "    <style>@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }</style>\n",
			fonts.FontFamily, fonts.RegularBase64())
	}
	for _, r := range radii {
		fmt.Fprintf(buf, `    <filter id="%s" x="-50%%" y="-50%%" width="200%%" height="200%%">`+"\n", glowID(r))
		fmt.Fprintf(buf, `      <feGaussianBlur in="SourceGraphic" stdDeviation="%.1f" result="blur"/>`+"\n", float64(r)/2)
		buf.WriteString("      <feMerge><feMergeNode in=\"blur\"/><feMergeNode in=\"SourceGraphic\"/></feMerge>\n")
		buf.WriteString("    </filter>\n")
	}
	buf.WriteString("  </defs>\n")
}

func renderWord(buf *bytes.Buffer, op render.PaintOp, embedFont bool) {
	family := op.FontFamily
	if embedFont || family == "" {
		family = fonts.FallbackFontFamily
	}
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%.1f" font-weight="%d" font-family="%s" fill="%s" fill-opacity="%.3f"`,
		op.X, op.Y, op.FontSize, op.FontWeight, escapeXML(family), render.HexColor(op.Fill), op.Alpha)
	if r := roundRadius(op.GlowRadius); r > 0 {
		fmt.Fprintf(buf, ` filter="url(#%s)"`, glowID(r))
	}
	if op.Rotation != 0 {
		fmt.Fprintf(buf, ` transform="rotate(%d %.2f %.2f)"`, op.Rotation, op.X, op.Y)
	}
	fmt.Fprintf(buf, ">%s</text>\n", escapeXML(op.Text))
}

// roundRadius buckets glow radii to whole pixels so a frame needs few filters.
func roundRadius(r float64) int { return int(math.Round(r)) }

func glowID(r int) string { return fmt.Sprintf("glow-%d", r) }

func glowRadii(ops []render.PaintOp) []int {
	seen := make(map[int]bool)
	var out []int
	for _, op := range ops {
		if r := roundRadius(op.GlowRadius); r > 0 && !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// RenderSVG renders one frame of gen. Nil frames render every word at rest.
func RenderSVG(gen *layout.Generation, frames map[string]anim.Frame, opts ...SVGOption) []byte {
	s := NewSVG(opts...)
	_ = paintGeneration(s, gen, frames)
	return s.Bytes()
}

func paintGeneration(p render.Painter, gen *layout.Generation, frames map[string]anim.Frame) error {
	w, h := layout.DefaultWidth, layout.DefaultHeight
	if gen != nil {
		w, h = gen.Width, gen.Height
	}
	ops := render.Ops(gen, frames, render.DefaultTheme, render.DefaultGlowScale)
	return render.Paint(p, w, h, ops)
}

var _ render.Surface = (*SVG)(nil)
