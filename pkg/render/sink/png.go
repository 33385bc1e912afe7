package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/wordcloud/pkg/anim"
	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/render"
)

// PNGOption configures a PNG sink.
type PNGOption func(*PNG)

// WithScale sets the pixel density (default 1; 2 for retina output).
func WithScale(s float64) PNGOption { return func(p *PNG) { p.scale = s } }

// WithPNGBackground sets the background color.
func WithPNGBackground(c color.RGBA) PNGOption { return func(p *PNG) { p.background = c } }

// glowRings is the number of offset copies used to approximate a glow.
const glowRings = 8

// PNG rasterises paint operations with the embedded Go fonts.
type PNG struct {
	measurer   *fonts.Measurer
	scale      float64
	background color.RGBA

	img   *image.RGBA
	faces map[faceKey]font.Face
	err   error
	out   []byte
}

type faceKey struct {
	cut  fonts.Cut
	size float64
}

// NewPNG returns a PNG sink.
func NewPNG(opts ...PNGOption) *PNG {
	p := &PNG{
		measurer:   fonts.NewMeasurer(),
		scale:      1,
		background: render.DefaultTheme.Background,
		faces:      make(map[faceKey]font.Face),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.scale <= 0 {
		p.scale = 1
	}
	return p
}

// MeasureText implements layout.Measurer with the embedded fonts.
func (p *PNG) MeasureText(text string, size float64, weight int, family string) (float64, float64) {
	return p.measurer.MeasureText(text, size, weight, family)
}

// Begin allocates a canvas filled with the background color.
func (p *PNG) Begin(width, height float64) {
	w := int(math.Ceil(width * p.scale))
	h := int(math.Ceil(height * p.scale))
	p.img = image.NewRGBA(image.Rect(0, 0, w, h))
	p.err = nil
	draw.Draw(p.img, p.img.Bounds(), image.NewUniform(p.background), image.Point{}, draw.Src)
}

// Paint draws one word, glow first.
func (p *PNG) Paint(op render.PaintOp) {
	if p.img == nil || p.err != nil {
		return
	}
	face, err := p.face(op.FontWeight, op.FontSize*p.scale)
	if err != nil {
		p.err = err
		return
	}

	if op.GlowRadius > 0 {
		glow := withAlpha(op.Fill, op.Alpha*0.18)
		r := op.GlowRadius * p.scale / 2
		for i := range glowRings {
			a := 2 * math.Pi * float64(i) / glowRings
			p.drawText(face, op, glow, r*math.Cos(a), r*math.Sin(a))
		}
	}
	p.drawText(face, op, withAlpha(op.Fill, op.Alpha), 0, 0)
}

// drawText renders op's text into a scratch image, rotates it if needed and
// composites it centered on the op position plus (dx, dy).
func (p *PNG) drawText(face font.Face, op render.PaintOp, c color.Color, dx, dy float64) {
	adv := font.MeasureString(face, op.Text).Ceil()
	m := face.Metrics()
	asc, desc := m.Ascent.Ceil(), m.Descent.Ceil()
	if adv <= 0 || asc+desc <= 0 {
		return
	}

	var glyphs draw.Image = image.NewRGBA(image.Rect(0, 0, adv, asc+desc))
	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(0, asc),
	}
	d.DrawString(op.Text)

	if op.Rotation == 90 {
		glyphs = rotate90(glyphs)
	}

	b := glyphs.Bounds()
	cx := op.X*p.scale + dx
	cy := op.Y*p.scale + dy
	at := image.Pt(int(math.Round(cx-float64(b.Dx())/2)), int(math.Round(cy-float64(b.Dy())/2)))
	draw.Draw(p.img, b.Add(at), glyphs, image.Point{}, draw.Over)
}

// End encodes the canvas.
func (p *PNG) End() error {
	if p.err != nil {
		return p.err
	}
	if p.img == nil {
		p.Begin(0, 0)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, p.img); err != nil {
		return err
	}
	p.out = buf.Bytes()
	return nil
}

// Bytes returns the last encoded image.
func (p *PNG) Bytes() []byte { return p.out }

// Image returns the last drawn canvas.
func (p *PNG) Image() *image.RGBA { return p.img }

func (p *PNG) face(weight int, size float64) (font.Face, error) {
	key := faceKey{cut: fonts.CutFor(weight), size: math.Round(size*4) / 4}
	if f, ok := p.faces[key]; ok {
		return f, nil
	}
	f, err := fonts.Face(weight, key.size)
	if err != nil {
		return nil, err
	}
	p.faces[key] = f
	return f, nil
}

// rotate90 turns src a quarter turn clockwise.
func rotate90(src draw.Image) draw.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dy(), b.Dx()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(b.Max.Y-1-y, x-b.Min.X, src.At(x, y))
		}
	}
	return dst
}

func withAlpha(c color.RGBA, alpha float64) color.Color {
	a := max(0, min(alpha, 1))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(float64(c.A) * a))}
}

// RenderPNG renders one frame of gen. Nil frames render every word at rest.
func RenderPNG(gen *layout.Generation, frames map[string]anim.Frame, opts ...PNGOption) ([]byte, error) {
	p := NewPNG(opts...)
	if err := paintGeneration(p, gen, frames); err != nil {
		return nil, err
	}
	return p.Bytes(), nil
}

var _ render.Surface = (*PNG)(nil)
