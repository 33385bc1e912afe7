package layout

import (
	"cmp"
	"context"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/matzehuels/wordcloud/pkg/words"
)

// Glyph is a placed word. Glyphs are immutable once produced.
type Glyph struct {
	Label      string  `json:"label"`
	Weight     int     `json:"weight"`
	FontSize   float64 `json:"font_size"`
	FontWeight int     `json:"font_weight"`
	FontFamily string  `json:"font_family,omitempty"`
	Rotation   int     `json:"rotation"` // 0 or 90 degrees
	X          float64 `json:"x"`        // Center, relative to the canvas center
	Y          float64 `json:"y"`
	Box        Box     `json:"box"` // Rotated extents, relative to the canvas center
}

// CanvasX returns the glyph center in top-left origin coordinates.
func (g Glyph) CanvasX(width float64) float64 { return g.X + width/2 }

// CanvasY returns the glyph center in top-left origin coordinates.
func (g Glyph) CanvasY(height float64) float64 { return g.Y + height/2 }

// Result is the output of one layout pass.
type Result struct {
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Glyphs   []Glyph  `json:"glyphs"`
	Unplaced []string `json:"unplaced,omitempty"`
	Seed     uint64   `json:"seed"`
}

// Overcrowded reports whether any word could not be placed.
func (r Result) Overcrowded() bool { return len(r.Unplaced) > 0 }

// Glyph returns the placed glyph for label.
func (r Result) Glyph(label string) (Glyph, bool) {
	i := slices.IndexFunc(r.Glyphs, func(g Glyph) bool { return g.Label == label })
	if i < 0 {
		return Glyph{}, false
	}
	return r.Glyphs[i], true
}

// Engine runs spiral layouts with fixed options. It holds no state between
// calls and is safe for concurrent use.
type Engine struct {
	opts Options
}

// New validates opts and returns an Engine.
func New(opts Options) (*Engine, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Engine{opts: opts}, nil
}

// Options returns the engine options with defaults applied.
func (e *Engine) Options() Options { return e.opts }

// Layout places the visible entries of set. Entries with weight 0 are
// skipped and repeated labels keep their first occurrence. Context
// cancellation is checked between words.
func (e *Engine) Layout(ctx context.Context, set words.Set) (Result, error) {
	seed := e.opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	res := Result{Width: e.opts.Width, Height: e.opts.Height, Seed: seed, Glyphs: []Glyph{}}

	entries := set.Dedupe().Visible()
	if len(entries) == 0 {
		return res, nil
	}
	slices.SortStableFunc(entries, func(a, b words.Entry) int {
		return cmp.Compare(b.Weight, a.Weight)
	})

	p := newPacker(e.opts)
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		g := e.glyph(entry, rng)
		x, y, ok := p.place(g.Box.Width(), g.Box.Height())
		if !ok {
			res.Unplaced = append(res.Unplaced, entry.Label)
			continue
		}
		g.X, g.Y = x, y
		g.Box = g.Box.Translate(x, y)
		res.Glyphs = append(res.Glyphs, g)
	}
	return res, nil
}

// glyph sizes and measures entry, centered on the origin.
func (e *Engine) glyph(entry words.Entry, rng *rand.Rand) Glyph {
	size := FontSize(entry.Weight)
	weight := FontWeightFor(size)
	w, h := e.opts.Measurer.MeasureText(entry.Label, size, weight, e.opts.FontFamily)

	rotation := 0
	switch e.opts.Rotation {
	case Rotate90:
		rotation = 90
	case RotateRandom:
		if rng.IntN(2) == 1 {
			rotation = 90
		}
	}
	if rotation == 90 {
		w, h = h, w
	}

	return Glyph{
		Label:      entry.Label,
		Weight:     entry.Weight,
		FontSize:   size,
		FontWeight: weight,
		FontFamily: e.opts.FontFamily,
		Rotation:   rotation,
		Box:        BoxAt(0, 0, w, h),
	}
}

// packer tracks placed boxes during one layout pass.
type packer struct {
	bounds  Box
	padding float64
	step    float64
	growth  float64
	aspect  float64
	steps   int
	placed  []Box
	last    int // index of the last colliding box, checked first
}

func newPacker(o Options) *packer {
	aspect := o.Width / o.Height
	growth := o.SpiralGrowth
	if growth == 0 && o.MaxSteps > 0 {
		// The y radius must reach the half diagonal in height units.
		reach := math.Hypot(o.Width/aspect, o.Height) / 2
		growth = reach / (float64(o.MaxSteps) * o.SpiralStep)
	}
	return &packer{
		bounds:  BoxAt(0, 0, o.Width, o.Height),
		padding: max(o.Padding, 0),
		step:    o.SpiralStep,
		growth:  growth,
		aspect:  aspect,
		steps:   o.MaxSteps,
		last:    -1,
	}
}

// place finds a center for a w x h box and records it.
func (p *packer) place(w, h float64) (x, y float64, ok bool) {
	if w+2*p.padding > p.bounds.Width() || h+2*p.padding > p.bounds.Height() {
		return 0, 0, false
	}
	for i := range p.steps + 1 {
		theta := float64(i) * p.step
		r := p.growth * theta
		cx := p.aspect * r * math.Cos(theta)
		cy := r * math.Sin(theta)

		candidate := BoxAt(cx, cy, w, h)
		if !candidate.Expand(p.padding).Within(p.bounds) {
			continue
		}
		if p.collides(candidate.Expand(p.padding)) {
			continue
		}
		p.placed = append(p.placed, candidate)
		return cx, cy, true
	}
	return 0, 0, false
}

func (p *packer) collides(b Box) bool {
	if p.last >= 0 && p.placed[p.last].Intersects(b) {
		return true
	}
	for i, o := range p.placed {
		if o.Intersects(b) {
			p.last = i
			return true
		}
	}
	return false
}
