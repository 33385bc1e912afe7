package sink

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/matzehuels/wordcloud/pkg/anim"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/render"
)

type jsonOutput struct {
	Generation uint64         `json:"generation"`
	RunID      *uuid.UUID     `json:"run_id,omitempty"`
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
	Seed       uint64         `json:"seed,omitempty"`
	Glyphs     []layout.Glyph `json:"glyphs"`
	Unplaced   []string       `json:"unplaced,omitempty"`
	Frame      []jsonPaintOp  `json:"frame,omitempty"`
}

type jsonPaintOp struct {
	render.PaintOp
	Fill string `json:"fill"`
}

// RenderJSON exports gen and, when frames is non-nil, the paint operations of
// one frame.
func RenderJSON(gen *layout.Generation, frames map[string]anim.Frame) ([]byte, error) {
	out := jsonOutput{Glyphs: []layout.Glyph{}}
	if gen != nil {
		out.Generation = gen.ID
		out.Width, out.Height = gen.Width, gen.Height
		out.Seed = gen.Seed
		if gen.RunID != uuid.Nil {
			id := gen.RunID
			out.RunID = &id
		}
		if gen.Glyphs != nil {
			out.Glyphs = gen.Glyphs
		}
		out.Unplaced = gen.Unplaced
	}
	if frames != nil {
		out.Frame = jsonOps(render.Ops(gen, frames, render.DefaultTheme, render.DefaultGlowScale))
	}
	return json.MarshalIndent(out, "", "  ")
}

func jsonOps(ops []render.PaintOp) []jsonPaintOp {
	out := make([]jsonPaintOp, len(ops))
	for i, op := range ops {
		out[i] = jsonPaintOp{PaintOp: op, Fill: render.HexColor(op.Fill)}
	}
	return out
}

// JSON is a Painter that records frames as JSON.
type JSON struct {
	width, height float64
	ops           []render.PaintOp
	out           []byte
}

// NewJSON returns a JSON sink.
func NewJSON() *JSON { return &JSON{} }

// Begin starts a frame.
func (j *JSON) Begin(width, height float64) {
	j.width, j.height = width, height
	j.ops = j.ops[:0]
}

// Paint records one word.
func (j *JSON) Paint(op render.PaintOp) { j.ops = append(j.ops, op) }

// End encodes the frame.
func (j *JSON) End() error {
	data, err := json.MarshalIndent(struct {
		Width  float64       `json:"width"`
		Height float64       `json:"height"`
		Ops    []jsonPaintOp `json:"ops"`
	}{j.width, j.height, jsonOps(j.ops)}, "", "  ")
	if err != nil {
		return err
	}
	j.out = data
	return nil
}

// Bytes returns the last encoded frame.
func (j *JSON) Bytes() []byte { return j.out }

var _ render.Painter = (*JSON)(nil)
