package layout

import (
	"context"
	"errors"
	"fmt"
	"testing"

	wcerrors "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/words"
)

func newEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	e, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func assertNoOverlap(t *testing.T, res Result, padding float64) {
	t.Helper()
	canvas := BoxAt(0, 0, res.Width, res.Height)
	for i, a := range res.Glyphs {
		if !a.Box.Within(canvas) {
			t.Errorf("glyph %q outside canvas: %+v", a.Label, a.Box)
		}
		for _, b := range res.Glyphs[i+1:] {
			if a.Box.Expand(padding).Intersects(b.Box) {
				t.Errorf("glyphs %q and %q overlap: %+v %+v", a.Label, b.Label, a.Box, b.Box)
			}
		}
	}
}

func TestLayoutEmpty(t *testing.T) {
	e := newEngine(t, Options{Seed: 1})
	for _, set := range []words.Set{nil, {}, {{Label: "Zero", Weight: 0}}} {
		res, err := e.Layout(context.Background(), set)
		if err != nil {
			t.Fatalf("Layout(%v): %v", set, err)
		}
		if len(res.Glyphs) != 0 || len(res.Unplaced) != 0 {
			t.Errorf("Layout(%v) = %+v, want empty", set, res)
		}
	}
}

func TestLayoutSingleWord(t *testing.T) {
	e := newEngine(t, Options{Width: 900, Height: 600, Seed: 7})
	res, err := e.Layout(context.Background(), words.Set{{Label: "Alpha", Weight: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Glyphs) != 1 {
		t.Fatalf("got %d glyphs, want 1", len(res.Glyphs))
	}
	g := res.Glyphs[0]
	if g.Label != "Alpha" || g.Weight != 1 {
		t.Errorf("glyph = %+v", g)
	}
	if g.FontSize != 14 || g.FontWeight != WeightRegular {
		t.Errorf("font = %v/%d, want 14/400", g.FontSize, g.FontWeight)
	}
	if g.Rotation != 0 && g.Rotation != 90 {
		t.Errorf("rotation = %d", g.Rotation)
	}
	if x, y := g.CanvasX(900), g.CanvasY(600); x < 0 || x > 900 || y < 0 || y > 600 {
		t.Errorf("position (%v, %v) outside 900x600", x, y)
	}
	if !g.Box.Within(BoxAt(0, 0, 900, 600)) {
		t.Errorf("box %+v outside canvas", g.Box)
	}
}

func TestLayoutNoOverlap(t *testing.T) {
	tests := []struct {
		name     string
		rotation Rotation
		count    int
	}{
		{"random rotation", RotateRandom, 25},
		{"horizontal", RotateNone, 25},
		{"vertical", Rotate90, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var set words.Set
			for i := range tt.count {
				set = append(set, words.Entry{Label: fmt.Sprintf("word%02d", i), Weight: 1 + i%4})
			}
			e := newEngine(t, Options{Width: 900, Height: 600, Seed: 42, Rotation: tt.rotation})
			res, err := e.Layout(context.Background(), set)
			if err != nil {
				t.Fatal(err)
			}
			if res.Overcrowded() {
				t.Fatalf("unexpected unplaced words: %v", res.Unplaced)
			}
			if len(res.Glyphs) != tt.count {
				t.Fatalf("got %d glyphs, want %d", len(res.Glyphs), tt.count)
			}
			assertNoOverlap(t, res, DefaultPadding)
			for _, g := range res.Glyphs {
				switch tt.rotation {
				case RotateNone:
					if g.Rotation != 0 {
						t.Errorf("%q rotated with RotateNone", g.Label)
					}
				case Rotate90:
					if g.Rotation != 90 {
						t.Errorf("%q not rotated with Rotate90", g.Label)
					}
				}
			}
		})
	}
}

func TestLayoutDefaultSetFits(t *testing.T) {
	set := words.Defaults()
	for i := range set {
		set[i].Weight = 1 + i%4
	}
	res, err := newEngine(t, Options{Seed: 3}).Layout(context.Background(), set)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Glyphs)+len(res.Unplaced) != len(set) {
		t.Errorf("placed %d + unplaced %d != %d", len(res.Glyphs), len(res.Unplaced), len(set))
	}
	assertNoOverlap(t, res, DefaultPadding)
}

func TestLayoutOverflow(t *testing.T) {
	var set words.Set
	for i := range 200 {
		set = append(set, words.Entry{Label: fmt.Sprintf("w%03d", i), Weight: 1})
	}
	res, err := newEngine(t, Options{Width: 300, Height: 200, Seed: 9}).Layout(context.Background(), set)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Overcrowded() {
		t.Fatal("expected unplaced words on an overcrowded canvas")
	}
	if len(res.Glyphs)+len(res.Unplaced) != 200 {
		t.Errorf("placed %d + unplaced %d != 200", len(res.Glyphs), len(res.Unplaced))
	}
	assertNoOverlap(t, res, DefaultPadding)
}

func TestLayoutOversizedWord(t *testing.T) {
	res, err := newEngine(t, Options{Width: 100, Height: 100, Seed: 1, Rotation: RotateNone}).
		Layout(context.Background(), words.Set{{Label: "Extraordinariamente", Weight: 64}})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Glyphs) != 0 || len(res.Unplaced) != 1 {
		t.Errorf("oversized word should be unplaced, got %+v", res)
	}
}

func TestLayoutOrderAndFiltering(t *testing.T) {
	set := words.Set{
		{Label: "light", Weight: 1},
		{Label: "hidden", Weight: 0},
		{Label: "heavy", Weight: 9},
		{Label: "tieA", Weight: 3},
		{Label: "tieB", Weight: 3},
		{Label: "heavy", Weight: 1},
	}
	res, err := newEngine(t, Options{Seed: 5}).Layout(context.Background(), set)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, g := range res.Glyphs {
		got = append(got, g.Label)
	}
	want := []string{"heavy", "tieA", "tieB", "light"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("placement order = %v, want %v", got, want)
	}
	if g, _ := res.Glyph("heavy"); g.Weight != 9 {
		t.Errorf("duplicate label: kept weight %d, want 9", g.Weight)
	}
	if _, ok := res.Glyph("hidden"); ok {
		t.Error("weight 0 entry was placed")
	}
}

func TestLayoutDeterministicWithSeed(t *testing.T) {
	set := words.Defaults()
	for i := range set {
		set[i].Weight = 1 + i%5
	}
	e := newEngine(t, Options{Seed: 1234})
	a, _ := e.Layout(context.Background(), set)
	b, _ := e.Layout(context.Background(), set)
	if fmt.Sprint(a.Glyphs) != fmt.Sprint(b.Glyphs) {
		t.Error("layouts with the same seed differ")
	}
	if a.Seed != 1234 {
		t.Errorf("Seed = %d, want 1234", a.Seed)
	}
}

func TestLayoutMonotonicAcrossAdds(t *testing.T) {
	e := newEngine(t, Options{Seed: 11})
	prev := 0.0
	for w := 1; w <= 12; w++ {
		res, err := e.Layout(context.Background(), words.Set{{Label: "Beta", Weight: w}})
		if err != nil {
			t.Fatal(err)
		}
		g, ok := res.Glyph("Beta")
		if !ok {
			t.Fatalf("weight %d: Beta not placed", w)
		}
		if g.FontSize < prev {
			t.Fatalf("weight %d: font size %v decreased from %v", w, g.FontSize, prev)
		}
		prev = g.FontSize
	}
}

func TestLayoutCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newEngine(t, Options{}).Layout(ctx, words.Set{{Label: "a", Weight: 1}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestLayoutUsesMeasurer(t *testing.T) {
	var calls int
	m := MeasurerFunc(func(text string, size float64, weight int, family string) (float64, float64) {
		calls++
		if family != "Mono" {
			t.Errorf("family = %q, want Mono", family)
		}
		return 100, 20
	})
	res, err := newEngine(t, Options{Seed: 2, Rotation: Rotate90, FontFamily: "Mono", Measurer: m}).
		Layout(context.Background(), words.Set{{Label: "x", Weight: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("measurer calls = %d, want 1", calls)
	}
	if b := res.Glyphs[0].Box; b.Width() != 20 || b.Height() != 100 {
		t.Errorf("rotated box = %vx%v, want 20x100", b.Width(), b.Height())
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative width", Options{Width: -1}},
		{"huge canvas", Options{Width: 1e6, Height: 10}},
		{"negative step", Options{SpiralStep: -0.1}},
		{"negative growth", Options{SpiralGrowth: -1}},
		{"negative steps", Options{MaxSteps: -5}},
		{"bad rotation", Options{Rotation: Rotation(7)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			if !wcerrors.Is(err, wcerrors.ErrCodeInvalidInput) {
				t.Errorf("New() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestParseRotation(t *testing.T) {
	tests := []struct {
		in      string
		want    Rotation
		wantErr bool
	}{
		{"", RotateRandom, false},
		{"random", RotateRandom, false},
		{"NONE", RotateNone, false},
		{"90", Rotate90, false},
		{"45", RotateRandom, true},
	}
	for _, tt := range tests {
		got, err := ParseRotation(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseRotation(%q) = %v, %v", tt.in, got, err)
		}
		if err == nil && tt.in != "" {
			if back, _ := ParseRotation(got.String()); back != got {
				t.Errorf("String() round trip failed for %v", got)
			}
		}
	}
}

func TestPaddingDisabled(t *testing.T) {
	e := newEngine(t, Options{Padding: -1})
	if e.Options().Padding != -1 {
		t.Fatalf("padding = %v", e.Options().Padding)
	}
	res, err := e.Layout(context.Background(), words.Set{{Label: "a", Weight: 1}, {Label: "b", Weight: 1}})
	if err != nil {
		t.Fatal(err)
	}
	assertNoOverlap(t, res, 0)
}
