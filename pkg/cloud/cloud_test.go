package cloud

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/kv"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/weights"
	"github.com/matzehuels/wordcloud/pkg/words"
)

type fixture struct {
	cloud   *Cloud
	store   *weights.Store
	backend kv.Store
	loop    *render.Loop
}

func newFixture(t *testing.T, backend kv.Store, opts Options) *fixture {
	t.Helper()
	if backend == nil {
		backend = kv.NewMemoryStore()
	}
	engine, err := layout.New(layout.Options{Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	store := weights.New(backend, weights.Options{})
	loop := render.NewLoop(nil)
	c := New(store, engine, loop, opts)
	t.Cleanup(c.Close)
	return &fixture{cloud: c, store: store, backend: backend, loop: loop}
}

func TestAddOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, Options{})

	if err := f.cloud.Add(ctx, "Beta"); err != nil {
		t.Fatal(err)
	}
	want := words.Set{{Label: "Beta", Weight: 1}}
	if got := f.cloud.Entries(); !got.Equal(want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
	if got := f.store.Load(ctx); !got.Equal(want) {
		t.Errorf("store.Load() = %v, want %v", got, want)
	}

	f.cloud.Wait()
	gen := f.loop.Current()
	if gen == nil || len(gen.Glyphs) != 1 || gen.Glyphs[0].Label != "Beta" {
		t.Errorf("published generation = %+v", gen)
	}
}

func TestLoadInitialMergesKnownLabels(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryStore()
	_ = backend.Set(ctx, weights.DefaultPrimaryKey, []byte(`[["Custom",2],["Sonho",3]]`), 0)
	f := newFixture(t, backend, Options{})

	if err := f.cloud.LoadInitial(ctx); err != nil {
		t.Fatal(err)
	}
	entries := f.cloud.Entries()
	if len(entries) != len(words.DefaultLabels())+1 {
		t.Errorf("got %d entries, want defaults plus Custom", len(entries))
	}
	if w, _ := entries.Weight("Sonho"); w != 3 {
		t.Errorf("Sonho weight = %d, want 3", w)
	}
	if entries[0].Label != "Custom" {
		t.Errorf("stored order not kept: first = %q", entries[0].Label)
	}
	if v := f.cloud.Visible(); len(v) != 2 {
		t.Errorf("Visible() = %v", v)
	}

	f.cloud.Wait()
	if gen := f.cloud.Latest(); gen == nil || len(gen.Glyphs) != 2 {
		t.Errorf("Latest() = %+v, want 2 glyphs", gen)
	}
}

func TestLoadInitialCorruptStore(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryStore()
	_ = backend.Set(ctx, weights.DefaultPrimaryKey, []byte(`{broken`), 0)
	f := newFixture(t, backend, Options{})

	if err := f.cloud.LoadInitial(ctx); err != nil {
		t.Fatal(err)
	}
	if got := f.cloud.Entries(); !got.Equal(words.Defaults()) {
		t.Errorf("Entries() = %v, want defaults", got)
	}
}

func TestAddCapsAtMaxWeight(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, Options{MaxWeight: 3})
	for range 5 {
		if err := f.cloud.Add(ctx, "Alpha"); err != nil {
			t.Fatal(err)
		}
	}
	if w, _ := f.cloud.Weight("Alpha"); w != 3 {
		t.Errorf("weight = %d, want 3", w)
	}
}

func TestAddMonotonicFontSize(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, Options{})
	prev := 0.0
	for range DefaultMaxWeight + 3 {
		if err := f.cloud.Add(ctx, "Beta"); err != nil {
			t.Fatal(err)
		}
		f.cloud.Wait()
		g, ok := f.cloud.Latest().Glyph("Beta")
		if !ok {
			t.Fatal("Beta not placed")
		}
		if g.FontSize < prev {
			t.Fatalf("font size decreased: %v -> %v", prev, g.FontSize)
		}
		prev = g.FontSize
	}
}

func TestAddInvalidLabel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, Options{})
	for _, label := range []string{"", "   ", "a\nb"} {
		err := f.cloud.Add(ctx, label)
		if !errors.Is(err, errors.ErrCodeInvalidCommand) {
			t.Errorf("Add(%q) = %v, want INVALID_COMMAND", label, err)
		}
	}
	if n := len(f.cloud.Entries()); n != 0 {
		t.Errorf("invalid adds changed state: %d entries", n)
	}
	if f.cloud.Requested() != 0 {
		t.Error("invalid add requested a layout")
	}
}

func TestRemoveKeepsEntryAtZero(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, Options{})
	_ = f.cloud.Add(ctx, "Alpha")
	_ = f.cloud.Add(ctx, "Beta")

	if err := f.cloud.Remove(ctx, "Beta"); err != nil {
		t.Fatal(err)
	}
	want := words.Set{{Label: "Alpha", Weight: 1}, {Label: "Beta", Weight: 0}}
	if got := f.cloud.Entries(); !got.Equal(want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
	if got := f.store.Load(ctx); !got.Equal(want) {
		t.Errorf("stored = %v, want %v", got, want)
	}

	f.cloud.Wait()
	gen := f.cloud.Latest()
	if _, ok := gen.Glyph("Beta"); ok {
		t.Error("Beta at weight 0 was laid out")
	}
	if _, ok := gen.Glyph("Alpha"); !ok {
		t.Error("Alpha missing from layout")
	}

	// Floors at zero without another write.
	before := f.cloud.Requested()
	if err := f.cloud.Remove(ctx, "Beta"); err != nil {
		t.Fatal(err)
	}
	if w, _ := f.cloud.Weight("Beta"); w != 0 {
		t.Errorf("weight = %d, want 0", w)
	}
	if f.cloud.Requested() != before {
		t.Error("no-op remove requested a layout")
	}
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, Options{})
	if err := f.cloud.Remove(ctx, "Nope"); err != nil {
		t.Errorf("Remove(unknown) = %v, want nil", err)
	}
	if _, ok, _ := f.backend.Get(ctx, weights.DefaultPrimaryKey); ok {
		t.Error("no-op remove wrote to the store")
	}
}

func TestResetAllIsNotPersisted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, Options{Known: []string{}})
	_ = f.cloud.Add(ctx, "Alpha")
	_ = f.cloud.Add(ctx, "Alpha")
	_ = f.cloud.Add(ctx, "Beta")
	persisted := words.Set{{Label: "Alpha", Weight: 2}, {Label: "Beta", Weight: 1}}

	if err := f.cloud.ResetAll(ctx); err != nil {
		t.Fatal(err)
	}
	if got := f.cloud.Entries(); !got.Equal(words.Set{{Label: "Alpha"}, {Label: "Beta"}}) {
		t.Errorf("in-memory after reset = %v", got)
	}
	if got := f.store.Load(ctx); !got.Equal(persisted) {
		t.Errorf("reset was persisted: %v", got)
	}
	f.cloud.Wait()
	if gen := f.cloud.Latest(); len(gen.Glyphs) != 0 {
		t.Errorf("layout after reset has %d glyphs", len(gen.Glyphs))
	}

	// The next persisted command writes the full state, reset included.
	_ = f.cloud.Add(ctx, "Beta")
	want := words.Set{{Label: "Alpha", Weight: 0}, {Label: "Beta", Weight: 1}}
	if got := f.store.Load(ctx); !got.Equal(want) {
		t.Errorf("stored after next add = %v, want %v", got, want)
	}
}

func TestResetBaseline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, Options{ResetBaseline: 2, Known: []string{"Alpha"}})
	_ = f.cloud.LoadInitial(ctx)
	_ = f.cloud.ResetAll(ctx)
	for _, e := range f.cloud.Entries() {
		if e.Weight != 2 {
			t.Errorf("%s weight = %d, want 2", e.Label, e.Weight)
		}
	}
}

func TestSaveFailureIsWarning(t *testing.T) {
	ctx := context.Background()
	backend := &flakyStore{Store: kv.NewMemoryStore()}
	f := newFixture(t, backend, Options{})

	backend.fail(true)
	err := f.cloud.Add(ctx, "Alpha")
	if !errors.Is(err, errors.ErrCodeStorageUnavailable) || !errors.IsWarning(err) {
		t.Fatalf("Add with failing store = %v, want STORAGE_UNAVAILABLE", err)
	}
	if w, _ := f.cloud.Weight("Alpha"); w != 1 {
		t.Errorf("in-memory weight = %d, want 1", w)
	}
	f.cloud.Wait()
	if _, ok := f.cloud.Latest().Glyph("Alpha"); !ok {
		t.Error("layout not requested after failed save")
	}

	backend.fail(false)
	if err := f.cloud.Add(ctx, "Beta"); err != nil {
		t.Fatal(err)
	}
	want := words.Set{{Label: "Alpha", Weight: 1}, {Label: "Beta", Weight: 1}}
	if got := f.store.Load(ctx); !got.Equal(want) {
		t.Errorf("next save wrote %v, want full state %v", got, want)
	}
}

func TestDropIsAdd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, Options{})
	_ = f.cloud.Drop(ctx, "Sonho")
	_ = f.cloud.Drop(ctx, "Sonho")
	if w, _ := f.cloud.Weight("Sonho"); w != 2 {
		t.Errorf("weight = %d, want 2", w)
	}
}

func TestReplaceAndClear(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, Options{Known: []string{"Known"}})

	err := f.cloud.Replace(ctx, words.Set{{Label: "A", Weight: 50}, {Label: "B", Weight: 1}, {Label: "A", Weight: 2}})
	if err != nil {
		t.Fatal(err)
	}
	want := words.Set{{Label: "A", Weight: DefaultMaxWeight}, {Label: "B", Weight: 1}, {Label: "Known"}}
	if got := f.cloud.Entries(); !got.Equal(want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}

	if err := f.cloud.Replace(ctx, words.Set{{Label: ""}}); !errors.Is(err, errors.ErrCodeInvalidCommand) {
		t.Errorf("Replace with empty label = %v", err)
	}

	if err := f.cloud.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := f.backend.Get(ctx, weights.DefaultPrimaryKey); ok {
		t.Error("Clear left the stored set")
	}
	if got := f.cloud.Entries(); len(got.Visible()) != 0 || len(got) != len(words.DefaultLabels())+1 {
		t.Errorf("Entries() after Clear = %v", got)
	}
}

func TestLastWriteWins(t *testing.T) {
	ctx := context.Background()
	var mu sync.Mutex
	var published []uint64
	pub := PublisherFunc(func(g *layout.Generation) bool {
		mu.Lock()
		defer mu.Unlock()
		published = append(published, g.ID)
		return true
	})
	engine, _ := layout.New(layout.Options{Seed: 1})
	c := New(weights.New(kv.NewMemoryStore(), weights.Options{}), engine, pub, Options{})
	defer c.Close()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Add(ctx, []string{"Alpha", "Beta", "Gamma", "Delta"}[i%4])
		}()
	}
	wg.Wait()
	c.Wait()

	latest := c.Latest()
	if latest == nil || latest.ID != c.Requested() {
		t.Fatalf("latest = %v, want generation %d", latest, c.Requested())
	}
	mu.Lock()
	defer mu.Unlock()
	seen := make(map[uint64]bool, len(published))
	var newest uint64
	for _, id := range published {
		if seen[id] {
			t.Fatalf("generation %d published twice: %v", id, published)
		}
		seen[id] = true
		newest = max(newest, id)
	}
	if newest != latest.ID {
		t.Errorf("newest published generation = %d, want %d", newest, latest.ID)
	}
	total := 0
	for _, g := range latest.Glyphs {
		total += g.Weight
	}
	if total != 20 {
		t.Errorf("newest layout holds weight %d, want 20", total)
	}
}

func TestCommandsDoNotWaitForLayout(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	slow := layout.MeasurerFunc(func(text string, size float64, weight int, family string) (float64, float64) {
		<-release
		return 10, 10
	})
	engine, _ := layout.New(layout.Options{Seed: 1, Measurer: slow})
	c := New(weights.New(kv.NewMemoryStore(), weights.Options{}), engine, nil, Options{})

	done := make(chan error, 1)
	go func() { done <- c.Add(ctx, "Alpha") }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Add blocked on layout")
	}
	close(release)
	c.Close()
}

// flakyStore fails every Set while failing is on.
type flakyStore struct {
	kv.Store
	mu      sync.Mutex
	failing bool
}

func (s *flakyStore) fail(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = on
}

func (s *flakyStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	s.mu.Lock()
	failing := s.failing
	s.mu.Unlock()
	if failing {
		return stderrors.New("disk full")
	}
	return s.Store.Set(ctx, key, data, ttl)
}
