package cloud

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/weights"
	"github.com/matzehuels/wordcloud/pkg/words"
)

// Defaults for Options.
const (
	DefaultMaxWeight     = 12
	DefaultResetBaseline = 0
)

// Publisher receives finished layouts. render.Loop implements it.
type Publisher interface {
	Publish(gen *layout.Generation) bool
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(gen *layout.Generation) bool

// Publish calls f.
func (f PublisherFunc) Publish(gen *layout.Generation) bool { return f(gen) }

// Options configures a Cloud.
type Options struct {
	MaxWeight     int // Add never raises a weight above this (default 12)
	ResetBaseline int // Weight set by ResetAll (default 0)

	// Known labels are merged into the loaded set at weight 0 so menus can
	// list them. Nil means words.DefaultLabels(); an empty slice merges none.
	Known []string

	Logger *log.Logger
}

// Cloud is safe for concurrent use.
type Cloud struct {
	store  *weights.Store
	engine *layout.Engine
	pub    Publisher
	opts   Options
	logger *log.Logger

	mu      sync.Mutex // serializes commands, including their saves
	entries words.Set

	requested atomic.Uint64
	latest    atomic.Pointer[layout.Generation]

	layoutMu     sync.Mutex
	cancelLayout context.CancelFunc
	wg           sync.WaitGroup
}

// New returns a Cloud with an empty word set. Call LoadInitial to read the
// store. A nil pub discards layouts; Latest still reports them.
func New(store *weights.Store, engine *layout.Engine, pub Publisher, opts Options) *Cloud {
	if opts.MaxWeight <= 0 {
		opts.MaxWeight = DefaultMaxWeight
	}
	if opts.ResetBaseline < 0 {
		opts.ResetBaseline = 0
	}
	opts.ResetBaseline = min(opts.ResetBaseline, opts.MaxWeight)
	if opts.Known == nil {
		opts.Known = words.DefaultLabels()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if pub == nil {
		pub = PublisherFunc(func(*layout.Generation) bool { return true })
	}
	return &Cloud{
		store:   store,
		engine:  engine,
		pub:     pub,
		opts:    opts,
		logger:  opts.Logger,
		entries: words.Set{},
	}
}

// LoadInitial replaces the in-memory set with the stored one, merged with the
// known labels, and requests a layout. Loading never fails.
func (c *Cloud) LoadInitial(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = c.store.Load(ctx).Merge(c.opts.Known)
	c.logger.Info("words loaded", "entries", len(c.entries), "visible", len(c.entries.Visible()),
		"source", c.store.LastLoad().Source)
	observability.Command().OnCommand(ctx, "load", "", nil)
	c.relayoutLocked()
	return nil
}

// Add increments label's weight, creating it at 1 and capping at MaxWeight.
func (c *Cloud) Add(ctx context.Context, label string) (err error) {
	defer func() { observability.Command().OnCommand(ctx, "add", label, err) }()
	if err := errors.ValidateLabel(label); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.entries.Index(label)
	switch {
	case i < 0:
		c.entries = append(c.entries, words.Entry{Label: label, Weight: 1})
	case c.entries[i].Weight >= c.opts.MaxWeight:
		c.logger.Debug("weight at maximum", "label", label, "weight", c.entries[i].Weight)
		return nil
	default:
		c.entries[i].Weight++
	}
	c.logger.Debug("add", "label", label, "weight", c.weightLocked(label))
	return c.commitLocked(ctx)
}

// Drop handles a word dropped on the canvas. It is equivalent to Add.
func (c *Cloud) Drop(ctx context.Context, label string) error {
	return c.Add(ctx, label)
}

// Remove decrements label's weight, stopping at 0. The entry is kept so it
// stays listed. Unknown labels are ignored.
func (c *Cloud) Remove(ctx context.Context, label string) (err error) {
	defer func() { observability.Command().OnCommand(ctx, "remove", label, err) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.entries.Index(label)
	if i < 0 || c.entries[i].Weight == 0 {
		return nil
	}
	c.entries[i].Weight--
	c.logger.Debug("remove", "label", label, "weight", c.entries[i].Weight)
	return c.commitLocked(ctx)
}

// ResetAll sets every weight to the baseline without persisting.
func (c *Cloud) ResetAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.entries {
		c.entries[i].Weight = c.opts.ResetBaseline
	}
	c.logger.Debug("reset", "baseline", c.opts.ResetBaseline, "entries", len(c.entries))
	observability.Command().OnCommand(ctx, "reset", "", nil)
	c.relayoutLocked()
	return nil
}

// Replace swaps in a whole new set, persists it and requests a layout.
// Weights above MaxWeight are capped and repeated labels dropped.
func (c *Cloud) Replace(ctx context.Context, set words.Set) (err error) {
	defer func() { observability.Command().OnCommand(ctx, "replace", "", err) }()
	for _, e := range set {
		if err := errors.ValidateLabel(e.Label); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := set.Dedupe()
	for i := range next {
		next[i].Weight = max(0, min(next[i].Weight, c.opts.MaxWeight))
	}
	c.entries = next.Merge(c.opts.Known)
	return c.commitLocked(ctx)
}

// Clear deletes the stored set and returns the in-memory set to the defaults.
func (c *Cloud) Clear(ctx context.Context) (err error) {
	defer func() { observability.Command().OnCommand(ctx, "clear", "", err) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.store.Clear(ctx)
	c.entries = words.Defaults().Merge(c.opts.Known)
	c.relayoutLocked()
	return err
}

// Entries returns a snapshot of every entry, including weight 0.
func (c *Cloud) Entries() words.Set {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Clone()
}

// Visible returns a snapshot of the entries that take part in layout.
func (c *Cloud) Visible() words.Set {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Visible()
}

// Weight returns the weight of label.
func (c *Cloud) Weight(label string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Weight(label)
}

// Latest returns the newest layout that was not superseded, or nil.
func (c *Cloud) Latest() *layout.Generation {
	return c.latest.Load()
}

// Requested returns the newest requested generation number.
func (c *Cloud) Requested() uint64 {
	return c.requested.Load()
}

// Wait blocks until no layout is running.
func (c *Cloud) Wait() {
	c.wg.Wait()
}

// Close cancels any running layout and waits for it.
func (c *Cloud) Close() {
	c.layoutMu.Lock()
	if c.cancelLayout != nil {
		c.cancelLayout()
	}
	c.layoutMu.Unlock()
	c.wg.Wait()
}

func (c *Cloud) weightLocked(label string) int {
	w, _ := c.entries.Weight(label)
	return w
}

// commitLocked persists the full set and requests a layout. A save failure
// is returned after the layout was requested.
func (c *Cloud) commitLocked(ctx context.Context) error {
	err := c.store.Save(ctx, c.entries)
	c.relayoutLocked()
	return err
}

// relayoutLocked starts a background layout of the visible entries.
func (c *Cloud) relayoutLocked() {
	snapshot := c.entries.Visible()
	gen := c.requested.Add(1)

	ctx, cancel := context.WithCancel(context.Background())
	c.layoutMu.Lock()
	if c.cancelLayout != nil {
		c.cancelLayout()
	}
	c.cancelLayout = cancel
	c.layoutMu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()
		c.runLayout(ctx, gen, snapshot)
	}()
}

func (c *Cloud) runLayout(ctx context.Context, gen uint64, set words.Set) {
	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, gen, len(set))
	start := time.Now()

	res, err := c.engine.Layout(ctx, set)
	hooks.OnLayoutComplete(ctx, gen, len(res.Glyphs), len(res.Unplaced), time.Since(start), err)
	if err != nil {
		if ctx.Err() == nil {
			c.logger.Warn("layout failed", "generation", gen, "err", err)
		}
		return
	}

	if cur := c.requested.Load(); cur != gen {
		hooks.OnLayoutDiscarded(ctx, gen, cur)
		return
	}

	next := layout.NewGeneration(gen, res)
	for {
		old := c.latest.Load()
		if !next.Newer(old) {
			hooks.OnLayoutDiscarded(ctx, gen, old.ID)
			return
		}
		if c.latest.CompareAndSwap(old, next) {
			break
		}
	}
	if res.Overcrowded() {
		c.logger.Debug("canvas overcrowded", "generation", gen, "unplaced", len(res.Unplaced))
	}
	c.pub.Publish(next)
}
