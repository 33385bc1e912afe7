package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/kv"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/words"
)

// cachePrefix namespaces artifact keys in a shared store.
const cachePrefix = "artifact"

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  kv.Store
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullStore is used (caching disabled).
func NewRunner(c kv.Store, logger *log.Logger) *Runner {
	if c == nil {
		c = kv.NewNullStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, entries words.Set, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	visible := entries.Dedupe().Visible()
	result := &Result{Artifacts: make(map[string][]byte)}
	result.Stats.Words = len(visible)

	if opts.Cacheable() {
		if artifacts, ok := r.cached(ctx, visible, opts); ok {
			result.Artifacts = artifacts
			result.CacheHit = true
			r.Logger.Debug("artifacts from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	observability.Layout().OnLayoutStart(ctx, 1, len(visible))
	gen, err := GenerateLayout(ctx, 1, visible, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	if err != nil {
		observability.Layout().OnLayoutComplete(ctx, 1, 0, 0, result.Stats.LayoutTime, err)
		return nil, fmt.Errorf("layout: %w", err)
	}
	observability.Layout().OnLayoutComplete(ctx, 1, len(gen.Glyphs), len(gen.Unplaced), result.Stats.LayoutTime, nil)
	result.Generation = gen
	result.Stats.Placed = len(gen.Glyphs)
	result.Stats.Unplaced = len(gen.Unplaced)

	r.Logger.Info("computed layout",
		"placed", result.Stats.Placed,
		"unplaced", result.Stats.Unplaced,
		"seed", gen.Seed,
		"duration", result.Stats.LayoutTime)
	if gen.Overcrowded() {
		r.Logger.Warn("canvas overcrowded", "unplaced", gen.Unplaced)
	}

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, err := Render(gen, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	if opts.Cacheable() {
		r.store(ctx, visible, opts, artifacts)
	}
	return result, nil
}

// Layout runs only the layout stage.
func (r *Runner) Layout(ctx context.Context, entries words.Set, opts Options) (*layout.Generation, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return GenerateLayout(ctx, 1, entries, opts)
}

func (r *Runner) cacheKey(entries words.Set, opts Options, format string) string {
	parts := append(opts.cacheKeyParts(format), fmt.Sprint(entries))
	return kv.HashKey(cachePrefix, parts...)
}

// cached returns artifacts only when every requested format is present.
func (r *Runner) cached(ctx context.Context, entries words.Set, opts Options) (map[string][]byte, bool) {
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, r.cacheKey(entries, opts, format))
		if err != nil || !hit {
			return nil, false
		}
		out[format] = data
	}
	return out, true
}

func (r *Runner) store(ctx context.Context, entries words.Set, opts Options, artifacts map[string][]byte) {
	for format, data := range artifacts {
		if err := r.Cache.Set(ctx, r.cacheKey(entries, opts, format), data, DefaultCacheTTL); err != nil {
			r.Logger.Debug("cache write failed", "format", format, "err", err)
		}
	}
}
