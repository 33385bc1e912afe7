// Package pkg provides the core libraries for the wordcloud application.
//
// # Overview
//
// Wordcloud keeps a durable set of weighted words, packs the visible ones onto
// a fixed canvas along a spiral, and animates the placed words with slow drift
// and glow. The pkg directory is organized into four areas:
//
//  1. Domain model and persistence ([words], [weights], [kv])
//  2. Placement and motion ([layout], [anim], [fonts])
//  3. Presentation ([render], [render/sink], [pipeline])
//  4. Orchestration and surfaces ([cloud], [server], [config])
//
// # Architecture
//
// The data flow through wordcloud:
//
//	command (add, remove, reset, drop)
//	         ↓
//	    [cloud] (mutate weights, persist, request layout)
//	         ↓                        ↓
//	    [weights] → [kv]         [layout] (background, newest wins)
//	                                  ↓
//	                             [render] loop ← [anim] scheduler
//	                                  ↓
//	                      SVG / PNG / JSON / terminal
//
// # Quick Start
//
// Lay out a set of words and write an SVG:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/wordcloud/pkg/layout"
//	    "github.com/matzehuels/wordcloud/pkg/render/sink"
//	    "github.com/matzehuels/wordcloud/pkg/words"
//	)
//
//	engine, _ := layout.New(layout.Options{Width: 900, Height: 600, Seed: 42})
//	res, _ := engine.Layout(context.Background(), words.Set{
//	    {Label: "Futuro", Weight: 4},
//	    {Label: "Ideia", Weight: 2},
//	})
//	svg := sink.RenderSVG(layout.NewGeneration(1, res), nil)
//
// # Main Packages
//
// ## Domain and Persistence
//
// [words] - Entries, sets and the default vocabulary. The durable form is a
// JSON array of [label, weight] pairs.
//
// [weights] - The weight store: load from a primary key with a fallback key,
// structural validation, corrupt data recovered as defaults, retried saves.
//
// [kv] - Byte-level storage backends: file (atomic rename), memory, Redis,
// MongoDB and a null store.
//
// ## Placement and Motion
//
// [layout] - Spiral packing of words by weight with rotation policies and
// collision checks. Results are wrapped as numbered generations.
//
// [anim] - Per-word animation channels (drift, glow, alpha) as chains of
// eased segments that restart with fresh random targets.
//
// [fonts] - Embedded Go fonts for measuring text and drawing PNG frames.
//
// ## Presentation
//
// [render] - The render loop: holds the newest published generation, samples
// animation frames and hands paint operations to a painter.
//
// [render/sink] - Painters for SVG, PNG, JSON and a terminal character grid.
//
// [pipeline] - One-shot words → layout → artifacts with an artifact cache.
//
// ## Orchestration
//
// [cloud] - The command surface: add, remove, reset, replace and clear with
// persistence and background relayout.
//
// [server] - HTTP API over a cloud and its render loop.
//
// [config] - TOML settings and backend selection.
//
// [observability] - Hooks for layout, store and command events.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/layout/...     # Specific package
//	go test -run Example ./...   # Examples only
//
// [words]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/words
// [weights]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/weights
// [kv]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/kv
// [layout]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/layout
// [anim]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/anim
// [fonts]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/fonts
// [render]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/pipeline
// [cloud]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/cloud
// [server]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/errors
package pkg
