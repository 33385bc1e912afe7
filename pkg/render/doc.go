// Package render paints animated word clouds.
//
// # Overview
//
// The render side of the cloud has two parts:
//
//   - [Loop]: holds the current layout generation and an animation
//     scheduler, and paints one frame per call to [Loop.Frame]
//   - Sinks (in the [sink] subpackage): [Painter] implementations that turn
//     paint operations into SVG, PNG, JSON or a terminal grid
//
// # Generations
//
// Layouts are computed off the render goroutine and handed over with
// [Loop.Publish], which is safe to call from any goroutine. Publishing an
// older generation than the current one is ignored, so the newest layout
// always wins. The next frame notices the change and reseeds the scheduler.
//
//	loop := render.NewLoop(sink.NewTerminal(80, 24))
//	loop.Publish(gen)
//	_ = loop.Run(ctx, 30)
//
// # Clocks
//
// Frames are stamped by a [Clock]. [SystemClock] is the default and
// [ManualClock] gives tests full control over time.
//
// [sink]: github.com/matzehuels/wordcloud/pkg/render/sink
package render
