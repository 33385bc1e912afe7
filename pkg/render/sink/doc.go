// Package sink provides drawing sinks for word cloud frames.
//
// # Overview
//
// A sink is a [render.Painter]: it receives the paint operations of one
// frame between Begin and End and turns them into an output format:
//
//   - SVG: scalable vector output with a blur filter per glow radius
//   - PNG: raster output drawn with the embedded Go fonts
//   - JSON: layout and frame data for external tools
//   - Terminal: a character grid for the interactive player
//
// SVG and PNG also measure text, so they satisfy [render.Surface].
//
// # One-shot rendering
//
// For a single frame of a generation use the Render helpers:
//
//	svg := sink.RenderSVG(gen, frames, sink.WithEmbeddedFont())
//	png, err := sink.RenderPNG(gen, frames, sink.WithScale(2))
//	js, err := sink.RenderJSON(gen, frames)
//
// Passing nil frames renders every word at rest.
//
// [render.Painter]: github.com/matzehuels/wordcloud/pkg/render.Painter
// [render.Surface]: github.com/matzehuels/wordcloud/pkg/render.Surface
package sink
