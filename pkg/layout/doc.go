// Package layout places weighted words on a fixed canvas without overlaps.
//
// # Algorithm
//
// [Engine.Layout] is a greedy spiral packer:
//
//  1. Every entry's weight maps to a font size via [FontSize], a log-compressed
//     curve capped at [MaxFontSize], and the size maps to a font weight bucket
//     via [FontWeightFor].
//  2. Entries are sorted by descending weight (stable, so ties keep input
//     order). The largest words pick their spot first.
//  3. Each word gets a rotation (0 or 90 degrees) from the seeded random
//     source and is measured with the configured [Measurer].
//  4. Starting at the canvas center the engine walks an Archimedean spiral,
//     stretched to the canvas aspect ratio, and tests the padded box against
//     every placed box and the canvas bounds. The first free point wins.
//  5. A word that finds no space within [Options.MaxSteps] samples is reported
//     in [Result.Unplaced]. This is not an error.
//
// # Coordinates
//
// Glyph positions and boxes are relative to the canvas center with y growing
// downwards, so a canvas of width W and height H spans [-W/2, W/2] x
// [-H/2, H/2]. [Glyph.CanvasX] and [Glyph.CanvasY] convert to top-left origin.
//
// # Determinism
//
// With a non-zero [Options.Seed] layouts are reproducible. With seed 0 each
// call draws a fresh seed, which is recorded in [Result.Seed].
package layout
