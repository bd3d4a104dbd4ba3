// Package cloud places weighted words on a canvas without overlap.
//
// # Algorithm
//
// [Layout] is a greedy spiral placement in the style of d3-cloud:
//
//  1. Words are stable-sorted by weight, heaviest first.
//  2. Each word gets a font size from [Options.FontSize] and a box from
//     [Options.Measurer].
//  3. Candidate centers are taken from an Archimedean spiral around the canvas
//     center. The first candidate whose padded box clears every placed box
//     (and, with bounds on, lies inside the canvas) is accepted.
//  4. A word that finds no position within [Options.MaxAttempts] candidates is
//     dropped. Dropped words stay in the result with Placed = false.
//
// Placement is deterministic: the same words and options always produce the
// same result.
//
// # Measurement
//
// The layout only needs box sizes. [EstimateMeasurer] approximates them from
// the rune count, which keeps the engine free of font data. [FontMeasurer]
// measures with a real OpenType face and is what the CLI uses by default.
package cloud
