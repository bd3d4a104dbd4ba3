// Package feedback defines the classified feedback records consumed by the
// aggregation and layout engines.
//
// Records are produced by an upstream classifier that has already assigned a
// rating, device, category labels, sentiment and keywords. This package only
// validates and normalizes them at the boundary; it never re-derives any of
// the classified fields.
//
// # Validation
//
// [Dataset.Normalize] rejects structurally broken input (non-finite ratings,
// negative keyword counts, empty keyword words, control characters in labels)
// and fills an empty device with [UnknownDevice]. Semantic anomalies such as an
// unparseable date or a rating outside 1–5 are left in place: the engines in
// package aggregate skip or clamp them and report the tally.
package feedback
