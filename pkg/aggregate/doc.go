// Package aggregate computes the chart-driving statistics of a feedback dataset.
//
// # Views
//
// Five independent views are provided, each a pure function of its input:
//
//   - [CategoryCount]: multi-label category frequencies, most frequent first
//   - [SentimentDistribution]: occurrences of each sentiment label
//   - [MonthlyDeviceTrend]: records per YYYY-MM month, split by device
//   - [RatingDistributionByDevice]: star buckets 1–5 per device
//   - [TopKeywords]: the N most frequent keywords, stable on ties
//
// [Summarize] adds the headline figures (total, average rating, sentiment
// ratios, overall star histogram) and [Compute] bundles everything into a
// [Report].
//
// # Ordering
//
// Wherever labels are counted, the output keeps the order in which each label
// was first seen in the input. Sorted views use a stable sort on top of that
// order, so equal counts are always broken by first appearance.
//
// # Anomalies
//
// Per-record problems never fail a call. Unparseable dates are skipped by the
// trend, ratings outside 1–5 are clamped into the nearest bucket, and records
// without a sentiment are left out of the distribution. Each view returns the
// tally next to its result and [Report.Anomalies] collects them.
package aggregate
