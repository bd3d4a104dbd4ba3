// Package pkg provides the core libraries for feedscope feedback analysis.
//
// # Overview
//
// Feedscope turns a dataset of classified user feedback into aggregate
// views (category, sentiment, rating and trend breakdowns plus keyword
// frequencies) and lays the most frequent keywords out as a word cloud.
//
// # Architecture
//
// The typical data flow:
//
//	feedback.json
//	     ↓
//	[io] package (decode and normalize the dataset)
//	     ↓
//	[aggregate] package (report over all records)
//	     ↓
//	[cloud] package (spiral word placement)
//	     ↓
//	[render/sink] package (SVG/PNG/PDF/JSON output)
//
// [pipeline] ties the stages together with caching and hooks, and
// [insight] sends a report to a remote text-generation service.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/feedscope/pkg/aggregate"
//	    "github.com/matzehuels/feedscope/pkg/cloud"
//	    "github.com/matzehuels/feedscope/pkg/io"
//	    "github.com/matzehuels/feedscope/pkg/render/sink"
//	)
//
//	d, _ := io.ImportDataset("feedback.json")
//	rep := aggregate.Compute(*d, aggregate.Options{})
//	res, _ := cloud.Layout(rep.TopKeywords, cloud.Options{Width: 600, Height: 400})
//	svg := sink.RenderSVG(res)
//
// # Main Packages
//
//   - [feedback]: records, datasets and keywords
//   - [aggregate]: counting and distribution functions
//   - [geom]: rectangles and the placement spiral
//   - [cloud]: word-cloud layout and text measurement
//   - [render]: SVG conversion and output sinks
//   - [pipeline]: staged execution with caching
//   - [cache]: file, Redis and null caches
//   - [insight]: client for the insight-generation service
//   - [errors]: coded errors shared by CLI and API
//   - [observability]: hook registry for metrics and tracing
package pkg
