// Package sink provides output format renderers for word-cloud layouts.
//
// # Overview
//
// A "sink" transforms a computed [cloud.Result] into a final output format:
//
//   - SVG: one <text> element per placed word
//   - JSON: layout data export for external tools, dropped words included
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster image output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] draws every placed word centered on its box, at its font size,
// colored from a palette by placement index. Dropped words are not drawn.
//
//	svg := sink.RenderSVG(result,
//	    sink.WithPalette([]string{"#333", "#c00"}),
//	    sink.WithBackground("#fff"),
//	)
//
// The default palette is d3's category10.
//
// # JSON Output
//
// [RenderJSON] exports the layout with placed and dropped counts so that a
// front end can draw the cloud itself.
//
// [cloud.Result]: github.com/matzehuels/feedscope/pkg/cloud.Result
package sink
