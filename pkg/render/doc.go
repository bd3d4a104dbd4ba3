// Package render converts rendered SVG documents into other formats.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). The word-cloud sinks in
// [sink] use them for their PNG and PDF output:
//
//	svg := sink.RenderSVG(result)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// When rsvg-convert is not installed both functions return an UNSUPPORTED
// error with installation hints. SVG and JSON output never need it.
//
// [sink]: github.com/matzehuels/feedscope/pkg/render/sink
package render
