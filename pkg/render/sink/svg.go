package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/feedscope/pkg/cloud"
)

// Category10 is d3's ten-color categorical palette.
var Category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// DefaultFontFamily is the font stack written into SVG output.
const DefaultFontFamily = cloud.GoRegularFamily + ", Helvetica, Arial, sans-serif"

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette    []string
	fontFamily string
	background string
	title      string
}

// WithPalette sets the fill colors, cycled by placement index.
// An empty palette keeps the default.
func WithPalette(colors []string) SVGOption {
	return func(r *svgRenderer) {
		if len(colors) > 0 {
			r.palette = colors
		}
	}
}

func WithFontFamily(family string) SVGOption { return func(r *svgRenderer) { r.fontFamily = family } }
func WithBackground(color string) SVGOption  { return func(r *svgRenderer) { r.background = color } }
func WithTitle(title string) SVGOption       { return func(r *svgRenderer) { r.title = title } }

// RenderSVG draws the placed words of res.
func RenderSVG(res *cloud.Result, opts ...SVGOption) []byte {
	r := svgRenderer{palette: Category10, fontFamily: DefaultFontFamily}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		res.Width, res.Height, res.Width, res.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	fmt.Fprintf(&buf, `  <g font-family="%s" text-anchor="middle" dominant-baseline="central">`+"\n", escapeXML(r.fontFamily))
	i := 0
	for _, it := range res.Items {
		if !it.Placed {
			continue
		}
		color := r.palette[i%len(r.palette)]
		fmt.Fprintf(&buf, `    <text x="%.2f" y="%.2f" font-size="%.2f" fill="%s">%s</text>`+"\n",
			it.X, it.Y, it.FontSize, escapeXML(color), escapeXML(it.Text))
		i++
	}
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
