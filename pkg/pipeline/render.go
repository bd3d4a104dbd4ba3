package pipeline

import (
	"github.com/matzehuels/feedscope/pkg/cloud"
	"github.com/matzehuels/feedscope/pkg/errors"
	"github.com/matzehuels/feedscope/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
func Render(res *cloud.Result, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(res, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(res, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(res, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(res, buildJSONOptions(opts)...)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(codeOr(err, errors.ErrCodeInternal), err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithPalette(opts.Palette)}
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	if opts.FontFamily != "" {
		svgOpts = append(svgOpts, sink.WithFontFamily(opts.FontFamily))
	}
	return svgOpts
}

func buildJSONOptions(opts Options) []sink.JSONOption {
	palette := opts.Palette
	if len(palette) == 0 {
		palette = sink.Category10
	}
	return []sink.JSONOption{sink.WithJSONPalette(palette)}
}

// codeOr returns the code of err, or fallback when err carries none.
func codeOr(err error, fallback errors.Code) errors.Code {
	if code := errors.GetCode(err); code != "" {
		return code
	}
	return fallback
}
