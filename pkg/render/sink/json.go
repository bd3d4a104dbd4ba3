package sink

import (
	"encoding/json"

	"github.com/matzehuels/feedscope/pkg/cloud"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	runID   string
	palette []string
}

// WithJSONRunID records the pipeline run that produced the layout.
func WithJSONRunID(id string) JSONOption { return func(r *jsonRenderer) { r.runID = id } }

// WithJSONPalette assigns each placed item a color the same way [RenderSVG]
// does, so front ends can match the SVG output.
func WithJSONPalette(colors []string) JSONOption {
	return func(r *jsonRenderer) { r.palette = colors }
}

type jsonOutput struct {
	RunID   string     `json:"runId,omitempty"`
	Width   float64    `json:"width"`
	Height  float64    `json:"height"`
	Padding float64    `json:"padding"`
	Placed  int        `json:"placed"`
	Dropped int        `json:"dropped"`
	Items   []jsonItem `json:"items"`
}

type jsonItem struct {
	cloud.Item
	Color string `json:"color,omitempty"`
}

// RenderJSON exports res as indented JSON.
func RenderJSON(res *cloud.Result, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		RunID:   r.runID,
		Width:   res.Width,
		Height:  res.Height,
		Padding: res.Padding,
		Items:   make([]jsonItem, len(res.Items)),
	}
	for i, it := range res.Items {
		out.Items[i] = jsonItem{Item: it}
		if !it.Placed {
			out.Dropped++
			continue
		}
		if len(r.palette) > 0 {
			out.Items[i].Color = r.palette[out.Placed%len(r.palette)]
		}
		out.Placed++
	}
	return json.MarshalIndent(out, "", "  ")
}
