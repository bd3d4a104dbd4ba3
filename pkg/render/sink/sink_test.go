package sink

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/matzehuels/feedscope/pkg/cloud"
)

func sampleResult() *cloud.Result {
	return &cloud.Result{
		Width:   200,
		Height:  100,
		Padding: 5,
		Items: []cloud.Item{
			{Text: "fast", Weight: 9, FontSize: 40, X: 100, Y: 50, Width: 96, Height: 40, Placed: true},
			{Text: "<b>&co", Weight: 4, FontSize: 30, X: 40, Y: 20, Width: 120, Height: 30, Placed: true},
			{Text: "dropped", Weight: 1, FontSize: 20, Width: 84, Height: 20},
		},
	}
}

func TestRenderSVG(t *testing.T) {
	out := string(RenderSVG(sampleResult()))

	if !strings.HasPrefix(out, "<svg") {
		t.Fatalf("output does not start with <svg: %q", out[:min(20, len(out))])
	}
	if got := strings.Count(out, "<text "); got != 2 {
		t.Errorf("text elements = %d, want 2", got)
	}
	if strings.Contains(out, "dropped") {
		t.Error("dropped words must not be drawn")
	}
	if !strings.Contains(out, "&lt;b&gt;&amp;co") {
		t.Error("word text not escaped")
	}
	if !strings.Contains(out, Category10[0]) || !strings.Contains(out, Category10[1]) {
		t.Error("default palette not applied")
	}
	if !strings.Contains(out, `viewBox="0 0 200.0 100.0"`) {
		t.Error("viewBox does not match canvas")
	}

	var doc struct{ XMLName xml.Name }
	if err := xml.Unmarshal([]byte(out), &doc); err != nil {
		t.Errorf("output is not well-formed XML: %v", err)
	}
}

func TestRenderSVGOptions(t *testing.T) {
	out := string(RenderSVG(sampleResult(),
		WithPalette([]string{"#010101"}),
		WithBackground("#fafafa"),
		WithTitle("Top keywords"),
		WithFontFamily("serif"),
	))

	if strings.Count(out, `fill="#010101"`) != 2 {
		t.Error("single-color palette should be cycled")
	}
	for _, want := range []string{`fill="#fafafa"`, "<title>Top keywords</title>", `font-family="serif"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s", want)
		}
	}

	out = string(RenderSVG(sampleResult(), WithPalette(nil)))
	if !strings.Contains(out, Category10[0]) {
		t.Error("empty palette should keep the default")
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(sampleResult(), WithJSONRunID("run-1"), WithJSONPalette([]string{"#111", "#222"}))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Width != 200 || out.Height != 100 {
		t.Errorf("size = %vx%v, want 200x100", out.Width, out.Height)
	}
	if out.Placed != 2 || out.Dropped != 1 {
		t.Errorf("placed/dropped = %d/%d, want 2/1", out.Placed, out.Dropped)
	}
	if out.RunID != "run-1" {
		t.Errorf("RunID = %q, want run-1", out.RunID)
	}
	if len(out.Items) != 3 || out.Items[1].Color != "#222" || out.Items[2].Color != "" {
		t.Errorf("items = %+v", out.Items)
	}
	if out.Items[0].Text != "fast" || !out.Items[0].Placed {
		t.Errorf("first item = %+v", out.Items[0])
	}
}
