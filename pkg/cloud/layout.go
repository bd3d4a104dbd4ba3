package cloud

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/feedscope/pkg/feedback"
	"github.com/matzehuels/feedscope/pkg/geom"
)

// Item is one word of a layout. X and Y are the center of its box in canvas
// coordinates. Position fields are zero when Placed is false.
type Item struct {
	Text     string  `json:"text"`
	Weight   int     `json:"weight"`
	FontSize float64 `json:"fontSize"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	Placed   bool    `json:"placed"`
}

// Rect returns the box of the item.
func (it Item) Rect() geom.Rect {
	r := geom.NewRect(it.X, it.Y, it.Width, it.Height)
	r.Rotation = it.Rotation
	return r
}

// Result is a computed word cloud.
type Result struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding float64 `json:"padding"`
	// Items holds every input word in placement order, dropped ones included.
	Items []Item `json:"items"`
}

// Placed returns the items that found a position.
func (r *Result) Placed() []Item {
	return r.filter(true)
}

// Dropped returns the items that exhausted their attempt budget.
func (r *Result) Dropped() []Item {
	return r.filter(false)
}

func (r *Result) filter(placed bool) []Item {
	out := []Item{}
	for _, it := range r.Items {
		if it.Placed == placed {
			out = append(out, it)
		}
	}
	return out
}

// Layout places words on the canvas described by opts. It returns an
// INVALID_CONFIG error, before placing anything, when opts fail
// [Options.Validate]. Otherwise it always succeeds; words that cannot be
// placed are reported with Placed = false.
func Layout(words []feedback.Keyword, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	sorted := slices.Clone(words)
	slices.SortStableFunc(sorted, func(a, b feedback.Keyword) int {
		return cmp.Compare(b.Count, a.Count)
	})

	res := &Result{
		Width:   opts.Width,
		Height:  opts.Height,
		Padding: opts.Padding,
		Items:   make([]Item, 0, len(sorted)),
	}
	placed := make([]geom.Rect, 0, len(sorted))
	cx, cy := opts.Width/2, opts.Height/2

	for _, w := range sorted {
		size := opts.FontSize(w.Count)
		bw, bh := opts.Measurer.Measure(w.Word, size)
		measurable := validExtent(bw) && validExtent(bh)
		if !measurable {
			bw, bh = 0, 0
		}
		item := Item{
			Text:     w.Word,
			Weight:   w.Count,
			FontSize: size,
			Width:    bw,
			Height:   bh,
			Rotation: opts.Rotation,
		}
		if !measurable {
			res.Items = append(res.Items, item)
			continue
		}
		if box, ok := place(geom.NewRect(cx, cy, bw, bh), placed, opts); ok {
			item.X, item.Y, item.Placed = box.CX, box.CY, true
			placed = append(placed, box)
		}
		res.Items = append(res.Items, item)
	}
	return res, nil
}

// validExtent reports whether a measured side can take part in overlap tests.
func validExtent(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// place walks the spiral from the canvas center and returns the first
// candidate that clears every placed box.
func place(origin geom.Rect, placed []geom.Rect, opts Options) (geom.Rect, bool) {
	for k := range opts.MaxAttempts {
		p := opts.Spiral.Point(k)
		cand := origin.Translate(p.X, p.Y)
		if opts.EnforceBounds && !cand.Within(opts.Width, opts.Height) {
			continue
		}
		if collides(cand, placed, opts.Padding) {
			continue
		}
		return cand, true
	}
	return geom.Rect{}, false
}

func collides(r geom.Rect, placed []geom.Rect, padding float64) bool {
	for _, p := range placed {
		if geom.Overlaps(r, p, padding) {
			return true
		}
	}
	return false
}
