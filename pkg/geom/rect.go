package geom

import "github.com/matzehuels/feedscope/pkg/errors"

// Rect is an axis-aligned box described by its center and half extents.
//
// Rotation is carried for forward compatibility only. Every current caller
// places text unrotated and [Rect.Validate] rejects any other value.
type Rect struct {
	CX, CY       float64
	HalfW, HalfH float64
	Rotation     float64
}

// NewRect builds an unrotated box centered at (cx, cy) with the given full size.
func NewRect(cx, cy, w, h float64) Rect {
	return Rect{CX: cx, CY: cy, HalfW: w / 2, HalfH: h / 2}
}

// Left returns the minimum x coordinate of the box.
func (r Rect) Left() float64 { return r.CX - r.HalfW }

// Right returns the maximum x coordinate of the box.
func (r Rect) Right() float64 { return r.CX + r.HalfW }

// Top returns the minimum y coordinate of the box.
func (r Rect) Top() float64 { return r.CY - r.HalfH }

// Bottom returns the maximum y coordinate of the box.
func (r Rect) Bottom() float64 { return r.CY + r.HalfH }

// Width returns the horizontal span of the box.
func (r Rect) Width() float64 { return 2 * r.HalfW }

// Height returns the vertical span of the box.
func (r Rect) Height() float64 { return 2 * r.HalfH }

// Translate returns the box moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.CX += dx
	r.CY += dy
	return r
}

// Within reports whether the box lies entirely inside the canvas [0,w]×[0,h].
// Boxes touching the canvas edge are inside.
func (r Rect) Within(w, h float64) bool {
	return r.Left() >= 0 && r.Top() >= 0 && r.Right() <= w && r.Bottom() <= h
}

// Validate reports an UNSUPPORTED error for rotated boxes.
func (r Rect) Validate() error {
	if r.Rotation != 0 {
		return errors.New(errors.ErrCodeUnsupported, "rotation %v is not supported, only 0", r.Rotation)
	}
	return nil
}

// Overlaps reports whether a and b intersect once each half extent is inflated
// by padding/2. The test is strict: boxes whose inflated edges exactly touch
// do not overlap. Overlaps(a, b, p) == Overlaps(b, a, p) for all inputs.
//
// Both boxes must be unrotated; rotation is ignored.
func Overlaps(a, b Rect, padding float64) bool {
	return abs(a.CX-b.CX) < a.HalfW+b.HalfW+padding &&
		abs(a.CY-b.CY) < a.HalfH+b.HalfH+padding
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
