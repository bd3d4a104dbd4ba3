package cloud

import (
	"math"

	"github.com/matzehuels/feedscope/pkg/errors"
	"github.com/matzehuels/feedscope/pkg/geom"
)

// DefaultPadding is the gap in pixels kept between placed boxes.
const DefaultPadding = 5

const (
	// MaxCanvasSize is the largest accepted canvas width or height.
	MaxCanvasSize = 10000

	// MaxAttemptsLimit is the largest accepted per-word attempt budget.
	MaxAttemptsLimit = geom.MaxSteps
)

// FontSizeFunc maps a word weight to a font size. It must be monotonic
// non-decreasing so that heavier words never render smaller.
type FontSizeFunc func(weight int) float64

// DefaultFontSize is 10 + sqrt(weight)*10. Negative weights are treated as 0.
func DefaultFontSize(weight int) float64 {
	return 10 + math.Sqrt(float64(max(weight, 0)))*10
}

// Options configures [Layout].
type Options struct {
	Width, Height float64
	Padding       float64

	// MaxAttempts is the number of spiral candidates tried per word.
	MaxAttempts int

	// Rotation is applied to every word. Only 0 is supported.
	Rotation float64

	// EnforceBounds rejects candidates that leave the canvas.
	EnforceBounds bool

	FontSize FontSizeFunc
	Measurer Measurer
	Spiral   geom.Spiral
}

// DefaultOptions returns options for a w×h canvas with the default font size,
// estimate measurer, spiral and an attempt budget from [AutoAttempts].
func DefaultOptions(w, h float64) Options {
	s := geom.DefaultSpiral()
	return Options{
		Width:         w,
		Height:        h,
		Padding:       DefaultPadding,
		MaxAttempts:   AutoAttempts(w, h, s),
		EnforceBounds: true,
		FontSize:      DefaultFontSize,
		Measurer:      DefaultEstimateMeasurer(),
		Spiral:        s,
	}
}

// AutoAttempts returns the number of spiral steps needed to reach the canvas
// half-diagonal. Past that radius every candidate center is outside the
// canvas, so further attempts can never succeed with bounds enforced.
// It returns 0 for a degenerate canvas or spiral and never exceeds
// [MaxAttemptsLimit].
func AutoAttempts(w, h float64, s geom.Spiral) int {
	if !(w > 0) || !(h > 0) {
		return 0
	}
	return min(s.StepsToRadius(math.Hypot(w, h)/2)+1, MaxAttemptsLimit)
}

// Validate checks the options. Every failure is an INVALID_CONFIG error.
func (o Options) Validate() error {
	switch {
	case !finite(o.Width) || o.Width <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "canvas width must be positive, got %v", o.Width)
	case !finite(o.Height) || o.Height <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "canvas height must be positive, got %v", o.Height)
	case o.Width > MaxCanvasSize || o.Height > MaxCanvasSize:
		return errors.New(errors.ErrCodeInvalidConfig, "canvas %vx%v exceeds the maximum of %d per side", o.Width, o.Height, MaxCanvasSize)
	case !finite(o.Padding) || o.Padding < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "padding must be a non-negative number, got %v", o.Padding)
	case o.MaxAttempts <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "max attempts must be positive, got %d", o.MaxAttempts)
	case o.MaxAttempts > MaxAttemptsLimit:
		return errors.New(errors.ErrCodeInvalidConfig, "max attempts must not exceed %d, got %d", MaxAttemptsLimit, o.MaxAttempts)
	case !finite(o.Spiral.StepAngle) || o.Spiral.StepAngle <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "spiral step angle must be positive, got %v", o.Spiral.StepAngle)
	case !finite(o.Spiral.StepRadius) || o.Spiral.StepRadius <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "spiral step radius must be positive, got %v", o.Spiral.StepRadius)
	case o.FontSize == nil:
		return errors.New(errors.ErrCodeInvalidConfig, "font size function is required")
	case o.Measurer == nil:
		return errors.New(errors.ErrCodeInvalidConfig, "measurer is required")
	}
	if err := (geom.Rect{Rotation: o.Rotation}).Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid rotation")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
