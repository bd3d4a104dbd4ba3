package geom

import (
	"iter"
	"math"
)

// Default spiral parameters. With a step radius of 2π the radius in pixels
// equals the angle traversed in radians, the classic archimedean spiral used
// by d3-cloud.
const (
	DefaultStepAngle  = 0.1
	DefaultStepRadius = 2 * math.Pi
)

// Point is a 2D offset from the spiral origin.
type Point struct {
	X, Y float64
}

// Spiral is an Archimedean spiral centered at the origin. Point k lies at
// angle k·StepAngle with a radius that grows by StepRadius per revolution.
type Spiral struct {
	StepAngle  float64
	StepRadius float64
}

// DefaultSpiral returns a spiral with [DefaultStepAngle] and [DefaultStepRadius].
func DefaultSpiral() Spiral {
	return Spiral{StepAngle: DefaultStepAngle, StepRadius: DefaultStepRadius}
}

// Point returns the k-th point of the spiral. It depends only on k, so any
// prefix of the sequence can be regenerated exactly. Point(0) is the origin.
func (s Spiral) Point(k int) Point {
	theta := float64(k) * s.StepAngle
	r := s.radiusAt(theta)
	return Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// Radius returns the distance of the k-th point from the origin.
func (s Spiral) Radius(k int) float64 {
	return s.radiusAt(float64(k) * s.StepAngle)
}

func (s Spiral) radiusAt(theta float64) float64 {
	return s.StepRadius * theta / (2 * math.Pi)
}

// Points returns the infinite sequence Point(0), Point(1), ...
// Ranging over it again restarts from the origin. Callers must stop
// consuming it themselves.
func (s Spiral) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for k := 0; ; k++ {
			if !yield(s.Point(k)) {
				return
			}
		}
	}
}

// MaxSteps caps [Spiral.StepsToRadius].
const MaxSteps = 1 << 20

// StepsToRadius returns the smallest k for which Radius(k) >= r, capped at
// [MaxSteps]. It returns 0 for non-positive or NaN r or a degenerate spiral.
func (s Spiral) StepsToRadius(r float64) int {
	if !(r > 0) || s.StepAngle <= 0 || s.StepRadius <= 0 {
		return 0
	}
	perStep := s.StepRadius * s.StepAngle / (2 * math.Pi)
	steps := math.Ceil(r / perStep)
	if !(steps < MaxSteps) {
		return MaxSteps
	}
	return int(steps)
}
