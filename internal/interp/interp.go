// Package interp evaluates piecewise-linear curves over measured anchor points.
package interp

import (
	"math"
	"sort"

	"github.com/Simplici0/cabinetry/internal/model"
)

// Point is one (x, y) control point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Above decides what a curve returns past its last anchor.
type Above int

const (
	// Clamp returns the last anchor's y.
	Clamp Above = iota
	// Extrapolate continues the slope of the last two anchors.
	Extrapolate
)

// Curve is a piecewise-linear curve. Points need not be sorted.
//
// Below the first anchor the curve clamps to the first y, unless BelowFactor is
// positive: then it continues the slope of the first two anchors scaled by
// BelowFactor, never dropping under zero.
type Curve struct {
	Points      []Point
	Above       Above
	BelowFactor float64
}

// Interpolate evaluates a clamped curve at x. An empty anchor set yields 0.
func Interpolate(points []Point, x float64) float64 {
	return Curve{Points: points}.At(x)
}

// At evaluates the curve at x.
func (c Curve) At(x float64) float64 {
	pts := sorted(c.Points)
	n := len(pts)
	if n == 0 {
		return 0
	}
	x = model.Finite(x)

	first, last := pts[0], pts[n-1]
	if x <= first.X {
		if c.BelowFactor > 0 && n >= 2 && x < first.X {
			y := first.Y - (first.X-x)*slope(first, pts[1])*c.BelowFactor
			return math.Max(0, y)
		}
		return first.Y
	}
	if x >= last.X {
		if c.Above == Extrapolate && n >= 2 {
			return model.Finite(last.Y + (x-last.X)*slope(pts[n-2], last))
		}
		return last.Y
	}

	i := sort.Search(n, func(i int) bool { return pts[i].X >= x })
	lo, hi := pts[i-1], pts[i]
	if hi.X == lo.X {
		return lo.Y
	}
	return lo.Y + (x-lo.X)/(hi.X-lo.X)*(hi.Y-lo.Y)
}

func slope(a, b Point) float64 {
	if b.X == a.X {
		return 0
	}
	return (b.Y - a.Y) / (b.X - a.X)
}

func sorted(points []Point) []Point {
	if sort.SliceIsSorted(points, func(i, j int) bool { return points[i].X < points[j].X }) {
		return points
	}
	out := make([]Point, len(points))
	copy(out, points)
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}
