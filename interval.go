package frechet

import (
	"fmt"
	"math"
)

// Interval is a closed interval [Start,End] on the real line. An interval with Start > End is empty. Membership and cutting are tolerant to Tolerance.
type Interval struct {
	Start, End float64
}

// EmptyInterval returns the canonical empty interval.
func EmptyInterval() Interval {
	return Interval{math.Inf(1), math.Inf(-1)}
}

// IntervalFrom returns the smallest interval containing all xs, or an empty interval if xs is empty.
func IntervalFrom(xs []float64) Interval {
	if len(xs) == 0 {
		return EmptyInterval()
	}
	iv := Interval{xs[0], xs[0]}
	for _, x := range xs[1:] {
		iv.Start = math.Min(iv.Start, x)
		iv.End = math.Max(iv.End, x)
	}
	return iv
}

// IsEmpty returns true if the interval holds no points.
func (iv Interval) IsEmpty() bool {
	return iv.End < iv.Start || math.IsNaN(iv.Start) || math.IsNaN(iv.End)
}

// IsPoint returns true if the interval is a single point.
func (iv Interval) IsPoint() bool {
	return !iv.IsEmpty() && Equal(iv.Start, iv.End)
}

// Length returns End-Start, or zero for empty intervals.
func (iv Interval) Length() float64 {
	if iv.IsEmpty() {
		return 0.0
	}
	return iv.End - iv.Start
}

// Middle returns the center of a non-empty interval.
func (iv Interval) Middle() float64 {
	return iv.Start + 0.5*(iv.End-iv.Start)
}

// Bound returns Start for a negative or zero direction and End for a positive direction.
func (iv Interval) Bound(direction int) float64 {
	if direction <= 0 {
		return iv.Start
	}
	return iv.End
}

// Contains returns true if x lies in the interval or is about equal to one of its ends.
func (iv Interval) Contains(x float64) bool {
	if iv.IsEmpty() || math.IsNaN(x) {
		return false
	}
	return iv.Start <= x && x <= iv.End || Equal(iv.Start, x) || Equal(iv.End, x)
}

// Cut returns the intersection of both intervals. Ends that are about equal collapse to a point.
func (iv Interval) Cut(o Interval) Interval {
	start := math.Max(iv.Start, o.Start)
	end := math.Min(iv.End, o.End)
	if Equal(start, end) {
		return Interval{start, start}
	} else if end < start {
		return EmptyInterval()
	}
	return Interval{start, end}
}

// Reachable returns the part of o that can be reached monotonically from any point in iv, ie. the points of o that are not below iv.Start.
func (iv Interval) Reachable(o Interval) Interval {
	if iv.IsEmpty() || o.IsEmpty() {
		return EmptyInterval()
	}
	return Interval{math.Max(iv.Start, o.Start), o.End}.Cut(o)
}

// Clamp clamps x into the interval.
func (iv Interval) Clamp(x float64) float64 {
	return math.Max(iv.Start, math.Min(iv.End, x))
}

// Filter returns the values of xs that lie in the interval.
func (iv Interval) Filter(xs []float64) []float64 {
	var ys []float64
	for _, x := range xs {
		if iv.Contains(x) {
			ys = append(ys, x)
		}
	}
	return ys
}

// Offset moves the interval by d.
func (iv Interval) Offset(d float64) Interval {
	return Interval{iv.Start + d, iv.End + d}
}

func (iv Interval) String() string {
	if iv.IsEmpty() {
		return "[]"
	}
	return fmt.Sprintf("[%g,%g]", iv.Start, iv.End)
}
