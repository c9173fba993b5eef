package frechet

import (
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestEqual(t *testing.T) {
	var tts = []struct {
		a, b  float64
		equal bool
	}{
		{1.0, 1.0, true},
		{1.0, 1.0 + 1e-14, true},
		{0.0, 1e-12, false},
		{1.0, 1.0 + 1e-8, false},
		{1e6, 1e6 + 1e-4, true},
		{math.Inf(1), math.Inf(1), true},
		{math.Inf(1), math.Inf(-1), false},
		{math.Inf(1), 1e300, false},
		{math.NaN(), math.NaN(), false},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, Equal(tt.a, tt.b), tt.equal)
			test.T(t, Equal(tt.b, tt.a), tt.equal)
		})
	}
	test.That(t, lessEqual(1.0+1e-14, 1.0))
	test.That(t, !lessEqual(1.1, 1.0))
}

func TestSolveQuadraticFormula(t *testing.T) {
	var tts = []struct {
		a, b, c float64
		x1, x2  float64
	}{
		{1.0, -3.0, 2.0, 1.0, 2.0},
		{1.0, 3.0, 2.0, -2.0, -1.0},
		{2.0, 0.0, -8.0, -2.0, 2.0},
		{1.0, -2.0, 1.0, 1.0, math.NaN()},
		{0.0, 2.0, -4.0, 2.0, math.NaN()},
		{1.0, 0.0, 1.0, math.NaN(), math.NaN()},
		{0.0, 0.0, 1.0, math.NaN(), math.NaN()},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			x1, x2 := solveQuadraticFormula(tt.a, tt.b, tt.c)
			if math.IsNaN(tt.x1) {
				test.That(t, math.IsNaN(x1), "x1 =", x1)
			} else {
				test.Float(t, x1, tt.x1)
			}
			if math.IsNaN(tt.x2) {
				test.That(t, math.IsNaN(x2), "x2 =", x2)
			} else {
				test.Float(t, x2, tt.x2)
			}
		})
	}
}

func TestVector(t *testing.T) {
	v := Vector{3.0, 4.0}
	test.Float(t, v.Length(), 5.0)
	test.Float(t, v.Dist(Vector{0.0, 0.0}), 5.0)
	test.T(t, v.Swap(), Vector{4.0, 3.0})
	test.T(t, v.Rot90CW(), Vector{4.0, -3.0})
	test.T(t, v.Rot90CCW(), Vector{-4.0, 3.0})
	test.Float(t, v.Dot(Vector{1.0, 1.0}), 7.0)
	test.Float(t, v.PerpDot(Vector{1.0, 0.0}), -4.0)
	test.T(t, v.Norm(), Vector{0.6, 0.8})
	test.T(t, Vector{}.Norm(), Vector{})
	test.T(t, Vector{-3.0, 4.0}.NormDir(), Vector{0.6, 0.8})
	test.T(t, v.Interpolate(Vector{5.0, 0.0}, 0.5), Vector{4.0, 2.0})

	test.That(t, Vector{1.0, 2.0}.Monotone())
	test.That(t, Vector{-1.0, -2.0}.Monotone())
	test.That(t, Vector{0.0, -2.0}.Monotone())
	test.That(t, !Vector{1.0, -2.0}.Monotone())

	test.That(t, Vector{0.0, 0.0}.Precedes(Vector{1.0, 0.0}))
	test.That(t, !Vector{0.0, 1.0}.Precedes(Vector{1.0, 0.0}))
	test.That(t, Vector{1.0, 1.0}.Equals(Vector{1.0 + 1e-14, 1.0}))
	test.That(t, Vector{math.NaN(), 0.0}.IsNaN())

	test.T(t, Vector{2.0, -1.0}.Clamp(Interval{0.0, 1.0}, Interval{0.0, 1.0}), Vector{1.0, 0.0})
	test.That(t, Vector{1.0, 0.5}.In(Interval{0.0, 1.0}, Interval{0.0, 1.0}))
	test.That(t, !Vector{1.1, 0.5}.In(Interval{0.0, 1.0}, Interval{0.0, 1.0}))
}

func TestInterval(t *testing.T) {
	test.That(t, EmptyInterval().IsEmpty())
	test.That(t, Interval{1.0, 0.0}.IsEmpty())
	test.That(t, !Interval{1.0, 1.0}.IsEmpty())
	test.That(t, Interval{1.0, 1.0}.IsPoint())
	test.T(t, IntervalFrom([]float64{3.0, -1.0, 2.0}), Interval{-1.0, 3.0})
	test.That(t, IntervalFrom(nil).IsEmpty())

	iv := Interval{0.0, 2.0}
	test.Float(t, iv.Length(), 2.0)
	test.Float(t, iv.Middle(), 1.0)
	test.Float(t, EmptyInterval().Length(), 0.0)
	test.Float(t, iv.Bound(-1), 0.0)
	test.Float(t, iv.Bound(1), 2.0)
	test.Float(t, iv.Clamp(3.0), 2.0)
	test.T(t, iv.Offset(1.0), Interval{1.0, 3.0})
	test.T(t, iv.Filter([]float64{-1.0, 0.0, 1.0, 2.0 + 1e-14, 3.0}), []float64{0.0, 1.0, 2.0 + 1e-14})
	test.String(t, iv.String(), "[0,2]")
	test.String(t, EmptyInterval().String(), "[]")

	var tts = []struct {
		x        float64
		contains bool
	}{
		{0.0, true},
		{1.0, true},
		{-1e-14, true},
		{2.0 + 1e-14, true},
		{-0.1, false},
		{math.NaN(), false},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, iv.Contains(tt.x), tt.contains)
		})
	}
	test.That(t, !EmptyInterval().Contains(0.0))
}

func TestIntervalCut(t *testing.T) {
	var tts = []struct {
		a, b      Interval
		cut       Interval
		reachable Interval
	}{
		{Interval{0.0, 2.0}, Interval{1.0, 3.0}, Interval{1.0, 2.0}, Interval{1.0, 3.0}},
		{Interval{1.0, 3.0}, Interval{0.0, 2.0}, Interval{1.0, 2.0}, Interval{1.0, 2.0}},
		{Interval{0.0, 1.0}, Interval{1.0, 2.0}, Interval{1.0, 1.0}, Interval{1.0, 2.0}},
		{Interval{2.0, 3.0}, Interval{0.0, 2.0}, Interval{2.0, 2.0}, Interval{2.0, 2.0}},
		{Interval{0.0, 1.0}, Interval{2.0, 3.0}, EmptyInterval(), Interval{2.0, 3.0}},
		{Interval{3.0, 4.0}, Interval{0.0, 2.0}, EmptyInterval(), EmptyInterval()},
		{EmptyInterval(), Interval{0.0, 2.0}, EmptyInterval(), EmptyInterval()},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, tt.a.Cut(tt.b), tt.cut)
			test.T(t, tt.a.Reachable(tt.b), tt.reachable)
		})
	}
}
