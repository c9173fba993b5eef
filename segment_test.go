package frechet

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestLineSegment(t *testing.T) {
	ls := segment(Vector{0.0, 0.0}, Vector{2.0, 2.0})
	test.Float(t, ls.M, 1.0)
	test.Float(t, ls.N, 0.0)
	test.Float(t, ls.L, 2.0*math.Sqrt2)
	test.Float(t, ls.Fx(1.0), 1.0)
	test.Float(t, ls.Fy(1.5), 1.5)
	test.Float(t, ls.Rx(1.0), 0.5)
	test.Float(t, ls.RPoint(Vector{1.0, 1.0}), 0.5)
	test.Float(t, ls.RlPoint(Vector{1.0, 1.0}), math.Sqrt2)
	test.T(t, ls.Fr(0.25), Vector{0.5, 0.5})

	test.That(t, ls.ContainsPoint(Vector{1.0, 1.0}))
	test.That(t, ls.ContainsPoint(Vector{2.0, 2.0}))
	test.That(t, !ls.ContainsPoint(Vector{3.0, 3.0}))
	test.That(t, ls.On(Vector{3.0, 3.0}))
	test.That(t, ls.Above(Vector{0.0, 1.0}))
	test.That(t, ls.Below(Vector{1.0, 0.0}))
	test.That(t, ls.Left(Vector{0.0, 1.0}))
	test.That(t, ls.Right(Vector{1.0, 0.0}))
	test.That(t, !ls.Above(Vector{1.0, 1.0}))

	p := ls.Project(Vector{0.0, 2.0})
	test.Float(t, p.X, 1.0)
	test.Float(t, p.Y, 1.0)
	test.Float(t, ls.ProjectRl(Vector{0.0, 2.0}), math.Sqrt2)
	test.Float(t, ls.DistLine(Vector{0.0, 2.0}), math.Sqrt2)
	test.Float(t, ls.DistPoint(Vector{-1.0, -1.0}), math.Sqrt2)
	test.Float(t, ls.DistPoint(Vector{3.0, 3.0}), math.Sqrt2)
	test.Float(t, ls.DistPoint(Vector{0.0, 2.0}), math.Sqrt2)

	v := segment(Vector{1.0, 0.0}, Vector{1.0, 2.0})
	test.That(t, v.IsVertical())
	test.That(t, math.IsNaN(v.Fx(1.0)))
	test.Float(t, v.Fy(5.0), 1.0)
	test.Float(t, v.RPoint(Vector{1.0, 1.5}), 0.75)

	_, err := NewLineSegment(Vector{1.0, 1.0}, Vector{1.0, 1.0})
	test.That(t, errors.Is(err, ErrDegenerate))
}

func TestLineSegmentIntersection(t *testing.T) {
	var tts = []struct {
		a, b LineSegment
		ok   bool
		p    Vector
	}{
		{segment(Vector{0.0, 0.0}, Vector{2.0, 2.0}), segment(Vector{0.0, 2.0}, Vector{2.0, 0.0}), true, Vector{1.0, 1.0}},
		{segment(Vector{0.0, 0.0}, Vector{1.0, 0.0}), segment(Vector{3.0, -1.0}, Vector{3.0, 1.0}), true, Vector{3.0, 0.0}},
		{segment(Vector{0.0, 0.0}, Vector{1.0, 0.0}), segment(Vector{0.0, 1.0}, Vector{1.0, 1.0}), false, Vector{}},
		{segment(Vector{0.0, 0.0}, Vector{1.0, 1.0}), segment(Vector{1.0, 0.0}, Vector{2.0, 1.0}), false, Vector{}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			p, ok := tt.a.Intersection(tt.b)
			test.T(t, ok, tt.ok)
			if ok {
				test.Float(t, p.X, tt.p.X)
				test.Float(t, p.Y, tt.p.Y)
			}
		})
	}

	r, s, ok := segment(Vector{0.0, 0.0}, Vector{2.0, 2.0}).IntersectionR(segment(Vector{0.0, 2.0}, Vector{2.0, 0.0}))
	test.That(t, ok)
	test.Float(t, r, 0.5)
	test.Float(t, s, 0.5)
}

func TestLineSegmentCutRect(t *testing.T) {
	var tts = []struct {
		ls   LineSegment
		x, y Interval
		rs   []float64
	}{
		{segment(Vector{0.0, 0.0}, Vector{1.0, 1.0}), Interval{0.0, 2.0}, Interval{0.0, 1.0}, []float64{0.0, 1.0}},
		{segment(Vector{0.0, 0.5}, Vector{1.0, 0.5}), Interval{0.0, 2.0}, Interval{0.0, 1.0}, []float64{0.0, 2.0}},
		{segment(Vector{0.0, 3.0}, Vector{1.0, 3.0}), Interval{0.0, 2.0}, Interval{0.0, 1.0}, nil},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, tt.ls.CutRect(tt.x, tt.y), tt.rs)
		})
	}
}

func TestHyperbolaWithLine(t *testing.T) {
	// parallel segments keep a constant distance
	h, ok := segment(Vector{0.0, 0.0}, Vector{2.0, 0.0}).HyperbolaWithLine(segment(Vector{0.0, 1.0}, Vector{2.0, 1.0}))
	test.That(t, ok)
	test.Float(t, h.A, 0.0)
	test.Float(t, h.Fx(0.0), 1.0)
	test.Float(t, h.Fx(2.0), 1.0)

	// perpendicular segments from a shared point
	h, ok = segment(Vector{0.0, 0.0}, Vector{1.0, 0.0}).HyperbolaWithLine(segment(Vector{0.0, 0.0}, Vector{0.0, 1.0}))
	test.That(t, ok)
	test.Float(t, h.A, 1.0)
	test.Float(t, h.S.X, 0.0)
	test.Float(t, h.S.Y, 0.0)
	test.Float(t, h.Fx(math.Sqrt2), math.Sqrt2)

	h = segment(Vector{0.0, 0.0}, Vector{2.0, 0.0}).HyperbolaWithPoint(Vector{1.0, 1.0})
	test.T(t, h, Hyperbola{Vector{1.0, 1.0}, 1.0})
}
