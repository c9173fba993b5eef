package frechet

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestCrossSection(t *testing.T) {
	// distance from (2,1) to the points of a path along the x-axis with a bend upwards
	p, err := NewPath("P", []Vector{{0.0, 0.0}, {4.0, 0.0}, {4.0, 4.0}})
	test.Error(t, err)

	cs := NewCrossSection(p, Vector{2.0, 1.0})
	test.T(t, len(cs.Hyperbolas), 2)
	test.T(t, cs.Hyperbolas[0], NewHyperbola(Vector{2.0, 1.0}))
	test.T(t, cs.Hyperbolas[1], NewHyperbola(Vector{5.0, 2.0}))

	test.T(t, cs.InteriorMinima(), []float64{2.0, 5.0})
	test.T(t, len(cs.BorderMinima()), 0)
	test.T(t, cs.Maxima(false), []float64{0.0, 4.0, 8.0})
	test.That(t, cs.IsMinimum(2.0))
	test.That(t, cs.IsMaximum(4.0, false))
	test.That(t, !cs.IsMaximum(2.0, true))

	// the path end is the nearest point
	cs = NewCrossSection(p, Vector{-1.0, 0.0})
	test.T(t, len(cs.InteriorMinima()), 0)
	test.T(t, cs.BorderMinima(), []float64{0.0})
	test.T(t, cs.Maxima(false), []float64{8.0})

	// the point lies on the bend of the path
	q, err := NewPath("Q", []Vector{{0.0, 0.0}, {2.0, 0.0}, {4.0, 2.0}})
	test.Error(t, err)
	cs = NewCrossSection(q, Vector{2.0, 0.0})
	test.T(t, cs.BorderMinima(), []float64{2.0})
	test.That(t, cs.IsMaximum(0.0, false))
}
