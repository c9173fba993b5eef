package frechet

import (
	"testing"

	"github.com/tdewolff/test"
)

func event(a, b Vector, eps float64) *Traversal {
	return NewTraversal(GridPoint{Point: a}, GridPoint{Point: b}, []Vector{a, b}, []float64{eps, eps})
}

func TestCriticalEvents(t *testing.T) {
	ces := &CriticalEvents{}
	test.T(t, ces.Len(), 0)
	test.T(t, len(ces.Get(1.0)), 0)

	e1 := event(Vector{1.0, 1.0}, Vector{1.0, 2.0}, 2.0)
	e2 := event(Vector{2.0, 1.0}, Vector{2.0, 1.0}, 1.0)
	e3 := event(Vector{3.0, 3.0}, Vector{3.0, 4.0}, 2.0+1e-14)
	e4 := event(Vector{0.0, 0.0}, Vector{0.0, 1.0}, 3.0)
	ces.Add(e1, nil, e2, e3)
	ces.Add(e4)

	test.T(t, ces.Len(), 3)
	test.T(t, ces.Epsilons(), []float64{1.0, 2.0, 3.0})
	test.T(t, ces.Get(2.0), []*Traversal{e1, e3})
	test.T(t, ces.Get(2.0+1e-14), []*Traversal{e1, e3})
	test.T(t, len(ces.Get(2.5)), 0)
	test.T(t, ces.List(), []*Traversal{e2, e1, e3, e4})

	test.T(t, ces.InEpsilonBound(Interval{1.5, 3.0}).List(), []*Traversal{e1, e3, e4})
	test.T(t, ces.RemoveEpsilon(2.0).List(), []*Traversal{e2, e4})
	test.T(t, ces.RemoveEpsilon(2.0).Len(), 2)

	// strictly between excludes events touching the corners
	test.T(t, ces.Between(Vector{0.0, 0.0}, Vector{3.0, 4.0}).List(), []*Traversal{e2, e1})
	test.T(t, ces.Within(Vector{0.0, 0.0}, Vector{3.0, 4.0}).List(), []*Traversal{e2, e1, e3, e4})
	test.T(t, ces.Within(Vector{1.0, 1.0}, Vector{2.0, 2.0}).List(), []*Traversal{e2, e1})

	other := &CriticalEvents{}
	e5 := event(Vector{4.0, 4.0}, Vector{4.0, 5.0}, 0.5)
	other.Add(e5)
	merged := ces.Merge(other)
	test.T(t, merged.Len(), 4)
	test.T(t, merged.Epsilons()[0], 0.5)
	test.T(t, ces.Len(), 3)
}
