package frechet

import (
	"sort"
)

type eventBucket struct {
	epsilon    float64
	traversals []*Traversal
}

// CriticalEvents is a registry of critical traversals keyed by their epsilon. Epsilons that are about equal share a key. The zero value is an empty registry.
type CriticalEvents struct {
	buckets []eventBucket // sorted by epsilon
}

// search returns the index of the first bucket with an epsilon not below eps, and whether it is about equal to eps.
func (ces *CriticalEvents) search(eps float64) (int, bool) {
	i := sort.Search(len(ces.buckets), func(i int) bool {
		return eps <= ces.buckets[i].epsilon || Equal(eps, ces.buckets[i].epsilon)
	})
	return i, i < len(ces.buckets) && Equal(eps, ces.buckets[i].epsilon)
}

// Add registers traversals under their epsilon.
func (ces *CriticalEvents) Add(ts ...*Traversal) {
	for _, t := range ts {
		if t == nil {
			continue
		}
		i, ok := ces.search(t.Epsilon)
		if !ok {
			ces.buckets = append(ces.buckets, eventBucket{})
			copy(ces.buckets[i+1:], ces.buckets[i:])
			ces.buckets[i] = eventBucket{epsilon: t.Epsilon}
		}
		ces.buckets[i].traversals = append(ces.buckets[i].traversals, t)
	}
}

// Merge returns a registry with the events of both.
func (ces *CriticalEvents) Merge(o *CriticalEvents) *CriticalEvents {
	r := &CriticalEvents{}
	r.Add(ces.List()...)
	r.Add(o.List()...)
	return r
}

// Len returns the number of distinct epsilons.
func (ces *CriticalEvents) Len() int {
	return len(ces.buckets)
}

// Epsilons returns the distinct epsilons in increasing order.
func (ces *CriticalEvents) Epsilons() []float64 {
	epss := make([]float64, len(ces.buckets))
	for i, b := range ces.buckets {
		epss[i] = b.epsilon
	}
	return epss
}

// Get returns the traversals with an epsilon about equal to eps.
func (ces *CriticalEvents) Get(eps float64) []*Traversal {
	if i, ok := ces.search(eps); ok {
		return ces.buckets[i].traversals
	}
	return nil
}

// List returns all traversals ordered by epsilon.
func (ces *CriticalEvents) List() []*Traversal {
	var ts []*Traversal
	for _, b := range ces.buckets {
		ts = append(ts, b.traversals...)
	}
	return ts
}

func (ces *CriticalEvents) filter(keep func(*Traversal) bool) *CriticalEvents {
	r := &CriticalEvents{}
	for _, b := range ces.buckets {
		var ts []*Traversal
		for _, t := range b.traversals {
			if keep(t) {
				ts = append(ts, t)
			}
		}
		if 0 < len(ts) {
			r.buckets = append(r.buckets, eventBucket{b.epsilon, ts})
		}
	}
	return r
}

// InEpsilonBound returns the events with an epsilon in bound.
func (ces *CriticalEvents) InEpsilonBound(bound Interval) *CriticalEvents {
	return ces.filter(func(t *Traversal) bool { return bound.Contains(t.Epsilon) })
}

// RemoveEpsilon returns the events with an epsilon other than eps.
func (ces *CriticalEvents) RemoveEpsilon(eps float64) *CriticalEvents {
	return ces.filter(func(t *Traversal) bool { return !Equal(t.Epsilon, eps) })
}

// Between returns the events that lie in the rectangle from a to b and touch neither a nor b.
func (ces *CriticalEvents) Between(a, b Vector) *CriticalEvents {
	return ces.filter(func(t *Traversal) bool {
		return a.Precedes(t.Start.Point) && t.End.Point.Precedes(b) && !a.Equals(t.Start.Point) && !b.Equals(t.End.Point)
	})
}

// Within returns the events that lie in the rectangle from a to b, including those starting at a or ending at b.
func (ces *CriticalEvents) Within(a, b Vector) *CriticalEvents {
	return ces.filter(func(t *Traversal) bool {
		return a.Precedes(t.Start.Point) && t.End.Point.Precedes(b)
	})
}

// Critical returns the smallest registered epsilon at which b is reachable from a, together with the events at that epsilon that lie on a feasible walk from a to b. It returns false if there is no such event.
func (ces *CriticalEvents) Critical(m *CellMatrix, a, b GridPoint) (float64, []*Traversal, bool) {
	if len(ces.buckets) == 0 {
		return 0.0, nil, false
	}

	// first epsilon for which the decision flips to feasible, or the largest epsilon if none is
	lo, hi := 0, len(ces.buckets)-1
	for lo+1 < hi {
		mid := lo + (hi-lo)/2
		if m.DecideTraversal(a, b, ces.buckets[mid].epsilon) {
			hi = mid
		} else {
			lo = mid
		}
	}
	i := hi
	if m.DecideTraversal(a, b, ces.buckets[lo].epsilon) {
		i = lo
	}

	eps := ces.buckets[i].epsilon
	var ts []*Traversal
	for _, t := range ces.buckets[i].traversals {
		if m.DecideTraversal(a, t.Start, eps) && m.DecideTraversal(t.End, b, eps) {
			ts = append(ts, t)
		}
	}
	if len(ts) == 0 {
		return 0.0, nil, false
	}
	return eps, ts, true
}
