package frechet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
)

// traverser synthesizes the traversals between two grid points recursively. Every sub-problem is either solved directly by a steepest descent from both ends, or split at the critical events that bound its epsilon.
type traverser struct {
	ctx      context.Context
	m        *CellMatrix
	log      *zap.Logger
	maxDepth int
	maxAlt   int
}

// traverse returns the traversals from the start to the end of the diagram, ordered by epsilon.
func (m *CellMatrix) traverse(ctx context.Context) ([]*Traversal, error) {
	tr := &traverser{
		ctx:      ctx,
		m:        m,
		log:      m.log,
		maxDepth: m.opts.MaxDepth,
		maxAlt:   max(1, m.opts.MaxAlternatives),
	}
	if tr.maxDepth <= 0 {
		tr.maxDepth = DefaultOptions.MaxDepth
	}

	ts, err := tr.recurse(m.Start(), m.Events, m.End(), 0)
	if err != nil && !exhausted(err) && !errors.Is(err, ErrRecursionLimit) {
		return nil, err
	}
	if ts = compact(admissible(ts, m.epsilon)); len(ts) == 0 {
		t, ok := m.walk(m.Start(), m.End(), m.epsilon)
		if !ok || t == nil {
			return nil, fmt.Errorf("traversal %v->%v at %g: %w", m.Start(), m.End(), m.epsilon, ErrSearchExhausted)
		}
		m.log.Warn("traversal synthesis fell back to the reachable free space",
			zap.Float64("epsilon", m.epsilon), zap.Error(err))
		ts = []*Traversal{t}
	}
	sort.SliceStable(ts, func(i, j int) bool {
		return ts[i].Epsilon < ts[j].Epsilon && !Equal(ts[i].Epsilon, ts[j].Epsilon)
	})
	return ts, nil
}

// compact removes empty traversals.
func compact(ts []*Traversal) []*Traversal {
	us := ts[:0]
	for _, t := range ts {
		if t != nil {
			us = append(us, t)
		}
	}
	return us
}

// admissible returns the traversals of ts that are monotone and stay within eps.
func admissible(ts []*Traversal, eps float64) []*Traversal {
	var us []*Traversal
	for _, t := range ts {
		if t == nil || lessEqual(t.Epsilon, eps*(1.0+DecisionSlack)+Tolerance) && t.IsMonotone() {
			us = append(us, t)
		}
	}
	return us
}

// bounded returns the admissible traversals of ts from a to b at eps, or otherwise the walk through the reachable free space.
func (tr *traverser) bounded(ts []*Traversal, a, b GridPoint, eps float64) []*Traversal {
	if us := admissible(ts, eps); 0 < len(us) {
		return us
	}
	t, ok := tr.m.walk(a, b, eps)
	if !ok {
		return nil
	}
	tr.log.Debug("walk through reachable free space",
		zap.Stringer("a", a), zap.Stringer("b", b), zap.Float64("epsilon", eps), zap.Int("candidates", len(ts)))
	return []*Traversal{t}
}

// product returns the concatenations of every traversal in ts with every traversal in us, at most limit of them.
func product(ts, us []*Traversal, limit int) []*Traversal {
	var vs []*Traversal
	for _, t := range ts {
		for _, u := range us {
			if limit <= len(vs) {
				return vs
			}
			vs = append(vs, Concat(t, u))
		}
	}
	return vs
}

// exhausted returns true for errors after which another alternative may still succeed.
func exhausted(err error) bool {
	return errors.Is(err, ErrSearchExhausted)
}

// span returns the interval between x and y.
func span(x, y float64) Interval {
	return Interval{math.Min(x, y), math.Max(x, y)}
}

// pointForEpsilon returns the point on a steepest descent from p where epsilon equals eps, given the descent as a function of x and of y over their bounds.
func pointForEpsilon(hor *Hyperbola, xBounds Interval, ver *Hyperbola, yBounds Interval, p Vector, eps float64) Vector {
	if hor != nil {
		if xs := xBounds.Filter(hor.Fy(eps)); 0 < len(xs) {
			p.X = xs[0]
		}
	}
	if ver != nil {
		if ys := yBounds.Filter(ver.Fy(eps)); 0 < len(ys) {
			p.Y = ys[0]
		}
	}
	return p
}

// borderEvent is a point on a steepest descent where it crosses the distance of a border.
type borderEvent struct {
	At      float64
	Epsilon float64
	Border  int // index into the border hyperbolas
}

// borderEventsAlong returns the points where the descent, a function over the same axis as the borders, meets a border hyperbola going in the opposite direction, provided all earlier borders are not higher.
func borderEventsAlong(bounds Interval, descent Hyperbola, borders []Hyperbola, direction int) []borderEvent {
	var evs []borderEvent
	for i, border := range borders {
		ps := descent.IntersectCritical(border, bounds, direction)
		if len(ps) == 0 || math.IsNaN(ps[0].X) {
			continue
		}
		if ev := (borderEvent{ps[0].X, ps[0].Y, i}); belowBorders(borders[:i], ps[0].X, ev.Epsilon) {
			evs = append(evs, ev)
		}
	}
	return evs
}

// borderEventsAcross returns the points on a descent perpendicular to the borders, which all pass through x, where the descent reaches the distance of a border that is rising in the walking direction, provided all earlier borders are not higher.
func borderEventsAcross(bounds Interval, descent Hyperbola, borders []Hyperbola, x float64, direction int) []borderEvent {
	var evs []borderEvent
	for i, border := range borders {
		if o := border.Orientation(x) * float64(direction); o < 0.0 && !Equal(o, 0.0) {
			continue
		}
		eps := border.Fx(x)
		ys := bounds.Filter(descent.Fy(eps))
		if len(ys) == 0 || math.IsNaN(ys[0]) {
			continue
		}
		if belowBorders(borders[:i], x, eps) {
			evs = append(evs, borderEvent{ys[0], eps, i})
		}
	}
	return evs
}

func belowBorders(borders []Hyperbola, x, eps float64) bool {
	for _, border := range borders {
		if eps+Tolerance < border.Fx(x) {
			return false
		}
	}
	return true
}

// descend returns the steepest descent from gp, or a stalled descent when there is none.
func (tr *traverser) descend(gp GridPoint, direction int, eps float64) Descent {
	d, err := tr.m.cell(gp.I, gp.J).SteepestDescent(gp.Point, direction)
	if err != nil {
		tr.log.Debug("no steepest descent", zap.Stringer("point", gp), zap.Error(err))
		return Descent{End: gp.Point, Epsilon: eps}
	}
	return d
}

func (tr *traverser) recurse(a GridPoint, ces *CriticalEvents, b GridPoint, depth int) ([]*Traversal, error) {
	if err := tr.ctx.Err(); err != nil {
		return nil, err
	} else if tr.maxDepth < depth {
		return nil, fmt.Errorf("traversal %v->%v at depth %d: %w", a, b, depth, ErrRecursionLimit)
	}
	m := tr.m

	if a.Point.Equals(b.Point) {
		return []*Traversal{nil}, nil
	}

	// a and b on one line, or out of order within tolerance
	if Equal(a.Point.X, b.Point.X) || Equal(a.Point.Y, b.Point.Y) || b.Point.X < a.Point.X || b.Point.Y < a.Point.Y {
		var points []Vector
		if Equal(a.Point.X, b.Point.X) || b.Point.X < a.Point.X {
			x := 0.5 * (a.Point.X + b.Point.X)
			points = append(points, Vector{x, a.Point.Y})
			for j := a.J + 1; j <= b.J; j++ {
				points = append(points, Vector{x, m.Q.Offsets[j]})
			}
			points = append(points, Vector{x, b.Point.Y})
		} else {
			y := 0.5 * (a.Point.Y + b.Point.Y)
			points = append(points, Vector{a.Point.X, y})
			for i := a.I + 1; i <= b.I; i++ {
				points = append(points, Vector{m.P.Offsets[i], y})
			}
			points = append(points, Vector{b.Point.X, y})
		}
		return []*Traversal{m.traversalFromPoints(points)}, nil
	}

	aEps, bEps := m.epsilonAt(a), m.epsilonAt(b)
	abEps := math.Max(aEps, bEps)
	critEps, critTs, found := ces.Critical(m, a, b)
	tr.log.Debug("traverse",
		zap.Stringer("a", a), zap.Stringer("b", b), zap.Int("depth", depth),
		zap.Int("events", ces.Len()), zap.Float64("critical", critEps), zap.Bool("found", found))

	direct := m.DecideTraversal(a, b, abEps)
	if !found || lessEqual(critEps, abEps) || direct {
		ts, err := tr.descendAndSplit(a, ces, b, aEps, bEps, depth)
		if err != nil && !exhausted(err) {
			return nil, err
		}
		if direct {
			// traversable at the epsilon of its end points, so solved at that epsilon
			ts = tr.bounded(ts, a, b, abEps)
		}
		if 0 < len(ts) {
			return ts, nil
		}
	}

	if !found {
		return nil, fmt.Errorf("traversal %v->%v: %w", a, b, ErrSearchExhausted)
	}
	ts, err := tr.throughEvents(a, b, critTs, critEps, ces, depth)
	if err != nil {
		return nil, err
	} else if len(ts) == 0 {
		return nil, fmt.Errorf("traversal %v->%v through %d events at %g: %w", a, b, len(critTs), critEps, ErrSearchExhausted)
	}
	return ts, nil
}

// descendAndSplit handles a sub-problem whose epsilon is set by its end points. Both ends descend steepest until they reach equal heights, after which the remainder is either traversed directly or split at a critical event within the descended epsilon range.
func (tr *traverser) descendAndSplit(a GridPoint, ces *CriticalEvents, b GridPoint, aEps, bEps float64, depth int) ([]*Traversal, error) {
	m := tr.m

	da := Descent{End: a.Point, Epsilon: aEps}
	db := Descent{End: b.Point, Epsilon: bEps}
	if Equal(aEps, bEps) || bEps < aEps {
		da = tr.descend(a, 1, aEps)
	}
	if Equal(aEps, bEps) || aEps < bEps {
		db = tr.descend(b, -1, bEps)
	}
	a2, a2Eps, a2G := da.End, da.Epsilon, a
	b2, b2Eps, b2G := db.End, db.Epsilon, b
	if !a.Point.Equals(a2) {
		a2G = m.GridStart(a2)
	}
	if !b.Point.Equals(b2) {
		b2G = m.GridEnd(b2)
	}
	aBH, aBV := span(a.Point.X, a2.X), span(a.Point.Y, a2.Y)
	bBH, bBV := span(b.Point.X, b2.X), span(b.Point.Y, b2.Y)

	// descend the lower end only as far as the higher end
	if !Equal(a2Eps, b2Eps) && a2Eps < b2Eps {
		a2 = pointForEpsilon(da.Horizontal, aBH, da.Vertical, aBV, a.Point, b2Eps)
		a2G, a2Eps = m.GridStart(a2), b2Eps
		aBH, aBV = span(a.Point.X, a2.X), span(a.Point.Y, a2.Y)
	} else if !Equal(a2Eps, b2Eps) && b2Eps < a2Eps {
		b2 = pointForEpsilon(db.Horizontal, bBH, db.Vertical, bBV, b.Point, a2Eps)
		b2G, b2Eps = m.GridEnd(b2), a2Eps
		bBH, bBV = span(b.Point.X, b2.X), span(b.Point.Y, b2.Y)
	}

	// stop both descents where they cross horizontally or vertically
	lsA, lsB := segment(a.Point, a2), segment(b.Point, b2)
	movedA, movedB := !a.Point.Equals(a2), !b.Point.Equals(b2)
	if !a2.Precedes(b2) {
		if cut := aBH.Cut(bBH); !cut.IsEmpty() {
			if Equal(a.Point.X, a2.X) {
				if movedB {
					b2 = lsB.Px(a.Point.X)
				}
			} else if Equal(b.Point.X, b2.X) {
				a2 = lsA.Px(b.Point.X)
			} else {
				x := cut.Middle()
				if da.Horizontal != nil && db.Horizontal != nil {
					if ps := da.Horizontal.IntersectIn(*db.Horizontal, cut); 0 < len(ps) {
						x = ps[0].X
					}
				}
				a2, b2 = lsA.Px(x), lsB.Px(x)
			}
			a2G, b2G = GridPoint{a2, a.I, a.J}, GridPoint{b2, b.I, b.J}
			a2Eps, b2Eps = m.epsilonAt(a2G), m.epsilonAt(b2G)
		}
		if cut := aBV.Cut(bBV); !cut.IsEmpty() {
			if Equal(a.Point.Y, a2.Y) {
				if movedB {
					b2 = lsB.Py(a.Point.Y)
				}
			} else if Equal(b.Point.Y, b2.Y) {
				a2 = lsA.Py(b.Point.Y)
			} else {
				y := cut.Middle()
				if da.Vertical != nil && db.Vertical != nil {
					if ps := da.Vertical.IntersectIn(*db.Vertical, cut); 0 < len(ps) {
						y = ps[0].X
					}
				}
				a2, b2 = lsA.Py(y), lsB.Py(y)
			}
			a2G, b2G = GridPoint{a2, a.I, a.J}, GridPoint{b2, b.I, b.J}
			a2Eps, b2Eps = m.epsilonAt(a2G), m.epsilonAt(b2G)
		}
		aBH, aBV = span(a.Point.X, a2.X), span(a.Point.Y, a2.Y)
		bBH, bBV = span(b.Point.X, b2.X), span(b.Point.Y, b2.Y)
	}
	movedA, movedB = !a.Point.Equals(a2), !b.Point.Equals(b2)

	// traverse without critical events
	bound := Interval{math.Max(a2Eps, b2Eps), math.Max(aEps, bEps)}
	if m.DecideTraversal(a2G, b2G, bound.Start) {
		if !movedA && !movedB {
			return []*Traversal{NewTraversal(a, b, []Vector{a.Point, b.Point}, []float64{aEps, bEps})}, nil
		}
		var tA, tB *Traversal
		if movedA {
			tA = NewTraversal(a, a2G, []Vector{a.Point, a2}, []float64{aEps, a2Eps})
			if da.Curve != nil {
				tA.setSlopes([]float64{da.Curve.F2ax(0.0), da.Curve.F2ax(math.Max(aBH.Length(), aBV.Length()))})
				tA.Curvature = 2.0 * da.Curve.F2aax()
			}
		}
		if movedB {
			tB = NewTraversal(b2G, b, []Vector{b2, b.Point}, []float64{b2Eps, bEps})
			if db.Curve != nil {
				tB.setSlopes([]float64{db.Curve.F2ax(0.0), db.Curve.F2ax(math.Max(bBH.Length(), bBV.Length()))})
				tB.Curvature = 2.0 * db.Curve.F2aax()
			}
		}

		rec, err := tr.recurse(a2G, ces.Within(a2, b2), b2G, depth+1)
		if err != nil && !exhausted(err) {
			return nil, err
		}
		rec = tr.bounded(rec, a2G, b2G, bound.Start)
		ts := product(product([]*Traversal{tA}, rec, tr.maxAlt), []*Traversal{tB}, tr.maxAlt)
		if 0 < len(ts) {
			return ts, nil
		}
	}

	// critical events within the descended epsilon range, registered ones and those where a descent crosses the distance of a cell border
	possible := ces.InEpsilonBound(bound)
	if movedA {
		possible = possible.Merge(tr.descentEvents(a, b, a2, da, lsA, aBH, aBV, 1))
	}
	if movedB {
		possible = possible.Merge(tr.descentEvents(a, b, b2, db, lsB, bBH, bBV, -1))
	}
	tr.log.Debug("descended",
		zap.Stringer("a2", a2G), zap.Stringer("b2", b2G), zap.Stringer("bound", bound), zap.Int("events", possible.Len()))

	for _, eps := range possible.Epsilons() {
		a3 := pointForEpsilon(da.Horizontal, aBH, da.Vertical, aBV, a2, eps)
		b3 := pointForEpsilon(db.Horizontal, bBH, db.Vertical, bBV, b2, eps)
		a3G, b3G := GridPoint{a3, a.I, a.J}, GridPoint{b3, b.I, b.J}

		var tA, tB *Traversal
		if !a.Point.Equals(a3) {
			tA = NewTraversal(a, a3G, []Vector{a.Point, a3}, []float64{aEps, eps})
		}
		if !b.Point.Equals(b3) {
			tB = NewTraversal(b3G, b, []Vector{b3, b.Point}, []float64{eps, bEps})
		}

		between := ces.Between(a3, b3)
		crits := possible.Within(a3, b3).Get(eps)
		var mid []*Traversal
		if len(crits) == 0 {
			continue
		} else if len(crits) == 1 {
			ct := crits[0]
			if !m.DecideTraversal(a3G, ct.Start, eps) || !m.DecideTraversal(ct.End, b3G, eps) {
				continue
			}
			toCt, err := tr.recurse(a3G, between, ct.Start, depth+1)
			if err != nil && !exhausted(err) {
				return nil, err
			}
			fromCt, err := tr.recurse(ct.End, between, b3G, depth+1)
			if err != nil && !exhausted(err) {
				return nil, err
			}
			toCt, fromCt = tr.bounded(toCt, a3G, ct.Start, eps), tr.bounded(fromCt, ct.End, b3G, eps)
			mid = product(product(toCt, []*Traversal{ct}, tr.maxAlt), fromCt, tr.maxAlt)
		} else {
			var err error
			if mid, err = tr.throughEvents(a3G, b3G, crits, eps, between, depth); err != nil {
				return nil, err
			}
		}
		ts := product(product([]*Traversal{tA}, mid, tr.maxAlt), []*Traversal{tB}, tr.maxAlt)
		if 0 < len(ts) {
			return ts, nil
		}
	}
	return nil, fmt.Errorf("traversal %v->%v below %g: %w", a, b, bound.End, ErrSearchExhausted)
}

// descentEvents returns the traversals where the steepest descent from a (direction 1) or from b (direction -1) to the point to crosses the distance of the cell borders it faces, up to the other end.
func (tr *traverser) descentEvents(a, b GridPoint, to Vector, d Descent, ls LineSegment, xBounds, yBounds Interval, direction int) *CriticalEvents {
	m := tr.m
	ces := &CriticalEvents{}
	add := func(points []Vector) {
		if direction < 0 {
			for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
				points[i], points[j] = points[j], points[i]
			}
		}
		if 1 < len(points) && !points[0].Equals(points[1]) {
			ces.Add(m.traversalFromPoints(points))
		}
	}

	p := a
	if direction < 0 {
		p = b
	}
	from := p.Point

	// horizontal borders above (or below) the descent, crossed by walking vertically
	var borders []Hyperbola
	var rows []float64
	if 0 < direction {
		for j := a.J; j <= b.J; j++ {
			borders = append(borders, m.cell(a.I, j).Top)
			rows = append(rows, m.Q.Offsets[min(j+1, m.Q.Count())])
		}
	} else {
		for j := b.J; a.J <= j; j-- {
			borders = append(borders, m.cell(b.I, j).Bottom)
			rows = append(rows, m.Q.Offsets[j])
		}
	}
	if !Equal(from.X, to.X) && d.Horizontal != nil {
		for _, ev := range borderEventsAlong(xBounds, *d.Horizontal, borders, direction) {
			points := []Vector{ls.Px(ev.At)}
			for _, y := range rows[:ev.Border+1] {
				points = append(points, Vector{ev.At, y})
			}
			add(points)
		}
	} else if d.Vertical != nil {
		for _, ev := range borderEventsAcross(yBounds, *d.Vertical, borders, from.X, direction) {
			points := []Vector{{from.X, ev.At}}
			for _, y := range rows[:ev.Border+1] {
				points = append(points, Vector{from.X, y})
			}
			add(points)
		}
	}

	// vertical borders right (or left) of the descent, crossed by walking horizontally
	borders, rows = borders[:0], rows[:0]
	if 0 < direction {
		for i := a.I; i <= b.I; i++ {
			borders = append(borders, m.cell(i, a.J).Right)
			rows = append(rows, m.P.Offsets[min(i+1, m.P.Count())])
		}
	} else {
		for i := b.I; a.I <= i; i-- {
			borders = append(borders, m.cell(i, b.J).Left)
			rows = append(rows, m.P.Offsets[i])
		}
	}
	if !Equal(from.Y, to.Y) && d.Vertical != nil {
		for _, ev := range borderEventsAlong(yBounds, *d.Vertical, borders, direction) {
			points := []Vector{ls.Py(ev.At)}
			for _, x := range rows[:ev.Border+1] {
				points = append(points, Vector{x, ev.At})
			}
			add(points)
		}
	} else if d.Horizontal != nil {
		for _, ev := range borderEventsAcross(xBounds, *d.Horizontal, borders, from.Y, direction) {
			points := []Vector{{ev.At, from.Y}}
			for _, x := range rows[:ev.Border+1] {
				points = append(points, Vector{x, from.Y})
			}
			add(points)
		}
	}
	return ces
}

// throughEvents returns the traversals from a to b that pass through the critical traversals ts at eps along the best paths of their traversal graph.
func (tr *traverser) throughEvents(a, b GridPoint, ts []*Traversal, eps float64, ces *CriticalEvents, depth int) ([]*Traversal, error) {
	m := tr.m
	g := m.traversalGraph(a, b, ts, eps)
	paths := bestPaths(g.paths(tr.log))
	tr.log.Debug("traversal graph", zap.Int("nodes", len(g.nodes)), zap.Int("best", len(paths)), zap.Float64("epsilon", eps))

	below := Interval{0.0, eps}
	var res []*Traversal
	for _, path := range paths {
		pts := []*Traversal{nil}
		last := g.nodes[0].End
		for _, k := range path.nodes[1:] {
			ct := g.nodes[k]
			between := ces.Between(last.Point, ct.Start.Point).InEpsilonBound(below).RemoveEpsilon(eps)
			toCt, err := tr.recurse(last, between, ct.Start, depth+1)
			if err != nil && !exhausted(err) {
				return nil, err
			}
			if toCt = tr.bounded(toCt, last, ct.Start, eps); len(toCt) == 0 {
				pts = nil
				break
			}
			if k != len(g.nodes)-1 {
				toCt = product(toCt, []*Traversal{ct}, tr.maxAlt)
			}
			pts = product(pts, toCt, tr.maxAlt)
			last = ct.End
		}
		res = append(res, pts...)
		if tr.maxAlt <= len(res) {
			return res[:tr.maxAlt], nil
		}
	}
	return res, nil
}
