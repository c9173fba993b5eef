package frechet

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CellMatrix is the free-space diagram of two paths. Cells[i][j] is the cell of segment i of P against segment j of Q. Once built it is read-only and safe for concurrent use.
type CellMatrix struct {
	P, Q  *Path
	Cells [][]*Cell
	L     Interval // smallest and largest distance over all cells

	// AlongP holds the cross-section along P for every point of Q, AlongQ the cross-section along Q for every point of P.
	AlongP, AlongQ []*CrossSection

	Events *CriticalEvents

	epsilon    float64
	traversals []*Traversal
	opts       Options
	log        *zap.Logger
}

// Build constructs the free-space diagram of the paths p and q, detects its critical events, and computes the minimal epsilon. If opts.ComputeTraversal is set, it also synthesizes the traversals that realize it. A nil opts uses DefaultOptions.
func Build(ctx context.Context, p, q []Vector, opts *Options) (*CellMatrix, error) {
	if opts == nil {
		opts = &DefaultOptions
	}
	if err := checkFinite("P", p); err != nil {
		return nil, err
	} else if err := checkFinite("Q", q); err != nil {
		return nil, err
	}

	P, err := NewPath("P", p)
	if err != nil {
		return nil, err
	}
	Q, err := NewPath("Q", q)
	if err != nil {
		return nil, err
	}

	m := &CellMatrix{
		P:     P,
		Q:     Q,
		Cells: make([][]*Cell, P.Count()),
		L:     Interval{math.Inf(1), 0.0},
		opts:  *opts,
		log:   opts.logger(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency())
	for i := range P.Count() {
		g.Go(func() error {
			row := make([]*Cell, Q.Count())
			for j := range Q.Count() {
				row[j] = NewCell(i, j, P.Segments[i], Q.Segments[j], Vector{P.Offsets[i], Q.Offsets[j]})
				row[j].log = m.log
			}
			m.Cells[i] = row
			return gctx.Err()
		})
	}
	m.AlongP = make([]*CrossSection, len(Q.Points))
	m.AlongQ = make([]*CrossSection, len(P.Points))
	g.Go(func() error {
		for j, pt := range Q.Points {
			m.AlongP[j] = NewCrossSection(P, pt)
		}
		return gctx.Err()
	})
	g.Go(func() error {
		for i, pt := range P.Points {
			m.AlongQ[i] = NewCrossSection(Q, pt)
		}
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, row := range m.Cells {
		for _, c := range row {
			m.L.Start = math.Min(m.L.Start, c.L.Start)
			m.L.End = math.Max(m.L.End, c.L.End)
		}
	}

	if m.Events, err = m.criticalEvents(ctx); err != nil {
		return nil, err
	}
	m.log.Debug("critical events", zap.Int("epsilons", m.Events.Len()), zap.Int("cells", P.Count()*Q.Count()))

	if m.epsilon, err = m.searchEpsilon(ctx); err != nil {
		return nil, err
	}

	if opts.ComputeTraversal {
		ts, err := m.traverse(ctx)
		if err != nil {
			return nil, err
		}
		m.traversals = ts
	}
	return m, nil
}

// Distance returns the Fréchet distance between the paths p and q without synthesizing a traversal.
func Distance(ctx context.Context, p, q []Vector) (float64, error) {
	opts := DefaultOptions
	opts.ComputeTraversal = false
	m, err := Build(ctx, p, q, &opts)
	if err != nil {
		return 0.0, err
	}
	return m.MinimalEpsilon(), nil
}

func checkFinite(name string, points []Vector) error {
	for i, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return &InputError{Path: name, Index: i, Err: ErrNotFinite}
		}
	}
	return nil
}

// MinimalEpsilon returns the Fréchet distance of both paths.
func (m *CellMatrix) MinimalEpsilon() float64 {
	return m.epsilon
}

// Traversal returns the canonical traversal realizing the minimal epsilon, or nil if it was not computed.
func (m *CellMatrix) Traversal() *Traversal {
	if len(m.traversals) == 0 {
		return nil
	}
	return m.traversals[0]
}

// Traversals returns all equally good traversals that were found.
func (m *CellMatrix) Traversals() []*Traversal {
	return m.traversals
}

// Start returns the lower-left corner of the diagram.
func (m *CellMatrix) Start() GridPoint {
	return GridPoint{Vector{0.0, 0.0}, 0, 0}
}

// End returns the upper-right corner of the diagram.
func (m *CellMatrix) End() GridPoint {
	return GridPoint{Vector{m.P.Length, m.Q.Length}, m.P.Count() - 1, m.Q.Count() - 1}
}

// GridStart assigns p to the cell that a walk starting in p leaves through. Points on a cell border belong to the cell above or to the right.
func (m *CellMatrix) GridStart(p Vector) GridPoint {
	return GridPoint{p, m.P.SegmentIndex(p.X), m.Q.SegmentIndex(p.Y)}
}

// GridEnd assigns p to the cell that a walk ending in p arrives through. Points on a cell border belong to the cell below or to the left.
func (m *CellMatrix) GridEnd(p Vector) GridPoint {
	gp := m.GridStart(p)
	if 0 < gp.I && Equal(m.P.Offsets[gp.I], p.X) {
		gp.I--
	}
	if 0 < gp.J && Equal(m.Q.Offsets[gp.J], p.Y) {
		gp.J--
	}
	return gp
}

// cell returns the cell (i,j), clamped to the matrix.
func (m *CellMatrix) cell(i, j int) *Cell {
	i = max(0, min(i, len(m.Cells)-1))
	j = max(0, min(j, len(m.Cells[i])-1))
	return m.Cells[i][j]
}

// EpsilonAt returns the distance between P at arclength p.X and Q at arclength p.Y.
func (m *CellMatrix) EpsilonAt(p Vector) float64 {
	eps := m.P.At(p.X).Dist(m.Q.At(p.Y))
	if Equal(eps, 0.0) {
		return 0.0
	}
	return eps
}

func (m *CellMatrix) epsilonAt(gp GridPoint) float64 {
	eps := m.cell(gp.I, gp.J).Epsilon(gp.Point)
	if Equal(eps, 0.0) {
		return 0.0
	}
	return eps
}

// traversalFromPoints returns the traversal through points, which must all lie on one horizontal or vertical line. Slopes are recorded at the points of largest distance.
func (m *CellMatrix) traversalFromPoints(points []Vector) *Traversal {
	points = RemoveConsecutiveDuplicates(points)
	epsilons := make([]float64, len(points))
	for i, p := range points {
		epsilons[i] = m.EpsilonAt(p)
	}
	start, end := points[0], points[len(points)-1]
	t := NewTraversal(m.GridEnd(start), m.GridStart(end), points, epsilons)
	if len(points) < 2 {
		return t
	}

	horizontal := Equal(start.Y, end.Y)
	var slopes []float64
	for i, p := range points {
		if !Equal(epsilons[i], t.Epsilon) {
			continue
		}
		before, after := m.GridEnd(p), m.GridStart(p)
		cellIn, cellOut := m.cell(before.I, before.J), m.cell(after.I, after.J)
		var hIn, hOut Hyperbola
		var okIn, okOut bool
		x := p.Y
		if horizontal {
			hIn, okIn = cellIn.HorizontalHyperbola(p.Y)
			hOut, okOut = cellOut.HorizontalHyperbola(p.Y)
			x = p.X
		} else {
			hIn, okIn = cellIn.VerticalHyperbola(p.X)
			hOut, okOut = cellOut.VerticalHyperbola(p.X)
		}
		if i != 0 && okIn {
			slopes = append(slopes, hIn.F2ax(x))
			t.Curvature += hIn.F2aax()
		}
		if i != len(points)-1 && okOut {
			slopes = append(slopes, hOut.F2ax(x))
			t.Curvature += hOut.F2aax()
		}
	}
	t.setSlopes(slopes)
	return t
}

// criticalEvents detects the critical events of type b and c on the horizontal and vertical cell borders.
func (m *CellMatrix) criticalEvents(ctx context.Context) (*CriticalEvents, error) {
	var hor, ver [][]Vector
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hor = criticalPoints(gctx, m.AlongQ, m.AlongP)
		return gctx.Err()
	})
	g.Go(func() error {
		ver = criticalPoints(gctx, m.AlongP, m.AlongQ)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ces := &CriticalEvents{}
	for _, points := range hor {
		for i := range points {
			points[i] = points[i].Swap()
		}
		ces.Add(m.traversalFromPoints(points))
	}
	for _, points := range ver {
		ces.Add(m.traversalFromPoints(points))
	}
	return ces, nil
}

// searchEpsilon returns the smallest candidate distance at which the upper-right corner is reachable.
func (m *CellMatrix) searchEpsilon(ctx context.Context) (float64, error) {
	lower := math.Max(m.P.Points[0].Dist(m.Q.Points[0]), m.P.Points[len(m.P.Points)-1].Dist(m.Q.Points[len(m.Q.Points)-1]))
	cands := candidateEpsilons(m.P, m.Q)
	cands = append(cands, candidateEpsilons(m.Q, m.P)...)
	cands = append(cands, m.Events.Epsilons()...)
	cands = append(cands, lower, m.L.End)
	cands = uniqueSorted(cands, lower)

	end := m.End()
	feasible := func(eps float64) bool {
		return m.DecideTraversal(m.Start(), end, eps*(1.0+DecisionSlack)+Tolerance)
	}

	lo, hi := 0, len(cands)-1
	if !feasible(cands[hi]) {
		return 0.0, fmt.Errorf("largest candidate %g is infeasible: %w", cands[hi], ErrSearchExhausted)
	}
	for lo < hi {
		if err := ctx.Err(); err != nil {
			return 0.0, err
		}
		mid := lo + (hi-lo)/2
		if feasible(cands[mid]) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	eps := math.Max(cands[lo], lower)
	if Equal(eps, 0.0) {
		eps = 0.0
	}
	return eps, nil
}

// candidateEpsilons returns the distances at which the free space of P against Q can change topology: a vertex of P touching a segment of Q, and a segment of Q passing through a point equidistant to two vertices of P.
func candidateEpsilons(p, q *Path) []float64 {
	var cands []float64
	for _, pt := range p.Points {
		for _, ls := range q.Segments {
			cands = append(cands, ls.DistPoint(pt))
		}
	}
	for k := 0; k < len(p.Points); k++ {
		for l := k + 1; l < len(p.Points); l++ {
			u, v := p.Points[k], p.Points[l]
			mid, n := u.Add(v).Mul(0.5), v.Sub(u)
			for _, ls := range q.Segments {
				den := ls.D.Dot(n)
				if Equal(den, 0.0) {
					continue
				}
				r := mid.Sub(ls.P1).Dot(n) / den
				if r < 0.0 && !Equal(r, 0.0) || 1.0 < r && !Equal(r, 1.0) {
					continue
				}
				cands = append(cands, ls.Fr(math.Max(0.0, math.Min(1.0, r))).Dist(u))
			}
		}
	}
	return cands
}

// uniqueSorted sorts xs, removes about equal values and values below lower.
func uniqueSorted(xs []float64, lower float64) []float64 {
	sort.Float64s(xs)
	ys := xs[:0]
	for _, x := range xs {
		if math.IsNaN(x) || x < lower && !Equal(x, lower) {
			continue
		} else if 0 < len(ys) && Equal(ys[len(ys)-1], x) {
			continue
		}
		ys = append(ys, x)
	}
	return ys
}

func (m *CellMatrix) String() string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "CellMatrix %dx%d (%gx%g)\n", m.P.Count(), m.Q.Count(), m.P.Length, m.Q.Length)
	fmt.Fprintf(&sb, " P: %v\n Q: %v\n", m.P, m.Q)
	fmt.Fprintf(&sb, " bounds l: %v\n", m.L)
	fmt.Fprintf(&sb, " critical events: %d\n", m.Events.Len())
	fmt.Fprintf(&sb, " epsilon: %g", m.epsilon)
	for _, t := range m.traversals {
		fmt.Fprintf(&sb, "\n %v", t)
	}
	return sb.String()
}
