package frechet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/tdewolff/test"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var scenarios = []struct {
	p, q    []Vector
	epsilon float64
}{
	{[]Vector{{0.0, 0.0}, {1.0, 0.0}}, []Vector{{0.0, 1.0}, {1.0, 1.0}}, 1.0},
	{[]Vector{{0.0, 0.0}, {2.0, 0.0}}, []Vector{{0.0, 0.0}, {1.0, 1.0}, {2.0, 0.0}}, 1.0},
	{[]Vector{{0.0, 0.0}, {4.0, 0.0}}, []Vector{{0.0, 0.0}, {4.0, 0.0}}, 0.0},
	{
		[]Vector{{2.0, 1.5}, {3.5, 2.5}},
		[]Vector{{3.5, 4.5}, {2.5, 3.5}, {1.0, 1.5}, {1.5, 1.0}, {0.5, 2.5}},
		Vector{2.0, 1.5}.Dist(Vector{3.5, 4.5}),
	},
	{
		[]Vector{{3.0189, 4.2469}, {1.1967, 4.9622}, {2.4634, 2.1906}, {1.9643, 2.2315}, {4.7666, 3.8603}},
		[]Vector{{4.4920, 1.5238}, {4.8873, 1.1508}, {0.6415, 2.8536}},
		Vector{4.7666, 3.8603}.Dist(Vector{0.6415, 2.8536}),
	},
}

func mustBuild(t *testing.T, p, q []Vector, opts *Options) *CellMatrix {
	t.Helper()
	m, err := Build(context.Background(), p, q, opts)
	test.Error(t, err)
	return m
}

func TestBuild(t *testing.T) {
	for i, tt := range scenarios {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			m := mustBuild(t, tt.p, tt.q, nil)
			test.Float(t, m.MinimalEpsilon(), tt.epsilon)
			test.T(t, len(m.Cells), len(tt.p)-1)
			test.T(t, len(m.Cells[0]), len(tt.q)-1)
			test.T(t, len(m.AlongP), len(tt.q))
			test.T(t, len(m.AlongQ), len(tt.p))
			test.That(t, m.L.Start <= m.MinimalEpsilon()+Tolerance, "minimal epsilon below the distance bounds")
			test.That(t, m.MinimalEpsilon() <= m.L.End+Tolerance, "minimal epsilon above the distance bounds")

			tr := m.Traversal()
			test.That(t, tr != nil, "no traversal")
			test.That(t, 0 < len(m.Traversals()))
			test.That(t, tr.Points[0].Equals(Vector{0.0, 0.0}), "traversal starts at", tr.Points[0])
			test.That(t, tr.Points[len(tr.Points)-1].Equals(Vector{m.P.Length, m.Q.Length}), "traversal ends at", tr.Points[len(tr.Points)-1])
			test.That(t, tr.IsMonotone(), "traversal is not monotone")
			test.T(t, len(tr.Epsilons), len(tr.Points))
			test.That(t, tr.Epsilon <= m.MinimalEpsilon()+1e-6, "traversal epsilon", tr.Epsilon, "exceeds", m.MinimalEpsilon())
			for k, eps := range tr.Epsilons {
				test.That(t, eps <= tt.epsilon+1e-6, "waypoint", k, "has epsilon", eps)
			}
		})
	}
}

func TestBuildIdentical(t *testing.T) {
	m := mustBuild(t, scenarios[2].p, scenarios[2].q, nil)
	tr := m.Traversal()
	test.Float(t, m.MinimalEpsilon(), 0.0)
	test.Float(t, tr.Epsilon, 0.0)
	for _, p := range tr.Points {
		test.Float(t, p.X, p.Y)
	}
}

func TestBuildWithoutTraversal(t *testing.T) {
	opts := DefaultOptions
	opts.ComputeTraversal = false
	m := mustBuild(t, scenarios[1].p, scenarios[1].q, &opts)
	test.Float(t, m.MinimalEpsilon(), 1.0)
	test.That(t, m.Traversal() == nil, "unexpected traversal")
	test.T(t, len(m.Traversals()), 0)
}

func TestDistance(t *testing.T) {
	for i, tt := range scenarios {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			eps, err := Distance(context.Background(), tt.p, tt.q)
			test.Error(t, err)
			test.Float(t, eps, tt.epsilon)
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	var tests = []struct {
		p, q []Vector
	}{
		{scenarios[1].p, scenarios[1].q},
		{[]Vector{{0.0, 0.0}, {3.0, 1.0}, {5.0, 0.0}}, []Vector{{0.0, 2.0}, {2.0, 3.0}, {6.0, 1.0}}},
		{[]Vector{{0.0, 0.0}, {1.0, 2.0}, {2.0, 0.0}, {3.0, 2.0}}, []Vector{{0.0, 1.0}, {3.0, 1.0}}},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			pq, err := Distance(context.Background(), tt.p, tt.q)
			test.Error(t, err)
			qp, err := Distance(context.Background(), tt.q, tt.p)
			test.Error(t, err)
			test.Float(t, pq, qp)
		})
	}
}

func TestDistanceScale(t *testing.T) {
	scale := func(ps []Vector, f float64) []Vector {
		qs := make([]Vector, len(ps))
		for i, p := range ps {
			qs[i] = p.Mul(f)
		}
		return qs
	}

	p, q := scenarios[1].p, scenarios[1].q
	for _, f := range []float64{0.5, 3.0, 100.0} {
		t.Run(fmt.Sprint(f), func(t *testing.T) {
			eps, err := Distance(context.Background(), scale(p, f), scale(q, f))
			test.Error(t, err)
			test.Float(t, eps, f)
		})
	}
}

func TestDistanceEndpoints(t *testing.T) {
	var tests = []struct {
		p, q []Vector
	}{
		{[]Vector{{0.0, 0.0}, {3.0, 1.0}, {5.0, 0.0}}, []Vector{{0.0, 2.0}, {2.0, 3.0}, {6.0, 1.0}}},
		{[]Vector{{0.0, 0.0}, {1.0, 0.0}}, []Vector{{0.0, 3.0}, {1.0, 0.5}}},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			eps, err := Distance(context.Background(), tt.p, tt.q)
			test.Error(t, err)
			lower := math.Max(tt.p[0].Dist(tt.q[0]), tt.p[len(tt.p)-1].Dist(tt.q[len(tt.q)-1]))
			test.That(t, lower <= eps+Tolerance, "distance", eps, "below endpoint distance", lower)
		})
	}
}

func TestBuildMaxDepth(t *testing.T) {
	opts := DefaultOptions
	opts.MaxDepth = 1
	for i, tt := range scenarios {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			m := mustBuild(t, tt.p, tt.q, &opts)
			tr := m.Traversal()
			test.That(t, tr != nil, "no traversal")
			test.That(t, tr.IsMonotone(), "traversal is not monotone")
			test.That(t, tr.Epsilon <= m.MinimalEpsilon()+1e-6, "traversal epsilon", tr.Epsilon)
		})
	}
}

func TestBuildConcurrentEvents(t *testing.T) {
	// both peaks of Q pinch the free space at the same distance
	p := []Vector{{0.0, 0.0}, {4.0, 0.0}}
	q := []Vector{{0.0, 0.0}, {1.0, 1.0}, {2.0, 0.0}, {3.0, 1.0}, {4.0, 0.0}}
	m := mustBuild(t, p, q, nil)
	test.Float(t, m.MinimalEpsilon(), 1.0)
	test.T(t, len(m.Events.Get(1.0)), 2)

	tr := m.Traversal()
	test.That(t, tr.IsMonotone(), "traversal is not monotone")
	test.That(t, tr.Epsilon <= 1.0+1e-6, "traversal epsilon", tr.Epsilon)
	for _, pinch := range []Vector{{1.0, math.Sqrt2}, {3.0, 3.0 * math.Sqrt2}} {
		near := false
		for _, p := range tr.Points {
			near = near || p.Dist(pinch) < 1e-3
		}
		test.That(t, near, "traversal misses", pinch, tr.Points)
	}
}

func TestWalk(t *testing.T) {
	opts := DefaultOptions
	opts.ComputeTraversal = false
	m := mustBuild(t, scenarios[1].p, scenarios[1].q, &opts)
	end := m.End()

	tr, ok := m.walk(m.Start(), end, 1.1)
	test.That(t, ok, "no walk at 1.1")
	test.That(t, tr.Points[0].Equals(Vector{0.0, 0.0}), "walk starts at", tr.Points[0])
	test.That(t, tr.Points[len(tr.Points)-1].Equals(end.Point), "walk ends at", tr.Points[len(tr.Points)-1])
	test.That(t, tr.IsMonotone(), "walk is not monotone")
	test.That(t, 2 < len(tr.Points), "walk does not cross the row border")
	for k, eps := range tr.Epsilons {
		test.That(t, eps <= 1.1+1e-6, "waypoint", k, "has epsilon", eps)
	}

	_, ok = m.walk(m.Start(), end, 0.9)
	test.That(t, !ok, "walk below the distance")

	tr, ok = m.walk(m.Start(), m.Start(), 0.0)
	test.That(t, ok && tr == nil)

	// along the left border only
	up := m.GridEnd(Vector{0.0, m.Q.Offsets[1]})
	tr, ok = m.walk(m.Start(), up, 1.5)
	test.That(t, ok, "no walk along the border")
	test.T(t, tr.Points, []Vector{{0.0, 0.0}, up.Point})
}

// densify returns the vertices of ps with extra points so that consecutive points are at most h apart.
func densify(ps []Vector, h float64) []Vector {
	qs := []Vector{ps[0]}
	for i := 1; i < len(ps); i++ {
		n := int(math.Ceil(ps[i-1].Dist(ps[i]) / h))
		for k := 1; k <= n; k++ {
			qs = append(qs, ps[i-1].Interpolate(ps[i], float64(k)/float64(n)))
		}
	}
	return qs
}

// discreteFrechet returns the discrete Fréchet distance between the point sequences p and q.
func discreteFrechet(p, q []Vector) float64 {
	prev, cur := make([]float64, len(q)), make([]float64, len(q))
	for i := range p {
		for j := range q {
			d := p[i].Dist(q[j])
			switch {
			case i == 0 && j == 0:
				cur[j] = d
			case i == 0:
				cur[j] = math.Max(cur[j-1], d)
			case j == 0:
				cur[j] = math.Max(prev[j], d)
			default:
				cur[j] = math.Max(math.Min(prev[j], math.Min(prev[j-1], cur[j-1])), d)
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(q)-1]
}

func TestBuildRandom(t *testing.T) {
	const h = 0.05
	rng := rand.New(rand.NewSource(1))
	path := func() []Vector {
		ps := make([]Vector, 2+rng.Intn(3))
		for i := range ps {
			ps[i] = Vector{5.0 * rng.Float64(), 5.0 * rng.Float64()}
		}
		return ps
	}
	for i := 0; i < 100; i++ {
		p, q := path(), path()
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			m := mustBuild(t, p, q, nil)
			eps := m.MinimalEpsilon()

			// the discrete distance of densely sampled paths bounds the distance from both sides
			discrete := discreteFrechet(densify(p, h), densify(q, h))
			test.That(t, eps <= discrete+1e-6, "distance", eps, "above discrete distance", discrete)
			test.That(t, discrete <= eps+h, "distance", eps, "too far below discrete distance", discrete)

			qp, err := Distance(context.Background(), q, p)
			test.Error(t, err)
			test.FloatDiff(t, qp, eps, 1e-6)

			tr := m.Traversal()
			test.That(t, tr != nil, "no traversal")
			test.That(t, tr.IsMonotone(), "traversal is not monotone")
			test.That(t, tr.Points[0].Equals(Vector{0.0, 0.0}), "traversal starts at", tr.Points[0])
			test.That(t, tr.Points[len(tr.Points)-1].Equals(m.End().Point), "traversal ends at", tr.Points[len(tr.Points)-1])
			test.That(t, tr.Epsilon <= eps+1e-6, "traversal epsilon", tr.Epsilon, "exceeds", eps)
		})
	}
}

func TestBuildErrors(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	var tests = []struct {
		p, q []Vector
		err  error
	}{
		{[]Vector{{0.0, 0.0}}, []Vector{{0.0, 0.0}, {1.0, 0.0}}, ErrTooFewPoints},
		{[]Vector{{0.0, 0.0}, {1.0, 0.0}}, nil, ErrTooFewPoints},
		{[]Vector{{0.0, 0.0}, {0.0, 0.0}, {1.0, 0.0}}, []Vector{{0.0, 0.0}, {1.0, 0.0}}, ErrDuplicatePoints},
		{[]Vector{{0.0, 0.0}, {nan, 0.0}}, []Vector{{0.0, 0.0}, {1.0, 0.0}}, ErrNotFinite},
		{[]Vector{{0.0, 0.0}, {1.0, 0.0}}, []Vector{{0.0, inf}, {1.0, 0.0}}, ErrNotFinite},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			_, err := Build(context.Background(), tt.p, tt.q, nil)
			test.That(t, errors.Is(err, tt.err), "expected", tt.err, "got", err)

			var inputErr *InputError
			test.That(t, errors.As(err, &inputErr), "expected InputError, got", err)
		})
	}
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Build(ctx, scenarios[1].p, scenarios[1].q, nil)
	test.That(t, errors.Is(err, context.Canceled), "expected context.Canceled, got", err)
}

func TestBuildLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	opts := DefaultOptions
	opts.Logger = zap.New(core)
	opts.Concurrency = 1
	mustBuild(t, scenarios[1].p, scenarios[1].q, &opts)
	test.That(t, 0 < logs.FilterMessage("critical events").Len(), "no debug trace of the critical events")
}

func TestGridPoint(t *testing.T) {
	opts := DefaultOptions
	opts.ComputeTraversal = false
	m := mustBuild(t, []Vector{{0.0, 0.0}, {1.0, 0.0}, {2.0, 0.0}}, []Vector{{0.0, 1.0}, {0.0, 2.0}, {0.0, 3.0}}, &opts)
	var tests = []struct {
		p          Vector
		start, end [2]int
	}{
		{Vector{0.0, 0.0}, [2]int{0, 0}, [2]int{0, 0}},
		{Vector{0.5, 0.5}, [2]int{0, 0}, [2]int{0, 0}},
		{Vector{1.0, 0.5}, [2]int{1, 0}, [2]int{0, 0}},
		{Vector{1.0, 1.0}, [2]int{1, 1}, [2]int{0, 0}},
		{Vector{2.0, 2.0}, [2]int{1, 1}, [2]int{1, 1}},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			gs, ge := m.GridStart(tt.p), m.GridEnd(tt.p)
			test.T(t, [2]int{gs.I, gs.J}, tt.start)
			test.T(t, [2]int{ge.I, ge.J}, tt.end)
		})
	}

	test.T(t, m.Start().Point, Vector{0.0, 0.0})
	test.T(t, m.End().Point, Vector{2.0, 2.0})
	test.T(t, [2]int{m.End().I, m.End().J}, [2]int{1, 1})
	test.Float(t, m.EpsilonAt(Vector{0.0, 0.0}), 1.0)
	test.Float(t, m.EpsilonAt(Vector{2.0, 2.0}), math.Sqrt(13.0))
}

func TestDecide(t *testing.T) {
	m := mustBuild(t, scenarios[1].p, scenarios[1].q, nil)
	L := m.Q.Length
	var tests = []struct {
		x, y, eps float64
		ok        bool
	}{
		{2.0, L, 0.5, false},
		{2.0, L, 0.9, false},
		{2.0, L, 1.1, true},
		{2.0, L, 2.0, true},
		{0.0, 0.0, 0.0, true},
		{0.1, 0.1, 0.1, true},
		{0.5, 2.0, 0.5, false},
		{10.0, 10.0, 1.1, true},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, m.Decide(tt.x, tt.y, tt.eps), tt.ok)
		})
	}

	// monotone in epsilon
	prev := false
	for eps := 0.0; eps < 2.0; eps += 0.05 {
		ok := m.Decide(2.0, L, eps)
		test.That(t, !prev || ok, "decision not monotone at", eps)
		prev = ok
	}
	test.That(t, prev)
}

func TestDecideTraversal(t *testing.T) {
	m := mustBuild(t, scenarios[0].p, scenarios[0].q, nil)
	eps := m.MinimalEpsilon()
	test.That(t, m.DecideTraversal(m.Start(), m.End(), eps*(1.0+DecisionSlack)+Tolerance))
	test.That(t, !m.DecideTraversal(m.Start(), m.End(), 0.9*eps))
	test.That(t, m.DecideTraversal(m.Start(), m.Start(), 0.0))
}

func TestDescribe(t *testing.T) {
	m := mustBuild(t, scenarios[0].p, scenarios[0].q, nil)
	s := Describe(m, m.Traversal())
	test.That(t, strings.Contains(s, "-Traversal:"), s)
	test.That(t, strings.Contains(s, "Decision: true"), s)
	test.String(t, Describe(m, nil), "empty traversal")
	test.That(t, strings.Contains(m.String(), "CellMatrix 1x1"), m.String())
}

func TestSampleLevels(t *testing.T) {
	m := mustBuild(t, scenarios[0].p, scenarios[0].q, nil)
	test.T(t, m.SampleLevels(-1), []float64{m.MinimalEpsilon()})
	test.T(t, len(m.SampleLevels(0)), 0)

	levels := m.SampleLevels(4)
	test.T(t, len(levels), 5)
	test.Float(t, levels[0], 1.0)
	test.Float(t, levels[4], math.Sqrt2)
}

func TestSample(t *testing.T) {
	m := mustBuild(t, scenarios[1].p, scenarios[1].q, nil)
	opts := DefaultSampleOptions
	opts.Heatmap = 10
	opts.CrossSectionPoints = 20
	s := m.Sample(append(m.SampleLevels(2), -1.0, 100.0), opts)

	test.Float(t, s.Lengths.X, 2.0)
	test.Float(t, s.Lengths.Y, 2.0*math.Sqrt2)
	test.T(t, len(s.Levels), 3)
	test.T(t, len(s.Cells), 2)
	test.T(t, s.Borders, [][2]Vector{{{0.0, math.Sqrt2}, {2.0, math.Sqrt2}}})

	test.T(t, len(s.Heatmap.Xs), 11)
	test.T(t, len(s.Heatmap.Ys), 15)
	test.T(t, len(s.Heatmap.Z), 15)
	test.T(t, len(s.Heatmap.Z[0]), 11)
	test.Float(t, s.Heatmap.Z[0][0], 0.0)
	test.Float(t, s.Heatmap.Z[0][10], 2.0)

	test.T(t, len(s.CrossSectionsP), 3)
	test.T(t, len(s.CrossSectionsQ), 2)
	test.T(t, len(s.CriticalEvents), len(m.Events.List()))

	test.T(t, len(s.Traversals), len(m.Traversals()))
	ts := s.Traversals[0]
	first, last := ts.Profile[0], ts.Profile[len(ts.Profile)-1]
	test.T(t, first.T, 0.0)
	test.Float(t, first.Epsilon, 0.0)
	test.Float(t, last.X, 2.0)
	test.Float(t, last.Y, 2.0*math.Sqrt2)
	test.Float(t, last.T, m.Traversal().Len())
	test.That(t, 0 < len(ts.Matches))
	test.That(t, 0 < len(ts.Critical))
	test.That(t, ts.Epsilon.End <= 1.0+1e-6, "traversal epsilon", ts.Epsilon.End)
	for k := 1; k < len(ts.Profile); k++ {
		test.That(t, ts.Profile[k-1].T <= ts.Profile[k].T, "profile goes back at", k)
	}

	s = m.Sample(nil, SampleOptions{})
	test.That(t, s.Heatmap == nil)
	test.T(t, len(s.CrossSectionsP), 0)
}
