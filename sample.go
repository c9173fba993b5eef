package frechet

import (
	"math"

	"go.uber.org/zap"
)

// SampleOptions are the resolutions used by Sample.
type SampleOptions struct {
	EllipsePoints      int // points per full ellipse
	Heatmap            int // heat map columns along P, zero disables the heat map
	TraversalPoints    int // points per segment of the longer path along each traversal
	CrossSectionPoints int // points along each cross-section, zero disables cross-sections
}

// DefaultSampleOptions are the default sampling resolutions.
var DefaultSampleOptions = SampleOptions{
	EllipsePoints:      100,
	Heatmap:            100,
	TraversalPoints:    10,
	CrossSectionPoints: 100,
}

// Level is the border of the free space of a cell at one epsilon.
type Level struct {
	Epsilon float64
	Arcs    [][]Vector
}

// CellSample holds the polylines of a single cell.
type CellSample struct {
	I, J   int
	Levels []Level
	Lines  [][]Vector // the steepest-descent lines clipped to the cell
}

// Heatmap holds the epsilon on a regular grid, Z[j][i] is the epsilon at (Xs[i],Ys[j]).
type Heatmap struct {
	Xs, Ys []float64
	Z      [][]float64
}

// ProfilePoint is a point along a traversal with its epsilon and the length walked so far.
type ProfilePoint struct {
	X, Y, Epsilon, T float64
}

// TraversalSample is the profile of a traversal and the matched point pairs on P and Q.
type TraversalSample struct {
	Epsilon  Interval // smallest and largest epsilon at the waypoints
	Profile  []ProfilePoint
	Matches  [][2]Vector // evenly spread pairs of points matched by the traversal
	Critical [][2]Vector // pairs at the waypoints of largest epsilon
}

// Sample is a read-only projection of the diagram for plotting.
type Sample struct {
	Lengths        Vector // total arclength of P and Q
	BoundsL        Interval
	Levels         []float64
	Cells          []CellSample
	Borders        [][2]Vector // interior cell borders, vertical first
	Heatmap        *Heatmap
	CriticalEvents []*Traversal
	Traversals     []TraversalSample

	// CrossSectionsP holds the sampled cross-section along P for every point of Q, CrossSectionsQ vice versa. The polylines give (arclength, epsilon).
	CrossSectionsP, CrossSectionsQ [][]Vector
}

// Sample returns the free space of every cell at the given levels together with the heat map, the critical events, and the traversals.
func (m *CellMatrix) Sample(levels []float64, opts SampleOptions) Sample {
	s := Sample{
		Lengths:        Vector{m.P.Length, m.Q.Length},
		BoundsL:        m.L,
		CriticalEvents: m.Events.List(),
	}
	for _, eps := range levels {
		if !m.L.Contains(eps) {
			m.log.Debug("sample level out of bounds", zap.Float64("level", eps), zap.Stringer("bounds", m.L))
			continue
		}
		s.Levels = append(s.Levels, eps)
	}

	for _, row := range m.Cells {
		for _, c := range row {
			s.Cells = append(s.Cells, c.Sample(s.Levels, opts.EllipsePoints))
		}
	}
	for i := 1; i < m.P.Count(); i++ {
		s.Borders = append(s.Borders, [2]Vector{{m.P.Offsets[i], 0.0}, {m.P.Offsets[i], m.Q.Length}})
	}
	for j := 1; j < m.Q.Count(); j++ {
		s.Borders = append(s.Borders, [2]Vector{{0.0, m.Q.Offsets[j]}, {m.P.Length, m.Q.Offsets[j]}})
	}

	if 0 < opts.Heatmap {
		s.Heatmap = m.SampleHeatmap(opts.Heatmap)
	}
	n := opts.TraversalPoints * max(m.P.Count(), m.Q.Count())
	for _, t := range m.traversals {
		s.Traversals = append(s.Traversals, m.SampleTraversal(t, n))
	}
	if 0 < opts.CrossSectionPoints {
		s.CrossSectionsP, s.CrossSectionsQ = m.SampleCrossSections(opts.CrossSectionPoints)
	}
	return s
}

// SampleLevels returns n+1 levels evenly spread over the distance bounds of the diagram. For n equal to -1 it returns the minimal epsilon only.
func (m *CellMatrix) SampleLevels(n int) []float64 {
	if n == -1 {
		return []float64{m.epsilon}
	}
	var levels []float64
	for i := 0; 0 < n && i <= n; i++ {
		levels = append(levels, m.L.Start+float64(i)/float64(n)*(m.L.End-m.L.Start))
	}
	return levels
}

// Sample returns the border of the free space at every level within the distance bounds of the cell, and its steepest-descent lines.
func (c *Cell) Sample(levels []float64, n int) CellSample {
	s := CellSample{I: c.I, J: c.J}
	for _, eps := range levels {
		if !c.L.Contains(eps) {
			continue
		}
		lvl := Level{Epsilon: eps}
		if Equal(eps, 0.0) && !c.Parallel {
			if m := c.Ellipse.Center(); c.Contains(m) {
				lvl.Arcs = [][]Vector{{m}}
			}
		} else {
			lvl.Arcs = c.Ellipse.Scale(eps).Cut(c.X, c.Y, n)
		}
		s.Levels = append(s.Levels, lvl)
	}

	lines := []LineSegment{c.LVer}
	if !c.Parallel {
		lines = append(lines, c.LHor)
	}
	for _, ls := range lines {
		if rs := ls.CutRect(c.X, c.Y); 2 <= len(rs) {
			s.Lines = append(s.Lines, []Vector{ls.Fr(rs[0]), ls.Fr(rs[len(rs)-1])})
		}
	}
	return s
}

// SampleHeatmap returns the epsilon on a grid with n columns along P and a proportional number of rows along Q.
func (m *CellMatrix) SampleHeatmap(n int) *Heatmap {
	nx := max(1, n)
	ny := max(1, int(math.Floor(float64(nx)*m.Q.Length/m.P.Length)))
	h := &Heatmap{
		Xs: make([]float64, nx+1),
		Ys: make([]float64, ny+1),
		Z:  make([][]float64, ny+1),
	}
	for i := range h.Xs {
		h.Xs[i] = float64(i) / float64(nx) * m.P.Length
	}
	for j := range h.Ys {
		h.Ys[j] = float64(j) / float64(ny) * m.Q.Length
		h.Z[j] = make([]float64, nx+1)
		for i, x := range h.Xs {
			h.Z[j][i] = m.EpsilonAt(Vector{x, h.Ys[j]})
		}
	}
	return h
}

// SampleCrossSections returns the cross-sections along P for every point of Q and along Q for every point of P, with about n points along P and a proportional number along Q.
func (m *CellMatrix) SampleCrossSections(n int) ([][]Vector, [][]Vector) {
	nq := max(1, int(math.Floor(float64(n)*m.Q.Length/m.P.Length)))
	sample := func(css []*CrossSection, n int) [][]Vector {
		polys := make([][]Vector, len(css))
		for k, cs := range css {
			for i, h := range cs.Hyperbolas {
				ls := cs.Path.Segments[i]
				polys[k] = append(polys[k], h.Sample(cs.Path.SegmentBounds(i), int(math.Ceil(float64(n)*ls.L/cs.Path.Length)))...)
			}
		}
		return polys
	}
	return sample(m.AlongP, n), sample(m.AlongQ, nq)
}

// SampleTraversal returns the epsilon profile along t with about n points, and the pairs of points on P and Q that it matches.
func (m *CellMatrix) SampleTraversal(t *Traversal, n int) TraversalSample {
	s := TraversalSample{Epsilon: IntervalFrom(t.Epsilons)}
	pair := func(p Vector) [2]Vector {
		return [2]Vector{m.P.At(p.X), m.Q.At(p.Y)}
	}

	total := t.Len()
	walked := 0.0
	k := 0
	for i := 1; i < len(t.Points); i++ {
		p1, p2 := t.Points[i-1], t.Points[i]
		l := p1.Dist(p2)
		if Equal(l, 0.0) {
			continue
		}
		if Equal(t.Epsilons[i-1], t.Epsilon) {
			s.Critical = append(s.Critical, pair(p1))
		}
		nt := 1
		if 0.0 < total {
			nt = max(1, int(math.Ceil(l/total*float64(n))))
		}
		for j := 0; j < nt; j++ {
			p := p1.Interpolate(p2, float64(j)/float64(nt))
			s.Profile = append(s.Profile, ProfilePoint{p.X, p.Y, m.EpsilonAt(p), walked + float64(j)/float64(nt)*l})
			if k%10 == 0 {
				s.Matches = append(s.Matches, pair(p))
			}
			k++
		}
		walked += l
	}

	last := t.Points[len(t.Points)-1]
	if Equal(t.Epsilons[len(t.Epsilons)-1], t.Epsilon) {
		s.Critical = append(s.Critical, pair(last))
	}
	s.Profile = append(s.Profile, ProfilePoint{last.X, last.Y, m.EpsilonAt(last), walked})
	s.Matches = append(s.Matches, pair(last))
	return s
}
