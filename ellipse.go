package frechet

import (
	"fmt"
	"math"
	"sort"
)

// NormEllipse is the locus of points in a cell where the distance between both segments equals one. Scaling it by epsilon gives the border of the free space at epsilon. For intersecting segments it is an Ellipse, for parallel segments an InfiniteEllipse.
type NormEllipse interface {
	// Center returns the point of minimal distance, or an anchor on the line of minimal distance.
	Center() Vector
	// Scale returns the locus for distance l.
	Scale(l float64) NormEllipse
	// Cut returns the polylines of the locus inside the rectangle x×y, sampled with n points for curved parts.
	Cut(x, y Interval, n int) [][]Vector
}

// Ellipse is the curve M + A*cos(t) + B*sin(t).
type Ellipse struct {
	M, A, B Vector
}

// Center returns the midpoint.
func (e Ellipse) Center() Vector {
	return e.M
}

// Scale multiplies both axes by l.
func (e Ellipse) Scale(l float64) NormEllipse {
	return Ellipse{e.M, e.A.Mul(l), e.B.Mul(l)}
}

// P returns the point at parameter t.
func (e Ellipse) P(t float64) Vector {
	return e.M.Add(e.A.Mul(math.Cos(t))).Add(e.B.Mul(math.Sin(t)))
}

// Tx returns the parameters where the ellipse has x-coordinate x.
func (e Ellipse) Tx(x float64) []float64 {
	return ellipseParams(e.A.X, e.B.X, e.M.X, x)
}

// Ty returns the parameters where the ellipse has y-coordinate y.
func (e Ellipse) Ty(y float64) []float64 {
	return ellipseParams(e.A.Y, e.B.Y, e.M.Y, y)
}

// ellipseParams solves m + a*cos(t) + b*sin(t) = v for t using the tangent half-angle substitution.
func ellipseParams(a, b, m, v float64) []float64 {
	w := a*a + b*b - (m-v)*(m-v)
	if w < 0.0 && !Equal(w, 0.0) {
		return nil
	}
	w = math.Max(w, 0.0)
	den := a - m + v
	if Equal(den, 0.0) {
		// one solution at u=tan(t/2)=inf
		ts := []float64{math.Pi}
		if b != 0.0 {
			ts = append(ts, 2.0*math.Atan(-a/b))
		}
		return ts
	} else if w == 0.0 {
		return []float64{2.0 * math.Atan2(b, den)}
	}
	sw := math.Sqrt(w)
	return []float64{2.0 * math.Atan2(b-sw, den), 2.0 * math.Atan2(b+sw, den)}
}

// CutT returns the sorted parameters in [0,2PI) where the ellipse crosses the borders of the rectangle x×y.
func (e Ellipse) CutT(x, y Interval) []float64 {
	var ts []float64
	for _, t := range append(e.Tx(x.Start), e.Tx(x.End)...) {
		t = angleNorm(t)
		if y.Contains(e.P(t).Y) {
			ts = append(ts, t)
		}
	}
	for _, t := range append(e.Ty(y.Start), e.Ty(y.End)...) {
		t = angleNorm(t)
		if x.Contains(e.P(t).X) {
			ts = append(ts, t)
		}
	}
	if len(ts) == 0 {
		return nil
	}
	sort.Float64s(ts)
	uniq := ts[:1]
	for _, t := range ts[1:] {
		if !Equal(uniq[len(uniq)-1], t) {
			uniq = append(uniq, t)
		}
	}
	return uniq
}

// CutP returns the points where the ellipse crosses the borders of the rectangle x×y.
func (e Ellipse) CutP(x, y Interval) []Vector {
	ts := e.CutT(x, y)
	ps := make([]Vector, 0, len(ts))
	for _, t := range ts {
		ps = append(ps, e.P(t))
	}
	return ps
}

// Cut returns the arcs of the ellipse inside the rectangle x×y, each sampled with n+1 points.
func (e Ellipse) Cut(x, y Interval, n int) [][]Vector {
	if n < 1 {
		n = 1
	}
	ts := e.CutT(x, y)
	if len(ts) == 0 {
		if e.P(0.0).In(x, y) {
			return [][]Vector{e.sample(0.0, 2.0*math.Pi, n)}
		}
		return nil
	}

	var arcs [][]Vector
	for i, t0 := range ts {
		t1 := ts[0] + 2.0*math.Pi
		if i+1 < len(ts) {
			t1 = ts[i+1]
		}
		if e.P(t0 + 0.5*(t1-t0)).In(x, y) {
			arcs = append(arcs, e.sample(t0, t1, n))
		}
	}
	return arcs
}

func (e Ellipse) sample(t0, t1 float64, n int) []Vector {
	ps := make([]Vector, 0, n+1)
	for i := 0; i <= n; i++ {
		ps = append(ps, e.P(t0+float64(i)/float64(n)*(t1-t0)))
	}
	return ps
}

func (e Ellipse) String() string {
	return fmt.Sprintf("Ellipse(m=%v a=%v b=%v)", e.M, e.A, e.B)
}

////////////////////////////////////////////////////////////////

// InfiniteEllipse is the degenerate ellipse of two parallel segments: a band of lines in direction A around the line through M. L1 is the distance between both segments and L2 the scaled distance, for L2 > L1 the band has two border lines through M1 and M2.
type InfiniteEllipse struct {
	M, M1, M2 Vector
	A         Vector
	L1, L2    float64
}

// NewInfiniteEllipse returns the band through anchor m in direction a for two parallel segments at distance l1, scaled to l2.
func NewInfiniteEllipse(m, a Vector, l1, l2 float64) InfiniteEllipse {
	e := InfiniteEllipse{M: m, M1: m, M2: m, A: a, L1: l1, L2: l2}
	if l1 < l2 {
		dm := Vector{math.Sqrt(l2*l2 - l1*l1), 0.0}
		e.M1 = m.Sub(dm)
		e.M2 = m.Add(dm)
	}
	return e
}

// Center returns the anchor of the line of minimal distance.
func (e InfiniteEllipse) Center() Vector {
	return e.M
}

// Scale returns the band for distance l.
func (e InfiniteEllipse) Scale(l float64) NormEllipse {
	return NewInfiniteEllipse(e.M, e.A, e.L1, l)
}

// CutP returns for each border line the points where it crosses the rectangle x×y.
func (e InfiniteEllipse) CutP(x, y Interval) [][]Vector {
	var anchors []Vector
	if e.L1 < e.L2 {
		anchors = []Vector{e.M1, e.M2}
	} else {
		anchors = []Vector{e.M}
	}

	var lines [][]Vector
	for _, m := range anchors {
		ls := segment(m, m.Add(e.A))
		var ps []Vector
		for _, r := range ls.CutRect(x, y) {
			ps = append(ps, ls.Fr(r))
		}
		lines = append(lines, ps)
	}
	return lines
}

// Cut returns the border lines inside the rectangle x×y.
func (e InfiniteEllipse) Cut(x, y Interval, n int) [][]Vector {
	var lines [][]Vector
	for _, ps := range e.CutP(x, y) {
		if 2 <= len(ps) {
			lines = append(lines, []Vector{ps[0], ps[len(ps)-1]})
		}
	}
	return lines
}

func (e InfiniteEllipse) String() string {
	return fmt.Sprintf("InfiniteEllipse(m=%v a=%v l1=%g l2=%g)", e.M, e.A, e.L1, e.L2)
}
