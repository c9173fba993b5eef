package frechet

import (
	"fmt"
	"math"
	"sort"
)

// LineSegment is a directed segment from P1 to P2. M and N are the slope and intercept of its supporting line, for vertical lines M is +Inf and N holds the x-coordinate.
type LineSegment struct {
	P1, P2 Vector
	D      Vector  // P2-P1
	L      float64 // length
	M, N   float64
}

// NewLineSegment returns the segment from p1 to p2. It returns ErrDegenerate when both points coincide.
func NewLineSegment(p1, p2 Vector) (LineSegment, error) {
	if p1.Equals(p2) {
		return LineSegment{}, fmt.Errorf("segment %v-%v has zero length: %w", p1, p2, ErrDegenerate)
	}
	return segment(p1, p2), nil
}

// segment returns the segment from p1 to p2 without checking for zero length.
func segment(p1, p2 Vector) LineSegment {
	d := p2.Sub(p1)
	ls := LineSegment{
		P1: p1,
		P2: p2,
		D:  d,
		L:  d.Length(),
	}
	if Equal(d.X, 0.0) {
		ls.M = math.Inf(1)
		ls.N = p1.X
	} else {
		ls.M = d.Y / d.X
		ls.N = p1.Y - ls.M*p1.X
	}
	return ls
}

// IsVertical returns true if the supporting line is vertical.
func (ls LineSegment) IsVertical() bool {
	return math.IsInf(ls.M, 0)
}

// Fr returns the point at the relative position r, where r=0 is P1 and r=1 is P2.
func (ls LineSegment) Fr(r float64) Vector {
	return ls.P1.Add(ls.D.Mul(r))
}

// Frl returns the point at arclength rl from P1.
func (ls LineSegment) Frl(rl float64) Vector {
	return ls.Fr(rl / ls.L)
}

// Fx returns the y-coordinate of the supporting line at x, or NaN for vertical lines.
func (ls LineSegment) Fx(x float64) float64 {
	if ls.IsVertical() {
		return math.NaN()
	}
	return ls.M*x + ls.N
}

// Fy returns the x-coordinate of the supporting line at y, or NaN for horizontal lines.
func (ls LineSegment) Fy(y float64) float64 {
	if ls.IsVertical() {
		return ls.N
	} else if ls.M == 0.0 {
		return math.NaN()
	}
	return (y - ls.N) / ls.M
}

// Px returns the point on the supporting line at x.
func (ls LineSegment) Px(x float64) Vector {
	return Vector{x, ls.Fx(x)}
}

// Py returns the point on the supporting line at y.
func (ls LineSegment) Py(y float64) Vector {
	return Vector{ls.Fy(y), y}
}

// Rx returns the relative position of x along the segment, or NaN if the segment is vertical.
func (ls LineSegment) Rx(x float64) float64 {
	if Equal(ls.D.X, 0.0) {
		return math.NaN()
	}
	return (x - ls.P1.X) / ls.D.X
}

// Ry returns the relative position of y along the segment, or NaN if the segment is horizontal.
func (ls LineSegment) Ry(y float64) float64 {
	if Equal(ls.D.Y, 0.0) {
		return math.NaN()
	}
	return (y - ls.P1.Y) / ls.D.Y
}

// Rlx returns the arclength of x along the segment.
func (ls LineSegment) Rlx(x float64) float64 {
	return ls.Rx(x) * ls.L
}

// Rly returns the arclength of y along the segment.
func (ls LineSegment) Rly(y float64) float64 {
	return ls.Ry(y) * ls.L
}

// RPoint returns the relative position of a point on the supporting line.
func (ls LineSegment) RPoint(p Vector) float64 {
	rx, ry := ls.Rx(p.X), ls.Ry(p.Y)
	if math.IsNaN(rx) {
		return ry
	} else if math.IsNaN(ry) {
		return rx
	}
	return 0.5 * (rx + ry)
}

// RlPoint returns the arclength position of a point on the supporting line.
func (ls LineSegment) RlPoint(p Vector) float64 {
	return ls.RPoint(p) * ls.L
}

// ContainsPoint returns true if p lies on the segment, endpoints included.
func (ls LineSegment) ContainsPoint(p Vector) bool {
	if !ls.On(p) {
		return false
	}
	r := ls.RPoint(p)
	return lessEqual(0.0, r) && lessEqual(r, 1.0)
}

// On returns true if p lies on the supporting line.
func (ls LineSegment) On(p Vector) bool {
	return Equal(p.Y, ls.Fx(p.X)) || Equal(p.X, ls.Fy(p.Y))
}

// Above returns true if p lies strictly above the supporting line.
func (ls LineSegment) Above(p Vector) bool {
	return !ls.On(p) && p.Y > ls.Fx(p.X)
}

// Below returns true if p lies strictly below the supporting line.
func (ls LineSegment) Below(p Vector) bool {
	return !ls.On(p) && p.Y < ls.Fx(p.X)
}

// Left returns true if p lies strictly left of the supporting line.
func (ls LineSegment) Left(p Vector) bool {
	return !ls.On(p) && p.X < ls.Fy(p.Y)
}

// Right returns true if p lies strictly right of the supporting line.
func (ls LineSegment) Right(p Vector) bool {
	return !ls.On(p) && p.X > ls.Fy(p.Y)
}

// Project returns the orthogonal projection of p onto the supporting line.
func (ls LineSegment) Project(p Vector) Vector {
	n := ls.D.Norm()
	return ls.P1.Add(n.Mul(n.Dot(p.Sub(ls.P1))))
}

// ProjectRl returns the arclength position of the orthogonal projection of p, which may lie outside [0,L].
func (ls LineSegment) ProjectRl(p Vector) float64 {
	return ls.D.Norm().Dot(p.Sub(ls.P1))
}

// DistLine returns the distance from p to the supporting line.
func (ls LineSegment) DistLine(p Vector) float64 {
	return math.Abs(ls.D.PerpDot(p.Sub(ls.P1))) / ls.L
}

// DistPoint returns the distance from p to the segment.
func (ls LineSegment) DistPoint(p Vector) float64 {
	rl := ls.ProjectRl(p)
	if rl <= 0.0 {
		return p.Dist(ls.P1)
	} else if ls.L <= rl {
		return p.Dist(ls.P2)
	}
	return ls.DistLine(p)
}

// Parallel returns true if both supporting lines have about the same slope.
func (ls LineSegment) Parallel(o LineSegment) bool {
	return Equal(ls.M, o.M)
}

// IntersectionR returns the relative positions along ls and o of the intersection of their supporting lines. It returns false for parallel lines.
func (ls LineSegment) IntersectionR(o LineSegment) (float64, float64, bool) {
	if ls.Parallel(o) {
		return math.NaN(), math.NaN(), false
	}
	det := ls.D.PerpDot(o.D)
	if det == 0.0 {
		return math.NaN(), math.NaN(), false
	}
	b := ls.P1.Sub(o.P1)
	r := o.D.PerpDot(b) / det
	s := ls.D.PerpDot(b) / det
	return r, s, true
}

// IntersectionRl returns the arclength along ls of the intersection with o's supporting line, or NaN for parallel lines.
func (ls LineSegment) IntersectionRl(o LineSegment) float64 {
	r, _, ok := ls.IntersectionR(o)
	if !ok {
		return math.NaN()
	}
	return r * ls.L
}

// Intersection returns the intersection point of both supporting lines.
func (ls LineSegment) Intersection(o LineSegment) (Vector, bool) {
	r, _, ok := ls.IntersectionR(o)
	if !ok {
		return Vector{}, false
	}
	return ls.Fr(r), true
}

// CutRect returns the sorted relative positions where the supporting line crosses the borders of the rectangle x×y.
func (ls LineSegment) CutRect(x, y Interval) []float64 {
	var rs []float64
	add := func(r float64, p Vector) {
		if math.IsNaN(r) || !p.In(x, y) {
			return
		}
		for _, r2 := range rs {
			if Equal(r, r2) {
				return
			}
		}
		rs = append(rs, r)
	}
	for _, bx := range []float64{x.Start, x.End} {
		if r := ls.Rx(bx); !math.IsNaN(r) {
			add(r, Vector{bx, ls.Fr(r).Y})
		}
	}
	for _, by := range []float64{y.Start, y.End} {
		if r := ls.Ry(by); !math.IsNaN(r) {
			add(r, Vector{ls.Fr(r).X, by})
		}
	}
	sort.Float64s(rs)
	return rs
}

// HyperbolaWithPoint returns the distance from points on the segment to p as a function of their arclength.
func (ls LineSegment) HyperbolaWithPoint(p Vector) Hyperbola {
	return NewHyperbola(Vector{ls.ProjectRl(p), ls.DistLine(p)})
}

// HyperbolaWithLine returns the distance between ls.Frl(t*ls.L/l) and o.Frl(t*o.L/l) as a function of t in [0,l] with l = sqrt(ls.L^2+o.L^2), ie. for a straight walk through the cell of both segments. It is fitted on the distances at both ends and at the middle. When the fit has no curvature the distance is constant and the returned bool is false if the fit was inconsistent.
func (ls LineSegment) HyperbolaWithLine(o LineSegment) (Hyperbola, bool) {
	l := math.Hypot(ls.L, o.L)
	d1 := ls.P1.Dist(o.P1)
	d2 := ls.Fr(0.5).Dist(o.Fr(0.5))
	d3 := ls.P2.Dist(o.P2)

	g2 := d2*d2 - d1*d1
	g3 := d3*d3 - d1*d1
	a := (2.0*g3 - 4.0*g2) / (l * l)
	b := (4.0*g2 - g3) / l
	c := d1 * d1
	if Equal(a, 0.0) {
		return Hyperbola{S: Vector{0.0, math.Sqrt(c)}, A: 0.0}, Equal(b, 0.0)
	}
	w := math.Max(0.0, c-b*b/(4.0*a))
	return Hyperbola{S: Vector{-b / (2.0 * a), math.Sqrt(w)}, A: a}, true
}

func (ls LineSegment) String() string {
	return fmt.Sprintf("%v-%v", ls.P1, ls.P2)
}
