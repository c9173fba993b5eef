package frechet

import (
	"fmt"
	"math"
	"sort"
)

// Hyperbola is the curve y = sqrt(S.Y^2 + A*(x-S.X)^2) with vertex S. It describes the distance between a point walking along a straight line and a fixed point (A=1), or between two points walking along two straight lines simultaneously (A>=0).
type Hyperbola struct {
	S Vector
	A float64
}

// NewHyperbola returns a hyperbola with vertex s and shape coefficient 1.
func NewHyperbola(s Vector) Hyperbola {
	return Hyperbola{S: s, A: 1.0}
}

// Fx returns the height at x.
func (h Hyperbola) Fx(x float64) float64 {
	dx := x - h.S.X
	return math.Sqrt(h.S.Y*h.S.Y + h.A*dx*dx)
}

// Px returns the point on the hyperbola at x.
func (h Hyperbola) Px(x float64) Vector {
	return Vector{x, h.Fx(x)}
}

// Fy returns the zero, one, or two x-coordinates where the hyperbola has height y, in increasing order.
func (h Hyperbola) Fy(y float64) []float64 {
	if Equal(y, h.S.Y) {
		return []float64{h.S.X}
	} else if y < h.S.Y || h.A <= 0.0 {
		return nil
	}
	w := math.Sqrt((y*y - h.S.Y*h.S.Y) / h.A)
	return []float64{h.S.X - w, h.S.X + w}
}

// Fax returns the slope at x.
func (h Hyperbola) Fax(x float64) float64 {
	y := h.Fx(x)
	if y == 0.0 {
		if h.A == 0.0 || x == h.S.X {
			return 0.0
		}
		return math.Copysign(math.Sqrt(h.A), x-h.S.X)
	}
	return h.A * (x - h.S.X) / y
}

// F2ax returns the derivative of the squared hyperbola at x.
func (h Hyperbola) F2ax(x float64) float64 {
	return 2.0 * h.A * (x - h.S.X)
}

// F2aax returns the second derivative of the squared hyperbola, which is constant.
func (h Hyperbola) F2aax() float64 {
	return 2.0 * h.A
}

// Orientation returns the sign of the slope at x: negative left of the vertex, positive right of it, and zero at the vertex.
func (h Hyperbola) Orientation(x float64) float64 {
	if Equal(x, h.S.X) {
		return 0.0
	}
	return x - h.S.X
}

// ReflectX mirrors the hyperbola at the vertical line through x. The result has shape coefficient 1.
func (h Hyperbola) ReflectX(x float64) Hyperbola {
	return NewHyperbola(Vector{h.S.X + 2.0*h.Orientation(x), h.S.Y})
}

// MoveX moves the hyperbola horizontally by dx.
func (h Hyperbola) MoveX(dx float64) Hyperbola {
	return Hyperbola{Vector{h.S.X + dx, h.S.Y}, h.A}
}

// Scale stretches the hyperbola horizontally by f.
func (h Hyperbola) Scale(f float64) Hyperbola {
	return Hyperbola{Vector{h.S.X * f, h.S.Y}, h.A / (f * f)}
}

// Intersect returns the intersection points of both hyperbolas in increasing x. Only pairs where at least one hyperbola has shape coefficient 1 are solved. Identical vertices with unit shape return the vertex.
func (h Hyperbola) Intersect(o Hyperbola) []Vector {
	s1, s2 := h.S, o.S
	var xs []float64
	if h.A == 1.0 && o.A == 1.0 {
		if s1.Equals(s2) {
			xs = []float64{s1.X}
		} else if !Equal(s1.X, s2.X) {
			xs = []float64{0.5 * (s1.Y*s1.Y + s1.X*s1.X - s2.Y*s2.Y - s2.X*s2.X) / (s1.X - s2.X)}
		}
	} else if o.A == 1.0 || h.A == 1.0 {
		// solve s1y^2 + a1*(x-s1x)^2 = s2y^2 + a2*(x-s2x)^2
		a1, a2 := h.A, o.A
		a := a1 - a2
		b := -2.0 * (a1*s1.X - a2*s2.X)
		c := a1*s1.X*s1.X - a2*s2.X*s2.X + s1.Y*s1.Y - s2.Y*s2.Y
		x1, x2 := solveQuadraticFormula(a, b, c)
		for _, x := range []float64{x1, x2} {
			if !math.IsNaN(x) {
				xs = append(xs, x)
			}
		}
	}

	ps := make([]Vector, 0, len(xs))
	for _, x := range xs {
		ps = append(ps, h.Px(x))
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].X < ps[j].X })
	return ps
}

// IntersectIn returns the intersection points whose x lies in bounds.
func (h Hyperbola) IntersectIn(o Hyperbola, bounds Interval) []Vector {
	var ps []Vector
	for _, p := range h.Intersect(o) {
		if bounds.Contains(p.X) {
			ps = append(ps, p)
		}
	}
	return ps
}

// IntersectCritical returns the intersection points in bounds where both hyperbolas move in opposite directions. For orientation 1, h must be falling (or at its vertex) and o rising (or at its vertex), for orientation -1 the other way around.
func (h Hyperbola) IntersectCritical(o Hyperbola, bounds Interval, orientation int) []Vector {
	var ps []Vector
	for _, p := range h.IntersectIn(o, bounds) {
		oh, oo := h.Orientation(p.X), o.Orientation(p.X)
		if 0 < orientation && oh <= 0.0 && 0.0 <= oo || orientation < 0 && 0.0 <= oh && oo <= 0.0 {
			ps = append(ps, p)
		}
	}
	return ps
}

// Sample returns n+1 points along the hyperbola for x in bounds.
func (h Hyperbola) Sample(bounds Interval, n int) []Vector {
	if bounds.IsEmpty() || n < 1 {
		return nil
	}
	ps := make([]Vector, 0, n+1)
	for i := 0; i <= n; i++ {
		x := bounds.Start + float64(i)/float64(n)*(bounds.End-bounds.Start)
		ps = append(ps, h.Px(x))
	}
	return ps
}

func (h Hyperbola) String() string {
	return fmt.Sprintf("H(s=%v a=%g)", h.S, h.A)
}
