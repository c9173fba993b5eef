package frechet

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
)

// segmentPair holds the shared parameters of two segments from which a Cell is built.
type segmentPair struct {
	a, b     LineSegment
	bounds   Interval // smallest and largest possible distance
	parallel bool

	// intersecting lines
	s      Vector  // intersection of the supporting lines
	ra, rb float64 // relative position of s along a and b

	// parallel lines
	sameDir bool    // both segments point in the same direction
	dist    float64 // distance between the supporting lines
	anchor  Vector  // arclength position on a of the projection of b.P1, at b(0)
}

func newSegmentPair(a, b LineSegment) segmentPair {
	sp := segmentPair{
		a: a,
		b: b,
		bounds: Interval{
			math.Min(math.Min(a.DistPoint(b.P1), a.DistPoint(b.P2)), math.Min(b.DistPoint(a.P1), b.DistPoint(a.P2))),
			math.Max(math.Max(a.P1.Dist(b.P1), a.P1.Dist(b.P2)), math.Max(a.P2.Dist(b.P1), a.P2.Dist(b.P2))),
		},
	}

	var ok bool
	if sp.s, ok = a.Intersection(b); ok {
		sp.ra = a.RPoint(sp.s)
		sp.rb = b.RPoint(sp.s)
		if a.ContainsPoint(sp.s) && b.ContainsPoint(sp.s) {
			sp.bounds.Start = 0.0
		}
	} else {
		sp.parallel = true
		sp.sameDir = 0.0 <= a.RPoint(a.P1.Add(b.D))
		proj := a.Project(b.P1)
		sp.dist = b.P1.Dist(proj)
		sp.anchor = Vector{a.RPoint(proj) * a.L, 0.0}
	}
	return sp
}

// ellipse returns the norm ellipse in global coordinates.
func (sp segmentPair) ellipse(offset Vector) NormEllipse {
	if sp.parallel {
		dir := Vector{1.0, 1.0}
		if !sp.sameDir {
			dir = Vector{-1.0, 1.0}
		}
		return NewInfiniteEllipse(sp.anchor.Add(offset), dir, sp.dist, 0.0)
	}

	na, nb := sp.a.D.Norm(), sp.b.D.Norm()
	cxy := 1.0 / na.Sub(nb).Length()
	dxy := 1.0 / na.Add(nb).Length()
	m := Vector{sp.a.L * sp.ra, sp.b.L * sp.rb}
	return Ellipse{
		M: m.Add(offset),
		A: Vector{cxy, cxy},
		B: Vector{-dxy, dxy},
	}
}

////////////////////////////////////////////////////////////////

// Cell is the free space of segment I of path P against segment J of path Q. Coordinates are global arclengths, X along P and Y along Q.
type Cell struct {
	I, J     int
	Parallel bool
	P, Q     LineSegment

	// Ellipse is the locus of distance one, see NormEllipse.
	Ellipse NormEllipse
	X, Y    Interval // global arclength bounds
	L       Interval // smallest and largest distance
	Offset  Vector

	// Border hyperbolas give the distance along each border of the cell.
	Bottom, Top, Left, Right Hyperbola

	// LVer (l) connects the points of minimal distance on vertical lines, LHor (l') those on horizontal lines.
	LVer, LHor LineSegment

	// Acute is true if both descent lines point into the first quadrant.
	Acute bool

	log *zap.Logger
}

// NewCell returns the cell of segments p and q at the global offset.
func NewCell(i, j int, p, q LineSegment, offset Vector) *Cell {
	sp := newSegmentPair(p, q)
	c := &Cell{
		I:        i,
		J:        j,
		Parallel: sp.parallel,
		P:        p,
		Q:        q,
		Ellipse:  sp.ellipse(offset),
		X:        Interval{offset.X, offset.X + p.L},
		Y:        Interval{offset.Y, offset.Y + q.L},
		L:        sp.bounds,
		Offset:   offset,
		Bottom:   p.HyperbolaWithPoint(q.P1).MoveX(offset.X),
		Top:      p.HyperbolaWithPoint(q.P2).MoveX(offset.X),
		Left:     q.HyperbolaWithPoint(p.P1).MoveX(offset.Y),
		Right:    q.HyperbolaWithPoint(p.P2).MoveX(offset.Y),
	}

	switch e := c.Ellipse.(type) {
	case Ellipse:
		c.LVer = segment(e.M, e.P(math.Atan(e.B.X/e.A.X)))
		c.LHor = segment(e.M, e.P(math.Atan(e.B.Y/e.A.Y)))
	case InfiniteEllipse:
		c.LVer = segment(e.M, e.M.Add(e.A))
		c.LHor = c.LVer
	}
	c.Acute = c.LHor.D.Monotone() && c.LVer.D.Monotone()
	return c
}

// Epsilon returns the distance at the global point p.
func (c *Cell) Epsilon(p Vector) float64 {
	p = p.Sub(c.Offset)
	return c.P.Frl(p.X).Dist(c.Q.Frl(p.Y))
}

// Contains returns true if the global point p lies in the cell.
func (c *Cell) Contains(p Vector) bool {
	return p.In(c.X, c.Y)
}

// HorizontalHyperbola returns the distance along the horizontal line at height y through the cell.
func (c *Cell) HorizontalHyperbola(y float64) (Hyperbola, bool) {
	if !c.Y.Contains(y) {
		return Hyperbola{}, false
	} else if Equal(y, c.Y.Start) {
		return c.Bottom, true
	} else if Equal(y, c.Y.End) {
		return c.Top, true
	}
	return c.P.HyperbolaWithPoint(c.Q.Frl(y - c.Offset.Y)).MoveX(c.Offset.X), true
}

// VerticalHyperbola returns the distance along the vertical line at x through the cell.
func (c *Cell) VerticalHyperbola(x float64) (Hyperbola, bool) {
	if !c.X.Contains(x) {
		return Hyperbola{}, false
	} else if Equal(x, c.X.Start) {
		return c.Left, true
	} else if Equal(x, c.X.End) {
		return c.Right, true
	}
	return c.Q.HyperbolaWithPoint(c.P.Frl(x - c.Offset.X)).MoveX(c.Offset.Y), true
}

// FreeHorizontal returns the free interval at epsilon on the horizontal line at height y.
func (c *Cell) FreeHorizontal(y, eps float64) Interval {
	h, ok := c.HorizontalHyperbola(y)
	if !ok {
		return EmptyInterval()
	}
	return c.X.Cut(IntervalFrom(h.Fy(eps)))
}

// FreeVertical returns the free interval at epsilon on the vertical line at x.
func (c *Cell) FreeVertical(x, eps float64) Interval {
	h, ok := c.VerticalHyperbola(x)
	if !ok {
		return EmptyInterval()
	}
	return c.Y.Cut(IntervalFrom(h.Fy(eps)))
}

// FreeBorders returns the free intervals at epsilon on the bottom, top, left, and right border.
func (c *Cell) FreeBorders(eps float64) [4]Interval {
	return [4]Interval{
		c.FreeHorizontal(c.Y.Start, eps),
		c.FreeHorizontal(c.Y.End, eps),
		c.FreeVertical(c.X.Start, eps),
		c.FreeVertical(c.X.End, eps),
	}
}

func (c *Cell) logger() *zap.Logger {
	if c.log == nil {
		return zap.NewNop()
	}
	return c.log
}

func (c *Cell) String() string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "Cell(%d,%d) offset=%v\n", c.I, c.J, c.Offset)
	fmt.Fprintf(&sb, "  norm %v\n", c.Ellipse)
	fmt.Fprintf(&sb, "  l=%v l'=%v\n", c.LVer, c.LHor)
	fmt.Fprintf(&sb, "  bounds l=%v x=%v y=%v", c.L, c.X, c.Y)
	return sb.String()
}
