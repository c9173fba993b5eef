package frechet

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// DescentCase is the position of a point relative to the steepest-descent lines l and l' of a cell. The names describe the walk towards the top-right, for the walk towards the bottom-left above and below (and left and right) swap.
type DescentCase int

// see DescentCase
const (
	OnDescentLineVertical   DescentCase = iota // on l, walk along l
	OnDescentLineHorizontal                    // on l', walk along l'
	AboveBothLines                             // above l, walk horizontally
	RightOfBothLines                           // right of l', walk vertically
	Corner                                     // below l and left of l', walk diagonally
	AtMinimum                                  // in the center of the ellipse, no descent
)

func (dc DescentCase) String() string {
	switch dc {
	case OnDescentLineVertical:
		return "OnDescentLineVertical"
	case OnDescentLineHorizontal:
		return "OnDescentLineHorizontal"
	case AboveBothLines:
		return "AboveBothLines"
	case RightOfBothLines:
		return "RightOfBothLines"
	case Corner:
		return "Corner"
	case AtMinimum:
		return "AtMinimum"
	}
	return fmt.Sprintf("DescentCase(%d)", int(dc))
}

// Descent is the result of a steepest descent from a point to End.
type Descent struct {
	End     Vector
	Epsilon float64 // at End

	// Curve is the epsilon along the walk over time, where x=0 is at the lower-left end of the walk and time is the larger of the horizontal and vertical distance. It is nil when no descent took place.
	Curve *Hyperbola

	// Horizontal and Vertical are the epsilon along the walk as a function of the global x or y coordinate. Either is nil when the walk is parallel to the other axis.
	Horizontal, Vertical *Hyperbola
}

// Stalled returns true if the descent did not move.
func (d Descent) Stalled() bool {
	return d.Curve == nil
}

// DescentCase classifies a towards the top-right (direction 1) or bottom-left (direction -1). The second return value is false when the point lies in a quadrant that is inconsistent with the orientation of l and l'.
func (c *Cell) DescentCase(a Vector, direction int) (DescentCase, bool) {
	lv, lh := c.LVer, c.LHor
	var beyondV, beyondH, beforeH, beforeV bool
	if 0 < direction {
		beyondV, beyondH = lv.Above(a), lh.Right(a)
		beforeH, beforeV = lh.Left(a), lv.Below(a)
	} else {
		beyondV, beyondH = lv.Below(a), lh.Left(a)
		beforeH, beforeV = lh.Right(a), lv.Above(a)
	}

	switch {
	case !c.Parallel && c.Ellipse.Center().Equals(a):
		return AtMinimum, true
	case lv.On(a):
		return OnDescentLineVertical, true
	case lh.On(a):
		return OnDescentLineHorizontal, true
	case beyondV:
		return AboveBothLines, beforeH
	case beyondH:
		return RightOfBothLines, beforeV
	case beforeH && beforeV:
		return Corner, true
	}
	panic(fmt.Sprintf("steepest descent: unclassified point %v in cell (%d,%d)", a, c.I, c.J))
}

// SteepestDescent walks from a towards the top-right (direction 1) or the bottom-left (direction -1) along the direction of fastest decrease of epsilon, until it reaches the border of the cell or one of the descent lines. It returns an error wrapping ErrDegenerate when a is outside the cell or in the minimum of the cell.
func (c *Cell) SteepestDescent(a Vector, direction int) (Descent, error) {
	if !c.Contains(a) {
		return Descent{}, &DegeneracyError{c.I, c.J, a, "steepest descent from outside the cell"}
	} else if direction != 1 && direction != -1 {
		panic("steepest descent: direction must be 1 or -1")
	}

	eps := c.Epsilon(a)
	dc, consistent := c.DescentCase(a, direction)
	if !consistent {
		c.logger().Warn("steepest descent from inconsistent quadrant",
			zap.Int("i", c.I), zap.Int("j", c.J), zap.Stringer("a", a), zap.Stringer("case", dc))
	}
	dir := float64(direction)
	lv, lh := c.LVer, c.LHor

	var r Vector
	onL := false
	switch dc {
	case AtMinimum:
		return Descent{End: a, Epsilon: eps}, &DegeneracyError{c.I, c.J, a, "steepest descent from the minimum"}
	case OnDescentLineVertical:
		onL = true
		if c.Acute {
			r = lv.D.NormDir().Mul(dir)
		} else {
			r = Vector{dir, 0.0}
		}
	case OnDescentLineHorizontal:
		onL = true
		if c.Acute {
			r = lh.D.NormDir().Mul(dir)
		} else {
			r = Vector{0.0, dir}
		}
	case AboveBothLines:
		r = Vector{dir, 0.0}
	case RightOfBothLines:
		r = Vector{0.0, dir}
	case Corner:
		r = Vector{math.Sqrt(0.5), math.Sqrt(0.5)}.Mul(dir)
	default:
		panic("steepest descent: unknown case")
	}

	// distance to the next descent line
	ar := segment(a, a.Add(r))
	cutL := math.Inf(1)
	if !onL || !c.Acute {
		lvRl := ar.IntersectionRl(lv)
		if lessEqual(lvRl, 0.0) {
			lvRl = math.Inf(1)
		}
		lhRl := ar.IntersectionRl(lh)
		if lessEqual(lhRl, 0.0) {
			lhRl = math.Inf(1)
		}
		cutL = minNaN(lvRl, lhRl)
	} else if m := c.Ellipse.Center(); !c.Parallel && (0 < direction && a.Precedes(m) || direction < 0 && m.Precedes(a)) {
		cutL = a.Dist(m)
	}

	// distance to the border
	cutBorder := minNaN(ar.Rlx(c.X.Bound(direction)), ar.Rly(c.Y.Bound(direction)))

	a2 := ar.Frl(math.Min(cutBorder, cutL)).Clamp(c.X, c.Y)
	if a.Equals(a2) {
		return Descent{End: a, Epsilon: eps}, nil
	}
	d := Descent{
		End:     a2,
		Epsilon: c.L.Clamp(c.Epsilon(a2)),
	}

	dx, dy := math.Abs(a2.X-a.X), math.Abs(a2.Y-a.Y)
	lo, hi := Vector{math.Min(a.X, a2.X), math.Min(a.Y, a2.Y)}, Vector{math.Max(a.X, a2.X), math.Max(a.Y, a2.Y)}
	if Equal(dx, 0.0) {
		if hv, ok := c.VerticalHyperbola(a2.X); ok {
			curve := hv.MoveX(-lo.Y)
			d.Vertical, d.Curve = &hv, &curve
		}
	} else if Equal(dy, 0.0) {
		if hh, ok := c.HorizontalHyperbola(a2.Y); ok {
			curve := hh.MoveX(-lo.X)
			d.Horizontal, d.Curve = &hh, &curve
		}
	} else {
		l := a.Dist(a2)
		pCut := segment(c.P.Frl(lo.X-c.Offset.X), c.P.Frl(hi.X-c.Offset.X))
		qCut := segment(c.Q.Frl(lo.Y-c.Offset.Y), c.Q.Frl(hi.Y-c.Offset.Y))
		h, ok := pCut.HyperbolaWithLine(qCut)
		if !ok {
			c.logger().Warn("degenerate hyperbola fit, using constant distance",
				zap.Int("i", c.I), zap.Int("j", c.J), zap.Stringer("a", a), zap.Stringer("a2", a2))
		}
		hh := h.Scale(dx / l).MoveX(lo.X)
		hv := h.Scale(dy / l).MoveX(lo.Y)
		curve := h.Scale(math.Max(dx, dy) / l)
		d.Horizontal, d.Vertical, d.Curve = &hh, &hv, &curve
	}
	if d.Curve == nil {
		return Descent{End: a, Epsilon: eps}, nil
	}
	return d, nil
}
