package frechet

import (
	"fmt"
	"math"
)

// GridPoint is a point in the free-space diagram together with the index of the cell it is assigned to. Points on cell borders belong to either neighbouring cell, depending on whether they start or end a walk.
type GridPoint struct {
	Point Vector
	I, J  int
}

func (gp GridPoint) String() string {
	return fmt.Sprintf("%v@(%d,%d)", gp.Point, gp.I, gp.J)
}

// Traversal is a monotone walk through the free-space diagram from Start to End along Points. Epsilon is the largest distance along the walk and Epsilons the distance at each point. The empty traversal is represented by nil.
type Traversal struct {
	Start, End GridPoint
	Points     []Vector
	Epsilon    float64
	Epsilons   []float64

	// ReciprocalSlope sums 1/|s| over the slopes s of the squared distance entering and leaving the points of largest distance, it is small for sharp bottlenecks.
	ReciprocalSlope float64
	// Curvature sums the second derivatives of the squared distance at the same points.
	Curvature float64
}

// NewTraversal returns a traversal through points with the given epsilons, which must have the same length.
func NewTraversal(start, end GridPoint, points []Vector, epsilons []float64) *Traversal {
	eps := math.Inf(-1)
	for _, e := range epsilons {
		eps = math.Max(eps, e)
	}
	return &Traversal{
		Start:    start,
		End:      end,
		Points:   points,
		Epsilon:  eps,
		Epsilons: epsilons,
	}
}

// Concat returns the walk along t followed by u. The last point of t must equal the first point of u. Slope costs add up when both have the same epsilon, otherwise the costs of the higher walk are kept.
func Concat(t, u *Traversal) *Traversal {
	if t == nil {
		return u
	} else if u == nil {
		return t
	}

	points := make([]Vector, 0, len(t.Points)+len(u.Points)-1)
	points = append(points, t.Points[:len(t.Points)-1]...)
	points = append(points, u.Points...)
	epsilons := make([]float64, 0, len(t.Epsilons)+len(u.Epsilons)-1)
	epsilons = append(epsilons, t.Epsilons[:len(t.Epsilons)-1]...)
	epsilons = append(epsilons, u.Epsilons...)

	v := &Traversal{
		Start:    t.Start,
		End:      u.End,
		Points:   points,
		Epsilon:  math.Max(t.Epsilon, u.Epsilon),
		Epsilons: epsilons,
	}
	if Equal(t.Epsilon, u.Epsilon) {
		v.ReciprocalSlope = t.ReciprocalSlope + u.ReciprocalSlope
		v.Curvature = t.Curvature + u.Curvature
	} else if u.Epsilon < t.Epsilon {
		v.ReciprocalSlope = t.ReciprocalSlope
		v.Curvature = t.Curvature
	} else {
		v.ReciprocalSlope = u.ReciprocalSlope
		v.Curvature = u.Curvature
	}
	return v
}

// Chain concatenates all traversals in order, skipping empty ones.
func Chain(ts ...*Traversal) *Traversal {
	var v *Traversal
	for _, t := range ts {
		v = Concat(v, t)
	}
	return v
}

// setSlopes sets ReciprocalSlope from the given slopes, a zero slope has an infinite cost.
func (t *Traversal) setSlopes(slopes []float64) {
	t.ReciprocalSlope = reciprocalSlope(slopes...)
}

func reciprocalSlope(slopes ...float64) float64 {
	sum := 0.0
	for _, s := range slopes {
		if s == 0.0 || math.IsNaN(s) {
			sum += math.Inf(1)
		} else {
			sum += 1.0 / math.Abs(s)
		}
	}
	return sum
}

// Len returns the length of the walk in the free-space diagram.
func (t *Traversal) Len() float64 {
	if t == nil {
		return 0.0
	}
	l := 0.0
	for i := 1; i < len(t.Points); i++ {
		l += t.Points[i-1].Dist(t.Points[i])
	}
	return l
}

// IsMonotone returns true if no step of the walk goes back along either path.
func (t *Traversal) IsMonotone() bool {
	for i := 1; i < len(t.Points); i++ {
		if !t.Points[i-1].Precedes(t.Points[i]) {
			return false
		}
	}
	return true
}

func (t *Traversal) String() string {
	if t == nil {
		return "Traversal()"
	}
	return fmt.Sprintf("Traversal(eps=%g %v->%v points=%v)", t.Epsilon, t.Start, t.End, t.Points)
}
