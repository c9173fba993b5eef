package frechet

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Path is a polyline through at least two points. Offsets holds the arclength at each point, so that Offsets[0] is zero and Offsets[len(Points)-1] is the total length.
type Path struct {
	Points   []Vector
	Segments []LineSegment
	Offsets  []float64
	Length   float64
}

// NewPath returns the polyline through points. It returns an *InputError when there are fewer than two points or when consecutive points coincide, see RemoveConsecutiveDuplicates.
func NewPath(name string, points []Vector) (*Path, error) {
	if len(points) < 2 {
		return nil, &InputError{Path: name, Index: len(points), Err: ErrTooFewPoints}
	}
	p := &Path{
		Points:   append([]Vector{}, points...),
		Segments: make([]LineSegment, 0, len(points)-1),
		Offsets:  make([]float64, 1, len(points)),
	}
	for i := 1; i < len(points); i++ {
		if points[i-1].Equals(points[i]) {
			return nil, &InputError{Path: name, Index: i, Err: ErrDuplicatePoints}
		}
		ls := segment(points[i-1], points[i])
		p.Segments = append(p.Segments, ls)
		p.Length += ls.L
		p.Offsets = append(p.Offsets, p.Length)
	}
	return p, nil
}

// RemoveConsecutiveDuplicates returns the points with consecutive about equal points removed.
func RemoveConsecutiveDuplicates(points []Vector) []Vector {
	if len(points) == 0 {
		return nil
	}
	ps := []Vector{points[0]}
	for _, p := range points[1:] {
		if !ps[len(ps)-1].Equals(p) {
			ps = append(ps, p)
		}
	}
	return ps
}

// Count returns the number of segments.
func (p *Path) Count() int {
	return len(p.Segments)
}

// Bounds returns the arclength interval [0,Length].
func (p *Path) Bounds() Interval {
	return Interval{0.0, p.Length}
}

// SegmentBounds returns the arclength interval of segment i.
func (p *Path) SegmentBounds(i int) Interval {
	return Interval{p.Offsets[i], p.Offsets[i+1]}
}

// PointIndex returns the index of the segment that contains arclength rl, or the index of the point when rl is about equal to its offset. The result lies in [0,Count()].
func (p *Path) PointIndex(rl float64) int {
	rl = math.Max(0.0, math.Min(p.Length, rl))
	// number of offsets in Offsets[1:] that are <= rl
	i := sort.Search(len(p.Offsets)-1, func(j int) bool { return rl < p.Offsets[j+1] })
	if 0 < i && Equal(rl, p.Offsets[i-1]) {
		return i - 1
	} else if i < p.Count() && Equal(rl, p.Offsets[i+1]) {
		return i + 1
	}
	return i
}

// SegmentIndex returns the index of the segment that contains arclength rl. Points on the border between two segments belong to the latter segment, except for the end of the path.
func (p *Path) SegmentIndex(rl float64) int {
	return min(p.PointIndex(rl), p.Count()-1)
}

// At returns the point at arclength rl.
func (p *Path) At(rl float64) Vector {
	rl = math.Max(0.0, math.Min(p.Length, rl))
	i := p.SegmentIndex(rl)
	return p.Segments[i].Frl(rl - p.Offsets[i])
}

// Scale returns the path with all points multiplied by f.
func (p *Path) Scale(name string, f float64) (*Path, error) {
	points := make([]Vector, len(p.Points))
	for i, pt := range p.Points {
		points[i] = pt.Mul(f)
	}
	return NewPath(name, points)
}

func (p *Path) String() string {
	sb := strings.Builder{}
	for i, pt := range p.Points {
		if i != 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%v", pt)
	}
	return sb.String()
}
