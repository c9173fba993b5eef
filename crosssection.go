package frechet

// CrossSection is the distance profile from a fixed point to every point along a path. It consists of one hyperbola per segment, and is mirrored at both ends of the path so that extrema at the path ends are classified like any other breakpoint.
type CrossSection struct {
	Path       *Path
	Point      Vector
	Hyperbolas []Hyperbola

	overload []Hyperbola // Hyperbolas with a mirrored hyperbola at both ends
}

// NewCrossSection returns the distance profile from point along path.
func NewCrossSection(path *Path, point Vector) *CrossSection {
	cs := &CrossSection{
		Path:       path,
		Point:      point,
		Hyperbolas: make([]Hyperbola, path.Count()),
	}
	for i, ls := range path.Segments {
		cs.Hyperbolas[i] = ls.HyperbolaWithPoint(point).MoveX(path.Offsets[i])
	}
	n := len(cs.Hyperbolas)
	cs.overload = make([]Hyperbola, 0, n+2)
	cs.overload = append(cs.overload, cs.Hyperbolas[0].ReflectX(path.Offsets[0]))
	cs.overload = append(cs.overload, cs.Hyperbolas...)
	cs.overload = append(cs.overload, cs.Hyperbolas[n-1].ReflectX(path.Offsets[n]))
	return cs
}

// breakpoint returns the slope orientations left and right of path point i.
func (cs *CrossSection) breakpoint(i int) (float64, float64, float64) {
	x := cs.Path.Offsets[i]
	return x, cs.overload[i].Orientation(x), cs.overload[i+1].Orientation(x)
}

// InteriorMinima returns the arclengths of minima that lie strictly inside a segment.
func (cs *CrossSection) InteriorMinima() []float64 {
	var xs []float64
	for i, h := range cs.Hyperbolas {
		if cs.Path.Offsets[i] < h.S.X && h.S.X < cs.Path.Offsets[i+1] {
			xs = append(xs, h.S.X)
		}
	}
	return xs
}

// BorderMinima returns the arclengths of minima that lie on path points.
func (cs *CrossSection) BorderMinima() []float64 {
	var xs []float64
	for i := range cs.Path.Offsets {
		if x, left, right := cs.breakpoint(i); left <= 0.0 && 0.0 <= right {
			xs = append(xs, x)
		}
	}
	return xs
}

// Minima returns all local minima.
func (cs *CrossSection) Minima() []float64 {
	return append(cs.InteriorMinima(), cs.BorderMinima()...)
}

// Maxima returns the local maxima, which always lie on path points. A touching maximum has a flat side, ie. one of both slopes is zero.
func (cs *CrossSection) Maxima(touching bool) []float64 {
	var xs []float64
	for i := range cs.Path.Offsets {
		x, left, right := cs.breakpoint(i)
		if 0.0 < left && right < 0.0 || touching && (0.0 <= left && right < 0.0 || 0.0 < left && right <= 0.0) {
			xs = append(xs, x)
		}
	}
	return xs
}

// IsMaximum returns true if the profile has a local maximum at arclength x.
func (cs *CrossSection) IsMaximum(x float64, touching bool) bool {
	return containsFloat(cs.Maxima(touching), x)
}

// IsMinimum returns true if the profile has a local minimum at arclength x.
func (cs *CrossSection) IsMinimum(x float64) bool {
	return containsFloat(cs.Minima(), x)
}

func containsFloat(xs []float64, x float64) bool {
	for _, x2 := range xs {
		if Equal(x, x2) {
			return true
		}
	}
	return false
}
