package frechet

import "slices"

// reachability holds the reachable free space on the cell borders of the sub-rectangle from a to b. Hor[i][j] is the reachable part of the bottom border of cell (I0+i,J0+j), with Hor[i][DQ] the top border of the last row. Ver[i][j] is the left border likewise, with Ver[DP][j] the right border of the last column. Borders are clipped to the rectangle.
type reachability struct {
	I0, J0 int
	DP, DQ int // number of columns and rows, zero when a and b share the coordinate
	Hor    [][]Interval
	Ver    [][]Interval

	// OffsetsHor and OffsetsVer are the column and row borders, starting at a and ending at b.
	OffsetsHor, OffsetsVer []float64
}

// columnBounds returns the horizontal extent of column i.
func (r *reachability) columnBounds(i int) Interval {
	return Interval{r.OffsetsHor[i], r.OffsetsHor[i+1]}
}

// rowBounds returns the vertical extent of row j.
func (r *reachability) rowBounds(j int) Interval {
	return Interval{r.OffsetsVer[j], r.OffsetsVer[j+1]}
}

// reachable propagates the free space reachable from a by a monotone walk at eps over the cell borders up to b. It returns false if b does not lie strictly up and to the right of a.
func (m *CellMatrix) reachable(a, b GridPoint, eps float64) (*reachability, bool) {
	if a.Point.Equals(b.Point) || !a.Point.Precedes(b.Point) {
		return nil, false
	}

	i0, i1 := a.I, min(b.I, m.P.Count()-1)
	j0, j1 := a.J, min(b.J, m.Q.Count()-1)
	for 0 < i1 && lessEqual(b.Point.X, m.P.Offsets[i1]) {
		i1--
	}
	for i0 < i1 && lessEqual(m.P.Offsets[i0+1], a.Point.X) {
		i0++
	}
	for 0 < j1 && lessEqual(b.Point.Y, m.Q.Offsets[j1]) {
		j1--
	}
	for j0 < j1 && lessEqual(m.Q.Offsets[j0+1], a.Point.Y) {
		j0++
	}
	i0, j0 = min(i0, i1), min(j0, j1)

	r := &reachability{
		I0: i0,
		J0: j0,
		DP: i1 - i0 + 1,
		DQ: j1 - j0 + 1,
	}
	if Equal(a.Point.X, b.Point.X) {
		r.DP = 0
	}
	if Equal(a.Point.Y, b.Point.Y) {
		r.DQ = 0
	}
	r.OffsetsHor = append([]float64{}, m.P.Offsets[i0:i1+2]...)
	r.OffsetsHor[0], r.OffsetsHor[len(r.OffsetsHor)-1] = a.Point.X, b.Point.X
	r.OffsetsVer = append([]float64{}, m.Q.Offsets[j0:j1+2]...)
	r.OffsetsVer[0], r.OffsetsVer[len(r.OffsetsVer)-1] = a.Point.Y, b.Point.Y

	r.Hor = make([][]Interval, r.DP)
	for i := range r.Hor {
		r.Hor[i] = make([]Interval, r.DQ+1)
		for j := range r.Hor[i] {
			r.Hor[i][j] = EmptyInterval()
		}
	}
	r.Ver = make([][]Interval, r.DP+1)
	for i := range r.Ver {
		r.Ver[i] = make([]Interval, r.DQ)
		for j := range r.Ver[i] {
			r.Ver[i][j] = EmptyInterval()
		}
	}

	// bottom row
	if 0 < r.DP {
		y := r.OffsetsVer[0]
		for i := range r.DP {
			free := r.columnBounds(i).Cut(m.cell(i0+i, j0).FreeHorizontal(y, eps))
			if i == 0 && free.Contains(r.OffsetsHor[0]) || 0 < i && r.Hor[i-1][0].Contains(free.Start) {
				r.Hor[i][0] = free
			}
		}
	}

	// left column
	if 0 < r.DQ {
		x := r.OffsetsHor[0]
		for j := range r.DQ {
			free := r.rowBounds(j).Cut(m.cell(i0, j0+j).FreeVertical(x, eps))
			if j == 0 && free.Contains(r.OffsetsVer[0]) || 0 < j && r.Ver[0][j-1].Contains(free.Start) {
				r.Ver[0][j] = free
			}
		}
	}

	for i := range r.DP {
		for j := range r.DQ {
			c := m.cell(i0+i, j0+j)
			left, bottom := r.Ver[i][j], r.Hor[i][j]

			// the free space of a cell is convex: entering through the left border reaches all of the free top border
			freeTop := r.columnBounds(i).Cut(c.FreeHorizontal(r.OffsetsVer[j+1], eps))
			top := EmptyInterval()
			if !left.IsEmpty() {
				top = freeTop
			} else if bottom.Start <= freeTop.End+Tolerance {
				top = r.columnBounds(i).Cut(Interval{max(bottom.Start, freeTop.Start), freeTop.End})
			}
			r.Hor[i][j+1] = top

			freeRight := r.rowBounds(j).Cut(c.FreeVertical(r.OffsetsHor[i+1], eps))
			right := EmptyInterval()
			if !bottom.IsEmpty() {
				right = freeRight
			} else if left.Start <= freeRight.End+Tolerance {
				right = r.rowBounds(j).Cut(Interval{max(left.Start, freeRight.Start), freeRight.End})
			}
			r.Ver[i+1][j] = right
		}
	}
	return r, true
}

// DecideTraversal returns true if b can be reached from a by a monotone walk that stays within eps.
func (m *CellMatrix) DecideTraversal(a, b GridPoint, eps float64) bool {
	if a.Point.Equals(b.Point) {
		return true
	}
	r, ok := m.reachable(a, b, eps)
	return ok && r.reaches(b.Point)
}

// reaches returns true if b lies in the reachable free space of the last cell border.
func (r *reachability) reaches(b Vector) bool {
	if r.DP == 0 {
		return r.Ver[0][r.DQ-1].Contains(b.Y)
	} else if r.DQ == 0 {
		return r.Hor[r.DP-1][0].Contains(b.X)
	}
	return r.Hor[r.DP-1][r.DQ].Contains(b.X) || r.Ver[r.DP][r.DQ-1].Contains(b.Y)
}

// walk returns a monotone traversal from a to b within eps, extracted backwards from the reachable free space. Consecutive points share a cell, whose free space is convex, so the straight line between them stays within eps. It returns false if b cannot be reached.
func (m *CellMatrix) walk(a, b GridPoint, eps float64) (*Traversal, bool) {
	if a.Point.Equals(b.Point) {
		return nil, true
	}
	r, ok := m.reachable(a, b, eps*(1.0+DecisionSlack)+Tolerance)
	if !ok || !r.reaches(b.Point) {
		return nil, false
	}

	points := []Vector{b.Point}
	if r.DP == 0 {
		for j := r.DQ - 1; 0 < j; j-- {
			points = append(points, Vector{a.Point.X, r.OffsetsVer[j]})
		}
	} else if r.DQ == 0 {
		for i := r.DP - 1; 0 < i; i-- {
			points = append(points, Vector{r.OffsetsHor[i], a.Point.Y})
		}
	} else {
		i, j := r.DP-1, r.DQ-1
		cur := b.Point
		for {
			bottom, left := r.Hor[i][j], r.Ver[i][j]
			if !bottom.IsEmpty() && lessEqual(bottom.Start, cur.X) {
				cur = Vector{min(bottom.Clamp(cur.X), cur.X), r.OffsetsVer[j]}
				points = append(points, cur)
				if j == 0 {
					// the bottom row is reachable along the border from a
					for k := i; 0 < k; k-- {
						points = append(points, Vector{r.OffsetsHor[k], cur.Y})
					}
					break
				}
				j--
			} else if !left.IsEmpty() && lessEqual(left.Start, cur.Y) {
				cur = Vector{r.OffsetsHor[i], min(left.Clamp(cur.Y), cur.Y)}
				points = append(points, cur)
				if i == 0 {
					for k := j; 0 < k; k-- {
						points = append(points, Vector{cur.X, r.OffsetsVer[k]})
					}
					break
				}
				i--
			} else {
				return nil, false
			}
		}
	}
	points = append(points, a.Point)
	slices.Reverse(points)
	points = RemoveConsecutiveDuplicates(points)

	epsilons := make([]float64, len(points))
	for k, p := range points {
		epsilons[k] = m.EpsilonAt(p)
	}
	return NewTraversal(a, b, points, epsilons), true
}

// Decide returns true if the point (x,y) of the free-space diagram can be reached from the origin at eps, ie. if the prefixes of P and Q of arclength x and y have a Fréchet distance of at most eps.
func (m *CellMatrix) Decide(x, y, eps float64) bool {
	p := Vector{x, y}.Clamp(m.P.Bounds(), m.Q.Bounds())
	if p.Equals(Vector{}) {
		return lessEqual(m.EpsilonAt(p), eps)
	}
	return m.DecideTraversal(m.Start(), m.GridEnd(p), eps)
}
