package frechet

import (
	"math"
	"sort"

	"go.uber.org/zap"
)

// maxGraphPaths bounds the enumeration of paths through a traversal graph.
const maxGraphPaths = 4096

// traversalGraph connects critical traversals at one epsilon. Node 0 is the start point and the last node the end point, both as single-point traversals. An edge u->v means that the start of v is reachable from the end of u.
type traversalGraph struct {
	nodes []*Traversal
	costs []float64 // reciprocal slope cost of passing through each node
	curvs []float64
	edges []map[int]bool
}

type graphPath struct {
	nodes     []int
	cost      float64
	curvature float64
}

// descentCurve returns the steepest-descent curve from gp as a function of the distance walked, with gp at x=0. It returns nil if there is no descent.
func (m *CellMatrix) descentCurve(gp GridPoint, direction int) *Hyperbola {
	d, err := m.cell(gp.I, gp.J).SteepestDescent(gp.Point, direction)
	if err != nil || d.Stalled() {
		return nil
	}
	curve := *d.Curve
	if direction < 0 {
		curve = curve.MoveX(-math.Max(math.Abs(gp.Point.X-d.End.X), math.Abs(gp.Point.Y-d.End.Y)))
	}
	return &curve
}

// traversalGraph builds the graph of the critical traversals ts at eps within the rectangle from a to b.
func (m *CellMatrix) traversalGraph(a, b GridPoint, ts []*Traversal, eps float64) *traversalGraph {
	g := &traversalGraph{}
	g.nodes = append(g.nodes, NewTraversal(GridPoint{a.Point, a.I - 1, a.J - 1}, a, []Vector{a.Point}, []float64{eps}))
	g.nodes = append(g.nodes, ts...)
	g.nodes = append(g.nodes, NewTraversal(b, GridPoint{b.Point, b.I + 1, b.J + 1}, []Vector{b.Point}, []float64{eps}))
	n := len(g.nodes)

	g.costs = make([]float64, n)
	g.curvs = make([]float64, n)
	for k := 1; k < n-1; k++ {
		t := g.nodes[k]
		cost, curv := math.Inf(1), 0.0
		if in := m.descentCurve(t.Start, -1); in != nil {
			if s := in.F2ax(0.0); 0.0 < s {
				cost = 1.0 / s
			}
			curv += in.F2aax()
		}
		if !t.Start.Point.Equals(t.End.Point) {
			cost += t.ReciprocalSlope
			curv += t.Curvature
		}
		if out := m.descentCurve(t.End, 1); out != nil {
			if s := out.F2ax(0.0); s < 0.0 {
				cost += -1.0 / s
			} else {
				cost = math.Inf(1)
			}
			curv += out.F2aax()
		} else {
			cost = math.Inf(1)
		}
		g.costs[k], g.curvs[k] = cost, curv
	}

	g.edges = make([]map[int]bool, n)
	for k := range g.edges {
		g.edges[k] = map[int]bool{}
	}
	edges := g.edges

	if n <= 3 {
		edges[0][1] = true
		edges[1][2] = true
		return g
	}

	r, ok := m.reachable(a, b, eps)
	if !ok || r.DP == 0 || r.DQ == 0 {
		// a and b share a coordinate: connect events by deciding every pair
		for u := 0; u < n-1; u++ {
			for v := 1; v < n; v++ {
				if u != v && m.DecideTraversal(g.nodes[u].End, g.nodes[v].Start, eps) {
					edges[u][v] = true
				}
			}
		}
		return g
	}
	dp, dq := r.DP, r.DQ

	// for every border, the events from which it is reachable with the lowest reachable coordinate
	reachHor := make([][]map[int]float64, dp)
	for i := range reachHor {
		reachHor[i] = make([]map[int]float64, dq+1)
		for j := range reachHor[i] {
			reachHor[i][j] = map[int]float64{}
		}
	}
	reachVer := make([][]map[int]float64, dp+1)
	for i := range reachVer {
		reachVer[i] = make([]map[int]float64, dq)
		for j := range reachVer[i] {
			reachVer[i][j] = map[int]float64{}
		}
	}
	add := func(dst map[int]float64, k int, v float64) {
		if w, ok := dst[k]; !ok || v < w {
			dst[k] = v
		}
	}
	propagate := func(dst, src map[int]float64, lower float64) {
		for k, v := range src {
			add(dst, k, math.Max(v, lower))
		}
	}
	onEvent := func(p Vector) bool {
		for _, t := range g.nodes {
			if t.Start.Point.Equals(p) || t.End.Point.Equals(p) {
				return true
			}
		}
		return false
	}

	// events ending on a border
	for k, t := range g.nodes[:n-1] {
		p := t.End
		if i := indexOf(r.OffsetsHor, p.Point.X); 0 <= i {
			j := max(0, min(p.J-r.J0, dq-1))
			add(reachVer[i][j], k, p.Point.Y)
		}
		if j := indexOf(r.OffsetsVer, p.Point.Y); 0 <= j {
			i := max(0, min(p.I-r.I0, dp-1))
			add(reachHor[i][j], k, p.Point.X)
		}
	}

	// bottom row and left column
	for i := 1; i < dp; i++ {
		x := r.OffsetsHor[i]
		if r.Hor[i][0].Contains(r.Hor[i-1][0].End) && !onEvent(Vector{x, a.Point.Y}) {
			propagate(reachHor[i][0], reachHor[i-1][0], x)
		}
	}
	for j := 1; j < dq; j++ {
		y := r.OffsetsVer[j]
		if r.Ver[0][j].Contains(r.Ver[0][j-1].End) && !onEvent(Vector{a.Point.X, y}) {
			propagate(reachVer[0][j], reachVer[0][j-1], y)
		}
	}

	for i := range dp {
		for j := range dq {
			left, bottom := r.Ver[i][j], r.Hor[i][j]
			right, top := r.Ver[i+1][j], r.Hor[i][j+1]
			fromLeft, fromBottom := reachVer[i][j], reachHor[i][j]
			bx, by := r.columnBounds(i), r.rowBounds(j)
			outX, outY := bx.End, by.End

			eventRight, eventTop := false, false
			for _, t := range g.nodes {
				for _, p := range []Vector{t.Start.Point, t.End.Point} {
					if Equal(p.X, outX) && by.Contains(p.Y) {
						eventRight = true
					}
					if Equal(p.Y, outY) && bx.Contains(p.X) {
						eventTop = true
					}
				}
			}

			// an event on a border blocks passing through it when the border is only free in a point
			rightFromLeft := left.Reachable(right)
			topFromBottom := bottom.Reachable(top)
			if !rightFromLeft.IsEmpty() && !(eventRight && rightFromLeft.IsPoint()) {
				propagate(reachVer[i+1][j], fromLeft, rightFromLeft.Start)
			}
			if !topFromBottom.IsEmpty() && !(eventTop && topFromBottom.IsPoint()) {
				propagate(reachHor[i][j+1], fromBottom, topFromBottom.Start)
			}

			topFromLeft, rightFromBottom := EmptyInterval(), EmptyInterval()
			if !left.IsEmpty() {
				topFromLeft = top
			}
			if !bottom.IsEmpty() {
				rightFromBottom = right
			}
			if !topFromLeft.IsEmpty() && !(eventTop && topFromLeft.IsPoint()) {
				propagate(reachHor[i][j+1], fromLeft, topFromLeft.Start)
			}
			if !rightFromBottom.IsEmpty() && !(eventRight && rightFromBottom.IsPoint()) {
				propagate(reachVer[i+1][j], fromBottom, rightFromBottom.Start)
			}

			// connect the events that start on the right or top border
			for v, t := range g.nodes {
				if v == 0 {
					continue
				}
				p := t.Start.Point
				if Equal(p.X, outX) && by.Contains(p.Y) {
					if !rightFromLeft.IsEmpty() {
						for u, lo := range fromLeft {
							if u != v && lessEqual(lo, p.Y) {
								edges[u][v] = true
							}
						}
					}
					if !rightFromBottom.IsEmpty() {
						for u, lo := range fromBottom {
							if u != v && lessEqual(lo, p.X) {
								edges[u][v] = true
							}
						}
					}
				}
				if Equal(p.Y, outY) && bx.Contains(p.X) {
					if !topFromLeft.IsEmpty() {
						for u, lo := range fromLeft {
							if u != v && lessEqual(lo, p.Y) {
								edges[u][v] = true
							}
						}
					}
					if !topFromBottom.IsEmpty() {
						for u, lo := range fromBottom {
							if u != v && lessEqual(lo, p.X) {
								edges[u][v] = true
							}
						}
					}
				}
			}
		}
	}
	return g
}

// indexOf returns the index of the value in xs that is about equal to x, or -1.
func indexOf(xs []float64, x float64) int {
	for i, x2 := range xs {
		if Equal(x, x2) {
			return i
		}
	}
	return -1
}

// neighbors returns the nodes reachable from u in increasing order.
func (g *traversalGraph) neighbors(u int) []int {
	vs := make([]int, 0, len(g.edges[u]))
	for v := range g.edges[u] {
		vs = append(vs, v)
	}
	sort.Ints(vs)
	return vs
}

// paths enumerates the cycle-free paths from the start to the end node by depth-first search, summing the costs of the nodes passed.
func (g *traversalGraph) paths(log *zap.Logger) []graphPath {
	goal := len(g.nodes) - 1
	var paths []graphPath
	visited := make([]bool, len(g.nodes))
	var walk func(u int, path graphPath) bool
	walk = func(u int, path graphPath) bool {
		visited[u] = true
		defer func() { visited[u] = false }()
		for _, v := range g.neighbors(u) {
			if visited[v] {
				continue
			}
			next := graphPath{
				nodes:     append(append([]int{}, path.nodes...), v),
				cost:      path.cost + g.costs[v],
				curvature: path.curvature + g.curvs[v],
			}
			if v == goal {
				paths = append(paths, next)
				if maxGraphPaths <= len(paths) {
					log.Warn("traversal graph path enumeration truncated", zap.Int("paths", len(paths)))
					return false
				}
			} else if !walk(v, next) {
				return false
			}
		}
		return true
	}
	walk(0, graphPath{nodes: []int{0}})
	return paths
}

// bestPaths returns the paths with the lowest reciprocal slope cost, in enumeration order.
func bestPaths(paths []graphPath) []graphPath {
	if len(paths) == 0 {
		return nil
	}
	lowest := paths[0].cost
	for _, p := range paths[1:] {
		lowest = math.Min(lowest, p.cost)
	}
	var best []graphPath
	for _, p := range paths {
		if p.cost == lowest || Equal(p.cost, lowest) {
			best = append(best, p)
		}
	}
	return best
}
