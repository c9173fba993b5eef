package main

import (
	"math"
	"sort"

	"github.com/tdewolff/frechet"
)

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type request struct {
	P []point `json:"p" binding:"required"`
	Q []point `json:"q" binding:"required"`
}

func (req request) paths() ([]frechet.Vector, []frechet.Vector) {
	conv := func(ps []point) []frechet.Vector {
		vs := make([]frechet.Vector, len(ps))
		for i, p := range ps {
			vs[i] = frechet.Vector{X: p.X, Y: p.Y}
		}
		return frechet.RemoveConsecutiveDuplicates(vs)
	}
	return conv(req.P), conv(req.Q)
}

type lengths struct {
	P float64 `json:"p"`
	Q float64 `json:"q"`
}

type heatmap struct {
	X []float64   `json:"x"`
	Y []float64   `json:"y"`
	Z [][]float64 `json:"z"`
}

type traversal struct {
	X             []float64    `json:"x"`
	Y             []float64    `json:"y"`
	Z             []float64    `json:"z"`
	T             []float64    `json:"t"`
	Profile       [2][]float64 `json:"profile"`
	Epsilon       float64      `json:"epsilon"`
	Length        float64      `json:"length"`
	EpsilonPoints [][3]float64 `json:"epsilon_points"`
	Matches       [][2]point   `json:"matches"`
}

type response struct {
	Lengths        lengths        `json:"lengths"`
	Heatmap        *heatmap       `json:"heatmap"`
	BoundsL        [2]float64     `json:"bounds_l"`
	Traversals     []traversal    `json:"traversals"`
	Borders        [2][]float64   `json:"borders"`
	LLines         [][2][]float64 `json:"l_lines"`
	CriticalEvents [][]any        `json:"critical_events"`
	Epsilon        float64        `json:"epsilon"`
}

// profileSteps returns the epsilon plateaus along a traversal from the highest down, each with the length walked at or above it. Steps are measured as the larger of the moves along P and Q.
func profileSteps(profile []frechet.ProfilePoint) [2][]float64 {
	steps := [2][]float64{{}, {}}
	if len(profile) < 2 {
		return steps
	}
	type step struct{ dt, z float64 }
	ss := make([]step, len(profile)-1)
	for i := 1; i < len(profile); i++ {
		dx := profile[i].X - profile[i-1].X
		dy := profile[i].Y - profile[i-1].Y
		ss[i-1] = step{math.Max(dx, dy), profile[i-1].Epsilon}
	}
	sort.SliceStable(ss, func(i, j int) bool { return ss[i].z > ss[j].z })

	steps[0] = append(steps[0], 0.0)
	steps[1] = append(steps[1], ss[0].z)
	ddt := 0.0
	for _, s := range ss[1:] {
		ddt += s.dt
		if last := steps[1][len(steps[1])-1]; 1e-6 < math.Abs(last-s.z) {
			steps[0] = append(steps[0], steps[0][len(steps[0])-1]+ddt)
			steps[1] = append(steps[1], s.z)
			ddt = 0.0
		}
	}
	return steps
}

func newTraversal(t *frechet.Traversal, s frechet.TraversalSample) traversal {
	n := len(s.Profile)
	tr := traversal{
		X:       make([]float64, n),
		Y:       make([]float64, n),
		Z:       make([]float64, n),
		T:       make([]float64, n),
		Profile: profileSteps(s.Profile),
		Epsilon: t.Epsilon,
		Matches: make([][2]point, len(s.Matches)),
	}
	for i, pq := range s.Matches {
		tr.Matches[i] = [2]point{{pq[0].X, pq[0].Y}, {pq[1].X, pq[1].Y}}
	}
	for i, pp := range s.Profile {
		tr.X[i], tr.Y[i], tr.Z[i], tr.T[i] = pp.X, pp.Y, pp.Epsilon, pp.T
	}
	if 0 < n {
		tr.Length = tr.T[n-1]
	}
	for i, p := range t.Points {
		tr.EpsilonPoints = append(tr.EpsilonPoints, [3]float64{p.X, p.Y, t.Epsilons[i]})
	}
	return tr
}

// newResponse converts a sampled diagram into the JSON response of the web front-end.
func newResponse(m *frechet.CellMatrix, s frechet.Sample) response {
	resp := response{
		Lengths:        lengths{s.Lengths.X, s.Lengths.Y},
		BoundsL:        [2]float64{s.BoundsL.Start, s.BoundsL.End},
		Traversals:     []traversal{},
		Borders:        [2][]float64{{}, {}},
		LLines:         [][2][]float64{},
		CriticalEvents: [][]any{},
		Epsilon:        m.MinimalEpsilon(),
	}
	if s.Heatmap != nil {
		resp.Heatmap = &heatmap{s.Heatmap.Xs, s.Heatmap.Ys, s.Heatmap.Z}
	}

	ts := m.Traversals()
	for i, ts2 := range s.Traversals {
		if i < len(ts) {
			resp.Traversals = append(resp.Traversals, newTraversal(ts[i], ts2))
		}
	}

	for _, b := range s.Borders {
		if b[0].X == b[1].X {
			resp.Borders[0] = append(resp.Borders[0], b[0].X)
		} else {
			resp.Borders[1] = append(resp.Borders[1], b[0].Y)
		}
	}

	for _, c := range s.Cells {
		for _, l := range c.Lines {
			if len(l) == 2 {
				resp.LLines = append(resp.LLines, [2][]float64{{l[0].X, l[1].X}, {l[0].Y, l[1].Y}})
			}
		}
	}

	for _, t := range s.CriticalEvents {
		first, last := t.Points[0], t.Points[len(t.Points)-1]
		resp.CriticalEvents = append(resp.CriticalEvents, []any{
			[]float64{first.X, last.X},
			[]float64{first.Y, last.Y},
			t.Epsilon,
		})
	}
	return resp
}
