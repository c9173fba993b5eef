package frechet

import (
	"context"
	"math"
)

// criticalPoints returns the critical events on the borders between the cross-sections along one path, with x along that path and y along the other path. Each event is a sequence of points on one vertical line.
//
// An event of type b is a local minimum of a cross-section, where the perpendicular cross-section has a maximum. The free space opens in that point at its own distance.
//
// An event of type c is the intersection of two cross-sections' hyperbolas where the first falls and the second rises. If the perpendicular cross-section has strict maxima at both and all cross-sections in between stay below, the free space of a vertical passage through all of them opens at that distance.
func criticalPoints(ctx context.Context, cross, other []*CrossSection) [][]Vector {
	var events [][]Vector
	path, otherPath := cross[0].Path, other[0].Path

	// perpendicular cross-sections by position, shared between candidates at the same x
	perps := map[float64]*CrossSection{}
	perpendicular := func(x float64) *CrossSection {
		perp, ok := perps[x]
		if !ok {
			perp = NewCrossSection(otherPath, path.At(x))
			perps[x] = perp
		}
		return perp
	}

	// type b
	for i := 1; i < len(cross)-1; i++ {
		y := otherPath.Offsets[i]
		for _, x := range cross[i].InteriorMinima() {
			if perpendicular(x).IsMaximum(y, true) {
				events = append(events, []Vector{{x, y}})
			}
		}
		for _, x := range cross[i].BorderMinima() {
			if other[path.PointIndex(x)].IsMaximum(y, true) {
				events = append(events, []Vector{{x, y}})
			}
		}
	}

	// type c
	n := len(cross)
	for k := range path.Count() {
		if ctx.Err() != nil {
			return nil
		}
		bounds := path.SegmentBounds(k)
		for i0 := range n {
			h0 := cross[i0].Hyperbolas[k]
			for i1 := n - 1; i0 < i1; i1-- {
				h1 := cross[i1].Hyperbolas[k]
				ps := h0.IntersectCritical(h1, bounds, 1)
				if len(ps) == 0 || math.IsNaN(ps[0].X) {
					continue
				}
				p := ps[0]

				perp := perpendicular(p.X)
				if !perp.IsMaximum(otherPath.Offsets[i0], false) || !perp.IsMaximum(otherPath.Offsets[i1], false) {
					continue
				}

				critical := true
				points := []Vector{{p.X, otherPath.Offsets[i0]}}
				for i := i0 + 1; i < i1; i++ {
					points = append(points, Vector{p.X, otherPath.Offsets[i]})
					if y := cross[i].Hyperbolas[k].Fx(p.X); p.Y < y && !Equal(p.Y, y) {
						critical = false
						break
					}
				}
				if critical {
					points = append(points, Vector{p.X, otherPath.Offsets[i1]})
					events = append(events, points)
				}
			}
		}
	}
	return events
}
