package frechet

import (
	"fmt"
	"strings"
)

// Describe formats a traversal for debugging, including whether the full diagram is traversable through it at its epsilon.
func Describe(m *CellMatrix, t *Traversal) string {
	if t == nil {
		return "empty traversal"
	}
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "%g-Traversal:\n", t.Epsilon)
	fmt.Fprintf(&sb, "  A: %v -> B: %v\n", t.Start.Point, t.End.Point)
	fmt.Fprintf(&sb, "  Cell A: (%d,%d) -> Cell B: (%d,%d)\n", t.Start.I, t.Start.J, t.End.I, t.End.J)
	fmt.Fprintf(&sb, "  Points: %v\n", t.Points)
	fmt.Fprintf(&sb, "  Epsilons: %v\n", t.Epsilons)
	fmt.Fprintf(&sb, "  Slopes: %g (curvature %g)\n", t.ReciprocalSlope, t.Curvature)
	decision := m.DecideTraversal(m.Start(), t.Start, t.Epsilon) && m.DecideTraversal(t.End, m.End(), t.Epsilon)
	fmt.Fprintf(&sb, "  Decision: %v", decision)
	return sb.String()
}
