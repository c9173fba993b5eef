package frechet

import (
	"fmt"
	"math"
)

// Tolerance is the absolute tolerance used by all geometric comparisons.
const Tolerance = 1e-13

// RelativeTolerance is the relative tolerance used by Equal for large magnitudes.
const RelativeTolerance = 1e-9

// DecisionSlack is the relative slack added to a candidate epsilon when it is tested for feasibility.
const DecisionSlack = 1e-10

// Equal returns true if a and b are equal within Tolerance, or within RelativeTolerance relative to the largest magnitude. Infinities only equal themselves and NaN equals nothing.
func Equal(a, b float64) bool {
	if a == b {
		return true
	} else if math.IsInf(a, 0) || math.IsInf(b, 0) || math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	diff := math.Abs(a - b)
	return diff <= Tolerance || diff <= RelativeTolerance*math.Max(math.Abs(a), math.Abs(b))
}

// lessEqual returns true if a <= b or a is about equal to b.
func lessEqual(a, b float64) bool {
	return a <= b || Equal(a, b)
}

// angleNorm returns the angle theta in the range [0,2PI).
func angleNorm(theta float64) float64 {
	theta = math.Mod(theta, 2.0*math.Pi)
	if theta < 0.0 {
		theta += 2.0 * math.Pi
	}
	return theta
}

// minNaN returns the smallest value of xs ignoring NaNs, or +Inf if there is none.
func minNaN(xs ...float64) float64 {
	m := math.Inf(1)
	for _, x := range xs {
		if !math.IsNaN(x) && x < m {
			m = x
		}
	}
	return m
}

// solveQuadraticFormula solves a*x^2 + b*x + c = 0. It returns the lowest root first, or NaN when there is no such root.
func solveQuadraticFormula(a, b, c float64) (float64, float64) {
	if a == 0.0 {
		if b == 0.0 {
			if c == 0.0 {
				// all x satisfy the equation
				return 0.0, math.NaN()
			}
			return math.NaN(), math.NaN()
		}
		return -c / b, math.NaN()
	}

	discriminant := b*b - 4.0*a*c
	if Equal(discriminant, 0.0) {
		return -b / (2.0 * a), math.NaN()
	} else if discriminant < 0.0 {
		return math.NaN(), math.NaN()
	}

	// Avoid catastrophic cancellation, which occurs when we subtract two nearly equal numbers and causes a large error. This can be the case when 4*a*c is small so that sqrt(discriminant) -> b, and the sign of b and in front of the radical are the same. Instead, we calculate x where b and the radical have different signs, and then use this result in the analytical equivalent of the formula, called the Citardauq Formula.
	q := math.Sqrt(discriminant)
	if b < 0.0 {
		q = -q
	}
	x1 := -(b + q) / (2.0 * a)
	x2 := c / (a * x1)
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	return x1, x2
}

////////////////////////////////////////////////////////////////

// Vector is a coordinate or direction in 2D space.
type Vector struct {
	X, Y float64
}

// Equals returns true if both coordinates are about equal.
func (v Vector) Equals(w Vector) bool {
	return Equal(v.X, w.X) && Equal(v.Y, w.Y)
}

// Precedes returns true if v is componentwise less than or about equal to w, ie. w is not before v in a monotone walk.
func (v Vector) Precedes(w Vector) bool {
	return lessEqual(v.X, w.X) && lessEqual(v.Y, w.Y)
}

// IsZero returns true if v is about the zero vector.
func (v Vector) IsZero() bool {
	return Equal(v.X, 0.0) && Equal(v.Y, 0.0)
}

// IsNaN returns true if either coordinate is NaN.
func (v Vector) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y)
}

// Neg negates x and y.
func (v Vector) Neg() Vector {
	return Vector{-v.X, -v.Y}
}

// Add adds w to v.
func (v Vector) Add(w Vector) Vector {
	return Vector{v.X + w.X, v.Y + w.Y}
}

// Sub subtracts w from v.
func (v Vector) Sub(w Vector) Vector {
	return Vector{v.X - w.X, v.Y - w.Y}
}

// Mul multiplies x and y by f.
func (v Vector) Mul(f float64) Vector {
	return Vector{f * v.X, f * v.Y}
}

// Div divides x and y by f.
func (v Vector) Div(f float64) Vector {
	return Vector{v.X / f, v.Y / f}
}

// Abs returns the componentwise absolute value.
func (v Vector) Abs() Vector {
	return Vector{math.Abs(v.X), math.Abs(v.Y)}
}

// Swap exchanges x and y.
func (v Vector) Swap() Vector {
	return Vector{v.Y, v.X}
}

// Rot90CW rotates the vector 90 degrees clockwise.
func (v Vector) Rot90CW() Vector {
	return Vector{v.Y, -v.X}
}

// Rot90CCW rotates the vector 90 degrees counter clockwise.
func (v Vector) Rot90CCW() Vector {
	return Vector{-v.Y, v.X}
}

// Dot returns the dot product between v and w.
func (v Vector) Dot(w Vector) float64 {
	return v.X*w.X + v.Y*w.Y
}

// PerpDot returns the perp dot product between v and w, ie. the z-component of their cross product.
func (v Vector) PerpDot(w Vector) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Length returns the length of the vector.
func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between v and w.
func (v Vector) Dist(w Vector) float64 {
	return v.Sub(w).Length()
}

// Angle returns the angle in radians in [-PI,PI] between the x-axis and the vector.
func (v Vector) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Norm normalises the vector to unit length. The zero vector stays zero.
func (v Vector) Norm() Vector {
	d := v.Length()
	if d == 0.0 {
		return Vector{}
	}
	return Vector{v.X / d, v.Y / d}
}

// NormDir normalises the vector after taking absolute coordinates, giving the direction of a monotone walk.
func (v Vector) NormDir() Vector {
	return v.Abs().Norm()
}

// Monotone returns true if the vector points into the first or third quadrant (or along an axis), ie. x*y >= 0.
func (v Vector) Monotone() bool {
	o := v.X * v.Y
	return 0.0 <= o || Equal(o, 0.0)
}

// Clamp clamps the coordinates into the given intervals.
func (v Vector) Clamp(x, y Interval) Vector {
	return Vector{x.Clamp(v.X), y.Clamp(v.Y)}
}

// In returns true if the vector lies in the rectangle given by both intervals, with tolerance.
func (v Vector) In(x, y Interval) bool {
	return x.Contains(v.X) && y.Contains(v.Y)
}

// Interpolate returns a point on the line from v to w at t in [0,1].
func (v Vector) Interpolate(w Vector, t float64) Vector {
	return v.Mul(1.0 - t).Add(w.Mul(t))
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g,%g)", v.X, v.Y)
}
